package lifecycle

import (
	"time"

	"github.com/Dosada05/referee-review/models"
)

// LiveWindow is how long after kickoff a match counts as live.
const LiveWindow = 3 * time.Hour

// DeriveStatus computes the status a match should have at now.
// A cancelled match stays cancelled; a match without kickoff time is scheduled.
// Both ends of the live window are inclusive.
func DeriveStatus(kickoff *time.Time, now time.Time, stored models.MatchStatus) models.MatchStatus {
	if stored == models.MatchStatusCancelled {
		return models.MatchStatusCancelled
	}
	if kickoff == nil {
		return models.MatchStatusScheduled
	}

	liveEnd := kickoff.Add(LiveWindow)
	switch {
	case now.Before(*kickoff):
		return models.MatchStatusScheduled
	case !now.After(liveEnd):
		return models.MatchStatusLive
	default:
		return models.MatchStatusFinished
	}
}
