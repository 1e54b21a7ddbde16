package models

import "time"

// MatchStatus представляет статус матча, соответствующий ENUM в БД.
type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusFinished  MatchStatus = "finished"
	MatchStatusCancelled MatchStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusLive, MatchStatusFinished, MatchStatusCancelled:
		return true
	}
	return false
}

// Match is a single fixture inside a round. Status is owned by the status job.
type Match struct {
	ID          int         `json:"id" db:"id"`
	RoundID     int         `json:"round_id" db:"round_id"`
	HomeTeam    string      `json:"home_team" db:"home_team"`
	AwayTeam    string      `json:"away_team" db:"away_team"`
	Venue       *string     `json:"venue,omitempty" db:"venue"`
	KickoffTime *time.Time  `json:"kickoff_time,omitempty" db:"kickoff_time"`
	Status      MatchStatus `json:"status" db:"status"`
	RefereeID   *int        `json:"referee_id,omitempty" db:"referee_id"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`

	Referee *Referee `json:"referee,omitempty" db:"-"`
}
