package models

import "time"

// Round is a numbered matchday of a league. IsFocus is owned by the focus job.
type Round struct {
	ID        int       `json:"id" db:"id"`
	LeagueID  int       `json:"league_id" db:"league_id"`
	Number    int       `json:"number" db:"number"`
	IsFocus   bool      `json:"is_focus" db:"is_focus"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Matches []Match `json:"matches,omitempty" db:"-"`
}
