package models

import "time"

type Referee struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Nationality *string   `json:"nationality,omitempty" db:"nationality"`
	PhotoKey    *string   `json:"-" db:"photo_key"`
	PhotoURL    *string   `json:"photo_url,omitempty" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	AverageRating float64 `json:"average_rating" db:"-"`
	RatingCount   int     `json:"rating_count" db:"-"`
}

// RefereeRating is one fan's score for a referee's performance in one match.
type RefereeRating struct {
	ID        int       `json:"id" db:"id"`
	RefereeID int       `json:"referee_id" db:"referee_id"`
	MatchID   int       `json:"match_id" db:"match_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Score     int       `json:"score" db:"score"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
