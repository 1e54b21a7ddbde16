package models

import "time"

// Moment is an officiating incident worth reviewing (penalty call, red card, VAR check...).
type Moment struct {
	ID          int       `json:"id" db:"id"`
	MatchID     int       `json:"match_id" db:"match_id"`
	Minute      int       `json:"minute" db:"minute"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	VideoURL    *string   `json:"video_url,omitempty" db:"video_url"`
	EmbedURL    *string   `json:"embed_url,omitempty" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	CommentCount int `json:"comment_count" db:"-"`
}
