package models

import (
	"time"

	"github.com/Dosada05/referee-review/embeds"
)

type Comment struct {
	ID        int       `json:"id" db:"id"`
	MomentID  int       `json:"moment_id" db:"moment_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	AuthorNickname string           `json:"author_nickname,omitempty" db:"-"`
	Segments       []embeds.Segment `json:"segments" db:"-"`
}
