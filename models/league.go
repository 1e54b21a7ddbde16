package models

import "time"

type League struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Season    int       `json:"season" db:"season"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Rounds []Round `json:"rounds,omitempty" db:"-"`
}
