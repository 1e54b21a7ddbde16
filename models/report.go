package models

import "time"

type ReportStatus string

const (
	ReportStatusOpen     ReportStatus = "open"
	ReportStatusResolved ReportStatus = "resolved"
)

// Report flags a comment as abusive.
type Report struct {
	ID         int          `json:"id" db:"id"`
	CommentID  int          `json:"comment_id" db:"comment_id"`
	ReporterID int          `json:"reporter_id" db:"reporter_id"`
	Reason     string       `json:"reason" db:"reason"`
	Status     ReportStatus `json:"status" db:"status"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
}
