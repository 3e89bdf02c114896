package models

// Company represents a top-up granting organization. Companies are
// read-only within a run: they are parsed from the input source and
// discarded once the report is produced.
type Company struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TopUp       int64  `json:"top_up"`
	EmailStatus bool   `json:"email_status"`
}
