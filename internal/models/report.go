package models

// EnrichedUser is an eligible user joined to its company, with the
// derived top-up fields computed. Immutable once built.
type EnrichedUser struct {
	User
	CompanyName     string `json:"company_name"`
	TopUpAmount     int64  `json:"top_up_amount"`
	NewTokenBalance int64  `json:"new_token_balance"`
	ShouldSendEmail bool   `json:"should_send_email"`
}

// CompanyGroup is the set of eligible users sharing one company,
// ordered by last name (case-insensitive, stable), plus the company
// metadata and the aggregate top-up total.
type CompanyGroup struct {
	CompanyID   int64          `json:"company_id"`
	CompanyName string         `json:"company_name"`
	Users       []EnrichedUser `json:"users"`
	TotalTopUps int64          `json:"total_top_ups"`
}

// RunStats counts what each stage kept and dropped. Record-level drops
// are diagnostics only and never fail a run.
type RunStats struct {
	ValidCompanies    int `json:"valid_companies"`
	ValidUsers        int `json:"valid_users"`
	RejectedCompanies int `json:"rejected_companies"`
	RejectedUsers     int `json:"rejected_users"`
	InactiveUsers     int `json:"inactive_users"`
	OrphanedUsers     int `json:"orphaned_users"`
	EligibleUsers     int `json:"eligible_users"`
}

// Report is the complete outcome of one run: the grouped data for
// structured consumers plus the rendered text artifact.
type Report struct {
	Groups []CompanyGroup `json:"groups"`
	Text   string         `json:"report"`
	Stats  RunStats       `json:"stats"`
}
