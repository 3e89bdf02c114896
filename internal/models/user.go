package models

// User represents one user record from the input source.
// FirstName and Email carry no validation requirement and may be empty.
type User struct {
	CompanyID    int64  `json:"company_id"`
	LastName     string `json:"last_name"`
	FirstName    string `json:"first_name"`
	Email        string `json:"email"`
	ActiveStatus bool   `json:"active_status"`
	EmailStatus  bool   `json:"email_status"`
	Tokens       int64  `json:"tokens"`
}
