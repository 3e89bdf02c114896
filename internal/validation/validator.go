package validation

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/token-topup/topup-server/internal/models"
)

// Validator classifies raw input records as well-formed or rejected.
// A rejection drops the record from further processing; it is never a
// run failure.
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// RejectError describes why a record failed validation.
type RejectError struct {
	Kind   string
	Field  string
	Reason string
}

func (e *RejectError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s rejected: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s rejected: field %q %s", e.Kind, e.Field, e.Reason)
}

func reject(kind, field, reason string) *RejectError {
	return &RejectError{Kind: kind, Field: field, Reason: reason}
}

// Company validates a raw company record. Validity requires a keyed
// record with an integer id, text name, and integer top_up.
//
// email_status is deliberately read leniently: anything but a JSON
// true means the company has not granted permission to email. It never
// causes a rejection.
func (v *Validator) Company(raw interface{}) (models.Company, error) {
	rec, ok := raw.(map[string]interface{})
	if !ok {
		return models.Company{}, reject("company", "", "not a keyed record")
	}

	id, ok := intField(rec, "id")
	if !ok {
		return models.Company{}, reject("company", "id", "must be an integer")
	}

	name, ok := stringField(rec, "name")
	if !ok {
		return models.Company{}, reject("company", "name", "must be text")
	}

	topUp, ok := intField(rec, "top_up")
	if !ok {
		return models.Company{}, reject("company", "top_up", "must be an integer")
	}

	emailStatus, _ := boolField(rec, "email_status")

	return models.Company{
		ID:          id,
		Name:        name,
		TopUp:       topUp,
		EmailStatus: emailStatus,
	}, nil
}

// User validates a raw user record. Validity requires a keyed record
// with an integer company_id, text last_name, boolean active_status,
// boolean email_status, and integer tokens. first_name and email are
// unconstrained and read as-is.
func (v *Validator) User(raw interface{}) (models.User, error) {
	rec, ok := raw.(map[string]interface{})
	if !ok {
		return models.User{}, reject("user", "", "not a keyed record")
	}

	companyID, ok := intField(rec, "company_id")
	if !ok {
		return models.User{}, reject("user", "company_id", "must be an integer")
	}

	lastName, ok := stringField(rec, "last_name")
	if !ok {
		return models.User{}, reject("user", "last_name", "must be text")
	}

	activeStatus, ok := boolField(rec, "active_status")
	if !ok {
		return models.User{}, reject("user", "active_status", "must be a boolean")
	}

	emailStatus, ok := boolField(rec, "email_status")
	if !ok {
		return models.User{}, reject("user", "email_status", "must be a boolean")
	}

	tokens, ok := intField(rec, "tokens")
	if !ok {
		return models.User{}, reject("user", "tokens", "must be an integer")
	}

	firstName, _ := stringField(rec, "first_name")
	email, _ := stringField(rec, "email")

	return models.User{
		CompanyID:    companyID,
		LastName:     lastName,
		FirstName:    firstName,
		Email:        email,
		ActiveStatus: activeStatus,
		EmailStatus:  emailStatus,
		Tokens:       tokens,
	}, nil
}

// intField reads a strictly integral numeric field. Sources decode
// with json.Number so 1 passes while 1.5 and "1" do not; plain ints
// and whole floats are accepted for in-memory callers.
func intField(rec map[string]interface{}, key string) (int64, bool) {
	value, ok := rec[key]
	if !ok {
		return 0, false
	}

	switch n := value.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func stringField(rec map[string]interface{}, key string) (string, bool) {
	value, ok := rec[key]
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

func boolField(rec map[string]interface{}, key string) (bool, bool) {
	value, ok := rec[key]
	if !ok {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}
