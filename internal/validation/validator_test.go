package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCompanyRecord() map[string]interface{} {
	return map[string]interface{}{
		"id":           json.Number("1"),
		"name":         "Blue Cat Inc.",
		"top_up":       json.Number("71"),
		"email_status": true,
	}
}

func validUserRecord() map[string]interface{} {
	return map[string]interface{}{
		"company_id":    json.Number("1"),
		"last_name":     "Doe",
		"first_name":    "John",
		"email":         "john.doe@test.com",
		"active_status": true,
		"email_status":  true,
		"tokens":        json.Number("50"),
	}
}

func TestCompanyValid(t *testing.T) {
	v := NewValidator()

	company, err := v.Company(validCompanyRecord())
	require.NoError(t, err)

	assert.Equal(t, int64(1), company.ID)
	assert.Equal(t, "Blue Cat Inc.", company.Name)
	assert.Equal(t, int64(71), company.TopUp)
	assert.True(t, company.EmailStatus)
}

func TestCompanyNegativeAndZeroTopUp(t *testing.T) {
	v := NewValidator()

	rec := validCompanyRecord()
	rec["top_up"] = json.Number("-5")
	company, err := v.Company(rec)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), company.TopUp)

	rec["top_up"] = json.Number("0")
	company, err = v.Company(rec)
	require.NoError(t, err)
	assert.Equal(t, int64(0), company.TopUp)
}

func TestCompanyRejected(t *testing.T) {
	v := NewValidator()

	cases := map[string]interface{}{
		"scalar":        "not a record",
		"list":          []interface{}{"a"},
		"nil":           nil,
		"missing id":    dropField(validCompanyRecord(), "id"),
		"float id":      withField(validCompanyRecord(), "id", json.Number("1.5")),
		"string id":     withField(validCompanyRecord(), "id", "1"),
		"missing name":  dropField(validCompanyRecord(), "name"),
		"numeric name":  withField(validCompanyRecord(), "name", json.Number("3")),
		"missing topup": dropField(validCompanyRecord(), "top_up"),
		"bool topup":    withField(validCompanyRecord(), "top_up", true),
	}

	for name, raw := range cases {
		_, err := v.Company(raw)
		assert.Error(t, err, name)

		var rejected *RejectError
		assert.ErrorAs(t, err, &rejected, name)
	}
}

func TestCompanyEmailStatusCoercion(t *testing.T) {
	v := NewValidator()

	// Missing or non-boolean email_status reads as false: no email
	// unless the input proves permission. The company stays valid.
	rec := dropField(validCompanyRecord(), "email_status")
	company, err := v.Company(rec)
	require.NoError(t, err)
	assert.False(t, company.EmailStatus)

	rec = withField(validCompanyRecord(), "email_status", "yes")
	company, err = v.Company(rec)
	require.NoError(t, err)
	assert.False(t, company.EmailStatus)

	rec = withField(validCompanyRecord(), "email_status", false)
	company, err = v.Company(rec)
	require.NoError(t, err)
	assert.False(t, company.EmailStatus)
}

func TestUserValid(t *testing.T) {
	v := NewValidator()

	user, err := v.User(validUserRecord())
	require.NoError(t, err)

	assert.Equal(t, int64(1), user.CompanyID)
	assert.Equal(t, "Doe", user.LastName)
	assert.Equal(t, "John", user.FirstName)
	assert.Equal(t, "john.doe@test.com", user.Email)
	assert.True(t, user.ActiveStatus)
	assert.True(t, user.EmailStatus)
	assert.Equal(t, int64(50), user.Tokens)
}

func TestUserOptionalFields(t *testing.T) {
	v := NewValidator()

	// first_name and email carry no type constraint; absent reads as empty.
	rec := dropField(dropField(validUserRecord(), "first_name"), "email")
	user, err := v.User(rec)
	require.NoError(t, err)
	assert.Empty(t, user.FirstName)
	assert.Empty(t, user.Email)

	// last_name may be the empty string, only the type is checked.
	rec = withField(validUserRecord(), "last_name", "")
	user, err = v.User(rec)
	require.NoError(t, err)
	assert.Empty(t, user.LastName)
}

func TestUserRejected(t *testing.T) {
	v := NewValidator()

	cases := map[string]interface{}{
		"scalar":                 42,
		"nil":                    nil,
		"missing company_id":     dropField(validUserRecord(), "company_id"),
		"string company_id":      withField(validUserRecord(), "company_id", "1"),
		"float company_id":       withField(validUserRecord(), "company_id", json.Number("2.7")),
		"missing last_name":      dropField(validUserRecord(), "last_name"),
		"missing active_status":  dropField(validUserRecord(), "active_status"),
		"string active_status":   withField(validUserRecord(), "active_status", "true"),
		"missing email_status":   dropField(validUserRecord(), "email_status"),
		"numeric email_status":   withField(validUserRecord(), "email_status", json.Number("1")),
		"missing tokens":         dropField(validUserRecord(), "tokens"),
		"fractional tokens":      withField(validUserRecord(), "tokens", json.Number("10.5")),
		"string tokens":          withField(validUserRecord(), "tokens", "10"),
	}

	for name, raw := range cases {
		_, err := v.User(raw)
		assert.Error(t, err, name)
	}
}

func TestIntFieldAcceptsWholeFloatsAndInts(t *testing.T) {
	v := NewValidator()

	// In-memory callers may carry plain Go numbers instead of
	// json.Number; whole values are accepted, fractional are not.
	rec := withField(validUserRecord(), "tokens", float64(75))
	user, err := v.User(rec)
	require.NoError(t, err)
	assert.Equal(t, int64(75), user.Tokens)

	rec = withField(validUserRecord(), "tokens", 75)
	user, err = v.User(rec)
	require.NoError(t, err)
	assert.Equal(t, int64(75), user.Tokens)

	rec = withField(validUserRecord(), "tokens", 75.5)
	_, err = v.User(rec)
	assert.Error(t, err)
}

func dropField(rec map[string]interface{}, key string) map[string]interface{} {
	delete(rec, key)
	return rec
}

func withField(rec map[string]interface{}, key string, value interface{}) map[string]interface{} {
	rec[key] = value
	return rec
}
