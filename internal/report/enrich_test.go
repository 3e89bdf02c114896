package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/token-topup/topup-server/internal/models"
)

func testCompanies() []models.Company {
	return []models.Company{
		{ID: 1, Name: "Blue Cat Inc.", TopUp: 71, EmailStatus: false},
		{ID: 2, Name: "Yellow Mouse Inc.", TopUp: 37, EmailStatus: true},
	}
}

func TestEnrichComputesDerivedFields(t *testing.T) {
	users := []models.User{
		{CompanyID: 1, LastName: "Doe", FirstName: "John", Email: "john.doe@test.com", ActiveStatus: true, EmailStatus: true, Tokens: 50},
	}

	enriched := Enrich(users, testCompanies(), nil)
	require.Len(t, enriched, 1)

	e := enriched[0]
	assert.Equal(t, "Blue Cat Inc.", e.CompanyName)
	assert.Equal(t, int64(71), e.TopUpAmount)
	assert.Equal(t, int64(121), e.NewTokenBalance)
	assert.False(t, e.ShouldSendEmail)
}

func TestEnrichExactIntegerArithmetic(t *testing.T) {
	companies := []models.Company{
		{ID: 1, Name: "Negative Corp", TopUp: -20},
		{ID: 2, Name: "Zero Corp", TopUp: 0},
	}
	users := []models.User{
		{CompanyID: 1, LastName: "A", ActiveStatus: true, Tokens: -5},
		{CompanyID: 2, LastName: "B", ActiveStatus: true, Tokens: 7},
	}

	enriched := Enrich(users, companies, nil)
	require.Len(t, enriched, 2)

	// Negative and zero values pass through, no clamping.
	assert.Equal(t, int64(-25), enriched[0].NewTokenBalance)
	assert.Equal(t, int64(7), enriched[1].NewTokenBalance)
}

func TestEnrichSkipsInactiveUsers(t *testing.T) {
	users := []models.User{
		{CompanyID: 1, LastName: "Doe", ActiveStatus: false, Tokens: 50},
		{CompanyID: 1, LastName: "Roe", ActiveStatus: true, Tokens: 10},
	}

	stats := &models.RunStats{}
	enriched := Enrich(users, testCompanies(), stats)

	require.Len(t, enriched, 1)
	assert.Equal(t, "Roe", enriched[0].LastName)
	assert.Equal(t, 1, stats.InactiveUsers)
	assert.Equal(t, 1, stats.EligibleUsers)
}

func TestEnrichSkipsOrphanedUsers(t *testing.T) {
	users := []models.User{
		{CompanyID: 99, LastName: "Lost", ActiveStatus: true, Tokens: 50},
		{CompanyID: 2, LastName: "Found", ActiveStatus: true, Tokens: 10},
	}

	stats := &models.RunStats{}
	enriched := Enrich(users, testCompanies(), stats)

	require.Len(t, enriched, 1)
	assert.Equal(t, "Found", enriched[0].LastName)
	assert.Equal(t, 1, stats.OrphanedUsers)
}

func TestEnrichEmailDecisionMatrix(t *testing.T) {
	// should_send_email is a strict boolean AND of user and company
	// email_status; the three other combinations all read false.
	cases := []struct {
		user    bool
		company bool
		want    bool
	}{
		{true, true, true},
		{true, false, false},
		{false, true, false},
		{false, false, false},
	}

	for _, tc := range cases {
		companies := []models.Company{{ID: 1, Name: "C", TopUp: 1, EmailStatus: tc.company}}
		users := []models.User{{CompanyID: 1, LastName: "U", ActiveStatus: true, EmailStatus: tc.user}}

		enriched := Enrich(users, companies, nil)
		require.Len(t, enriched, 1)
		assert.Equal(t, tc.want, enriched[0].ShouldSendEmail,
			"user=%v company=%v", tc.user, tc.company)
	}
}

func TestEnrichEmptyInput(t *testing.T) {
	enriched := Enrich(nil, testCompanies(), nil)
	assert.Empty(t, enriched)
}
