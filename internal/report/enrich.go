package report

import (
	"github.com/rs/zerolog/log"

	"github.com/token-topup/topup-server/internal/models"
)

// companyIndex builds the join index. Company ids are a unique key in
// the source data; a duplicate id keeps the last record seen.
func companyIndex(companies []models.Company) map[int64]models.Company {
	idx := make(map[int64]models.Company, len(companies))
	for _, c := range companies {
		idx[c.ID] = c
	}
	return idx
}

// Enrich filters users down to the eligible set and computes the
// derived fields. Eligible means active_status is true and company_id
// resolves to a valid company. Inactive and orphaned users are dropped
// with a diagnostic log entry only.
//
// new_token_balance is exact integer arithmetic: negative and zero
// values pass through unmodified, no clamping. should_send_email
// requires both the user's and the company's email_status.
func Enrich(users []models.User, companies []models.Company, stats *models.RunStats) []models.EnrichedUser {
	if stats == nil {
		stats = &models.RunStats{}
	}

	idx := companyIndex(companies)
	enriched := make([]models.EnrichedUser, 0, len(users))

	for _, u := range users {
		if !u.ActiveStatus {
			stats.InactiveUsers++
			log.Debug().
				Str("lastName", u.LastName).
				Int64("companyID", u.CompanyID).
				Msg("Skipping inactive user")
			continue
		}

		company, ok := idx[u.CompanyID]
		if !ok {
			stats.OrphanedUsers++
			log.Debug().
				Str("lastName", u.LastName).
				Int64("companyID", u.CompanyID).
				Msg("Skipping user with unknown company")
			continue
		}

		enriched = append(enriched, models.EnrichedUser{
			User:            u,
			CompanyName:     company.Name,
			TopUpAmount:     company.TopUp,
			NewTokenBalance: u.Tokens + company.TopUp,
			ShouldSendEmail: u.EmailStatus && company.EmailStatus,
		})
	}

	stats.EligibleUsers = len(enriched)
	return enriched
}
