package report

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/token-topup/topup-server/internal/models"
	"github.com/token-topup/topup-server/internal/sink"
	"github.com/token-topup/topup-server/internal/source"
	"github.com/token-topup/topup-server/internal/validation"
)

// Runner executes one complete run: load both sources, run the
// pipeline stages, write the rendered text to the sink. Runs are
// independent and stateless; a Runner holds configuration only.
type Runner struct {
	companies source.Source
	users     source.Source
	output    sink.Sink
}

// NewRunner creates a runner over the given sources and sink.
func NewRunner(companies, users source.Source, output sink.Sink) *Runner {
	return &Runner{
		companies: companies,
		users:     users,
		output:    output,
	}
}

// Run performs the whole pass. Either source failing, or the sink
// failing, aborts the run with no usable output artifact. Record-level
// problems never surface here; they are dropped inside Build.
func (r *Runner) Run(ctx context.Context) (*models.Report, error) {
	companiesRaw, err := r.companies.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load companies: %w", err)
	}

	usersRaw, err := r.users.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	rep := Build(companiesRaw, usersRaw)

	if err := r.output.Write(ctx, rep.Text); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	return rep, nil
}

// Build runs the in-memory stages over already-loaded records:
// validate, filter, enrich, group, render. It cannot fail; malformed
// records are dropped and counted.
func Build(companiesRaw, usersRaw []interface{}) *models.Report {
	v := validation.NewValidator()
	stats := models.RunStats{}

	companies := make([]models.Company, 0, len(companiesRaw))
	for _, raw := range companiesRaw {
		company, err := v.Company(raw)
		if err != nil {
			stats.RejectedCompanies++
			log.Warn().Err(err).Msg("Dropping company record")
			continue
		}
		companies = append(companies, company)
	}
	stats.ValidCompanies = len(companies)

	users := make([]models.User, 0, len(usersRaw))
	for _, raw := range usersRaw {
		user, err := v.User(raw)
		if err != nil {
			stats.RejectedUsers++
			log.Warn().Err(err).Msg("Dropping user record")
			continue
		}
		users = append(users, user)
	}
	stats.ValidUsers = len(users)

	enriched := Enrich(users, companies, &stats)
	groups := Group(enriched)

	return &models.Report{
		Groups: groups,
		Text:   Render(groups),
		Stats:  stats,
	}
}
