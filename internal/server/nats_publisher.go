package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/token-topup/topup-server/internal/models"
)

// reportSubject carries run-completed events.
const reportSubject = "reports.completed"

// ReportPublisher publishes a summary event for every completed report
// run so other systems can react to finished reports. Publishing is
// best-effort: a failure is logged and never fails the run.
type ReportPublisher struct {
	nc *nats.Conn
}

// NewReportPublisher creates a report event publisher
func NewReportPublisher(nc *nats.Conn) *ReportPublisher {
	return &ReportPublisher{nc: nc}
}

// ReportCompleted publishes the run summary.
func (p *ReportPublisher) ReportCompleted(ctx context.Context, runID uuid.UUID, rep *models.Report) {
	event := map[string]interface{}{
		"runID":             runID.String(),
		"groups":            len(rep.Groups),
		"eligibleUsers":     rep.Stats.EligibleUsers,
		"rejectedCompanies": rep.Stats.RejectedCompanies,
		"rejectedUsers":     rep.Stats.RejectedUsers,
		"completedAt":       time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal report event")
		return
	}

	if err := p.nc.Publish(reportSubject, data); err != nil {
		log.Error().
			Err(err).
			Str("subject", reportSubject).
			Str("runID", runID.String()).
			Msg("Failed to publish report event")
		return
	}

	log.Debug().
		Str("subject", reportSubject).
		Str("runID", runID.String()).
		Msg("Report event published")
}
