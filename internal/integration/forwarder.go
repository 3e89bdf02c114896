package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/token-topup/topup-server/internal/config"
	"github.com/token-topup/topup-server/internal/models"
)

// WebhookForwarder POSTs completed reports to a configured external
// endpoint. Delivery is best-effort: a failed POST is logged and the
// run result is unaffected.
type WebhookForwarder struct {
	endpoint string
	headers  map[string]string
	client   *http.Client
}

// NewWebhookForwarder creates a forwarder for the configured endpoint
func NewWebhookForwarder(cfg config.WebhookConfig) *WebhookForwarder {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &WebhookForwarder{
		endpoint: cfg.URL,
		headers:  cfg.Headers,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// ReportCompleted forwards the full report to the endpoint.
func (f *WebhookForwarder) ReportCompleted(ctx context.Context, runID uuid.UUID, rep *models.Report) {
	payload := map[string]interface{}{
		"runID":     runID.String(),
		"groups":    rep.Groups,
		"report":    rep.Text,
		"stats":     rep.Stats,
		"timestamp": time.Now(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal webhook payload")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewBuffer(data))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create webhook request")
		return
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		log.Error().
			Err(err).
			Str("endpoint", f.endpoint).
			Str("runID", runID.String()).
			Msg("Failed to forward report to webhook")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.Error().
			Int("status", resp.StatusCode).
			Str("endpoint", f.endpoint).
			Str("runID", runID.String()).
			Msg("Webhook forward failed")
		return
	}

	log.Debug().
		Str("endpoint", f.endpoint).
		Str("runID", runID.String()).
		Msg("Report forwarded to webhook")
}
