package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/token-topup/topup-server/internal/report"
	"github.com/token-topup/topup-server/internal/sink"
	"github.com/token-topup/topup-server/internal/source"
)

// maxUploadBytes bounds the multipart form held in memory.
const maxUploadBytes = 10 << 20

// ========== Report handlers ==========

// HandleCreateReport runs the pipeline over a JSON payload carrying
// both collections inline.
func (s *RESTServer) HandleCreateReport(w http.ResponseWriter, r *http.Request) {
	runID := uuid.New()

	var req struct {
		Companies []interface{} `json:"companies"`
		Users     []interface{} `json:"users"`
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.runPipeline(r.Context(), w, runID, req.Companies, req.Users)
}

// HandleUploadReport runs the pipeline over two uploaded JSON files,
// the browser client's path. Uploads are parsed in memory; nothing is
// kept past the request.
func (s *RESTServer) HandleUploadReport(w http.ResponseWriter, r *http.Request) {
	runID := uuid.New()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	companies, err := formRecords(r, "companies")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	users, err := formRecords(r, "users")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.runPipeline(r.Context(), w, runID, companies, users)
}

// runPipeline executes one run over in-memory records and responds
// with the grouped data, the rendered text, and the run stats.
func (s *RESTServer) runPipeline(ctx context.Context, w http.ResponseWriter, runID uuid.UUID, companies, users []interface{}) {
	out := &sink.BufferSink{}
	runner := report.NewRunner(
		source.NewStaticSource(companies),
		source.NewStaticSource(users),
		out,
	)

	rep, err := runner.Run(ctx)
	if err != nil {
		log.Error().Err(err).Str("runID", runID.String()).Msg("Report run failed")
		s.respondError(w, http.StatusInternalServerError, "report run failed")
		return
	}

	for _, n := range s.notifiers {
		n.ReportCompleted(ctx, runID, rep)
	}

	log.Info().
		Str("runID", runID.String()).
		Int("groups", len(rep.Groups)).
		Int("eligibleUsers", rep.Stats.EligibleUsers).
		Int("rejectedCompanies", rep.Stats.RejectedCompanies).
		Int("rejectedUsers", rep.Stats.RejectedUsers).
		Msg("Report generated")

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"run_id": runID,
		"groups": rep.Groups,
		"report": rep.Text,
		"stats":  rep.Stats,
	})
}

// formRecords reads one uploaded JSON file from the multipart form.
func formRecords(r *http.Request, field string) ([]interface{}, error) {
	f, _, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing %s file", field)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var records []interface{}
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("invalid %s file: expected a JSON array", field)
	}

	return records, nil
}
