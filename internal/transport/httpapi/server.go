package httpapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"contentops/internal/config"
	"contentops/internal/domain"
	"contentops/internal/engine"
	"contentops/internal/stream"
)

// CycleEngine is the two-phase cycle contract: Prepare surfaces hard errors
// as plain HTTP responses, Execute owns the stream once it is open.
type CycleEngine interface {
	Prepare(ctx context.Context, projectID, accountID int64) (*engine.Plan, error)
	Execute(ctx context.Context, plan *engine.Plan, emitter *stream.Emitter) *domain.CycleStats
}

// ArtifactReader serves the artifact listing endpoint.
type ArtifactReader interface {
	ListByProject(ctx context.Context, projectID int64) ([]domain.ContentArtifact, error)
	CountByProject(ctx context.Context, projectID int64) (int, error)
}

// InsightReader serves the pending-insights endpoint.
type InsightReader interface {
	ListPending(ctx context.Context, projectID int64) ([]domain.Insight, error)
}

// ActivityReader serves the activity feed endpoint.
type ActivityReader interface {
	ListByProject(ctx context.Context, projectID int64, limit int) ([]domain.ActivityLogEntry, error)
}

// LedgerReader serves the credit balance and history endpoints.
type LedgerReader interface {
	Balance(ctx context.Context, accountID int64) (int64, error)
	ListByAccount(ctx context.Context, accountID int64, limit int) ([]domain.CreditTransaction, error)
}

type Server struct {
	engine    CycleEngine
	artifacts ArtifactReader
	insights  InsightReader
	activity  ActivityReader
	ledger    LedgerReader
	logger    *slog.Logger

	token        string
	heartbeat    time.Duration
	cycleTimeout time.Duration
	defaults     config.CycleConfig
}

type Deps struct {
	Engine    CycleEngine
	Artifacts ArtifactReader
	Insights  InsightReader
	Activity  ActivityReader
	Ledger    LedgerReader
	Logger    *slog.Logger
	Server    config.ServerConfig
	Stream    config.StreamConfig
	Cycle     config.CycleConfig
}

func NewServer(deps Deps) *Server {
	return &Server{
		engine:       deps.Engine,
		artifacts:    deps.Artifacts,
		insights:     deps.Insights,
		activity:     deps.Activity,
		ledger:       deps.Ledger,
		logger:       deps.Logger,
		token:        deps.Server.APIToken,
		heartbeat:    deps.Stream.HeartbeatInterval,
		cycleTimeout: deps.Cycle.Timeout,
		defaults:     deps.Cycle,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/v1/cycles/run", s.auth(s.handleRunCycle))
	mux.HandleFunc("GET /api/v1/artifacts", s.auth(s.handleListArtifacts))
	mux.HandleFunc("GET /api/v1/insights", s.auth(s.handleListInsights))
	mux.HandleFunc("GET /api/v1/activity", s.auth(s.handleListActivity))
	mux.HandleFunc("GET /api/v1/credits", s.auth(s.handleCredits))

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// auth enforces the static bearer token when one is configured.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" {
			header := r.Header.Get("Authorization")
			got, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(s.token)) != 1 {
				writeError(w, http.StatusUnauthorized, "invalid or missing bearer token")
				return
			}
		}
		next(w, r)
	}
}

type runCycleRequest struct {
	ProjectID int64 `json:"projectId"`
	AccountID int64 `json:"accountId"`
}

// handleRunCycle is the streaming endpoint. Pre-flight failures return plain
// JSON status codes; once Prepare succeeds the response switches to SSE and
// every later failure arrives as a terminal error frame on the stream.
func (s *Server) handleRunCycle(w http.ResponseWriter, r *http.Request) {
	var req runCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProjectID == 0 {
		req.ProjectID = s.defaults.ProjectID
	}
	if req.AccountID == 0 {
		req.AccountID = s.defaults.AccountID
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cycleTimeout)
	defer cancel()

	plan, err := s.engine.Prepare(ctx, req.ProjectID, req.AccountID)
	if err != nil {
		s.writePrepareError(w, err)
		return
	}

	sink, err := stream.NewSSESink(w)
	if err != nil {
		plan.Release()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	emitter := stream.NewEmitter(sink, s.heartbeat)
	stats := s.engine.Execute(ctx, plan, emitter)

	s.logger.Info("cycle request finished",
		"project_id", req.ProjectID,
		"action", stats.Action,
		"generated", stats.Generated,
		"credits_used", stats.CreditsUsed,
	)
}

func (s *Server) writePrepareError(w http.ResponseWriter, err error) {
	var insufficient *domain.InsufficientCreditsError
	if errors.As(err, &insufficient) {
		writeJSON(w, http.StatusPaymentRequired, map[string]any{
			"error":    insufficient.Error(),
			"required": insufficient.Required,
			"balance":  insufficient.Balance,
		})
		return
	}

	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, notFound.Error())
		return
	}

	s.logger.Error("cycle pre-flight failed", "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	projectID, err := queryID(r, "project_id", s.defaults.ProjectID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	artifacts, err := s.artifacts.ListByProject(r.Context(), projectID)
	if err != nil {
		s.logger.Error("list artifacts failed", "project_id", projectID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list artifacts")
		return
	}

	total, err := s.artifacts.CountByProject(r.Context(), projectID)
	if err != nil {
		s.logger.Error("count artifacts failed", "project_id", projectID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to count artifacts")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"artifacts": artifacts,
		"total":     total,
	})
}

func (s *Server) handleListInsights(w http.ResponseWriter, r *http.Request) {
	projectID, err := queryID(r, "project_id", s.defaults.ProjectID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	insights, err := s.insights.ListPending(r.Context(), projectID)
	if err != nil {
		s.logger.Error("list insights failed", "project_id", projectID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list insights")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"insights": insights})
}

func (s *Server) handleListActivity(w http.ResponseWriter, r *http.Request) {
	projectID, err := queryID(r, "project_id", s.defaults.ProjectID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := s.activity.ListByProject(r.Context(), projectID, 100)
	if err != nil {
		s.logger.Error("list activity failed", "project_id", projectID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list activity")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"activity": entries})
}

func (s *Server) handleCredits(w http.ResponseWriter, r *http.Request) {
	accountID, err := queryID(r, "account_id", s.defaults.AccountID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	balance, err := s.ledger.Balance(r.Context(), accountID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			writeError(w, http.StatusNotFound, notFound.Error())
			return
		}
		s.logger.Error("read balance failed", "account_id", accountID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read balance")
		return
	}

	txs, err := s.ledger.ListByAccount(r.Context(), accountID, 50)
	if err != nil {
		s.logger.Error("list transactions failed", "account_id", accountID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"balance":      balance,
		"transactions": txs,
	})
}

func queryID(r *http.Request, name string, fallback int64) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
