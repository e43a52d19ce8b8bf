package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentops/internal/config"
	"contentops/internal/domain"
	"contentops/internal/engine"
	"contentops/internal/stream"
)

type fakeEngine struct {
	prepareErr error
	plan       *engine.Plan
	gotProject int64
	gotAccount int64
}

func (f *fakeEngine) Prepare(_ context.Context, projectID, accountID int64) (*engine.Plan, error) {
	f.gotProject = projectID
	f.gotAccount = accountID
	if f.prepareErr != nil {
		return nil, f.prepareErr
	}
	return f.plan, nil
}

func (f *fakeEngine) Execute(_ context.Context, _ *engine.Plan, emitter *stream.Emitter) *domain.CycleStats {
	emitter.Start("Topic")
	emitter.Complete(map[string]any{"artifactId": int64(11)}, 70)
	return &domain.CycleStats{Action: domain.ActionCreateNew, Generated: true, CreditsUsed: 70}
}

type fakeArtifacts struct{ items []domain.ContentArtifact }

func (f *fakeArtifacts) ListByProject(context.Context, int64) ([]domain.ContentArtifact, error) {
	return f.items, nil
}

func (f *fakeArtifacts) CountByProject(context.Context, int64) (int, error) {
	return len(f.items), nil
}

type fakeInsights struct{ pending []domain.Insight }

func (f *fakeInsights) ListPending(context.Context, int64) ([]domain.Insight, error) {
	return f.pending, nil
}

type fakeActivity struct{ entries []domain.ActivityLogEntry }

func (f *fakeActivity) ListByProject(context.Context, int64, int) ([]domain.ActivityLogEntry, error) {
	return f.entries, nil
}

type fakeLedger struct {
	balance int64
	err     error
	txs     []domain.CreditTransaction
}

func (f *fakeLedger) Balance(context.Context, int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.balance, nil
}

func (f *fakeLedger) ListByAccount(context.Context, int64, int) ([]domain.CreditTransaction, error) {
	return f.txs, nil
}

func newTestServer(eng CycleEngine, token string) *Server {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewServer(Deps{
		Engine:    eng,
		Artifacts: &fakeArtifacts{items: []domain.ContentArtifact{{ID: 1, Title: "T"}}},
		Insights:  &fakeInsights{pending: []domain.Insight{{ID: 100, Kind: domain.KindLowCTR, Priority: 8.5}}},
		Activity:  &fakeActivity{},
		Ledger:    &fakeLedger{balance: 90},
		Logger:    logger,
		Server:    config.ServerConfig{APIToken: token},
		Stream:    config.StreamConfig{HeartbeatInterval: time.Second},
		Cycle:     config.CycleConfig{Timeout: 5 * time.Second, ProjectID: 7, AccountID: 9},
	})
}

func TestRunCycle_StreamsFrames(t *testing.T) {
	eng := &fakeEngine{plan: &engine.Plan{ProjectID: 7, AccountID: 9, Action: domain.ActionCreateNew}}
	server := newTestServer(eng, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cycles/run", strings.NewReader(`{"projectId": 12, "accountId": 34}`))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, int64(12), eng.gotProject)
	assert.Equal(t, int64(34), eng.gotAccount)

	body := rec.Body.String()
	assert.Contains(t, body, `data: {"type":"start"`)
	assert.Contains(t, body, `"type":"complete"`)
	assert.Contains(t, body, `"creditsUsed":70`)
}

func TestRunCycle_EmptyBodyFallsBackToConfiguredIDs(t *testing.T) {
	eng := &fakeEngine{plan: &engine.Plan{}}
	server := newTestServer(eng, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cycles/run", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), eng.gotProject)
	assert.Equal(t, int64(9), eng.gotAccount)
}

func TestRunCycle_InsufficientCreditsIs402(t *testing.T) {
	eng := &fakeEngine{prepareErr: &domain.InsufficientCreditsError{AccountID: 9, Required: 60, Balance: 10}}
	server := newTestServer(eng, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cycles/run", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, float64(60), payload["required"])
	assert.Equal(t, float64(10), payload["balance"])
}

func TestRunCycle_NotFoundIs404(t *testing.T) {
	eng := &fakeEngine{prepareErr: &domain.NotFoundError{Entity: "account", ID: 9}}
	server := newTestServer(eng, "")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cycles/run", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuth_RejectsMissingOrWrongToken(t *testing.T) {
	server := newTestServer(&fakeEngine{plan: &engine.Plan{}}, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cycles/run", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/cycles/run", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_AcceptsCorrectToken(t *testing.T) {
	server := newTestServer(&fakeEngine{plan: &engine.Plan{}}, "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cycles/run", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListArtifacts(t *testing.T) {
	server := newTestServer(&fakeEngine{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/artifacts?project_id=7", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload["artifacts"], 1)
	assert.Equal(t, float64(1), payload["total"])
}

func TestListInsights(t *testing.T) {
	server := newTestServer(&fakeEngine{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/insights?project_id=7", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"low_ctr"`)
}

func TestCredits(t *testing.T) {
	server := newTestServer(&fakeEngine{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/credits?account_id=9", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, float64(90), payload["balance"])
}

func TestCredits_BadID(t *testing.T) {
	server := newTestServer(&fakeEngine{}, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/credits?account_id=abc", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz_NoAuthRequired(t *testing.T) {
	server := newTestServer(&fakeEngine{}, "s3cret")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
