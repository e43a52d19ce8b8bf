package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentops/internal/config"
	"contentops/internal/domain"
	"contentops/testdata/utils"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestCMS(t *testing.T, handler http.Handler) *CMS {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewCMS(config.CMSConfig{
		BaseURL:  server.URL,
		Username: "bot",
		Password: "secret",
		Timeout:  5 * time.Second,
	}, testLogger())
}

func TestPublish_CreatesWhenNoMatch(t *testing.T) {
	var createdPayload postPayload

	mux := http.NewServeMux()
	mux.HandleFunc("GET /posts", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "bot", user)
		assert.Equal(t, "secret", pass)
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("POST /posts", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&createdPayload)
		_, _ = w.Write([]byte(`{"id": 321}`))
	})

	cms := newTestCMS(t, mux)
	ref, err := cms.Publish(context.Background(), &domain.ContentArtifact{
		ID:     1,
		Title:  "Email Automation",
		Body:   "# Email Automation\n\nContent.",
		Status: domain.ArtifactCompleted,
	})

	require.NoError(t, err)
	assert.Equal(t, "321", ref)
	assert.Equal(t, "Email Automation", createdPayload.Title)
	assert.Equal(t, "publish", createdPayload.Status)
}

func TestPublish_UpdatesExistingRef(t *testing.T) {
	var updatedPath string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /posts/{ref}", func(w http.ResponseWriter, r *http.Request) {
		updatedPath = r.URL.Path
		_, _ = w.Write([]byte(`{"id": 99}`))
	})

	cms := newTestCMS(t, mux)
	ref, err := cms.Publish(context.Background(), &domain.ContentArtifact{
		ID:          1,
		Title:       "Email Automation",
		Body:        "Content.",
		ExternalRef: utils.Ptr("99"),
	})

	require.NoError(t, err)
	assert.Equal(t, "99", ref)
	assert.Equal(t, "/posts/99", updatedPath)
}

func TestPublish_FindsByTitleThenUpdates(t *testing.T) {
	var searched string
	var updatedPath string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /posts", func(w http.ResponseWriter, r *http.Request) {
		searched = r.URL.Query().Get("search")
		_, _ = w.Write([]byte(`[{"id": 42}]`))
	})
	mux.HandleFunc("POST /posts/{ref}", func(w http.ResponseWriter, r *http.Request) {
		updatedPath = r.URL.Path
		_, _ = w.Write([]byte(`{"id": 42}`))
	})

	cms := newTestCMS(t, mux)
	ref, err := cms.Publish(context.Background(), &domain.ContentArtifact{
		ID:    1,
		Title: "Email Automation",
		Body:  "Content.",
	})

	require.NoError(t, err)
	assert.Equal(t, "42", ref)
	assert.Equal(t, "Email Automation", searched)
	assert.Equal(t, "/posts/42", updatedPath)
}

func TestPublish_ServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /posts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("POST /posts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	cms := newTestCMS(t, mux)
	_, err := cms.Publish(context.Background(), &domain.ContentArtifact{Title: "T", Body: "B"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cms returned")
}

func TestPublish_Unconfigured(t *testing.T) {
	cms := NewCMS(config.CMSConfig{}, testLogger())

	_, err := cms.Publish(context.Background(), &domain.ContentArtifact{Title: "T"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
