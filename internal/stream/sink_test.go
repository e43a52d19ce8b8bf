package stream

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSESink_FramesAndHeartbeats(t *testing.T) {
	rec := httptest.NewRecorder()

	sink, err := NewSSESink(rec)
	require.NoError(t, err)

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	require.NoError(t, sink.WriteFrame(Frame{Type: FrameStart, Title: "Topic"}))
	require.NoError(t, sink.WriteHeartbeat())

	body := rec.Body.String()
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `data: {"type":"start","title":"Topic"}`, lines[0])
	assert.Equal(t, ": keep-alive", lines[1])
}

type noFlushWriter struct {
	*httptest.ResponseRecorder
}

// Flush is shadowed away so the embedded recorder stops satisfying
// http.Flusher.
func (noFlushWriter) Flush(int) {}

func TestNewSSESink_RequiresFlusher(t *testing.T) {
	_, err := NewSSESink(noFlushWriter{httptest.NewRecorder()})
	assert.Error(t, err)
}
