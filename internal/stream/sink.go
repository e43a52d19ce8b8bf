package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// SSESink frames JSON onto a Server-Sent-Events response. Heartbeats go out
// as SSE comment lines, which clients ignore.
type SSESink struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSESink prepares the response for streaming. It returns an error when
// the ResponseWriter cannot flush, since buffered SSE defeats keep-alive.
func NewSSESink(w http.ResponseWriter) (*SSESink, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSESink{w: w, flusher: flusher}, nil
}

func (s *SSESink) WriteFrame(frame Frame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s *SSESink) WriteHeartbeat() error {
	if _, err := fmt.Fprint(s.w, ": keep-alive\n\n"); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// ChannelSink collects frames in memory. Used by tests and anywhere the
// transport framing is not needed.
type ChannelSink struct {
	mu         sync.Mutex
	frames     []Frame
	heartbeats int
}

func NewChannelSink() *ChannelSink {
	return &ChannelSink{}
}

func (c *ChannelSink) WriteFrame(frame Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, frame)
	return nil
}

func (c *ChannelSink) WriteHeartbeat() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.heartbeats++
	return nil
}

func (c *ChannelSink) Frames() []Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Frame, len(c.frames))
	copy(out, c.frames)
	return out
}

func (c *ChannelSink) Heartbeats() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.heartbeats
}

// DiscardSink drops everything. Used for unattended scheduler-driven cycles.
type DiscardSink struct{}

func (DiscardSink) WriteFrame(Frame) error { return nil }
func (DiscardSink) WriteHeartbeat() error  { return nil }
