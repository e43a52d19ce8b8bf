package stream

import (
	"sync"
	"time"
)

// Sink receives frames and keep-alive heartbeats from an Emitter.
type Sink interface {
	WriteFrame(frame Frame) error
	WriteHeartbeat() error
}

// Emitter wraps one executor invocation in an ordered frame channel. It
// guarantees exactly one terminal frame, emits heartbeats while the stream is
// idle, and turns every write after close into a no-op.
type Emitter struct {
	mu        sync.Mutex
	sink      Sink
	closed    bool
	terminal  bool
	lastWrite time.Time

	stopHeartbeat chan struct{}
	heartbeatDone chan struct{}
}

// NewEmitter starts the heartbeat timer immediately when interval > 0. The
// timer is cancelled by Close from every exit path.
func NewEmitter(sink Sink, heartbeat time.Duration) *Emitter {
	e := &Emitter{
		sink:      sink,
		lastWrite: time.Now(),
	}

	if heartbeat > 0 {
		e.stopHeartbeat = make(chan struct{})
		e.heartbeatDone = make(chan struct{})
		go e.heartbeatLoop(heartbeat)
	}

	return e
}

func (e *Emitter) heartbeatLoop(interval time.Duration) {
	defer close(e.heartbeatDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopHeartbeat:
			return
		case <-ticker.C:
			e.mu.Lock()
			if e.closed {
				e.mu.Unlock()
				return
			}
			// Only keep the connection alive when no substantive frame
			// went out during the last interval.
			if time.Since(e.lastWrite) >= interval {
				if err := e.sink.WriteHeartbeat(); err != nil {
					e.closed = true
					e.mu.Unlock()
					return
				}
			}
			e.mu.Unlock()
		}
	}
}

// Emit writes a non-terminal frame. It is a no-op once the stream is closed
// or a terminal frame has been sent.
func (e *Emitter) Emit(frame Frame) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.terminal {
		return
	}

	if err := e.sink.WriteFrame(frame); err != nil {
		// Caller disconnected; stop emitting rather than raising.
		e.closed = true
		return
	}
	e.lastWrite = time.Now()

	if frame.Terminal() {
		e.terminal = true
	}
}

// Start announces that generation is beginning.
func (e *Emitter) Start(title string) {
	e.Emit(Frame{Type: FrameStart, Title: title})
}

// Progress sends a human-readable status update.
func (e *Emitter) Progress(message, step string, itemID int64) {
	e.Emit(Frame{Type: FrameProgress, Message: message, Step: step, ItemID: itemID})
}

// Chunk sends incremental text.
func (e *Emitter) Chunk(content string) {
	e.Emit(Frame{Type: FrameChunk, Content: content})
}

// Complete sends the terminal success frame and closes the stream.
func (e *Emitter) Complete(result any, creditsUsed int64) {
	ok := true
	e.Emit(Frame{Type: FrameComplete, Success: &ok, Result: result, CreditsUsed: creditsUsed})
	e.Close()
}

// Fail sends the terminal error frame and closes the stream.
func (e *Emitter) Fail(message string) {
	notOK := false
	e.Emit(Frame{Type: FrameError, Success: &notOK, Error: message})
	e.Close()
}

// Close stops the heartbeat and marks the stream closed. Idempotent; safe to
// defer alongside an explicit Complete or Fail.
func (e *Emitter) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()

	if e.stopHeartbeat != nil {
		close(e.stopHeartbeat)
		<-e.heartbeatDone
	}
}

// Closed reports whether the stream has been closed.
func (e *Emitter) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}
