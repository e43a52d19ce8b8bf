package stream

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_OrderedFrames(t *testing.T) {
	sink := NewChannelSink()
	e := NewEmitter(sink, 0)

	e.Start("Topic")
	e.Progress("working", "generate", 5)
	e.Chunk("partial text")
	e.Complete(map[string]any{"artifactId": int64(5)}, 70)

	frames := sink.Frames()
	require.Len(t, frames, 4)
	assert.Equal(t, FrameStart, frames[0].Type)
	assert.Equal(t, "Topic", frames[0].Title)
	assert.Equal(t, FrameProgress, frames[1].Type)
	assert.Equal(t, "generate", frames[1].Step)
	assert.Equal(t, int64(5), frames[1].ItemID)
	assert.Equal(t, FrameChunk, frames[2].Type)
	assert.Equal(t, FrameComplete, frames[3].Type)
	require.NotNil(t, frames[3].Success)
	assert.True(t, *frames[3].Success)
	assert.Equal(t, int64(70), frames[3].CreditsUsed)
}

func TestEmitter_ExactlyOneTerminalFrame(t *testing.T) {
	sink := NewChannelSink()
	e := NewEmitter(sink, 0)

	e.Complete("done", 60)
	e.Fail("should not appear")
	e.Complete("should not appear either", 0)

	frames := sink.Frames()
	require.Len(t, frames, 1)
	assert.Equal(t, FrameComplete, frames[0].Type)
}

func TestEmitter_FailTerminates(t *testing.T) {
	sink := NewChannelSink()
	e := NewEmitter(sink, 0)

	e.Start("Topic")
	e.Fail("generation failed at parse")

	frames := sink.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, FrameError, frames[1].Type)
	require.NotNil(t, frames[1].Success)
	assert.False(t, *frames[1].Success)
	assert.Equal(t, "generation failed at parse", frames[1].Error)
	assert.True(t, e.Closed())
}

func TestEmitter_NoOpAfterClose(t *testing.T) {
	sink := NewChannelSink()
	e := NewEmitter(sink, 0)

	e.Close()
	e.Start("Topic")
	e.Progress("working", "generate", 1)

	assert.Empty(t, sink.Frames())
}

func TestEmitter_CloseIdempotent(t *testing.T) {
	e := NewEmitter(NewChannelSink(), 10*time.Millisecond)

	e.Close()
	e.Close()

	assert.True(t, e.Closed())
}

func TestEmitter_HeartbeatsWhileIdle(t *testing.T) {
	sink := NewChannelSink()
	e := NewEmitter(sink, 5*time.Millisecond)
	defer e.Close()

	assert.Eventually(t, func() bool {
		return sink.Heartbeats() >= 2
	}, time.Second, time.Millisecond)
}

func TestEmitter_HeartbeatStopsAfterClose(t *testing.T) {
	sink := NewChannelSink()
	e := NewEmitter(sink, 5*time.Millisecond)

	e.Close()
	settled := sink.Heartbeats()
	time.Sleep(25 * time.Millisecond)

	assert.Equal(t, settled, sink.Heartbeats())
}

type failingSink struct {
	calls int
}

func (f *failingSink) WriteFrame(Frame) error {
	f.calls++
	return errors.New("client went away")
}

func (f *failingSink) WriteHeartbeat() error { return nil }

func TestEmitter_WriteErrorClosesStream(t *testing.T) {
	sink := &failingSink{}
	e := NewEmitter(sink, 0)

	e.Start("Topic")
	e.Progress("working", "generate", 1)

	// The first failed write marks the stream closed; later emits never reach
	// the sink.
	assert.Equal(t, 1, sink.calls)
	assert.True(t, e.Closed())
}
