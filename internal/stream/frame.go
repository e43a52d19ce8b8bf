package stream

// FrameType tags a progress frame on the wire.
type FrameType string

const (
	FrameStart    FrameType = "start"
	FrameProgress FrameType = "progress"
	FrameChunk    FrameType = "chunk"
	FrameComplete FrameType = "complete"
	FrameError    FrameType = "error"
)

// Frame is one server-to-client message of the streaming protocol.
type Frame struct {
	Type        FrameType `json:"type"`
	Title       string    `json:"title,omitempty"`
	Message     string    `json:"message,omitempty"`
	Step        string    `json:"step,omitempty"`
	ItemID      int64     `json:"itemId,omitempty"`
	Content     string    `json:"content,omitempty"`
	Success     *bool     `json:"success,omitempty"`
	Result      any       `json:"result,omitempty"`
	CreditsUsed int64     `json:"creditsUsed,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Terminal reports whether the frame ends the stream.
func (f Frame) Terminal() bool {
	return f.Type == FrameComplete || f.Type == FrameError
}
