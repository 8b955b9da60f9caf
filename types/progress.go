package types

// Progress channel event types. The first three match the wire `type` tag;
// EventTransport is synthesized locally when the connection fails.
const (
	EventProgress  = "progress"
	EventComplete  = "complete"
	EventError     = "error"
	EventTransport = "transport"
)

// AnalysisSummary is the result block of a complete message.
type AnalysisSummary struct {
	DetectionCount int     `json:"detection_count"`
	TotalFrames    int     `json:"total_frames"`
	FPS            float64 `json:"fps,omitempty"`
}

// ChannelMessage is the raw JSON frame on the per-task progress WebSocket.
type ChannelMessage struct {
	Type     string           `json:"type"`
	TaskID   string           `json:"task_id,omitempty"`
	Progress float64          `json:"progress,omitempty"`
	Message  string           `json:"message,omitempty"`
	Result   *AnalysisSummary `json:"result,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// ProgressEvent is the decoded event the session consumes. Result is set for
// complete events, Err for transport failures.
type ProgressEvent struct {
	Type     string
	Progress float64
	Message  string
	Result   *AnalysisSummary
	Err      error
}
