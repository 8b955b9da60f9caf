package types

// SessionState is the client-visible lifecycle state of an upload session.
type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateValidating SessionState = "validating"
	StateUploading  SessionState = "uploading"
	StateUploaded   SessionState = "uploaded"
	StateAnalyzing  SessionState = "analyzing"
	StateComplete   SessionState = "complete"
	StateError      SessionState = "error"
)

// SessionSnapshot is a point-in-time copy of a session, safe to serialize.
type SessionSnapshot struct {
	ID                string           `json:"id"`
	State             SessionState     `json:"state"`
	TaskID            string           `json:"taskId,omitempty"`
	File              *SelectedFile    `json:"file,omitempty"`
	Result            *UploadResult    `json:"result,omitempty"`
	FormattedDuration string           `json:"formattedDuration,omitempty"`
	FormattedSize     string           `json:"formattedSize,omitempty"`
	Progress          int              `json:"progress"`
	StatusMessage     string           `json:"statusMessage,omitempty"`
	Summary           *AnalysisSummary `json:"summary,omitempty"`
	Error             string           `json:"error,omitempty"`
	PreviewToken      string           `json:"previewToken,omitempty"`
}
