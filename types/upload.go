package types

// VideoMetadata is the metadata block the backend extracts at upload time.
type VideoMetadata struct {
	Duration   float64 `json:"duration"` // seconds
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FrameCount int     `json:"frame_count"`
	FPS        float64 `json:"fps"`
	FileSize   int64   `json:"file_size"`
}

// UploadResult is the backend acknowledgement for an accepted upload.
type UploadResult struct {
	TaskID   string        `json:"task_id"`
	Filename string        `json:"filename"`
	Metadata VideoMetadata `json:"metadata"`
	Message  string        `json:"message,omitempty"`
}

// SelectedFile describes the local video chosen for a session.
// Created on selection, discarded on reset or replacement.
type SelectedFile struct {
	Path      string `json:"path"`
	FileName  string `json:"fileName"`
	Size      int64  `json:"size"`
	MediaType string `json:"mediaType"`
	Extension string `json:"extension"`
}

// TaskStatus is the backend's view of a task, from GET /status/{task_id}.
type TaskStatus struct {
	Filename string        `json:"filename"`
	Status   string        `json:"status"` // uploaded | analyzing | complete
	Metadata VideoMetadata `json:"metadata"`
}

// ErrorDetail is the backend's non-2xx response body.
type ErrorDetail struct {
	Detail string `json:"detail"`
}
