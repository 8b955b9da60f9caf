package transfer

import "errors"

// Sentinel errors for backend refusals, matched with errors.Is by the session.
var (
	// ErrUploadRejected means the backend declined the upload (non-2xx).
	ErrUploadRejected = errors.New("upload rejected")
	// ErrAnalysisRejected means the backend declined the analysis trigger.
	ErrAnalysisRejected = errors.New("analysis start rejected")
	// ErrTaskNotFound means the backend no longer knows the task.
	ErrTaskNotFound = errors.New("task not found")
)
