package session

import "errors"

// ErrNoActiveTask means analysis was requested before any upload was accepted.
var ErrNoActiveTask = errors.New("no active task")

// ErrAnalysisInProgress means analysis was requested while one is already
// running for the current task.
var ErrAnalysisInProgress = errors.New("analysis already in progress")

// Validation rule identifiers, reported in ValidationError.Rule.
const (
	RuleFile      = "file"
	RuleSize      = "size"
	RuleExtension = "extension"
	RuleMediaType = "media_type"
)

// ValidationError reports the first selection rule a candidate file violated.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
