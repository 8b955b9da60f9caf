// Package session owns the client lifecycle for exactly one video at a time:
// validate, upload, trigger analysis, and track progress until the backend
// reports completion or failure.
package session

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fogify-ai/fogify-go/channel"
	"github.com/fogify-ai/fogify-go/tool"
	"github.com/fogify-ai/fogify-go/types"
)

// SupportedExtensions is the set of video container formats the backend accepts.
var SupportedExtensions = map[string]bool{
	"mp4":  true,
	"mov":  true,
	"avi":  true,
	"mkv":  true,
	"webm": true,
}

// Backend is the narrow view of the Fogify HTTP API the session needs.
type Backend interface {
	Upload(ctx context.Context, file *types.SelectedFile, data io.Reader) (*types.UploadResult, error)
	StartAnalysis(ctx context.Context, taskID string) error
}

// PreviewRegistrar hands out playback tokens for the selected file. A token is
// the local analog of a browser object URL and must be released exactly once.
type PreviewRegistrar interface {
	Register(path string) string
	Release(token string)
}

// Notifier receives UI push notifications. May be nil.
type Notifier func(*types.Notification)

// Session is the upload lifecycle state machine. All methods are safe for
// concurrent use; event handling is serialized in arrival order.
type Session struct {
	id            string
	maxUploadSize int64
	backend       Backend
	channels      channel.Factory
	previews      PreviewRegistrar
	notify        Notifier

	mu            sync.Mutex
	state         types.SessionState
	file          *types.SelectedFile
	result        *types.UploadResult
	taskID        string
	summary       *types.AnalysisSummary
	progress      int
	statusMessage string
	lastErr       string
	previewToken  string
	ch            channel.Channel
	terminalSeen  bool
	// generation supersedes in-flight work: async completions carry the
	// generation captured at request time and are discarded when it no
	// longer matches.
	generation uint64
}

// New constructs a session with injected collaborators.
func New(id string, maxUploadSize int64, backend Backend, channels channel.Factory, previews PreviewRegistrar, notify Notifier) *Session {
	if maxUploadSize <= 0 {
		maxUploadSize = tool.DefaultMaxUploadSize
	}
	return &Session{
		id:            id,
		maxUploadSize: maxUploadSize,
		backend:       backend,
		channels:      channels,
		previews:      previews,
		notify:        notify,
		state:         types.StateIdle,
	}
}

func (s *Session) ID() string {
	return s.id
}

// Select validates a candidate file and, on success, begins the upload
// immediately. Any previous task, channel and preview are invalidated first.
func (s *Session) Select(path string) error {
	file, inspectErr := tool.InspectVideoFile(path)

	s.mu.Lock()
	s.supersedeLocked()
	s.state = types.StateValidating

	if inspectErr != nil {
		return s.failValidationLocked(&ValidationError{Rule: RuleFile, Message: inspectErr.Error()})
	}
	if verr := validate(file, s.maxUploadSize); verr != nil {
		return s.failValidationLocked(verr)
	}

	s.file = file
	s.state = types.StateUploading
	gen := s.generation
	s.mu.Unlock()

	s.emit(types.NotifyTypeSessionState, "Uploading", fmt.Sprintf("Uploading %s", file.FileName), nil)

	// The upload is not tied to a caller context: a reset does not abort the
	// in-flight request, it just makes the response stale.
	go s.runUpload(gen, file)
	return nil
}

// validate applies the selection rules in order and fails fast on the first
// violation.
func validate(file *types.SelectedFile, maxSize int64) *ValidationError {
	if file.Size > maxSize {
		return &ValidationError{
			Rule:    RuleSize,
			Message: fmt.Sprintf("file is too large: %s exceeds the %s limit", tool.FormatSize(file.Size), tool.FormatSize(maxSize)),
		}
	}
	if !SupportedExtensions[file.Extension] {
		return &ValidationError{
			Rule:    RuleExtension,
			Message: fmt.Sprintf("unsupported file format %q, supported formats: %s", file.Extension, supportedExtensionList()),
		}
	}
	if !strings.HasPrefix(file.MediaType, "video/") {
		return &ValidationError{
			Rule:    RuleMediaType,
			Message: fmt.Sprintf("selected file is not a video (media type %s)", file.MediaType),
		}
	}
	return nil
}

func supportedExtensionList() string {
	exts := make([]string, 0, len(SupportedExtensions))
	for ext := range SupportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

// failValidationLocked records the error state and releases the lock.
func (s *Session) failValidationLocked(verr *ValidationError) error {
	s.state = types.StateError
	s.lastErr = verr.Message
	s.mu.Unlock()
	tool.DefaultLogger.Warnf("Session %s: validation failed: %s", s.id, verr.Message)
	s.emit(types.NotifyTypeError, "Validation Failed", verr.Message, map[string]any{"rule": verr.Rule})
	return verr
}

func (s *Session) runUpload(gen uint64, file *types.SelectedFile) {
	f, err := os.Open(file.Path)
	if err != nil {
		s.finishUpload(gen, nil, fmt.Errorf("failed to open file: %v", err))
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close file: %v", err)
		}
	}()

	result, err := s.backend.Upload(context.Background(), file, f)
	s.finishUpload(gen, result, err)
}

func (s *Session) finishUpload(gen uint64, result *types.UploadResult, err error) {
	s.mu.Lock()
	if gen != s.generation {
		// superseded by a newer selection or a reset, drop silently
		s.mu.Unlock()
		tool.DefaultLogger.Debugf("Session %s: discarding stale upload response", s.id)
		return
	}
	if err != nil {
		s.state = types.StateError
		s.lastErr = err.Error()
		s.mu.Unlock()
		tool.DefaultLogger.Warnf("Session %s: upload failed: %v", s.id, err)
		s.emit(types.NotifyTypeError, "Upload Failed", err.Error(), nil)
		return
	}

	s.result = result
	s.taskID = result.TaskID
	s.state = types.StateUploaded
	if s.previews != nil && s.file != nil {
		s.previewToken = s.previews.Register(s.file.Path)
	}
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Session %s: upload complete, task %s", s.id, result.TaskID)
	s.emit(types.NotifyTypeSessionState, "Uploaded", fmt.Sprintf("%s uploaded", result.Filename), map[string]any{
		"taskId":   result.TaskID,
		"duration": tool.FormatDuration(result.Metadata.Duration),
		"size":     tool.FormatSize(result.Metadata.FileSize),
	})
}

// StartAnalysis opens the progress channel for the live task and then asks the
// backend to begin analysis. The channel is opened first so no progress
// message can be missed.
func (s *Session) StartAnalysis(ctx context.Context) error {
	s.mu.Lock()
	if s.taskID == "" {
		s.mu.Unlock()
		return ErrNoActiveTask
	}
	// a second trigger would leak the open channel and the real backend
	// rejects duplicate analyze calls anyway
	if s.state == types.StateAnalyzing {
		s.mu.Unlock()
		return ErrAnalysisInProgress
	}
	taskID := s.taskID
	gen := s.generation
	s.mu.Unlock()

	ch, err := s.channels.Open(ctx, taskID)
	if err != nil {
		s.enterError(gen, fmt.Sprintf("failed to open progress channel: %v", err))
		return err
	}

	if err := s.backend.StartAnalysis(ctx, taskID); err != nil {
		if cerr := ch.Close(); cerr != nil {
			tool.DefaultLogger.Errorf("Failed to close progress channel: %v", cerr)
		}
		s.enterError(gen, err.Error())
		return err
	}

	s.mu.Lock()
	if gen != s.generation {
		// session was reset while the request was in flight
		s.mu.Unlock()
		if cerr := ch.Close(); cerr != nil {
			tool.DefaultLogger.Errorf("Failed to close progress channel: %v", cerr)
		}
		return nil
	}
	if s.ch != nil {
		// a concurrent call won the race, keep its channel
		s.mu.Unlock()
		if cerr := ch.Close(); cerr != nil {
			tool.DefaultLogger.Errorf("Failed to close progress channel: %v", cerr)
		}
		return ErrAnalysisInProgress
	}
	s.ch = ch
	s.terminalSeen = false
	s.state = types.StateAnalyzing
	s.statusMessage = "Analysis started"
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Session %s: analyzing task %s", s.id, taskID)
	s.emit(types.NotifyTypeSessionState, "Analyzing", "Analysis started", map[string]any{"taskId": taskID})

	go s.consumeEvents(gen, ch)
	return nil
}

func (s *Session) consumeEvents(gen uint64, ch channel.Channel) {
	for ev := range ch.Events() {
		s.handleEvent(gen, ev)
	}
}

// handleEvent dispatches one progress channel event. After a terminal event
// (complete, error or transport failure) further events for the same task are
// dropped: at most one terminal transition happens per task.
func (s *Session) handleEvent(gen uint64, ev types.ProgressEvent) {
	s.mu.Lock()
	if gen != s.generation || s.terminalSeen {
		s.mu.Unlock()
		return
	}

	switch ev.Type {
	case types.EventProgress:
		s.progress = clampProgress(ev.Progress)
		s.statusMessage = ev.Message
		progress := s.progress
		s.mu.Unlock()
		s.emit(types.NotifyTypeProgress, "Progress", ev.Message, map[string]any{"progress": progress})

	case types.EventComplete:
		s.summary = ev.Result
		s.progress = 100
		s.statusMessage = ev.Message
		s.state = types.StateComplete
		s.terminalSeen = true
		s.closeChannelLocked()
		summary := ev.Result
		s.mu.Unlock()
		tool.DefaultLogger.Infof("Session %s: analysis complete (%d detections over %d frames)", s.id, summary.DetectionCount, summary.TotalFrames)
		s.emit(types.NotifyTypeComplete, "Analysis Complete", ev.Message, map[string]any{
			"detectionCount": summary.DetectionCount,
			"totalFrames":    summary.TotalFrames,
		})

	case types.EventError:
		s.state = types.StateError
		s.lastErr = ev.Message
		s.terminalSeen = true
		s.closeChannelLocked()
		s.mu.Unlock()
		tool.DefaultLogger.Warnf("Session %s: analysis failed: %s", s.id, ev.Message)
		s.emit(types.NotifyTypeError, "Analysis Failed", ev.Message, nil)

	case types.EventTransport:
		s.state = types.StateError
		s.lastErr = ev.Message
		s.terminalSeen = true
		s.closeChannelLocked()
		s.mu.Unlock()
		tool.DefaultLogger.Warnf("Session %s: progress channel lost: %v", s.id, ev.Err)
		s.emit(types.NotifyTypeError, "Connection Lost", ev.Message, nil)

	default:
		s.mu.Unlock()
	}
}

// enterError transitions to Error unless the generation was superseded.
func (s *Session) enterError(gen uint64, message string) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.state = types.StateError
	s.lastErr = message
	s.mu.Unlock()
	s.emit(types.NotifyTypeError, "Error", message, nil)
}

// Reset returns the session to Idle, releasing the preview token and closing
// any open channel. Idempotent.
func (s *Session) Reset() {
	s.mu.Lock()
	s.supersedeLocked()
	s.state = types.StateIdle
	s.mu.Unlock()
	s.emit(types.NotifyTypeSessionState, "Reset", "Session reset", nil)
}

// Close is the teardown path: identical to Reset, used by registry eviction.
func (s *Session) Close() {
	s.mu.Lock()
	s.supersedeLocked()
	s.state = types.StateIdle
	s.mu.Unlock()
}

// supersedeLocked invalidates everything tied to the current file and task:
// bumps the generation so in-flight responses become stale, releases the
// preview exactly once, and closes the progress channel.
func (s *Session) supersedeLocked() {
	s.generation++
	s.releasePreviewLocked()
	s.closeChannelLocked()
	s.file = nil
	s.result = nil
	s.taskID = ""
	s.summary = nil
	s.progress = 0
	s.statusMessage = ""
	s.lastErr = ""
	s.terminalSeen = false
}

func (s *Session) releasePreviewLocked() {
	if s.previewToken == "" {
		return
	}
	token := s.previewToken
	s.previewToken = ""
	if s.previews != nil {
		s.previews.Release(token)
	}
}

func (s *Session) closeChannelLocked() {
	if s.ch == nil {
		return
	}
	if err := s.ch.Close(); err != nil {
		tool.DefaultLogger.Errorf("Failed to close progress channel: %v", err)
	}
	s.ch = nil
}

// Snapshot returns a serializable copy of the session for the control API.
func (s *Session) Snapshot() types.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := types.SessionSnapshot{
		ID:            s.id,
		State:         s.state,
		TaskID:        s.taskID,
		File:          s.file,
		Result:        s.result,
		Progress:      s.progress,
		StatusMessage: s.statusMessage,
		Summary:       s.summary,
		Error:         s.lastErr,
		PreviewToken:  s.previewToken,
	}
	if s.result != nil {
		snap.FormattedDuration = tool.FormatDuration(s.result.Metadata.Duration)
		snap.FormattedSize = tool.FormatSize(s.result.Metadata.FileSize)
	}
	return snap
}

func (s *Session) emit(notifyType, title, message string, data map[string]any) {
	if s.notify == nil {
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	data["sessionId"] = s.id
	s.notify(&types.Notification{
		Type:    notifyType,
		Title:   title,
		Message: message,
		Data:    data,
	})
}

// clampProgress bounds a reported percentage to [0,100], rounded to the
// nearest integer.
func clampProgress(p float64) int {
	if math.IsNaN(p) {
		return 0
	}
	rounded := int(math.Round(p))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
