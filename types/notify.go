package types

// Notification types pushed to the web UI over the notify WebSocket.
const (
	NotifyTypeSessionState   = "session_state"
	NotifyTypeProgress       = "progress"
	NotifyTypeComplete       = "analysis_complete"
	NotifyTypeError          = "session_error"
	NotifyTypeBackendOnline  = "backend_online"
	NotifyTypeBackendOffline = "backend_offline"
)

// Notification is a push message for the web UI.
type Notification struct {
	Type    string         `json:"type"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}
