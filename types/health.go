package types

import "time"

// HealthResponse is the backend's GET / body.
type HealthResponse struct {
	Message     string `json:"message,omitempty"`
	ModelLoaded bool   `json:"model_loaded"`
}

// BackendStatus is the client's last known view of the backend.
type BackendStatus struct {
	Online      bool      `json:"online"`
	ModelLoaded bool      `json:"modelLoaded"`
	CheckedAt   time.Time `json:"checkedAt"`
	LastError   string    `json:"lastError,omitempty"`
}
