package tool

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildUploadURL builds the backend /upload URL.
func BuildUploadURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/upload"
}

// BuildAnalyzeURL builds the backend /analyze/{task_id} URL.
func BuildAnalyzeURL(baseURL, taskID string) string {
	return fmt.Sprintf("%s/analyze/%s", strings.TrimRight(baseURL, "/"), url.PathEscape(taskID))
}

// BuildStatusURL builds the backend /status/{task_id} URL.
func BuildStatusURL(baseURL, taskID string) string {
	return fmt.Sprintf("%s/status/%s", strings.TrimRight(baseURL, "/"), url.PathEscape(taskID))
}

// BuildHealthURL builds the backend health probe URL (GET /).
func BuildHealthURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/"
}

// BuildProgressURL builds the ws(s)://host/ws/{task_id} progress channel URL
// from the HTTP base URL.
func BuildProgressURL(baseURL, taskID string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse backend URL: %v", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
		// already a websocket URL
	default:
		return "", fmt.Errorf("unsupported backend URL scheme: %s", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws/" + url.PathEscape(taskID)
	return u.String(), nil
}

// BackendHost extracts the host (without port) from the backend base URL,
// used for the ICMP reachability probe.
func BackendHost(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse backend URL: %v", err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("backend URL has no host: %s", baseURL)
	}
	return u.Hostname(), nil
}
