package tool

import (
	"net/http"
	"time"
)

var (
	DefaultTimeout = 30 * time.Second
	// UploadTimeout is longer: a 500 MiB body over a slow link takes a while.
	UploadTimeout = 10 * time.Minute

	ConnectionHttpClient *http.Client
	DetectHttpClient     *http.Client
)

func init() {
	ConnectionHttpClient = NewHTTPClient(UploadTimeout)
	DetectHttpClient = NewHTTPClient(DefaultTimeout)
}

// NewHTTPClient creates an HTTP client for talking to the Fogify backend.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DisableKeepAlives:   false,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// GetHttpClient returns the shared client used for uploads and analysis triggers.
func GetHttpClient() *http.Client {
	return ConnectionHttpClient
}

// GetDetectHttpClient returns the short-timeout client used for health probes.
func GetDetectHttpClient() *http.Client {
	return DetectHttpClient
}
