package tool

import "testing"

func TestBuildUploadURL(t *testing.T) {
	if got := BuildUploadURL("http://localhost:8000/"); got != "http://localhost:8000/upload" {
		t.Errorf("unexpected upload URL: %q", got)
	}
	if got := BuildUploadURL("http://localhost:8000"); got != "http://localhost:8000/upload" {
		t.Errorf("unexpected upload URL without trailing slash: %q", got)
	}
}

func TestBuildAnalyzeURL(t *testing.T) {
	got := BuildAnalyzeURL("http://localhost:8000", "abc123")
	if got != "http://localhost:8000/analyze/abc123" {
		t.Errorf("unexpected analyze URL: %q", got)
	}
}

func TestBuildProgressURL(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"http://localhost:8000", "ws://localhost:8000/ws/abc123"},
		{"https://fogify.example.com", "wss://fogify.example.com/ws/abc123"},
		{"ws://localhost:8000", "ws://localhost:8000/ws/abc123"},
	}
	for _, tc := range cases {
		got, err := BuildProgressURL(tc.base, "abc123")
		if err != nil {
			t.Errorf("BuildProgressURL(%q): unexpected error %v", tc.base, err)
			continue
		}
		if got != tc.want {
			t.Errorf("BuildProgressURL(%q): expected %q, got %q", tc.base, tc.want, got)
		}
	}

	if _, err := BuildProgressURL("ftp://example.com", "abc123"); err == nil {
		t.Error("expected error for unsupported scheme")
	}
}

func TestBackendHost(t *testing.T) {
	host, err := BackendHost("http://192.168.1.20:8000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if host != "192.168.1.20" {
		t.Errorf("expected 192.168.1.20, got %q", host)
	}
}
