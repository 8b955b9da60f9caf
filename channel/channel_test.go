package channel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fogify-ai/fogify-go/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// progressServer upgrades /ws/{task_id} and sends the given raw messages.
func progressServer(t *testing.T, messages []string, closeAfter bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		for _, msg := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}
		if closeAfter {
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
		// keep the connection open until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func nextEvent(t *testing.T, ch Channel) types.ProgressEvent {
	t.Helper()
	select {
	case ev, ok := <-ch.Events():
		if !ok {
			t.Fatal("event stream closed unexpectedly")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return types.ProgressEvent{}
}

func TestChannelDeliversEventsInOrder(t *testing.T) {
	server := progressServer(t, []string{
		`{"type": "progress", "task_id": "abc123", "progress": 12.5, "message": "frame 375/3000"}`,
		`{"type": "progress", "task_id": "abc123", "progress": 50, "message": "frame 1500/3000"}`,
		`{"type": "complete", "task_id": "abc123", "result": {"detection_count": 42, "total_frames": 3000}, "message": "done"}`,
	}, false)
	defer server.Close()

	factory := NewWebSocketFactory(server.URL)
	ch, err := factory.Open(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("failed to open channel: %v", err)
	}
	defer ch.Close()

	first := nextEvent(t, ch)
	if first.Type != types.EventProgress || first.Progress != 12.5 {
		t.Errorf("unexpected first event: %+v", first)
	}
	second := nextEvent(t, ch)
	if second.Type != types.EventProgress || second.Progress != 50 {
		t.Errorf("unexpected second event: %+v", second)
	}
	third := nextEvent(t, ch)
	if third.Type != types.EventComplete {
		t.Fatalf("unexpected third event: %+v", third)
	}
	if third.Result == nil || third.Result.DetectionCount != 42 || third.Result.TotalFrames != 3000 {
		t.Errorf("unexpected result: %+v", third.Result)
	}
}

func TestChannelErrorEventCarriesMessage(t *testing.T) {
	server := progressServer(t, []string{
		`{"type": "error", "task_id": "abc123", "error": "model crashed", "message": "analysis failed: model crashed"}`,
	}, false)
	defer server.Close()

	factory := NewWebSocketFactory(server.URL)
	ch, err := factory.Open(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("failed to open channel: %v", err)
	}
	defer ch.Close()

	ev := nextEvent(t, ch)
	if ev.Type != types.EventError {
		t.Fatalf("expected error event, got %+v", ev)
	}
	if ev.Message != "analysis failed: model crashed" {
		t.Errorf("unexpected message: %q", ev.Message)
	}
}

func TestChannelSkipsUnknownAndMalformedMessages(t *testing.T) {
	server := progressServer(t, []string{
		`not json at all`,
		`{"type": "heartbeat"}`,
		`{"type": "progress", "progress": 99, "message": "almost"}`,
	}, false)
	defer server.Close()

	factory := NewWebSocketFactory(server.URL)
	ch, err := factory.Open(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("failed to open channel: %v", err)
	}
	defer ch.Close()

	ev := nextEvent(t, ch)
	if ev.Type != types.EventProgress || ev.Progress != 99 {
		t.Errorf("malformed messages must be skipped, got %+v", ev)
	}
}

func TestChannelSurfacesTransportFailure(t *testing.T) {
	server := progressServer(t, []string{
		`{"type": "progress", "progress": 10, "message": "working"}`,
	}, true)
	defer server.Close()

	factory := NewWebSocketFactory(server.URL)
	ch, err := factory.Open(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("failed to open channel: %v", err)
	}
	defer ch.Close()

	if ev := nextEvent(t, ch); ev.Type != types.EventProgress {
		t.Fatalf("expected progress event, got %+v", ev)
	}
	ev := nextEvent(t, ch)
	if ev.Type != types.EventTransport {
		t.Fatalf("expected transport event after server close, got %+v", ev)
	}
	if ev.Err == nil {
		t.Error("transport event must carry the underlying error")
	}

	// the stream ends after the transport event
	select {
	case _, ok := <-ch.Events():
		if ok {
			t.Error("no further events expected")
		}
	case <-time.After(2 * time.Second):
		t.Error("event stream should be closed")
	}
}

func TestChannelCloseSuppressesTransportEvent(t *testing.T) {
	server := progressServer(t, nil, false)
	defer server.Close()

	factory := NewWebSocketFactory(server.URL)
	ch, err := factory.Open(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("failed to open channel: %v", err)
	}

	if err := ch.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
	if err := ch.Close(); err != nil {
		t.Errorf("second close must be a no-op, got %v", err)
	}

	select {
	case ev, ok := <-ch.Events():
		if ok {
			t.Errorf("no events expected after deliberate close, got %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Error("event stream should be closed")
	}
}

func TestOpenRejectsEmptyTask(t *testing.T) {
	factory := NewWebSocketFactory("http://localhost:8000")
	if _, err := factory.Open(context.Background(), ""); err == nil {
		t.Error("expected error for empty task id")
	}
}
