// Package channel consumes the backend's per-task progress WebSocket and
// turns its JSON messages into a stream of ProgressEvents.
package channel

import (
	"context"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/fogify-ai/fogify-go/tool"
	"github.com/fogify-ai/fogify-go/types"
)

// Channel is one open progress subscription. Events are delivered in arrival
// order; the stream is closed after Close or a transport failure.
type Channel interface {
	Events() <-chan types.ProgressEvent
	Close() error
}

// Factory opens progress channels. The session takes a Factory so tests can
// substitute a fake without a network.
type Factory interface {
	Open(ctx context.Context, taskID string) (Channel, error)
}

// WebSocketFactory dials ws(s)://{backend}/ws/{task_id}.
type WebSocketFactory struct {
	BaseURL string
	Dialer  *websocket.Dialer
}

func NewWebSocketFactory(baseURL string) *WebSocketFactory {
	return &WebSocketFactory{BaseURL: baseURL}
}

func (f *WebSocketFactory) Open(ctx context.Context, taskID string) (Channel, error) {
	if taskID == "" {
		return nil, fmt.Errorf("invalid parameters: taskID must not be empty")
	}
	urlStr, err := tool.BuildProgressURL(f.BaseURL, taskID)
	if err != nil {
		return nil, err
	}
	dialer := f.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	conn, _, err := dialer.DialContext(ctx, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open progress channel: %v", err)
	}
	tool.DefaultLogger.Debugf("Progress channel opened for task %s", taskID)

	c := &wsChannel{
		taskID: taskID,
		conn:   conn,
		events: make(chan types.ProgressEvent, 16),
	}
	go c.readLoop()
	return c, nil
}

type wsChannel struct {
	taskID string
	conn   *websocket.Conn
	events chan types.ProgressEvent

	closeOnce sync.Once
	mu        sync.Mutex
	closed    bool
}

func (c *wsChannel) Events() <-chan types.ProgressEvent {
	return c.events
}

// Close is idempotent. Closing tears down the connection, which unblocks the
// read loop and ends the event stream.
func (c *wsChannel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		err = c.conn.Close()
	})
	return err
}

func (c *wsChannel) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *wsChannel) readLoop() {
	defer close(c.events)
	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if c.isClosed() {
				return
			}
			tool.DefaultLogger.Warnf("Progress channel read failed for task %s: %v", c.taskID, err)
			c.events <- types.ProgressEvent{
				Type:    types.EventTransport,
				Message: "progress channel connection lost",
				Err:     err,
			}
			return
		}

		var msg types.ChannelMessage
		if err := sonic.Unmarshal(payload, &msg); err != nil {
			tool.DefaultLogger.Debugf("Skipping malformed progress message for task %s: %v", c.taskID, err)
			continue
		}

		ev, ok := decodeMessage(&msg)
		if !ok {
			tool.DefaultLogger.Debugf("Skipping progress message with unknown type %q for task %s", msg.Type, c.taskID)
			continue
		}
		c.events <- ev
	}
}

// decodeMessage maps a wire message onto the event union. Unknown tags are
// dropped so a newer backend does not break older clients.
func decodeMessage(msg *types.ChannelMessage) (types.ProgressEvent, bool) {
	switch msg.Type {
	case types.EventProgress:
		return types.ProgressEvent{
			Type:     types.EventProgress,
			Progress: msg.Progress,
			Message:  msg.Message,
		}, true
	case types.EventComplete:
		result := msg.Result
		if result == nil {
			result = &types.AnalysisSummary{}
		}
		return types.ProgressEvent{
			Type:    types.EventComplete,
			Message: msg.Message,
			Result:  result,
		}, true
	case types.EventError:
		message := msg.Message
		if message == "" {
			message = msg.Error
		}
		if message == "" {
			message = "analysis failed"
		}
		return types.ProgressEvent{
			Type:    types.EventError,
			Message: message,
		}, true
	default:
		return types.ProgressEvent{}, false
	}
}
