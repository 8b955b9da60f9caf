package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/fogify-ai/fogify-go/tool"
	"github.com/fogify-ai/fogify-go/types"
)

// FetchTaskStatus polls the backend's view of a task. Used as a fallback when
// the progress channel is unavailable.
func FetchTaskStatus(ctx context.Context, client *http.Client, baseURL, taskID string) (*types.TaskStatus, error) {
	if taskID == "" {
		return nil, fmt.Errorf("invalid parameters: taskID must not be empty")
	}
	if client == nil {
		client = tool.GetDetectHttpClient()
	}

	urlStr := tool.BuildStatusURL(baseURL, taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create status request: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send status request: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read status response body: %v", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, detailFromBody(body, resp.Status))
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return nil, fmt.Errorf("status request failed: %s", resp.Status)
	}

	var status types.TaskStatus
	if err := sonic.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status response: %v", err)
	}
	return &status, nil
}
