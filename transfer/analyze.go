package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/fogify-ai/fogify-go/tool"
)

// StartAnalysis asks the backend to begin analysing a previously uploaded task.
// Progress is then streamed over the task's progress channel, not this call.
func StartAnalysis(ctx context.Context, client *http.Client, baseURL, taskID string) error {
	if taskID == "" {
		return fmt.Errorf("invalid parameters: taskID must not be empty")
	}
	if client == nil {
		client = tool.GetHttpClient()
	}

	urlStr := tool.BuildAnalyzeURL(baseURL, taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, nil)
	if err != nil {
		return fmt.Errorf("failed to create analyze request: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("analyze request cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("failed to send analyze request: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		tool.DefaultLogger.Warnf("Failed to read analyze response body: %v", readErr)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrTaskNotFound, detailFromBody(body, resp.Status))
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return fmt.Errorf("%w: %s", ErrAnalysisRejected, detailFromBody(body, resp.Status))
	}

	tool.DefaultLogger.Infof("Analysis started for task %s", taskID)
	return nil
}
