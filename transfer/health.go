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

// FetchHealth probes the backend root endpoint. Failures are expected while
// the backend is down and are reported to the caller, never fatal.
func FetchHealth(ctx context.Context, client *http.Client, baseURL string) (*types.HealthResponse, error) {
	if client == nil {
		client = tool.GetDetectHttpClient()
	}

	urlStr := tool.BuildHealthURL(baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create health request: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send health request: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("health request failed: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read health response body: %v", err)
	}
	var health types.HealthResponse
	if err := sonic.Unmarshal(body, &health); err != nil {
		return nil, fmt.Errorf("failed to parse health response: %v", err)
	}
	return &health, nil
}
