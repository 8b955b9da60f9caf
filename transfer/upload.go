package transfer

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/bytedance/sonic"

	"github.com/fogify-ai/fogify-go/tool"
	"github.com/fogify-ai/fogify-go/types"
)

// UploadVideo sends the selected video as a single multipart body to the
// backend /upload endpoint and parses the acknowledgement.
func UploadVideo(ctx context.Context, client *http.Client, baseURL string, file *types.SelectedFile, data io.Reader) (*types.UploadResult, error) {
	if file == nil {
		return nil, fmt.Errorf("invalid parameters: file must not be nil")
	}
	if data == nil {
		return nil, fmt.Errorf("invalid parameters: data must not be nil")
	}
	if client == nil {
		client = tool.GetHttpClient()
	}

	// Stream the multipart body through a pipe so a 500 MiB video is never
	// buffered in memory.
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", file.FileName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, data); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	urlStr := tool.BuildUploadURL(baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("upload cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to send upload request: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		tool.DefaultLogger.Warnf("Failed to read upload response body: %v", readErr)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s", ErrUploadRejected, detailFromBody(body, resp.Status))
	}

	if len(body) == 0 {
		return nil, fmt.Errorf("upload response body is empty")
	}
	var result types.UploadResult
	if err := sonic.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse upload response: %v", err)
	}
	if result.TaskID == "" {
		return nil, fmt.Errorf("upload response missing task_id")
	}

	tool.DefaultLogger.Infof("Upload accepted: %s (task: %s, %d frames)", result.Filename, result.TaskID, result.Metadata.FrameCount)
	return &result, nil
}

// detailFromBody extracts the backend's {detail} message, falling back to the
// HTTP status line when absent.
func detailFromBody(body []byte, status string) string {
	if len(body) > 0 {
		var detail types.ErrorDetail
		if err := sonic.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
			return detail.Detail
		}
	}
	return "request failed: " + status
}
