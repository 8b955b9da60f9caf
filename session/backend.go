package session

import (
	"context"
	"io"
	"net/http"

	"github.com/fogify-ai/fogify-go/transfer"
	"github.com/fogify-ai/fogify-go/types"
)

// HTTPBackend implements Backend against the real Fogify HTTP API.
type HTTPBackend struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPBackend(baseURL string, client *http.Client) *HTTPBackend {
	return &HTTPBackend{BaseURL: baseURL, Client: client}
}

func (b *HTTPBackend) Upload(ctx context.Context, file *types.SelectedFile, data io.Reader) (*types.UploadResult, error) {
	return transfer.UploadVideo(ctx, b.Client, b.BaseURL, file, data)
}

func (b *HTTPBackend) StartAnalysis(ctx context.Context, taskID string) error {
	return transfer.StartAnalysis(ctx, b.Client, b.BaseURL, taskID)
}
