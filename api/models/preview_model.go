package models

import (
	ttlworker "github.com/FloatTech/ttl"

	"github.com/fogify-ai/fogify-go/tool"
)

// PreviewRegistry maps opaque playback tokens to local file paths. A token is
// minted when an upload is accepted and dies when the session releases it;
// the TTL catches sessions that were never reset.
type PreviewRegistry struct {
	cache *ttlworker.Cache[string, string]
}

func NewPreviewRegistry() *PreviewRegistry {
	return &PreviewRegistry{
		cache: ttlworker.NewCache[string, string](SessionTTL),
	}
}

// Register implements session.PreviewRegistrar.
func (r *PreviewRegistry) Register(path string) string {
	token := tool.GenerateRandomUUID()
	r.cache.Set(token, path)
	return token
}

// Release implements session.PreviewRegistrar.
func (r *PreviewRegistry) Release(token string) {
	r.cache.Delete(token)
}

// Lookup resolves a token to the file path backing it.
func (r *PreviewRegistry) Lookup(token string) (string, bool) {
	path := r.cache.Get(token)
	return path, path != ""
}
