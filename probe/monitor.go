// Package probe runs the periodic backend health monitor. A probe is a quick
// ICMP reachability check followed by an HTTP GET of the backend root; results
// land in the share package and fan out to the UI on change.
package probe

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/fogify-ai/fogify-go/share"
	"github.com/fogify-ai/fogify-go/tool"
	"github.com/fogify-ai/fogify-go/transfer"
	"github.com/fogify-ai/fogify-go/types"
)

const icmpProbeTimeout = 1 * time.Second

// Monitor probes the backend until ctx is cancelled. interval is the target
// spacing between probes; a rate limiter enforces it even if probes return
// instantly.
func Monitor(ctx context.Context, baseURL string, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)

	for {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		share.SetBackendStatus(ProbeOnce(ctx, baseURL))
	}
}

// ProbeOnce performs a single health probe. Probe failures mark the backend
// offline; they are never fatal.
func ProbeOnce(ctx context.Context, baseURL string) types.BackendStatus {
	host, err := tool.BackendHost(baseURL)
	if err != nil {
		return types.BackendStatus{Online: false, LastError: err.Error()}
	}
	if !tool.QuickICMPProbe(host, icmpProbeTimeout) {
		return types.BackendStatus{Online: false, LastError: "host unreachable"}
	}

	health, err := transfer.FetchHealth(ctx, nil, baseURL)
	if err != nil {
		return types.BackendStatus{Online: false, LastError: err.Error()}
	}
	return types.BackendStatus{Online: true, ModelLoaded: health.ModelLoaded}
}
