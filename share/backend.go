// Package share holds process-wide state observed by several components: the
// last known backend status, with change notifications for the web UI.
package share

import (
	"fmt"
	"sync"
	"time"

	"github.com/fogify-ai/fogify-go/tool"
	"github.com/fogify-ai/fogify-go/types"
)

// NotifySink receives backend status change notifications. Wired to the
// notify hub by main; nil until then.
type NotifySink func(*types.Notification)

var (
	backendMu     sync.RWMutex
	backendStatus types.BackendStatus
	notifySink    NotifySink
)

// SetNotifySink installs the notification fan-out target.
func SetNotifySink(sink NotifySink) {
	backendMu.Lock()
	defer backendMu.Unlock()
	notifySink = sink
}

// SetBackendStatus records a probe result and notifies the UI when the
// online/offline state or the loaded model changed.
func SetBackendStatus(status types.BackendStatus) {
	backendMu.Lock()
	previous := backendStatus
	sink := notifySink
	status.CheckedAt = time.Now()
	backendStatus = status
	backendMu.Unlock()

	changed := previous.Online != status.Online || previous.ModelLoaded != status.ModelLoaded
	if !changed {
		return
	}

	if status.Online {
		tool.DefaultLogger.Infof("Backend online (model loaded: %v)", status.ModelLoaded)
	} else {
		tool.DefaultLogger.Warnf("Backend offline: %s", status.LastError)
	}

	if sink == nil {
		return
	}
	notification := &types.Notification{
		Type:    types.NotifyTypeBackendOnline,
		Title:   "Backend Online",
		Message: fmt.Sprintf("Fogify backend reachable (model loaded: %v)", status.ModelLoaded),
		Data: map[string]any{
			"modelLoaded": status.ModelLoaded,
		},
	}
	if !status.Online {
		notification.Type = types.NotifyTypeBackendOffline
		notification.Title = "Backend Offline"
		notification.Message = "Fogify backend is unreachable"
		notification.Data["lastError"] = status.LastError
	}
	sink(notification)
}

// GetBackendStatus returns the last recorded backend status.
func GetBackendStatus() types.BackendStatus {
	backendMu.RLock()
	defer backendMu.RUnlock()
	return backendStatus
}
