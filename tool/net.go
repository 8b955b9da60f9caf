package tool

import (
	"net"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// QuickICMPProbe checks host reachability with a single unprivileged ICMP echo.
// Loopback hosts skip the probe: the backend runs beside us in the common case
// and some loopback stacks drop unprivileged ICMP.
func QuickICMPProbe(host string, timeout time.Duration) bool {
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return true
	}
	if host == "localhost" {
		return true
	}

	pinger, err := probing.NewPinger(host)
	if err != nil {
		DefaultLogger.Debugf("QuickICMPProbe: failed to create pinger for %s: %v", host, err)
		return false
	}
	pinger.Count = 1
	pinger.Timeout = timeout
	pinger.SetPrivileged(false)
	if err := pinger.Run(); err != nil {
		DefaultLogger.Debugf("QuickICMPProbe: probe to %s failed: %v", host, err)
		return false
	}
	return pinger.Statistics().PacketsRecv > 0
}
