package tool

import (
	"flag"

	"github.com/fogify-ai/fogify-go/types"
)

// SetFlags parses CLI flags and returns the override config.
func SetFlags() types.Config {
	var cfg types.Config
	flag.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	flag.StringVar(&cfg.UseConfigPath, "useConfigPath", "", "override config file path")
	flag.StringVar(&cfg.UseBackendURL, "useBackendURL", "", "override Fogify backend base URL")
	flag.IntVar(&cfg.UsePort, "usePort", 0, "override local control API port")
	flag.Int64Var(&cfg.UseMaxUploadSize, "useMaxUploadSize", 0, "override maximum upload size in bytes")
	flag.BoolVar(&cfg.SkipHealthMonitor, "skipHealthMonitor", false, "do not probe backend health periodically")
	flag.BoolVar(&cfg.SkipNotifyWS, "skipNotifyWS", false, "disable the notify WebSocket endpoint")
	flag.Parse()
	return cfg
}
