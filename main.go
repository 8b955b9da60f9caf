package main

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fogify-ai/fogify-go/api"
	"github.com/fogify-ai/fogify-go/api/notifyhub"
	"github.com/fogify-ai/fogify-go/probe"
	"github.com/fogify-ai/fogify-go/share"
	"github.com/fogify-ai/fogify-go/tool"
)

func main() {
	cfg := tool.SetFlags()
	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}
	if cfg.UseBackendURL != "" {
		appCfg.BackendURL = cfg.UseBackendURL
	}
	if cfg.UsePort > 0 {
		appCfg.Port = cfg.UsePort
	}
	if cfg.UseMaxUploadSize > 0 {
		appCfg.MaxUploadSize = cfg.UseMaxUploadSize
	}
	if cfg.SkipNotifyWS {
		appCfg.NotifyWS = false
	}

	// initialize logger
	tool.InitLogger()
	if cfg.Log == "" {
		tool.DefaultLogger.SetLevel(log.DebugLevel)
	} else {
		switch strings.ToLower(cfg.Log) {
		case "dev":
			tool.DefaultLogger.SetLevel(log.DebugLevel)
		case "prod":
			tool.DefaultLogger.SetLevel(log.InfoLevel)
		case "none":
			tool.DefaultLogger.SetLevel(log.FatalLevel)
		default:
			tool.DefaultLogger.Warnf("Unknown log mode %q, using debug level", cfg.Log)
			tool.DefaultLogger.SetLevel(log.DebugLevel)
		}
	}

	tool.DefaultLogger.Infof("Fogify backend: %s", appCfg.BackendURL)

	hub := notifyhub.New()
	share.SetNotifySink(hub.Broadcast)

	if !cfg.SkipHealthMonitor {
		interval := time.Duration(appCfg.HealthInterval) * time.Second
		go probe.Monitor(context.Background(), appCfg.BackendURL, interval)
	}

	apiServer := api.NewServer(&appCfg, hub, appCfg.NotifyWS)
	if err := apiServer.Start(); err != nil {
		tool.DefaultLogger.Fatalf("Control API startup failed: %v", err)
	}
}
