package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/fogify-ai/fogify-go/api/controllers"
	"github.com/fogify-ai/fogify-go/api/middlewares"
	"github.com/fogify-ai/fogify-go/api/notifyhub"
	"github.com/fogify-ai/fogify-go/session"
	"github.com/fogify-ai/fogify-go/tool"
	"github.com/fogify-ai/fogify-go/types"
)

// Server is the localhost control API the web UI talks to.
type Server struct {
	port     int
	engine   *gin.Engine
	server   *http.Server
	hub      *notifyhub.Hub
	notifyWS bool
}

// NewServer wires the control API. notifyWS toggles the UI push channel.
func NewServer(cfg *types.AppConfig, hub *notifyhub.Hub, notifyWS bool) *Server {
	s := &Server{
		port:     cfg.Port,
		hub:      hub,
		notifyWS: notifyWS,
	}

	var notify session.Notifier
	if hub != nil {
		notify = hub.Broadcast
	}
	controllers.Configure(cfg, notify)
	controllers.SetUIPort(cfg.Port)

	s.engine = s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() *gin.Engine {
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middlewares.AllowAllCORS())

	v1 := engine.Group("/api/fogify/v1", middlewares.OnlyAllowLocal)
	{
		v1.GET("/sessions", controllers.ListSessions)                     // List live session IDs
		v1.POST("/sessions", controllers.CreateSession)                   // Create a session
		v1.GET("/sessions/:id", controllers.GetSession)                   // Session snapshot
		v1.POST("/sessions/:id/select", controllers.SelectFile)           // Validate + upload a local video
		v1.POST("/sessions/:id/analyze", controllers.StartAnalysis)       // Trigger analysis
		v1.POST("/sessions/:id/reset", controllers.ResetSession)          // Back to idle
		v1.DELETE("/sessions/:id", controllers.DeleteSession)             // Close and remove
		v1.GET("/sessions/:id/task-status", controllers.TaskStatus)       // Backend task status passthrough
		v1.GET("/preview/:token", controllers.StreamPreview)              // Local video playback
		v1.GET("/backend-status", controllers.BackendStatus)              // Health monitor result
		v1.GET("/qr", controllers.EditorQRCode)                           // QR of the editor URL
		if s.notifyWS && s.hub != nil {
			v1.GET("/notify-ws", notifyhub.HandleNotifyWS(s.hub)) // UI push channel
		}
	}

	return engine
}

// Start blocks serving the control API.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler: s.engine,
	}
	tool.DefaultLogger.Infof("Control API listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
