package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fogify-ai/fogify-go/api/models"
	"github.com/fogify-ai/fogify-go/channel"
	"github.com/fogify-ai/fogify-go/session"
	"github.com/fogify-ai/fogify-go/tool"
	"github.com/fogify-ai/fogify-go/transfer"
	"github.com/fogify-ai/fogify-go/types"
)

// Collaborators for new sessions, wired once at startup by Configure.
var (
	backendURL     string
	maxUploadSize  int64
	sessionBackend session.Backend
	channelFactory channel.Factory
	previews       *models.PreviewRegistry
	notifier       session.Notifier
)

// Configure wires the collaborators every created session receives.
func Configure(cfg *types.AppConfig, notify session.Notifier) {
	backendURL = cfg.BackendURL
	maxUploadSize = cfg.MaxUploadSize
	sessionBackend = session.NewHTTPBackend(cfg.BackendURL, tool.GetHttpClient())
	channelFactory = channel.NewWebSocketFactory(cfg.BackendURL)
	previews = models.NewPreviewRegistry()
	notifier = notify
}

// GetPreviewRegistry exposes the registry for the preview controller.
func GetPreviewRegistry() *models.PreviewRegistry {
	return previews
}

// CreateSession handles session creation.
// POST /api/fogify/v1/sessions
func CreateSession(c *gin.Context) {
	id := tool.GenerateRandomUUID()
	sess := session.New(id, maxUploadSize, sessionBackend, channelFactory, previews, notifier)
	models.SetSession(id, sess)
	tool.DefaultLogger.Infof("Created session %s", id)
	c.JSON(http.StatusCreated, tool.FastReturnSuccessWithData(sess.Snapshot()))
}

// GetSession returns a session snapshot.
// GET /api/fogify/v1/sessions/:id
func GetSession(c *gin.Context) {
	sess, ok := models.GetSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Session not found or expired"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(sess.Snapshot()))
}

// ListSessions returns the IDs of all live sessions.
// GET /api/fogify/v1/sessions
func ListSessions(c *gin.Context) {
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(models.ListSessionIDs()))
}

// SelectFileRequest is the body for selecting a local video.
type SelectFileRequest struct {
	Path string `json:"path"`
}

// SelectFile validates a local video and starts its upload.
// POST /api/fogify/v1/sessions/:id/select
func SelectFile(c *gin.Context) {
	sess, ok := models.GetSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Session not found or expired"))
		return
	}

	var request SelectFileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}

	if err := sess.Select(request.Path); err != nil {
		var verr *session.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, tool.FastReturnError(verr.Message))
			return
		}
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Selection failed: "+err.Error()))
		return
	}

	// Upload runs in the background; the snapshot shows it in flight.
	c.JSON(http.StatusAccepted, tool.FastReturnSuccessWithData(sess.Snapshot()))
}

// StartAnalysis triggers backend analysis for the session's task.
// POST /api/fogify/v1/sessions/:id/analyze
func StartAnalysis(c *gin.Context) {
	sess, ok := models.GetSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Session not found or expired"))
		return
	}

	if err := sess.StartAnalysis(c.Request.Context()); err != nil {
		switch {
		case errors.Is(err, session.ErrNoActiveTask):
			c.JSON(http.StatusConflict, tool.FastReturnError("No uploaded video to analyze"))
		case errors.Is(err, session.ErrAnalysisInProgress):
			c.JSON(http.StatusConflict, tool.FastReturnError("Analysis already in progress"))
		case errors.Is(err, transfer.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, tool.FastReturnError(err.Error()))
		case errors.Is(err, transfer.ErrAnalysisRejected):
			c.JSON(http.StatusBadGateway, tool.FastReturnError(err.Error()))
		default:
			c.JSON(http.StatusBadGateway, tool.FastReturnError("Failed to start analysis: "+err.Error()))
		}
		return
	}

	c.JSON(http.StatusAccepted, tool.FastReturnSuccessWithData(sess.Snapshot()))
}

// ResetSession returns the session to idle.
// POST /api/fogify/v1/sessions/:id/reset
func ResetSession(c *gin.Context) {
	sess, ok := models.GetSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Session not found or expired"))
		return
	}
	sess.Reset()
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(sess.Snapshot()))
}

// DeleteSession closes and removes the session.
// DELETE /api/fogify/v1/sessions/:id
func DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if _, ok := models.GetSession(id); !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Session not found or expired"))
		return
	}
	models.DeleteSession(id)
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}

// TaskStatus proxies the backend's view of the session's task.
// GET /api/fogify/v1/sessions/:id/task-status
func TaskStatus(c *gin.Context) {
	sess, ok := models.GetSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Session not found or expired"))
		return
	}
	snap := sess.Snapshot()
	if snap.TaskID == "" {
		c.JSON(http.StatusConflict, tool.FastReturnError("No uploaded video for this session"))
		return
	}
	status, err := transfer.FetchTaskStatus(c.Request.Context(), nil, backendURL, snap.TaskID)
	if err != nil {
		if errors.Is(err, transfer.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, tool.FastReturnError(err.Error()))
			return
		}
		c.JSON(http.StatusBadGateway, tool.FastReturnError("Failed to fetch task status: "+err.Error()))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(status))
}
