package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fogify-ai/fogify-go/probe"
	"github.com/fogify-ai/fogify-go/share"
	"github.com/fogify-ai/fogify-go/tool"
)

// BackendStatus returns the last health-monitor result. Before the first
// probe has run, a synchronous probe fills the gap so the UI never sees an
// empty status.
// GET /api/fogify/v1/backend-status
func BackendStatus(c *gin.Context) {
	status := share.GetBackendStatus()
	if status.CheckedAt.IsZero() {
		share.SetBackendStatus(probe.ProbeOnce(c.Request.Context(), backendURL))
		status = share.GetBackendStatus()
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(status))
}
