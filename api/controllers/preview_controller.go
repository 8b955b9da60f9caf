package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fogify-ai/fogify-go/tool"
)

// StreamPreview serves the selected video for local playback. The token is
// minted by the session on upload success and dies when the session resets,
// so stale links stop working the moment the file is superseded.
// GET /api/fogify/v1/preview/:token
func StreamPreview(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Missing preview token"))
		return
	}
	path, ok := previews.Lookup(token)
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Preview not found or released"))
		return
	}
	// gin's File handler supports range requests, which video players need.
	c.File(path)
}
