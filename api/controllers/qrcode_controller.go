package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/fogify-ai/fogify-go/tool"
)

const (
	defaultQRSize = 256
	maxQRSize     = 512
)

// uiPort is set by Configure via the server; used to build the UI URL.
var uiPort int

// SetUIPort records the local API port for QR code generation.
func SetUIPort(port int) {
	uiPort = port
}

// EditorQRCode returns a PNG QR code encoding the local editor URL, so the
// UI can be opened from another device on the same machine's browser profile.
// GET /api/fogify/v1/qr?size=256
func EditorQRCode(c *gin.Context) {
	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid size parameter"))
			return
		}
		size = n
	}
	if size > maxQRSize {
		size = maxQRSize
	}

	editorURL := fmt.Sprintf("http://127.0.0.1:%d/", uiPort)
	png, err := qrcode.Encode(editorURL, qrcode.Medium, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to encode QR code: "+err.Error()))
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
