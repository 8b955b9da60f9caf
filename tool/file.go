package tool

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogify-ai/fogify-go/types"
)

// videoMediaTypes declares the media types for common video containers. The
// std mime table does not carry most of these and /etc/mime.types is not
// guaranteed to exist.
var videoMediaTypes = map[string]string{
	"mp4":  "video/mp4",
	"mov":  "video/quicktime",
	"avi":  "video/x-msvideo",
	"mkv":  "video/x-matroska",
	"webm": "video/webm",
}

// InspectVideoFile reads local file information for a candidate upload.
// It only gathers facts; rule checks happen in the session.
func InspectVideoFile(path string) (*types.SelectedFile, error) {
	if path == "" {
		return nil, fmt.Errorf("no file selected")
	}
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %v", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file")
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	mediaType := videoMediaTypes[ext]
	if mediaType == "" {
		mediaType = mime.TypeByExtension(filepath.Ext(path))
	}
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	return &types.SelectedFile{
		Path:      path,
		FileName:  filepath.Base(path),
		Size:      fileInfo.Size(),
		MediaType: mediaType,
		Extension: ext,
	}, nil
}
