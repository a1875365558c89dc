package photos

import (
	"io"
	"net/http"
	"strings"

	"github.com/handleme/gallery/api/common"
	"github.com/gin-gonic/gin"
)

// GetFile streams a stored blob. Blob URLs are public by path, matching
// the bucket semantics of the original deployment; there is no status
// gate here.
func (h *Handler) GetFile(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("path"), "/")
	if key == "" || strings.Contains(key, "..") {
		common.RespondError(c, http.StatusBadRequest, "Invalid file path")
		return
	}

	stream, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		common.RespondError(c, http.StatusNotFound, "File not found")
		return
	}
	defer stream.Close()

	c.Header("Cache-Control", "public, max-age=3600")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started; nothing to report to the client.
		return
	}
}
