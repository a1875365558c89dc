package photos

import (
	"net/http"

	"github.com/handleme/gallery/api/common"
	photoSvc "github.com/handleme/gallery/internal/services/photo"
	"github.com/gin-gonic/gin"
)

// ListApproved serves the public gallery. Sort mode is a projection
// over the same fetched set, never a different query.
func (h *Handler) ListApproved(c *gin.Context) {
	sortMode := c.DefaultQuery("sort", photoSvc.SortNewest)

	views, err := h.galleryService.ListApproved(c.Request.Context(), sortMode)
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	common.RespondSuccess(c, gin.H{
		"photos": views,
		"sort":   sortMode,
		"count":  len(views),
	})
}
