package photos

import (
	"errors"
	"net/http"

	photoSvc "github.com/handleme/gallery/internal/services/photo"
	"github.com/gin-gonic/gin"
)

// likeRequest is the fixed wire contract of the like endpoint.
type likeRequest struct {
	PhotoID         string `json:"photo_id"`
	AnonFingerprint string `json:"anon_fingerprint"`
}

// LikePhoto records a like. The response shape is part of the public
// contract: {ok:true, incremented:bool} on success (incremented=false
// when this fingerprint already liked the photo), {ok:false, error} on
// failure.
func (h *Handler) LikePhoto(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Missing photo_id or anon_fingerprint"})
		return
	}

	if req.PhotoID == "" || req.AnonFingerprint == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Missing photo_id or anon_fingerprint"})
		return
	}

	result, err := h.likeService.Like(c.Request.Context(), req.PhotoID, req.AnonFingerprint)
	if err != nil {
		if errors.Is(err, photoSvc.ErrPhotoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "Photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"incremented": result.Incremented,
		"like_count":  result.LikeCount,
	})
}
