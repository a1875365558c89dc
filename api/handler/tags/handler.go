package tags

import (
	"github.com/handleme/gallery/api/common"
	tagSvc "github.com/handleme/gallery/internal/services/tag"
	"github.com/gin-gonic/gin"
)

// Handler serves the submission-form tag choices.
type Handler struct {
	service *tagSvc.Service
}

func NewHandler(service *tagSvc.Service) *Handler {
	return &Handler{service: service}
}

// ListTags returns the reference tags, falling back to the built-in set
// when the table is empty or unreachable.
func (h *Handler) ListTags(c *gin.Context) {
	common.RespondSuccess(c, gin.H{
		"tags": h.service.List(c.Request.Context()),
	})
}
