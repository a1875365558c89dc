package moderation

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/handleme/gallery/api/common"
	"github.com/handleme/gallery/database/models"
	photoSvc "github.com/handleme/gallery/internal/services/photo"
	"github.com/gin-gonic/gin"
)

// Handler serves the moderation queue. Routes are mounted behind the
// session middleware; an unauthenticated caller never reaches here.
type Handler struct {
	service *photoSvc.ModerationService
}

func NewHandler(service *photoSvc.ModerationService) *Handler {
	return &Handler{service: service}
}

// queueView is the moderation-facing photo shape.
type queueView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	ImagePath string    `json:"image_path"`
	Status    string    `json:"status"`
	LikeCount int64     `json:"like_count"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

func toViews(list []*models.Photo) []*queueView {
	views := make([]*queueView, 0, len(list))
	for _, record := range list {
		views = append(views, &queueView{
			ID:        record.Identifier,
			Title:     record.Title,
			Location:  record.Location,
			ImagePath: record.ImagePath,
			Status:    record.Status,
			LikeCount: record.LikeCount,
			Tags:      record.TagList(),
			CreatedAt: record.CreatedAt,
		})
	}
	return views
}

// ListPending returns the full pending queue, newest first.
func (h *Handler) ListPending(c *gin.Context) {
	list, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	common.RespondSuccess(c, gin.H{
		"photos": toViews(list),
		"count":  len(list),
	})
}

// Approve publishes a photo and responds with the refreshed pending
// queue, so the client view is never stale after a mutation.
func (h *Handler) Approve(c *gin.Context) {
	h.setStatus(c, h.service.Approve)
}

// Reject marks a photo rejected, same response shape as Approve.
func (h *Handler) Reject(c *gin.Context) {
	h.setStatus(c, h.service.Reject)
}

func (h *Handler) setStatus(c *gin.Context, mutate func(ctx context.Context, identifier string) error) {
	identifier := c.Param("identifier")

	if err := mutate(c.Request.Context(), identifier); err != nil {
		if errors.Is(err, photoSvc.ErrPhotoNotFound) {
			common.RespondError(c, http.StatusNotFound, "Photo not found")
			return
		}
		if photoSvc.IsValidationError(err) {
			common.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}
		// Mutation failed; the pending queue is untouched and the
		// caller can retry the same action.
		common.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	list, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	common.RespondSuccess(c, gin.H{
		"photos": toViews(list),
		"count":  len(list),
	})
}
