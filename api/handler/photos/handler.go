package photos

import (
	photoSvc "github.com/handleme/gallery/internal/services/photo"
	"github.com/handleme/gallery/storage"
)

// Handler serves the public photo surface: submission, gallery listing,
// likes, and blob passthrough.
type Handler struct {
	submitService  *photoSvc.SubmitService
	likeService    *photoSvc.LikeService
	galleryService *photoSvc.GalleryService
	store          storage.Provider
	maxUploadBytes int64
}

func NewHandler(submitService *photoSvc.SubmitService, likeService *photoSvc.LikeService, galleryService *photoSvc.GalleryService, store storage.Provider, maxUploadBytes int64) *Handler {
	return &Handler{
		submitService:  submitService,
		likeService:    likeService,
		galleryService: galleryService,
		store:          store,
		maxUploadBytes: maxUploadBytes,
	}
}
