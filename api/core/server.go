package core

import (
	"net/http"
	"time"

	"github.com/handleme/gallery/cache"
	"github.com/handleme/gallery/config"
	authSvc "github.com/handleme/gallery/internal/auth"
	photoSvc "github.com/handleme/gallery/internal/services/photo"
	tagSvc "github.com/handleme/gallery/internal/services/tag"
	"github.com/handleme/gallery/storage"
	"gorm.io/gorm"
)

var startTime = time.Now()

// ServerDependencies holds everything the router needs, injected by the
// serve command.
type ServerDependencies struct {
	DB            *gorm.DB
	Store         storage.Provider
	Cache         cache.Provider
	TokenManager  *authSvc.TokenManager
	LoginService  *authSvc.LoginService
	SubmitService *photoSvc.SubmitService
	LikeService   *photoSvc.LikeService
	Moderation    *photoSvc.ModerationService
	Gallery       *photoSvc.GalleryService
	TagService    *tagSvc.Service
}

// StartServer builds the configured http.Server. The returned cleanup
// stops the rate limiter janitors.
func StartServer(deps *ServerDependencies) (*http.Server, func()) {
	cfg := config.Get()
	router, clean := setupRouter(deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return srv, clean
}
