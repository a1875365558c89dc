package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/handleme/gallery/api/core"
	"github.com/handleme/gallery/cache"
	"github.com/handleme/gallery/config"
	"github.com/handleme/gallery/database"
	"github.com/handleme/gallery/database/repo/likes"
	"github.com/handleme/gallery/database/repo/photos"
	"github.com/handleme/gallery/database/repo/tags"
	"github.com/handleme/gallery/database/repo/tokens"
	authSvc "github.com/handleme/gallery/internal/auth"
	photoSvc "github.com/handleme/gallery/internal/services/photo"
	tagSvc "github.com/handleme/gallery/internal/services/tag"
	"github.com/handleme/gallery/storage"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()

	if err := os.MkdirAll("./data", os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}
	if err := database.SeedDefaultTags(db); err != nil {
		log.Printf("[Warning] Failed to seed default tags: %v", err)
	}

	store, err := storage.NewProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	cacheProvider, err := cache.NewProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	photoRepo := photos.NewRepository(db)
	likeRepo := likes.NewRepository(db)
	tagRepo := tags.NewRepository(db)
	tokenRepo := tokens.NewRepository(db)

	tokenManager, err := authSvc.NewTokenManager(cfg.JwtSecret, cfg.JwtExpiresIn)
	if err != nil {
		log.Fatalf("Failed to initialize session tokens: %v", err)
	}
	loginService := authSvc.NewLoginService(tokenRepo, authSvc.LogMailer{}, tokenManager,
		cfg.AdminEmail, cfg.LoginTokenTTL, cfg.BaseURL())

	submitService := photoSvc.NewSubmitService(photoRepo, store, cfg.MaxUploadBytes())
	likeService := photoSvc.NewLikeService(photoRepo, likeRepo)
	moderationService := photoSvc.NewModerationService(photoRepo)
	galleryService := photoSvc.NewGalleryService(photoRepo, cacheProvider, cfg.CacheGalleryTTL, cfg.BaseURL())
	tagService := tagSvc.NewService(tagRepo)

	// Status changes and new likes drop the cached gallery listing
	likeService.OnChange(galleryService.Invalidate)
	moderationService.OnChange(galleryService.Invalidate)

	deps := &core.ServerDependencies{
		DB:            db,
		Store:         store,
		Cache:         cacheProvider,
		TokenManager:  tokenManager,
		LoginService:  loginService,
		SubmitService: submitService,
		LikeService:   likeService,
		Moderation:    moderationService,
		Gallery:       galleryService,
		TagService:    tagService,
	}

	server, cleanup := core.StartServer(deps)
	go func() {
		log.Printf("Server started on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cleanup != nil {
		cleanup()
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := cacheProvider.Close(); err != nil {
		log.Printf("Error closing cache: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	log.Println("Server exited successfully")
}
