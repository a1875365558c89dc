package core

import (
	"net/http"
	"time"

	"github.com/handleme/gallery/api/common"
	handlerAuth "github.com/handleme/gallery/api/handler/auth"
	handlerModeration "github.com/handleme/gallery/api/handler/moderation"
	handlerPhotos "github.com/handleme/gallery/api/handler/photos"
	handlerTags "github.com/handleme/gallery/api/handler/tags"
	"github.com/handleme/gallery/api/middleware"
	"github.com/handleme/gallery/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func setupRouter(deps *ServerDependencies) (*gin.Engine, func()) {
	cfg := config.Get()

	if config.CommitHash != "n/a" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if config.CommitHash == "n/a" {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.BaseURL()},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.SetTrustedProxies(nil)

	// Cap multipart memory at the submission size limit
	router.MaxMultipartMemory = cfg.MaxUploadBytes()

	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())

	authRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitAuthRPS, cfg.RateLimitAuthBurst, cfg.RateLimitExpireTime)
	apiRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitApiRPS, cfg.RateLimitApiBurst, cfg.RateLimitExpireTime)
	likeRateLimiter := middleware.NewIPRateLimiter(cfg.RateLimitLikeRPS, cfg.RateLimitLikeBurst, cfg.RateLimitExpireTime)
	cleanup := func() {
		authRateLimiter.StopCleanup()
		apiRateLimiter.StopCleanup()
		likeRateLimiter.StopCleanup()
	}

	router.GET("/health", func(c *gin.Context) {
		health := gin.H{
			"status":  "ok",
			"uptime":  time.Since(startTime).Round(time.Second).String(),
			"version": config.Version,
			"checks": gin.H{
				"database": checkDatabaseHealth(deps.DB),
				"cache":    checkCacheHealth(deps.Cache),
				"storage":  checkStorageHealth(deps.Store),
			},
		}
		httpStatus := http.StatusOK
		for _, checkResult := range health["checks"].(gin.H) {
			if result, ok := checkResult.(string); ok && result != "ok" {
				httpStatus = http.StatusServiceUnavailable
				break
			}
		}
		c.JSON(httpStatus, health)
	})
	router.GET("/version", func(c *gin.Context) {
		common.RespondSuccess(c, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})
	router.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, middleware.GetMetrics())
	})

	photoHandler := handlerPhotos.NewHandler(deps.SubmitService, deps.LikeService, deps.Gallery, deps.Store, cfg.MaxUploadBytes())
	moderationHandler := handlerModeration.NewHandler(deps.Moderation)
	tagHandler := handlerTags.NewHandler(deps.TagService)
	authHandler := handlerAuth.NewHandler(deps.LoginService)

	// Public blob access
	fileGroup := router.Group("/photos/file")
	fileGroup.Use(apiRateLimiter.Middleware())
	{
		fileGroup.GET("/*path", photoHandler.GetFile)
	}

	apiGroup := router.Group("/api")
	apiGroup.Use(func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	})
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.Use(authRateLimiter.Middleware())
		{
			authGroup.POST("/login", authHandler.RequestLink)   // POST /api/auth/login
			authGroup.POST("/verify", authHandler.Verify)       // POST /api/auth/verify
			authGroup.POST("/logout", authHandler.Logout)       // POST /api/auth/logout
			authGroup.GET("/session",                           // GET  /api/auth/session
				middleware.AuthRequired(deps.TokenManager), authHandler.Session)
		}

		v1 := apiGroup.Group("/v1")
		v1.Use(apiRateLimiter.Middleware())
		{
			photosGroup := v1.Group("/photos")
			{
				photosGroup.POST("", photoHandler.SubmitPhoto)   // POST /api/v1/photos
				photosGroup.GET("", photoHandler.ListApproved)   // GET  /api/v1/photos?sort=newest|likes
				photosGroup.POST("/like",                        // POST /api/v1/photos/like
					likeRateLimiter.Middleware(), photoHandler.LikePhoto)
			}

			v1.GET("/tags", tagHandler.ListTags) // GET /api/v1/tags

			moderationGroup := v1.Group("/moderation")
			moderationGroup.Use(middleware.AuthRequired(deps.TokenManager))
			{
				moderationGroup.GET("/pending", moderationHandler.ListPending)          // GET  /api/v1/moderation/pending
				moderationGroup.POST("/:identifier/approve", moderationHandler.Approve) // POST /api/v1/moderation/{id}/approve
				moderationGroup.POST("/:identifier/reject", moderationHandler.Reject)   // POST /api/v1/moderation/{id}/reject
			}
		}
	}

	return router, cleanup
}
