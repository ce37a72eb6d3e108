package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/rubayet2027/KrishiLink-Client/internal/apiclient"
	"github.com/rubayet2027/KrishiLink-Client/internal/api/handlers"
	"github.com/rubayet2027/KrishiLink-Client/internal/api/middleware"
	"github.com/rubayet2027/KrishiLink-Client/internal/auth"
	"github.com/rubayet2027/KrishiLink-Client/internal/cache"
	"github.com/rubayet2027/KrishiLink-Client/internal/config"
	"github.com/rubayet2027/KrishiLink-Client/internal/services"
	"github.com/rubayet2027/KrishiLink-Client/internal/storage"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, rdb *redis.Client, taskClient *asynq.Client) *gin.Engine {
	// Identity and session plumbing
	identity := auth.NewIdentityClient(cfg)
	sessionStore := auth.NewRedisSessionStore(rdb, cfg.SessionTTL)
	tokens := auth.NewSessionTokens(identity, sessionStore)

	// Marketplace API clients share one HTTP client and token provider
	client := apiclient.New(cfg.APIBaseURL, tokens, cfg.APIHTTPTimeout)
	cropsAPI := apiclient.NewCropsClient(client)
	interestsAPI := apiclient.NewInterestsClient(client)
	usersAPI := apiclient.NewUsersClient(client)

	cacheStore := cache.NewRedisStore(rdb)

	cropService := services.NewCropService(cropsAPI, cacheStore, cfg)
	interestService := services.NewInterestService(cropsAPI, interestsAPI)
	userService := services.NewUserService(usersAPI)

	s3StorageService, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatalf("CRITICAL: Failed to initialize S3 storage for API: %v", err)
	}

	r := gin.Default()

	// Initialize Middleware
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)

	// Apply global middleware first (order matters: the rate limiter keys
	// signed-in clients by identity, so sessions resolve before it runs)
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigin))
	r.Use(middleware.SessionMiddleware(cfg, sessionStore))
	r.Use(rateLimiter.Limit())

	// Initialize handlers
	cropHandler := handlers.NewCropHandler(cropService, interestService)
	interestHandler := handlers.NewInterestHandler(cropService, interestService)
	sessionHandler := handlers.NewSessionHandler(cfg, identity, sessionStore, userService)
	userHandler := handlers.NewUserHandler(userService)
	uploadHandler := handlers.NewUploadHandler(s3StorageService, taskClient)

	v1 := r.Group("/v1")
	{
		// Public routes
		v1.GET("/crops", cropHandler.Browse)
		v1.GET("/crops/categories", cropHandler.Categories)
		v1.GET("/crops/:id", cropHandler.Get)

		// Session routes
		v1.POST("/session", sessionHandler.Login)
		v1.POST("/session/register", sessionHandler.Register)
		v1.GET("/session", sessionHandler.Current)
		v1.DELETE("/session", sessionHandler.Logout)

		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Authenticated routes
		authRequired := v1.Group("/")
		authRequired.Use(middleware.RequireSession())
		{
			authRequired.GET("/crops/my-posts", cropHandler.MyPosts)
			authRequired.POST("/crops", cropHandler.Create)
			authRequired.PUT("/crops/:id", cropHandler.Update)
			authRequired.DELETE("/crops/:id", cropHandler.Delete)

			authRequired.POST("/crops/:id/interests", interestHandler.Submit)
			authRequired.GET("/crops/:id/interests", interestHandler.ListForCrop)
			authRequired.PATCH("/crops/:id/interests/:interestId", interestHandler.Decide)
			authRequired.GET("/interests/my", interestHandler.MyInterests)

			authRequired.GET("/profile", userHandler.GetProfile)
			authRequired.PUT("/profile", userHandler.UpdateProfile)

			authRequired.POST("/uploads", uploadHandler.Presign)
			authRequired.POST("/uploads/complete", uploadHandler.Complete)
		}
	}

	return r
}
