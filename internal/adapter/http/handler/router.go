package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"zap-feed-service/internal/adapter/http/middleware"
	redisStore "zap-feed-service/internal/adapter/storage/redis"
	"zap-feed-service/internal/core/ports"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	FeedSvc        ports.FeedService
	TransferSvc    ports.TransferService
	AuthSvc        ports.AuthService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies LNbits + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/session", rl("auth_session"), authHandler.StartSession)
	}

	// --- Session-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	feedHandler := NewFeedHandler(deps.FeedSvc)
	userHandler := NewUserHandler(deps.FeedSvc)
	zapHandler := NewZapHandler(deps.TransferSvc)

	auth.POST("/logout", jwtAuth, authHandler.EndSession)

	feed := v1.Group("/feed", jwtAuth)
	{
		feed.GET("", rl("feed"), feedHandler.GetFeed)
		feed.GET("/stats", rl("feed"), feedHandler.GetStats)
	}

	users := v1.Group("/users", jwtAuth)
	{
		users.GET("", rl("feed"), userHandler.ListUsers)
	}

	wallets := v1.Group("/wallets", jwtAuth)
	{
		wallets.GET("/balance", rl("feed"), userHandler.GetBalance)
	}

	zaps := v1.Group("/zaps", jwtAuth)
	{
		zaps.POST("", rl("zaps"), zapHandler.SendZap)
	}

	return r
}
