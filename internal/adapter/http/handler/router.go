package handler

import (
	"player-wallet-service/internal/adapter/http/middleware"
	"player-wallet-service/internal/core/ports"
	"player-wallet-service/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	WalletSvc      ports.WalletService
	PlayerSvc      ports.PlayerService
	TokenSvc       ports.TokenService
	HealthCheckers []ports.HealthChecker
	Metrics        *metrics.Metrics     // nil = metrics disabled
	Gatherer       prometheus.Gatherer  // nil = /metrics disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus scrape endpoint
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	v1.POST("/auth/token", authHandler.IssueToken)

	// --- JWT-authenticated routes (service clients) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	walletHandler := NewWalletHandler(deps.WalletSvc, deps.Metrics)
	playerHandler := NewPlayerHandler(deps.PlayerSvc)

	wallets := v1.Group("/wallets", jwtAuth)
	{
		wallets.PUT("/:walletID", walletHandler.ApplyTransaction)
		wallets.GET("/:walletID", walletHandler.GetBalance)
	}

	players := v1.Group("/players", jwtAuth)
	{
		players.POST("", playerHandler.Register)
		players.GET("", playerHandler.List)
	}

	return r
}
