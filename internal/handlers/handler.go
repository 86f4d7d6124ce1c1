package handlers

import (
	"solar_advisor/internal/logger"
	"solar_advisor/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	limiter  *clientLimiter
}

// Option customizes a Handler.
type Option func(*Handler)

// WithRateLimit throttles /api/v1 and /ws readings per client IP. rps <= 0 disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(h *Handler) {
		if rps > 0 {
			h.limiter = newClientLimiter(rps, burst)
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Live advisory over WebSocket on the same port; frames share the client's rate bucket
	router.GET("/ws", h.rateLimitMiddleware, h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.rateLimitMiddleware, h.userIdMiddleware)
	{
		h.registerEfficiencyRoutes(api)
		h.registerAlertRoutes(api)
		h.registerSubsidyRoutes(api)
		api.GET("/recommendations", h.getRecommendations)
		api.GET("/model", h.getModel)
	}
}

func (h *Handler) registerEfficiencyRoutes(api *gin.RouterGroup) {
	eff := api.Group("/efficiency")
	{
		// Body example: {"temperature_c":25,"humidity_pct":60,"dust_level":"Low","days_since_cleaning":7,"panel_age_years":3}
		eff.POST("/predict", h.predict)
		eff.GET("/latest", h.getLatest)
		eff.GET("/history", h.getHistory)
	}
}

func (h *Handler) registerAlertRoutes(api *gin.RouterGroup) {
	api.GET("/alerts", h.getAlerts)
}

func (h *Handler) registerSubsidyRoutes(api *gin.RouterGroup) {
	subsidies := api.Group("/subsidies")
	{
		subsidies.GET("", h.listSubsidyRegions)
		subsidies.GET("/:region", h.getSubsidy)
	}
}
