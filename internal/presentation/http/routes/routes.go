package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/commandes-api/internal/config"
	domainRepo "github.com/sangkips/commandes-api/internal/domain/repository"
	"github.com/sangkips/commandes-api/internal/presentation/http/handler"
	"github.com/sangkips/commandes-api/internal/presentation/http/middleware"
	"github.com/sangkips/commandes-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Client    *handler.ClientHandler
	Type      *handler.TypeHandler
	Order     *handler.OrderHandler
	Receipt   *handler.ReceiptHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Log             *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFrom(
		deps.Cfg.RateLimit.Requests,
		deps.Cfg.RateLimit.Duration,
	))

	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	protected.GET("/dashboard", h.Dashboard.GetStats)

	registerClientRoutes(protected, h)
	registerTypeRoutes(protected, h)
	registerOrderRoutes(protected, h, deps)

	protected.POST("/receipts/preview", h.Receipt.Preview)
	protected.GET("/printer/status", h.Printer.Status)
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}
}

func registerTypeRoutes(protected *gin.RouterGroup, h *Handlers) {
	types := protected.Group("/types")
	{
		types.GET("", h.Type.List)
		types.POST("", h.Type.Create)
		types.GET("/:id", h.Type.Get)
		types.PUT("/:id", h.Type.Update)
		types.DELETE("/:id", h.Type.Delete)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idem := middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo, Log: deps.Log}

	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		// Order creation uses idempotency middleware to prevent duplicates
		orders.POST("", middleware.IdempotencyRequired(idem), h.Order.Create)
		orders.GET("/export", h.Order.Export)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", middleware.Idempotency(idem), h.Order.Update)
		orders.DELETE("/:id", h.Order.Delete)
		orders.POST("/:id/payment", middleware.Idempotency(idem), h.Order.RecordPayment)
		orders.GET("/:id/receipt", h.Receipt.Download)
		orders.POST("/:id/print", h.Printer.PrintOrder)
	}
}
