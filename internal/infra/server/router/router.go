// Package router sets up the HTTP routing for the application.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/catering-ops/backend/internal/domain/entity"
	"github.com/catering-ops/backend/internal/integration/entrypoint/controller"
	"github.com/catering-ops/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	authController    *controller.AuthController
	productController *controller.ProductController
	orderController   *controller.OrderController
	reportController  *controller.ReportController
	loginRateLimiter  *middleware.RateLimiter
	authMiddleware    *middleware.AuthMiddleware
	allowedOrigins    []string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	productController *controller.ProductController,
	orderController *controller.OrderController,
	reportController *controller.ReportController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	allowedOrigins []string,
) *Router {
	return &Router{
		healthController:  healthController,
		authController:    authController,
		productController: productController,
		orderController:   orderController,
		reportController:  reportController,
		loginRateLimiter:  loginRateLimiter,
		authMiddleware:    authMiddleware,
		allowedOrigins:    allowedOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()
	r.engine.Use(cors.New(r.corsConfig()))

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// corsConfig allows the configured front-end origins, or any origin without credentials.
func (r *Router) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(r.allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = r.allowedOrigins
	cfg.AllowCredentials = true
	return cfg
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		auth.POST("/refresh", r.authController.RefreshToken)
		auth.POST("/logout", r.authController.Logout)
	}

	authenticated := v1.Group("")
	authenticated.Use(r.authMiddleware.Authenticate())

	authenticated.POST("/users", middleware.RequireRoles(entity.RoleAdmin), r.authController.CreateUser)

	products := authenticated.Group("/products")
	{
		products.GET("", r.productController.List)
		products.GET("/:id", r.productController.Get)
		products.POST("", middleware.RequireRoles(entity.RoleAdmin), r.productController.Create)
		products.PATCH("/:id/status", middleware.RequireRoles(entity.RoleAdmin), r.productController.SetStatus)
	}

	orders := authenticated.Group("/orders")
	{
		orders.GET("", r.orderController.List)
		orders.GET("/:id", r.orderController.Get)
		orders.POST("",
			middleware.RequireRoles(entity.RoleAdmin, entity.RoleDistributor, entity.RoleClient),
			r.orderController.Create,
		)
		orders.PATCH("/:id/status",
			middleware.RequireRoles(entity.RoleAdmin, entity.RoleChef, entity.RoleDriver),
			r.orderController.UpdateStatus,
		)
	}

	reports := authenticated.Group("/reports")
	{
		// Clients and distributors see their own orders only.
		scoped := middleware.RequireRoles(entity.RoleAdmin, entity.RoleDistributor, entity.RoleClient)
		reports.GET("/orders/summary", scoped, r.reportController.OrdersSummary)
		reports.GET("/orders/summary/last", scoped, r.reportController.LastOrdersSummary)
		reports.GET("/orders/export", scoped, r.reportController.ExportOrders)
		reports.GET("/financials",
			middleware.RequireRoles(entity.RoleAdmin, entity.RoleDistributor),
			r.reportController.Financials,
		)
		reports.GET("/daily-summary", r.reportController.DailySummary)
		reports.POST("/daily-summary/send",
			middleware.RequireRoles(entity.RoleAdmin),
			r.reportController.SendDailySummary,
		)
	}
}
