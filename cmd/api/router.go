package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"goiashop-bff/internal/shared/middleware"
	"goiashop-bff/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	secureCookies := c.Config.App.Environment == "production"

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		corsMiddleware(c),
		middleware.ClientID(secureCookies),
	)

	// Image uploads are bounded: 5 files of 5MB plus form overhead.
	router.MaxMultipartMemory = 32 << 20

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupAddressRoutes(v1, c)
		setupBackofficeRoutes(v1, c)
	}

	return router
}

func corsMiddleware(c *container.Container) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     c.Config.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/backoffice/login", c.AuthHandler.BackofficeLogin)
		auth.POST("/logout", c.AuthHandler.Logout)
		auth.GET("/me", c.AuthHandler.Me)
	}
}

// ========================================
// ADDRESS ROUTES (customer area)
// ========================================
func setupAddressRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// The lookup is open: the dialog fires it before anything is saved
	// and it carries no customer data.
	v1.GET("/cep/:code", c.AddressHandler.Lookup)

	addresses := v1.Group("/addresses")
	addresses.Use(middleware.CustomerSession(c.Sessions))
	{
		addresses.GET("", c.AddressHandler.List)
		addresses.POST("", c.AddressHandler.Create)
		addresses.PUT("/:id", c.AddressHandler.Update)
		addresses.PUT("/:id/default", c.AddressHandler.SetDefault)
		addresses.DELETE("/:id", c.AddressHandler.Delete)
	}
}

// ========================================
// BACKOFFICE ROUTES
// ========================================
func setupBackofficeRoutes(v1 *gin.RouterGroup, c *container.Container) {
	backoffice := v1.Group("/backoffice")
	backoffice.Use(middleware.BackofficeSession(c.Sessions, "admin", "stockist"))
	{
		backoffice.GET("/products", c.CatalogHandler.List)
		backoffice.GET("/products/:id", c.CatalogHandler.Get)

		backoffice.GET("/products/:id/images", c.ImageHandler.List)
		backoffice.POST("/products/:id/images", c.ImageHandler.Upload)
		backoffice.DELETE("/products/:id/images/:imageId", c.ImageHandler.Remove)
		backoffice.PUT("/products/:id/images/:imageId/principal", c.ImageHandler.SetPrincipal)
		backoffice.PUT("/products/:id/images/:imageId/position", c.ImageHandler.Move)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeStatus := "ok"
		status := "ok"
		statusCode := http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.SessionStore.Ping(ctx); err != nil {
			storeStatus = "error: " + err.Error()
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services": gin.H{
				"session_store": storeStatus,
			},
		})
	}
}
