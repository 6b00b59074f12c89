package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/tilestock/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(dashboard *handlers.DashboardHandler, pages *handlers.PagesHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/dashboard", dashboard.Get)
	api.GET("/dashboard/latest", dashboard.Latest)
	api.GET("/dashboard/snapshots/latest", dashboard.LatestSnapshot)

	p := api.Group("/pages")
	p.GET("/products", pages.ListProducts)
	p.POST("/products", pages.CreateProduct)
	p.DELETE("/products/:id", pages.DeleteProduct)

	p.GET("/inventory", pages.ListInventory)
	p.POST("/inventory", pages.CreateInventory)
	p.DELETE("/inventory/:id", pages.DeleteInventory)

	p.GET("/stock-movements", pages.ListMovements)
	p.POST("/stock-movements", pages.CreateMovement)
	p.PUT("/stock-movements/:id", pages.UpdateMovement)
	p.DELETE("/stock-movements/:id", pages.DeleteMovement)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
