package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abdelrahman464/blackbox/internal/domain/model"
	"github.com/abdelrahman464/blackbox/internal/server/http/handlers"
	"github.com/abdelrahman464/blackbox/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	requestHandler := handlers.NewRequestHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade, logger)

	// Provider deliveries authenticate via signature, not user tokens.
	engine.POST("/webhook-checkout", webhookHandler.HandleCheckout)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authed := engine.Group("")
	authed.Use(middleware.AuthRequired(facade))

	requests := authed.Group("/requests")
	requests.POST("", requestHandler.Create)
	requests.GET("/:id", requestHandler.Get)
	requests.PUT("/:id", requestHandler.Update)

	adminRequests := requests.Group("")
	adminRequests.Use(middleware.RequireRole(model.RoleAdmin))
	adminRequests.GET("", requestHandler.List)
	adminRequests.DELETE("/:id", requestHandler.Delete)
	adminRequests.PUT("/:id/status", requestHandler.UpdateStatus)

	orders := authed.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.GET("/checkout-session/:serviceId", orderHandler.CheckoutSession)

	return engine
}
