// Package router wires HTTP routes to feature handlers.
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "stock_analyzer/internal/feature/auth/transport/handler"
	forecasthandler "stock_analyzer/internal/feature/forecast/transport/handler"
	metricshandler "stock_analyzer/internal/feature/metrics/transport/handler"
	priceshandler "stock_analyzer/internal/feature/prices/transport/handler"
	symbolhandler "stock_analyzer/internal/feature/symbols/transport/handler"
	"stock_analyzer/internal/platform/http/handler"
	jwtmw "stock_analyzer/internal/platform/jwt"
)

// NewRouter builds the gin engine with all application routes.
func NewRouter(
	authHandler *authhandler.AuthHandler,
	symbols *symbolhandler.SymbolHandler,
	prices *priceshandler.PricesHandler,
	metrics *metricshandler.MetricsHandler,
	forecast *forecasthandler.ForecastHandler,
) *gin.Engine {
	r := gin.Default()

	// no auth required
	r.GET("/healthz", handler.Health)
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)

	// routes below require a valid JWT in the Authorization header
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/symbols", symbols.List)
		auth.GET("/symbols/:code", symbols.Profile)
		auth.GET("/prices/:code", prices.GetHistory)
		auth.GET("/metrics/:code", metrics.Get)
		auth.GET("/forecast/:code", forecast.Get)
	}

	return r
}
