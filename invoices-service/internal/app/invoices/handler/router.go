package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"invoicesapi/pkg/logger"
	"invoicesapi/pkg/metrics"
)

const serviceName = "invoices-service"

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(invoiceHandler *InvoiceHandler, analyticsHandler *AnalyticsHandler) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов (ELK Stack)
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowWildcard:    true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	invoices := router.Group("/invoices")
	{
		invoices.GET("/", invoiceHandler.ListInvoices)
		invoices.POST("/", invoiceHandler.CreateInvoice)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
		invoices.PUT("/:id", invoiceHandler.UpdateInvoice)
		invoices.DELETE("/:id", invoiceHandler.DeleteInvoice)
		invoices.GET("/:id/exchange-rate", invoiceHandler.GetExchangeRate)
	}

	analytics := router.Group("/analytics")
	{
		analytics.GET("/total-revenue/", analyticsHandler.TotalRevenue)
		analytics.GET("/average-invoice/", analyticsHandler.AverageInvoice)
	}

	return router
}
