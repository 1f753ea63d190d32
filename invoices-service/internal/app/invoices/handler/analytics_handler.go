package handler

import (
	"context"
	"net/http"

	"invoicesapi/invoices-service/internal/app/invoices/entity"

	"github.com/gin-gonic/gin"
)

type AnalyticsServiceInterface interface {
	TotalRevenue(ctx context.Context, target string) (*entity.TotalRevenueResponse, error)
	AverageInvoice(ctx context.Context, target string) (*entity.AverageInvoiceResponse, error)
}

// AnalyticsHandler отдает агрегаты по счетам
// Валюта берется из query параметра currency, по умолчанию USD
type AnalyticsHandler struct {
	analyticsService AnalyticsServiceInterface
}

func NewAnalyticsHandler(analyticsService AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// TotalRevenue GET /analytics/total-revenue/?currency=EUR
func (h *AnalyticsHandler) TotalRevenue(c *gin.Context) {
	result, err := h.analyticsService.TotalRevenue(c.Request.Context(), c.Query("currency"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AverageInvoice GET /analytics/average-invoice/?currency=EUR
func (h *AnalyticsHandler) AverageInvoice(c *gin.Context) {
	result, err := h.analyticsService.AverageInvoice(c.Request.Context(), c.Query("currency"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
