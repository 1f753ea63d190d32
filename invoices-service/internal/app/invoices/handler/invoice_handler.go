package handler

import (
	"context"
	"net/http"

	"invoicesapi/invoices-service/internal/app/invoices/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type InvoiceServiceInterface interface {
	CreateInvoice(ctx context.Context, req *entity.InvoiceRequest) (*entity.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*entity.Invoice, error)
	ListInvoices(ctx context.Context) ([]entity.Invoice, error)
	UpdateInvoice(ctx context.Context, invoiceID string, req *entity.InvoiceRequest) (*entity.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID string) error
	GetExchangeRate(ctx context.Context, invoiceID string) (*entity.ExchangeRateResponse, error)
}

// InvoiceHandler обрабатывает HTTP запросы для счетов
type InvoiceHandler struct {
	invoiceService InvoiceServiceInterface
	validator      *validator.Validate
}

func NewInvoiceHandler(invoiceService InvoiceServiceInterface) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		validator:      newValidator(),
	}
}

// ListInvoices GET /invoices/
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// CreateInvoice POST /invoices/
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req entity.InvoiceRequest
	if !bindInvoiceRequest(c, h.validator, &req) {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoice GET /invoices/:id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice PUT /invoices/:id
// Несуществующий счет дает 404 даже при невалидном теле
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	invoiceID := c.Param("id")
	if _, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID); err != nil {
		writeServiceError(c, err)
		return
	}

	var req entity.InvoiceRequest
	if !bindInvoiceRequest(c, h.validator, &req) {
		return
	}

	if _, err := h.invoiceService.UpdateInvoice(c.Request.Context(), invoiceID, &req); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteInvoice DELETE /invoices/:id
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetExchangeRate GET /invoices/:id/exchange-rate
func (h *InvoiceHandler) GetExchangeRate(c *gin.Context) {
	rate, err := h.invoiceService.GetExchangeRate(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, rate)
}
