package repository

import (
	"context"

	"invoicesapi/invoices-service/internal/app/invoices/entity"
)

// InvoiceRepository определяет методы для работы со счетами в MongoDB
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetAll(ctx context.Context) ([]entity.Invoice, error)
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context) (*entity.InvoiceSummary, error)
}
