package service

import (
	"context"
	"fmt"

	"invoicesapi/invoices-service/internal/app/invoices/entity"
	"invoicesapi/invoices-service/internal/app/invoices/infrastructure"
	"invoicesapi/invoices-service/internal/app/invoices/repository"
	"invoicesapi/pkg/logger"
)

// AnalyticsService считает агрегаты по converted_amount (USD)
// и при необходимости пересчитывает результат в запрошенную валюту
type AnalyticsService struct {
	invoiceRepo repository.InvoiceRepository
	gateway     infrastructure.CurrencyGateway
}

func NewAnalyticsService(
	invoiceRepo repository.InvoiceRepository,
	gateway infrastructure.CurrencyGateway,
) *AnalyticsService {
	return &AnalyticsService{
		invoiceRepo: invoiceRepo,
		gateway:     gateway,
	}
}

// TotalRevenue - сумма всех счетов в валюте target (по умолчанию USD)
func (s *AnalyticsService) TotalRevenue(ctx context.Context, target string) (*entity.TotalRevenueResponse, error) {
	currency, summary, err := s.prepare(ctx, target)
	if err != nil {
		return nil, err
	}

	if summary.Count == 0 {
		return &entity.TotalRevenueResponse{Currency: currency, TotalRevenue: 0}, nil
	}

	total, err := s.fromBase(ctx, summary.TotalUSD, currency)
	if err != nil {
		return nil, err
	}

	return &entity.TotalRevenueResponse{Currency: currency, TotalRevenue: total}, nil
}

// AverageInvoice - средний счет в валюте target (по умолчанию USD)
func (s *AnalyticsService) AverageInvoice(ctx context.Context, target string) (*entity.AverageInvoiceResponse, error) {
	currency, summary, err := s.prepare(ctx, target)
	if err != nil {
		return nil, err
	}

	if summary.Count == 0 {
		return &entity.AverageInvoiceResponse{Currency: currency, AverageInvoice: 0, Count: 0}, nil
	}

	average, err := s.fromBase(ctx, averageOf(summary.TotalUSD, summary.Count), currency)
	if err != nil {
		return nil, err
	}

	return &entity.AverageInvoiceResponse{Currency: currency, AverageInvoice: average, Count: summary.Count}, nil
}

// prepare нормализует валюту, проверяет ее по списку API и читает агрегат
// Проверка валюты идет всегда, в том числе когда счетов нет
func (s *AnalyticsService) prepare(ctx context.Context, target string) (string, *entity.InvoiceSummary, error) {
	currency := normalizeCurrency(target)
	if currency == "" {
		currency = entity.BaseCurrency
	}

	if err := ensureSupported(ctx, s.gateway, currency); err != nil {
		return "", nil, err
	}

	summary, err := s.invoiceRepo.Summary(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to aggregate invoices: %w", err)
	}
	if !isFinite(summary.TotalUSD) {
		return "", nil, fmt.Errorf("aggregate of %d invoices is not a finite number", summary.Count)
	}

	return currency, summary, nil
}

// fromBase пересчитывает значение из USD в currency и округляет до 2 знаков
func (s *AnalyticsService) fromBase(ctx context.Context, valueUSD float64, currency string) (float64, error) {
	if currency == entity.BaseCurrency {
		return round2(valueUSD), nil
	}

	converted, err := s.gateway.Convert(ctx, valueUSD, entity.BaseCurrency, currency)
	if err != nil {
		logger.Error().
			Err(err).
			Str("from", entity.BaseCurrency).
			Str("to", currency).
			Msg("Failed to convert aggregate")
		return 0, &ConversionError{From: entity.BaseCurrency, To: currency, Err: err}
	}

	return round2(converted), nil
}
