package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"invoicesapi/invoices-service/internal/app/invoices/entity"
	"invoicesapi/invoices-service/internal/app/invoices/infrastructure"
	"invoicesapi/invoices-service/internal/app/invoices/repository"
	"invoicesapi/pkg/logger"
	"invoicesapi/pkg/metrics"
)

// publishTimeout ограничивает ожидание Kafka внутри HTTP запроса
const publishTimeout = 3 * time.Second

// InvoiceService обрабатывает бизнес-логику счетов
// Конвертация в USD - явный шаг сервиса: проверка валюты -> курс -> расчет -> сохранение
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	gateway     infrastructure.CurrencyGateway
	publisher   infrastructure.MessagePublisher
}

// NewInvoiceService создает новый сервис счетов с внедрением зависимостей
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	gateway infrastructure.CurrencyGateway,
	publisher infrastructure.MessagePublisher,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		gateway:     gateway,
		publisher:   publisher,
	}
}

// CreateInvoice создает счет с пересчетом суммы в USD
func (s *InvoiceService) CreateInvoice(ctx context.Context, req *entity.InvoiceRequest) (*entity.Invoice, error) {
	currency := normalizeCurrency(req.Currency)

	convertedAmount, rate, err := s.convertToBase(ctx, req.Amount, currency)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		Amount:          req.Amount,
		Currency:        currency,
		ConvertedAmount: convertedAmount,
		ExchangeRate:    rate,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	metrics.InvoicesCreated.WithLabelValues(invoice.Currency).Inc()
	metrics.InvoicesConvertedAmount.Add(invoice.ConvertedAmount)

	s.publishInvoiceEvent(ctx, newInvoiceEvent(entity.EventInvoiceCreated, invoice))

	return invoice, nil
}

// GetInvoice получает счет по ID
func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceID string) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return invoice, nil
}

// ListInvoices возвращает все счета, для пустой коллекции - пустой срез
func (s *InvoiceService) ListInvoices(ctx context.Context) ([]entity.Invoice, error) {
	invoices, err := s.invoiceRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	if invoices == nil {
		invoices = []entity.Invoice{}
	}

	return invoices, nil
}

// UpdateInvoice полностью заменяет сумму и валюту счета и пересчитывает курс
// Существование счета проверяется до обращения к API курсов
func (s *InvoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req *entity.InvoiceRequest) (*entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	currency := normalizeCurrency(req.Currency)

	convertedAmount, rate, err := s.convertToBase(ctx, req.Amount, currency)
	if err != nil {
		return nil, err
	}

	invoice.Amount = req.Amount
	invoice.Currency = currency
	invoice.ConvertedAmount = convertedAmount
	invoice.ExchangeRate = rate

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		// Счет могли удалить между чтением и записью
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	metrics.InvoicesUpdated.WithLabelValues(invoice.Currency).Inc()

	s.publishInvoiceEvent(ctx, newInvoiceEvent(entity.EventInvoiceUpdated, invoice))

	return invoice, nil
}

// DeleteInvoice удаляет счет
func (s *InvoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	if err := s.invoiceRepo.Delete(ctx, invoiceID); err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return ErrInvoiceNotFound
		}
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	metrics.InvoicesDeleted.Inc()

	s.publishInvoiceEvent(ctx, entity.InvoiceEvent{
		EventType: entity.EventInvoiceDeleted,
		InvoiceID: invoiceID,
		Timestamp: time.Now().UTC(),
	})

	return nil
}

// GetExchangeRate возвращает сохраненный в счете курс, API курсов не вызывается
func (s *InvoiceService) GetExchangeRate(ctx context.Context, invoiceID string) (*entity.ExchangeRateResponse, error) {
	invoice, err := s.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	return &entity.ExchangeRateResponse{
		Currency:     invoice.Currency,
		ExchangeRate: invoice.ExchangeRate,
	}, nil
}

// convertToBase проверяет валюту, получает курс currency -> USD и считает сумму в USD
func (s *InvoiceService) convertToBase(ctx context.Context, amount float64, currency string) (float64, float64, error) {
	if err := ensureSupported(ctx, s.gateway, currency); err != nil {
		return 0, 0, err
	}

	rate, err := s.gateway.GetRate(ctx, currency, entity.BaseCurrency)
	if err != nil {
		logger.Warn().Err(err).Str("currency", currency).Msg("Failed to get exchange rate")
		return 0, 0, &UnavailableError{
			Detail: fmt.Sprintf("Exchange rate for currency '%s' is not available: %v", currency, err),
			Err:    err,
		}
	}

	convertedAmount := convertAmount(amount, rate)
	if !isFinite(convertedAmount) {
		return 0, 0, fmt.Errorf("%w: %v %s converts to a non-finite USD amount", ErrInvalidAmount, amount, currency)
	}

	return convertedAmount, rate, nil
}

func newInvoiceEvent(eventType string, invoice *entity.Invoice) entity.InvoiceEvent {
	return entity.InvoiceEvent{
		EventType:       eventType,
		InvoiceID:       invoice.ID.Hex(),
		Amount:          invoice.Amount,
		Currency:        invoice.Currency,
		ConvertedAmount: invoice.ConvertedAmount,
		ExchangeRate:    invoice.ExchangeRate,
		Timestamp:       time.Now().UTC(),
	}
}

// publishInvoiceEvent отправляет событие о счете в Kafka
// Ошибки только логируются: счет уже сохранен, проблемы с Kafka не критичны
func (s *InvoiceService) publishInvoiceEvent(ctx context.Context, event entity.InvoiceEvent) {
	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("Failed to marshal invoice event")
		return
	}

	// Недоступный брокер не должен задерживать ответ клиенту
	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// Ключ = ID счета для партиционирования
	if err := s.publisher.PublishMessage(publishCtx, event.InvoiceID, eventData); err != nil {
		logger.Error().
			Err(err).
			Str("event_type", event.EventType).
			Str("invoice_id", event.InvoiceID).
			Msg("Failed to publish invoice event")
	}
}
