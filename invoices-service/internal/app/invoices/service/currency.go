package service

import (
	"context"
	"fmt"

	"invoicesapi/invoices-service/internal/app/invoices/infrastructure"
	"invoicesapi/pkg/logger"
)

// ensureSupported проверяет код валюты по свежему списку из API курсов
// Список не кешируется, запрашивается на каждый вызов
func ensureSupported(ctx context.Context, gateway infrastructure.CurrencyGateway, currency string) error {
	supported, err := gateway.ListSupportedCurrencies(ctx)
	if err != nil {
		logger.Warn().Err(err).Str("currency", currency).Msg("Failed to retrieve supported currencies")
		return &UnavailableError{
			Detail: fmt.Sprintf("Unable to retrieve supported currencies at this time. Due to: %v", err),
			Err:    err,
		}
	}

	for _, code := range supported {
		if code == currency {
			return nil
		}
	}

	return &UnsupportedCurrencyError{Currency: currency, Supported: supported}
}
