package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrServiceUnavailable  = errors.New("currency service unavailable")
	ErrConversionFailed    = errors.New("currency conversion failed")
	ErrInvalidAmount       = errors.New("invalid amount")
)

// UnsupportedCurrencyError - валюты нет в списке, который вернул API курсов
type UnsupportedCurrencyError struct {
	Currency  string
	Supported []string
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf("Unsupported currency '%s'. Supported currencies: [%s]", e.Currency, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedCurrencyError) Is(target error) bool {
	return target == ErrUnsupportedCurrency
}

// UnavailableError - не удалось получить список валют или курс
// Detail уходит клиенту в ответе 503
type UnavailableError struct {
	Detail string
	Err    error
}

func (e *UnavailableError) Error() string {
	return e.Detail
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrServiceUnavailable
}

// ConversionError - не удалось пересчитать агрегат из From в To
type ConversionError struct {
	From string
	To   string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("Failed to convert %s to %s: %v", e.From, e.To, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversionFailed
}
