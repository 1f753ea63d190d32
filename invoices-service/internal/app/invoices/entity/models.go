package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BaseCurrency - валюта отчетности, в которую пересчитываются все счета
const BaseCurrency = "USD"

type Invoice struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Amount          float64            `json:"amount" bson:"amount"`                     // Сумма в исходной валюте
	Currency        string             `json:"currency" bson:"currency"`                 // Код исходной валюты (EUR, EGP и т.д.)
	ConvertedAmount float64            `json:"converted_amount" bson:"converted_amount"` // Сумма в USD, считается сервисом
	ExchangeRate    float64            `json:"exchange_rate" bson:"exchange_rate"`       // Курс currency -> USD на момент записи
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

// InvoiceSummary - агрегат по всем счетам (сумма converted_amount и количество)
type InvoiceSummary struct {
	TotalUSD float64 `bson:"total"`
	Count    int64   `bson:"count"`
}

type InvoiceEvent struct {
	EventType       string    `json:"event_type"` // INVOICE_CREATED, INVOICE_UPDATED, INVOICE_DELETED
	InvoiceID       string    `json:"invoice_id"`
	Amount          float64   `json:"amount,omitempty"`
	Currency        string    `json:"currency,omitempty"`
	ConvertedAmount float64   `json:"converted_amount,omitempty"`
	ExchangeRate    float64   `json:"exchange_rate,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

const (
	EventInvoiceCreated = "INVOICE_CREATED"
	EventInvoiceUpdated = "INVOICE_UPDATED"
	EventInvoiceDeleted = "INVOICE_DELETED"
)

// SupportedCodesResponse - ответ внешнего API на /codes
// supported_codes имеет вид [["USD", "United States Dollar"], ...]
type SupportedCodesResponse struct {
	Result         string     `json:"result"`
	ErrorType      string     `json:"error-type,omitempty"`
	SupportedCodes [][]string `json:"supported_codes"`
}

// LatestRatesResponse - ответ внешнего API на /latest/{base}
type LatestRatesResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type,omitempty"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// PairConversionResponse - ответ внешнего API на /pair/{from}/{to}/{amount}
type PairConversionResponse struct {
	Result           string  `json:"result"`
	ErrorType        string  `json:"error-type,omitempty"`
	BaseCode         string  `json:"base_code"`
	TargetCode       string  `json:"target_code"`
	ConversionRate   float64 `json:"conversion_rate"`
	ConversionResult float64 `json:"conversion_result"`
}
