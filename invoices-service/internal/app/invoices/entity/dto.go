package entity

// InvoiceRequest - тело POST и PUT запросов на счет
// converted_amount и exchange_rate клиент не передает, их считает сервис
type InvoiceRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"required,len=3,alpha"`
}

// ExchangeRateResponse - сохраненный курс конкретного счета
type ExchangeRateResponse struct {
	Currency     string  `json:"currency"`
	ExchangeRate float64 `json:"exchange_rate"`
}

type TotalRevenueResponse struct {
	Currency     string  `json:"currency"`
	TotalRevenue float64 `json:"total_revenue"`
}

type AverageInvoiceResponse struct {
	Currency       string  `json:"currency"`
	AverageInvoice float64 `json:"average_invoice"`
	Count          int64   `json:"count"`
}

// DetailResponse - ответ об ошибке в формате {"detail": "..."}
type DetailResponse struct {
	Detail string `json:"detail"`
}
