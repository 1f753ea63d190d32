package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"invoicesapi/invoices-service/internal/app/invoices/entity"
	"invoicesapi/pkg/metrics"
)

// ErrGatewayUnavailable - любая ошибка обращения к API курсов:
// сеть, статус, разбор ответа или отсутствие валютной пары
var ErrGatewayUnavailable = errors.New("exchange rate API unavailable")

const (
	serviceName = "invoices-service"
	resultOK    = "success"

	// Ответ codes занимает ~10 КБ, остальные меньше
	maxResponseSize = 1 << 20
)

// Client ходит во внешний API курсов валют (exchangerate-api.com v6)
// Отвечает только за HTTP запросы, бизнес-правила живут в service
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient создает клиент API курсов
// timeoutSec == 0 означает отсутствие таймаута на стороне клиента,
// запрос все равно прерывается при отмене контекста
func NewClient(baseURL, apiKey string, timeoutSec int) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

// ListSupportedCurrencies возвращает коды валют, которые умеет конвертировать API
func (c *Client) ListSupportedCurrencies(ctx context.Context) (codes []string, err error) {
	timer := metrics.NewExchangeAPITimer(serviceName, "codes")
	defer func() { timer.Done(err) }()

	var resp entity.SupportedCodesResponse
	if err := c.get(ctx, &resp, "codes"); err != nil {
		return nil, err
	}
	if resp.Result != resultOK {
		return nil, apiError(resp.ErrorType)
	}

	codes = make([]string, 0, len(resp.SupportedCodes))
	for _, pair := range resp.SupportedCodes {
		// Каждый элемент - [код, название]
		if len(pair) > 0 && pair[0] != "" {
			codes = append(codes, pair[0])
		}
	}

	return codes, nil
}

// GetRate возвращает курс from -> to из последних курсов для from
func (c *Client) GetRate(ctx context.Context, from, to string) (rate float64, err error) {
	timer := metrics.NewExchangeAPITimer(serviceName, "latest")
	defer func() { timer.Done(err) }()

	var resp entity.LatestRatesResponse
	if err := c.get(ctx, &resp, "latest", from); err != nil {
		return 0, err
	}
	if resp.Result != resultOK {
		return 0, apiError(resp.ErrorType)
	}

	rate, ok := resp.ConversionRates[to]
	if !ok {
		return 0, fmt.Errorf("%w: rate %s -> %s not found", ErrGatewayUnavailable, from, to)
	}

	return rate, nil
}

// Convert пересчитывает amount из from в to на стороне API
func (c *Client) Convert(ctx context.Context, amount float64, from, to string) (converted float64, err error) {
	timer := metrics.NewExchangeAPITimer(serviceName, "pair")
	defer func() { timer.Done(err) }()

	var resp entity.PairConversionResponse
	if err := c.get(ctx, &resp, "pair", from, to, strconv.FormatFloat(amount, 'f', -1, 64)); err != nil {
		return 0, err
	}
	if resp.Result != resultOK {
		return 0, apiError(resp.ErrorType)
	}

	return resp.ConversionResult, nil
}

// get выполняет GET {baseURL}/{apiKey}/{segments...} и декодирует JSON в out
func (c *Client) get(ctx context.Context, out interface{}, segments ...string) error {
	endpoint := c.buildURL(segments...)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrGatewayUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrGatewayUnavailable, redact(err, c.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return fmt.Errorf("%w: failed to read response body: %v", ErrGatewayUnavailable, err)
	}
	if len(body) > maxResponseSize {
		return fmt.Errorf("%w: response body exceeds %d bytes", ErrGatewayUnavailable, maxResponseSize)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: API returned status %d: %s", ErrGatewayUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to unmarshal API response: %v", ErrGatewayUnavailable, err)
	}

	return nil
}

func (c *Client) buildURL(segments ...string) string {
	parts := make([]string, 0, len(segments)+2)
	parts = append(parts, c.baseURL, url.PathEscape(c.apiKey))
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	return strings.Join(parts, "/")
}

func apiError(errorType string) error {
	if errorType == "" {
		errorType = "unknown-error"
	}
	return fmt.Errorf("%w: API returned error: %s", ErrGatewayUnavailable, errorType)
}

// redact убирает API ключ из текста ошибки: url.Error содержит полный URL запроса
func redact(err error, apiKey string) string {
	if apiKey == "" {
		return err.Error()
	}
	return strings.ReplaceAll(err.Error(), apiKey, "***")
}
