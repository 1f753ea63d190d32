package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="invoices-service"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests in seconds",
		// Запросы ходят во внешний API курсов, поэтому верхние бакеты до 10s
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database Метрики (MongoDB)
// =============================================================================

// DbQueryDuration - время выполнения операций с коллекцией
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

// DbErrors - счётчик ошибок базы данных
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Exchange API Метрики
// =============================================================================

// ExchangeAPIRequestDuration - время запросов к внешнему API курсов
// operation: codes, latest, pair
var ExchangeAPIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "exchange_api_request_duration_seconds",
		Help:    "Duration of exchange rate API requests in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "operation"},
)

// ExchangeAPIErrors - неудачные запросы к внешнему API
var ExchangeAPIErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "exchange_api_errors_total",
		Help: "Total number of failed exchange rate API requests",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Business Метрики
// =============================================================================

// InvoicesCreated - созданные счета по исходной валюте
var InvoicesCreated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "invoices_created_total",
		Help: "Total number of invoices created",
	},
	[]string{"currency"},
)

// InvoicesUpdated - обновленные счета
var InvoicesUpdated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "invoices_updated_total",
		Help: "Total number of invoices updated",
	},
	[]string{"currency"},
)

// InvoicesDeleted - удаленные счета
var InvoicesDeleted = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "invoices_deleted_total",
		Help: "Total number of invoices deleted",
	},
)

// InvoicesConvertedAmount - сумма созданных счетов в USD
var InvoicesConvertedAmount = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "invoices_converted_amount_usd_total",
		Help: "Total converted amount of created invoices in USD",
	},
)
