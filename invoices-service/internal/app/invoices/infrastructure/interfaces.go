package infrastructure

import "context"

// MessagePublisher интерфейс для отправки событий в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// CurrencyGateway - обертка над внешним API курсов валют
// Любой вызов может завершиться ошибкой, кеша и повторов нет
type CurrencyGateway interface {
	ListSupportedCurrencies(ctx context.Context) ([]string, error)
	GetRate(ctx context.Context, from, to string) (float64, error)
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
}
