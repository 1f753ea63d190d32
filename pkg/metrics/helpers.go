package metrics

import (
	"time"
)

type DbOperation string

const (
	DbOpSelect    DbOperation = "select"
	DbOpInsert    DbOperation = "insert"
	DbOpUpdate    DbOperation = "update"
	DbOpDelete    DbOperation = "delete"
	DbOpAggregate DbOperation = "aggregate"
)

type DbTimer struct {
	service   string
	operation DbOperation
	table     string
	start     time.Time
}

func NewDbTimer(service string, op DbOperation, table string) *DbTimer {
	return &DbTimer{
		service:   service,
		operation: op,
		table:     table,
		start:     time.Now(),
	}
}

func (dt *DbTimer) ObserveDuration() {
	duration := time.Since(dt.start).Seconds()
	DbQueryDuration.WithLabelValues(dt.service, string(dt.operation), dt.table).Observe(duration)
}

func RecordDbError(service string, op DbOperation) {
	DbErrors.WithLabelValues(service, string(op)).Inc()
}

// ExchangeAPITimer замеряет один запрос к API курсов
type ExchangeAPITimer struct {
	service   string
	operation string
	start     time.Time
}

func NewExchangeAPITimer(service, operation string) *ExchangeAPITimer {
	return &ExchangeAPITimer{
		service:   service,
		operation: operation,
		start:     time.Now(),
	}
}

// Done записывает длительность и, если err != nil, увеличивает счетчик ошибок
func (et *ExchangeAPITimer) Done(err error) {
	ExchangeAPIRequestDuration.WithLabelValues(et.service, et.operation).Observe(time.Since(et.start).Seconds())
	if err != nil {
		ExchangeAPIErrors.WithLabelValues(et.service, et.operation).Inc()
	}
}

type KafkaProduceTimer struct {
	service string
	topic   string
	start   time.Time
}

func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{
		service: service,
		topic:   topic,
		start:   time.Now(),
	}
}

func (kt *KafkaProduceTimer) Success() {
	KafkaMessagesProduced.WithLabelValues(kt.service, kt.topic).Inc()
	KafkaProduceDuration.WithLabelValues(kt.service, kt.topic).Observe(time.Since(kt.start).Seconds())
}

func (kt *KafkaProduceTimer) Error() {
	KafkaErrors.WithLabelValues(kt.service, kt.topic, "produce").Inc()
}
