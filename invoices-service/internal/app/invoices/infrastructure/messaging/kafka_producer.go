package messaging

import (
	"context"
	"fmt"
	"time"

	"invoicesapi/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const serviceName = "invoices-service"

// KafkaProducer отправляет события счетов в топик invoice_events
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{}, // Ключ = ID счета, события одного счета попадают в одну партицию
		// Запись синхронная в рамках HTTP запроса, поэтому батч не копим
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaProducer{writer: writer, topic: topic}
}

func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	timer := metrics.NewKafkaProduceTimer(serviceName, p.topic)

	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		timer.Error()
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	timer.Success()
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NopPublisher используется, когда Kafka выключена в конфигурации
type NopPublisher struct{}

func (NopPublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
