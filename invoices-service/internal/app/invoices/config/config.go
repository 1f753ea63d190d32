package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server      ServerConfig
	MongoDB     MongoDBConfig
	Kafka       KafkaConfig
	ExchangeAPI ExchangeAPIConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8084)
}

type MongoDBConfig struct {
	URI        string // URI подключения к MongoDB
	Database   string // Имя базы данных
	Collection string // Коллекция со счетами
}

type KafkaConfig struct {
	Enabled bool     // Если false - события счетов не публикуются
	Brokers []string // Список брокеров Kafka (формат: host:port)
	Topic   string   // Топик для событий INVOICE_*
}

// ExchangeAPIConfig - настройки внешнего API курсов (exchangerate-api.com v6)
// Итоговые URL имеют вид {URL}/{APIKey}/codes, {URL}/{APIKey}/latest/EUR и т.д.
type ExchangeAPIConfig struct {
	URL     string // Базовый URL API
	APIKey  string // API ключ
	Timeout int    // Таймаут HTTP запроса в секундах, 0 - без таймаута
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8084"),
		},
		MongoDB: MongoDBConfig{
			URI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGODB_DATABASE", "invoices_service"),
			Collection: getEnv("MONGODB_COLLECTION", "invoices"),
		},
		Kafka: KafkaConfig{
			Enabled: getEnvBool("KAFKA_ENABLED", false),
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "invoice_events"),
		},
		ExchangeAPI: ExchangeAPIConfig{
			URL:     getEnv("EXCHANGE_API_URL", "https://v6.exchangerate-api.com/v6"),
			APIKey:  getEnv("EXCHANGE_API_KEY", ""),
			Timeout: getEnvInt("EXCHANGE_API_TIMEOUT", 0),
		},
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
