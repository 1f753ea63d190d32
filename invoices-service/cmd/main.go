package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"invoicesapi/invoices-service/internal/app/invoices/config"
	"invoicesapi/invoices-service/internal/app/invoices/handler"
	"invoicesapi/invoices-service/internal/app/invoices/infrastructure"
	"invoicesapi/invoices-service/internal/app/invoices/infrastructure/exchange"
	"invoicesapi/invoices-service/internal/app/invoices/infrastructure/messaging"
	"invoicesapi/invoices-service/internal/app/invoices/repository"
	"invoicesapi/invoices-service/internal/app/invoices/service"
	"invoicesapi/pkg/logger"
)

const serviceName = "invoices-service"

func main() {
	// .env необязателен, переменные окружения имеют приоритет
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init(serviceName, logLevel)

	if envErr != nil {
		logger.Debug().Err(envErr).Msg("No .env file loaded")
	}

	logstashAddr := os.Getenv("LOGSTASH_ADDR")
	if logstashAddr != "" {
		if err := logger.InitLogstash(logstashAddr, serviceName, logLevel); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", logstashAddr).Msg("Connected to Logstash")
		}
	}

	if cfg.ExchangeAPI.APIKey == "" {
		logger.Warn().Msg("EXCHANGE_API_KEY is empty, exchange rate requests will fail")
	}

	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().
		Str("database", cfg.MongoDB.Database).
		Str("collection", cfg.MongoDB.Collection).
		Msg("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB.Database)

	publisher := newPublisher(cfg.Kafka)
	defer publisher.Close()

	gateway := exchange.NewClient(cfg.ExchangeAPI.URL, cfg.ExchangeAPI.APIKey, cfg.ExchangeAPI.Timeout)

	invoiceRepo := repository.NewInvoiceRepository(db, cfg.MongoDB.Collection)
	invoiceService := service.NewInvoiceService(invoiceRepo, gateway, publisher)
	analyticsService := service.NewAnalyticsService(invoiceRepo, gateway)

	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	router := handler.SetupRoutes(invoiceHandler, analyticsHandler)

	// WriteTimeout не задан: запрос может ждать API курсов дольше 15 секунд,
	// если EXCHANGE_API_TIMEOUT = 0
	server := &http.Server{
		Addr:        cfg.Server.Address(),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Invoices Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Invoices Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Invoices Service stopped gracefully")
}

// newPublisher возвращает Kafka producer или заглушку, если Kafka выключена
func newPublisher(cfg config.KafkaConfig) infrastructure.MessagePublisher {
	if !cfg.Enabled {
		logger.Info().Msg("Kafka disabled, invoice events will not be published")
		return messaging.NopPublisher{}
	}

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.Topic).
		Msg("Initialized Kafka producer")
	return messaging.NewKafkaProducer(cfg.Brokers, cfg.Topic)
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		client, err = tryConnect(clientOptions)
		if err == nil {
			return client, nil
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}

func tryConnect(clientOptions *options.ClientOptions) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}
