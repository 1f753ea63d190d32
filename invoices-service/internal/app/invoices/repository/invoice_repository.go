package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"invoicesapi/invoices-service/internal/app/invoices/entity"
	"invoicesapi/pkg/logger"
	"invoicesapi/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrInvoiceNotFound = errors.New("invoice not found")
)

const serviceName = "invoices-service"

type invoiceRepository struct {
	collection *mongo.Collection
}

// NewInvoiceRepository создает новый репозиторий счетов
// Автоматически создает индекс по created_at
func NewInvoiceRepository(db *mongo.Database, collectionName string) InvoiceRepository {
	collection := db.Collection(collectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "created_at", Value: 1},
		},
		Options: options.Index().SetName("created_at_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Не прерываем работу - индекс может уже существовать
		logger.Warn().Err(err).Str("index", "created_at_idx").Msg("Failed to create index")
	}

	return newInvoiceRepository(collection)
}

func newInvoiceRepository(collection *mongo.Collection) *invoiceRepository {
	return &invoiceRepository{collection: collection}
}

// Create сохраняет новый счет, ID назначает MongoDB
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, r.collection.Name())
	defer timer.ObserveDuration()

	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, invoice)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		invoice.ID = oid
	}

	return nil
}

// GetAll возвращает все счета в порядке создания
func (r *invoiceRepository) GetAll(ctx context.Context) ([]entity.Invoice, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, r.collection.Name())
	defer timer.ObserveDuration()

	// ObjectID монотонно растет, сортировка по _id дает порядок вставки
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to find invoices: %w", err)
	}
	defer cursor.Close(ctx)

	invoices := make([]entity.Invoice, 0)
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, fmt.Errorf("failed to decode invoices: %w", err)
	}

	return invoices, nil
}

// GetByID получает счет по ID
// Некорректный ObjectID считаем несуществующим счетом
func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, r.collection.Name())
	defer timer.ObserveDuration()

	var invoice entity.Invoice
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&invoice)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvoiceNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	return &invoice, nil
}

// Update заменяет сумму, валюту и результат конвертации
// created_at не трогаем
func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, r.collection.Name())
	defer timer.ObserveDuration()

	filter := bson.M{"_id": invoice.ID}
	update := bson.M{
		"$set": bson.M{
			"amount":           invoice.Amount,
			"currency":         invoice.Currency,
			"converted_amount": invoice.ConvertedAmount,
			"exchange_rate":    invoice.ExchangeRate,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrInvoiceNotFound
	}

	return nil
}

// Delete удаляет счет
func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvoiceNotFound
	}

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, r.collection.Name())
	defer timer.ObserveDuration()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpDelete)
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrInvoiceNotFound
	}

	return nil
}

// Summary считает сумму converted_amount и количество счетов одним $group
// Для пустой коллекции возвращает нулевой агрегат
func (r *invoiceRepository) Summary(ctx context.Context) (*entity.InvoiceSummary, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpAggregate, r.collection.Name())
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$converted_amount"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpAggregate)
		return nil, fmt.Errorf("failed to aggregate invoices: %w", err)
	}
	defer cursor.Close(ctx)

	var results []entity.InvoiceSummary
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode invoice summary: %w", err)
	}

	if len(results) == 0 {
		return &entity.InvoiceSummary{}, nil
	}

	return &results[0], nil
}
