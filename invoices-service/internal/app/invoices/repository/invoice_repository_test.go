package repository

import (
	"context"
	"testing"
	"time"

	"invoicesapi/invoices-service/internal/app/invoices/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func invoiceDoc(id primitive.ObjectID, amount float64, currency string, rate float64, createdAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "amount", Value: amount},
		{Key: "currency", Value: currency},
		{Key: "converted_amount", Value: amount * rate},
		{Key: "exchange_rate", Value: rate},
		{Key: "created_at", Value: primitive.NewDateTimeFromTime(createdAt)},
	}
}

func TestInvoiceRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("Create assigns ID and created_at", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		invoice := &entity.Invoice{Amount: 100, Currency: "EGP", ConvertedAmount: 3000, ExchangeRate: 30}
		err := repo.Create(ctx, invoice)

		require.NoError(mt, err)
		assert.False(mt, invoice.ID.IsZero())
		assert.False(mt, invoice.CreatedAt.IsZero())
	})

	mt.Run("Create keeps preset created_at", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		createdAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
		invoice := &entity.Invoice{Amount: 1, Currency: "USD", ConvertedAmount: 1, ExchangeRate: 1, CreatedAt: createdAt}

		require.NoError(mt, repo.Create(ctx, invoice))
		assert.Equal(mt, createdAt, invoice.CreatedAt)
	})

	mt.Run("Create database error", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "boom",
		}))

		err := repo.Create(ctx, &entity.Invoice{Amount: 1, Currency: "USD"})

		assert.Error(mt, err)
		assert.Contains(mt, err.Error(), "failed to create invoice")
	})

	mt.Run("GetAll returns invoices", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)
		now := time.Now().UTC()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			invoiceDoc(primitive.NewObjectID(), 100, "EUR", 1.1, now),
			invoiceDoc(primitive.NewObjectID(), 200, "GBP", 1.25, now),
		))

		invoices, err := repo.GetAll(ctx)

		require.NoError(mt, err)
		require.Len(mt, invoices, 2)
		assert.Equal(mt, "EUR", invoices[0].Currency)
		assert.Equal(mt, 250.0, invoices[1].ConvertedAmount)
	})

	mt.Run("GetAll empty collection returns empty slice", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		invoices, err := repo.GetAll(ctx)

		require.NoError(mt, err)
		assert.NotNil(mt, invoices)
		assert.Empty(mt, invoices)
	})

	mt.Run("GetByID found", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			invoiceDoc(id, 100, "EUR", 1.1, time.Now().UTC()),
		))

		invoice, err := repo.GetByID(ctx, id.Hex())

		require.NoError(mt, err)
		assert.Equal(mt, id, invoice.ID)
		assert.Equal(mt, 1.1, invoice.ExchangeRate)
	})

	mt.Run("GetByID not found", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		invoice, err := repo.GetByID(ctx, primitive.NewObjectID().Hex())

		assert.Nil(mt, invoice)
		assert.ErrorIs(mt, err, ErrInvoiceNotFound)
	})

	mt.Run("GetByID malformed id is not found", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)

		invoice, err := repo.GetByID(ctx, "not-an-object-id")

		assert.Nil(mt, invoice)
		assert.ErrorIs(mt, err, ErrInvoiceNotFound)
	})

	mt.Run("Update matched", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}})

		err := repo.Update(ctx, &entity.Invoice{ID: primitive.NewObjectID(), Amount: 250, Currency: "USD", ConvertedAmount: 250, ExchangeRate: 1})

		assert.NoError(mt, err)
	})

	mt.Run("Update not matched", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}})

		err := repo.Update(ctx, &entity.Invoice{ID: primitive.NewObjectID(), Amount: 250, Currency: "USD"})

		assert.ErrorIs(mt, err, ErrInvoiceNotFound)
	})

	mt.Run("Delete removes invoice", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "acknowledged", Value: true}, {Key: "n", Value: 1}})

		assert.NoError(mt, repo.Delete(ctx, primitive.NewObjectID().Hex()))
	})

	mt.Run("Delete unknown invoice", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "acknowledged", Value: true}, {Key: "n", Value: 0}})

		assert.ErrorIs(mt, repo.Delete(ctx, primitive.NewObjectID().Hex()), ErrInvoiceNotFound)
	})

	mt.Run("Delete malformed id", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)

		assert.ErrorIs(mt, repo.Delete(ctx, "666"), ErrInvoiceNotFound)
	})

	mt.Run("Summary aggregates converted amounts", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: nil}, {Key: "total", Value: 360.0}, {Key: "count", Value: int32(2)}},
		))

		summary, err := repo.Summary(ctx)

		require.NoError(mt, err)
		assert.Equal(mt, 360.0, summary.TotalUSD)
		assert.Equal(mt, int64(2), summary.Count)
	})

	mt.Run("Summary of empty collection", func(mt *mtest.T) {
		repo := newInvoiceRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch))

		summary, err := repo.Summary(ctx)

		require.NoError(mt, err)
		assert.Zero(mt, summary.TotalUSD)
		assert.Zero(mt, summary.Count)
	})
}
