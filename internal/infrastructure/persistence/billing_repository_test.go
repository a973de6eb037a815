package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/shared"
	"github.com/gestion/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newMockSequenceRepository(t *testing.T) (*GormDocumentSequenceRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormDocumentSequenceRepository(gormDB), mock, mockDB
}

func TestGormDocumentSequenceRepository_FindByKind(t *testing.T) {
	t.Run("finds sequence by kind", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		sequenceID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "kind", "prefix", "next_number", "padding"}).
			AddRow(sequenceID, 1, "invoice", "FAC", 42, 6)

		mock.ExpectQuery(`SELECT \* FROM "document_sequences" WHERE kind = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(billing.DocumentKindInvoice, 1).
			WillReturnRows(rows)

		sequence, err := repo.FindByKind(context.Background(), billing.DocumentKindInvoice)

		assert.NoError(t, err)
		assert.NotNil(t, sequence)
		assert.Equal(t, "FAC", sequence.Prefix)
		assert.Equal(t, int64(42), sequence.NextNumber)
		assert.Equal(t, "FAC-000042", sequence.Peek())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for missing sequence", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "document_sequences" WHERE kind = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(billing.DocumentKindReceipt, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		sequence, err := repo.FindByKind(context.Background(), billing.DocumentKindReceipt)

		assert.Error(t, err)
		assert.Nil(t, sequence)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormDocumentSequenceRepository_FindForUpdate(t *testing.T) {
	t.Run("locks the sequence row", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		sequenceID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "kind", "prefix", "next_number", "padding"}).
			AddRow(sequenceID, 3, "credit_note", "NC", 7, 6)

		mock.ExpectQuery(`SELECT \* FROM "document_sequences" WHERE kind = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
			WithArgs(billing.DocumentKindCreditNote, 1).
			WillReturnRows(rows)

		sequence, err := repo.FindForUpdate(context.Background(), billing.DocumentKindCreditNote)

		assert.NoError(t, err)
		assert.NotNil(t, sequence)
		assert.Equal(t, "NC-000007", sequence.AllocateNext())
		assert.Equal(t, int64(8), sequence.NextNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func newMockPaymentTermRepository(t *testing.T) (*GormPaymentTermRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormPaymentTermRepository(gormDB), mock, mockDB
}

func TestGormPaymentTermRepository_FindByCode(t *testing.T) {
	t.Run("finds term by code", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentTermRepository(t)
		defer mockDB.Close()

		termID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "code", "name", "days", "active"}).
			AddRow(termID, 1, "CONTADO", "Contado", 0, true)

		mock.ExpectQuery(`SELECT \* FROM "payment_terms" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("CONTADO", 1).
			WillReturnRows(rows)

		term, err := repo.FindByCode(context.Background(), "contado")

		assert.NoError(t, err)
		assert.NotNil(t, term)
		assert.Equal(t, "CONTADO", term.Code)
		assert.Equal(t, 0, term.Days)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func newMockExchangeRateRepository(t *testing.T) (*GormExchangeRateRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormExchangeRateRepository(gormDB), mock, mockDB
}

func TestGormExchangeRateRepository_FindLatest(t *testing.T) {
	t.Run("finds newest rate for currency", func(t *testing.T) {
		repo, mock, mockDB := newMockExchangeRateRepository(t)
		defer mockDB.Close()

		rateID := uuid.New()
		effective := time.Now().Add(-time.Hour)

		rows := sqlmock.NewRows([]string{"id", "currency", "rate", "effective_at", "source"}).
			AddRow(rateID, "USD", decimal.NewFromFloat(36.5), effective, "manual")

		mock.ExpectQuery(`SELECT \* FROM "exchange_rates" WHERE currency = \$1 ORDER BY effective_at DESC,.* LIMIT .*`).
			WithArgs("USD", 1).
			WillReturnRows(rows)

		rate, err := repo.FindLatest(context.Background(), valueobject.USD)

		assert.NoError(t, err)
		assert.NotNil(t, rate)
		assert.Equal(t, valueobject.USD, rate.Currency)
		assert.True(t, rate.Rate.Equal(decimal.NewFromFloat(36.5)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error when no rate exists", func(t *testing.T) {
		repo, mock, mockDB := newMockExchangeRateRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "exchange_rates" WHERE currency = \$1 ORDER BY effective_at DESC,.* LIMIT .*`).
			WithArgs("EUR", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		rate, err := repo.FindLatest(context.Background(), valueobject.EUR)

		assert.Error(t, err)
		assert.Nil(t, rate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
