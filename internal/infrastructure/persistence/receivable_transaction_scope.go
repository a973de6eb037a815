package persistence

import (
	"context"

	appreceivable "github.com/gestion/backend/internal/application/receivable"
	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/receivable"
	"gorm.io/gorm"
)

// GormReceivableTransactionScope implements the receivable transaction
// scope on GORM transactions. Manual note numbering locks the sequence
// row inside it.
type GormReceivableTransactionScope struct {
	db *gorm.DB
}

// NewGormReceivableTransactionScope creates a new GormReceivableTransactionScope
func NewGormReceivableTransactionScope(db *gorm.DB) *GormReceivableTransactionScope {
	return &GormReceivableTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. An error from fn rolls
// the transaction back.
func (s *GormReceivableTransactionScope) Execute(ctx context.Context, fn func(repos appreceivable.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormReceivableRepositories{tx: tx})
	})
}

type gormReceivableRepositories struct {
	tx *gorm.DB
}

// Documents returns the receivable document repository bound to the transaction
func (r *gormReceivableRepositories) Documents() receivable.DocumentRepository {
	return NewGormDocumentRepository(r.tx)
}

// Sequences returns the document sequence repository bound to the transaction
func (r *gormReceivableRepositories) Sequences() billing.DocumentSequenceRepository {
	return NewGormDocumentSequenceRepository(r.tx)
}

var _ appreceivable.TransactionScope = (*GormReceivableTransactionScope)(nil)
var _ appreceivable.TransactionalRepositories = (*gormReceivableRepositories)(nil)
