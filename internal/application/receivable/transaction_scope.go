package receivable

import (
	"context"

	"github.com/gestion/backend/internal/domain/billing"
	"github.com/gestion/backend/internal/domain/receivable"
)

// TransactionScope runs note creation and applications atomically: the
// sequence row and both sides of a credit application move in the same
// transaction.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories the note flow
// touches, bound to one transaction.
type TransactionalRepositories interface {
	Documents() receivable.DocumentRepository
	Sequences() billing.DocumentSequenceRepository
}

// NoOpTransactionScope runs the function against plain repositories with
// no transaction. Used in tests.
type NoOpTransactionScope struct {
	documentRepo receivable.DocumentRepository
	sequenceRepo billing.DocumentSequenceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	documentRepo receivable.DocumentRepository,
	sequenceRepo billing.DocumentSequenceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{documentRepo: documentRepo, sequenceRepo: sequenceRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Documents returns the receivable document repository
func (s *NoOpTransactionScope) Documents() receivable.DocumentRepository { return s.documentRepo }

// Sequences returns the document sequence repository
func (s *NoOpTransactionScope) Sequences() billing.DocumentSequenceRepository {
	return s.sequenceRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
