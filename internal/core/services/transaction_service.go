package services

import (
	"context"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
)

var ErrTransactionNotFound = &domain.NotFoundError{Resource: "transaction"}

// TransactionService exposes the ledger read-only; entries are written only by postings
type TransactionService struct {
	store *repositories.Store
}

func NewTransactionService(store *repositories.Store) *TransactionService {
	return &TransactionService{store: store}
}

func (s *TransactionService) Get(ctx context.Context, id uint) (*models.Transaction, error) {
	tx, err := s.store.Transactions.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrTransactionNotFound)
	}
	return tx, nil
}

func (s *TransactionService) List(ctx context.Context, filter repositories.TransactionFilter, offset, limit int) ([]*models.Transaction, int64, error) {
	return s.store.Transactions.List(ctx, filter, offset, limit)
}
