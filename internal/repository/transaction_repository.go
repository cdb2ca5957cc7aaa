package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jardinero/garden-backend/internal/model"
)

// TransactionRepository only appends. There is deliberately no update or
// delete: the log is the audit trail for every committed operation.
type TransactionRepository interface {
	Append(ctx context.Context, rec *model.TransactionRecord) error
	ListByUser(ctx context.Context, userID uint64, limit int) ([]model.TransactionRecord, error)
	WithTx(tx *gorm.DB) TransactionRepository
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) WithTx(tx *gorm.DB) TransactionRepository {
	return &transactionRepository{db: tx}
}

func (r *transactionRepository) Append(ctx context.Context, rec *model.TransactionRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uint64, limit int) ([]model.TransactionRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var list []model.TransactionRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
