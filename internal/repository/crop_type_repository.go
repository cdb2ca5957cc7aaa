package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jardinero/garden-backend/internal/model"
)

type CropTypeRepository interface {
	FindByID(ctx context.Context, id uint64) (*model.CropType, error)
	List(ctx context.Context) ([]model.CropType, error)
	WithTx(tx *gorm.DB) CropTypeRepository
}

type cropTypeRepository struct {
	db *gorm.DB
}

func NewCropTypeRepository(db *gorm.DB) CropTypeRepository {
	return &cropTypeRepository{db: db}
}

func (r *cropTypeRepository) WithTx(tx *gorm.DB) CropTypeRepository {
	return &cropTypeRepository{db: tx}
}

func (r *cropTypeRepository) FindByID(ctx context.Context, id uint64) (*model.CropType, error) {
	var ct model.CropType
	if err := r.db.WithContext(ctx).First(&ct, id).Error; err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *cropTypeRepository) List(ctx context.Context) ([]model.CropType, error) {
	var list []model.CropType
	if err := r.db.WithContext(ctx).
		Order("buy_price ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
