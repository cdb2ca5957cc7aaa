package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jardinero/garden-backend/internal/model"
)

// InventoryRepository is the seed/fruit ledger. Additions upsert the
// (user, crop type) row; removals are guarded so a quantity can never go
// negative. A removal whose guard does not match reports
// gorm.ErrRecordNotFound, which the service layer maps to the domain error.
type InventoryRepository interface {
	AddSeeds(ctx context.Context, userID, cropTypeID uint64, qty uint) error
	RemoveSeeds(ctx context.Context, userID, cropTypeID uint64, qty uint) error
	AddFruit(ctx context.Context, userID, cropTypeID uint64, qty uint) error
	RemoveFruit(ctx context.Context, userID, cropTypeID uint64, qty uint) error
	ListSeeds(ctx context.Context, userID uint64) ([]model.SeedInventory, error)
	ListFruit(ctx context.Context, userID uint64) ([]model.FruitInventory, error)
	WithTx(tx *gorm.DB) InventoryRepository
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) WithTx(tx *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: tx}
}

var upsertQuantity = clause.OnConflict{
	Columns:   []clause.Column{{Name: "user_id"}, {Name: "crop_type_id"}},
	DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("quantity + VALUES(quantity)")}),
}

func (r *inventoryRepository) AddSeeds(ctx context.Context, userID, cropTypeID uint64, qty uint) error {
	entry := model.SeedInventory{UserID: userID, CropTypeID: cropTypeID, Quantity: qty}
	return r.db.WithContext(ctx).Clauses(upsertQuantity).Create(&entry).Error
}

func (r *inventoryRepository) RemoveSeeds(ctx context.Context, userID, cropTypeID uint64, qty uint) error {
	res := r.db.WithContext(ctx).
		Model(&model.SeedInventory{}).
		Where("user_id = ? AND crop_type_id = ? AND quantity >= ?", userID, cropTypeID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *inventoryRepository) AddFruit(ctx context.Context, userID, cropTypeID uint64, qty uint) error {
	entry := model.FruitInventory{UserID: userID, CropTypeID: cropTypeID, Quantity: qty}
	return r.db.WithContext(ctx).Clauses(upsertQuantity).Create(&entry).Error
}

func (r *inventoryRepository) RemoveFruit(ctx context.Context, userID, cropTypeID uint64, qty uint) error {
	res := r.db.WithContext(ctx).
		Model(&model.FruitInventory{}).
		Where("user_id = ? AND crop_type_id = ? AND quantity >= ?", userID, cropTypeID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *inventoryRepository) ListSeeds(ctx context.Context, userID uint64) ([]model.SeedInventory, error) {
	var list []model.SeedInventory
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("crop_type_id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *inventoryRepository) ListFruit(ctx context.Context, userID uint64) ([]model.FruitInventory, error) {
	var list []model.FruitInventory
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("crop_type_id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
