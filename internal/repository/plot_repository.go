package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jardinero/garden-backend/internal/model"
)

type PlotRepository interface {
	// CreateForUser inserts the fixed set of empty slots for a new account.
	CreateForUser(ctx context.Context, userID uint64) error
	ListByUser(ctx context.Context, userID uint64) ([]model.Plot, error)
	// ListGrowing returns occupied plots whose cached readiness flag is
	// still false.
	ListGrowing(ctx context.Context, userID uint64) ([]model.Plot, error)
	Find(ctx context.Context, userID uint64, position uint8) (*model.Plot, error)
	// FindForUpdate locks the slot row for the rest of the transaction.
	FindForUpdate(ctx context.Context, userID uint64, position uint8) (*model.Plot, error)
	// Plant occupies the slot only if it is currently empty and reports
	// how many rows matched, so the caller can tell a lost race from a
	// missing slot.
	Plant(ctx context.Context, userID uint64, position uint8, cropTypeID uint64, plantedAt time.Time) (int64, error)
	Clear(ctx context.Context, userID uint64, position uint8) error
	// MarkReady flips the cached readiness flag on the given plots. The
	// guard keeps it idempotent and makes it skip plots harvested in the
	// meantime; the returned count is the number of rows actually flipped.
	MarkReady(ctx context.Context, userID uint64, plotIDs []uint64) (int64, error)
	WithTx(tx *gorm.DB) PlotRepository
}

type plotRepository struct {
	db *gorm.DB
}

func NewPlotRepository(db *gorm.DB) PlotRepository {
	return &plotRepository{db: db}
}

func (r *plotRepository) WithTx(tx *gorm.DB) PlotRepository {
	return &plotRepository{db: tx}
}

func (r *plotRepository) CreateForUser(ctx context.Context, userID uint64) error {
	plots := make([]model.Plot, 0, model.PlotCount)
	for pos := uint8(0); pos < model.PlotCount; pos++ {
		plots = append(plots, model.Plot{UserID: userID, Position: pos})
	}
	return r.db.WithContext(ctx).Create(&plots).Error
}

func (r *plotRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Plot, error) {
	var list []model.Plot
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("plot_position ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *plotRepository) ListGrowing(ctx context.Context, userID uint64) ([]model.Plot, error) {
	var list []model.Plot
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND crop_type_id IS NOT NULL AND planted_at IS NOT NULL AND is_ready = ?", userID, false).
		Order("plot_position ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *plotRepository) Find(ctx context.Context, userID uint64, position uint8) (*model.Plot, error) {
	var p model.Plot
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND plot_position = ?", userID, position).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *plotRepository) FindForUpdate(ctx context.Context, userID uint64, position uint8) (*model.Plot, error) {
	var p model.Plot
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND plot_position = ?", userID, position).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *plotRepository) Plant(ctx context.Context, userID uint64, position uint8, cropTypeID uint64, plantedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Plot{}).
		Where("user_id = ? AND plot_position = ? AND crop_type_id IS NULL", userID, position).
		Updates(map[string]interface{}{
			"crop_type_id": cropTypeID,
			"planted_at":   plantedAt,
			"is_ready":     false,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *plotRepository) Clear(ctx context.Context, userID uint64, position uint8) error {
	return r.db.WithContext(ctx).
		Model(&model.Plot{}).
		Where("user_id = ? AND plot_position = ?", userID, position).
		Updates(map[string]interface{}{
			"crop_type_id": nil,
			"planted_at":   nil,
			"is_ready":     false,
		}).Error
}

func (r *plotRepository) MarkReady(ctx context.Context, userID uint64, plotIDs []uint64) (int64, error) {
	if len(plotIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&model.Plot{}).
		Where("user_id = ? AND id IN ? AND crop_type_id IS NOT NULL AND is_ready = ?", userID, plotIDs, false).
		Update("is_ready", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
