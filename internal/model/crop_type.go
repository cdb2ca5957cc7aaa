package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CropType is catalog reference data: it is seeded once (cmd/seed) and never
// mutated by game operations.
type CropType struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement"`
	Name            string          `gorm:"size:64;not null;uniqueIndex:uk_crop_types_name"`
	GrowthTimeHours float64         `gorm:"not null"`
	BuyPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SellPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FruitSellPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Emoji           string          `gorm:"size:16;not null"`
	Color           string          `gorm:"size:16;not null"`
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
}

func (CropType) TableName() string {
	return "crop_types"
}
