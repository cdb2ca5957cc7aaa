package model

import "time"

// SeedInventory holds per-user seed counts keyed by crop type. Rows are
// created on first acquisition and kept at zero rather than deleted, so a
// missing row and a zero row mean the same thing.
type SeedInventory struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	UserID     uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_seed_inventory,priority:1"`
	CropTypeID uint64    `gorm:"column:crop_type_id;not null;uniqueIndex:uk_seed_inventory,priority:2"`
	Quantity   uint      `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (SeedInventory) TableName() string {
	return "seed_inventory"
}

type FruitInventory struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	UserID     uint64    `gorm:"column:user_id;not null;uniqueIndex:uk_fruit_inventory,priority:1"`
	CropTypeID uint64    `gorm:"column:crop_type_id;not null;uniqueIndex:uk_fruit_inventory,priority:2"`
	Quantity   uint      `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (FruitInventory) TableName() string {
	return "fruit_inventory"
}
