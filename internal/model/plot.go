package model

import "time"

// PlotCount is the fixed number of growing slots per user (a 2x4 grid).
const PlotCount = 8

// Plot is one growing slot. The 8 rows per user are created at registration
// and only ever mutated afterwards. An empty slot has a nil CropTypeID and a
// nil PlantedAt; IsReady is a cached flag and is only trustworthy after an
// update-plants pass, never recomputed on read.
type Plot struct {
	ID         uint64     `gorm:"primaryKey;autoIncrement"`
	UserID     uint64     `gorm:"column:user_id;not null;uniqueIndex:uk_plots_user_position,priority:1"`
	Position   uint8      `gorm:"column:plot_position;not null;uniqueIndex:uk_plots_user_position,priority:2"`
	CropTypeID *uint64    `gorm:"column:crop_type_id"`
	PlantedAt  *time.Time `gorm:"column:planted_at"`
	IsReady    bool       `gorm:"column:is_ready;not null;default:false"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
}

func (Plot) TableName() string {
	return "plots"
}

func (p *Plot) Occupied() bool {
	return p.CropTypeID != nil
}
