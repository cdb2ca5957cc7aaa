package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement"`
	Username     string          `gorm:"size:64;not null;uniqueIndex:uk_users_username"`
	Email        string          `gorm:"size:255;not null;uniqueIndex:uk_users_email"`
	PasswordHash string          `gorm:"size:128;not null"`
	Money        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Experience   uint            `gorm:"not null;default:0"`
	Level        uint            `gorm:"not null;default:1"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
