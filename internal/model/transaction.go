package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionBuySeed   TransactionType = "buy_seed"
	TransactionSellSeed  TransactionType = "sell_seed"
	TransactionSellFruit TransactionType = "sell_fruit"
	TransactionPlant     TransactionType = "plant"
	TransactionHarvest   TransactionType = "harvest"
)

// TransactionRecord is append-only: the repository exposes no update or
// delete for it, and a record is written only when the whole operation
// commits.
type TransactionRecord struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement"`
	Reference   string          `gorm:"size:36;not null;uniqueIndex:uk_transactions_reference"`
	UserID      uint64          `gorm:"column:user_id;index;not null"`
	Type        TransactionType `gorm:"column:transaction_type;size:32;not null"`
	CropTypeID  uint64          `gorm:"column:crop_type_id;not null"`
	Quantity    uint            `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}

func (TransactionRecord) TableName() string {
	return "transactions"
}
