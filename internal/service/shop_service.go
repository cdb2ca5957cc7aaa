package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jardinero/garden-backend/internal/model"
	"github.com/jardinero/garden-backend/internal/repository"
)

type PurchaseReceipt struct {
	TotalCost  decimal.Decimal
	NewBalance decimal.Decimal
}

type SaleReceipt struct {
	TotalEarnings decimal.Decimal
	NewBalance    decimal.Decimal
}

type ShopService interface {
	ListSeeds(ctx context.Context) ([]model.CropType, error)
	BuySeed(ctx context.Context, userID, cropTypeID uint64, qty uint) (*PurchaseReceipt, error)
	SellSeed(ctx context.Context, userID, cropTypeID uint64, qty uint) (*SaleReceipt, error)
	SellFruit(ctx context.Context, userID, cropTypeID uint64, qty uint) (*SaleReceipt, error)
}

type shopService struct {
	tx    TxRunner
	users repository.UserRepository
	inv   repository.InventoryRepository
	crops repository.CropTypeRepository
	txlog repository.TransactionRepository
}

func NewShopService(
	tx TxRunner,
	users repository.UserRepository,
	inv repository.InventoryRepository,
	crops repository.CropTypeRepository,
	txlog repository.TransactionRepository,
) ShopService {
	return &shopService{tx: tx, users: users, inv: inv, crops: crops, txlog: txlog}
}

func (s *shopService) ListSeeds(ctx context.Context) ([]model.CropType, error) {
	return s.crops.List(ctx)
}

func (s *shopService) lookupCrop(ctx context.Context, cropTypeID uint64) (*model.CropType, error) {
	crop, err := s.crops.FindByID(ctx, cropTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCropType
		}
		return nil, err
	}
	return crop, nil
}

func (s *shopService) BuySeed(ctx context.Context, userID, cropTypeID uint64, qty uint) (*PurchaseReceipt, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	crop, err := s.lookupCrop(ctx, cropTypeID)
	if err != nil {
		return nil, err
	}
	total := crop.BuyPrice.Mul(decimal.NewFromInt(int64(qty)))

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Money.LessThan(total) {
		return nil, ErrInsufficientFunds
	}

	var receipt *PurchaseReceipt
	err = s.tx.Run(ctx, func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)
		// The balance guard still applies inside the transaction; the
		// pre-check above only produces the error without opening one.
		if err := users.DebitMoney(ctx, userID, total); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInsufficientFunds
			}
			return err
		}
		if err := s.inv.WithTx(tx).AddSeeds(ctx, userID, cropTypeID, qty); err != nil {
			return err
		}
		if err := s.txlog.WithTx(tx).Append(ctx, &model.TransactionRecord{
			Reference:   uuid.NewString(),
			UserID:      userID,
			Type:        model.TransactionBuySeed,
			CropTypeID:  cropTypeID,
			Quantity:    qty,
			UnitPrice:   crop.BuyPrice,
			TotalAmount: total,
		}); err != nil {
			return err
		}
		fresh, err := users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		receipt = &PurchaseReceipt{TotalCost: total, NewBalance: fresh.Money}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *shopService) SellSeed(ctx context.Context, userID, cropTypeID uint64, qty uint) (*SaleReceipt, error) {
	crop, err := s.validateSale(ctx, cropTypeID, qty)
	if err != nil {
		return nil, err
	}
	return s.sell(ctx, userID, crop, qty, model.TransactionSellSeed, crop.SellPrice,
		func(tx *gorm.DB) error {
			return s.inv.WithTx(tx).RemoveSeeds(ctx, userID, cropTypeID, qty)
		})
}

func (s *shopService) SellFruit(ctx context.Context, userID, cropTypeID uint64, qty uint) (*SaleReceipt, error) {
	crop, err := s.validateSale(ctx, cropTypeID, qty)
	if err != nil {
		return nil, err
	}
	return s.sell(ctx, userID, crop, qty, model.TransactionSellFruit, crop.FruitSellPrice,
		func(tx *gorm.DB) error {
			return s.inv.WithTx(tx).RemoveFruit(ctx, userID, cropTypeID, qty)
		})
}

func (s *shopService) validateSale(ctx context.Context, cropTypeID uint64, qty uint) (*model.CropType, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}
	return s.lookupCrop(ctx, cropTypeID)
}

// sell removes inventory, credits the proceeds and appends the log entry as
// one unit. The removal carries the quantity guard, so an oversell rolls the
// whole thing back before any money moves.
func (s *shopService) sell(
	ctx context.Context,
	userID uint64,
	crop *model.CropType,
	qty uint,
	txType model.TransactionType,
	unitPrice decimal.Decimal,
	remove func(tx *gorm.DB) error,
) (*SaleReceipt, error) {
	total := unitPrice.Mul(decimal.NewFromInt(int64(qty)))

	var receipt *SaleReceipt
	err := s.tx.Run(ctx, func(tx *gorm.DB) error {
		if err := remove(tx); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInsufficientQuantity
			}
			return err
		}
		users := s.users.WithTx(tx)
		if err := users.CreditMoney(ctx, userID, total); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := s.txlog.WithTx(tx).Append(ctx, &model.TransactionRecord{
			Reference:   uuid.NewString(),
			UserID:      userID,
			Type:        txType,
			CropTypeID:  crop.ID,
			Quantity:    qty,
			UnitPrice:   unitPrice,
			TotalAmount: total,
		}); err != nil {
			return err
		}
		fresh, err := users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		receipt = &SaleReceipt{TotalEarnings: total, NewBalance: fresh.Money}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
