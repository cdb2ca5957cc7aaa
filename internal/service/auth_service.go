package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jardinero/garden-backend/internal/model"
	"github.com/jardinero/garden-backend/internal/repository"
)

// New accounts start with some money and a few seeds of the cheapest crop so
// there is something to do before the first purchase.
var startingMoney = decimal.RequireFromString("100.00")

const starterSeedQty = 3

type AuthService interface {
	// Register creates the account, its fixed plot grid and the starter
	// inventory in one transaction.
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
}

type authService struct {
	tx    TxRunner
	users repository.UserRepository
	plots repository.PlotRepository
	inv   repository.InventoryRepository
	crops repository.CropTypeRepository
}

func NewAuthService(
	tx TxRunner,
	users repository.UserRepository,
	plots repository.PlotRepository,
	inv repository.InventoryRepository,
	crops repository.CropTypeRepository,
) AuthService {
	return &authService{tx: tx, users: users, plots: plots, inv: inv, crops: crops}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if username == "" || email == "" || len(password) < 6 {
		return nil, ErrInvalidCredentials
	}
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Money:        startingMoney,
		Experience:   0,
		Level:        1,
	}
	err = s.tx.Run(ctx, func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		if err := s.plots.WithTx(tx).CreateForUser(ctx, user.ID); err != nil {
			return err
		}
		catalog, err := s.crops.WithTx(tx).List(ctx)
		if err != nil {
			return err
		}
		if len(catalog) == 0 {
			// Catalog not seeded yet; the account still works, it
			// just starts without seeds.
			return nil
		}
		return s.inv.WithTx(tx).AddSeeds(ctx, user.ID, catalog[0].ID, starterSeedQty)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
