package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jardinero/garden-backend/internal/growth"
	"github.com/jardinero/garden-backend/internal/model"
	"github.com/jardinero/garden-backend/internal/repository"
)

// TxRunner runs a function as one database transaction. Satisfied by
// repository.TxManager; tests substitute their own.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// PlotState is one slot of the grid as reported to clients. Progress is
// recomputed from the planting time on every read, while IsReady is the
// cached flag; right after a crop finishes the two can disagree until an
// update-plants pass runs, which is expected.
type PlotState struct {
	Position  uint8
	Crop      *model.CropType
	PlantedAt *time.Time
	Progress  float64
	IsReady   bool
}

type InventoryLine struct {
	Crop     model.CropType
	Quantity uint
}

type GameState struct {
	User  *model.User
	Plots []PlotState
	Seeds []InventoryLine
	Fruit []InventoryLine
}

type GameService interface {
	GetState(ctx context.Context, userID uint64) (*GameState, error)
	Plant(ctx context.Context, userID uint64, position int, cropTypeID uint64) error
	Harvest(ctx context.Context, userID uint64, position int) (uint, error)
	// Refresh promotes grown-but-unflagged plots to ready and returns how
	// many it flipped.
	Refresh(ctx context.Context, userID uint64) (int64, error)
	History(ctx context.Context, userID uint64, limit int) ([]model.TransactionRecord, error)
}

type gameService struct {
	tx    TxRunner
	users repository.UserRepository
	plots repository.PlotRepository
	inv   repository.InventoryRepository
	crops repository.CropTypeRepository
	txlog repository.TransactionRepository
	rules Rules
	clock growth.Clock
}

func NewGameService(
	tx TxRunner,
	users repository.UserRepository,
	plots repository.PlotRepository,
	inv repository.InventoryRepository,
	crops repository.CropTypeRepository,
	txlog repository.TransactionRepository,
	rules Rules,
	clock growth.Clock,
) GameService {
	if clock == nil {
		clock = time.Now
	}
	return &gameService{
		tx:    tx,
		users: users,
		plots: plots,
		inv:   inv,
		crops: crops,
		txlog: txlog,
		rules: rules,
		clock: clock,
	}
}

func (s *gameService) GetState(ctx context.Context, userID uint64) (*GameState, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	catalog, err := s.cropCatalog(ctx)
	if err != nil {
		return nil, err
	}

	plots, err := s.plots.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	seeds, err := s.inv.ListSeeds(ctx, userID)
	if err != nil {
		return nil, err
	}
	fruit, err := s.inv.ListFruit(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	state := &GameState{
		User:  user,
		Plots: make([]PlotState, 0, len(plots)),
		Seeds: make([]InventoryLine, 0, len(seeds)),
		Fruit: make([]InventoryLine, 0, len(fruit)),
	}
	for _, p := range plots {
		ps := PlotState{Position: p.Position, IsReady: p.IsReady}
		if p.Occupied() {
			if crop, ok := catalog[*p.CropTypeID]; ok {
				ps.Crop = &crop
				ps.PlantedAt = p.PlantedAt
				if p.PlantedAt != nil {
					ps.Progress = growth.Progress(*p.PlantedAt, crop.GrowthTimeHours, now)
				}
			}
		}
		state.Plots = append(state.Plots, ps)
	}
	for _, entry := range seeds {
		if crop, ok := catalog[entry.CropTypeID]; ok {
			state.Seeds = append(state.Seeds, InventoryLine{Crop: crop, Quantity: entry.Quantity})
		}
	}
	for _, entry := range fruit {
		if crop, ok := catalog[entry.CropTypeID]; ok {
			state.Fruit = append(state.Fruit, InventoryLine{Crop: crop, Quantity: entry.Quantity})
		}
	}
	return state, nil
}

func (s *gameService) Plant(ctx context.Context, userID uint64, position int, cropTypeID uint64) error {
	if position < 0 || position >= model.PlotCount {
		return ErrInvalidPosition
	}
	if _, err := s.crops.FindByID(ctx, cropTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownCropType
		}
		return err
	}

	return s.tx.Run(ctx, func(tx *gorm.DB) error {
		if err := s.inv.WithTx(tx).RemoveSeeds(ctx, userID, cropTypeID, 1); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoSeedAvailable
			}
			return err
		}
		plots := s.plots.WithTx(tx)
		matched, err := plots.Plant(ctx, userID, uint8(position), cropTypeID, s.clock())
		if err != nil {
			return err
		}
		if matched == 0 {
			// The guard missed: either the slot holds a crop or the
			// row does not exist for this user.
			if _, ferr := plots.Find(ctx, userID, uint8(position)); errors.Is(ferr, gorm.ErrRecordNotFound) {
				return ErrInvalidPosition
			}
			return ErrPlotOccupied
		}
		return s.txlog.WithTx(tx).Append(ctx, &model.TransactionRecord{
			Reference:   uuid.NewString(),
			UserID:      userID,
			Type:        model.TransactionPlant,
			CropTypeID:  cropTypeID,
			Quantity:    1,
			UnitPrice:   decimal.Zero,
			TotalAmount: decimal.Zero,
		})
	})
}

func (s *gameService) Harvest(ctx context.Context, userID uint64, position int) (uint, error) {
	if position < 0 || position >= model.PlotCount {
		return 0, ErrInvalidPosition
	}

	var gained uint
	err := s.tx.Run(ctx, func(tx *gorm.DB) error {
		plots := s.plots.WithTx(tx)
		// Lock the slot so a concurrent harvest of the same plot waits
		// here and then sees it already cleared.
		plot, err := plots.FindForUpdate(ctx, userID, uint8(position))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlotEmpty
			}
			return err
		}
		if !plot.Occupied() {
			return ErrPlotEmpty
		}
		if !plot.IsReady {
			return ErrPlotNotReady
		}
		cropTypeID := *plot.CropTypeID

		if err := plots.Clear(ctx, userID, uint8(position)); err != nil {
			return err
		}
		inv := s.inv.WithTx(tx)
		if err := inv.AddSeeds(ctx, userID, cropTypeID, 2); err != nil {
			return err
		}
		if err := inv.AddFruit(ctx, userID, cropTypeID, 1); err != nil {
			return err
		}

		users := s.users.WithTx(tx)
		// Lock the user row too: two harvests on different plots must
		// not both read the same experience and lose a credit.
		user, err := users.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		newXP := user.Experience + s.rules.XPPerHarvest
		if err := users.SetExperience(ctx, userID, newXP, s.rules.LevelFor(newXP)); err != nil {
			return err
		}
		gained = s.rules.XPPerHarvest

		return s.txlog.WithTx(tx).Append(ctx, &model.TransactionRecord{
			Reference:   uuid.NewString(),
			UserID:      userID,
			Type:        model.TransactionHarvest,
			CropTypeID:  cropTypeID,
			Quantity:    1,
			UnitPrice:   decimal.Zero,
			TotalAmount: decimal.Zero,
		})
	})
	if err != nil {
		return 0, err
	}
	return gained, nil
}

func (s *gameService) Refresh(ctx context.Context, userID uint64) (int64, error) {
	growing, err := s.plots.ListGrowing(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(growing) == 0 {
		return 0, nil
	}
	catalog, err := s.cropCatalog(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock()
	var ready []uint64
	for _, p := range growing {
		crop, ok := catalog[*p.CropTypeID]
		if !ok || p.PlantedAt == nil {
			continue
		}
		if growth.IsReady(growth.Progress(*p.PlantedAt, crop.GrowthTimeHours, now)) {
			ready = append(ready, p.ID)
		}
	}
	// The guarded update skips plots harvested or cleared since the read,
	// so running this concurrently with itself or with Harvest is safe.
	return s.plots.MarkReady(ctx, userID, ready)
}

func (s *gameService) History(ctx context.Context, userID uint64, limit int) ([]model.TransactionRecord, error) {
	return s.txlog.ListByUser(ctx, userID, limit)
}

func (s *gameService) cropCatalog(ctx context.Context) (map[uint64]model.CropType, error) {
	list, err := s.crops.List(ctx)
	if err != nil {
		return nil, err
	}
	catalog := make(map[uint64]model.CropType, len(list))
	for _, ct := range list {
		catalog[ct.ID] = ct
	}
	return catalog, nil
}
