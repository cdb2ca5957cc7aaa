package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jardinero/garden-backend/internal/model"
	"github.com/jardinero/garden-backend/internal/repository"
)

// memStore backs the mock repositories. The mock TxRunner snapshots it before
// running an operation and restores it on error, mirroring what a database
// rollback does, so the all-or-nothing tests can assert pre-state.
type memStore struct {
	users   map[uint64]*model.User
	plots   []*model.Plot
	seeds   map[invKey]uint
	fruit   map[invKey]uint
	records []model.TransactionRecord

	nextID     uint64
	failAppend bool
}

type invKey struct {
	userID uint64
	cropID uint64
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[uint64]*model.User),
		seeds: make(map[invKey]uint),
		fruit: make(map[invKey]uint),
	}
}

func (s *memStore) id() uint64 {
	s.nextID++
	return s.nextID
}

type storeSnapshot struct {
	users   map[uint64]*model.User
	plots   []*model.Plot
	seeds   map[invKey]uint
	fruit   map[invKey]uint
	records []model.TransactionRecord
}

func (s *memStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		users: make(map[uint64]*model.User, len(s.users)),
		seeds: make(map[invKey]uint, len(s.seeds)),
		fruit: make(map[invKey]uint, len(s.fruit)),
	}
	for id, u := range s.users {
		cp := *u
		snap.users[id] = &cp
	}
	for _, p := range s.plots {
		cp := *p
		snap.plots = append(snap.plots, &cp)
	}
	for k, v := range s.seeds {
		snap.seeds[k] = v
	}
	for k, v := range s.fruit {
		snap.fruit[k] = v
	}
	snap.records = append(snap.records, s.records...)
	return snap
}

func (s *memStore) restore(snap storeSnapshot) {
	s.users = snap.users
	s.plots = snap.plots
	s.seeds = snap.seeds
	s.fruit = snap.fruit
	s.records = snap.records
}

type mockTx struct {
	store *memStore
}

func (m *mockTx) Run(ctx context.Context, fn func(tx *gorm.DB) error) error {
	snap := m.store.snapshot()
	if err := fn(nil); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type mockUserRepo struct {
	store *memStore
}

func (m *mockUserRepo) WithTx(tx *gorm.DB) repository.UserRepository { return m }

func (m *mockUserRepo) Create(ctx context.Context, u *model.User) error {
	u.ID = m.store.id()
	cp := *u
	m.store.users[u.ID] = &cp
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	u, ok := m.store.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) FindByIDForUpdate(ctx context.Context, id uint64) (*model.User, error) {
	return m.FindByID(ctx, id)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range m.store.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	for _, u := range m.store.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) CreditMoney(ctx context.Context, userID uint64, amount decimal.Decimal) error {
	u, ok := m.store.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Money = u.Money.Add(amount)
	return nil
}

func (m *mockUserRepo) DebitMoney(ctx context.Context, userID uint64, amount decimal.Decimal) error {
	u, ok := m.store.users[userID]
	if !ok || u.Money.LessThan(amount) {
		return gorm.ErrRecordNotFound
	}
	u.Money = u.Money.Sub(amount)
	return nil
}

func (m *mockUserRepo) SetExperience(ctx context.Context, userID uint64, experience, level uint) error {
	u, ok := m.store.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Experience = experience
	u.Level = level
	return nil
}

type mockPlotRepo struct {
	store *memStore
}

func (m *mockPlotRepo) WithTx(tx *gorm.DB) repository.PlotRepository { return m }

func (m *mockPlotRepo) CreateForUser(ctx context.Context, userID uint64) error {
	for pos := uint8(0); pos < model.PlotCount; pos++ {
		m.store.plots = append(m.store.plots, &model.Plot{
			ID:       m.store.id(),
			UserID:   userID,
			Position: pos,
		})
	}
	return nil
}

func (m *mockPlotRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Plot, error) {
	var list []model.Plot
	for _, p := range m.store.plots {
		if p.UserID == userID {
			list = append(list, *p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	return list, nil
}

func (m *mockPlotRepo) ListGrowing(ctx context.Context, userID uint64) ([]model.Plot, error) {
	var list []model.Plot
	for _, p := range m.store.plots {
		if p.UserID == userID && p.CropTypeID != nil && p.PlantedAt != nil && !p.IsReady {
			list = append(list, *p)
		}
	}
	return list, nil
}

func (m *mockPlotRepo) find(userID uint64, position uint8) *model.Plot {
	for _, p := range m.store.plots {
		if p.UserID == userID && p.Position == position {
			return p
		}
	}
	return nil
}

func (m *mockPlotRepo) Find(ctx context.Context, userID uint64, position uint8) (*model.Plot, error) {
	p := m.find(userID, position)
	if p == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockPlotRepo) FindForUpdate(ctx context.Context, userID uint64, position uint8) (*model.Plot, error) {
	return m.Find(ctx, userID, position)
}

func (m *mockPlotRepo) Plant(ctx context.Context, userID uint64, position uint8, cropTypeID uint64, plantedAt time.Time) (int64, error) {
	p := m.find(userID, position)
	if p == nil || p.CropTypeID != nil {
		return 0, nil
	}
	at := plantedAt
	p.CropTypeID = &cropTypeID
	p.PlantedAt = &at
	p.IsReady = false
	return 1, nil
}

func (m *mockPlotRepo) Clear(ctx context.Context, userID uint64, position uint8) error {
	p := m.find(userID, position)
	if p == nil {
		return gorm.ErrRecordNotFound
	}
	p.CropTypeID = nil
	p.PlantedAt = nil
	p.IsReady = false
	return nil
}

func (m *mockPlotRepo) MarkReady(ctx context.Context, userID uint64, plotIDs []uint64) (int64, error) {
	ids := make(map[uint64]bool, len(plotIDs))
	for _, id := range plotIDs {
		ids[id] = true
	}
	var flipped int64
	for _, p := range m.store.plots {
		if p.UserID == userID && ids[p.ID] && p.CropTypeID != nil && !p.IsReady {
			p.IsReady = true
			flipped++
		}
	}
	return flipped, nil
}

type mockInventoryRepo struct {
	store *memStore
}

func (m *mockInventoryRepo) WithTx(tx *gorm.DB) repository.InventoryRepository { return m }

func (m *mockInventoryRepo) AddSeeds(ctx context.Context, userID, cropTypeID uint64, qty uint) error {
	m.store.seeds[invKey{userID, cropTypeID}] += qty
	return nil
}

func (m *mockInventoryRepo) RemoveSeeds(ctx context.Context, userID, cropTypeID uint64, qty uint) error {
	key := invKey{userID, cropTypeID}
	if m.store.seeds[key] < qty {
		return gorm.ErrRecordNotFound
	}
	m.store.seeds[key] -= qty
	return nil
}

func (m *mockInventoryRepo) AddFruit(ctx context.Context, userID, cropTypeID uint64, qty uint) error {
	m.store.fruit[invKey{userID, cropTypeID}] += qty
	return nil
}

func (m *mockInventoryRepo) RemoveFruit(ctx context.Context, userID, cropTypeID uint64, qty uint) error {
	key := invKey{userID, cropTypeID}
	if m.store.fruit[key] < qty {
		return gorm.ErrRecordNotFound
	}
	m.store.fruit[key] -= qty
	return nil
}

func (m *mockInventoryRepo) ListSeeds(ctx context.Context, userID uint64) ([]model.SeedInventory, error) {
	var list []model.SeedInventory
	for k, v := range m.store.seeds {
		if k.userID == userID {
			list = append(list, model.SeedInventory{UserID: k.userID, CropTypeID: k.cropID, Quantity: v})
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CropTypeID < list[j].CropTypeID })
	return list, nil
}

func (m *mockInventoryRepo) ListFruit(ctx context.Context, userID uint64) ([]model.FruitInventory, error) {
	var list []model.FruitInventory
	for k, v := range m.store.fruit {
		if k.userID == userID {
			list = append(list, model.FruitInventory{UserID: k.userID, CropTypeID: k.cropID, Quantity: v})
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CropTypeID < list[j].CropTypeID })
	return list, nil
}

type mockCropRepo struct {
	crops []model.CropType
}

func (m *mockCropRepo) WithTx(tx *gorm.DB) repository.CropTypeRepository { return m }

func (m *mockCropRepo) FindByID(ctx context.Context, id uint64) (*model.CropType, error) {
	for _, ct := range m.crops {
		if ct.ID == id {
			cp := ct
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCropRepo) List(ctx context.Context) ([]model.CropType, error) {
	list := append([]model.CropType(nil), m.crops...)
	sort.Slice(list, func(i, j int) bool { return list[i].BuyPrice.LessThan(list[j].BuyPrice) })
	return list, nil
}

type mockTransactionRepo struct {
	store *memStore
}

var errAppendFailed = errors.New("append failed")

func (m *mockTransactionRepo) WithTx(tx *gorm.DB) repository.TransactionRepository { return m }

func (m *mockTransactionRepo) Append(ctx context.Context, rec *model.TransactionRecord) error {
	if m.store.failAppend {
		return errAppendFailed
	}
	rec.ID = m.store.id()
	m.store.records = append(m.store.records, *rec)
	return nil
}

func (m *mockTransactionRepo) ListByUser(ctx context.Context, userID uint64, limit int) ([]model.TransactionRecord, error) {
	var list []model.TransactionRecord
	for i := len(m.store.records) - 1; i >= 0; i-- {
		if m.store.records[i].UserID == userID {
			list = append(list, m.store.records[i])
		}
		if limit > 0 && len(list) == limit {
			break
		}
	}
	return list, nil
}
