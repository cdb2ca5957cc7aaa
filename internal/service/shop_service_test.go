package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jardinero/garden-backend/internal/model"
)

func TestBuySeed(t *testing.T) {
	ctx := context.Background()

	t.Run("deducts price times qty and adds seeds", func(t *testing.T) {
		f := newFixture(t)

		receipt, err := f.shop.BuySeed(ctx, f.userID, lettuceID, 4)
		require.NoError(t, err)
		assert.True(t, receipt.TotalCost.Equal(dec("20.00")), "total=%s", receipt.TotalCost)
		assert.True(t, receipt.NewBalance.Equal(dec("80.00")), "balance=%s", receipt.NewBalance)
		assert.Equal(t, uint(4), f.store.seeds[invKey{f.userID, lettuceID}])
		assert.True(t, f.user(t).Money.Equal(dec("80.00")))

		require.Len(t, f.store.records, 1)
		rec := f.store.records[0]
		assert.Equal(t, model.TransactionBuySeed, rec.Type)
		assert.Equal(t, uint(4), rec.Quantity)
		assert.True(t, rec.UnitPrice.Equal(dec("5.00")))
		assert.True(t, rec.TotalAmount.Equal(dec("20.00")))
	})

	t.Run("insufficient funds leaves the balance untouched", func(t *testing.T) {
		f := newFixture(t)
		f.user(t).Money = dec("10.00")

		_, err := f.shop.BuySeed(ctx, f.userID, tomatoID, 2) // costs 24.00
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.True(t, f.user(t).Money.Equal(dec("10.00")))
		assert.Zero(t, f.store.seeds[invKey{f.userID, tomatoID}])
		assert.Empty(t, f.store.records)
	})

	t.Run("all or nothing when the log append fails", func(t *testing.T) {
		f := newFixture(t)
		f.store.failAppend = true

		_, err := f.shop.BuySeed(ctx, f.userID, lettuceID, 2)
		require.Error(t, err)
		assert.True(t, f.user(t).Money.Equal(dec("100.00")))
		assert.Zero(t, f.store.seeds[invKey{f.userID, lettuceID}])
		assert.Empty(t, f.store.records)
	})

	t.Run("no repeated-purchase drift", func(t *testing.T) {
		f := newFixture(t)
		for i := 0; i < 10; i++ {
			_, err := f.shop.BuySeed(ctx, f.userID, lettuceID, 1)
			require.NoError(t, err)
		}
		// 10 x 5.00 exactly, no floating point residue
		assert.True(t, f.user(t).Money.Equal(dec("50.00")), "balance=%s", f.user(t).Money)
	})

	t.Run("invalid quantity", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.shop.BuySeed(ctx, f.userID, lettuceID, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("unknown crop type", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.shop.BuySeed(ctx, f.userID, 999, 1)
		assert.ErrorIs(t, err, ErrUnknownCropType)
	})
}

func TestSellSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("credits sell price and removes seeds", func(t *testing.T) {
		f := newFixture(t)
		f.giveSeeds(lettuceID, 5)

		receipt, err := f.shop.SellSeed(ctx, f.userID, lettuceID, 3)
		require.NoError(t, err)
		assert.True(t, receipt.TotalEarnings.Equal(dec("7.50")))
		assert.True(t, receipt.NewBalance.Equal(dec("107.50")))
		assert.Equal(t, uint(2), f.store.seeds[invKey{f.userID, lettuceID}])

		require.Len(t, f.store.records, 1)
		assert.Equal(t, model.TransactionSellSeed, f.store.records[0].Type)
	})

	t.Run("oversell fails and changes nothing", func(t *testing.T) {
		f := newFixture(t)
		f.giveSeeds(lettuceID, 2)

		_, err := f.shop.SellSeed(ctx, f.userID, lettuceID, 3)
		assert.ErrorIs(t, err, ErrInsufficientQuantity)
		assert.Equal(t, uint(2), f.store.seeds[invKey{f.userID, lettuceID}])
		assert.True(t, f.user(t).Money.Equal(dec("100.00")))
		assert.Empty(t, f.store.records)
	})

	t.Run("selling with no inventory entry", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.shop.SellSeed(ctx, f.userID, lettuceID, 1)
		assert.ErrorIs(t, err, ErrInsufficientQuantity)
	})
}

func TestSellFruit(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the fruit sell price", func(t *testing.T) {
		f := newFixture(t)
		f.store.fruit[invKey{f.userID, tomatoID}] = 2

		receipt, err := f.shop.SellFruit(ctx, f.userID, tomatoID, 2)
		require.NoError(t, err)
		assert.True(t, receipt.TotalEarnings.Equal(dec("40.00")))
		assert.Zero(t, f.store.fruit[invKey{f.userID, tomatoID}])

		require.Len(t, f.store.records, 1)
		rec := f.store.records[0]
		assert.Equal(t, model.TransactionSellFruit, rec.Type)
		assert.True(t, rec.UnitPrice.Equal(dec("20.00")))
	})

	t.Run("oversell fails and changes nothing", func(t *testing.T) {
		f := newFixture(t)
		f.store.fruit[invKey{f.userID, lettuceID}] = 1

		_, err := f.shop.SellFruit(ctx, f.userID, lettuceID, 5)
		assert.ErrorIs(t, err, ErrInsufficientQuantity)
		assert.Equal(t, uint(1), f.store.fruit[invKey{f.userID, lettuceID}])
		assert.True(t, f.user(t).Money.Equal(dec("100.00")))
	})

	t.Run("invalid quantity", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.shop.SellFruit(ctx, f.userID, lettuceID, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestListSeeds(t *testing.T) {
	f := newFixture(t)
	crops, err := f.shop.ListSeeds(context.Background())
	require.NoError(t, err)
	require.Len(t, crops, 2)
	// catalog comes back ordered by buy price
	assert.Equal(t, "Lettuce", crops[0].Name)
	assert.Equal(t, "Tomato", crops[1].Name)
}
