// Seeds the crop catalog. Safe to re-run: it skips when crops already exist
// unless FORCE_SEED=true is set.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jardinero/garden-backend/internal/config"
	"github.com/jardinero/garden-backend/internal/db"
	"github.com/jardinero/garden-backend/internal/model"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	conn, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := conn.AutoMigrate(&model.CropType{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	force := strings.EqualFold(os.Getenv("FORCE_SEED"), "true")
	var count int64
	if err := conn.Model(&model.CropType{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count crop types: %w", err)
	}
	if count > 0 && !force {
		log.Printf("crop types already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	crops := buildCatalog()
	err = conn.Transaction(func(tx *gorm.DB) error {
		for i := range crops {
			if err := tx.Where("name = ?", crops[i].Name).
				FirstOrCreate(&crops[i]).Error; err != nil {
				return fmt.Errorf("seed crop %q: %w", crops[i].Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("seeded %d crop types", len(crops))
	return nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func buildCatalog() []model.CropType {
	return []model.CropType{
		{Name: "Lettuce", GrowthTimeHours: 1, BuyPrice: price("5.00"), SellPrice: price("2.50"), FruitSellPrice: price("8.00"), Emoji: "🥬", Color: "#8BC34A"},
		{Name: "Carrot", GrowthTimeHours: 2, BuyPrice: price("8.00"), SellPrice: price("4.00"), FruitSellPrice: price("13.00"), Emoji: "🥕", Color: "#FF9800"},
		{Name: "Tomato", GrowthTimeHours: 4, BuyPrice: price("12.00"), SellPrice: price("6.00"), FruitSellPrice: price("20.00"), Emoji: "🍅", Color: "#F44336"},
		{Name: "Corn", GrowthTimeHours: 8, BuyPrice: price("20.00"), SellPrice: price("10.00"), FruitSellPrice: price("35.00"), Emoji: "🌽", Color: "#FFEB3B"},
		{Name: "Strawberry", GrowthTimeHours: 12, BuyPrice: price("30.00"), SellPrice: price("15.00"), FruitSellPrice: price("55.00"), Emoji: "🍓", Color: "#E91E63"},
		{Name: "Watermelon", GrowthTimeHours: 24, BuyPrice: price("50.00"), SellPrice: price("25.00"), FruitSellPrice: price("95.00"), Emoji: "🍉", Color: "#4CAF50"},
	}
}
