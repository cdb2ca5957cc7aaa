package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/jardinero/garden-backend/internal/config"
	"github.com/jardinero/garden-backend/internal/db"
	"github.com/jardinero/garden-backend/internal/model"
	"github.com/jardinero/garden-backend/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server stopped: %v", err)
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
	if err := conn.AutoMigrate(
		&model.User{},
		&model.CropType{},
		&model.Plot{},
		&model.SeedInventory{},
		&model.FruitInventory{},
		&model.TransactionRecord{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	srv := server.New(conn, cfg)
	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	return srv.Start(addr)
}
