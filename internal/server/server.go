package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/jardinero/garden-backend/internal/config"
	"github.com/jardinero/garden-backend/internal/handler"
	appmw "github.com/jardinero/garden-backend/internal/middleware"
	"github.com/jardinero/garden-backend/internal/repository"
	"github.com/jardinero/garden-backend/internal/service"
)

type Server struct {
	e *echo.Echo
}

func New(db *gorm.DB, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			return false, nil
		},
	}))

	txm := repository.NewTxManager(db)
	userRepo := repository.NewUserRepository(db)
	plotRepo := repository.NewPlotRepository(db)
	invRepo := repository.NewInventoryRepository(db)
	cropRepo := repository.NewCropTypeRepository(db)
	txRepo := repository.NewTransactionRepository(db)

	rules := service.DefaultRules()
	if cfg.XPPerHarvest > 0 {
		rules.XPPerHarvest = cfg.XPPerHarvest
	}

	authSvc := service.NewAuthService(txm, userRepo, plotRepo, invRepo, cropRepo)
	gameSvc := service.NewGameService(txm, userRepo, plotRepo, invRepo, cropRepo, txRepo, rules, nil)
	shopSvc := service.NewShopService(txm, userRepo, invRepo, cropRepo, txRepo)

	authMw := appmw.NewAuthMiddleware([]byte(cfg.JWTSecret))
	authHandler := handler.NewAuthHandler(authSvc, authMw)
	gameHandler := handler.NewGameHandler(gameSvc)
	shopHandler := handler.NewShopHandler(shopSvc)

	api := e.Group("/api")
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	game := api.Group("/game", authMw.RequireAuth)
	game.GET("/state", gameHandler.GetState)
	game.POST("/plant", gameHandler.Plant)
	game.POST("/harvest", gameHandler.Harvest)
	game.POST("/update-plants", gameHandler.UpdatePlants)
	game.GET("/history", gameHandler.History)

	shop := api.Group("/shop", authMw.RequireAuth)
	shop.GET("/seeds", shopHandler.ListSeeds)
	shop.POST("/buy-seeds", shopHandler.BuySeeds)
	shop.POST("/sell-seeds", shopHandler.SellSeeds)
	shop.POST("/sell-fruits", shopHandler.SellFruits)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
