package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/jardinero/garden-backend/internal/middleware"
	"github.com/jardinero/garden-backend/internal/service"
)

type GameHandler struct {
	svc service.GameService
}

func NewGameHandler(svc service.GameService) *GameHandler {
	return &GameHandler{svc: svc}
}

type plotResponse struct {
	Position        uint8      `json:"position"`
	CropTypeID      *uint64    `json:"cropTypeId"`
	CropName        string     `json:"cropName,omitempty"`
	Emoji           string     `json:"emoji,omitempty"`
	Color           string     `json:"color,omitempty"`
	PlantedAt       *time.Time `json:"plantedAt,omitempty"`
	GrowthTimeHours float64    `json:"growthTimeHours,omitempty"`
	Progress        float64    `json:"progress"`
	IsReady         bool       `json:"isReady"`
}

type seedLineResponse struct {
	CropTypeID uint64          `json:"cropTypeId"`
	Name       string          `json:"name"`
	Emoji      string          `json:"emoji"`
	Quantity   uint            `json:"quantity"`
	BuyPrice   decimal.Decimal `json:"buyPrice"`
	SellPrice  decimal.Decimal `json:"sellPrice"`
}

type fruitLineResponse struct {
	CropTypeID uint64          `json:"cropTypeId"`
	Name       string          `json:"name"`
	Emoji      string          `json:"emoji"`
	Quantity   uint            `json:"quantity"`
	SellPrice  decimal.Decimal `json:"sellPrice"`
}

type stateResponse struct {
	ID             uint64              `json:"id"`
	Username       string              `json:"username"`
	Money          decimal.Decimal     `json:"money"`
	Experience     uint                `json:"experience"`
	Level          uint                `json:"level"`
	Plots          []plotResponse      `json:"plots"`
	SeedInventory  []seedLineResponse  `json:"seedInventory"`
	FruitInventory []fruitLineResponse `json:"fruitInventory"`
}

func (h *GameHandler) GetState(c echo.Context) error {
	userID := middleware.UserID(c)
	state, err := h.svc.GetState(c.Request().Context(), userID)
	if err != nil {
		return domainError(c, err)
	}

	resp := stateResponse{
		ID:             state.User.ID,
		Username:       state.User.Username,
		Money:          state.User.Money,
		Experience:     state.User.Experience,
		Level:          state.User.Level,
		Plots:          make([]plotResponse, 0, len(state.Plots)),
		SeedInventory:  make([]seedLineResponse, 0, len(state.Seeds)),
		FruitInventory: make([]fruitLineResponse, 0, len(state.Fruit)),
	}
	for _, p := range state.Plots {
		pr := plotResponse{
			Position: p.Position,
			Progress: p.Progress,
			IsReady:  p.IsReady,
		}
		if p.Crop != nil {
			id := p.Crop.ID
			pr.CropTypeID = &id
			pr.CropName = p.Crop.Name
			pr.Emoji = p.Crop.Emoji
			pr.Color = p.Crop.Color
			pr.PlantedAt = p.PlantedAt
			pr.GrowthTimeHours = p.Crop.GrowthTimeHours
		}
		resp.Plots = append(resp.Plots, pr)
	}
	for _, line := range state.Seeds {
		resp.SeedInventory = append(resp.SeedInventory, seedLineResponse{
			CropTypeID: line.Crop.ID,
			Name:       line.Crop.Name,
			Emoji:      line.Crop.Emoji,
			Quantity:   line.Quantity,
			BuyPrice:   line.Crop.BuyPrice,
			SellPrice:  line.Crop.SellPrice,
		})
	}
	for _, line := range state.Fruit {
		resp.FruitInventory = append(resp.FruitInventory, fruitLineResponse{
			CropTypeID: line.Crop.ID,
			Name:       line.Crop.Name,
			Emoji:      line.Crop.Emoji,
			Quantity:   line.Quantity,
			SellPrice:  line.Crop.FruitSellPrice,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

type plantRequest struct {
	PlotPosition int    `json:"plotPosition"`
	CropTypeID   uint64 `json:"cropTypeId"`
}

func (h *GameHandler) Plant(c echo.Context) error {
	userID := middleware.UserID(c)
	var req plantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := h.svc.Plant(c.Request().Context(), userID, req.PlotPosition, req.CropTypeID); err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "seed planted"})
}

type harvestRequest struct {
	PlotPosition int `json:"plotPosition"`
}

func (h *GameHandler) Harvest(c echo.Context) error {
	userID := middleware.UserID(c)
	var req harvestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	gained, err := h.svc.Harvest(c.Request().Context(), userID, req.PlotPosition)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":          "plant harvested",
		"experienceGained": gained,
	})
}

func (h *GameHandler) UpdatePlants(c echo.Context) error {
	userID := middleware.UserID(c)
	count, err := h.svc.Refresh(c.Request().Context(), userID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "plant state updated",
		"plantsReady": count,
	})
}

type historyEntry struct {
	Reference   string          `json:"reference"`
	Type        string          `json:"type"`
	CropTypeID  uint64          `json:"cropTypeId"`
	Quantity    uint            `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (h *GameHandler) History(c echo.Context) error {
	userID := middleware.UserID(c)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	records, err := h.svc.History(c.Request().Context(), userID, limit)
	if err != nil {
		return domainError(c, err)
	}
	resp := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		resp = append(resp, historyEntry{
			Reference:   rec.Reference,
			Type:        string(rec.Type),
			CropTypeID:  rec.CropTypeID,
			Quantity:    rec.Quantity,
			UnitPrice:   rec.UnitPrice,
			TotalAmount: rec.TotalAmount,
			CreatedAt:   rec.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"transactions": resp})
}
