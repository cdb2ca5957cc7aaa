package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/jardinero/garden-backend/internal/middleware"
	"github.com/jardinero/garden-backend/internal/service"
)

type ShopHandler struct {
	svc service.ShopService
}

func NewShopHandler(svc service.ShopService) *ShopHandler {
	return &ShopHandler{svc: svc}
}

type catalogEntry struct {
	ID              uint64          `json:"id"`
	Name            string          `json:"name"`
	GrowthTimeHours float64         `json:"growthTimeHours"`
	BuyPrice        decimal.Decimal `json:"buyPrice"`
	SellPrice       decimal.Decimal `json:"sellPrice"`
	FruitSellPrice  decimal.Decimal `json:"fruitSellPrice"`
	Emoji           string          `json:"emoji"`
	Color           string          `json:"color"`
}

func (h *ShopHandler) ListSeeds(c echo.Context) error {
	crops, err := h.svc.ListSeeds(c.Request().Context())
	if err != nil {
		return domainError(c, err)
	}
	resp := make([]catalogEntry, 0, len(crops))
	for _, ct := range crops {
		resp = append(resp, catalogEntry{
			ID:              ct.ID,
			Name:            ct.Name,
			GrowthTimeHours: ct.GrowthTimeHours,
			BuyPrice:        ct.BuyPrice,
			SellPrice:       ct.SellPrice,
			FruitSellPrice:  ct.FruitSellPrice,
			Emoji:           ct.Emoji,
			Color:           ct.Color,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

type tradeRequest struct {
	CropTypeID uint64 `json:"cropTypeId"`
	Quantity   int    `json:"quantity"`
}

func (r *tradeRequest) qty() (uint, bool) {
	if r.Quantity < 1 {
		return 0, false
	}
	return uint(r.Quantity), true
}

func (h *ShopHandler) BuySeeds(c echo.Context) error {
	userID := middleware.UserID(c)
	var req tradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	qty, ok := req.qty()
	if !ok {
		return domainError(c, service.ErrInvalidQuantity)
	}
	receipt, err := h.svc.BuySeed(c.Request().Context(), userID, req.CropTypeID, qty)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "seeds purchased",
		"totalCost":  receipt.TotalCost,
		"newBalance": receipt.NewBalance,
	})
}

func (h *ShopHandler) SellSeeds(c echo.Context) error {
	return h.sell(c, h.svc.SellSeed)
}

func (h *ShopHandler) SellFruits(c echo.Context) error {
	return h.sell(c, h.svc.SellFruit)
}

type sellOp func(ctx context.Context, userID, cropTypeID uint64, qty uint) (*service.SaleReceipt, error)

func (h *ShopHandler) sell(c echo.Context, op sellOp) error {
	userID := middleware.UserID(c)
	var req tradeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	qty, ok := req.qty()
	if !ok {
		return domainError(c, service.ErrInvalidQuantity)
	}
	receipt, err := op(c.Request().Context(), userID, req.CropTypeID, qty)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":       "sale completed",
		"totalEarnings": receipt.TotalEarnings,
		"newBalance":    receipt.NewBalance,
	})
}
