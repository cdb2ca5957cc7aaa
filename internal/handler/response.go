package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jardinero/garden-backend/internal/service"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// domainError maps the engine's sentinel errors onto HTTP. Anything not in
// the table is a persistence or programming failure and surfaces as a 500 so
// callers know to retry rather than to fix their request.
func domainError(c echo.Context, err error) error {
	type mapping struct {
		sentinel error
		status   int
		message  string
	}
	mappings := []mapping{
		{service.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{service.ErrUnknownCropType, http.StatusNotFound, "unknown crop type"},
		{service.ErrInvalidQuantity, http.StatusBadRequest, "quantity must be at least 1"},
		{service.ErrInvalidPosition, http.StatusBadRequest, "plot position out of range"},
		{service.ErrInsufficientFunds, http.StatusBadRequest, "not enough money"},
		{service.ErrInsufficientQuantity, http.StatusBadRequest, "not enough items to sell"},
		{service.ErrNoSeedAvailable, http.StatusBadRequest, "no seed of that type in inventory"},
		{service.ErrPlotOccupied, http.StatusBadRequest, "plot already occupied"},
		{service.ErrPlotEmpty, http.StatusBadRequest, "plot is empty"},
		{service.ErrPlotNotReady, http.StatusBadRequest, "plant is not ready to harvest"},
		{service.ErrUserExists, http.StatusConflict, "username or email already taken"},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid username or password"},
	}
	for _, m := range mappings {
		if errors.Is(err, m.sentinel) {
			return c.JSON(m.status, NewErrorResponse(m.sentinel.Error(), m.message))
		}
	}
	return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "operation failed, please retry"))
}
