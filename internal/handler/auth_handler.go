package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jardinero/garden-backend/internal/middleware"
	"github.com/jardinero/garden-backend/internal/model"
	"github.com/jardinero/garden-backend/internal/service"
)

type AuthHandler struct {
	svc    service.AuthService
	authMw *middleware.AuthMiddleware
}

func NewAuthHandler(svc service.AuthService, authMw *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{svc: svc, authMw: authMw}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authUser struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  authUser `json:"user"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	user, err := h.svc.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return domainError(c, err)
	}
	return h.respondWithToken(c, http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	user, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return domainError(c, err)
	}
	return h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) respondWithToken(c echo.Context, status int, user *model.User) error {
	token, err := h.authMw.GenerateToken(user.ID, user.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to issue token"))
	}
	return c.JSON(status, authResponse{
		Token: token,
		User:  authUser{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}
