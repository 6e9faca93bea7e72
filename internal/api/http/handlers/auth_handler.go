package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/refcatalog-service/internal/api/dto"
	"github.com/spec-kit/refcatalog-service/internal/auth"
	"github.com/spec-kit/refcatalog-service/internal/service"
	apperrors "github.com/spec-kit/refcatalog-service/pkg/util"
)

// AuthHandler exposes registration, login, logout and session-check
// endpoints.
type AuthHandler struct {
	accounts *service.AccountService
	sessions *service.SessionService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(accounts *service.AccountService, sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	user, err := h.accounts.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
			},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	token, expiresAt, err := h.sessions.Login(c.UserContext(), req.Email, req.Password, c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
	})
}

// Logout handles POST /auth/logout. Presenting a token is mandatory: there
// is nothing to invalidate without one.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, ok := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return apperrors.NewValidationError("bearer token required", nil)
	}

	if err := h.sessions.Logout(c.UserContext(), token); err != nil {
		return err
	}

	return c.Status(http.StatusNoContent).Send(nil)
}

// Session handles GET /auth/session. It always answers 200; the body
// carries the authentication verdict.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	token, _ := auth.BearerToken(c.Get(fiber.HeaderAuthorization))

	resp := dto.SessionResponse{}
	if userID, ok := h.sessions.Validate(c.UserContext(), token); ok {
		resp.Authenticated = true
		resp.UserID = &userID
	}

	return c.JSON(fiber.Map{"data": resp})
}
