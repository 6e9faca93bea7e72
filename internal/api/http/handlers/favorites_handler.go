package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/refcatalog-service/internal/api/dto"
	"github.com/spec-kit/refcatalog-service/internal/auth"
	"github.com/spec-kit/refcatalog-service/internal/service"
	apperrors "github.com/spec-kit/refcatalog-service/pkg/util"
)

// FavoritesHandler exposes per-user favorite endpoints. All routes sit
// behind the auth middleware.
type FavoritesHandler struct {
	favorites *service.FavoriteService
}

// NewFavoritesHandler constructs handler.
func NewFavoritesHandler(favorites *service.FavoriteService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

// List handles GET /favorites.
func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	page, perPage, limit, offset := pagination(c)

	files, total, err := h.favorites.List(c.UserContext(), principal.User.ID, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewFileList(files),
		"meta": pageMeta(page, perPage, total),
	})
}

// Add handles POST /favorites.
func (h *FavoritesHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.FavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.FileID == 0 {
		return fiber.NewError(http.StatusBadRequest, "file_id required")
	}

	if err := h.favorites.Add(c.UserContext(), principal.User.ID, req.FileID); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"file_id": req.FileID},
	})
}

// Remove handles DELETE /favorites/:fileID.
func (h *FavoritesHandler) Remove(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	fileID, err := parseID(c.Params("fileID"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid file id")
	}

	if err := h.favorites.Remove(c.UserContext(), principal.User.ID, fileID); err != nil {
		return err
	}

	return c.Status(http.StatusNoContent).Send(nil)
}
