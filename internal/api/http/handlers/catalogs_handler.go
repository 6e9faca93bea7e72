package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/refcatalog-service/internal/api/dto"
	"github.com/spec-kit/refcatalog-service/internal/service"
)

// CatalogsHandler exposes catalog listing endpoints.
type CatalogsHandler struct {
	catalog *service.CatalogService
}

// NewCatalogsHandler constructs handler.
func NewCatalogsHandler(catalog *service.CatalogService) *CatalogsHandler {
	return &CatalogsHandler{catalog: catalog}
}

// List handles GET /catalogs.
func (h *CatalogsHandler) List(c *fiber.Ctx) error {
	page, perPage, limit, offset := pagination(c)

	catalogs, total, err := h.catalog.ListCatalogs(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewCatalogList(catalogs),
		"meta": pageMeta(page, perPage, total),
	})
}

// Get handles GET /catalogs/:id.
func (h *CatalogsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid catalog id")
	}

	catalog, err := h.catalog.GetCatalog(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewCatalogResponse(*catalog)})
}

// ListFiles handles GET /catalogs/:id/files.
func (h *CatalogsHandler) ListFiles(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid catalog id")
	}
	page, perPage, limit, offset := pagination(c)

	files, total, err := h.catalog.ListCatalogFiles(c.UserContext(), id, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewFileList(files),
		"meta": pageMeta(page, perPage, total),
	})
}
