package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/refcatalog-service/internal/api/dto"
	"github.com/spec-kit/refcatalog-service/internal/service"
)

// FilesHandler exposes file listing endpoints.
type FilesHandler struct {
	catalog *service.CatalogService
}

// NewFilesHandler constructs handler.
func NewFilesHandler(catalog *service.CatalogService) *FilesHandler {
	return &FilesHandler{catalog: catalog}
}

// List handles GET /files, optionally filtered by catalog_id.
func (h *FilesHandler) List(c *fiber.Ctx) error {
	page, perPage, limit, offset := pagination(c)

	var catalogID *int64
	if raw := c.Query("catalog_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid catalog_id")
		}
		catalogID = &id
	}

	files, total, err := h.catalog.ListFiles(c.UserContext(), catalogID, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewFileList(files),
		"meta": pageMeta(page, perPage, total),
	})
}

// Get handles GET /files/:id.
func (h *FilesHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid file id")
	}

	file, err := h.catalog.GetFile(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewFileResponse(*file)})
}
