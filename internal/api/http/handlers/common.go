package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/refcatalog-service/internal/api/dto"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pagination parses page/per_page query params into limit/offset.
func pagination(c *fiber.Ctx) (page, perPage, limit, offset int) {
	page = parseInt(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}
	perPage = parseInt(c.Query("per_page"), defaultPageSize)
	if perPage < 1 {
		perPage = defaultPageSize
	}
	if perPage > maxPageSize {
		perPage = maxPageSize
	}
	return page, perPage, perPage, (page - 1) * perPage
}

func pageMeta(page, perPage int, total int64) dto.PageMeta {
	return dto.PageMeta{Page: page, PerPage: perPage, Total: total}
}

func parseInt(val string, fallback int) int {
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseID(val string) (int64, error) {
	return strconv.ParseInt(val, 10, 64)
}
