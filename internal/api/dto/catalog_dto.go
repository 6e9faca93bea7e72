package dto

import (
	"time"

	"github.com/spec-kit/refcatalog-service/internal/domain"
)

// CatalogResponse is the JSON shape for a catalog.
type CatalogResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FileResponse is the JSON shape for a reference file.
type FileResponse struct {
	ID          int64     `json:"id"`
	CatalogID   int64     `json:"catalog_id"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	SizeBytes   int64     `json:"size_bytes"`
	ContentType string    `json:"content_type,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FavoriteRequest payload for favoriting a file.
type FavoriteRequest struct {
	FileID int64 `json:"file_id"`
}

// PageMeta describes a paginated listing.
type PageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

// NewCatalogResponse maps a domain catalog.
func NewCatalogResponse(c domain.Catalog) CatalogResponse {
	return CatalogResponse{
		ID:          c.ID,
		Name:        c.Name,
		Path:        c.Path,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

// NewFileResponse maps a domain file.
func NewFileResponse(f domain.File) FileResponse {
	return FileResponse{
		ID:          f.ID,
		CatalogID:   f.CatalogID,
		Name:        f.Name,
		Path:        f.Path,
		SizeBytes:   f.SizeBytes,
		ContentType: f.ContentType,
		Description: f.Description,
		CreatedAt:   f.CreatedAt,
	}
}

// NewCatalogList maps a slice of catalogs.
func NewCatalogList(catalogs []domain.Catalog) []CatalogResponse {
	out := make([]CatalogResponse, 0, len(catalogs))
	for _, c := range catalogs {
		out = append(out, NewCatalogResponse(c))
	}
	return out
}

// NewFileList maps a slice of files.
func NewFileList(files []domain.File) []FileResponse {
	out := make([]FileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, NewFileResponse(f))
	}
	return out
}
