package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/refcatalog-service/internal/domain"
	"github.com/spec-kit/refcatalog-service/internal/repository"
	apperrors "github.com/spec-kit/refcatalog-service/pkg/util"
)

// CatalogService serves catalog and file listings.
type CatalogService struct {
	catalogs repository.CatalogRepository
	files    repository.FileRepository
}

// NewCatalogService builds the service.
func NewCatalogService(catalogs repository.CatalogRepository, files repository.FileRepository) *CatalogService {
	return &CatalogService{catalogs: catalogs, files: files}
}

// ListCatalogs returns a page of catalogs and the total count.
func (s *CatalogService) ListCatalogs(ctx context.Context, limit, offset int) ([]domain.Catalog, int64, error) {
	catalogs, err := s.catalogs.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}
	total, err := s.catalogs.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}
	return catalogs, total, nil
}

// GetCatalog returns a single catalog.
func (s *CatalogService) GetCatalog(ctx context.Context, id int64) (*domain.Catalog, error) {
	catalog, err := s.catalogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("catalog", nil)
		}
		return nil, apperrors.NewStorageError(err)
	}
	return catalog, nil
}

// ListCatalogFiles returns a page of files within one catalog.
func (s *CatalogService) ListCatalogFiles(ctx context.Context, catalogID int64, limit, offset int) ([]domain.File, int64, error) {
	if _, err := s.GetCatalog(ctx, catalogID); err != nil {
		return nil, 0, err
	}
	filter := repository.FileFilter{CatalogID: &catalogID, Limit: limit, Offset: offset}
	return s.listFiles(ctx, filter)
}

// ListFiles returns a page of files, optionally filtered by catalog.
func (s *CatalogService) ListFiles(ctx context.Context, catalogID *int64, limit, offset int) ([]domain.File, int64, error) {
	filter := repository.FileFilter{CatalogID: catalogID, Limit: limit, Offset: offset}
	return s.listFiles(ctx, filter)
}

// GetFile returns a single file.
func (s *CatalogService) GetFile(ctx context.Context, id int64) (*domain.File, error) {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("file", nil)
		}
		return nil, apperrors.NewStorageError(err)
	}
	return file, nil
}

func (s *CatalogService) listFiles(ctx context.Context, filter repository.FileFilter) ([]domain.File, int64, error) {
	files, err := s.files.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}
	total, err := s.files.Count(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}
	return files, total, nil
}
