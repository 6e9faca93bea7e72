package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/refcatalog-service/internal/domain"
)

// CatalogRepository defines persistence access for catalogs.
type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Catalog, error)
	List(ctx context.Context, limit, offset int) ([]domain.Catalog, error)
	Count(ctx context.Context) (int64, error)
}

type catalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository returns a Postgres-backed implementation.
func NewCatalogRepository(pool *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{pool: pool}
}

func (r *catalogRepository) GetByID(ctx context.Context, id int64) (*domain.Catalog, error) {
	const query = `
        SELECT id, name, path, description, created_at, updated_at
        FROM catalogs WHERE id=$1`

	var catalog domain.Catalog
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&catalog.ID,
		&catalog.Name,
		&catalog.Path,
		&catalog.Description,
		&catalog.CreatedAt,
		&catalog.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (r *catalogRepository) List(ctx context.Context, limit, offset int) ([]domain.Catalog, error) {
	const query = `
        SELECT id, name, path, description, created_at, updated_at
        FROM catalogs ORDER BY path ASC LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var catalogs []domain.Catalog
	for rows.Next() {
		var catalog domain.Catalog
		if err := rows.Scan(
			&catalog.ID,
			&catalog.Name,
			&catalog.Path,
			&catalog.Description,
			&catalog.CreatedAt,
			&catalog.UpdatedAt,
		); err != nil {
			return nil, err
		}
		catalogs = append(catalogs, catalog)
	}
	return catalogs, rows.Err()
}

func (r *catalogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM catalogs`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
