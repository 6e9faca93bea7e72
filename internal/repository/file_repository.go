package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/refcatalog-service/internal/domain"
)

// FileFilter narrows file listings.
type FileFilter struct {
	CatalogID *int64
	Limit     int
	Offset    int
}

// FileRepository defines persistence access for reference files.
type FileRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.File, error)
	List(ctx context.Context, filter FileFilter) ([]domain.File, error)
	Count(ctx context.Context, filter FileFilter) (int64, error)
}

type fileRepository struct {
	pool *pgxpool.Pool
}

// NewFileRepository returns a Postgres-backed implementation.
func NewFileRepository(pool *pgxpool.Pool) FileRepository {
	return &fileRepository{pool: pool}
}

func (r *fileRepository) GetByID(ctx context.Context, id int64) (*domain.File, error) {
	const query = `
        SELECT id, catalog_id, name, path, size_bytes, content_type, description, created_at, updated_at
        FROM files WHERE id=$1`

	var file domain.File
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.CatalogID,
		&file.Name,
		&file.Path,
		&file.SizeBytes,
		&file.ContentType,
		&file.Description,
		&file.CreatedAt,
		&file.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) List(ctx context.Context, filter FileFilter) ([]domain.File, error) {
	base := `SELECT id, catalog_id, name, path, size_bytes, content_type, description, created_at, updated_at
             FROM files`
	args := []any{}
	where := ""
	if filter.CatalogID != nil {
		args = append(args, *filter.CatalogID)
		where = fmt.Sprintf(" WHERE catalog_id=$%d", len(args))
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	query := fmt.Sprintf("%s%s ORDER BY path ASC LIMIT $%d OFFSET $%d", base, where, limitPos, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []domain.File
	for rows.Next() {
		var file domain.File
		if err := rows.Scan(
			&file.ID,
			&file.CatalogID,
			&file.Name,
			&file.Path,
			&file.SizeBytes,
			&file.ContentType,
			&file.Description,
			&file.CreatedAt,
			&file.UpdatedAt,
		); err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, rows.Err()
}

func (r *fileRepository) Count(ctx context.Context, filter FileFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM files`
	args := []any{}
	if filter.CatalogID != nil {
		args = append(args, *filter.CatalogID)
		query += " WHERE catalog_id=$1"
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
