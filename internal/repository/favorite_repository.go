package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/refcatalog-service/internal/domain"
)

// FavoriteRepository defines persistence access for per-user favorites.
type FavoriteRepository interface {
	// Add is idempotent: favoriting an already-favorited file succeeds.
	Add(ctx context.Context, userID, fileID int64) error
	// Remove deletes the favorite if present; removing a non-favorite succeeds.
	Remove(ctx context.Context, userID, fileID int64) error
	ListFiles(ctx context.Context, userID int64, limit, offset int) ([]domain.File, error)
	Count(ctx context.Context, userID int64) (int64, error)
}

type favoriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository returns a Postgres-backed implementation.
func NewFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &favoriteRepository{pool: pool}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, fileID int64) error {
	const query = `
        INSERT INTO favorites (user_id, file_id)
        VALUES ($1, $2)
        ON CONFLICT (user_id, file_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, userID, fileID)
	return err
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, fileID int64) error {
	const query = `DELETE FROM favorites WHERE user_id=$1 AND file_id=$2`

	_, err := r.pool.Exec(ctx, query, userID, fileID)
	return err
}

func (r *favoriteRepository) ListFiles(ctx context.Context, userID int64, limit, offset int) ([]domain.File, error) {
	const query = `
        SELECT f.id, f.catalog_id, f.name, f.path, f.size_bytes, f.content_type, f.description, f.created_at, f.updated_at
        FROM favorites fav
        JOIN files f ON f.id = fav.file_id
        WHERE fav.user_id=$1
        ORDER BY fav.created_at DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
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

func (r *favoriteRepository) Count(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM favorites WHERE user_id=$1`, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
