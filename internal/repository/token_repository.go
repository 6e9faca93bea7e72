package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/refcatalog-service/internal/domain"
)

// TokenRepository is the durable store behind token revocation. A token
// authenticates only while a live row exists here, so every operation that
// issues or invalidates a session goes through this interface.
type TokenRepository interface {
	// Persist inserts the record for a freshly issued token.
	Persist(ctx context.Context, token *domain.AuthToken) error
	// IsLiveAndStored reports whether a row for this exact token string
	// exists and has not passed its expiry. Absence is false, not an error.
	IsLiveAndStored(ctx context.Context, token string) (bool, error)
	// Touch updates last_used_at for the matching record. Touching a
	// missing row is a no-op.
	Touch(ctx context.Context, token string) error
	// Delete removes the matching record. Deleting zero rows is success.
	Delete(ctx context.Context, token string) error
	// SweepExpired deletes every record whose expiry has passed and
	// returns how many rows went away.
	SweepExpired(ctx context.Context) (int64, error)
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository returns a Postgres-backed implementation.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

func (r *tokenRepository) Persist(ctx context.Context, token *domain.AuthToken) error {
	const query = `
        INSERT INTO auth_tokens (user_id, token, token_type, user_agent, expires_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		token.UserID,
		token.Token,
		token.TokenType,
		token.UserAgent,
		token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *tokenRepository) IsLiveAndStored(ctx context.Context, tokenStr string) (bool, error) {
	const query = `
        SELECT EXISTS(
            SELECT 1 FROM auth_tokens WHERE token=$1 AND expires_at > NOW()
        )`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, tokenStr).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *tokenRepository) Touch(ctx context.Context, tokenStr string) error {
	const query = `
        UPDATE auth_tokens SET last_used_at=NOW()
        WHERE token=$1`

	_, err := r.pool.Exec(ctx, query, tokenStr)
	return err
}

func (r *tokenRepository) Delete(ctx context.Context, tokenStr string) error {
	const query = `DELETE FROM auth_tokens WHERE token=$1`

	_, err := r.pool.Exec(ctx, query, tokenStr)
	return err
}

func (r *tokenRepository) SweepExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM auth_tokens WHERE expires_at <= NOW()`

	cmd, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
