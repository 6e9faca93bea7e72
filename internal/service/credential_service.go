package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/refcatalog-service/internal/auth"
	"github.com/spec-kit/refcatalog-service/internal/repository"
)

// Credential verification outcomes. The session layer maps these onto the
// HTTP error taxonomy; everything else that comes out of Verify is an
// infrastructure failure.
var (
	ErrEmailNotFound   = errors.New("email not registered")
	ErrInvalidPassword = errors.New("invalid password")
	ErrEmailUnverified = errors.New("email not verified")
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// AttemptLimiter bounds login attempts per account. Allow reports whether
// another attempt may proceed right now.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// CredentialVerifier checks an email/password pair and returns the owning
// user id.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (int64, error)
}

// CredentialService verifies credentials against stored bcrypt hashes,
// throttled by an attempt limiter.
type CredentialService struct {
	users           repository.UserRepository
	limiter         AttemptLimiter
	requireVerified bool
}

// NewCredentialService builds the service. limiter may be nil, in which
// case attempts are never throttled.
func NewCredentialService(users repository.UserRepository, limiter AttemptLimiter, requireVerified bool) *CredentialService {
	return &CredentialService{users: users, limiter: limiter, requireVerified: requireVerified}
}

// Verify resolves an email/password pair to a user id. Limiter
// infrastructure failures do not block logins.
func (s *CredentialService) Verify(ctx context.Context, email, password string) (int64, error) {
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err == nil && !allowed {
			return 0, ErrTooManyAttempts
		}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrEmailNotFound
		}
		return 0, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return 0, ErrInvalidPassword
	}

	if s.requireVerified && !user.EmailVerified {
		return 0, ErrEmailUnverified
	}

	return user.ID, nil
}
