package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/refcatalog-service/internal/auth"
	"github.com/spec-kit/refcatalog-service/internal/domain"
)

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return errors.New("duplicate email")
	}
	f.nextID++
	user.ID = f.nextID
	copied := *user
	f.byEmail[user.Email] = &copied
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	for _, existing := range f.byEmail {
		if existing.ID == user.ID {
			*existing = *user
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

// fakeLimiter returns a fixed verdict.
type fakeLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (f *fakeLimiter) Allow(context.Context, string) (bool, error) {
	f.calls++
	return f.allowed, f.err
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, verified bool) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Name:          "Test User",
		Email:         email,
		PasswordHash:  hash,
		EmailVerified: verified,
		Status:        domain.UserStatusActive,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestCredentialService_Verify(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "alice@example.com", "correct horse", true)
	seedUser(t, repo, "bob@example.com", "hunter2", false)

	creds := NewCredentialService(repo, &fakeLimiter{allowed: true}, true)

	tests := []struct {
		name     string
		email    string
		password string
		wantID   int64
		wantErr  error
	}{
		{name: "success", email: "alice@example.com", password: "correct horse", wantID: user.ID},
		{name: "unknown email", email: "nobody@example.com", password: "pw", wantErr: ErrEmailNotFound},
		{name: "wrong password", email: "alice@example.com", password: "wrong", wantErr: ErrInvalidPassword},
		{name: "unverified email", email: "bob@example.com", password: "hunter2", wantErr: ErrEmailUnverified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := creds.Verify(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestCredentialService_VerifyUnverifiedAllowedWhenNotRequired(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "bob@example.com", "hunter2", false)

	creds := NewCredentialService(repo, nil, false)

	id, err := creds.Verify(context.Background(), "bob@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestCredentialService_VerifyThrottled(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice@example.com", "correct horse", true)

	limiter := &fakeLimiter{allowed: false}
	creds := NewCredentialService(repo, limiter, true)

	_, err := creds.Verify(context.Background(), "alice@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
	assert.Equal(t, 1, limiter.calls)
}

func TestCredentialService_VerifyLimiterFailureFailsOpen(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedUser(t, repo, "alice@example.com", "correct horse", true)

	limiter := &fakeLimiter{allowed: false, err: errors.New("redis down")}
	creds := NewCredentialService(repo, limiter, true)

	id, err := creds.Verify(context.Background(), "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}
