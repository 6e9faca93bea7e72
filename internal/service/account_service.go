package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/refcatalog-service/internal/auth"
	"github.com/spec-kit/refcatalog-service/internal/domain"
	"github.com/spec-kit/refcatalog-service/internal/events"
	"github.com/spec-kit/refcatalog-service/internal/repository"
	apperrors "github.com/spec-kit/refcatalog-service/pkg/util"
)

// AccountService handles account registration.
type AccountService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAccountService builds the service.
func NewAccountService(users repository.UserRepository, dispatcher events.Dispatcher, bcryptCost int) *AccountService {
	return &AccountService{users: users, dispatcher: dispatcher, bcryptCost: bcryptCost}
}

// Register creates a new account. New accounts start unverified; login
// behavior for unverified accounts is governed by configuration.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewStorageError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRegistered,
			UserID:    user.ID,
			Timestamp: time.Now(),
		})
	}

	return user, nil
}
