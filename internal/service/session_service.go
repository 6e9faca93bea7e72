package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/refcatalog-service/internal/auth"
	"github.com/spec-kit/refcatalog-service/internal/domain"
	"github.com/spec-kit/refcatalog-service/internal/events"
	"github.com/spec-kit/refcatalog-service/internal/observability"
	"github.com/spec-kit/refcatalog-service/internal/repository"
	apperrors "github.com/spec-kit/refcatalog-service/pkg/util"
)

// SessionService orchestrates the token lifecycle: login issues and
// persists a token, logout deletes its record, and Validate requires the
// signature and a live store row to agree before trusting a bearer token.
type SessionService struct {
	tokenMgr   *auth.TokenManager
	tokens     repository.TokenRepository
	creds      CredentialVerifier
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewSessionService builds the service.
func NewSessionService(
	tokenMgr *auth.TokenManager,
	tokens repository.TokenRepository,
	creds CredentialVerifier,
	dispatcher events.Dispatcher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		tokenMgr:   tokenMgr,
		tokens:     tokens,
		creds:      creds,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// Login verifies credentials, issues a token and persists its record. A
// token is returned only once it is durably recorded: the store is the
// revocation authority, so an unrecorded token must never reach a client.
func (s *SessionService) Login(ctx context.Context, email, password, userAgent string) (string, time.Time, error) {
	userID, err := s.creds.Verify(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailNotFound), errors.Is(err, ErrInvalidPassword):
			return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		case errors.Is(err, ErrEmailUnverified):
			return "", time.Time{}, apperrors.NewUnauthorized("email not verified")
		case errors.Is(err, ErrTooManyAttempts):
			return "", time.Time{}, apperrors.NewTooManyRequests("too many login attempts")
		default:
			return "", time.Time{}, apperrors.NewStorageError(err)
		}
	}

	token, expiresAt, err := s.tokenMgr.Issue(userID)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}

	record := &domain.AuthToken{
		UserID:    userID,
		Token:     token,
		TokenType: domain.TokenTypeAccess,
		UserAgent: userAgent,
		ExpiresAt: expiresAt,
	}
	if err := s.tokens.Persist(ctx, record); err != nil {
		return "", time.Time{}, apperrors.NewStorageError(err)
	}

	s.metrics.RecordLogin()
	s.publish(ctx, events.EventUserLoggedIn, userID, events.SessionPayload{
		UserAgent: userAgent,
		ExpiresAt: expiresAt,
	})

	return token, expiresAt, nil
}

// Logout revokes the token by deleting its record. A missing token is a
// client error; deleting an already-absent record is success.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.NewValidationError("token required", nil)
	}

	userID := int64(0)
	if claims, err := s.tokenMgr.Parse(token); err == nil {
		userID, _ = claims.UserID()
	}

	if err := s.tokens.Delete(ctx, token); err != nil {
		return apperrors.NewStorageError(err)
	}

	s.publish(ctx, events.EventUserLoggedOut, userID, nil)
	return nil
}

// Validate resolves a bearer token to a user id. The signature must verify
// AND a live store row must exist; either check failing, or a missing or
// non-numeric subject, yields ok=false. Validate never returns an error:
// "not logged in" is an expected steady-state outcome.
func (s *SessionService) Validate(ctx context.Context, token string) (int64, bool) {
	if token == "" {
		return 0, false
	}

	claims, err := s.tokenMgr.Parse(token)
	if err != nil {
		s.metrics.RecordRejectedToken()
		return 0, false
	}

	live, err := s.tokens.IsLiveAndStored(ctx, token)
	if err != nil || !live {
		if err != nil {
			s.logger.Warn("token store lookup failed", zap.Error(err))
		}
		s.metrics.RecordRejectedToken()
		return 0, false
	}

	userID, err := claims.UserID()
	if err != nil {
		s.metrics.RecordRejectedToken()
		return 0, false
	}

	// Best-effort last-used tracking; never blocks authentication.
	if err := s.tokens.Touch(ctx, token); err != nil {
		s.logger.Debug("token touch failed", zap.Error(err))
	}

	return userID, true
}

// IsAuthenticated reports whether the token resolves to a user.
func (s *SessionService) IsAuthenticated(ctx context.Context, token string) bool {
	_, ok := s.Validate(ctx, token)
	return ok
}

func (s *SessionService) publish(ctx context.Context, eventType events.EventType, userID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
