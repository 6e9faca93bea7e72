package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/refcatalog-service/internal/domain"
	"github.com/spec-kit/refcatalog-service/internal/events"
	"github.com/spec-kit/refcatalog-service/internal/repository"
	apperrors "github.com/spec-kit/refcatalog-service/pkg/util"
)

// FavoriteService manages per-user file favorites.
type FavoriteService struct {
	favorites  repository.FavoriteRepository
	catalog    *CatalogService
	dispatcher events.Dispatcher
}

// NewFavoriteService builds the service.
func NewFavoriteService(favorites repository.FavoriteRepository, catalog *CatalogService, dispatcher events.Dispatcher) *FavoriteService {
	return &FavoriteService{favorites: favorites, catalog: catalog, dispatcher: dispatcher}
}

// Add favorites a file for the user. Favoriting twice is a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID, fileID int64) error {
	if _, err := s.catalog.GetFile(ctx, fileID); err != nil {
		return err
	}
	if err := s.favorites.Add(ctx, userID, fileID); err != nil {
		return apperrors.NewStorageError(err)
	}
	s.publish(ctx, events.EventFileFavorited, userID, fileID)
	return nil
}

// Remove unfavorites a file. Removing a non-favorite is success.
func (s *FavoriteService) Remove(ctx context.Context, userID, fileID int64) error {
	if err := s.favorites.Remove(ctx, userID, fileID); err != nil {
		return apperrors.NewStorageError(err)
	}
	s.publish(ctx, events.EventFileUnfavorited, userID, fileID)
	return nil
}

// List returns a page of the user's favorite files and the total count.
func (s *FavoriteService) List(ctx context.Context, userID int64, limit, offset int) ([]domain.File, int64, error) {
	files, err := s.favorites.ListFiles(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}
	total, err := s.favorites.Count(ctx, userID)
	if err != nil {
		return nil, 0, apperrors.NewStorageError(err)
	}
	return files, total, nil
}

func (s *FavoriteService) publish(ctx context.Context, eventType events.EventType, userID, fileID int64) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   events.FavoritePayload{FileID: fileID},
	})
}
