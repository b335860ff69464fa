package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
)

// AlbumService handles album lifecycle operations.
type AlbumService struct {
	albums domain.AlbumRepository
}

// NewAlbumService creates a new AlbumService.
func NewAlbumService(albums domain.AlbumRepository) *AlbumService {
	return &AlbumService{albums: albums}
}

// Create creates a new private album for the caller: empty membership, no
// collaborators, no public link.
func (s *AlbumService) Create(ctx context.Context, owner domain.Principal, title, description string) (*domain.Album, error) {
	if owner.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	album := &domain.Album{
		ID:          uuid.NewString(),
		OwnerID:     owner.UserID,
		Title:       title,
		Description: description,
	}
	if err := s.albums.Create(ctx, album); err != nil {
		return nil, fmt.Errorf("create album: %w", err)
	}
	return album, nil
}

// Get loads an album for a caller with at least view access. Callers with
// no access get ErrNotFound rather than a permission error, so album ids
// cannot be probed.
func (s *AlbumService) Get(ctx context.Context, albumID string, p domain.Principal) (*domain.Album, error) {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if domain.Evaluate(album, p, time.Now().UTC()) == domain.AccessNone {
		return nil, domain.ErrNotFound
	}
	return album, nil
}

// ListOwned returns the caller's own albums.
func (s *AlbumService) ListOwned(ctx context.Context, p domain.Principal) ([]domain.Album, error) {
	if p.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.albums.ListByOwner(ctx, p.UserID)
}

// ListSharedWith returns albums shared with the caller, by user id or by
// the caller's email for invites that predate their registration.
func (s *AlbumService) ListSharedWith(ctx context.Context, p domain.Principal) ([]domain.Album, error) {
	if p.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.albums.ListSharedWith(ctx, p.UserID, p.Email)
}

// Update changes an album's title and description. Owner only.
func (s *AlbumService) Update(ctx context.Context, albumID string, p domain.Principal, title, description string) (*domain.Album, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}

	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireAccess(album, p, domain.AccessOwner, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.albums.UpdateDetails(ctx, albumID, title, description); err != nil {
		return nil, fmt.Errorf("update album: %w", err)
	}
	return s.albums.GetByID(ctx, albumID)
}

// Delete removes an album and its sharing and membership rows. Owner only.
// The referenced photos are never deleted.
func (s *AlbumService) Delete(ctx context.Context, albumID string, p domain.Principal) error {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return err
	}
	if err := domain.RequireAccess(album, p, domain.AccessOwner, time.Now().UTC()); err != nil {
		return err
	}
	return s.albums.Delete(ctx, albumID)
}
