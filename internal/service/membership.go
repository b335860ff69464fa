package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
)

// MembershipService manages which photos belong to an album.
type MembershipService struct {
	albums domain.AlbumRepository
	photos domain.PhotoRepository
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(albums domain.AlbumRepository, photos domain.PhotoRepository) *MembershipService {
	return &MembershipService{albums: albums, photos: photos}
}

// AddPhoto adds a photo to an album's membership set. Requires edit access,
// and the photo must belong to the album owner: an edit collaborator can
// arrange the owner's photos but never slip their own into the album.
// Adding an already-present photo is a no-op success.
func (s *MembershipService) AddPhoto(ctx context.Context, albumID string, requester domain.Principal, photoID string) error {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return err
	}
	if err := domain.RequireAccess(album, requester, domain.AccessEdit, time.Now().UTC()); err != nil {
		return err
	}

	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.OwnerID != album.OwnerID {
		return domain.ErrPhotoNotOwned
	}

	if _, err := s.albums.AddPhoto(ctx, albumID, photoID); err != nil {
		return fmt.Errorf("add photo: %w", err)
	}
	return nil
}

// RemovePhoto removes a photo from an album's membership set. Requires edit
// access. Removing an absent photo is a no-op success.
func (s *MembershipService) RemovePhoto(ctx context.Context, albumID string, requester domain.Principal, photoID string) error {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return err
	}
	if err := domain.RequireAccess(album, requester, domain.AccessEdit, time.Now().UTC()); err != nil {
		return err
	}

	if _, err := s.albums.RemovePhoto(ctx, albumID, photoID); err != nil {
		return fmt.Errorf("remove photo: %w", err)
	}
	return nil
}
