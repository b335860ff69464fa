package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
)

// ObjectStore issues presigned URLs for photo objects and deletes them.
// The photo-vault core never touches the bytes; delivery happens directly
// between the client and object storage.
type ObjectStore interface {
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, key string) error
}

const uploadURLTTL = 15 * time.Minute

// PhotoService registers uploaded photos and hands out presigned URLs for
// upload and delivery.
type PhotoService struct {
	photos domain.PhotoRepository
	albums domain.AlbumRepository
	store  ObjectStore
}

// NewPhotoService creates a new PhotoService.
func NewPhotoService(photos domain.PhotoRepository, albums domain.AlbumRepository, store ObjectStore) *PhotoService {
	return &PhotoService{photos: photos, albums: albums, store: store}
}

// RegisterUpload creates a photo record for the caller and returns it along
// with a presigned PUT URL the client uploads the bytes to.
func (s *PhotoService) RegisterUpload(ctx context.Context, owner domain.Principal, title, filename, contentType string, sizeBytes int64) (*domain.Photo, string, error) {
	if owner.UserID == "" {
		return nil, "", domain.ErrUnauthorized
	}
	if contentType == "" || !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("%w: content type must be an image type", domain.ErrInvalidInput)
	}
	if sizeBytes < 0 {
		return nil, "", fmt.Errorf("%w: negative size", domain.ErrInvalidInput)
	}

	photo := &domain.Photo{
		ID:          uuid.NewString(),
		OwnerID:     owner.UserID,
		Title:       title,
		ContentType: contentType,
		SizeBytes:   sizeBytes,
	}
	photo.ObjectKey = objectKey(owner.UserID, photo.ID, filename)

	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, "", fmt.Errorf("create photo: %w", err)
	}

	url, err := s.store.PresignPut(ctx, photo.ObjectKey, contentType, uploadURLTTL)
	if err != nil {
		return nil, "", fmt.Errorf("presign upload: %w", err)
	}
	return photo, url, nil
}

// List returns the caller's photos.
func (s *PhotoService) List(ctx context.Context, p domain.Principal) ([]domain.Photo, error) {
	if p.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.photos.ListByOwner(ctx, p.UserID)
}

// DownloadURL returns a presigned GET URL for one of the caller's own
// photos. Photos owned by someone else look absent.
func (s *PhotoService) DownloadURL(ctx context.Context, photoID string, p domain.Principal, ttl time.Duration) (string, error) {
	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return "", err
	}
	if photo.OwnerID != p.UserID {
		return "", domain.ErrNotFound
	}
	return s.store.PresignGet(ctx, photo.ObjectKey, ttl)
}

// AlbumPhotoURL serves a photo through an album the caller can view:
// collaborator delivery re-evaluates album access on every request, so a
// revoked share stops working immediately. The photo must be a member of
// the album.
func (s *PhotoService) AlbumPhotoURL(ctx context.Context, albumID, photoID string, p domain.Principal, ttl time.Duration) (string, error) {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return "", err
	}
	if domain.Evaluate(album, p, time.Now().UTC()) == domain.AccessNone {
		return "", domain.ErrNotFound
	}
	return s.memberPhotoURL(ctx, album, photoID, ttl)
}

// PublicPhotoURL serves a photo through a public album link; the token is
// the only credential. Revoked and expired links look absent.
func (s *PhotoService) PublicPhotoURL(ctx context.Context, token, photoID string, ttl time.Duration) (string, error) {
	album, err := s.albums.GetByPublicToken(ctx, token)
	if err != nil {
		return "", err
	}
	if !album.PubliclyVisible(time.Now().UTC()) {
		return "", domain.ErrNotFound
	}
	return s.memberPhotoURL(ctx, album, photoID, ttl)
}

// Delete removes a photo record and its stored object. Photo owner only;
// album membership rows cascade, albums themselves are untouched.
func (s *PhotoService) Delete(ctx context.Context, photoID string, p domain.Principal) error {
	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.OwnerID != p.UserID {
		return domain.ErrNotFound
	}

	// Remove the object first: if storage fails the record stays, the
	// caller sees the error, and the delete can be retried. The reverse
	// order would strand an unreferenced object.
	if err := s.store.DeleteObject(ctx, photo.ObjectKey); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return s.photos.Delete(ctx, photoID)
}

func (s *PhotoService) memberPhotoURL(ctx context.Context, album *domain.Album, photoID string, ttl time.Duration) (string, error) {
	if !album.HasPhoto(photoID) {
		return "", domain.ErrNotFound
	}
	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, photo.ObjectKey, ttl)
}

func objectKey(ownerID, photoID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return "photos/" + ownerID + "/" + photoID + ext
}
