package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/service"
)

// fakeObjectStore hands out deterministic URLs and records deletions so
// tests can assert on them without talking to object storage.
type fakeObjectStore struct {
	deleted   []string
	deleteErr error
}

func (f *fakeObjectStore) PresignPut(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return "https://s3.test/put/" + key, nil
}

func (f *fakeObjectStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://s3.test/get/" + key, nil
}

func (f *fakeObjectStore) DeleteObject(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func newTestPhotoService(t *testing.T) (*service.PhotoService, *fakeObjectStore, *service.AlbumService, *service.MembershipService, *service.PublicLinkService, *service.AuthService) {
	t.Helper()
	auth, db := newTestAuthService(t)
	store := &fakeObjectStore{}
	return service.NewPhotoService(db.Photos(), db.Albums(), store), store,
		service.NewAlbumService(db.Albums()),
		service.NewMembershipService(db.Albums(), db.Photos()),
		service.NewPublicLinkService(db.Albums()),
		auth
}

func TestPhotoService_RegisterUpload(t *testing.T) {
	photos, _, _, _, _, auth := newTestPhotoService(t)
	ctx := context.Background()
	owner := registerUserForTest(t, auth, "owner", "owner@example.com")

	photo, uploadURL, err := photos.RegisterUpload(ctx, principalFor(owner), "Sunset", "sunset.jpg", "image/jpeg", 2048)
	if err != nil {
		t.Fatalf("RegisterUpload: %v", err)
	}
	if photo.OwnerID != owner.ID {
		t.Fatalf("expected owner %s, got %s", owner.ID, photo.OwnerID)
	}
	if uploadURL != "https://s3.test/put/"+photo.ObjectKey {
		t.Fatalf("unexpected upload URL %s", uploadURL)
	}

	list, err := photos.List(ctx, principalFor(owner))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != photo.ID {
		t.Fatalf("expected [%s] in listing, got %d photos", photo.ID, len(list))
	}
}

func TestPhotoService_RegisterUpload_RejectsNonImage(t *testing.T) {
	photos, _, _, _, _, auth := newTestPhotoService(t)
	owner := registerUserForTest(t, auth, "owner", "owner@example.com")

	_, _, err := photos.RegisterUpload(context.Background(), principalFor(owner), "Doc", "notes.pdf", "application/pdf", 100)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPhotoService_DownloadURL_OwnerOnly(t *testing.T) {
	photos, _, _, _, _, auth := newTestPhotoService(t)
	ctx := context.Background()
	owner := registerUserForTest(t, auth, "owner", "owner@example.com")
	other := registerUserForTest(t, auth, "other", "other@example.com")

	photo, _, err := photos.RegisterUpload(ctx, principalFor(owner), "Sunset", "sunset.jpg", "image/jpeg", 2048)
	if err != nil {
		t.Fatalf("RegisterUpload: %v", err)
	}

	url, err := photos.DownloadURL(ctx, photo.ID, principalFor(owner), time.Minute)
	if err != nil {
		t.Fatalf("DownloadURL: %v", err)
	}
	if url != "https://s3.test/get/"+photo.ObjectKey {
		t.Fatalf("unexpected URL %s", url)
	}

	// Other users see the same error as for an absent photo.
	if _, err := photos.DownloadURL(ctx, photo.ID, principalFor(other), time.Minute); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPhotoService_AlbumPhotoURL(t *testing.T) {
	photos, _, albums, membership, _, auth := newTestPhotoService(t)
	ctx := context.Background()
	owner := registerUserForTest(t, auth, "owner", "owner@example.com")
	stranger := registerUserForTest(t, auth, "stranger", "stranger@example.com")

	album := createTestAlbum(t, albums, principalFor(owner), "Trip")
	photo, _, err := photos.RegisterUpload(ctx, principalFor(owner), "Sunset", "sunset.jpg", "image/jpeg", 2048)
	if err != nil {
		t.Fatalf("RegisterUpload: %v", err)
	}
	if err := membership.AddPhoto(ctx, album.ID, principalFor(owner), photo.ID); err != nil {
		t.Fatalf("AddPhoto: %v", err)
	}

	if _, err := photos.AlbumPhotoURL(ctx, album.ID, photo.ID, principalFor(owner), time.Minute); err != nil {
		t.Fatalf("AlbumPhotoURL as owner: %v", err)
	}
	if _, err := photos.AlbumPhotoURL(ctx, album.ID, photo.ID, principalFor(stranger), time.Minute); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for stranger, got %v", err)
	}

	// A photo outside the album is not served through it.
	loose, _, err := photos.RegisterUpload(ctx, principalFor(owner), "Loose", "loose.jpg", "image/jpeg", 512)
	if err != nil {
		t.Fatalf("RegisterUpload: %v", err)
	}
	if _, err := photos.AlbumPhotoURL(ctx, album.ID, loose.ID, principalFor(owner), time.Minute); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-member photo, got %v", err)
	}
}

func TestPhotoService_PublicPhotoURL(t *testing.T) {
	photos, _, albums, membership, links, auth := newTestPhotoService(t)
	ctx := context.Background()
	owner := registerUserForTest(t, auth, "owner", "owner@example.com")

	album := createTestAlbum(t, albums, principalFor(owner), "Trip")
	photo, _, err := photos.RegisterUpload(ctx, principalFor(owner), "Sunset", "sunset.jpg", "image/jpeg", 2048)
	if err != nil {
		t.Fatalf("RegisterUpload: %v", err)
	}
	if err := membership.AddPhoto(ctx, album.ID, principalFor(owner), photo.ID); err != nil {
		t.Fatalf("AddPhoto: %v", err)
	}

	link, err := links.Generate(ctx, album.ID, principalFor(owner), nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	url, err := photos.PublicPhotoURL(ctx, link.Token, photo.ID, time.Minute)
	if err != nil {
		t.Fatalf("PublicPhotoURL: %v", err)
	}
	if url != "https://s3.test/get/"+photo.ObjectKey {
		t.Fatalf("unexpected URL %s", url)
	}

	if err := links.Revoke(ctx, album.ID, principalFor(owner)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if _, err := photos.PublicPhotoURL(ctx, link.Token, photo.ID, time.Minute); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after revoke, got %v", err)
	}
}

func TestPhotoService_Delete(t *testing.T) {
	photos, store, _, _, _, auth := newTestPhotoService(t)
	ctx := context.Background()
	owner := registerUserForTest(t, auth, "owner", "owner@example.com")
	other := registerUserForTest(t, auth, "other", "other@example.com")

	photo, _, err := photos.RegisterUpload(ctx, principalFor(owner), "Sunset", "sunset.jpg", "image/jpeg", 2048)
	if err != nil {
		t.Fatalf("RegisterUpload: %v", err)
	}

	if err := photos.Delete(ctx, photo.ID, principalFor(other)); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner delete, got %v", err)
	}
	if err := photos.Delete(ctx, photo.ID, principalFor(owner)); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != photo.ObjectKey {
		t.Fatalf("expected object %s deleted, got %v", photo.ObjectKey, store.deleted)
	}
	if _, err := photos.DownloadURL(ctx, photo.ID, principalFor(owner), time.Minute); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPhotoService_Delete_StorageFailureKeepsRecord(t *testing.T) {
	photos, store, _, _, _, auth := newTestPhotoService(t)
	ctx := context.Background()
	owner := registerUserForTest(t, auth, "owner", "owner@example.com")

	photo, _, err := photos.RegisterUpload(ctx, principalFor(owner), "Sunset", "sunset.jpg", "image/jpeg", 2048)
	if err != nil {
		t.Fatalf("RegisterUpload: %v", err)
	}

	store.deleteErr = errors.New("storage unavailable")
	if err := photos.Delete(ctx, photo.ID, principalFor(owner)); err == nil {
		t.Fatal("expected an error when storage delete fails")
	}

	// The record survives, so the delete can be retried.
	if _, err := photos.DownloadURL(ctx, photo.ID, principalFor(owner), time.Minute); err != nil {
		t.Fatalf("expected photo record to survive failed delete: %v", err)
	}

	store.deleteErr = nil
	if err := photos.Delete(ctx, photo.ID, principalFor(owner)); err != nil {
		t.Fatalf("retry Delete: %v", err)
	}
}
