package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/repository/sqlite"
	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/service"

	"github.com/google/uuid"
)

func newTestMembershipService(t *testing.T) (*service.MembershipService, *service.AlbumService, *service.SharingService, *service.AuthService, *sqlite.DB) {
	t.Helper()
	auth, db := newTestAuthService(t)
	return service.NewMembershipService(db.Albums(), db.Photos()),
		service.NewAlbumService(db.Albums()),
		service.NewSharingService(db.Albums(), db.Users()),
		auth, db
}

func createTestPhoto(t *testing.T, db *sqlite.DB, ownerID string) *domain.Photo {
	t.Helper()
	photo := &domain.Photo{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       "snapshot",
		ObjectKey:   "photos/" + ownerID + "/" + uuid.NewString() + ".jpg",
		ContentType: "image/jpeg",
		SizeBytes:   1024,
	}
	if err := db.Photos().Create(context.Background(), photo); err != nil {
		t.Fatalf("create photo: %v", err)
	}
	return photo
}

func TestMembershipService_OwnerAddsOwnPhoto(t *testing.T) {
	membership, albums, _, auth, db := newTestMembershipService(t)
	ctx := context.Background()
	owner := registerUserForTest(t, auth, "owner", "owner@example.com")
	album := createTestAlbum(t, albums, principalFor(owner), "Trip")
	photo := createTestPhoto(t, db, owner.ID)

	if err := membership.AddPhoto(ctx, album.ID, principalFor(owner), photo.ID); err != nil {
		t.Fatalf("AddPhoto: %v", err)
	}
	got, err := albums.Get(ctx, album.ID, principalFor(owner))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.HasPhoto(photo.ID) {
		t.Fatalf("expected album to contain %s", photo.ID)
	}

	// Adding the same photo again is a no-op, one entry remains.
	if err := membership.AddPhoto(ctx, album.ID, principalFor(owner), photo.ID); err != nil {
		t.Fatalf("repeat AddPhoto: %v", err)
	}
	got, err = albums.Get(ctx, album.ID, principalFor(owner))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.PhotoIDs) != 1 {
		t.Fatalf("expected 1 photo, got %d", len(got.PhotoIDs))
	}
}

func TestMembershipService_EditorAddsOwnersPhoto(t *testing.T) {
	membership, albums, sharing, auth, db := newTestMembershipService(t)
	ctx := context.Background()
	owner := registerUserForTest(t, auth, "owner", "owner@example.com")
	editor := registerUserForTest(t, auth, "editor", "editor@example.com")
	album := createTestAlbum(t, albums, principalFor(owner), "Trip")
	photo := createTestPhoto(t, db, owner.ID)

	if _, err := sharing.Share(ctx, album.ID, principalFor(owner),
		service.ShareTarget{Username: "editor"}, domain.PermissionEdit); err != nil {
		t.Fatalf("Share: %v", err)
	}

	if err := membership.AddPhoto(ctx, album.ID, principalFor(editor), photo.ID); err != nil {
		t.Fatalf("AddPhoto as editor: %v", err)
	}
}

func TestMembershipService_EditorCannotAddOwnPhoto(t *testing.T) {
	membership, albums, sharing, auth, db := newTestMembershipService(t)
	ctx := context.Background()
	owner := registerUserForTest(t, auth, "owner", "owner@example.com")
	editor := registerUserForTest(t, auth, "editor", "editor@example.com")
	album := createTestAlbum(t, albums, principalFor(owner), "Trip")
	photo := createTestPhoto(t, db, editor.ID)

	if _, err := sharing.Share(ctx, album.ID, principalFor(owner),
		service.ShareTarget{Username: "editor"}, domain.PermissionEdit); err != nil {
		t.Fatalf("Share: %v", err)
	}

	// Only photos owned by the album owner may be placed into the album.
	err := membership.AddPhoto(ctx, album.ID, principalFor(editor), photo.ID)
	if !errors.Is(err, domain.ErrPhotoNotOwned) {
		t.Fatalf("expected ErrPhotoNotOwned, got %v", err)
	}
}

func TestMembershipService_ViewerCannotModify(t *testing.T) {
	membership, albums, sharing, auth, db := newTestMembershipService(t)
	ctx := context.Background()
	owner := registerUserForTest(t, auth, "owner", "owner@example.com")
	viewer := registerUserForTest(t, auth, "viewer", "viewer@example.com")
	album := createTestAlbum(t, albums, principalFor(owner), "Trip")
	photo := createTestPhoto(t, db, owner.ID)

	if _, err := sharing.Share(ctx, album.ID, principalFor(owner),
		service.ShareTarget{Username: "viewer"}, domain.PermissionView); err != nil {
		t.Fatalf("Share: %v", err)
	}

	err := membership.AddPhoto(ctx, album.ID, principalFor(viewer), photo.ID)
	if !errors.Is(err, domain.ErrInsufficientPermission) {
		t.Fatalf("expected ErrInsufficientPermission from AddPhoto, got %v", err)
	}
	err = membership.RemovePhoto(ctx, album.ID, principalFor(viewer), photo.ID)
	if !errors.Is(err, domain.ErrInsufficientPermission) {
		t.Fatalf("expected ErrInsufficientPermission from RemovePhoto, got %v", err)
	}
}

func TestMembershipService_RemovePhoto(t *testing.T) {
	membership, albums, _, auth, db := newTestMembershipService(t)
	ctx := context.Background()
	owner := registerUserForTest(t, auth, "owner", "owner@example.com")
	album := createTestAlbum(t, albums, principalFor(owner), "Trip")
	photo := createTestPhoto(t, db, owner.ID)

	if err := membership.AddPhoto(ctx, album.ID, principalFor(owner), photo.ID); err != nil {
		t.Fatalf("AddPhoto: %v", err)
	}
	if err := membership.RemovePhoto(ctx, album.ID, principalFor(owner), photo.ID); err != nil {
		t.Fatalf("RemovePhoto: %v", err)
	}

	got, err := albums.Get(ctx, album.ID, principalFor(owner))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.HasPhoto(photo.ID) {
		t.Fatal("expected photo removed from album")
	}
	if _, err := db.Photos().GetByID(ctx, photo.ID); err != nil {
		t.Fatalf("photo row must survive album removal: %v", err)
	}

	// Removing an absent photo is a no-op.
	if err := membership.RemovePhoto(ctx, album.ID, principalFor(owner), photo.ID); err != nil {
		t.Fatalf("repeat RemovePhoto: %v", err)
	}
}

func TestMembershipService_UnknownPhoto(t *testing.T) {
	membership, albums, _, auth, _ := newTestMembershipService(t)
	owner := registerUserForTest(t, auth, "owner", "owner@example.com")
	album := createTestAlbum(t, albums, principalFor(owner), "Trip")

	err := membership.AddPhoto(context.Background(), album.ID, principalFor(owner), uuid.NewString())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
