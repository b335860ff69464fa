package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/repository/sqlite"
	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestAuthService(t *testing.T) (*service.AuthService, *sqlite.DB) {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	return service.NewAuthService(db.Users(), testJWTSecret, 4), db
}

func registerUserForTest(t *testing.T, auth *service.AuthService, username, email string) *domain.User {
	t.Helper()
	user, err := auth.Register(context.Background(), username, email, "password123")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

func principalFor(u *domain.User) domain.Principal {
	return domain.Principal{UserID: u.ID, Email: u.Email}
}

func TestAuthService_Register_Success(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "newuser", "new@example.com", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.ID == "" {
		t.Fatal("expected user ID to be set")
	}
	if user.Username != "newuser" {
		t.Fatalf("expected username newuser, got %s", user.Username)
	}
	if user.PasswordHash == "password123" {
		t.Fatal("password must not be stored in the clear")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "user1", "dup@example.com", "password123"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := auth.Register(ctx, "user2", "dup@example.com", "password456")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "taken", "first@example.com", "password123"); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := auth.Register(ctx, "taken", "second@example.com", "password456")
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Register(context.Background(), "weak", "weak@example.com", "short")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_BadEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Register(context.Background(), "bad", "not-an-email", "password123")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Login_And_VerifyToken(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	user := registerUserForTest(t, auth, "login", "login@example.com")

	token, err := auth.Login(ctx, "login@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	principal, err := auth.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if principal.UserID != user.ID {
		t.Fatalf("expected principal user id %s, got %s", user.ID, principal.UserID)
	}
	if principal.Email != "login@example.com" {
		t.Fatalf("expected principal email login@example.com, got %s", principal.Email)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth, _ := newTestAuthService(t)
	ctx := context.Background()

	registerUserForTest(t, auth, "wrongpw", "wrongpw@example.com")

	_, err := auth.Login(ctx, "wrongpw@example.com", "not-the-password")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.Login(context.Background(), "ghost@example.com", "password123")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_VerifyToken_Garbage(t *testing.T) {
	auth, _ := newTestAuthService(t)

	_, err := auth.VerifyToken("not.a.jwt")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
