package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/handler"
	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/repository/sqlite"
	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/service"
	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/storage"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, logOpts)))

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "photo-vault.db")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if len(jwtSecret) < 32 {
		slog.Error("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}

	bcryptCost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid BCRYPT_COST", "error", err)
			os.Exit(1)
		}
		if parsed < 4 || parsed > 14 {
			slog.Error("BCRYPT_COST must be between 4 and 14", "value", parsed)
			os.Exit(1)
		}
		bcryptCost = parsed
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	s3, err := storage.New(context.Background(), storage.S3Config{
		Endpoint:       os.Getenv("S3_ENDPOINT"),
		Region:         envOrDefault("S3_REGION", "us-east-1"),
		AccessKey:      os.Getenv("S3_ACCESS_KEY"),
		SecretKey:      os.Getenv("S3_SECRET_KEY"),
		ForcePathStyle: os.Getenv("S3_FORCE_PATH_STYLE") == "true",
		Bucket:         envOrDefault("S3_BUCKET", "photo-vault"),
	})
	if err != nil {
		slog.Error("failed to create object storage client", "error", err)
		os.Exit(1)
	}
	if err := s3.EnsureBucket(context.Background()); err != nil {
		slog.Error("failed to ensure photo bucket", "error", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(db.Users(), jwtSecret, bcryptCost)
	albumService := service.NewAlbumService(db.Albums())
	sharingService := service.NewSharingService(db.Albums(), db.Users())
	publicLinkService := service.NewPublicLinkService(db.Albums())
	membershipService := service.NewMembershipService(db.Albums(), db.Photos())
	photoService := service.NewPhotoService(db.Photos(), db.Albums(), s3)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, albumService, sharingService, publicLinkService, membershipService, photoService)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
