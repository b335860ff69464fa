package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
)

// PhotoRepository implements domain.PhotoRepository using SQLite.
type PhotoRepository struct {
	db *sql.DB
}

// NewPhotoRepository creates a new SQLite-backed PhotoRepository.
func NewPhotoRepository(db *DB) *PhotoRepository {
	return &PhotoRepository{db: db.SqlDB}
}

func (r *PhotoRepository) Create(ctx context.Context, photo *domain.Photo) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO photos (id, owner_id, title, object_key, content_type, size_bytes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		photo.ID, photo.OwnerID, photo.Title, photo.ObjectKey, photo.ContentType, photo.SizeBytes, now,
	)
	if err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	photo.CreatedAt = now
	return nil
}

func (r *PhotoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	p := &domain.Photo{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, title, object_key, content_type, size_bytes, created_at
		 FROM photos WHERE id = ?`, id,
	).Scan(&p.ID, &p.OwnerID, &p.Title, &p.ObjectKey, &p.ContentType, &p.SizeBytes, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query photo by id: %w", err)
	}
	return p, nil
}

func (r *PhotoRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Photo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, title, object_key, content_type, size_bytes, created_at
		 FROM photos WHERE owner_id = ? ORDER BY created_at DESC, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var photos []domain.Photo
	for rows.Next() {
		var p domain.Photo
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.ObjectKey, &p.ContentType, &p.SizeBytes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *PhotoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM photos WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
