package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
)

// AlbumRepository implements domain.AlbumRepository using SQLite. Every
// mutation is a single statement (or one statement plus an updated_at
// touch in the same transaction), so concurrent requests against the same
// album settle through the database's unique indexes rather than locks.
type AlbumRepository struct {
	db *sql.DB
}

// NewAlbumRepository creates a new SQLite-backed AlbumRepository.
func NewAlbumRepository(db *DB) *AlbumRepository {
	return &AlbumRepository{db: db.SqlDB}
}

func (r *AlbumRepository) Create(ctx context.Context, album *domain.Album) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO albums (id, owner_id, title, description, is_public, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?)`,
		album.ID, album.OwnerID, album.Title, album.Description, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert album: %w", err)
	}
	album.IsPublic = false
	album.CreatedAt = now
	album.UpdatedAt = now
	return nil
}

func (r *AlbumRepository) GetByID(ctx context.Context, id string) (*domain.Album, error) {
	return r.getWhere(ctx, "id = ?", id)
}

func (r *AlbumRepository) GetByPublicToken(ctx context.Context, token string) (*domain.Album, error) {
	return r.getWhere(ctx, "public_token = ?", token)
}

func (r *AlbumRepository) getWhere(ctx context.Context, cond string, arg any) (*domain.Album, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, title, description, is_public, public_token, public_expires_at, created_at, updated_at
		 FROM albums WHERE `+cond, arg)

	album, err := scanAlbum(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query album: %w", err)
	}

	if err := r.hydrate(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

func (r *AlbumRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Album, error) {
	return r.listWhere(ctx,
		`SELECT id, owner_id, title, description, is_public, public_token, public_expires_at, created_at, updated_at
		 FROM albums WHERE owner_id = ? ORDER BY created_at DESC, id`, ownerID)
}

func (r *AlbumRepository) ListSharedWith(ctx context.Context, userID, email string) ([]domain.Album, error) {
	return r.listWhere(ctx,
		`SELECT DISTINCT a.id, a.owner_id, a.title, a.description, a.is_public, a.public_token, a.public_expires_at, a.created_at, a.updated_at
		 FROM albums a
		 JOIN album_shares s ON s.album_id = a.id
		 WHERE s.user_id = ? OR (s.user_id IS NULL AND s.email = ?)
		 ORDER BY a.created_at DESC, a.id`, userID, email)
}

func (r *AlbumRepository) listWhere(ctx context.Context, query string, args ...any) ([]domain.Album, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	var albums []domain.Album
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, *album)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range albums {
		if err := r.hydrate(ctx, &albums[i]); err != nil {
			return nil, err
		}
	}
	return albums, nil
}

func (r *AlbumRepository) UpdateDetails(ctx context.Context, id, title, description string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE albums SET title = ?, description = ?, updated_at = ? WHERE id = ?`,
		title, description, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	return requireRowAffected(result)
}

func (r *AlbumRepository) Delete(ctx context.Context, id string) error {
	// Share and membership rows cascade; photo records are untouched.
	result, err := r.db.ExecContext(ctx, "DELETE FROM albums WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	return requireRowAffected(result)
}

func (r *AlbumRepository) AppendShare(ctx context.Context, albumID string, entry domain.ShareEntry) (bool, error) {
	// The partial unique indexes on (album_id, user_id) and (album_id,
	// email) encode the principal identity rule; a duplicate append lands
	// on DO NOTHING and is reported as a no-op.
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO album_shares (album_id, user_id, email, permission, shared_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		albumID, nullString(entry.Principal.UserID), nullString(entry.Principal.Email),
		string(entry.Permission), entry.SharedAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("append share: %w", err)
	}
	return r.touchIfChanged(ctx, albumID, result)
}

func (r *AlbumRepository) RemoveShare(ctx context.Context, albumID string, principal domain.SharePrincipal) (bool, error) {
	var result sql.Result
	var err error
	if principal.UserID != "" {
		result, err = r.db.ExecContext(ctx,
			`DELETE FROM album_shares WHERE album_id = ? AND user_id = ?`,
			albumID, principal.UserID)
	} else {
		result, err = r.db.ExecContext(ctx,
			`DELETE FROM album_shares WHERE album_id = ? AND user_id IS NULL AND email = ?`,
			albumID, principal.Email)
	}
	if err != nil {
		return false, fmt.Errorf("remove share: %w", err)
	}
	return r.touchIfChanged(ctx, albumID, result)
}

func (r *AlbumRepository) SetPublicLink(ctx context.Context, albumID string, link domain.PublicLink) error {
	var expiresAt any
	if link.ExpiresAt != nil {
		expiresAt = link.ExpiresAt.UTC()
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE albums SET is_public = 1, public_token = ?, public_expires_at = ?, updated_at = ?
		 WHERE id = ?`,
		link.Token, expiresAt, time.Now().UTC(), albumID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrTokenCollision
		}
		return fmt.Errorf("set public link: %w", err)
	}
	return requireRowAffected(result)
}

func (r *AlbumRepository) ClearPublicLink(ctx context.Context, albumID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE albums SET is_public = 0, public_token = NULL, public_expires_at = NULL, updated_at = ?
		 WHERE id = ?`,
		time.Now().UTC(), albumID,
	)
	if err != nil {
		return fmt.Errorf("clear public link: %w", err)
	}
	return requireRowAffected(result)
}

func (r *AlbumRepository) AddPhoto(ctx context.Context, albumID, photoID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO album_photos (album_id, photo_id, added_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT DO NOTHING`,
		albumID, photoID, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("add photo to album: %w", err)
	}
	return r.touchIfChanged(ctx, albumID, result)
}

func (r *AlbumRepository) RemovePhoto(ctx context.Context, albumID, photoID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM album_photos WHERE album_id = ? AND photo_id = ?`,
		albumID, photoID,
	)
	if err != nil {
		return false, fmt.Errorf("remove photo from album: %w", err)
	}
	return r.touchIfChanged(ctx, albumID, result)
}

// hydrate loads the album's share entries and photo membership.
func (r *AlbumRepository) hydrate(ctx context.Context, album *domain.Album) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, email, permission, shared_at
		 FROM album_shares WHERE album_id = ? ORDER BY shared_at, id`, album.ID)
	if err != nil {
		return fmt.Errorf("list album shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID, email sql.NullString
		var permission string
		var entry domain.ShareEntry
		if err := rows.Scan(&userID, &email, &permission, &entry.SharedAt); err != nil {
			return fmt.Errorf("scan share entry: %w", err)
		}
		entry.Principal = domain.SharePrincipal{UserID: userID.String, Email: email.String}
		entry.Permission = domain.Permission(permission)
		album.SharedWith = append(album.SharedWith, entry)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	photoRows, err := r.db.QueryContext(ctx,
		`SELECT photo_id FROM album_photos WHERE album_id = ? ORDER BY added_at, photo_id`, album.ID)
	if err != nil {
		return fmt.Errorf("list album photos: %w", err)
	}
	defer photoRows.Close()

	for photoRows.Next() {
		var photoID string
		if err := photoRows.Scan(&photoID); err != nil {
			return fmt.Errorf("scan photo id: %w", err)
		}
		album.PhotoIDs = append(album.PhotoIDs, photoID)
	}
	return photoRows.Err()
}

// touchIfChanged bumps the album's updated_at when the preceding statement
// actually changed a row, and reports whether it did.
func (r *AlbumRepository) touchIfChanged(ctx context.Context, albumID string, result sql.Result) (bool, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return false, nil
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE albums SET updated_at = ? WHERE id = ?`, time.Now().UTC(), albumID); err != nil {
		return true, fmt.Errorf("touch album: %w", err)
	}
	return true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAlbum(row scanner) (*domain.Album, error) {
	album := &domain.Album{}
	var isPublic int
	var token sql.NullString
	var expiresAt sql.NullTime
	err := row.Scan(&album.ID, &album.OwnerID, &album.Title, &album.Description,
		&isPublic, &token, &expiresAt, &album.CreatedAt, &album.UpdatedAt)
	if err != nil {
		return nil, err
	}
	album.IsPublic = isPublic != 0
	if token.Valid {
		link := &domain.PublicLink{Token: token.String}
		if expiresAt.Valid {
			t := expiresAt.Time
			link.ExpiresAt = &t
		}
		album.PublicLink = link
	}
	return album, nil
}

func requireRowAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
