package domain

import (
	"context"
	"time"
)

// PublicLink is the current public-access credential of an album. Token and
// expiry are always replaced as a unit; rotating the link discards the old
// value rather than keeping a history.
type PublicLink struct {
	Token     string
	ExpiresAt *time.Time // nil means the token never expires
}

// Album is the central aggregate: an owner's ordered photo membership set
// plus its sharing and public-access state.
type Album struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	IsPublic    bool
	PublicLink  *PublicLink // nil until a token has been minted
	PhotoIDs    []string
	SharedWith  []ShareEntry
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PubliclyVisible reports whether anonymous access through the public link
// is currently allowed: the public flag is set, a token exists, and the
// expiry, if any, has not passed. A stored token with the flag cleared, or
// with a past expiry, grants nothing.
func (a *Album) PubliclyVisible(now time.Time) bool {
	if !a.IsPublic || a.PublicLink == nil {
		return false
	}
	if a.PublicLink.ExpiresAt != nil && !a.PublicLink.ExpiresAt.After(now) {
		return false
	}
	return true
}

// HasPhoto reports whether photoID is in the album's membership set.
func (a *Album) HasPhoto(photoID string) bool {
	for _, id := range a.PhotoIDs {
		if id == photoID {
			return true
		}
	}
	return false
}

// AlbumRepository defines persistence operations for albums. Every mutation
// is a single conditional write against one album row so that concurrent
// requests cannot violate the album's invariants.
type AlbumRepository interface {
	Create(ctx context.Context, album *Album) error
	GetByID(ctx context.Context, id string) (*Album, error)

	// GetByPublicToken looks up an album by exact token match regardless of
	// the public flag or expiry; callers gate access via PubliclyVisible.
	GetByPublicToken(ctx context.Context, token string) (*Album, error)

	ListByOwner(ctx context.Context, ownerID string) ([]Album, error)
	ListSharedWith(ctx context.Context, userID, email string) ([]Album, error)
	UpdateDetails(ctx context.Context, id, title, description string) error
	Delete(ctx context.Context, id string) error

	// AppendShare adds entry unless an entry for the same principal identity
	// already exists. Returns true when a row was actually inserted; a
	// duplicate is reported as (false, nil).
	AppendShare(ctx context.Context, albumID string, entry ShareEntry) (bool, error)

	// RemoveShare deletes the entry matching the principal identity.
	// Returns true when a row was actually removed.
	RemoveShare(ctx context.Context, albumID string, principal SharePrincipal) (bool, error)

	// SetPublicLink marks the album public and replaces its link in one
	// write. Returns ErrTokenCollision when another album already holds the
	// token.
	SetPublicLink(ctx context.Context, albumID string, link PublicLink) error

	// ClearPublicLink clears the public flag, token, and expiry.
	ClearPublicLink(ctx context.Context, albumID string) error

	// AddPhoto appends photoID to the membership set. Returns true when a
	// row was actually inserted; an already-present photo is (false, nil).
	AddPhoto(ctx context.Context, albumID, photoID string) (bool, error)

	// RemovePhoto removes photoID from the membership set. Returns true
	// when a row was actually removed.
	RemovePhoto(ctx context.Context, albumID, photoID string) (bool, error)
}
