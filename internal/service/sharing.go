package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
)

// ShareTarget names who an album should be shared with, by username or by
// email. Exactly one field is set.
type ShareTarget struct {
	Username string
	Email    string
}

// SharingService grants and revokes collaborator access to albums.
type SharingService struct {
	albums domain.AlbumRepository
	users  domain.UserRepository
}

// NewSharingService creates a new SharingService.
func NewSharingService(albums domain.AlbumRepository, users domain.UserRepository) *SharingService {
	return &SharingService{albums: albums, users: users}
}

// Share grants the target view or edit access to an album. Owner only.
// Sharing with a principal that already has an entry is a no-op success;
// the existing entry and its permission are kept.
func (s *SharingService) Share(ctx context.Context, albumID string, requester domain.Principal, target ShareTarget, permission domain.Permission) (*domain.Album, error) {
	if !permission.Valid() {
		return nil, fmt.Errorf("%w: unknown permission %q", domain.ErrInvalidInput, permission)
	}

	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireAccess(album, requester, domain.AccessOwner, time.Now().UTC()); err != nil {
		return nil, err
	}

	principal, err := s.resolveTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	if principal.UserID == album.OwnerID {
		return nil, fmt.Errorf("%w: cannot share an album with its owner", domain.ErrInvalidInput)
	}

	entry := domain.ShareEntry{
		Principal:  principal,
		Permission: permission,
		SharedAt:   time.Now().UTC(),
	}
	// A concurrent duplicate lands on the unique index and reports
	// (false, nil); both callers observe success with one stored entry.
	if _, err := s.albums.AppendShare(ctx, albumID, entry); err != nil {
		return nil, fmt.Errorf("append share: %w", err)
	}

	return s.albums.GetByID(ctx, albumID)
}

// Unshare removes the target's entry from an album. Owner only. Removing a
// principal that has no entry is a no-op success.
func (s *SharingService) Unshare(ctx context.Context, albumID string, requester domain.Principal, target ShareTarget) (*domain.Album, error) {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireAccess(album, requester, domain.AccessOwner, time.Now().UTC()); err != nil {
		return nil, err
	}

	principals, err := s.resolveUnshareTargets(ctx, target)
	if err != nil {
		return nil, err
	}

	for _, principal := range principals {
		if _, err := s.albums.RemoveShare(ctx, albumID, principal); err != nil {
			return nil, fmt.Errorf("remove share: %w", err)
		}
	}

	return s.albums.GetByID(ctx, albumID)
}

// resolveTarget turns a share target into a share principal. A username
// must belong to a registered user. An email belonging to a registered
// user collapses to that user's id, so sharing by email or by username
// yields the same identity; an unknown email stays email-keyed until that
// email registers.
func (s *SharingService) resolveTarget(ctx context.Context, target ShareTarget) (domain.SharePrincipal, error) {
	switch {
	case target.Username != "" && target.Email != "":
		return domain.SharePrincipal{}, fmt.Errorf("%w: specify a username or an email, not both", domain.ErrInvalidInput)
	case target.Username != "":
		user, err := s.users.GetByUsername(ctx, target.Username)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.SharePrincipal{}, domain.ErrUserNotFound
			}
			return domain.SharePrincipal{}, fmt.Errorf("resolve username: %w", err)
		}
		return domain.PrincipalByID(user.ID), nil
	case target.Email != "":
		if _, err := mail.ParseAddress(target.Email); err != nil {
			return domain.SharePrincipal{}, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
		}
		user, err := s.users.GetByEmail(ctx, target.Email)
		if err == nil {
			return domain.PrincipalByID(user.ID), nil
		}
		if errors.Is(err, domain.ErrNotFound) {
			return domain.PrincipalByEmail(target.Email), nil
		}
		return domain.SharePrincipal{}, fmt.Errorf("resolve email: %w", err)
	default:
		return domain.SharePrincipal{}, fmt.Errorf("%w: a username or email is required", domain.ErrInvalidInput)
	}
}

// resolveUnshareTargets lists every stored identity the target could be
// keyed under. A grant made by email before that address registered stays
// email-keyed, so revoking a registered user must clear both their user-id
// entry and any entry still keyed by their email.
func (s *SharingService) resolveUnshareTargets(ctx context.Context, target ShareTarget) ([]domain.SharePrincipal, error) {
	switch {
	case target.Username != "" && target.Email != "":
		return nil, fmt.Errorf("%w: specify a username or an email, not both", domain.ErrInvalidInput)
	case target.Username != "":
		user, err := s.users.GetByUsername(ctx, target.Username)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, fmt.Errorf("resolve username: %w", err)
		}
		return []domain.SharePrincipal{
			domain.PrincipalByID(user.ID),
			domain.PrincipalByEmail(user.Email),
		}, nil
	case target.Email != "":
		if _, err := mail.ParseAddress(target.Email); err != nil {
			return nil, fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
		}
		user, err := s.users.GetByEmail(ctx, target.Email)
		if err == nil {
			return []domain.SharePrincipal{
				domain.PrincipalByID(user.ID),
				domain.PrincipalByEmail(target.Email),
			}, nil
		}
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.SharePrincipal{domain.PrincipalByEmail(target.Email)}, nil
		}
		return nil, fmt.Errorf("resolve email: %w", err)
	default:
		return nil, fmt.Errorf("%w: a username or email is required", domain.ErrInvalidInput)
	}
}
