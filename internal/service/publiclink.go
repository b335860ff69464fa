package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
)

// tokenRetryLimit bounds regeneration attempts when a freshly minted token
// collides with another album's. Hitting the limit means either bad
// randomness or a pathological number of existing tokens.
const tokenRetryLimit = 3

// PublicLinkService mints, rotates, and revokes album public links, and
// resolves anonymous access by token.
type PublicLinkService struct {
	albums domain.AlbumRepository
}

// NewPublicLinkService creates a new PublicLinkService.
func NewPublicLinkService(albums domain.AlbumRepository) *PublicLinkService {
	return &PublicLinkService{albums: albums}
}

// Generate mints a fresh public token for an album and marks it public.
// Owner only. Calling it on an already-public album rotates the token: the
// previous value stops resolving. A past expiresAt is accepted; the link is
// simply inert until rotated or revoked.
func (s *PublicLinkService) Generate(ctx context.Context, albumID string, requester domain.Principal, expiresAt *time.Time) (*domain.PublicLink, error) {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireAccess(album, requester, domain.AccessOwner, time.Now().UTC()); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < tokenRetryLimit; attempt++ {
		token, err := generatePublicToken()
		if err != nil {
			return nil, err
		}

		link := domain.PublicLink{Token: token, ExpiresAt: expiresAt}
		err = s.albums.SetPublicLink(ctx, albumID, link)
		if errors.Is(err, domain.ErrTokenCollision) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &link, nil
	}
	return nil, fmt.Errorf("%w: exhausted %d attempts", domain.ErrTokenCollision, tokenRetryLimit)
}

// Revoke clears an album's public flag, token, and expiry. Owner only.
// Revoking an album that is not public is a no-op success.
func (s *PublicLinkService) Revoke(ctx context.Context, albumID string, requester domain.Principal) error {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return err
	}
	if err := domain.RequireAccess(album, requester, domain.AccessOwner, time.Now().UTC()); err != nil {
		return err
	}
	return s.albums.ClearPublicLink(ctx, albumID)
}

// Resolve is the anonymous entry point: it returns the album holding the
// token, or ErrNotFound when no album does, when public access has been
// revoked, or when the link has expired. The three cases are deliberately
// indistinguishable so probing a token reveals nothing. The returned view
// never includes the collaborator list.
func (s *PublicLinkService) Resolve(ctx context.Context, token string) (*domain.Album, error) {
	if token == "" {
		return nil, domain.ErrNotFound
	}

	album, err := s.albums.GetByPublicToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !album.PubliclyVisible(time.Now().UTC()) {
		return nil, domain.ErrNotFound
	}

	album.SharedWith = nil
	return album, nil
}

func generatePublicToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate public token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
