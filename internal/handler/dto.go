package handler

import (
	"time"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// ShareEntryDTO is the JSON representation of a collaborator grant.
// Exactly one of userId/email is set.
type ShareEntryDTO struct {
	UserID     string `json:"userId,omitempty"`
	Email      string `json:"email,omitempty"`
	Permission string `json:"permission"`
	SharedAt   string `json:"sharedAt"`
}

// AlbumDTO is the JSON representation of an album. The collaborator list
// and public link details are only present for the owner.
type AlbumDTO struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"ownerId"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	IsPublic        bool            `json:"isPublic"`
	PublicToken     string          `json:"publicToken,omitempty"`
	PublicExpiresAt string          `json:"publicExpiresAt,omitempty"`
	PhotoIDs        []string        `json:"photoIds"`
	SharedWith      []ShareEntryDTO `json:"sharedWith,omitempty"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

func toAlbumDTO(a *domain.Album, viewerIsOwner bool) AlbumDTO {
	dto := AlbumDTO{
		ID:          a.ID,
		OwnerID:     a.OwnerID,
		Title:       a.Title,
		Description: a.Description,
		IsPublic:    a.IsPublic,
		PhotoIDs:    a.PhotoIDs,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   a.UpdatedAt.Format(time.RFC3339),
	}
	if dto.PhotoIDs == nil {
		dto.PhotoIDs = []string{}
	}
	if !viewerIsOwner {
		return dto
	}

	if a.PublicLink != nil {
		dto.PublicToken = a.PublicLink.Token
		if a.PublicLink.ExpiresAt != nil {
			dto.PublicExpiresAt = a.PublicLink.ExpiresAt.Format(time.RFC3339)
		}
	}
	for _, e := range a.SharedWith {
		dto.SharedWith = append(dto.SharedWith, ShareEntryDTO{
			UserID:     e.Principal.UserID,
			Email:      e.Principal.Email,
			Permission: string(e.Permission),
			SharedAt:   e.SharedAt.Format(time.RFC3339),
		})
	}
	return dto
}

// PublicAlbumDTO is the read-only anonymous view of a public album: no
// owner identity, no collaborator list, no mutation capability.
type PublicAlbumDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PhotoIDs    []string `json:"photoIds"`
}

func toPublicAlbumDTO(a *domain.Album) PublicAlbumDTO {
	dto := PublicAlbumDTO{
		Title:       a.Title,
		Description: a.Description,
		PhotoIDs:    a.PhotoIDs,
	}
	if dto.PhotoIDs == nil {
		dto.PhotoIDs = []string{}
	}
	return dto
}

// PhotoDTO is the JSON representation of a photo record.
type PhotoDTO struct {
	ID          string `json:"id"`
	OwnerID     string `json:"ownerId"`
	Title       string `json:"title"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
	CreatedAt   string `json:"createdAt"`
}

func toPhotoDTO(p *domain.Photo) PhotoDTO {
	return PhotoDTO{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		ContentType: p.ContentType,
		SizeBytes:   p.SizeBytes,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
