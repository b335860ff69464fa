package handler

import (
	"net/http"
	"time"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/service"
)

// ShareHandler handles album sharing and public link HTTP requests.
type ShareHandler struct {
	sharing *service.SharingService
	links   *service.PublicLinkService
	photos  *service.PhotoService
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(sharing *service.SharingService, links *service.PublicLinkService, photos *service.PhotoService) *ShareHandler {
	return &ShareHandler{sharing: sharing, links: links, photos: photos}
}

// HandleShare grants a collaborator view or edit access to an album.
// POST /api/albums/{id}/shares
// Request:  {"username":"..."} or {"email":"..."}, plus {"permission":"view"|"edit"}
// Response: {"album": {...}}
func (h *ShareHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req struct {
		Username   string `json:"username"`
		Email      string `json:"email"`
		Permission string `json:"permission"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	album, err := h.sharing.Share(r.Context(), r.PathValue("id"), principal,
		service.ShareTarget{Username: req.Username, Email: req.Email},
		domain.Permission(req.Permission))
	if err != nil {
		writeDomainError(w, err, "share album")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"album": toAlbumDTO(album, true),
	})
}

// HandleUnshare removes a collaborator from an album.
// DELETE /api/albums/{id}/shares
// Request: {"username":"..."} or {"email":"..."}
func (h *ShareHandler) HandleUnshare(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	album, err := h.sharing.Unshare(r.Context(), r.PathValue("id"), principal,
		service.ShareTarget{Username: req.Username, Email: req.Email})
	if err != nil {
		writeDomainError(w, err, "unshare album")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"album": toAlbumDTO(album, true),
	})
}

// HandleGenerateLink mints (or rotates) an album's public link.
// POST /api/albums/{id}/public-link
// Request:  {"expiresAt":"2026-01-02T15:04:05Z"} (optional)
// Response: {"token":"...","expiresAt":"..."}
func (h *ShareHandler) HandleGenerateLink(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req struct {
		ExpiresAt string `json:"expiresAt"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	var expiresAt *time.Time
	if req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "expiresAt must be RFC 3339.")
			return
		}
		expiresAt = &t
	}

	link, err := h.links.Generate(r.Context(), r.PathValue("id"), principal, expiresAt)
	if err != nil {
		writeDomainError(w, err, "generate public link")
		return
	}

	resp := map[string]any{"token": link.Token}
	if link.ExpiresAt != nil {
		resp["expiresAt"] = link.ExpiresAt.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusCreated, resp)
}

// HandleRevokeLink revokes an album's public access.
// DELETE /api/albums/{id}/public-link
func (h *ShareHandler) HandleRevokeLink(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	if err := h.links.Revoke(r.Context(), r.PathValue("id"), principal); err != nil {
		writeDomainError(w, err, "revoke public link")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleResolvePublic returns the anonymous read-only view of a public album.
// GET /api/public/albums/{token}
func (h *ShareHandler) HandleResolvePublic(w http.ResponseWriter, r *http.Request) {
	album, err := h.links.Resolve(r.Context(), r.PathValue("token"))
	if err != nil {
		writeDomainError(w, err, "resolve public album")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"album": toPublicAlbumDTO(album),
	})
}

// HandlePublicPhotoURL returns a presigned download URL for a photo in a
// public album; the token is the only credential.
// GET /api/public/albums/{token}/photos/{photoID}/url
func (h *ShareHandler) HandlePublicPhotoURL(w http.ResponseWriter, r *http.Request) {
	ttl := clampTTL(r.URL.Query().Get("ttl"))

	url, err := h.photos.PublicPhotoURL(r.Context(), r.PathValue("token"), r.PathValue("photoID"), ttl)
	if err != nil {
		writeDomainError(w, err, "public photo url")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"url":       url,
		"expiresAt": time.Now().Add(ttl).UTC().Format(time.RFC3339),
	})
}
