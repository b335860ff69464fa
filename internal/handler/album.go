package handler

import (
	"net/http"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/service"
)

// AlbumHandler handles album CRUD and membership HTTP requests.
type AlbumHandler struct {
	albums     *service.AlbumService
	membership *service.MembershipService
}

// NewAlbumHandler creates a new AlbumHandler.
func NewAlbumHandler(albums *service.AlbumService, membership *service.MembershipService) *AlbumHandler {
	return &AlbumHandler{albums: albums, membership: membership}
}

// HandleCreate creates a new album for the caller.
// POST /api/albums
// Request:  {"title":"...","description":"..."}
// Response: {"album": {...}}
func (h *AlbumHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	album, err := h.albums.Create(r.Context(), principal, req.Title, req.Description)
	if err != nil {
		writeDomainError(w, err, "create album")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"album": toAlbumDTO(album, true),
	})
}

// HandleList returns the caller's own albums.
// GET /api/albums
func (h *AlbumHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	albums, err := h.albums.ListOwned(r.Context(), principal)
	if err != nil {
		writeDomainError(w, err, "list albums")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"albums": toAlbumDTOs(albums, true),
	})
}

// HandleListShared returns albums shared with the caller.
// GET /api/albums/shared
func (h *AlbumHandler) HandleListShared(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	albums, err := h.albums.ListSharedWith(r.Context(), principal)
	if err != nil {
		writeDomainError(w, err, "list shared albums")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"albums": toAlbumDTOs(albums, false),
	})
}

// HandleGet returns one album the caller can at least view.
// GET /api/albums/{id}
func (h *AlbumHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	album, err := h.albums.Get(r.Context(), r.PathValue("id"), principal)
	if err != nil {
		writeDomainError(w, err, "get album")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"album": toAlbumDTO(album, album.OwnerID == principal.UserID),
	})
}

// HandleUpdate changes an album's title and description.
// PATCH /api/albums/{id}
// Request: {"title":"...","description":"..."}
func (h *AlbumHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	album, err := h.albums.Update(r.Context(), r.PathValue("id"), principal, req.Title, req.Description)
	if err != nil {
		writeDomainError(w, err, "update album")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"album": toAlbumDTO(album, true),
	})
}

// HandleDelete removes an album. The photos it referenced remain.
// DELETE /api/albums/{id}
func (h *AlbumHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	if err := h.albums.Delete(r.Context(), r.PathValue("id"), principal); err != nil {
		writeDomainError(w, err, "delete album")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleAddPhoto adds a photo to the album's membership set.
// PUT /api/albums/{id}/photos/{photoID}
func (h *AlbumHandler) HandleAddPhoto(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	err := h.membership.AddPhoto(r.Context(), r.PathValue("id"), principal, r.PathValue("photoID"))
	if err != nil {
		writeDomainError(w, err, "add photo to album")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRemovePhoto removes a photo from the album's membership set.
// DELETE /api/albums/{id}/photos/{photoID}
func (h *AlbumHandler) HandleRemovePhoto(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	err := h.membership.RemovePhoto(r.Context(), r.PathValue("id"), principal, r.PathValue("photoID"))
	if err != nil {
		writeDomainError(w, err, "remove photo from album")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toAlbumDTOs(albums []domain.Album, viewerIsOwner bool) []AlbumDTO {
	dtos := make([]AlbumDTO, 0, len(albums))
	for i := range albums {
		dtos = append(dtos, toAlbumDTO(&albums[i], viewerIsOwner))
	}
	return dtos
}
