package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/service"
)

// PhotoHandler handles photo upload registration and delivery requests.
type PhotoHandler struct {
	photos *service.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photos *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// HandleRegisterUpload creates a photo record and returns a presigned PUT
// URL the client uploads the bytes to.
// POST /api/photos
// Request:  {"title":"...","filename":"...","contentType":"image/jpeg","sizeBytes":123}
// Response: {"photo": {...}, "uploadUrl":"..."}
func (h *PhotoHandler) HandleRegisterUpload(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req struct {
		Title       string `json:"title"`
		Filename    string `json:"filename"`
		ContentType string `json:"contentType"`
		SizeBytes   int64  `json:"sizeBytes"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	photo, uploadURL, err := h.photos.RegisterUpload(r.Context(), principal, req.Title, req.Filename, req.ContentType, req.SizeBytes)
	if err != nil {
		writeDomainError(w, err, "register upload")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"photo":     toPhotoDTO(photo),
		"uploadUrl": uploadURL,
	})
}

// HandleList returns the caller's photos.
// GET /api/photos
func (h *PhotoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	photos, err := h.photos.List(r.Context(), principal)
	if err != nil {
		writeDomainError(w, err, "list photos")
		return
	}

	dtos := make([]PhotoDTO, 0, len(photos))
	for i := range photos {
		dtos = append(dtos, toPhotoDTO(&photos[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"photos": dtos})
}

// HandleDownloadURL returns a presigned GET URL for one of the caller's
// own photos.
// GET /api/photos/{id}/url?ttl=seconds
func (h *PhotoHandler) HandleDownloadURL(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())
	ttl := clampTTL(r.URL.Query().Get("ttl"))

	url, err := h.photos.DownloadURL(r.Context(), r.PathValue("id"), principal, ttl)
	if err != nil {
		writeDomainError(w, err, "photo download url")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"url":       url,
		"expiresAt": time.Now().Add(ttl).UTC().Format(time.RFC3339),
	})
}

// HandleAlbumPhotoURL returns a presigned GET URL for a photo through an
// album the caller can view.
// GET /api/albums/{id}/photos/{photoID}/url?ttl=seconds
func (h *PhotoHandler) HandleAlbumPhotoURL(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())
	ttl := clampTTL(r.URL.Query().Get("ttl"))

	url, err := h.photos.AlbumPhotoURL(r.Context(), r.PathValue("id"), r.PathValue("photoID"), principal, ttl)
	if err != nil {
		writeDomainError(w, err, "album photo url")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"url":       url,
		"expiresAt": time.Now().Add(ttl).UTC().Format(time.RFC3339),
	})
}

// HandleDelete removes a photo record and its stored object.
// DELETE /api/photos/{id}
func (h *PhotoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	if err := h.photos.Delete(r.Context(), r.PathValue("id"), principal); err != nil {
		writeDomainError(w, err, "delete photo")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// clampTTL parses an optional ttl query parameter in seconds, bounded to
// keep presigned URLs short-lived.
func clampTTL(raw string) time.Duration {
	ttl := 5 * time.Minute
	if raw == "" {
		return ttl
	}
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return ttl
	}
	if secs < 10 {
		secs = 10
	}
	if secs > 3000 {
		secs = 3000
	}
	return time.Duration(secs) * time.Second
}
