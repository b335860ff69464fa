package handler

import (
	"net/http"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	albums *service.AlbumService,
	sharing *service.SharingService,
	links *service.PublicLinkService,
	membership *service.MembershipService,
	photos *service.PhotoService,
) {
	authHandler := NewAuthHandler(auth)
	albumHandler := NewAlbumHandler(albums, membership)
	shareHandler := NewShareHandler(sharing, links, photos)
	photoHandler := NewPhotoHandler(photos)

	protected := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.Handle("GET /api/auth/me", protected(authHandler.HandleMe))

	mux.Handle("POST /api/albums", protected(albumHandler.HandleCreate))
	mux.Handle("GET /api/albums", protected(albumHandler.HandleList))
	mux.Handle("GET /api/albums/shared", protected(albumHandler.HandleListShared))
	// Reading a single album is auth-optional: an anonymous caller still
	// reaches an album whose public link is live, and everything else
	// stays masked as not found.
	mux.Handle("GET /api/albums/{id}", OptionalAuth(auth, http.HandlerFunc(albumHandler.HandleGet)))
	mux.Handle("PATCH /api/albums/{id}", protected(albumHandler.HandleUpdate))
	mux.Handle("DELETE /api/albums/{id}", protected(albumHandler.HandleDelete))

	mux.Handle("POST /api/albums/{id}/shares", protected(shareHandler.HandleShare))
	mux.Handle("DELETE /api/albums/{id}/shares", protected(shareHandler.HandleUnshare))
	mux.Handle("POST /api/albums/{id}/public-link", protected(shareHandler.HandleGenerateLink))
	mux.Handle("DELETE /api/albums/{id}/public-link", protected(shareHandler.HandleRevokeLink))

	mux.Handle("PUT /api/albums/{id}/photos/{photoID}", protected(albumHandler.HandleAddPhoto))
	mux.Handle("DELETE /api/albums/{id}/photos/{photoID}", protected(albumHandler.HandleRemovePhoto))
	mux.Handle("GET /api/albums/{id}/photos/{photoID}/url", OptionalAuth(auth, http.HandlerFunc(photoHandler.HandleAlbumPhotoURL)))

	// Anonymous: the token in the path is the credential.
	mux.HandleFunc("GET /api/public/albums/{token}", shareHandler.HandleResolvePublic)
	mux.HandleFunc("GET /api/public/albums/{token}/photos/{photoID}/url", shareHandler.HandlePublicPhotoURL)

	mux.Handle("POST /api/photos", protected(photoHandler.HandleRegisterUpload))
	mux.Handle("GET /api/photos", protected(photoHandler.HandleList))
	mux.Handle("GET /api/photos/{id}/url", protected(photoHandler.HandleDownloadURL))
	mux.Handle("DELETE /api/photos/{id}", protected(photoHandler.HandleDelete))
}
