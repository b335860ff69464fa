package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AkhilSaiLatchireddi/photo-vault-sub000/internal/domain"
)

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// readJSON decodes the request body into the given destination.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeDomainError maps a domain error to an HTTP response. Anything that
// is not a known domain error is logged and reported as a 500 without
// leaking details. NotFound deliberately covers masked cases (revoked or
// expired public links, albums hidden from the caller) with the same
// generic message.
func writeDomainError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "This album or photo is not available.")
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "No such user.")
	case errors.Is(err, domain.ErrNotOwner):
		writeError(w, http.StatusForbidden, "Only the album owner may do this.")
	case errors.Is(err, domain.ErrInsufficientPermission):
		writeError(w, http.StatusForbidden, "You do not have permission to modify this album.")
	case errors.Is(err, domain.ErrPhotoNotOwned):
		writeError(w, http.StatusUnprocessableEntity, "That photo does not belong to the album owner.")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "An account with that email already exists.")
	case errors.Is(err, domain.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, "That username is taken.")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "The album was modified concurrently; please retry.")
	default:
		slog.Error(logMsg, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
	}
}
