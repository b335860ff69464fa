package domain

import "time"

// Permission is the level a collaborator is granted on an album.
type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

// Valid reports whether p is a known permission value.
func (p Permission) Valid() bool {
	return p == PermissionView || p == PermissionEdit
}

// SharePrincipal identifies who an album is shared with: a registered user
// by id, or an invitee known only by email until that email registers.
// Exactly one field is set; use the constructors.
type SharePrincipal struct {
	UserID string
	Email  string
}

// PrincipalByID keys a share to a registered user.
func PrincipalByID(userID string) SharePrincipal {
	return SharePrincipal{UserID: userID}
}

// PrincipalByEmail keys a share to an email that has not registered yet.
func PrincipalByEmail(email string) SharePrincipal {
	return SharePrincipal{Email: email}
}

// Same reports whether two share principals are the same identity:
// matching non-empty user ids, or, when neither carries a user id,
// matching emails.
func (p SharePrincipal) Same(o SharePrincipal) bool {
	if p.UserID != "" || o.UserID != "" {
		return p.UserID != "" && p.UserID == o.UserID
	}
	return p.Email != "" && p.Email == o.Email
}

// ShareEntry is a single collaborator grant attached to an album.
type ShareEntry struct {
	Principal  SharePrincipal
	Permission Permission
	SharedAt   time.Time
}
