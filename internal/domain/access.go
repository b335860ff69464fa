package domain

import "time"

// Principal is a verified caller identity supplied by the auth layer.
// Anonymous requests carry the zero value.
type Principal struct {
	UserID string
	Email  string
}

// AccessLevel orders what a caller may do with an album. Higher levels
// imply all lower ones.
type AccessLevel int

const (
	AccessNone AccessLevel = iota
	AccessView
	AccessEdit
	AccessOwner
)

func (l AccessLevel) String() string {
	switch l {
	case AccessView:
		return "view"
	case AccessEdit:
		return "edit"
	case AccessOwner:
		return "owner"
	default:
		return "none"
	}
}

// AtLeast reports whether the level grants everything min does.
func (l AccessLevel) AtLeast(min AccessLevel) bool {
	return l >= min
}

// Evaluate computes the caller's access to an album, most privileged match
// first: owner, then a share entry for the caller's user id, then an
// email-keyed entry for the caller's email, then the public link (which
// never grants more than view). Pure function; callers must re-evaluate
// against fresh state on every request rather than caching the result.
func Evaluate(album *Album, p Principal, now time.Time) AccessLevel {
	if p.UserID != "" && p.UserID == album.OwnerID {
		return AccessOwner
	}
	if p.UserID != "" {
		for _, e := range album.SharedWith {
			if e.Principal.UserID == p.UserID {
				return e.Permission.level()
			}
		}
	}
	if p.Email != "" {
		for _, e := range album.SharedWith {
			if e.Principal.UserID == "" && e.Principal.Email == p.Email {
				return e.Permission.level()
			}
		}
	}
	if album.PubliclyVisible(now) {
		return AccessView
	}
	return AccessNone
}

// RequireAccess evaluates the caller's level and returns a typed error when
// it falls short of min: ErrNotOwner for owner-only operations,
// ErrInsufficientPermission otherwise.
func RequireAccess(album *Album, p Principal, min AccessLevel, now time.Time) error {
	if Evaluate(album, p, now).AtLeast(min) {
		return nil
	}
	if min == AccessOwner {
		return ErrNotOwner
	}
	return ErrInsufficientPermission
}

func (p Permission) level() AccessLevel {
	if p == PermissionEdit {
		return AccessEdit
	}
	return AccessView
}
