package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrNotOwner               = errors.New("not the album owner")
	ErrInsufficientPermission = errors.New("insufficient permission")
	ErrUserNotFound           = errors.New("user not found")
	ErrPhotoNotOwned          = errors.New("photo does not belong to the album owner")
	ErrTokenCollision         = errors.New("public token collision")
	ErrConflict               = errors.New("write conflict")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidInput           = errors.New("invalid input")
	ErrDuplicateEmail         = errors.New("email already exists")
	ErrDuplicateUsername      = errors.New("username already exists")
)
