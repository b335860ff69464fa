package domain

import (
	"context"
	"time"
)

// Photo is an uploaded image. The bytes live in object storage under
// ObjectKey; this record only carries the reference and its owner.
type Photo struct {
	ID          string
	OwnerID     string
	Title       string
	ObjectKey   string
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
}

// PhotoRepository defines persistence operations for photo records.
type PhotoRepository interface {
	Create(ctx context.Context, photo *Photo) error
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Photo, error)
	Delete(ctx context.Context, id string) error
}
