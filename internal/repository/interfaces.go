package repository

import (
	"context"

	"atelier/internal/domain/models"

	"github.com/google/uuid"
)

// Record is a stored entity with a store-assigned identifier.
type Record interface {
	Key() uuid.UUID
}

// Shape is an insert or partial-update payload. Fields returns the columns
// it sets; a partial update returns only the columns that were supplied.
type Shape interface {
	Fields() map[string]any
}

// Filter is a set of column equality predicates.
type Filter map[string]any

// CollectionRepository is the store contract shared by every entity.
// Errors wrap storage.ErrNotFound, storage.ErrValidationRejected or
// storage.ErrStoreUnavailable.
type CollectionRepository[T Record, I Shape, U Shape] interface {
	List(ctx context.Context, filter Filter) ([]T, error)
	GetByID(ctx context.Context, id uuid.UUID) (T, error)
	Create(ctx context.Context, in I) (T, error)
	Update(ctx context.Context, id uuid.UUID, patch U) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}

type PaintingRepository = CollectionRepository[models.Painting, models.PaintingInsert, models.PaintingUpdate]

type PageRepository = CollectionRepository[models.Page, models.PageInsert, models.PageUpdate]

type SettingRepository = CollectionRepository[models.Setting, models.SettingInsert, models.SettingUpdate]
