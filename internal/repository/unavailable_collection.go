package repository

import (
	"context"

	"atelier/internal/storage"

	"github.com/google/uuid"
)

// Unavailable stands in for a store whose coordinates are missing or still
// placeholders. Every call fails with storage.ErrStoreUnavailable.
type Unavailable[T Record, I Shape, U Shape] struct {
	table  string
	reason error
}

func NewUnavailable[T Record, I Shape, U Shape](table string, reason error) *Unavailable[T, I, U] {
	return &Unavailable[T, I, U]{table: table, reason: reason}
}

func (u *Unavailable[T, I, U]) fail(method string) error {
	return wrap("repository.Unavailable("+u.table+")."+method, storage.ErrStoreUnavailable, u.reason)
}

func (u *Unavailable[T, I, U]) List(context.Context, Filter) ([]T, error) {
	return nil, u.fail("List")
}

func (u *Unavailable[T, I, U]) GetByID(context.Context, uuid.UUID) (T, error) {
	var zero T
	return zero, u.fail("GetByID")
}

func (u *Unavailable[T, I, U]) Create(context.Context, I) (T, error) {
	var zero T
	return zero, u.fail("Create")
}

func (u *Unavailable[T, I, U]) Update(context.Context, uuid.UUID, U) (T, error) {
	var zero T
	return zero, u.fail("Update")
}

func (u *Unavailable[T, I, U]) Delete(context.Context, uuid.UUID) error {
	return u.fail("Delete")
}

func (u *Unavailable[T, I, U]) Count(context.Context) (int, error) {
	return 0, u.fail("Count")
}
