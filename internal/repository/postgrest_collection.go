package repository

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/storage"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

const returnRepresentation = "representation"

// RestCollection is the Supabase (PostgREST) implementation of
// CollectionRepository.
//
// postgrest-go does not take a context; ctx is only checked before the call.
type RestCollection[T Record, I Shape, U Shape] struct {
	client *supabase.Client
	schema Schema[T]
	now    func() time.Time
}

func NewRestCollection[T Record, I Shape, U Shape](client *supabase.Client, schema Schema[T]) *RestCollection[T, I, U] {
	return &RestCollection[T, I, U]{
		client: client,
		schema: schema,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *RestCollection[T, I, U]) op(method string) string {
	return "repository.RestCollection(" + r.schema.Table + ")." + method
}

func (r *RestCollection[T, I, U]) List(ctx context.Context, filter Filter) ([]T, error) {
	op := r.op("List")

	if err := ctx.Err(); err != nil {
		return nil, wrap(op, storage.ErrStoreUnavailable, err)
	}

	query := r.client.From(r.schema.Table).Select("*", "", false)
	for column, value := range filter {
		query = query.Eq(column, fmt.Sprint(value))
	}
	for _, o := range r.schema.OrderBy {
		query = query.Order(o.Column, &postgrest.OrderOpts{Ascending: !o.Desc})
	}

	items := make([]T, 0)
	if _, err := query.ExecuteTo(&items); err != nil {
		return nil, classifyPostgREST(op, err)
	}

	return items, nil
}

func (r *RestCollection[T, I, U]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	op := r.op("GetByID")

	var zero T
	if err := ctx.Err(); err != nil {
		return zero, wrap(op, storage.ErrStoreUnavailable, err)
	}

	var rows []T
	_, err := r.client.From(r.schema.Table).
		Select("*", "", false).
		Eq("id", id.String()).
		ExecuteTo(&rows)
	if err != nil {
		return zero, classifyPostgREST(op, err)
	}

	return r.single(op, id, rows)
}

func (r *RestCollection[T, I, U]) Create(ctx context.Context, in I) (T, error) {
	op := r.op("Create")

	var zero T
	if err := ctx.Err(); err != nil {
		return zero, wrap(op, storage.ErrStoreUnavailable, err)
	}

	var rows []T
	_, err := r.client.From(r.schema.Table).
		Insert(in.Fields(), false, "", returnRepresentation, "").
		ExecuteTo(&rows)
	if err != nil {
		return zero, classifyPostgREST(op, err)
	}

	if len(rows) == 0 {
		return zero, wrap(op, storage.ErrStoreUnavailable, fmt.Errorf("insert returned no rows"))
	}

	return rows[0], nil
}

func (r *RestCollection[T, I, U]) Update(ctx context.Context, id uuid.UUID, patch U) (T, error) {
	op := r.op("Update")

	var zero T
	if err := ctx.Err(); err != nil {
		return zero, wrap(op, storage.ErrStoreUnavailable, err)
	}

	// the store trigger sets the final value; the stamp sent here only has
	// to move past the stored one, so an empty patch still issues an UPDATE
	stamp, err := r.nextStamp(op, id)
	if err != nil {
		return zero, err
	}

	fields := patch.Fields()
	fields["updated_at"] = stamp.Format(time.RFC3339Nano)

	var rows []T
	_, err = r.client.From(r.schema.Table).
		Update(fields, returnRepresentation, "").
		Eq("id", id.String()).
		ExecuteTo(&rows)
	if err != nil {
		return zero, classifyPostgREST(op, err)
	}

	return r.single(op, id, rows)
}

func (r *RestCollection[T, I, U]) Delete(ctx context.Context, id uuid.UUID) error {
	op := r.op("Delete")

	if err := ctx.Err(); err != nil {
		return wrap(op, storage.ErrStoreUnavailable, err)
	}

	var rows []T
	_, err := r.client.From(r.schema.Table).
		Delete(returnRepresentation, "").
		Eq("id", id.String()).
		ExecuteTo(&rows)
	if err != nil {
		return classifyPostgREST(op, err)
	}

	if len(rows) == 0 {
		return wrap(op, storage.ErrNotFound, fmt.Errorf("id %s", id))
	}

	return nil
}

// Count issues the head/exact-count request used by the connectivity probe.
func (r *RestCollection[T, I, U]) Count(ctx context.Context) (int, error) {
	op := r.op("Count")

	if err := ctx.Err(); err != nil {
		return 0, wrap(op, storage.ErrStoreUnavailable, err)
	}

	_, count, err := r.client.From(r.schema.Table).
		Select("id", "exact", true).
		Execute()
	if err != nil {
		return 0, classifyPostgREST(op, err)
	}

	return int(count), nil
}

// nextStamp is max(now, stored updated_at + 1µs) for the row.
func (r *RestCollection[T, I, U]) nextStamp(op string, id uuid.UUID) (time.Time, error) {
	var rows []struct {
		UpdatedAt time.Time `json:"updated_at"`
	}
	_, err := r.client.From(r.schema.Table).
		Select("updated_at", "", false).
		Eq("id", id.String()).
		ExecuteTo(&rows)
	if err != nil {
		return time.Time{}, classifyPostgREST(op, err)
	}
	if len(rows) == 0 {
		return time.Time{}, wrap(op, storage.ErrNotFound, fmt.Errorf("id %s", id))
	}

	stamp := r.now()
	if next := rows[0].UpdatedAt.Add(time.Microsecond); next.After(stamp) {
		stamp = next
	}
	return stamp.UTC(), nil
}

func (r *RestCollection[T, I, U]) single(op string, id uuid.UUID, rows []T) (T, error) {
	var zero T
	if len(rows) == 0 {
		return zero, wrap(op, storage.ErrNotFound, fmt.Errorf("id %s", id))
	}
	return rows[0], nil
}
