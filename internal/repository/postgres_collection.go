package repository

import (
	"context"
	"fmt"
	"strings"

	"atelier/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PgCollection is the PostgreSQL implementation of CollectionRepository.
type PgCollection[T Record, I Shape, U Shape] struct {
	db     *pgxpool.Pool
	sb     sq.StatementBuilderType
	schema Schema[T]
}

func NewPgCollection[T Record, I Shape, U Shape](db *pgxpool.Pool, schema Schema[T]) *PgCollection[T, I, U] {
	return &PgCollection[T, I, U]{
		db:     db,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		schema: schema,
	}
}

func (r *PgCollection[T, I, U]) op(method string) string {
	return "repository.PgCollection(" + r.schema.Table + ")." + method
}

func (r *PgCollection[T, I, U]) returning() string {
	return "RETURNING " + strings.Join(r.schema.Columns, ", ")
}

// List возвращает записи коллекции, отфильтрованные и отсортированные
func (r *PgCollection[T, I, U]) List(ctx context.Context, filter Filter) ([]T, error) {
	op := r.op("List")

	queryBuilder := r.sb.Select(r.schema.Columns...).
		From(r.schema.Table).
		OrderBy(r.schema.orderTerms()...)

	if len(filter) > 0 {
		queryBuilder = queryBuilder.Where(sq.Eq(filter))
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, wrap(op, storage.ErrStoreUnavailable, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyPg(op, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := r.schema.Scan(rows)
		if err != nil {
			return nil, wrap(op, storage.ErrStoreUnavailable, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyPg(op, err)
	}

	return items, nil
}

// GetByID возвращает запись по ID
func (r *PgCollection[T, I, U]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	op := r.op("GetByID")

	var zero T

	query, args, err := r.sb.Select(r.schema.Columns...).
		From(r.schema.Table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return zero, wrap(op, storage.ErrStoreUnavailable, err)
	}

	item, err := r.schema.Scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return zero, classifyPg(op, err)
	}

	return item, nil
}

// Create вставляет запись и возвращает её вместе с полями, назначенными базой
func (r *PgCollection[T, I, U]) Create(ctx context.Context, in I) (T, error) {
	op := r.op("Create")

	var zero T

	query, args, err := r.sb.Insert(r.schema.Table).
		SetMap(in.Fields()).
		Suffix(r.returning()).
		ToSql()
	if err != nil {
		return zero, wrap(op, storage.ErrStoreUnavailable, err)
	}

	item, err := r.schema.Scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return zero, classifyPg(op, err)
	}

	return item, nil
}

// Update обновляет только переданные поля; updated_at обновляется всегда
func (r *PgCollection[T, I, U]) Update(ctx context.Context, id uuid.UUID, patch U) (T, error) {
	op := r.op("Update")

	var zero T

	updateBuilder := r.sb.Update(r.schema.Table).
		Set("updated_at", sq.Expr("GREATEST(clock_timestamp(), updated_at + interval '1 microsecond')"))

	fields := patch.Fields()
	if len(fields) > 0 {
		updateBuilder = updateBuilder.SetMap(fields)
	}

	query, args, err := updateBuilder.
		Where(sq.Eq{"id": id}).
		Suffix(r.returning()).
		ToSql()
	if err != nil {
		return zero, wrap(op, storage.ErrStoreUnavailable, err)
	}

	item, err := r.schema.Scan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return zero, classifyPg(op, err)
	}

	return item, nil
}

// Delete удаляет запись; отсутствие записи считается ошибкой
func (r *PgCollection[T, I, U]) Delete(ctx context.Context, id uuid.UUID) error {
	op := r.op("Delete")

	query, args, err := r.sb.Delete(r.schema.Table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return wrap(op, storage.ErrStoreUnavailable, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return classifyPg(op, err)
	}

	if result.RowsAffected() == 0 {
		return wrap(op, storage.ErrNotFound, fmt.Errorf("id %s", id))
	}

	return nil
}

// Count возвращает количество записей; используется проверкой соединения
func (r *PgCollection[T, I, U]) Count(ctx context.Context) (int, error) {
	op := r.op("Count")

	query, args, err := r.sb.Select("COUNT(*)").From(r.schema.Table).ToSql()
	if err != nil {
		return 0, wrap(op, storage.ErrStoreUnavailable, err)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, classifyPg(op, err)
	}

	return count, nil
}
