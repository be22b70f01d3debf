package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"atelier/internal/storage"

	"github.com/google/uuid"
)

// MemoryCollection is an in-process CollectionRepository. Records are kept as
// JSON documents so every entity shares one implementation; reads return
// fresh copies, never shared state.
type MemoryCollection[T Record, I Shape, U Shape] struct {
	mu     sync.RWMutex
	schema Schema[T]
	rows   map[uuid.UUID]*memoryRow
	seq    int64
	last   time.Time
	now    func() time.Time
}

type memoryRow struct {
	seq       int64
	createdAt time.Time
	updatedAt time.Time
	doc       map[string]any
}

func NewMemoryCollection[T Record, I Shape, U Shape](schema Schema[T]) *MemoryCollection[T, I, U] {
	return &MemoryCollection[T, I, U]{
		schema: schema,
		rows:   make(map[uuid.UUID]*memoryRow),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryCollection[T, I, U]) op(method string) string {
	return "repository.MemoryCollection(" + m.schema.Table + ")." + method
}

// tick returns a timestamp strictly after every timestamp issued before.
func (m *MemoryCollection[T, I, U]) tick() time.Time {
	t := m.now()
	if !t.After(m.last) {
		t = m.last.Add(time.Microsecond)
	}
	m.last = t
	return t
}

func (m *MemoryCollection[T, I, U]) List(ctx context.Context, filter Filter) ([]T, error) {
	op := m.op("List")

	if err := ctx.Err(); err != nil {
		return nil, wrap(op, storage.ErrStoreUnavailable, err)
	}

	want, err := normalize(map[string]any(filter))
	if err != nil {
		return nil, wrap(op, storage.ErrValidationRejected, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]*memoryRow, 0, len(m.rows))
	for _, row := range m.rows {
		if row.matches(want) {
			matched = append(matched, row)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return m.less(matched[i], matched[j])
	})

	items := make([]T, 0, len(matched))
	for _, row := range matched {
		item, err := m.materialize(op, row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (m *MemoryCollection[T, I, U]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	op := m.op("GetByID")

	var zero T
	if err := ctx.Err(); err != nil {
		return zero, wrap(op, storage.ErrStoreUnavailable, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	row, ok := m.rows[id]
	if !ok {
		return zero, wrap(op, storage.ErrNotFound, fmt.Errorf("id %s", id))
	}

	return m.materialize(op, row)
}

func (m *MemoryCollection[T, I, U]) Create(ctx context.Context, in I) (T, error) {
	op := m.op("Create")

	var zero T
	if err := ctx.Err(); err != nil {
		return zero, wrap(op, storage.ErrStoreUnavailable, err)
	}

	fields, err := normalize(in.Fields())
	if err != nil {
		return zero, wrap(op, storage.ErrValidationRejected, err)
	}

	doc := make(map[string]any, len(m.schema.Defaults)+len(fields))
	for column, value := range m.schema.Defaults {
		doc[column] = value
	}
	for column, value := range fields {
		doc[column] = value
	}
	doc, _ = normalize(doc)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkConstraints(uuid.Nil, doc); err != nil {
		return zero, wrap(op, err, nil)
	}

	now := m.tick()
	m.seq++
	id := uuid.New()
	row := &memoryRow{seq: m.seq, createdAt: now, updatedAt: now, doc: doc}
	m.rows[id] = row

	return m.materialize(op, row.withID(id))
}

func (m *MemoryCollection[T, I, U]) Update(ctx context.Context, id uuid.UUID, patch U) (T, error) {
	op := m.op("Update")

	var zero T
	if err := ctx.Err(); err != nil {
		return zero, wrap(op, storage.ErrStoreUnavailable, err)
	}

	fields, err := normalize(patch.Fields())
	if err != nil {
		return zero, wrap(op, storage.ErrValidationRejected, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok {
		return zero, wrap(op, storage.ErrNotFound, fmt.Errorf("id %s", id))
	}

	doc := make(map[string]any, len(row.doc))
	for column, value := range row.doc {
		doc[column] = value
	}
	for column, value := range fields {
		doc[column] = value
	}

	if err := m.checkConstraints(id, doc); err != nil {
		return zero, wrap(op, err, nil)
	}

	row.doc = doc
	row.updatedAt = m.tick()

	return m.materialize(op, row)
}

func (m *MemoryCollection[T, I, U]) Delete(ctx context.Context, id uuid.UUID) error {
	op := m.op("Delete")

	if err := ctx.Err(); err != nil {
		return wrap(op, storage.ErrStoreUnavailable, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return wrap(op, storage.ErrNotFound, fmt.Errorf("id %s", id))
	}
	delete(m.rows, id)

	return nil
}

func (m *MemoryCollection[T, I, U]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, wrap(m.op("Count"), storage.ErrStoreUnavailable, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.rows), nil
}

// checkConstraints emulates NOT NULL and UNIQUE. Caller holds the write lock.
func (m *MemoryCollection[T, I, U]) checkConstraints(self uuid.UUID, doc map[string]any) error {
	for _, column := range m.schema.Required {
		if v, ok := doc[column]; !ok || v == nil {
			return fmt.Errorf("%w: column %q is required", storage.ErrValidationRejected, column)
		}
	}

	key := m.schema.UniqueKey
	if key == "" {
		return nil
	}

	for id, row := range m.rows {
		if id == self {
			continue
		}
		if reflect.DeepEqual(row.doc[key], doc[key]) {
			return fmt.Errorf("%w: %s %v already exists", errConflict, key, doc[key])
		}
	}

	return nil
}

func (m *MemoryCollection[T, I, U]) materialize(op string, row *memoryRow) (T, error) {
	var zero T

	item, err := row.decodeAs(reflect.TypeOf(zero))
	if err != nil {
		return zero, wrap(op, storage.ErrStoreUnavailable, err)
	}

	return item.(T), nil
}

// less orders rows by the schema's OrderBy terms, then by insertion.
func (m *MemoryCollection[T, I, U]) less(a, b *memoryRow) bool {
	for _, o := range m.schema.OrderBy {
		c := compareColumn(o.Column, a, b)
		if c == 0 {
			continue
		}
		if o.Desc {
			return c > 0
		}
		return c < 0
	}
	return a.seq < b.seq
}

func compareColumn(column string, a, b *memoryRow) int {
	switch column {
	case "created_at":
		return a.createdAt.Compare(b.createdAt)
	case "updated_at":
		return a.updatedAt.Compare(b.updatedAt)
	}

	switch av := a.doc[column].(type) {
	case float64:
		bv, _ := b.doc[column].(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	case string:
		bv, _ := b.doc[column].(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}

	return 0
}

func (r *memoryRow) matches(want map[string]any) bool {
	for column, value := range want {
		if !reflect.DeepEqual(r.doc[column], value) {
			return false
		}
	}
	return true
}

func (r *memoryRow) withID(id uuid.UUID) *memoryRow {
	r.doc["id"] = id.String()
	return r
}

// decodeAs rebuilds a typed record from the document and row timestamps.
func (r *memoryRow) decodeAs(typ reflect.Type) (any, error) {
	doc := make(map[string]any, len(r.doc)+2)
	for column, value := range r.doc {
		doc[column] = value
	}
	doc["created_at"] = r.createdAt
	doc["updated_at"] = r.updatedAt

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	ptr := reflect.New(typ)
	if err := json.Unmarshal(raw, ptr.Interface()); err != nil {
		return nil, err
	}

	return ptr.Elem().Interface(), nil
}

// normalize round-trips values through JSON so typed values (pointers,
// Content, ints) compare the same way as the stored documents.
func normalize(fields map[string]any) (map[string]any, error) {
	if len(fields) == 0 {
		return map[string]any{}, nil
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(fields))
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}

	return out, nil
}
