package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"atelier/internal/lib/logger/sl"
	"atelier/internal/repository"
	"atelier/internal/storage"

	"github.com/google/uuid"
)

type State int

const (
	Browsing State = iota
	Creating
	Editing
	Submitting
)

func (s State) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrBusy is returned while a mutation of the same editor is in flight.
	ErrBusy = errors.New("a submission is already in progress")
	// ErrNoForm is returned by Submit when neither create nor edit was started.
	ErrNoForm = errors.New("no form is open")
	// ErrIncomplete is a client-side rejection: required form inputs are empty.
	ErrIncomplete = fmt.Errorf("%w: required fields are empty", storage.ErrValidationRejected)
)

// Collection is the part of a collection service the editor drives.
type Collection[T repository.Record, I repository.Shape, U repository.Shape] interface {
	GetAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, in I) (T, error)
	Update(ctx context.Context, id uuid.UUID, patch U) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Form holds the controlled inputs of one entity form.
type Form[T any, I any, U any] interface {
	// Reset restores the defaults of an empty form.
	Reset()
	// Hydrate fills every input from the record; absent values become "".
	Hydrate(record T)
	// Insert builds the create shape, failing with ErrIncomplete.
	Insert() (I, error)
	// Patch builds an update holding only the inputs that differ from orig.
	Patch(orig T) (U, error)
}

type NoticeKind string

const (
	NoticeNone  NoticeKind = ""
	NoticeInfo  NoticeKind = "info"
	NoticeError NoticeKind = "error"
)

// Notice is the last user-facing message of an editor.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Confirm asks the user before a destructive action.
type Confirm[T any] func(record T) bool

// Editor sequences one entity form through its collection service:
// Browsing -> Creating|Editing -> Submitting -> Browsing.
type Editor[T repository.Record, I repository.Shape, U repository.Shape, F Form[T, I, U]] struct {
	log    *slog.Logger
	entity string
	svc    Collection[T, I, U]

	mu      sync.Mutex
	form    F
	state   State
	editing *T
	items   []T
	notice  Notice
	// discarded is set when the form is reset during a submission.
	discarded bool
}

func NewEditor[T repository.Record, I repository.Shape, U repository.Shape, F Form[T, I, U]](
	log *slog.Logger,
	entity string,
	svc Collection[T, I, U],
	form F,
) *Editor[T, I, U, F] {
	form.Reset()

	return &Editor[T, I, U, F]{
		log:    log,
		entity: entity,
		svc:    svc,
		form:   form,
		items:  []T{},
	}
}

func (e *Editor[T, I, U, F]) Entity() string { return e.entity }

func (e *Editor[T, I, U, F]) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Items returns a copy of the last fetched list.
func (e *Editor[T, I, U, F]) Items() []T {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]T, len(e.items))
	copy(out, e.items)
	return out
}

// Editing returns the record being edited, nil outside Editing.
func (e *Editor[T, I, U, F]) Editing() *T {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.editing == nil {
		return nil
	}
	rec := *e.editing
	return &rec
}

func (e *Editor[T, I, U, F]) Notice() Notice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.notice
}

// Form exposes the inputs without locking. It is only safe from the
// goroutine that drives the editor; other readers use View, writers Edit.
func (e *Editor[T, I, U, F]) Form() F {
	return e.form
}

// View reads the inputs under the editor lock. fn must not keep the form.
func (e *Editor[T, I, U, F]) View(fn func(form F)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.form)
}

// Edit changes form inputs. Inputs are disabled while submitting.
func (e *Editor[T, I, U, F]) Edit(fn func(form F)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Submitting {
		return ErrBusy
	}
	fn(e.form)
	return nil
}

// Load re-fetches the list from the store.
func (e *Editor[T, I, U, F]) Load(ctx context.Context) error {
	op := "admin.Editor(" + e.entity + ").Load"
	log := e.log.With(slog.String("op", op))

	items, err := e.svc.GetAll(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		log.Error("failed to load list", sl.Err(err))
		e.notice = Notice{Kind: NoticeError, Text: describe(e.entity, "load", err)}
		return fmt.Errorf("%s: %w", op, err)
	}

	e.items = items
	return nil
}

func (e *Editor[T, I, U, F]) StartCreate() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Submitting {
		return ErrBusy
	}

	e.form.Reset()
	e.editing = nil
	e.state = Creating
	e.notice = Notice{}
	return nil
}

func (e *Editor[T, I, U, F]) StartEdit(record T) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Submitting {
		return ErrBusy
	}

	e.form.Hydrate(record)
	e.editing = &record
	e.state = Editing
	e.notice = Notice{}
	return nil
}

// Cancel closes the form without saving.
func (e *Editor[T, I, U, F]) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Submitting {
		return ErrBusy
	}

	e.resetLocked()
	return nil
}

// Reset discards the form unconditionally. A submission already in flight
// still completes, but its form is not restored on failure.
func (e *Editor[T, I, U, F]) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Submitting {
		e.discarded = true
		return
	}

	e.resetLocked()
}

func (e *Editor[T, I, U, F]) resetLocked() {
	e.form.Reset()
	e.editing = nil
	e.state = Browsing
}

// Submit saves the open form. On success the form is cleared and the list
// re-fetched; on failure the form is kept as it was and Notice explains why.
func (e *Editor[T, I, U, F]) Submit(ctx context.Context) error {
	op := "admin.Editor(" + e.entity + ").Submit"
	log := e.log.With(slog.String("op", op))

	e.mu.Lock()

	prior := e.state
	var mutate func(ctx context.Context) error

	switch prior {
	case Submitting:
		e.mu.Unlock()
		return ErrBusy
	case Browsing:
		e.mu.Unlock()
		return ErrNoForm
	case Creating:
		in, err := e.form.Insert()
		if err != nil {
			e.notice = Notice{Kind: NoticeError, Text: describe(e.entity, "save", err)}
			e.mu.Unlock()
			return fmt.Errorf("%s: %w", op, err)
		}
		mutate = func(ctx context.Context) error {
			_, err := e.svc.Create(ctx, in)
			return err
		}
	case Editing:
		id := (*e.editing).Key()
		patch, err := e.form.Patch(*e.editing)
		if err != nil {
			e.notice = Notice{Kind: NoticeError, Text: describe(e.entity, "save", err)}
			e.mu.Unlock()
			return fmt.Errorf("%s: %w", op, err)
		}
		mutate = func(ctx context.Context) error {
			_, err := e.svc.Update(ctx, id, patch)
			return err
		}
	}

	e.state = Submitting
	e.discarded = false
	e.mu.Unlock()

	err := mutate(ctx)

	e.mu.Lock()
	if err != nil {
		log.Error("failed to save", sl.Err(err))
		e.notice = Notice{Kind: NoticeError, Text: describe(e.entity, "save", err)}
		if e.discarded {
			e.resetLocked()
		} else {
			e.state = prior
		}
		e.mu.Unlock()
		return fmt.Errorf("%s: %w", op, err)
	}

	e.resetLocked()
	e.notice = Notice{Kind: NoticeInfo, Text: e.entity + " saved"}
	e.mu.Unlock()

	log.Info("saved", slog.String("from", prior.String()))

	return e.refresh(ctx, op)
}

// Delete asks confirm first; declining changes nothing and reports false.
func (e *Editor[T, I, U, F]) Delete(ctx context.Context, record T, confirm Confirm[T]) (bool, error) {
	op := "admin.Editor(" + e.entity + ").Delete"
	log := e.log.With(
		slog.String("op", op),
		slog.String("id", record.Key().String()),
	)

	e.mu.Lock()
	if e.state == Submitting {
		e.mu.Unlock()
		return false, ErrBusy
	}
	e.mu.Unlock()

	if confirm == nil || !confirm(record) {
		log.Debug("delete declined")
		return false, nil
	}

	e.mu.Lock()
	if e.state == Submitting {
		e.mu.Unlock()
		return false, ErrBusy
	}
	prior := e.state
	e.state = Submitting
	e.discarded = false
	e.mu.Unlock()

	err := e.svc.Delete(ctx, record.Key())

	e.mu.Lock()
	if err != nil {
		log.Error("failed to delete", sl.Err(err))
		e.notice = Notice{Kind: NoticeError, Text: describe(e.entity, "delete", err)}
		if e.discarded {
			e.resetLocked()
		} else {
			e.state = prior
		}
		e.mu.Unlock()
		return false, fmt.Errorf("%s: %w", op, err)
	}

	e.state = prior
	if e.discarded || (e.editing != nil && (*e.editing).Key() == record.Key()) {
		e.resetLocked()
	}
	e.notice = Notice{Kind: NoticeInfo, Text: e.entity + " deleted"}
	e.mu.Unlock()

	log.Info("deleted")

	return true, e.refresh(ctx, op)
}

// refresh re-reads the list after a mutation that already succeeded.
func (e *Editor[T, I, U, F]) refresh(ctx context.Context, op string) error {
	items, err := e.svc.GetAll(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		e.log.Error("failed to refresh list", slog.String("op", op), sl.Err(err))
		e.notice = Notice{
			Kind: NoticeError,
			Text: e.entity + " saved, but the list could not be refreshed: " + describe(e.entity, "load", err),
		}
		return fmt.Errorf("%s: refresh: %w", op, err)
	}

	e.items = items
	return nil
}

func describe(entity, action string, err error) string {
	switch {
	case errors.Is(err, ErrIncomplete):
		return "Please fill in all required fields (" + err.Error() + ")."
	case errors.Is(err, storage.ErrConflict):
		return "Could not " + action + " the " + entity + ": another " + entity + " already uses this key."
	case errors.Is(err, storage.ErrValidationRejected):
		return "Could not " + action + " the " + entity + ": some values were rejected (" + err.Error() + ")."
	case errors.Is(err, storage.ErrNotFound):
		return "Could not " + action + " the " + entity + ": it no longer exists."
	case errors.Is(err, storage.ErrStoreUnavailable):
		return "Could not " + action + " the " + entity + ": the store is unavailable. Please try again."
	default:
		return "Error trying to " + action + " the " + entity + ". Please try again."
	}
}
