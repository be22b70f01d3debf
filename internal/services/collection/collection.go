package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"atelier/internal/lib/logger/sl"
	"atelier/internal/metrics"
	"atelier/internal/repository"
	"atelier/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Service is the CRUD contract shared by paintings, pages and settings.
// Ordering and uniqueness come from the repository's schema; the service adds
// input validation, logging and the absent-vs-error split for reads.
type Service[T repository.Record, I repository.Shape, U repository.Shape] struct {
	log      *slog.Logger
	entity   string
	repo     repository.CollectionRepository[T, I, U]
	validate *validator.Validate
}

func New[T repository.Record, I repository.Shape, U repository.Shape](
	log *slog.Logger,
	entity string,
	repo repository.CollectionRepository[T, I, U],
	validate *validator.Validate,
) *Service[T, I, U] {
	return &Service[T, I, U]{
		log:      log,
		entity:   entity,
		repo:     repo,
		validate: validate,
	}
}

func (s *Service[T, I, U]) Entity() string { return s.entity }

// GetAll возвращает все записи в порядке, принятом для сущности
func (s *Service[T, I, U]) GetAll(ctx context.Context) ([]T, error) {
	return s.list(ctx, "GetAll", nil)
}

// GetFiltered возвращает записи, удовлетворяющие всем условиям равенства
func (s *Service[T, I, U]) GetFiltered(ctx context.Context, filter repository.Filter) ([]T, error) {
	return s.list(ctx, "GetFiltered", filter)
}

func (s *Service[T, I, U]) list(ctx context.Context, method string, filter repository.Filter) ([]T, error) {
	op := "services." + s.entity + "." + method
	log := s.log.With(slog.String("op", op))

	items, err := s.repo.List(ctx, filter)
	s.record(method, err)
	if err != nil {
		log.Error("failed to list records", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if items == nil {
		items = []T{}
	}

	log.Debug("records listed", slog.Int("count", len(items)))

	return items, nil
}

// GetOne возвращает запись по ID; nil без ошибки, если записи нет
func (s *Service[T, I, U]) GetOne(ctx context.Context, id uuid.UUID) (*T, error) {
	const method = "GetOne"
	op := "services." + s.entity + "." + method
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
	)

	item, err := s.repo.GetByID(ctx, id)
	s.record(method, err)
	if errors.Is(err, storage.ErrNotFound) {
		log.Debug("record not found")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get record", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &item, nil
}

// Create проверяет входные данные и создает запись
func (s *Service[T, I, U]) Create(ctx context.Context, in I) (T, error) {
	const method = "Create"
	op := "services." + s.entity + "." + method
	log := s.log.With(slog.String("op", op))

	var zero T

	if err := s.check(in); err != nil {
		s.record(method, err)
		log.Warn("invalid input", sl.Err(err))
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	item, err := s.repo.Create(ctx, in)
	s.record(method, err)
	if err != nil {
		log.Error("failed to create record", sl.Err(err))
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("record created", slog.String("id", item.Key().String()))

	return item, nil
}

// Update применяет частичное обновление; updated_at продвигается всегда
func (s *Service[T, I, U]) Update(ctx context.Context, id uuid.UUID, patch U) (T, error) {
	const method = "Update"
	op := "services." + s.entity + "." + method
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
	)

	var zero T

	if err := s.check(patch); err != nil {
		s.record(method, err)
		log.Warn("invalid patch", sl.Err(err))
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	item, err := s.repo.Update(ctx, id, patch)
	s.record(method, err)
	if err != nil {
		log.Error("failed to update record", sl.Err(err))
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("record updated")

	return item, nil
}

// Delete удаляет запись; повторное удаление возвращает ErrNotFound
func (s *Service[T, I, U]) Delete(ctx context.Context, id uuid.UUID) error {
	const method = "Delete"
	op := "services." + s.entity + "." + method
	log := s.log.With(
		slog.String("op", op),
		slog.String("id", id.String()),
	)

	err := s.repo.Delete(ctx, id)
	s.record(method, err)
	if err != nil {
		log.Error("failed to delete record", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("record deleted")

	return nil
}

// Count is the existence query used by the connectivity probe.
func (s *Service[T, I, U]) Count(ctx context.Context) (int, error) {
	const method = "Count"

	n, err := s.repo.Count(ctx)
	s.record(method, err)
	if err != nil {
		return 0, fmt.Errorf("services.%s.%s: %w", s.entity, method, err)
	}

	return n, nil
}

func (s *Service[T, I, U]) check(v any) error {
	if s.validate == nil {
		return nil
	}

	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return fmt.Errorf("%w: %s", storage.ErrValidationRejected, describe(verrs))
		}
		return fmt.Errorf("%w: %w", storage.ErrValidationRejected, err)
	}

	return nil
}

func (s *Service[T, I, U]) record(method string, err error) {
	metrics.StoreOperationsTotal.WithLabelValues(s.entity, method, Outcome(err)).Inc()
}

// Outcome is the metric label for an error returned by a store call.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, storage.ErrNotFound):
		return "not_found"
	case errors.Is(err, storage.ErrValidationRejected):
		return "rejected"
	default:
		return "unavailable"
	}
}

func describe(verrs validator.ValidationErrors) string {
	msg := ""
	for i, fe := range verrs {
		if i > 0 {
			msg += "; "
		}
		if fe.Param() != "" {
			msg += fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
		} else {
			msg += fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
		}
	}
	return msg
}
