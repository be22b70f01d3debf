package services

import (
	"context"
	"fmt"
	"log/slog"

	"atelier/internal/domain/models"
	"atelier/internal/lib/logger/sl"
	"atelier/internal/repository"
	"atelier/internal/services/collection"

	"github.com/go-playground/validator/v10"
)

type SettingService struct {
	*collection.Service[models.Setting, models.SettingInsert, models.SettingUpdate]
	log *slog.Logger
}

func NewSettingService(log *slog.Logger, repo repository.SettingRepository, validate *validator.Validate) *SettingService {
	return &SettingService{
		Service: collection.New(log, "setting", repo, validate),
		log:     log,
	}
}

// GetByName возвращает настройку по имени или nil, если её нет
func (s *SettingService) GetByName(ctx context.Context, name string) (*models.Setting, error) {
	const op = "services.setting.GetByName"
	log := s.log.With(
		slog.String("op", op),
		slog.String("name", name),
	)

	settings, err := s.GetFiltered(ctx, repository.Filter{"name": name})
	if err != nil {
		log.Error("failed to get setting", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(settings) == 0 {
		return nil, nil
	}

	return &settings[0], nil
}

// Value resolves the setting for the locale; fallback is returned when the
// setting does not exist.
func (s *SettingService) Value(ctx context.Context, name string, loc models.Locale, fallback string) (string, error) {
	setting, err := s.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return fallback, nil
	}

	return models.Resolve(setting.ValuePair(), loc), nil
}
