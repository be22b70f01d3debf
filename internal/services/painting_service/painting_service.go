package services

import (
	"context"
	"fmt"
	"log/slog"

	"atelier/internal/domain/models"
	"atelier/internal/repository"
	"atelier/internal/services/collection"

	"github.com/go-playground/validator/v10"
)

type PaintingService struct {
	*collection.Service[models.Painting, models.PaintingInsert, models.PaintingUpdate]
	log *slog.Logger
}

func NewPaintingService(log *slog.Logger, repo repository.PaintingRepository, validate *validator.Validate) *PaintingService {
	return &PaintingService{
		Service: collection.New(log, "painting", repo, validate),
		log:     log,
	}
}

// GetByCollection возвращает картины одной серии в порядке display_order
func (s *PaintingService) GetByCollection(ctx context.Context, name string) ([]models.Painting, error) {
	return s.GetFiltered(ctx, repository.Filter{"collection": name})
}

// GetFeatured возвращает избранные картины
func (s *PaintingService) GetFeatured(ctx context.Context) ([]models.Painting, error) {
	return s.GetFiltered(ctx, repository.Filter{"is_featured": true})
}

// Collections lists distinct non-empty collection names in the order they
// first appear in the display order. A known series without a stored Arabic
// name gets the one from models.Collections.
func (s *PaintingService) Collections(ctx context.Context) ([]models.Localized, error) {
	const op = "services.painting.Collections"

	paintings, err := s.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seen := make(map[string]struct{})
	out := make([]models.Localized, 0)
	for _, p := range paintings {
		if p.Collection == "" {
			continue
		}
		if _, ok := seen[p.Collection]; ok {
			continue
		}
		seen[p.Collection] = struct{}{}

		pair := p.CollectionPair()
		if pair.AR == nil {
			// известные серии имеют арабское название по умолчанию
			if known, ok := models.KnownCollection(pair.EN); ok {
				pair.AR = known.AR
			}
		}
		out = append(out, pair)
	}

	return out, nil
}
