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

type PageService struct {
	*collection.Service[models.Page, models.PageInsert, models.PageUpdate]
	log *slog.Logger
}

func NewPageService(log *slog.Logger, repo repository.PageRepository, validate *validator.Validate) *PageService {
	return &PageService{
		Service: collection.New(log, "page", repo, validate),
		log:     log,
	}
}

// GetBySlug returns the published page with the slug, or nil when there is
// none. Unpublished pages are invisible here.
func (s *PageService) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	const op = "services.page.GetBySlug"
	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", slug),
	)

	pages, err := s.GetFiltered(ctx, repository.Filter{"slug": slug, "is_published": true})
	if err != nil {
		log.Error("failed to get page", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(pages) == 0 {
		log.Debug("page not found")
		return nil, nil
	}

	return &pages[0], nil
}

// GetPublished возвращает все опубликованные страницы
func (s *PageService) GetPublished(ctx context.Context) ([]models.Page, error) {
	return s.GetFiltered(ctx, repository.Filter{"is_published": true})
}
