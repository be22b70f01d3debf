package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"atelier/internal/admin"
	httpapp "atelier/internal/app/http"
	"atelier/internal/config"
	"atelier/internal/domain/models"
	"atelier/internal/lib/logger/sl"
	"atelier/internal/lib/validate"
	"atelier/internal/repository"
	"atelier/internal/services/media"
	pages "atelier/internal/services/page_service"
	paintings "atelier/internal/services/painting_service"
	"atelier/internal/services/probe"
	settings "atelier/internal/services/setting_service"
	"atelier/internal/storage/filestorage"
	"atelier/internal/storage/postgresql"
	httprouters "atelier/internal/transport/http"

	"github.com/supabase-community/supabase-go"
)

var ErrNotConfigured = errors.New("store is not configured")

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	Repo       *repository.Repository
	Probe      *probe.Cached
	Paintings  *paintings.PaintingService
	Pages      *pages.PageService
	Settings   *settings.SettingService
	Images     *media.ImageService
}

// New wires the services for the configured backend. A missing or example
// store configuration is not an error: the app starts and the probe reports
// why the store cannot be used.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	repo, coords, err := openStore(ctx, log, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	v := validate.New()

	paintingService := paintings.NewPaintingService(log, repo.Paintings, v)
	pageService := pages.NewPageService(log, repo.Pages, v)
	settingService := settings.NewSettingService(log, repo.Settings, v)

	p := probe.NewCached(probe.New(log, repo.Paintings, coords...), cfg.Probe.TTL)

	images := media.NewImageService(log, imageStorage(log, cfg), "paintings", cfg.ImageStorage.MaxSize)

	routers := httprouters.NewRouter(log, paintingService, pageService, settingService, images, p, cfg.ImageStorage.MaxSize)

	server := httpapp.New(log, v, httpapp.Options{
		Host:         cfg.HTTP.Host,
		Port:         cfg.HTTP.Port,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}, routers, httpapp.Admin{
		Paintings: httprouters.NewAdminHandlers[models.Painting, models.PaintingInsert, models.PaintingUpdate](log, "painting", paintingService),
		Pages:     httprouters.NewAdminHandlers[models.Page, models.PageInsert, models.PageUpdate](log, "page", pageService),
		Settings:  httprouters.NewAdminHandlers[models.Setting, models.SettingInsert, models.SettingUpdate](log, "setting", settingService),
	})

	return &App{
		log:        log,
		HTTPServer: server,
		Repo:       repo,
		Probe:      p,
		Paintings:  paintingService,
		Pages:      pageService,
		Settings:   settingService,
		Images:     images,
	}, nil
}

// Workspace builds the admin orchestrator over the app's services.
func (a *App) Workspace() *admin.Workspace {
	return admin.NewWorkspace(a.log, a.Probe,
		admin.NewPaintingEditor(a.log, a.Paintings, a.Images),
		admin.NewPageEditor(a.log, a.Pages),
		admin.NewSettingEditor(a.log, a.Settings),
	)
}

func (a *App) Close() {
	a.Repo.Close()
}

func openStore(ctx context.Context, log *slog.Logger, cfg config.StoreConfig) (*repository.Repository, []probe.Coordinate, error) {
	const op = "app.openStore"

	log = log.With(slog.String("op", op), slog.String("backend", cfg.Backend))

	switch strings.ToLower(cfg.Backend) {
	case config.BackendMemory:
		log.Warn("using in-memory store, data is lost on exit")
		return repository.NewMemoryRepository(), nil, nil

	case config.BackendPostgres:
		coords := []probe.Coordinate{{Name: "store.dsn", Value: cfg.DSN}}
		if !usable(coords) {
			return repository.NewUnavailableRepository(ErrNotConfigured), coords, nil
		}

		db, err := postgresql.New(ctx, cfg.DSN)
		if err != nil {
			log.Error("failed to open postgres pool", sl.Err(err))
			return repository.NewUnavailableRepository(err), coords, nil
		}

		if cfg.Migrate {
			if err := migrate(ctx, log, cfg.DSN); err != nil {
				db.Close()
				return nil, nil, fmt.Errorf("%s: %w", op, err)
			}
		}

		return repository.NewPostgresRepository(db), coords, nil

	case config.BackendSupabase:
		coords := []probe.Coordinate{
			{Name: "store.url", Value: cfg.URL},
			{Name: "store.key", Value: cfg.Key},
		}
		if !usable(coords) {
			return repository.NewUnavailableRepository(ErrNotConfigured), coords, nil
		}

		client, err := supabase.NewClient(cfg.URL, cfg.Key, nil)
		if err != nil {
			log.Error("failed to create supabase client", sl.Err(err))
			return repository.NewUnavailableRepository(err), coords, nil
		}

		return repository.NewSupabaseRepository(client), coords, nil

	default:
		return nil, nil, fmt.Errorf("%s: unknown store backend %q", op, cfg.Backend)
	}
}

func migrate(ctx context.Context, log *slog.Logger, dsn string) error {
	m, err := postgresql.NewMigrator(dsn, log)
	if err != nil {
		return err
	}
	defer m.Close()

	return m.Run(ctx)
}

func usable(coords []probe.Coordinate) bool {
	for _, c := range coords {
		if strings.TrimSpace(c.Value) == "" || probe.IsPlaceholder(c.Value) {
			return false
		}
	}
	return true
}

// imageStorage returns nil when images are embedded inline.
func imageStorage(log *slog.Logger, cfg *config.Config) filestorage.ImageStorage {
	switch strings.ToLower(cfg.ImageStorage.Backend) {
	case config.ImagesSupabase:
		if !usable([]probe.Coordinate{{Value: cfg.Store.URL}, {Value: cfg.Store.Key}}) {
			log.Warn("supabase image storage needs store.url and store.key, embedding images inline")
			return nil
		}
		return filestorage.NewSupabaseStorage(cfg.Store.URL, cfg.Store.Key, cfg.ImageStorage.Bucket)

	case config.ImagesLocal:
		fs, err := filestorage.NewLocalFileStorage(cfg.ImageStorage.BaseDir, cfg.ImageStorage.BaseURL)
		if err != nil {
			log.Error("failed to init local image storage, embedding images inline", sl.Err(err))
			return nil
		}
		log.Info("storing images on disk", slog.String("dir", fs.GetBaseDir()))
		return fs

	default:
		return nil
	}
}
