package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"atelier/internal/domain/models"
	"atelier/internal/lib/logger/sl"
	"atelier/internal/repository"
	"atelier/internal/services/probe"
	"atelier/internal/storage"
	"atelier/internal/transport/http/dto"
	"atelier/internal/transport/http/dto/request"
	"atelier/internal/transport/http/dto/response"

	_ "atelier/docs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type PaintingService interface {
	GetAll(ctx context.Context) ([]models.Painting, error)
	GetOne(ctx context.Context, id uuid.UUID) (*models.Painting, error)
	GetFiltered(ctx context.Context, filter repository.Filter) ([]models.Painting, error)
	Collections(ctx context.Context) ([]models.Localized, error)
}

type PageService interface {
	GetBySlug(ctx context.Context, slug string) (*models.Page, error)
	GetPublished(ctx context.Context) ([]models.Page, error)
	Update(ctx context.Context, id uuid.UUID, patch models.PageUpdate) (models.Page, error)
}

type SettingService interface {
	GetByName(ctx context.Context, name string) (*models.Setting, error)
}

// CollectionService is the admin surface of one entity.
type CollectionService[T repository.Record, I repository.Shape, U repository.Shape] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetOne(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, in I) (T, error)
	Update(ctx context.Context, id uuid.UUID, patch U) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ImageService interface {
	UploadImage(ctx context.Context, name string, data []byte) (string, error)
	DeleteImage(ctx context.Context, ref string) error
}

type Prober interface {
	Check(ctx context.Context) probe.Status
}

type Routers struct {
	log             *slog.Logger
	PaintingService PaintingService
	PageService     PageService
	SettingService  SettingService
	Images          ImageService
	Probe           Prober
	maxUpload       int64
}

func NewRouter(
	log *slog.Logger,
	paintings PaintingService,
	pages PageService,
	settings SettingService,
	images ImageService,
	prober Prober,
	maxUpload int64,
) *Routers {
	return &Routers{
		log:             log,
		PaintingService: paintings,
		PageService:     pages,
		SettingService:  settings,
		Images:          images,
		Probe:           prober,
		maxUpload:       maxUpload,
	}
}

const headerAcceptLanguage = "Accept-Language"

// locale берет язык из ?lang, затем из Accept-Language
func locale(c echo.Context) models.Locale {
	if lang := c.QueryParam("lang"); lang != "" {
		return models.ParseLocale(lang)
	}
	return models.ParseLocale(c.Request().Header.Get(headerAcceptLanguage))
}

func parseID(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}

// fail maps store errors to HTTP statuses.
func fail(c echo.Context, log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails(response.CodeNotFound, "record not found"))
	case errors.Is(err, storage.ErrConflict):
		log.Warn("unique constraint violated", sl.Err(err))
		return c.JSON(http.StatusConflict, response.ErrorResponseWithDetails(response.CodeConflict, err.Error()))
	case errors.Is(err, storage.ErrValidationRejected):
		log.Warn("validation rejected", sl.Err(err))
		return c.JSON(http.StatusUnprocessableEntity, response.ErrorResponseWithDetails(response.CodeValidationFailed, err.Error()))
	case errors.Is(err, storage.ErrStoreUnavailable):
		log.Error("store unavailable", sl.Err(err))
		return c.JSON(http.StatusServiceUnavailable, response.ErrorResponseWithDetails(response.CodeStoreUnavailable, "store is unavailable, try again later"))
	case errors.Is(err, storage.ErrFileTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, response.ErrorResponseWithDetails(response.CodeFileTooLarge, err.Error()))
	case errors.Is(err, storage.ErrFileNotFound):
		return c.JSON(http.StatusNotFound, response.ErrorResponseWithDetails(response.CodeNotFound, "file not found"))
	case errors.Is(err, storage.ErrInvalidFileType):
		return c.JSON(http.StatusUnsupportedMediaType, response.ErrorResponseWithDetails(response.CodeUnsupportedType, err.Error()))
	default:
		log.Error("unexpected error", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrInternal)
	}
}

func notFound(c echo.Context, what string) error {
	return c.JSON(http.StatusNotFound, response.NotFound(what))
}

// @Summary Liveness
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Status reports the connectivity probe result; ?refresh=true skips the memo.
// @Summary Состояние подключения к хранилищу
// @Tags system
// @Produce json
// @Param refresh query bool false "Перепроверить, минуя кэш"
// @Success 200 {object} response.Response{data=dto.StatusView}
// @Router /api/v1/status [get]
func (r *Routers) Status(c echo.Context) error {
	refresh, _ := strconv.ParseBool(c.QueryParam("refresh"))
	if refresh {
		if inv, ok := r.Probe.(interface{ Invalidate() }); ok {
			inv.Invalidate()
		}
	}

	s := r.Probe.Check(c.Request().Context())
	view := dto.StatusView{
		Status:    string(s),
		Available: s == probe.StatusOK,
		Hint:      probe.Describe(s),
	}

	if refresh {
		return c.JSON(http.StatusOK, response.Refreshed(view))
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(view))
}

// RequireStore answers 503 setup_required while the probe fails.
func (r *Routers) RequireStore(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s := r.Probe.Check(c.Request().Context())
		if s != probe.StatusOK {
			r.log.Warn("store is not ready", slog.String("status", string(s)), slog.String("path", c.Path()))
			return c.JSON(http.StatusServiceUnavailable, response.ErrorResponseWithDetails(response.CodeSetupRequired, probe.Describe(s)))
		}
		return next(c)
	}
}

// ListPaintings отдает картины в порядке display_order
// @Summary Список картин
// @Tags paintings
// @Produce json
// @Param lang query string false "en | ar"
// @Param collection query string false "Коллекция"
// @Param featured query bool false "Только избранные"
// @Success 200 {object} response.Response{data=[]dto.PaintingView}
// @Failure 400 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /api/v1/paintings [get]
func (r *Routers) ListPaintings(c echo.Context) error {
	const op = "http.routers.ListPaintings"

	log := r.log.With(
		slog.String("op", op),
	)

	var q dto.ListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(q); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(response.CodeInvalidRequest, err.Error()))
	}

	filter := repository.Filter{}
	if q.Collection != "" {
		filter["collection"] = q.Collection
	}
	if q.Featured != "" {
		featured, _ := strconv.ParseBool(q.Featured)
		filter["is_featured"] = featured
	}

	items, err := r.PaintingService.GetFiltered(c.Request().Context(), filter)
	if err != nil {
		return fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewPaintingViews(items, locale(c))))
}

// @Summary Картина по ID
// @Tags paintings
// @Produce json
// @Param id path string true "UUID картины" format(uuid)
// @Param lang query string false "en | ar"
// @Success 200 {object} response.Response{data=dto.PaintingView}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /api/v1/paintings/{id} [get]
func (r *Routers) GetPainting(c echo.Context) error {
	const op = "http.routers.GetPainting"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	p, err := r.PaintingService.GetOne(c.Request().Context(), id)
	if err != nil {
		return fail(c, log, err)
	}
	if p == nil {
		return notFound(c, "painting")
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewPaintingView(*p, locale(c))))
}

// @Summary Коллекции картин
// @Tags paintings
// @Produce json
// @Param lang query string false "en | ar"
// @Success 200 {object} response.Response{data=[]dto.CollectionView}
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /api/v1/collections [get]
func (r *Routers) ListCollections(c echo.Context) error {
	const op = "http.routers.ListCollections"

	log := r.log.With(
		slog.String("op", op),
	)

	items, err := r.PaintingService.Collections(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewCollectionViews(items, locale(c))))
}

// GetPage returns a published page; drafts look absent.
// @Summary Опубликованная страница по slug
// @Tags pages
// @Produce json
// @Param slug path string true "Slug страницы"
// @Param lang query string false "en | ar"
// @Success 200 {object} response.Response{data=dto.PageView}
// @Failure 404 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /api/v1/pages/{slug} [get]
func (r *Routers) GetPage(c echo.Context) error {
	const op = "http.routers.GetPage"

	log := r.log.With(
		slog.String("op", op),
		slog.String("slug", c.Param("slug")),
	)

	p, err := r.PageService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return fail(c, log, err)
	}
	if p == nil {
		return notFound(c, "page")
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewPageView(*p, locale(c))))
}

// @Summary Настройка галереи по имени
// @Tags settings
// @Produce json
// @Param name path string true "Имя настройки"
// @Param lang query string false "en | ar"
// @Success 200 {object} response.Response{data=dto.SettingView}
// @Failure 404 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /api/v1/settings/{name} [get]
func (r *Routers) GetSetting(c echo.Context) error {
	const op = "http.routers.GetSetting"

	log := r.log.With(
		slog.String("op", op),
		slog.String("name", c.Param("name")),
	)

	s, err := r.SettingService.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return fail(c, log, err)
	}
	if s == nil {
		return notFound(c, "setting")
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(dto.NewSettingView(*s, locale(c))))
}

// PublishPage toggles is_published of one page.
// @Summary Публикация страницы
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "UUID страницы" format(uuid)
// @Param request body request.PublishRequest true "Флаг публикации"
// @Success 200 {object} response.Response{data=models.Page}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /api/v1/admin/pages/{id}/publish [put]
func (r *Routers) PublishPage(c echo.Context) error {
	const op = "http.routers.PublishPage"

	log := r.log.With(
		slog.String("op", op),
	)

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	var req request.PublishRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(response.CodeInvalidRequest, err.Error()))
	}

	page, err := r.PageService.Update(c.Request().Context(), id, models.PageUpdate{IsPublished: req.IsPublished})
	if err != nil {
		return fail(c, log, err)
	}

	log.Info("page visibility changed", slog.String("slug", page.Slug), slog.Bool("published", page.IsPublished))

	return c.JSON(http.StatusOK, response.SuccessResponse(page))
}

// UploadImage stores a painting image and returns its reference.
// @Summary Загрузка изображения
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Изображение"
// @Success 201 {object} response.Response{data=dto.ImageUploadResponse}
// @Failure 400 {object} response.ErrorResponse
// @Failure 413 {object} response.ErrorResponse
// @Failure 415 {object} response.ErrorResponse
// @Router /api/v1/admin/images [post]
func (r *Routers) UploadImage(c echo.Context) error {
	const op = "http.routers.UploadImage"

	log := r.log.With(
		slog.String("op", op),
	)

	file, err := c.FormFile("file")
	if err != nil {
		log.Warn("empty file in request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrFileRequired)
	}

	log.Debug("got file for upload",
		slog.String("filename", file.Filename),
		slog.Int64("size", file.Size),
	)

	if r.maxUpload > 0 && file.Size > r.maxUpload {
		return fail(c, log, storage.ErrFileTooLarge)
	}

	src, err := file.Open()
	if err != nil {
		log.Error("failed to open upload", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrFileRequired)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error("failed to read upload", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	url, err := r.Images.UploadImage(c.Request().Context(), file.Filename, data)
	if err != nil {
		return fail(c, log, err)
	}

	log.Info("image uploaded", slog.String("filename", file.Filename))

	return c.JSON(http.StatusCreated, response.SuccessResponse(dto.ImageUploadResponse{URL: url}))
}

// DeleteImage removes a stored image by the reference UploadImage returned.
// @Summary Удаление изображения
// @Tags admin
// @Param url query string true "Ссылка, которую вернула загрузка"
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/admin/images [delete]
func (r *Routers) DeleteImage(c echo.Context) error {
	const op = "http.routers.DeleteImage"

	log := r.log.With(
		slog.String("op", op),
	)

	ref := c.QueryParam("url")
	if ref == "" {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(response.CodeInvalidRequest, "url is required"))
	}

	if err := r.Images.DeleteImage(c.Request().Context(), ref); err != nil {
		return fail(c, log, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListPages returns every published page.
// @Summary Опубликованные страницы
// @Tags pages
// @Produce json
// @Param lang query string false "en | ar"
// @Success 200 {object} response.Response{data=[]dto.PageView}
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /api/v1/pages [get]
func (r *Routers) ListPages(c echo.Context) error {
	const op = "http.routers.ListPages"

	log := r.log.With(
		slog.String("op", op),
	)

	items, err := r.PageService.GetPublished(c.Request().Context())
	if err != nil {
		return fail(c, log, err)
	}

	loc := locale(c)
	views := make([]dto.PageView, 0, len(items))
	for _, p := range items {
		views = append(views, dto.NewPageView(p, loc))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(views))
}

// AdminHandlers exposes full records of one entity, both locales included.
type AdminHandlers[T repository.Record, I repository.Shape, U repository.Shape] struct {
	log    *slog.Logger
	entity string
	svc    CollectionService[T, I, U]
}

func NewAdminHandlers[T repository.Record, I repository.Shape, U repository.Shape](
	log *slog.Logger,
	entity string,
	svc CollectionService[T, I, U],
) *AdminHandlers[T, I, U] {
	return &AdminHandlers[T, I, U]{log: log, entity: entity, svc: svc}
}

// Register mounts list/get/create/update/delete on g.
func (h *AdminHandlers[T, I, U]) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *AdminHandlers[T, I, U]) logger(method string) *slog.Logger {
	return h.log.With(slog.String("op", "http.admin("+h.entity+")."+method))
}

// @Summary Все записи сущности, обе локали
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.ErrorResponse "Хранилище недоступно"
// @Router /api/v1/admin/paintings [get]
// @Router /api/v1/admin/pages [get]
// @Router /api/v1/admin/settings [get]
func (h *AdminHandlers[T, I, U]) List(c echo.Context) error {
	items, err := h.svc.GetAll(c.Request().Context())
	if err != nil {
		return fail(c, h.logger("List"), err)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(items))
}

// @Summary Запись по ID
// @Tags admin
// @Produce json
// @Param id path string true "UUID записи" format(uuid)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/admin/paintings/{id} [get]
// @Router /api/v1/admin/pages/{id} [get]
// @Router /api/v1/admin/settings/{id} [get]
func (h *AdminHandlers[T, I, U]) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	rec, err := h.svc.GetOne(c.Request().Context(), id)
	if err != nil {
		return fail(c, h.logger("Get"), err)
	}
	if rec == nil {
		return notFound(c, h.entity)
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(rec))
}

// @Summary Создание записи
// @Tags admin
// @Accept json
// @Produce json
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /api/v1/admin/paintings [post]
// @Router /api/v1/admin/pages [post]
// @Router /api/v1/admin/settings [post]
func (h *AdminHandlers[T, I, U]) Create(c echo.Context) error {
	log := h.logger("Create")

	var in I
	if err := c.Bind(&in); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	rec, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return fail(c, log, err)
	}

	log.Info("created", slog.String("id", rec.Key().String()))

	return c.JSON(http.StatusCreated, response.SuccessResponse(rec))
}

// @Summary Частичное обновление записи
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "UUID записи" format(uuid)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /api/v1/admin/paintings/{id} [patch]
// @Router /api/v1/admin/pages/{id} [patch]
// @Router /api/v1/admin/settings/{id} [patch]
func (h *AdminHandlers[T, I, U]) Update(c echo.Context) error {
	log := h.logger("Update")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	var patch U
	if err := c.Bind(&patch); err != nil {
		log.Warn("failed to bind request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	rec, err := h.svc.Update(c.Request().Context(), id, patch)
	if err != nil {
		return fail(c, log, err)
	}

	log.Info("updated", slog.String("id", id.String()))

	return c.JSON(http.StatusOK, response.SuccessResponse(rec))
}

// @Summary Удаление записи
// @Tags admin
// @Param id path string true "UUID записи" format(uuid)
// @Success 204
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/v1/admin/paintings/{id} [delete]
// @Router /api/v1/admin/pages/{id} [delete]
// @Router /api/v1/admin/settings/{id} [delete]
func (h *AdminHandlers[T, I, U]) Delete(c echo.Context) error {
	log := h.logger("Delete")

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidID)
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, log, err)
	}

	log.Info("deleted", slog.String("id", id.String()))

	return c.NoContent(http.StatusNoContent)
}
