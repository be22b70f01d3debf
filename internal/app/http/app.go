package httpapp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"atelier/internal/domain/models"
	"atelier/internal/lib/logger/sl"
	appmiddleware "atelier/internal/middleware"
	httprouters "atelier/internal/transport/http"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Admin struct {
	Paintings *httprouters.AdminHandlers[models.Painting, models.PaintingInsert, models.PaintingUpdate]
	Pages     *httprouters.AdminHandlers[models.Page, models.PageInsert, models.PageUpdate]
	Settings  *httprouters.AdminHandlers[models.Setting, models.SettingInsert, models.SettingUpdate]
}

type Options struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type Server struct {
	m       *http.ServeMux
	log     *slog.Logger
	e       *echo.Echo
	routers *httprouters.Routers
	admin   Admin
	opts    Options
}

func New(log *slog.Logger, validate *validator.Validate, opts Options, routers *httprouters.Routers, admin Admin) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Validator = &CustomValidator{validator: validate}

	e.Server.ReadTimeout = opts.ReadTimeout
	e.Server.WriteTimeout = opts.WriteTimeout
	e.Server.IdleTimeout = opts.IdleTimeout

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(middleware.Recover())
	e.Use(appmiddleware.PrometheusMetrics)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogLatency:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			)

			return nil
		},
	}))

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("Statsviz start with error", slog.Any("error:", err.Error()))
	}

	return &Server{
		m:       mux,
		log:     log,
		e:       e,
		routers: routers,
		admin:   admin,
		opts:    opts,
	}
}

// Handler is the configured echo instance, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("addr", s.addr()))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) addr() string {
	return fmt.Sprintf("%s:%s", s.opts.Host, s.opts.Port)
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping http server", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		s.log.Error("shutdown failed", sl.Err(err))
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

func (s *Server) BuildRouters() {
	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())

	debug := s.e.Group("/debug")
	{
		debug.GET("/statsviz/", echo.WrapHandler(s.m))
		debug.GET("/statsviz/*", echo.WrapHandler(s.m))
	}

	swagger := s.e.Group("/swag")
	{
		swagger.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := s.e.Group("/api/v1")
	{
		api.GET("/status", s.routers.Status)

		api.GET("/paintings", s.routers.ListPaintings)
		api.GET("/paintings/:id", s.routers.GetPainting)
		api.GET("/collections", s.routers.ListCollections)
		api.GET("/pages", s.routers.ListPages)
		api.GET("/pages/:slug", s.routers.GetPage)
		api.GET("/settings/:name", s.routers.GetSetting)

		admin := api.Group("/admin", s.routers.RequireStore)
		{
			s.admin.Paintings.Register(admin.Group("/paintings"))
			s.admin.Pages.Register(admin.Group("/pages"))
			s.admin.Settings.Register(admin.Group("/settings"))

			admin.PUT("/pages/:id/publish", s.routers.PublishPage)
			admin.POST("/images", s.routers.UploadImage)
			admin.DELETE("/images", s.routers.DeleteImage)
		}
	}
}
