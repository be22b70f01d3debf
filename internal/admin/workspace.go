package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"atelier/internal/domain/models"
	"atelier/internal/lib/logger/sl"
	"atelier/internal/services/media"
	"atelier/internal/services/probe"

	"github.com/gabriel-vasile/mimetype"
)

type (
	PaintingEditor struct {
		*Editor[models.Painting, models.PaintingInsert, models.PaintingUpdate, *PaintingForm]
		uploader media.Uploader

		upMu      sync.Mutex
		uploading bool
	}
	PageEditor    = Editor[models.Page, models.PageInsert, models.PageUpdate, *PageForm]
	SettingEditor = Editor[models.Setting, models.SettingInsert, models.SettingUpdate, *SettingForm]
)

// ErrUploading is returned while a previous image of the same form is
// still being stored.
var ErrUploading = errors.New("an image upload is already in progress")

func NewPaintingEditor(
	log *slog.Logger,
	svc Collection[models.Painting, models.PaintingInsert, models.PaintingUpdate],
	uploader media.Uploader,
) *PaintingEditor {
	return &PaintingEditor{
		Editor:   NewEditor(log, "painting", svc, &PaintingForm{}),
		uploader: uploader,
	}
}

func NewPageEditor(log *slog.Logger, svc Collection[models.Page, models.PageInsert, models.PageUpdate]) *PageEditor {
	return NewEditor(log, "page", svc, &PageForm{})
}

func NewSettingEditor(log *slog.Logger, svc Collection[models.Setting, models.SettingInsert, models.SettingUpdate]) *SettingEditor {
	return NewEditor(log, "setting", svc, &SettingForm{})
}

// AttachImage stores the image and puts its reference into the open form.
// Without an uploader the image is embedded as a data URI.
func (e *PaintingEditor) AttachImage(ctx context.Context, filename string, data []byte) (string, error) {
	const op = "admin.PaintingEditor.AttachImage"
	log := e.log.With(slog.String("op", op), slog.String("filename", filename))

	e.upMu.Lock()
	if e.uploading {
		e.upMu.Unlock()
		return "", ErrUploading
	}
	e.uploading = true
	e.upMu.Unlock()

	defer func() {
		e.upMu.Lock()
		e.uploading = false
		e.upMu.Unlock()
	}()

	var (
		ref string
		err error
	)
	if e.uploader != nil {
		ref, err = e.uploader.UploadImage(ctx, filename, data)
	} else {
		ct := mimetype.Detect(data).String()
		if i := strings.IndexByte(ct, ';'); i >= 0 {
			ct = ct[:i]
		}
		ref = media.DataURI(ct, data)
	}
	if err != nil {
		log.Error("failed to upload image", sl.Err(err))
		e.mu.Lock()
		e.notice = Notice{Kind: NoticeError, Text: "Could not upload the image: " + err.Error()}
		e.mu.Unlock()
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := e.Edit(func(f *PaintingForm) { f.ImageURL = ref }); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return ref, nil
}

// Uploading reports whether AttachImage is running.
func (e *PaintingEditor) Uploading() bool {
	e.upMu.Lock()
	defer e.upMu.Unlock()
	return e.uploading
}

type Tab string

const (
	TabPaintings Tab = "paintings"
	TabPages     Tab = "pages"
	TabSettings  Tab = "settings"
)

func ParseTab(s string) (Tab, error) {
	switch t := Tab(strings.ToLower(strings.TrimSpace(s))); t {
	case TabPaintings, TabPages, TabSettings:
		return t, nil
	default:
		return "", fmt.Errorf("unknown tab %q", s)
	}
}

// ErrSetupRequired is returned by Open when the store did not pass the probe.
var ErrSetupRequired = errors.New("store setup required")

// Prober classifies the configured store.
type Prober interface {
	Check(ctx context.Context) probe.Status
}

// Workspace is the admin surface: a probe gate and one editor per tab.
type Workspace struct {
	log   *slog.Logger
	probe Prober

	Paintings *PaintingEditor
	Pages     *PageEditor
	Settings  *SettingEditor

	mu     sync.Mutex
	tab    Tab
	status probe.Status
}

func NewWorkspace(log *slog.Logger, p Prober, paintings *PaintingEditor, pages *PageEditor, settings *SettingEditor) *Workspace {
	return &Workspace{
		log:       log,
		probe:     p,
		Paintings: paintings,
		Pages:     pages,
		Settings:  settings,
		tab:       TabPaintings,
	}
}

// Open probes the store and, when it is usable, loads every tab. A failed
// probe leaves the editors empty and returns ErrSetupRequired.
func (w *Workspace) Open(ctx context.Context) error {
	const op = "admin.Workspace.Open"
	log := w.log.With(slog.String("op", op))

	status := w.probe.Check(ctx)

	w.mu.Lock()
	w.status = status
	w.mu.Unlock()

	if status != probe.StatusOK {
		log.Warn("store is not ready", slog.String("status", string(status)))
		return fmt.Errorf("%s: %w: %s", op, ErrSetupRequired, probe.Describe(status))
	}

	var errs []error
	if err := w.Paintings.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := w.Pages.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := w.Settings.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		log.Error("failed to load workspace", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("workspace opened")

	return nil
}

// SwitchTab makes t active and discards every open form.
func (w *Workspace) SwitchTab(t Tab) {
	w.mu.Lock()
	w.tab = t
	w.mu.Unlock()

	w.Paintings.Reset()
	w.Pages.Reset()
	w.Settings.Reset()
}

func (w *Workspace) Active() Tab {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tab
}

// Status is the result of the last probe, "" before Open.
func (w *Workspace) Status() probe.Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *Workspace) SetupRequired() bool {
	s := w.Status()
	return s != "" && s != probe.StatusOK
}
