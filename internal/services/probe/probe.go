package probe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"atelier/internal/lib/logger/sl"
	"atelier/internal/metrics"

	"github.com/patrickmn/go-cache"
)

type Status string

const (
	StatusOK           Status = "ok"
	StatusUnconfigured Status = "unconfigured"
	StatusPlaceholder  Status = "placeholder"
	StatusUnreachable  Status = "unreachable"
)

// Counter is the existence query the probe issues against the paintings
// collection.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Coordinate is one required store setting, e.g. the endpoint or the key.
type Coordinate struct {
	Name  string
	Value string
}

// markers of values copied from example configs
var placeholderMarkers = []string{
	"your-project-id",
	"your-anon-key",
	"your-service-role-key",
	"your-supabase-url",
	"example.com",
	"changeme",
	"change-me",
	"placeholder",
}

// IsPlaceholder reports whether v still holds an example value.
func IsPlaceholder(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	for _, m := range placeholderMarkers {
		if strings.Contains(lv, m) {
			return true
		}
	}
	return strings.HasPrefix(lv, "<") && strings.HasSuffix(lv, ">")
}

type Probe struct {
	log    *slog.Logger
	target Counter
	coords []Coordinate
}

// New builds a probe. coords lists the settings that must be present for the
// configured backend; an empty list means the backend needs none.
func New(log *slog.Logger, target Counter, coords ...Coordinate) *Probe {
	return &Probe{
		log:    log,
		target: target,
		coords: coords,
	}
}

// Check classifies the store. It never panics and never returns an error.
func (p *Probe) Check(ctx context.Context) (status Status) {
	const op = "services.probe.Check"
	log := p.log.With(slog.String("op", op))

	defer func() {
		if r := recover(); r != nil {
			log.Error("probe panicked", slog.Any("panic", r))
			status = StatusUnreachable
		}
		metrics.ProbeChecksTotal.WithLabelValues(string(status)).Inc()
	}()

	for _, c := range p.coords {
		if strings.TrimSpace(c.Value) == "" {
			log.Warn("store coordinate is not set", slog.String("name", c.Name))
			return StatusUnconfigured
		}
		if IsPlaceholder(c.Value) {
			log.Warn("store coordinate holds a placeholder", slog.String("name", c.Name))
			return StatusPlaceholder
		}
	}

	if p.target == nil {
		return StatusUnconfigured
	}

	if _, err := p.target.Count(ctx); err != nil {
		log.Warn("store is unreachable", sl.Err(err))
		return StatusUnreachable
	}

	return StatusOK
}

func (p *Probe) IsAvailable(ctx context.Context) bool {
	return p.Check(ctx) == StatusOK
}

// Describe is a human-readable hint for the setup flow.
func Describe(s Status) string {
	switch s {
	case StatusOK:
		return "store is reachable"
	case StatusUnconfigured:
		return "store coordinates are not set; fill in the store section of the config"
	case StatusPlaceholder:
		return "store coordinates still hold example values; replace them with the real project settings"
	case StatusUnreachable:
		return "store did not answer the probe query; check network, credentials and schema"
	default:
		return fmt.Sprintf("unknown status %q", string(s))
	}
}

const cacheKey = "probe"

// Cached memoizes the probe result for ttl so request paths do not hit the
// store on every call. A non-positive ttl disables the memo.
type Cached struct {
	probe *Probe
	cache *cache.Cache
}

func NewCached(p *Probe, ttl time.Duration) *Cached {
	c := &Cached{probe: p}
	if ttl > 0 {
		c.cache = cache.New(ttl, 2*ttl)
	}
	return c
}

func (c *Cached) Check(ctx context.Context) Status {
	if c.cache == nil {
		return c.probe.Check(ctx)
	}

	if v, ok := c.cache.Get(cacheKey); ok {
		return v.(Status)
	}

	status := c.probe.Check(ctx)
	c.cache.SetDefault(cacheKey, status)

	return status
}

func (c *Cached) IsAvailable(ctx context.Context) bool {
	return c.Check(ctx) == StatusOK
}

// Invalidate forces the next Check to query the store.
func (c *Cached) Invalidate() {
	if c.cache != nil {
		c.cache.Delete(cacheKey)
	}
}
