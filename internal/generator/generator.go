// Package generator orchestrates a render request: look up the backend for
// the requested solver format, resolve the raw configuration against its
// schema, and hand the resolved config with the collected events and stations
// to the backend's render function.
package generator

import (
	"errors"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/geoforge/wavedeck/internal/domain"
	"github.com/geoforge/wavedeck/internal/observability"
	"github.com/geoforge/wavedeck/internal/render"
)

// Generator ties the backend registry to observability.
type Generator struct {
	registry *render.Registry
	logger   *slog.Logger
	metrics  *observability.Metrics
	clock    clockwork.Clock
}

// New creates a Generator using the real clock.
func New(registry *render.Registry, logger *slog.Logger, metrics *observability.Metrics) *Generator {
	g := &Generator{
		registry: registry,
		logger:   logger,
		metrics:  metrics,
		clock:    clockwork.NewRealClock(),
	}
	g.metrics.BackendsRegistered.Set(float64(registry.Len()))
	return g
}

// SetClock swaps the time source used for render timing. Pass nil to reset
// to real time.
func (g *Generator) SetClock(c clockwork.Clock) {
	if c == nil {
		g.clock = clockwork.NewRealClock()
		return
	}
	g.clock = c
}

// Formats returns the registered solver formats in sorted order.
func (g *Generator) Formats() []string {
	return g.registry.Formats()
}

// Schema returns the configuration schema of the given format.
func (g *Generator) Schema(format string) (render.Schema, error) {
	b, err := g.registry.Get(format)
	if err != nil {
		return render.Schema{}, err
	}
	return b.Schema, nil
}

// Render resolves raw against the format's schema and renders the input
// files. The raw map is never mutated.
func (g *Generator) Render(format string, raw map[string]any, events []domain.Event, stations []domain.Station) (render.OutputSet, error) {
	b, err := g.registry.Get(format)
	if err != nil {
		g.metrics.RendersTotal.WithLabelValues(format, "error").Inc()
		return nil, err
	}

	start := g.clock.Now()
	files, err := g.renderBackend(b, raw, events, stations)
	elapsed := g.clock.Since(start)

	if err != nil {
		g.metrics.RendersTotal.WithLabelValues(format, "error").Inc()
		g.logger.Error("render failed",
			slog.String("format", format),
			slog.Any("error", err))
		return nil, err
	}

	g.metrics.RendersTotal.WithLabelValues(format, "success").Inc()
	g.metrics.RenderDuration.WithLabelValues(format).Observe(elapsed.Seconds())
	g.logger.Info("rendered input files",
		slog.String("format", format),
		slog.Int("files", len(files)),
		slog.Int("events", len(events)),
		slog.Int("stations", len(stations)),
		slog.Duration("duration", elapsed))
	return files, nil
}

func (g *Generator) renderBackend(b render.Backend, raw map[string]any, events []domain.Event, stations []domain.Station) (render.OutputSet, error) {
	cfg, err := b.Schema.Resolve(b.Name, raw)
	if err != nil {
		return nil, err
	}
	return b.Render(cfg, events, stations)
}

// CheckReadiness returns nil once at least one backend is registered.
func (g *Generator) CheckReadiness() error {
	if g.registry.Len() == 0 {
		return errors.New("no solver backends registered")
	}
	return nil
}
