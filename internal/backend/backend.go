// Package backend holds the solver input file renderers. Each backend pairs
// a configuration schema with a render function and registers itself under
// the solver's format name.
package backend

import (
	"log/slog"

	"github.com/geoforge/wavedeck/internal/render"
)

// RegisterAll registers every built-in backend with the registry. A backend
// that fails to register is logged and skipped so that the remaining formats
// stay usable.
func RegisterAll(reg *render.Registry, logger *slog.Logger) {
	backends := []render.Backend{
		SpecfemCartesian(),
		SpecfemGlobe(),
		Ses3d(logger),
	}
	for _, b := range backends {
		if err := reg.Register(b); err != nil {
			logger.Error("skipping backend registration",
				slog.String("format", b.Name),
				slog.Any("error", err))
		}
	}
}
