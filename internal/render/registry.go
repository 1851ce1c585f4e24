package render

import (
	"fmt"
	"sort"

	"github.com/geoforge/wavedeck/internal/domain"
)

// OutputSet maps logical output file names (e.g. "Par_file", "CMTSOLUTION")
// to complete file contents. A renderer produces the whole set or fails.
type OutputSet map[string]string

// Names returns the file names in sorted order.
func (o OutputSet) Names() []string {
	names := make([]string, 0, len(o))
	for name := range o {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RenderFunc turns a resolved configuration plus normalized events and
// stations into a solver's input file set. Implementations must be
// deterministic, must not touch the filesystem, and must not mutate any of
// their inputs.
type RenderFunc func(cfg Config, events []domain.Event, stations []domain.Station) (OutputSet, error)

// Backend bundles the three artifacts a solver backend exposes.
type Backend struct {
	Name   string
	Schema Schema
	Render RenderFunc
}

// Registry maps format names to backends. Backends are registered explicitly
// at process start; there is no module scanning or reflection involved.
type Registry struct {
	backends map[string]Backend
}

func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

// Register adds a backend. A backend without a name or a render function is
// rejected so a broken registration never shadows a working format.
func (r *Registry) Register(b Backend) error {
	if b.Name == "" {
		return fmt.Errorf("register backend: empty format name")
	}
	if b.Render == nil {
		return fmt.Errorf("register backend %q: nil render function", b.Name)
	}
	if _, exists := r.backends[b.Name]; exists {
		return fmt.Errorf("register backend %q: already registered", b.Name)
	}
	r.backends[b.Name] = b
	return nil
}

// Formats returns the registered format names in sorted order.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up a backend by format name.
func (r *Registry) Get(name string) (Backend, error) {
	b, ok := r.backends[name]
	if !ok {
		return Backend{}, &UnknownFormatError{Format: name, Available: r.Formats()}
	}
	return b, nil
}

// Len reports the number of registered backends.
func (r *Registry) Len() int { return len(r.backends) }
