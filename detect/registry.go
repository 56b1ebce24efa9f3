package detect

import (
	"fmt"
	"slices"
	"sync"

	"github.com/kbukum/convokit/errors"
)

// Factory builds a detector from the detector configuration.
type Factory func(cfg Config) Detector

// DefaultOrder returns the pass order used when no pipeline is configured.
func DefaultOrder() []string {
	return []string{"gap", "pause", "overlap", "speechrate"}
}

// Registry maps detector names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry holding the built-in detectors.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register("gap", func(cfg Config) Detector { return NewGap(cfg.Gap) })
	r.Register("pause", func(cfg Config) Detector { return NewPause(cfg.Pause) })
	r.Register("overlap", func(Config) Detector { return NewOverlap() })
	r.Register("speechrate", func(cfg Config) Detector { return NewSpeechRate(cfg.SpeechRate, nil) })
	return r
}

// Register adds or replaces a factory.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build creates the named detector. Unknown names are PIPELINE_INVALID.
func (r *Registry) Build(name string, cfg Config) (Detector, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.PipelineInvalid(fmt.Sprintf("unknown detector %q", name)).
			WithDetail("known", r.Names())
	}
	return f(cfg), nil
}

// BuildAll creates detectors for names in order.
func (r *Registry) BuildAll(names []string, cfg Config) ([]Detector, error) {
	out := make([]Detector, 0, len(names))
	for _, name := range names {
		d, err := r.Build(name, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
