// Package classifier provides statistical language classifiers
package classifier

import (
	"fmt"

	"github.com/etkecc/langdetect/internal/model"
)

// Backend is a language classifier with a static vocabulary
type Backend interface {
	Classify(text string) *model.ClassifierResult
	Languages() []string
}

// New creates the classifier backend configured in the detection config,
// wrapped with results cache if it is enabled
func New(cfg *model.ConfigDetection) (Backend, error) {
	var backend Backend
	var err error
	switch cfg.Backend {
	case model.BackendLingua:
		backend, err = NewLingua(cfg)
	case model.BackendWhatlang:
		backend = NewWhatlang(cfg)
	default:
		err = fmt.Errorf("unknown classifier backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CacheSize <= 0 {
		return backend, nil
	}
	return NewCached(backend, cfg.CacheSize)
}
