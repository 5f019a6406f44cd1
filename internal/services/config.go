package services

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/etkecc/go-apm"
	"github.com/etkecc/go-fswatcher"
	"github.com/fsnotify/fsnotify"
	"github.com/labstack/gommon/bytes"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/etkecc/langdetect/internal/model"
	"github.com/etkecc/langdetect/internal/services/detector"
)

// Config service
type Config struct {
	mu   *sync.Mutex
	fsw  *fswatcher.Watcher
	path string
	cfg  *model.Config
}

type ConfigService interface {
	Get() *model.Config
}

// NewConfig creates new config service, loads the config and watches it for changes
func NewConfig(path string) (*Config, error) {
	ctx := apm.NewContext()
	c := &Config{
		mu:   &sync.Mutex{},
		path: path,
	}
	if err := c.Read(ctx); err != nil {
		return nil, err
	}

	var err error
	c.fsw, err = fswatcher.New([]string{path}, 0)
	if err != nil {
		return nil, err
	}
	go c.fsw.Start(func(_ fsnotify.Event) {
		if err := c.Read(ctx); err != nil {
			apm.Log(ctx).Error().Err(err).Msg("cannot reload config, keeping the previous one")
		}
	})

	return c, nil
}

// Get config
func (c *Config) Get() *model.Config {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cfg
}

// Read config. Invalid config never replaces the current one
func (c *Config) Read(ctx context.Context) error {
	apm.Log(ctx).Info().Str("path", c.path).Msg("reading config")
	configb, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("cannot read config: %w", err)
	}
	config, err := ParseConfig(configb)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.cfg = config
	c.mu.Unlock()
	return nil
}

// ParseConfig unmarshals YAML config, applies defaults and validates it
func ParseConfig(configb []byte) (*model.Config, error) {
	var config *model.Config
	if err := yaml.Unmarshal(configb, &config); err != nil {
		return nil, fmt.Errorf("cannot unmarshal config: %w", err)
	}
	if config == nil {
		config = &model.Config{}
	}
	config.ApplyDefaults()

	if _, err := zerolog.ParseLevel(config.LogLevel); err != nil {
		return nil, fmt.Errorf("%w: invalid log_level: %w", model.ErrInvalidConfig, err)
	}

	locale, err := detector.Canonicalize(config.Detection.DefaultLocale)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid default_locale: %w", model.ErrInvalidConfig, err)
	}
	config.Detection.DefaultLocale = locale

	switch config.Detection.Backend {
	case model.BackendLingua, model.BackendWhatlang:
	default:
		return nil, fmt.Errorf("%w: unknown detection backend %q", model.ErrInvalidConfig, config.Detection.Backend)
	}
	if err := validateDetection(config.Detection); err != nil {
		return nil, err
	}
	return config, nil
}

// validateDetection rejects values the classifier and the HTTP server would panic on
func validateDetection(cfg *model.ConfigDetection) error {
	if cfg.MinRelativeDistance < 0 || cfg.MinRelativeDistance > model.MaxRelativeDistance {
		return fmt.Errorf("%w: min_relative_distance must be within [0, %.2f], got %v", model.ErrInvalidConfig, model.MaxRelativeDistance, cfg.MinRelativeDistance)
	}
	if cfg.MinConfidence < 0 || cfg.MinConfidence > 1 {
		return fmt.Errorf("%w: min_confidence must be within [0, 1], got %v", model.ErrInvalidConfig, cfg.MinConfidence)
	}
	limit, err := bytes.Parse(cfg.MaxBody)
	if err != nil {
		return fmt.Errorf("%w: invalid max_body %q: %w", model.ErrInvalidConfig, cfg.MaxBody, err)
	}
	if limit <= 0 {
		return fmt.Errorf("%w: max_body must be positive, got %q", model.ErrInvalidConfig, cfg.MaxBody)
	}
	return nil
}
