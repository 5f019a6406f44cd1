package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/etkecc/go-apm"

	"github.com/etkecc/langdetect/internal/model"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name       string
		yaml       string
		wantLocale string
		wantErr    bool
	}{
		{"empty", "", model.DefaultLocale, false},
		{"locale canonicalized", "detection:\n  default_locale: iw-IL\n", "he", false},
		{"three-letter locale", "detection:\n  default_locale: deu\n", "de", false},
		{"invalid locale", "detection:\n  default_locale: zz\n", "", true},
		{"invalid backend", "detection:\n  backend: cld3\n", "", true},
		{"invalid log level", "log_level: loud\n", "", true},
		{"invalid yaml", "detection: [", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.yaml))
			if (err != nil) != tt.wantErr {
				t.Fatalf("got error %v, want error: %t", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.Detection.DefaultLocale != tt.wantLocale {
				t.Errorf("got [%s], want [%s]", cfg.Detection.DefaultLocale, tt.wantLocale)
			}
		})
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"relative distance too big", "detection:\n  min_relative_distance: 1.5\n"},
		{"negative relative distance", "detection:\n  min_relative_distance: -0.1\n"},
		{"negative confidence", "detection:\n  min_confidence: -1\n"},
		{"confidence too big", "detection:\n  min_confidence: 2\n"},
		{"unparseable body limit", "detection:\n  max_body: lots\n"},
		{"both invalid", "detection:\n  min_relative_distance: 1.5\n  max_body: lots\n"},
		{"invalid locale", "detection:\n  default_locale: zz\n"},
		{"invalid log level", "log_level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.yaml))
			if !errors.Is(err, model.ErrInvalidConfig) {
				t.Errorf("got error %v, want %v", err, model.ErrInvalidConfig)
			}
			if cfg != nil {
				t.Errorf("got %+v, want nil config", cfg)
			}
		})
	}
}

func TestParseConfig_Limits(t *testing.T) {
	cfg, err := ParseConfig([]byte("detection:\n  min_relative_distance: 0.99\n  min_confidence: 1\n  max_body: 512K\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Detection.MaxBody != "512K" {
		t.Errorf("got [%s], want [512K]", cfg.Detection.MaxBody)
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("port: \"9000\"\ndetection:\n  threshold: 50\n  languages: [en, de]\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("port: got [%s], want [9000]", cfg.Port)
	}
	if cfg.Detection.Threshold != 50 {
		t.Errorf("threshold: got %d, want 50", cfg.Detection.Threshold)
	}
	if cfg.Detection.Backend != model.BackendLingua {
		t.Errorf("backend: got [%s], want [%s]", cfg.Detection.Backend, model.BackendLingua)
	}
	if len(cfg.Detection.Languages) != 2 {
		t.Errorf("languages: got %v, want [en de]", cfg.Detection.Languages)
	}
	if cfg.Patterns == nil || cfg.Blocklist == nil || cfg.Auth == nil {
		t.Error("optional sections must be initialized")
	}
}

func TestConfig_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("detection:\n  default_locale: fr\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Get().Detection.DefaultLocale; got != "fr" {
		t.Errorf("got [%s], want [fr]", got)
	}

	if err := os.WriteFile(path, []byte("detection:\n  default_locale: zz\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := c.Read(apm.NewContext()); err == nil {
		t.Error("want error on invalid config")
	}
	if got := c.Get().Detection.DefaultLocale; got != "fr" {
		t.Errorf("invalid config replaced the current one: got [%s], want [fr]", got)
	}
}

func TestNewConfig_Missing(t *testing.T) {
	if _, err := NewConfig(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("want error on missing config")
	}
}
