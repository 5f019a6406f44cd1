package model

import (
	echobasicauth "github.com/etkecc/go-echo-basic-auth"
)

const (
	// AllLanguages enables every language the classifier knows
	AllLanguages = "ALL"
	// BackendLingua is the lingua-go classifier backend
	BackendLingua = "lingua"
	// BackendWhatlang is the whatlanggo classifier backend
	BackendWhatlang = "whatlanggo"

	// DefaultThreshold is the minimal amount of characters the classifier is trusted with
	DefaultThreshold = 140
	// MaxRelativeDistance is the upper bound lingua accepts for the minimal relative distance
	MaxRelativeDistance = 0.99

	// DefaultLocale used when neither detection nor account locale are available
	DefaultLocale = "en"
)

// Config is langdetect configuration model
type Config struct {
	Port         string              `yaml:"port"`
	LogLevel     string              `yaml:"log_level"`
	SentryDSN    string              `yaml:"sentry_dsn"`
	Healthchecks *ConfigHealthchecks `yaml:"healthchecks"`
	Path         *ConfigPaths        `yaml:"path"`
	Auth         *ConfigAuth         `yaml:"auth"`
	Detection    *ConfigDetection    `yaml:"detection"`
	Patterns     *ConfigPatterns     `yaml:"patterns"`
	Blocklist    *ConfigBlocklist    `yaml:"blocklist"`
	Cache        *ConfigCache        `yaml:"cache"`
}

// ConfigHealthchecks - healthchecks.io configuration
type ConfigHealthchecks struct {
	URL  string `yaml:"url"`
	UUID string `yaml:"uuid"`
}

// ConfigPaths - paths configuration
type ConfigPaths struct {
	Data string `yaml:"data"`
}

// ConfigAuth - auth-related configuration
type ConfigAuth struct {
	Admin   echobasicauth.Auth `yaml:"admin"`
	Metrics echobasicauth.Auth `yaml:"metrics"`
}

// ConfigDetection - language detection configuration
type ConfigDetection struct {
	Backend             string   `yaml:"backend"`               // lingua or whatlanggo
	Languages           []string `yaml:"languages"`             // ISO 639-1 codes to load, or ALL
	Threshold           int      `yaml:"threshold"`             // minimal normalized text length, in characters
	DefaultLocale       string   `yaml:"default_locale"`        // system-wide fallback locale
	MinConfidence       float64  `yaml:"min_confidence"`        // minimal classifier confidence to consider result reliable
	MinRelativeDistance float64  `yaml:"min_relative_distance"` // lingua only
	CacheSize           int      `yaml:"cache_size"`            // classifier results LRU size, negative value disables the cache
	Workers             int      `yaml:"workers"`               // batch detection workers
	MaxBody             string   `yaml:"max_body"`              // HTTP body limit, e.g. 1M
}

// ConfigPatterns - noise token patterns removed before classification.
// Empty values fall back to the built-in patterns.
type ConfigPatterns struct {
	URLRelaxed bool   `yaml:"url_relaxed"`
	Mention    string `yaml:"mention"`
	Hashtag    string `yaml:"hashtag"`
	Shortcode  string `yaml:"shortcode"`
}

// ConfigCache - HTTP cache configuration
type ConfigCache struct {
	MaxAge int `yaml:"max_age"` // Cache-Control max-age of the cacheable endpoints, in seconds
}

// ConfigBlocklist - blocklist related configuration
type ConfigBlocklist struct {
	IPs []string `yaml:"ips"`
}

// ApplyDefaults fills missing config values
func (cfg *Config) ApplyDefaults() {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Healthchecks == nil {
		cfg.Healthchecks = &ConfigHealthchecks{}
	}
	if cfg.Path == nil {
		cfg.Path = &ConfigPaths{}
	}
	if cfg.Path.Data == "" {
		cfg.Path.Data = "langdetect.db"
	}
	if cfg.Auth == nil {
		cfg.Auth = &ConfigAuth{}
	}
	if cfg.Patterns == nil {
		cfg.Patterns = &ConfigPatterns{}
	}
	if cfg.Blocklist == nil {
		cfg.Blocklist = &ConfigBlocklist{}
	}
	if cfg.Cache == nil {
		cfg.Cache = &ConfigCache{}
	}
	if cfg.Cache.MaxAge <= 0 {
		cfg.Cache.MaxAge = 86400
	}
	if cfg.Detection == nil {
		cfg.Detection = &ConfigDetection{}
	}
	cfg.Detection.applyDefaults()
}

func (d *ConfigDetection) applyDefaults() {
	if d.Backend == "" {
		d.Backend = BackendLingua
	}
	if len(d.Languages) == 0 {
		d.Languages = []string{AllLanguages}
	}
	if d.Threshold <= 0 {
		d.Threshold = DefaultThreshold
	}
	if d.DefaultLocale == "" {
		d.DefaultLocale = DefaultLocale
	}
	if d.MinRelativeDistance == 0 {
		d.MinRelativeDistance = 0.1
	}
	if d.CacheSize == 0 {
		d.CacheSize = 10000
	}
	if d.Workers <= 0 {
		d.Workers = 4
	}
	if d.MaxBody == "" {
		d.MaxBody = "1M"
	}
}
