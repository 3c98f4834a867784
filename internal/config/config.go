// Package config provides centralized configuration management for sizecat.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
//
// Catalog profiles (size vocabulary, sentinel, markers, layout) live apart
// from the environment; see LoadProfiles.
package config

// Config holds all application configuration.
// All settings can be configured via environment variables; command-line
// flags override them per run. Validation rules live in the field tags; see
// loader.go.
type Config struct {
	Catalog CatalogConfig
	Report  ReportConfig
	Logging LoggingConfig
}

// CatalogConfig holds catalog reading and generation settings.
type CatalogConfig struct {
	// Profile names the catalog profile to use (default: import)
	Profile string `env:"CATALOG_PROFILE" default:"import" nonblank:"true"`

	// ProfilesFile is an optional YAML file with extra or overriding profiles
	ProfilesFile string `env:"CATALOG_PROFILES_FILE"`

	// Seed seeds the generator; 0 picks a random seed (default: 0)
	Seed uint64 `env:"CATALOG_SEED" default:"0"`

	// Count is the number of products for flat and per-size generation (default: 100)
	Count int `env:"CATALOG_COUNT" default:"100" min:"1"`

	// PerCategory is the number of products per category for described generation (default: 20)
	PerCategory int `env:"CATALOG_PER_CATEGORY" default:"20" min:"1"`

	// MaxConcurrent is the maximum number of catalog files read in parallel (default: 4)
	MaxConcurrent int `env:"CATALOG_MAX_CONCURRENT" default:"4" min:"1"`

	// MissingMarkers are cell values read as "no value", comma-separated, any case (default: nan,n/a)
	MissingMarkers []string `env:"CATALOG_MISSING_MARKER" default:"nan,n/a"`
}

// ReportConfig holds consistency report settings.
type ReportConfig struct {
	// Format is the report format: text or html (default: text)
	Format string `env:"REPORT_FORMAT" default:"text" oneof:"text,html"`

	// MaxDiagnostics caps listed diagnostics and mismatches; 0 lists all (default: 50)
	MaxDiagnostics int `env:"REPORT_MAX_DIAGNOSTICS" default:"50" min:"0"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info" oneof:"debug,info,warn,error"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text" oneof:"text,json"`
}
