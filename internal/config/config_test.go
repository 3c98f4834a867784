package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

var envVars = []string{
	"CATALOG_PROFILE", "CATALOG_PROFILES_FILE", "CATALOG_SEED", "CATALOG_COUNT",
	"CATALOG_PER_CATEGORY", "CATALOG_MAX_CONCURRENT", "CATALOG_MISSING_MARKER", "REPORT_FORMAT",
	"REPORT_MAX_DIAGNOSTICS", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every variable Load reads; blank values take defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range envVars {
		t.Setenv(name, "")
	}
}

func validConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{Profile: "import", Count: 100, PerCategory: 20, MaxConcurrent: 4},
		Report:  ReportConfig{Format: "text", MaxDiagnostics: 50},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Catalog.Profile != "import" {
		t.Errorf("Catalog.Profile = %q, want %q", cfg.Catalog.Profile, "import")
	}
	if cfg.Catalog.Seed != 0 {
		t.Errorf("Catalog.Seed = %d, want 0", cfg.Catalog.Seed)
	}
	if cfg.Catalog.Count != 100 {
		t.Errorf("Catalog.Count = %d, want %d", cfg.Catalog.Count, 100)
	}
	if cfg.Catalog.PerCategory != 20 {
		t.Errorf("Catalog.PerCategory = %d, want %d", cfg.Catalog.PerCategory, 20)
	}
	if cfg.Catalog.MaxConcurrent != 4 {
		t.Errorf("Catalog.MaxConcurrent = %d, want %d", cfg.Catalog.MaxConcurrent, 4)
	}
	if !reflect.DeepEqual(cfg.Catalog.MissingMarkers, []string{"nan", "n/a"}) {
		t.Errorf("Catalog.MissingMarkers = %v", cfg.Catalog.MissingMarkers)
	}
	if cfg.Report.Format != "text" || cfg.Report.MaxDiagnostics != 50 {
		t.Errorf("Report = %+v", cfg.Report)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_PROFILE", "described")
	t.Setenv("CATALOG_SEED", "18446744073709551615")
	t.Setenv("CATALOG_COUNT", "7")
	t.Setenv("CATALOG_MISSING_MARKER", " NaN , - ,")
	t.Setenv("REPORT_FORMAT", "html")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Catalog.Profile != "described" {
		t.Errorf("Catalog.Profile = %q, want %q", cfg.Catalog.Profile, "described")
	}
	if cfg.Catalog.Seed != 18446744073709551615 {
		t.Errorf("Catalog.Seed = %d, want max uint64", cfg.Catalog.Seed)
	}
	if cfg.Catalog.Count != 7 {
		t.Errorf("Catalog.Count = %d, want %d", cfg.Catalog.Count, 7)
	}
	if !reflect.DeepEqual(cfg.Catalog.MissingMarkers, []string{"NaN", "-"}) {
		t.Errorf("Catalog.MissingMarkers = %q", cfg.Catalog.MissingMarkers)
	}
	if cfg.Report.Format != "html" {
		t.Errorf("Report.Format = %q, want %q", cfg.Report.Format, "html")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_COUNT", "lots")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for non-numeric CATALOG_COUNT")
	}
	if !strings.Contains(err.Error(), "CATALOG_COUNT") {
		t.Errorf("error should mention CATALOG_COUNT: %v", err)
	}
}

func TestLoad_ValidationFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected validation error for zero count")
	}
}

func TestLoadStruct_TagsAndKinds(t *testing.T) {
	var target struct {
		Workers  int      `env:"SIZECAT_TEST_WORKERS" default:"3"`
		Seed     uint64   `env:"SIZECAT_TEST_SEED"`
		Markers  []string `env:"SIZECAT_TEST_MARKERS" default:"nan,n/a"`
		Enabled  bool     `env:"SIZECAT_TEST_ENABLED" default:"true"`
		Required string   `env:"SIZECAT_TEST_REQUIRED" required:"true"`
	}

	t.Setenv("SIZECAT_TEST_WORKERS", "")
	t.Setenv("SIZECAT_TEST_SEED", "42")
	t.Setenv("SIZECAT_TEST_MARKERS", "NaN, nan ,N/A,,-")
	t.Setenv("SIZECAT_TEST_ENABLED", "")
	os.Unsetenv("SIZECAT_TEST_REQUIRED")

	err := loadStruct(reflect.ValueOf(&target).Elem())
	if err == nil || !strings.Contains(err.Error(), "SIZECAT_TEST_REQUIRED") {
		t.Fatalf("loadStruct() error = %v, want missing SIZECAT_TEST_REQUIRED", err)
	}

	t.Setenv("SIZECAT_TEST_REQUIRED", "set")
	if err := loadStruct(reflect.ValueOf(&target).Elem()); err != nil {
		t.Fatalf("loadStruct() error = %v", err)
	}
	if target.Workers != 3 || target.Seed != 42 {
		t.Errorf("Workers, Seed = %d, %d, want 3, 42", target.Workers, target.Seed)
	}
	if want := []string{"NaN", "N/A", "-"}; !reflect.DeepEqual(target.Markers, want) {
		t.Errorf("Markers = %q, want %q", target.Markers, want)
	}
	if !target.Enabled || target.Required != "set" {
		t.Errorf("target = %+v", target)
	}
}

func TestCheckStruct_Rules(t *testing.T) {
	type rules struct {
		Count  int    `env:"SIZECAT_TEST_COUNT" min:"1"`
		Limit  int    `env:"SIZECAT_TEST_LIMIT" min:"0"`
		Format string `env:"SIZECAT_TEST_FORMAT" oneof:"text,html"`
		Name   string `env:"SIZECAT_TEST_NAME" nonblank:"true"`
		Free   string `env:"SIZECAT_TEST_FREE"`
	}

	tests := []struct {
		name string
		in   rules
		want []string
	}{
		{
			name: "all satisfied",
			in:   rules{Count: 1, Limit: 0, Format: "html", Name: "x"},
		},
		{
			name: "oneof ignores case",
			in:   rules{Count: 5, Format: "TEXT", Name: "x"},
		},
		{
			name: "each rule broken",
			in:   rules{Count: 0, Limit: -2, Format: "pdf", Name: "  "},
			want: []string{
				"SIZECAT_TEST_COUNT (0) must be at least 1",
				"SIZECAT_TEST_LIMIT (-2) must be at least 0",
				`SIZECAT_TEST_FORMAT ("pdf") must be one of: text, html`,
				"SIZECAT_TEST_NAME must not be blank",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkStruct(reflect.ValueOf(&tt.in).Elem())
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("checkStruct() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "empty profile",
			mutate:  func(c *Config) { c.Catalog.Profile = " " },
			wantErr: []string{"CATALOG_PROFILE"},
		},
		{
			name:    "bad report format",
			mutate:  func(c *Config) { c.Report.Format = "pdf" },
			wantErr: []string{"REPORT_FORMAT"},
		},
		{
			name: "all problems reported together",
			mutate: func(c *Config) {
				c.Catalog.Count = 0
				c.Catalog.PerCategory = -1
				c.Catalog.MaxConcurrent = 0
				c.Report.MaxDiagnostics = -1
				c.Logging.Level = "verbose"
				c.Logging.Format = "xml"
			},
			wantErr: []string{"CATALOG_COUNT", "CATALOG_PER_CATEGORY", "CATALOG_MAX_CONCURRENT", "REPORT_MAX_DIAGNOSTICS", "LOG_LEVEL", "LOG_FORMAT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error should mention %s: %v", want, err)
				}
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	str := validConfig().String()
	for _, want := range []string{`Profile: "import"`, `Format: "text"`, "MaxDiagnostics: 50"} {
		if !strings.Contains(str, want) {
			t.Errorf("String() = %q, missing %q", str, want)
		}
	}
}

// ----------------------------------------------------------------------------
// Profiles
// ----------------------------------------------------------------------------

func TestBuiltinProfiles(t *testing.T) {
	ps := BuiltinProfiles()

	if got := ps.Names(); !reflect.DeepEqual(got, []string{"columns", "described", "import", "import-vi"}) {
		t.Errorf("Names() = %v", got)
	}

	for _, name := range ps.Names() {
		p, _ := ps.Get(name)
		if err := p.Validate(); err != nil {
			t.Errorf("built-in profile %q invalid: %v", name, err)
		}
	}

	imp, err := ps.Get("IMPORT")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !imp.OmitsZero() {
		t.Error("import profile should omit zeros")
	}
	codec, err := imp.Codec()
	if err != nil {
		t.Fatalf("Codec() error = %v", err)
	}
	if len(codec.Sizes()) != 4 || codec.NoInfo() != "No information" {
		t.Errorf("import codec sizes = %v, sentinel = %q", codec.Sizes(), codec.NoInfo())
	}

	vi, err := ps.Get("import-vi")
	if err != nil {
		t.Fatalf("Get(import-vi) error = %v", err)
	}
	viCodec, err := vi.Codec()
	if err != nil {
		t.Fatalf("Codec() error = %v", err)
	}
	if viCodec.NoInfo() != "Không có thông tin" || !vi.OmitsZero() || vi.Layout != "flat" {
		t.Errorf("import-vi = %+v, sentinel = %q", vi, viCodec.NoInfo())
	}
	if q, err := viCodec.Decode("Không có thông tin"); err != nil || len(q) != 0 {
		t.Errorf("Decode(Vietnamese sentinel) = %v, %v", q, err)
	}

	if _, err := ps.Get("missing"); err == nil || !strings.Contains(err.Error(), "available: columns, described, import, import-vi") {
		t.Errorf("Get(missing) error = %v", err)
	}
}

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write profiles: %v", err)
	}
	return path
}

func TestLoadProfiles_NoFile(t *testing.T) {
	ps, err := LoadProfiles("")
	if err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}
	if len(ps) != 4 {
		t.Errorf("got %d profiles, want 4", len(ps))
	}
}

func TestLoadProfiles_OverrideAndExtend(t *testing.T) {
	path := writeProfiles(t, `
profiles:
  import:
    no_info: "n/a"
    omit_zero: false
  Wholesale:
    label: Wholesale sheet
    sizes: [XS, S, M, L, XL]
    layout: flat
`)

	ps, err := LoadProfiles(path)
	if err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}

	imp, _ := ps.Get("import")
	if imp.NoInfo != "n/a" {
		t.Errorf("import NoInfo = %q, want n/a", imp.NoInfo)
	}
	if imp.OmitsZero() {
		t.Error("import omit_zero override ignored")
	}
	if len(imp.Sizes) != 4 || imp.Layout != "flat" {
		t.Errorf("import lost built-in fields: %+v", imp)
	}

	ws, err := ps.Get("wholesale")
	if err != nil {
		t.Fatalf("Get(wholesale) error = %v", err)
	}
	if ws.Name != "wholesale" || ws.Label != "Wholesale sheet" {
		t.Errorf("wholesale = %+v", ws)
	}
	codec, err := ws.Codec()
	if err != nil {
		t.Fatalf("Codec() error = %v", err)
	}
	if codec.NoInfo() != "No information" {
		t.Errorf("new profile should take the default sentinel, got %q", codec.NoInfo())
	}
	if !codec.Known("XS") {
		t.Error("wholesale codec should know XS")
	}
}

func TestLoadProfiles_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "unknown layout",
			content: `
profiles:
  odd:
    sizes: [S]
    layout: sideways
`,
			wantErr: `unknown layout "sideways"`,
		},
		{
			name: "no sizes",
			content: `
profiles:
  empty:
    layout: flat
`,
			wantErr: "size vocabulary is empty",
		},
		{
			name: "unknown key",
			content: `
profiles:
  import:
    colour: red
`,
			wantErr: "colour",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProfiles(writeProfiles(t, tt.content))
			if err == nil {
				t.Fatal("LoadProfiles() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadProfiles(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadProfiles() expected error for missing file")
	}
}
