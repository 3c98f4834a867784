package config

// loader.go fills Config from the environment and checks it against the
// rules carried in its struct tags:
//
//	env:"NAME"       variable to read
//	default:"value"  used when the variable is unset or blank
//	required:"true"  the variable must be set
//	min:"N"          integer fields: smallest accepted value
//	oneof:"a,b"      string fields: accepted values, any case
//	nonblank:"true"  string fields: must hold more than whitespace
//
// String slices are read comma-separated. Items are trimmed and repeated
// items dropped regardless of case, so "NaN,nan" is one missing marker.

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Returns an error if required values are missing or validation fails.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// setting is one env-tagged leaf field of a config struct.
type setting struct {
	env   string
	tag   reflect.StructTag
	value reflect.Value
}

// settings walks v depth-first and returns its env-tagged leaves in
// declaration order.
func settings(v reflect.Value) []setting {
	var out []setting
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}
		if field.Type.Kind() == reflect.Struct {
			out = append(out, settings(fv)...)
			continue
		}
		if env := field.Tag.Get("env"); env != "" {
			out = append(out, setting{env: env, tag: field.Tag, value: fv})
		}
	}
	return out
}

// loadStruct populates v's tagged fields from the environment.
func loadStruct(v reflect.Value) error {
	for _, s := range settings(v) {
		value := strings.TrimSpace(os.Getenv(s.env))
		if value == "" {
			if s.tag.Get("required") == "true" {
				return fmt.Errorf("required environment variable %s is not set", s.env)
			}
			value = s.tag.Get("default")
		}
		if value == "" {
			continue
		}

		if err := setField(s.value, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", s.env, value, err)
		}
	}
	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(i)

	case reflect.Uint, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer: %w", err)
		}
		field.SetUint(u)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type().Elem().Kind())
		}
		field.Set(reflect.ValueOf(splitList(value)))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

func splitList(value string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if item == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// checkStruct applies the min, oneof and nonblank rules to v's tagged
// fields and returns one message per broken rule.
func checkStruct(v reflect.Value) []string {
	var errs []string
	for _, s := range settings(v) {
		if err := checkSetting(s); err != "" {
			errs = append(errs, err)
		}
	}
	return errs
}

func checkSetting(s setting) string {
	switch s.value.Kind() {
	case reflect.Int, reflect.Int64:
		raw, ok := s.tag.Lookup("min")
		if !ok {
			return ""
		}
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Sprintf("%s: bad min rule %q", s.env, raw)
		}
		if n := s.value.Int(); n < limit {
			return fmt.Sprintf("%s (%d) must be at least %d", s.env, n, limit)
		}

	case reflect.String:
		value := s.value.String()
		if s.tag.Get("nonblank") == "true" && strings.TrimSpace(value) == "" {
			return fmt.Sprintf("%s must not be blank", s.env)
		}
		if raw, ok := s.tag.Lookup("oneof"); ok {
			allowed := strings.Split(raw, ",")
			for _, a := range allowed {
				if strings.EqualFold(value, a) {
					return ""
				}
			}
			return fmt.Sprintf("%s (%q) must be one of: %s", s.env, value, strings.Join(allowed, ", "))
		}
	}
	return ""
}

// Validate checks every tagged rule on c and reports all failures at once.
func (c *Config) Validate() error {
	errs := checkStruct(reflect.ValueOf(c).Elem())
	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// String returns a compact representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	writeStruct(&b, reflect.ValueOf(c).Elem())
	b.WriteString("}")
	return b.String()
}

func writeStruct(b *strings.Builder, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s: ", t.Field(i).Name)
		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.Struct:
			b.WriteString("{")
			writeStruct(b, fv)
			b.WriteString("}")
		case reflect.String:
			fmt.Fprintf(b, "%q", fv.String())
		default:
			fmt.Fprintf(b, "%v", fv.Interface())
		}
	}
}
