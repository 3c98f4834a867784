package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/JonMunkholm/sizecat/internal/core"
	"github.com/JonMunkholm/sizecat/internal/sizes"
)

// Profile describes one catalog variant: its size vocabulary, the literals
// used in size fields and the file layout it is read and written in.
type Profile struct {
	Name     string   `mapstructure:"-"`
	Label    string   `mapstructure:"label"`
	Sizes    []string `mapstructure:"sizes"`
	NoInfo   string   `mapstructure:"no_info"`
	OpenTag  string   `mapstructure:"open_tag"`
	CloseTag string   `mapstructure:"close_tag"`
	Layout   string   `mapstructure:"layout"`
	OmitZero *bool    `mapstructure:"omit_zero"`
}

// OmitsZero reports whether generated size fields drop zero quantities.
func (p Profile) OmitsZero() bool {
	return p.OmitZero != nil && *p.OmitZero
}

// Codec builds the size codec for p.
func (p Profile) Codec() (*sizes.Codec, error) {
	codes := make([]sizes.Code, len(p.Sizes))
	for i, s := range p.Sizes {
		codes[i] = sizes.Code(strings.TrimSpace(s))
	}
	c, err := sizes.NewCodec(sizes.Options{
		Sizes:    codes,
		NoInfo:   p.NoInfo,
		OpenTag:  p.OpenTag,
		CloseTag: p.CloseTag,
	})
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return c, nil
}

// LayoutSpec returns the registered layout p refers to.
func (p Profile) LayoutSpec() (core.Layout, error) {
	l, ok := core.Get(p.Layout)
	if !ok {
		return core.Layout{}, fmt.Errorf("profile %q: unknown layout %q", p.Name, p.Layout)
	}
	return l, nil
}

// Validate reports every problem with p at once.
func (p Profile) Validate() error {
	var errs []string
	if _, err := p.Codec(); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := p.LayoutSpec(); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid profile %q:\n  - %s", p.Name, strings.Join(errs, "\n  - "))
	}
	return nil
}

// Profiles is a set of profiles keyed by lowercase name.
type Profiles map[string]Profile

func boolPtr(b bool) *bool { return &b }

// BuiltinProfiles returns the profiles for the known catalog variants.
func BuiltinProfiles() Profiles {
	return Profiles{
		"import": {
			Name:     "import",
			Label:    "Import sheet, 4 sizes, zeros omitted, English sentinel",
			Sizes:    codeNames(sizes.FourSizes),
			NoInfo:   sizes.DefaultNoInfo,
			Layout:   core.LayoutFlat,
			OmitZero: boolPtr(true),
		},
		"import-vi": {
			Name:     "import-vi",
			Label:    "Import sheet, 4 sizes, zeros omitted, Vietnamese sentinel",
			Sizes:    codeNames(sizes.FourSizes),
			NoInfo:   sizes.NoInfoVietnamese,
			Layout:   core.LayoutFlat,
			OmitZero: boolPtr(true),
		},
		"described": {
			Name:     "described",
			Label:    "Catalog with size blocks in descriptions, 5 sizes",
			Sizes:    codeNames(sizes.FiveSizes),
			NoInfo:   sizes.DefaultNoInfo,
			OpenTag:  sizes.DefaultOpenTag,
			CloseTag: sizes.DefaultCloseTag,
			Layout:   core.LayoutDescribed,
			OmitZero: boolPtr(false),
		},
		"columns": {
			Name:     "columns",
			Label:    "Template with one column per size, 5 sizes",
			Sizes:    codeNames(sizes.FiveSizes),
			NoInfo:   sizes.DefaultNoInfo,
			Layout:   core.LayoutColumns,
			OmitZero: boolPtr(false),
		},
	}
}

func codeNames(codes []sizes.Code) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}

type profilesFile struct {
	Profiles map[string]Profile `mapstructure:"profiles"`
}

// LoadProfiles returns the built-in profiles, extended or overridden by the
// YAML file at path when path is not empty.
//
// A file entry named like a built-in overrides only the fields it sets:
//
//	profiles:
//	  import:
//	    no_info: "n/a"
//	  wholesale:
//	    sizes: [XS, S, M, L, XL]
//	    layout: flat
func LoadProfiles(path string) (Profiles, error) {
	profiles := BuiltinProfiles()
	if path == "" {
		return profiles, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	var file profilesFile
	if err := v.UnmarshalExact(&file); err != nil {
		return nil, fmt.Errorf("parse profiles file %s: %w", path, err)
	}

	var errs []string
	for name, entry := range file.Profiles {
		name = strings.ToLower(name)
		merged := mergeProfile(profiles[name], entry)
		merged.Name = name
		if err := merged.Validate(); err != nil {
			errs = append(errs, err.Error())
			continue
		}
		profiles[name] = merged
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return nil, fmt.Errorf("profiles file %s:\n%s", path, strings.Join(errs, "\n"))
	}
	return profiles, nil
}

// mergeProfile overlays the fields set in over onto base.
func mergeProfile(base, over Profile) Profile {
	if over.Label != "" {
		base.Label = over.Label
	}
	if len(over.Sizes) > 0 {
		base.Sizes = over.Sizes
	}
	if over.NoInfo != "" {
		base.NoInfo = over.NoInfo
	}
	if over.OpenTag != "" {
		base.OpenTag = over.OpenTag
	}
	if over.CloseTag != "" {
		base.CloseTag = over.CloseTag
	}
	if over.Layout != "" {
		base.Layout = over.Layout
	}
	if over.OmitZero != nil {
		base.OmitZero = over.OmitZero
	}
	return base
}

// Get returns the named profile.
func (ps Profiles) Get(name string) (Profile, error) {
	p, ok := ps[strings.ToLower(name)]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (available: %s)", name, strings.Join(ps.Names(), ", "))
	}
	return p, nil
}

// Names returns the profile names sorted.
func (ps Profiles) Names() []string {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
