// Package generate builds sample catalogs for import/export testing.
//
// Each generation path writes the size breakdown in one representation:
// Flat puts an encoded field in its own column, Described embeds a block in
// the description, and Columns writes one quantity per size. Generated
// products always reconcile: the declared total is the breakdown's sum.
package generate

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/sizecat/internal/catalog"
	"github.com/JonMunkholm/sizecat/internal/core"
	"github.com/JonMunkholm/sizecat/internal/sizes"
)

// priceStep rounds generated prices.
const priceStep = 10_000

// Config configures a Generator. Zero fields take the package defaults.
type Config struct {
	Attributes   Attributes
	Categories   []Category
	Descriptions []string
	Seed         uint64
}

// Generator produces sample products. It is not safe for concurrent use.
type Generator struct {
	codec        *sizes.Codec
	attrs        Attributes
	categories   []Category
	descriptions []string
	rng          *rand.Rand
}

// New returns a Generator for codec's vocabulary. The same seed yields the
// same catalog.
func New(codec *sizes.Codec, cfg Config) (*Generator, error) {
	g := &Generator{
		codec:        codec,
		attrs:        cfg.Attributes,
		categories:   cfg.Categories,
		descriptions: cfg.Descriptions,
		rng:          rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	if len(g.attrs.Colors) == 0 {
		g.attrs = DefaultAttributes
	}
	if len(g.categories) == 0 {
		g.categories = DefaultCategories
	}
	if len(g.descriptions) == 0 {
		g.descriptions = DescriptionTemplates
	}

	for _, c := range g.categories {
		if c.Name == "" {
			return nil, fmt.Errorf("category with empty name")
		}
		if len(c.Templates) == 0 {
			return nil, fmt.Errorf("category %q has no name templates", c.Name)
		}
		if c.MinPrice < 0 || c.MaxPrice < c.MinPrice {
			return nil, fmt.Errorf("category %q has invalid price range %d-%d", c.Name, c.MinPrice, c.MaxPrice)
		}
	}
	return g, nil
}

// FlatOptions tunes the flat (size column) path.
type FlatOptions struct {
	// OmitZero drops zero-quantity sizes from the encoded field. The declared
	// total still counts every size, so readers must treat absent sizes as zero.
	OmitZero bool
}

// Flat generates n products with the breakdown in its own column.
//
// Two in three products carry size information. Each size is out of stock
// with probability 1/4, otherwise holds 1-50. Products without size
// information get the sentinel and a free-standing total of 10-200.
func (g *Generator) Flat(n int, opts FlatOptions) []catalog.Product {
	out := make([]catalog.Product, 0, n)
	for i := 0; i < n; i++ {
		cat := g.categories[g.rng.IntN(len(g.categories))]
		p := g.base(cat, core.SizesInColumn)

		if g.rng.IntN(3) < 2 {
			q := make(sizes.Quantities)
			for _, code := range g.codec.Sizes() {
				if g.rng.Float64() < 0.25 {
					q[code] = 0
				} else {
					q[code] = 1 + g.rng.IntN(50)
				}
			}
			p.SizeCell = g.codec.Encode(q, opts.OmitZero)
			p.Total = sizes.Sum(q)
		} else {
			p.SizeCell = g.codec.NoInfo()
			p.Total = 10 + g.rng.IntN(191)
		}
		out = append(out, p)
	}
	return out
}

// Described generates perCategory products for every category, each with a
// full-vocabulary block (quantities 0-100) embedded in its description.
func (g *Generator) Described(perCategory int) []catalog.Product {
	out := make([]catalog.Product, 0, perCategory*len(g.categories))
	for _, cat := range g.categories {
		for i := 0; i < perCategory; i++ {
			p := g.base(cat, core.SizesInDescription)
			q := g.fullBreakdown(100)
			p.Description = g.codec.Embed(g.describe(p.Name), q)
			p.Total = sizes.Sum(q)
			out = append(out, p)
		}
	}
	return out
}

// Columns generates n products with one quantity column per size (0-20).
func (g *Generator) Columns(n int) []catalog.Product {
	out := make([]catalog.Product, 0, n)
	for i := 0; i < n; i++ {
		cat := g.categories[g.rng.IntN(len(g.categories))]
		p := g.base(cat, core.SizesPerColumn)
		p.Columns = g.fullBreakdown(20)
		p.Total = sizes.Sum(p.Columns)
		p.Description = g.describe(p.Name)
		out = append(out, p)
	}
	return out
}

func (g *Generator) base(cat Category, source core.SizeSource) catalog.Product {
	return catalog.Product{
		Name:     g.name(cat),
		Category: cat.Name,
		Price:    g.price(cat),
		Source:   source,
	}
}

func (g *Generator) fullBreakdown(max int) sizes.Quantities {
	q := make(sizes.Quantities)
	for _, code := range g.codec.Sizes() {
		q[code] = g.rng.IntN(max + 1)
	}
	return q
}

func (g *Generator) price(cat Category) decimal.Decimal {
	lo, hi := cat.MinPrice/priceStep, cat.MaxPrice/priceStep
	steps := lo + g.rng.Int64N(hi-lo+1)
	return decimal.NewFromInt(steps * priceStep)
}

func (g *Generator) name(cat Category) string {
	tmpl := cat.Templates[g.rng.IntN(len(cat.Templates))]
	return capitalize(g.fill(tmpl, ""))
}

func (g *Generator) describe(name string) string {
	tmpl := g.descriptions[g.rng.IntN(len(g.descriptions))]
	return g.fill(tmpl, name)
}

func (g *Generator) fill(tmpl, name string) string {
	a := g.attrs
	return strings.NewReplacer(
		"{name}", name,
		"{color}", g.pick(a.Colors),
		"{style}", g.pick(a.Styles),
		"{material}", g.pick(a.Materials),
		"{brand}", g.pick(a.Brands),
		"{fit}", g.pick(a.Fits),
		"{occasion}", g.pick(a.Occasions),
		"{pattern}", g.pick(a.Patterns),
		"{sleeve}", g.pick(a.Sleeves),
	).Replace(tmpl)
}

func (g *Generator) pick(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[g.rng.IntN(len(words))]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}
