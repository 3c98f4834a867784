package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/sizecat/internal/catalog"
	"github.com/JonMunkholm/sizecat/internal/core"
	"github.com/JonMunkholm/sizecat/internal/generate"
	"github.com/JonMunkholm/sizecat/internal/logging"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		count       int
		perCategory int
		seed        uint64
		omitZero    bool
		out         string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sample catalog in the profile's layout",
		Long: `Generate a sample catalog in the selected profile's layout.

The flat layout writes --count products, two in three with a size field.
The described layout writes --per-category products for every category,
each with a size block in its description. The columns layout writes
--count products with one quantity column per size.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if !flags.Changed("count") {
				count = a.cfg.Catalog.Count
			}
			if !flags.Changed("per-category") {
				perCategory = a.cfg.Catalog.PerCategory
			}
			if !flags.Changed("seed") {
				seed = a.cfg.Catalog.Seed
			}
			if count <= 0 || perCategory <= 0 {
				return fmt.Errorf("count and per-category must be positive")
			}

			prof, codec, layout, err := a.profile()
			if err != nil {
				return err
			}
			if !flags.Changed("omit-zero") {
				omitZero = prof.OmitsZero()
			}
			if seed == 0 {
				seed = rand.Uint64()
			}

			log := logging.WithFields(cmd.Context(),
				"profile", prof.Name,
				"layout", layout.Key,
				"seed", seed,
			)

			gen, err := generate.New(codec, generate.Config{Seed: seed})
			if err != nil {
				return err
			}

			var products []catalog.Product
			switch layout.Source {
			case core.SizesInColumn:
				products = gen.Flat(count, generate.FlatOptions{OmitZero: omitZero})
			case core.SizesInDescription:
				products = gen.Described(perCategory)
			case core.SizesPerColumn:
				products = gen.Columns(count)
			default:
				return fmt.Errorf("layout %q: unsupported size source %s", layout.Key, layout.Source)
			}

			err = writeOutput(cmd, out, func(w io.Writer) error {
				return catalog.Write(w, layout, products, codec)
			})
			if err != nil {
				return fmt.Errorf("write catalog: %w", err)
			}

			log.Info("catalog generated",
				"products", len(products),
				"omit_zero", omitZero,
				"out", outputName(out),
			)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&count, "count", 0, "products to generate for flat and columns layouts (env CATALOG_COUNT)")
	f.IntVar(&perCategory, "per-category", 0, "products per category for the described layout (env CATALOG_PER_CATEGORY)")
	f.Uint64Var(&seed, "seed", 0, "random seed, 0 picks one (env CATALOG_SEED)")
	f.BoolVar(&omitZero, "omit-zero", false, "drop zero quantities from size fields (default from profile)")
	f.StringVarP(&out, "out", "o", "", "output file, stdout when empty")
	return cmd
}
