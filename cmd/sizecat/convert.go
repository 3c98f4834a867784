package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/sizecat/internal/catalog"
	"github.com/JonMunkholm/sizecat/internal/core"
	"github.com/JonMunkholm/sizecat/internal/logging"
)

// errRowsSkipped fails a --strict convert that left rows behind.
var errRowsSkipped = errors.New("some rows could not be converted")

func newConvertCmd(a *app) *cobra.Command {
	var (
		to       string
		omitZero bool
		out      string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Rewrite a catalog in another profile's layout",
		Long: `Read a catalog in the selected profile's layout and write it in the
layout of the --to profile.

Size breakdowns are decoded and re-encoded under the target vocabulary and
sentinel. A size block already in a description is rewritten in place when
the target keeps sizes in the description, and stripped otherwise. Rows
that fail validation, hold a malformed size field, or carry stock in sizes
the target lacks are skipped and logged.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			fromProf, fromCodec, fromLayout, err := a.profile()
			if err != nil {
				return err
			}
			toProf, toCodec, toLayout, err := a.resolve(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			if !cmd.Flags().Changed("omit-zero") {
				omitZero = toProf.OmitsZero()
			}

			log := logging.WithFields(ctx, "file", path, "from", fromProf.Name, "to", toProf.Name)

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer f.Close()

			res, err := catalog.Read(ctx, f, fromLayout, fromCodec, catalog.ReadOptions{MissingMarkers: a.cfg.Catalog.MissingMarkers})
			if err != nil {
				log.Error("catalog unreadable", "error", err, "code", core.ErrorCode(err))
				return fmt.Errorf("%s: %w", path, core.NewUserError(err))
			}

			skipped := len(res.Rejected)
			for _, rej := range res.Rejected {
				log.Warn("row rejected", "line", rej.Line, "reason", rej.Reason)
			}

			converted := make([]catalog.Product, 0, len(res.Products))
			for _, p := range res.Products {
				cp, err := catalog.Convert(p, fromCodec, toCodec, toLayout, omitZero)
				if err != nil {
					skipped++
					log.Warn("row not converted",
						"line", p.Line,
						"product", p.Label(),
						"code", core.ErrorCode(err),
						"error", err,
					)
					continue
				}
				converted = append(converted, cp)
			}

			err = writeOutput(cmd, out, func(w io.Writer) error {
				return catalog.Write(w, toLayout, converted, toCodec)
			})
			if err != nil {
				return fmt.Errorf("write catalog: %w", err)
			}

			log.Info("catalog converted",
				"products", len(converted),
				"skipped", skipped,
				"layout", toLayout.Key,
				"omit_zero", omitZero,
				"out", outputName(out),
			)

			if strict && skipped > 0 {
				return errRowsSkipped
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&to, "to", "", "target profile")
	f.BoolVar(&omitZero, "omit-zero", false, "drop zero quantities from size fields (default from target profile)")
	f.StringVarP(&out, "out", "o", "", "output file, stdout when empty")
	f.BoolVar(&strict, "strict", false, "exit non-zero when any row is skipped")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
