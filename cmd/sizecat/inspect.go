package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/sizecat/internal/catalog"
	"github.com/JonMunkholm/sizecat/internal/check"
	"github.com/JonMunkholm/sizecat/internal/core"
	"github.com/JonMunkholm/sizecat/internal/logging"
	"github.com/JonMunkholm/sizecat/internal/report"
	"github.com/JonMunkholm/sizecat/internal/sizes"
)

// errIssuesFound fails a --strict inspect that flagged any row.
var errIssuesFound = errors.New("catalog has rejected rows, malformed size fields or total mismatches")

// inspection is the outcome of checking one catalog file.
type inspection struct {
	read    *catalog.ReadResult
	report  check.Report
	results []check.RecordResult
}

func newInspectCmd(a *app) *cobra.Command {
	var (
		format    string
		annotated string
		out       string
		maxDiag   int
		jobs      int
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Check catalog size fields and report size statistics",
		Long: `Check one or more catalogs in the selected profile's layout.

Every size field is decoded and reconciled against its row's declared total.
With several files the report covers them all; files are read in parallel,
at most --jobs at a time.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, paths []string) error {
			ctx := cmd.Context()
			flags := cmd.Flags()
			if !flags.Changed("format") {
				format = a.cfg.Report.Format
			}
			if !flags.Changed("max-diagnostics") {
				maxDiag = a.cfg.Report.MaxDiagnostics
			}
			if !flags.Changed("jobs") {
				jobs = a.cfg.Catalog.MaxConcurrent
			}
			format = strings.ToLower(format)
			if format != "text" && format != "html" {
				return fmt.Errorf("unknown report format %q (want text or html)", format)
			}
			if annotated != "" && len(paths) > 1 {
				return fmt.Errorf("--annotated needs a single input file, got %d", len(paths))
			}

			prof, codec, layout, err := a.profile()
			if err != nil {
				return err
			}
			log := logging.WithFields(ctx, "profile", prof.Name, "files", len(paths))

			opts := catalog.ReadOptions{MissingMarkers: a.cfg.Catalog.MissingMarkers}
			inspections, err := inspectFiles(ctx, paths, layout, codec, opts, core.NewReadLimiter(jobs, 0))
			if err != nil {
				return err
			}

			merged := check.NewReport(codec)
			var (
				results  []check.RecordResult
				rejected int
			)
			for _, ins := range inspections {
				merged = check.Merge(merged, ins.report)
				results = append(results, ins.results...)
				rejected += len(ins.read.Rejected)
			}
			mismatches := check.Mismatches(results)

			title := fmt.Sprintf("Size report: %s (%s)", filepath.Base(paths[0]), prof.Name)
			if len(paths) > 1 {
				title = fmt.Sprintf("Size report: %d files (%s)", len(paths), prof.Name)
			}
			ropts := report.Options{
				Title:          title,
				RunID:          a.runID,
				MaxDiagnostics: maxDiag,
				Rejected:       rejected,
			}
			err = writeOutput(cmd, out, func(w io.Writer) error {
				if format == "html" {
					return report.HTML(merged, results, ropts).Render(ctx, w)
				}
				return report.Text(w, merged, results, ropts)
			})
			if err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			if annotated != "" {
				ins := inspections[0]
				var n int
				err := writeOutput(cmd, annotated, func(w io.Writer) error {
					var werr error
					n, werr = report.WriteAnnotated(w, ins.read, ins.results, codec)
					return werr
				})
				if err != nil {
					return fmt.Errorf("write annotated rows: %w", err)
				}
				log.Info("annotated rows written", "rows", n, "out", outputName(annotated))
			}

			log.Info("inspect finished",
				"products", merged.Total,
				"with_sizes", merged.WithSizes,
				"rejected", rejected,
				"malformed", len(merged.Diagnostics),
				"mismatches", len(mismatches),
			)

			if strict && rejected+len(merged.Diagnostics)+len(mismatches) > 0 {
				return errIssuesFound
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&format, "format", "", "report format: text or html (env REPORT_FORMAT)")
	f.StringVar(&annotated, "annotated", "", "write flagged rows as CSV with a Status column to this file")
	f.StringVarP(&out, "out", "o", "", "report file, stdout when empty")
	f.IntVar(&maxDiag, "max-diagnostics", 0, "cap on listed problems, 0 lists all (env REPORT_MAX_DIAGNOSTICS)")
	f.IntVarP(&jobs, "jobs", "j", 0, "files read in parallel (env CATALOG_MAX_CONCURRENT)")
	f.BoolVar(&strict, "strict", false, "exit non-zero when any row is flagged")
	return cmd
}

// inspectFiles reads and checks every path, at most limiter.MaxConcurrent()
// at a time. Results keep the order of paths. The first unreadable file, in
// path order, fails the whole run.
func inspectFiles(ctx context.Context, paths []string, layout core.Layout, codec *sizes.Codec, opts catalog.ReadOptions, limiter *core.ReadLimiter) ([]inspection, error) {
	out := make([]inspection, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := limiter.Acquire(ctx); err != nil {
				errs[i] = err
				return
			}
			defer limiter.Release()

			fileOpts := opts
			if len(paths) > 1 {
				fileOpts.File = filepath.Base(path)
			}
			out[i], errs[i] = inspectFile(ctx, path, layout, codec, fileOpts)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func inspectFile(ctx context.Context, path string, layout core.Layout, codec *sizes.Codec, opts catalog.ReadOptions) (inspection, error) {
	log := logging.WithFields(ctx, "file", path)

	f, err := os.Open(path)
	if err != nil {
		return inspection{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	res, err := catalog.Read(ctx, f, layout, codec, opts)
	if err != nil {
		log.Error("catalog unreadable", "error", err, "code", core.ErrorCode(err))
		return inspection{}, fmt.Errorf("%s: %w", path, core.NewUserError(err))
	}

	for _, rej := range res.Rejected {
		log.Warn("row rejected", "line", rej.Line, "reason", rej.Reason)
	}

	ins := inspection{
		read:    res,
		report:  check.Aggregate(res.Products, codec),
		results: check.ReconcileAll(res.Products, codec),
	}

	for _, d := range ins.report.Diagnostics {
		log.Warn("size field malformed",
			"line", d.Line,
			"product", d.Name,
			"code", d.Code,
			"error", d.Err,
		)
	}
	for _, rr := range check.Mismatches(ins.results) {
		log.Info("total mismatch",
			"line", rr.Line,
			"product", rr.Name,
			"declared", rr.Result.Expected,
			"sum", rr.Result.Actual,
		)
	}

	log.Debug("catalog checked", "products", len(res.Products), "rejected", len(res.Rejected))
	return ins, nil
}
