package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/sizecat/internal/config"
	"github.com/JonMunkholm/sizecat/internal/core"
	"github.com/JonMunkholm/sizecat/internal/logging"
	"github.com/JonMunkholm/sizecat/internal/sizes"
)

// app holds what every subcommand needs once flags and environment are read.
type app struct {
	cfg      *config.Config
	profiles config.Profiles
	runID    string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		profileName  string
		profilesFile string
		logLevel     string
		logFormat    string
	)

	root := &cobra.Command{
		Use:           "sizecat",
		Short:         "Generate and check product catalogs with per-size stock",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("profile") {
				cfg.Catalog.Profile = profileName
			}
			if flags.Changed("profiles-file") {
				cfg.Catalog.ProfilesFile = profilesFile
			}
			if flags.Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if flags.Changed("log-format") {
				cfg.Logging.Format = logFormat
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}

			logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

			profiles, err := config.LoadProfiles(cfg.Catalog.ProfilesFile)
			if err != nil {
				return err
			}

			a.cfg = cfg
			a.profiles = profiles
			a.runID = uuid.NewString()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithRunID(ctx, a.runID))

			logging.FromContext(cmd.Context()).Debug("configuration loaded", "config", cfg.String())
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&profileName, "profile", "", "catalog profile (env CATALOG_PROFILE, default import)")
	pf.StringVar(&profilesFile, "profiles-file", "", "YAML file with extra profiles (env CATALOG_PROFILES_FILE)")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	pf.StringVar(&logFormat, "log-format", "", "text or json (env LOG_FORMAT)")

	root.AddCommand(
		newGenerateCmd(a),
		newInspectCmd(a),
		newConvertCmd(a),
		newProfilesCmd(a),
	)
	return root
}

// profile resolves the selected profile with its codec and layout.
func (a *app) profile() (config.Profile, *sizes.Codec, core.Layout, error) {
	return a.resolve(a.cfg.Catalog.Profile)
}

// resolve looks up the named profile with its codec and layout.
func (a *app) resolve(name string) (config.Profile, *sizes.Codec, core.Layout, error) {
	p, err := a.profiles.Get(name)
	if err != nil {
		return config.Profile{}, nil, core.Layout{}, err
	}
	codec, err := p.Codec()
	if err != nil {
		return config.Profile{}, nil, core.Layout{}, err
	}
	layout, err := p.LayoutSpec()
	if err != nil {
		return config.Profile{}, nil, core.Layout{}, err
	}
	return p, codec, layout, nil
}

// writeOutput runs write against path, or the command's stdout when path is
// empty or "-".
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func outputName(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}
