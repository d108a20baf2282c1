package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/soapywu/pbxedit/internal/config"
	"github.com/soapywu/pbxedit/internal/ctxlog"
	"github.com/soapywu/pbxedit/internal/output"
)

// globalFlags are shared by every command.
type globalFlags struct {
	verbose    bool
	quiet      bool
	configPath string
	color      string
}

// setup loads the configuration and attaches the logger and printer to the
// command's context.
func (g *globalFlags) setup(cmd *cobra.Command, s streams) (config.Config, error) {
	path, err := config.Path(g.configPath)
	if err != nil {
		return config.Config{}, &ExitError{Code: 2, Message: err.Error()}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, &ExitError{Code: 2, Message: err.Error()}
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = g.color
		if err := cfg.Validate(); err != nil {
			return config.Config{}, &ExitError{Code: 2, Message: err.Error()}
		}
	}

	level := slog.LevelInfo
	switch {
	case g.verbose:
		level = slog.LevelDebug
	case g.quiet:
		level = slog.LevelError
	}
	logger := ctxlog.New(s.err, level)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ctxlog.WithLogger(ctx, logger)
	ctx = output.WithPrinter(ctx, output.New(s.out, cfg.Color))
	cmd.SetContext(ctx)

	logger.Debug("config loaded", "path", path, "extensions", cfg.SourceExtensions, "format", cfg.Format)
	return cfg, nil
}

func newRootCmd(s streams) *cobra.Command {
	g := &globalFlags{}
	add := &addFlags{}

	cmd := &cobra.Command{
		Use:   "pbxedit <project-file> <source-file>...",
		Short: "Add source files to an Xcode project",
		Long: `pbxedit registers source files with an Xcode project.pbxproj file.

For every source file it adds a file reference, a build file, an entry in
the group named after the file's parent directory and an entry in the
Sources build phase. Files already in the project are skipped. The project
is copied to <project-file>.bak before it is changed.

Examples:
  pbxedit App.xcodeproj/project.pbxproj App/Views/Foo.swift
  git diff --name-only | pbxedit App.xcodeproj/project.pbxproj -
  pbxedit --dry-run --format json App.xcodeproj/project.pbxproj App/Bar.swift`,
		Args:                       cobra.MinimumNArgs(2),
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.setup(cmd, s)
			if err != nil {
				return err
			}
			return runAdd(cmd.Context(), cfg, add, cmd, s, args[0], args[1:])
		},
	}
	cmd.SetIn(s.in)
	cmd.SetOut(s.out)
	cmd.SetErr(s.err)

	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log every edit step")
	cmd.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "Only log errors")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default $PBXEDIT_CONFIG or ~/.config/pbxedit/config.toml)")
	cmd.PersistentFlags().StringVar(&g.color, "color", config.ColorAuto, "Colorize output: auto, always or never")

	cmd.Flags().BoolVarP(&add.dryRun, "dry-run", "n", false, "Show what would be added without writing anything")
	cmd.Flags().BoolVar(&add.strict, "strict", false, "Exit non-zero when any file fails")
	cmd.Flags().StringVar(&add.format, "format", config.FormatText, "Report format: text, json or yaml")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddCommand(newRestoreCmd(g, s))
	return cmd
}
