package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soapywu/pbxedit/internal/config"
	"github.com/soapywu/pbxedit/internal/ctxlog"
	"github.com/soapywu/pbxedit/internal/output"
	"github.com/soapywu/pbxedit/pbxproj"
)

const stdinArg = "-"

type addFlags struct {
	dryRun bool
	strict bool
	format string
}

// apply lets explicit flags win over the config file.
func (a *addFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("strict") {
		cfg.Strict = a.strict
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = a.format
	}
	return cfg.Validate()
}

func runAdd(ctx context.Context, cfg config.Config, flags *addFlags, cmd *cobra.Command, s streams, projectPath string, sources []string) error {
	if err := flags.apply(cmd, &cfg); err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	logger := ctxlog.FromContext(ctx)
	printer := output.FromContext(ctx)

	if len(sources) == 1 && sources[0] == stdinArg {
		if s.inIsTerminal() {
			return &ExitError{Code: 2, Message: "refusing to read source files from a terminal; pipe a list of paths or pass them as arguments"}
		}
		var err error
		sources, err = readSourceList(s.in)
		if err != nil {
			return &ExitError{Code: 1, Message: fmt.Sprintf("reading source files: %v", err)}
		}
		logger.Debug("source files read from stdin", "count", len(sources))
	}

	project := pbxproj.NewPbxProject(projectPath,
		pbxproj.WithLogger(logger),
		pbxproj.WithSourceExtensions(cfg.SourceExtensions...),
		pbxproj.WithSourceTree(cfg.SourceTree),
		pbxproj.WithBuildPhase(cfg.BuildPhase),
	)
	if err := project.Parse(); err != nil {
		var fatal *pbxproj.FatalInputError
		if errors.As(err, &fatal) {
			return &ExitError{Code: 1, Message: fmt.Sprintf("%s not found or unreadable: %v", projectPath, fatal.Err)}
		}
		return &ExitError{Code: 1, Message: err.Error()}
	}

	var backupPath string
	if !flags.dryRun {
		var err error
		backupPath, err = project.WriteBackup(cfg.BackupSuffix)
		if err != nil {
			return &ExitError{Code: 1, Message: err.Error()}
		}
		if cfg.Format == config.FormatText {
			printer.Printf("Backup created: %s\n", backupPath)
		}
	}

	report := project.AddSourceFiles(sources)
	report.BackupPath = backupPath
	report.DryRun = flags.dryRun

	if !flags.dryRun {
		if err := project.Save(); err != nil {
			return &ExitError{Code: 1, Message: err.Error()}
		}
	}

	switch cfg.Format {
	case config.FormatJSON, config.FormatYAML:
		if err := report.Dump(printer.Writer(), cfg.Format); err != nil {
			return &ExitError{Code: 1, Message: err.Error()}
		}
	default:
		printer.Report(report, "pbxedit restore "+projectPath)
	}

	logger.Debug("run finished",
		"added", report.Count(pbxproj.StatusAdded),
		"skipped", report.Count(pbxproj.StatusSkipped),
		"failed", report.Count(pbxproj.StatusFailed))

	if cfg.Strict && report.Failed() {
		return &ExitError{Code: 1, Message: fmt.Sprintf("%d of %d files failed", report.Count(pbxproj.StatusFailed), len(report.Files))}
	}
	return nil
}

// readSourceList reads one path per line, ignoring blank lines.
func readSourceList(r io.Reader) ([]string, error) {
	var sources []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			sources = append(sources, line)
		}
	}
	return sources, scanner.Err()
}
