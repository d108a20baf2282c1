package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soapywu/pbxedit/internal/ctxlog"
	"github.com/soapywu/pbxedit/internal/output"
	"github.com/soapywu/pbxedit/pbxproj"
)

func newRestoreCmd(g *globalFlags, s streams) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <project-file>",
		Short: "Put back the copy saved before the last edit",
		Long: `Restore copies <project-file>.bak (or the configured backup suffix) back
over the project file. Only the snapshot taken before the most recent edit
is kept.

Examples:
  pbxedit restore App.xcodeproj/project.pbxproj`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.setup(cmd, s)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			backupPath, err := pbxproj.Restore(args[0], cfg.BackupSuffix)
			if err != nil {
				var fatal *pbxproj.FatalInputError
				if errors.As(err, &fatal) {
					return &ExitError{Code: 1, Message: fmt.Sprintf("no backup to restore: %v", fatal)}
				}
				return &ExitError{Code: 1, Message: err.Error()}
			}
			ctxlog.FromContext(ctx).Debug("restored", "path", args[0], "backup", backupPath)
			output.FromContext(ctx).Printf("Restored %s from %s\n", args[0], backupPath)
			return nil
		},
	}
}
