package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/John4-pixel2/recovery-agent/internal/app/config"
	"github.com/John4-pixel2/recovery-agent/internal/infra/restoration"
)

func newRestoreCmd() *cobra.Command {
	var backupPath string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore backup contents into the configured target directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if backupPath == "" {
				return fmt.Errorf("--backup is required")
			}
			return runRestore(cmd.Context(), globalFs, cmd.OutOrStdout(), globalConfig, backupPath)
		},
	}

	cmd.Flags().StringVar(&backupPath, "backup", "", "Path to the backup directory")
	return cmd
}

func runRestore(ctx context.Context, fsys afero.Fs, out io.Writer, cfg config.Config, backupPath string) error {
	logger := GetLogger()
	logger.Info("Starting restoration from %s to %s", backupPath, cfg.TargetDir())

	if cfg.EncryptKey() != "" {
		logger.Info("Decrypting backup files with configured key")
	}

	n, err := restoration.NewEngine(fsys, cfg).Restore(ctx, backupPath)
	if err != nil {
		return err
	}
	if n == 0 {
		logger.Warn("No backup files found matching configured patterns")
		fmt.Fprintln(out, "Nothing to restore.")
		return nil
	}

	fmt.Fprintf(out, "Restored %d files to %s\n", n, cfg.TargetDir())
	return nil
}
