package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/John4-pixel2/recovery-agent/internal/app/config"
	"github.com/John4-pixel2/recovery-agent/internal/domain/analysis"
)

func newAnalyzeCmd() *cobra.Command {
	var backupPath string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Inspect a backup for anomalies",
		RunE: func(cmd *cobra.Command, args []string) error {
			if backupPath == "" {
				return fmt.Errorf("--backup is required")
			}
			return runAnalyze(globalFs, cmd.OutOrStdout(), globalConfig, backupPath, outputFormat)
		},
	}

	cmd.Flags().StringVar(&backupPath, "backup", "", "Path to the backup directory")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text, json)")
	return cmd
}

// newAnalyzer builds an Analyzer from the application config.
func newAnalyzer(fsys afero.Fs, cfg config.Config) *analysis.Analyzer {
	return analysis.NewAnalyzer(fsys, analysis.Config{
		MaxAge:     cfg.MaxBackupAge(),
		DBPattern:  cfg.BackupFormats()["db"],
		LogPattern: cfg.BackupFormats()["logs"],
	})
}

func runAnalyze(fsys afero.Fs, out io.Writer, cfg config.Config, backupPath, format string) error {
	logger := GetLogger()
	logger.Info("Analyzing backup at %s", backupPath)

	report, err := newAnalyzer(fsys, cfg).Analyze(backupPath)
	if err != nil {
		return err
	}

	if format == "json" {
		encoded, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Fprintln(out, string(encoded))
		return nil
	}

	if !report.HasFindings() {
		fmt.Fprintf(out, "Backup %s looks healthy: no anomalies found\n", backupPath)
		return nil
	}

	fmt.Fprintf(out, "Found %d anomalies in %s:\n", report.Summary.Findings, backupPath)
	for _, f := range report.Findings {
		if f.Path != "" {
			fmt.Fprintf(out, "  [%s] %s: %s\n", f.Kind, f.Path, f.Detail)
		} else {
			fmt.Fprintf(out, "  [%s] %s\n", f.Kind, f.Detail)
		}
	}
	return nil
}
