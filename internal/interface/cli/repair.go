package cli

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/John4-pixel2/recovery-agent/internal/domain/repair"
	infraFs "github.com/John4-pixel2/recovery-agent/internal/infra/fs"
)

func newRepairCmd() *cobra.Command {
	var errorLogPath string
	var tenant string
	var savePath string

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Suggest a repair script for an error log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if errorLogPath == "" {
				return fmt.Errorf("--error-log is required")
			}
			return runRepair(globalFs, cmd.OutOrStdout(), errorLogPath, tenant, savePath)
		},
	}

	cmd.Flags().StringVar(&errorLogPath, "error-log", "", "Path to the error log file")
	cmd.Flags().StringVar(&tenant, "tenant", "", "Optional tenant ID for tenant-specific scripts")
	cmd.Flags().StringVar(&savePath, "save", "", "Write the suggested script to this path")
	return cmd
}

// newGenerator builds a rule generator with the standard registration
// order. Order is priority: permission errors are checked before missing
// files, which are checked before corruption.
func newGenerator(tenant string) *repair.Generator {
	g := repair.NewGenerator()
	for _, rule := range repair.DefaultRules(tenant) {
		g.Register(rule)
	}
	return g
}

func runRepair(fsys afero.Fs, out io.Writer, errorLogPath, tenant, savePath string) error {
	data, err := afero.ReadFile(fsys, errorLogPath)
	if err != nil {
		return fmt.Errorf("failed to read error log: %w", err)
	}
	record := repair.NewLogRecord(string(data), errorLogPath)

	suggestion, ok := newGenerator(tenant).Generate(record.Text)
	if !ok {
		// Expected outcome, not a failure.
		fmt.Fprintln(out, "No repair suggestion found for the given error log.")
		return nil
	}

	fmt.Fprintln(out, "--- Suggested Repair Script ---")
	fmt.Fprintln(out, suggestion.Script)
	fmt.Fprintln(out, "-------------------------------")
	GetLogger().Debug("Matched rule: %s", suggestion.RuleName)

	if savePath != "" {
		if err := infraFs.WriteFileAtomic(fsys, savePath, []byte(suggestion.Script+"\n"), 0o755); err != nil {
			return fmt.Errorf("failed to save script: %w", err)
		}
		GetLogger().Info("Repair script written to %s", savePath)
	}
	return nil
}
