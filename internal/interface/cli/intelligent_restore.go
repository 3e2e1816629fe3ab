package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/John4-pixel2/recovery-agent/internal/app/config"
	"github.com/John4-pixel2/recovery-agent/internal/app/intel"
	"github.com/John4-pixel2/recovery-agent/internal/app/orchestrator"
	"github.com/John4-pixel2/recovery-agent/internal/domain/plan"
	"github.com/John4-pixel2/recovery-agent/internal/infra/restoration"
)

func newIntelligentRestoreCmd() *cobra.Command {
	var backupPath string
	var tenant string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "intelligent-restore",
		Short: "Diagnose a backup, plan repairs, and restore when safe",
		Long: `Runs the intelligent restore protocol: the backup is analyzed for
anomalies, every finding is matched against the repair rule registry,
and the resulting plan is presented. Restoration only proceeds when the
diagnosis comes back clean and the backup version is compatible with
the current codebase (or a migration path exists).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntelligentRestore(cmd.Context(), globalFs, cmd.OutOrStdout(), globalConfig, backupPath, tenant, outputFormat)
		},
	}

	cmd.Flags().StringVar(&backupPath, "backup", "", "Backup directory (default: last stable backup)")
	cmd.Flags().StringVar(&tenant, "tenant", "", "Optional tenant ID for tenant-specific scripts")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format (text, json)")
	return cmd
}

func runIntelligentRestore(ctx context.Context, fsys afero.Fs, out io.Writer, cfg config.Config, backupPath, tenant, format string) error {
	logger := GetLogger()
	client := intel.NewClient(fsys)
	client.StablePath = os.Getenv("RECOVERY_STABLE_BACKUP")

	if backupPath == "" {
		backupPath = client.LastStableBackupPath()
		logger.Info("No backup given, using last stable backup: %s", backupPath)
	}

	// Step 1: diagnose and build the repair plan.
	o := orchestrator.New(
		newAnalyzer(fsys, cfg),
		newGenerator(tenant),
		orchestrator.WithTransitionHook(func(from, to orchestrator.State) {
			logger.Debug("protocol state: %s -> %s", from, to)
		}),
	)

	p, err := o.Run(ctx, backupPath)
	if err != nil {
		return err
	}

	// Findings block restoration: present the plan and stop.
	if len(p.Entries) > 0 {
		if format == "json" {
			encoded, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode plan: %w", err)
			}
			fmt.Fprintln(out, string(encoded))
			return nil
		}
		printPlan(out, p)
		return nil
	}

	// Step 2: diagnosis is clean; check version compatibility before
	// handing over to the restoration engine.
	fmt.Fprintf(out, "Diagnosis clean for %s\n", backupPath)

	backupVersion, err := client.BackupVersion(backupPath)
	if err != nil {
		logger.Warn("%v; restoring without version check", err)
		backupVersion = ""
	}
	current := client.CodebaseVersion()

	if backupVersion != "" && backupVersion != current {
		steps, ok := intel.MigrationPlan(backupVersion, current)
		if !ok {
			return fmt.Errorf("schema drift from %s to %s with no migration path; manual intervention required", backupVersion, current)
		}
		fmt.Fprintf(out, "Schema drift detected (%s -> %s), migration steps:\n", backupVersion, current)
		for _, step := range steps {
			fmt.Fprintf(out, "  - %s\n", step)
		}
	}

	n, err := restoration.NewEngine(fsys, cfg).Restore(ctx, backupPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Restored %d files to %s\n", n, cfg.TargetDir())
	return nil
}

func printPlan(out io.Writer, p *plan.Plan) {
	fmt.Fprintf(out, "Repair plan %s for %s (%d resolved, %d unmatched):\n",
		p.ID, p.Location, p.Resolved(), p.Unmatched())
	for i, e := range p.Entries {
		fmt.Fprintf(out, "%d. [%s] %s\n", i+1, e.Finding.Kind, e.Finding.Detail)
		if e.Status == plan.StatusResolved {
			fmt.Fprintf(out, "   rule: %s\n   script: %s\n", e.RuleName, e.Script)
		} else {
			fmt.Fprintln(out, "   no matching repair rule")
		}
	}
	fmt.Fprintln(out, "Apply the plan and re-run intelligent-restore.")
}
