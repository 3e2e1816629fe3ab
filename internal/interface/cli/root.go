package cli

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/John4-pixel2/recovery-agent/internal/app/config"
	infraConfig "github.com/John4-pixel2/recovery-agent/internal/infra/config"
)

// globalConfig holds the configuration loaded in PersistentPreRunE.
// Registries and analyzers are built per command invocation; only the
// read-only config is shared.
var globalConfig config.Config

// globalFs is the filesystem every command operates on. Tests swap in an
// in-memory fs.
var globalFs afero.Fs = afero.NewOsFs()

// NewRoot builds the root command with all subcommands attached.
func NewRoot() *cobra.Command {
	var configPath string
	var debug bool

	cmd := &cobra.Command{
		Use:   "recovery-agent",
		Short: "Analyze backups, suggest repairs, and restore application state",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration before any command runs.
			// Priority: --config flag > RECOVERY_CONFIG > ./config.yaml > defaults.
			if configPath == "" {
				configPath = os.Getenv("RECOVERY_CONFIG")
			}
			cfg, err := infraConfig.LoadSettings(globalFs, configPath)
			if err != nil {
				return err
			}
			globalConfig = cfg

			level := cfg.StderrLevel()
			if debug || cfg.DebugMode() {
				level = "debug"
			}
			InitGlobalLogger(level)
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error { return c.Help() },
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newRepairCmd())
	cmd.AddCommand(newRestoreCmd())
	cmd.AddCommand(newIntelligentRestoreCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}
