package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/John4-pixel2/recovery-agent/internal/buildinfo"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "recovery-agent %s\n", buildinfo.GetVersion())
			return nil
		},
	}
}
