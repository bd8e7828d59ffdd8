package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taltext/taltext/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the taltext version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "taltext v%s\n", version.Resolve())
			return nil
		},
	}
}
