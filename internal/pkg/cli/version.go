package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/semdiff/semdiff/internal/pkg/version"
)

// BuildVersionCmd builds the `version` subcommand.
func BuildVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the semdiff version.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "semdiff version: %s\n", version.Version)
			return err
		},
	}
}
