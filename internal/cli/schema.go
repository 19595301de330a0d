package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/touchstate/internal/touch"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of a touch event record",
		Long: `Print the JSON schema describing one touch event as it appears in
recordings and scenarios. The output is plain JSON regardless of --format.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := touch.InputSchemaJSON()
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to generate schema", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
