package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josemlopez/Write-Properly/internal/writer"
)

var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the available function labels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, f := range writer.Functions {
			fmt.Fprintln(out, f)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(functionsCmd)
}
