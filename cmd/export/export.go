// Package export writes the recorded expenses as CSV.
package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"expenserule/cmd/common"
	"expenserule/cmd/root"
	"expenserule/internal/container"
	"expenserule/internal/export"
)

var output string

// Cmd represents the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export expenses as CSV",
	Long:  `Write every stored expense as CSV, to stdout or to --output.`,
	RunE:  exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (stdout when omitted)")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	return common.WithContainer(cmd.Context(), root.Cfg, root.Log, func(c *container.Container) error {
		list, err := c.GetRepository().ListExpenses(cmd.Context())
		if err != nil {
			return err
		}

		if output == "" {
			return export.Write(cmd.OutOrStdout(), list)
		}

		if err := export.WriteFile(output, list); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d expenses to %s\n", len(list), output)
		return nil
	})
}
