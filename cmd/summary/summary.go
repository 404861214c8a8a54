// Package summary prints per-category expense totals.
package summary

import (
	"github.com/spf13/cobra"

	"expenserule/cmd/common"
	"expenserule/cmd/root"
	"expenserule/internal/container"
	"expenserule/internal/models"
	"expenserule/internal/report"
)

var asJSON bool

// Cmd represents the summary command.
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Show per-category totals",
	Long:  `Aggregate every stored expense into per-category totals with Schedule C lines.`,
	RunE:  summaryFunc,
}

func init() {
	Cmd.Flags().BoolVar(&asJSON, "json", false, "Print the totals as JSON")
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	return common.WithContainer(cmd.Context(), root.Cfg, root.Log, func(c *container.Container) error {
		list, err := c.GetRepository().ListExpenses(cmd.Context())
		if err != nil {
			return err
		}

		totals := report.BuildSummary(c.GetRegistry(), list)
		if asJSON {
			if totals == nil {
				totals = []models.CategoryTotal{}
			}
			return common.PrintJSON(cmd.OutOrStdout(), totals)
		}
		return report.RenderTable(cmd.OutOrStdout(), totals)
	})
}
