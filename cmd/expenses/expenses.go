// Package expenses lists the recorded expenses.
package expenses

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"expenserule/cmd/common"
	"expenserule/cmd/root"
	"expenserule/internal/container"
)

var asJSON bool

// Cmd represents the expenses command.
var Cmd = &cobra.Command{
	Use:   "expenses",
	Short: "List recorded expenses",
	Long:  `Print every stored expense, newest first.`,
	RunE:  expensesFunc,
}

func init() {
	Cmd.Flags().BoolVar(&asJSON, "json", false, "Print the expenses as JSON")
}

func expensesFunc(cmd *cobra.Command, args []string) error {
	return common.WithContainer(cmd.Context(), root.Cfg, root.Log, func(c *container.Container) error {
		list, err := c.GetRepository().ListExpenses(cmd.Context())
		if err != nil {
			return err
		}

		if asJSON {
			return common.PrintJSON(cmd.OutOrStdout(), list)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATE\tMERCHANT\tAMOUNT\tCATEGORY\tLINE\tID")
		for _, e := range list {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				e.Date, e.Merchant, e.Amount.StringFixed(2), e.Category, e.ScheduleCLine, e.ID)
		}
		return w.Flush()
	})
}
