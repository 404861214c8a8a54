// Package add records a manual expense entry.
package add

import (
	"fmt"

	"github.com/spf13/cobra"

	"expenserule/cmd/common"
	"expenserule/cmd/root"
	"expenserule/internal/container"
	"expenserule/internal/dateutils"
	"expenserule/internal/engine"
	"expenserule/internal/models"
)

var (
	merchant string
	amount   string
	date     string
	notes    string
	category string
)

// Cmd represents the add command.
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Long: `Record an expense from the command line. Without --category the merchant
runs through the categorization chain; an unresolved merchant leaves
nothing recorded.`,
	RunE: addFunc,
}

func init() {
	Cmd.Flags().StringVarP(&merchant, "merchant", "m", "", "Merchant name")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount, e.g. 42.97")
	Cmd.Flags().StringVarP(&date, "date", "t", "", "Date (defaults to empty; most formats accepted)")
	Cmd.Flags().StringVarP(&notes, "notes", "n", "", "Free-form notes")
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Explicit category, skips the chain")
	_ = Cmd.MarkFlagRequired("merchant")
	_ = Cmd.MarkFlagRequired("amount")
}

func addFunc(cmd *cobra.Command, args []string) error {
	amt, err := models.ParseAmount(amount)
	if err != nil {
		return err
	}

	normalized, err := dateutils.Normalize(date)
	if err != nil {
		return err
	}

	return common.WithContainer(cmd.Context(), root.Cfg, root.Log, func(c *container.Container) error {
		var name, line, source string
		if category != "" {
			cat, ok := c.GetRegistry().ByName(category)
			if !ok {
				return &engine.UnknownCategoryError{Name: category}
			}
			name, line, source = cat.Name, cat.Line, string(engine.SourceManual)
		} else {
			res, err := c.GetEngine().Categorize(cmd.Context(), merchant)
			if err != nil {
				return err
			}
			name, line, source = res.Category.Name, res.Category.Line, string(res.Source)
		}

		e := models.NewExpense(merchant, normalized, amt, notes)
		e.Category = name
		e.ScheduleCLine = line
		e.Source = source

		if err := c.GetRepository().InsertExpense(cmd.Context(), e); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s: %s %s -> %s (line %s)\n",
			e.ID, e.Merchant, e.Amount.StringFixed(2), e.Category, e.ScheduleCLine)
		return nil
	})
}
