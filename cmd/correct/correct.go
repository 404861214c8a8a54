// Package correct records a category correction for a merchant.
package correct

import (
	"fmt"

	"github.com/spf13/cobra"

	"expenserule/cmd/common"
	"expenserule/cmd/root"
	"expenserule/internal/container"
	"expenserule/internal/models"
)

// Cmd represents the correct command.
var Cmd = &cobra.Command{
	Use:   "correct MERCHANT CATEGORY",
	Short: "Record a category correction for a merchant",
	Long: `Store a correction so every future categorization of this merchant returns
the given category, overriding the merchant table and model inference.`,
	Args: cobra.ExactArgs(2),
	RunE: correctFunc,
}

func correctFunc(cmd *cobra.Command, args []string) error {
	merchant, category := args[0], args[1]

	return common.WithContainer(cmd.Context(), root.Cfg, root.Log, func(c *container.Container) error {
		cat, err := c.GetEngine().RecordCorrection(cmd.Context(), merchant, category)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Recorded: %s -> %s (line %s)\n",
			models.NormalizeMerchant(merchant), cat.Name, cat.Line)
		return nil
	})
}
