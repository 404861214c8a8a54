// Package categorize resolves a merchant name from the command line.
package categorize

import (
	"fmt"

	"github.com/spf13/cobra"

	"expenserule/cmd/common"
	"expenserule/cmd/root"
	"expenserule/internal/container"
	"expenserule/internal/engine"
)

var (
	noInfer bool
	asJSON  bool
)

// Cmd represents the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize MERCHANT",
	Short: "Resolve a merchant to a Schedule C category",
	Long: `Run a merchant name through the categorization chain: recorded corrections
first, then the built-in merchant table, then Gemini model inference.
An unresolved merchant exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().BoolVar(&noInfer, "no-infer", false, "Only consult corrections and the merchant table, never the model")
	Cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	merchant := args[0]

	return common.WithContainer(cmd.Context(), root.Cfg, root.Log, func(c *container.Container) error {
		eng := c.GetEngine()
		if noInfer {
			eng = engine.New(c.GetRegistry(), c.GetRepository(), c.GetLookup(), nil, c.GetLogger())
		}

		res, err := eng.Categorize(cmd.Context(), merchant)
		if err != nil {
			return err
		}

		if asJSON {
			return common.PrintJSON(cmd.OutOrStdout(), map[string]string{
				"merchant":        merchant,
				"category":        res.Category.Name,
				"schedule_c_line": res.Category.Line,
				"source":          string(res.Source),
			})
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (line %s, via %s)\n",
			merchant, res.Category.Name, res.Category.Line, res.Source)
		return nil
	})
}
