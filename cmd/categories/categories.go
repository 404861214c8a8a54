// Package categories lists the Schedule C expense categories.
package categories

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"expenserule/cmd/common"
	"expenserule/internal/registry"
)

var asJSON bool

// Cmd represents the categories command.
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List the Schedule C expense categories",
	Long:  `Print every category the engine can assign, with its Schedule C line.`,
	RunE:  categoriesFunc,
}

func init() {
	Cmd.Flags().BoolVar(&asJSON, "json", false, "Print the registry as JSON")
}

func categoriesFunc(cmd *cobra.Command, args []string) error {
	reg := registry.New()

	if asJSON {
		return common.PrintJSON(cmd.OutOrStdout(), reg.All())
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LINE\tCATEGORY")
	for _, cat := range reg.All() {
		fmt.Fprintf(w, "%s\t%s\n", cat.Line, cat.Name)
	}
	return w.Flush()
}
