// Package setup stores the Gemini API key for model inference.
package setup

import (
	"fmt"

	"github.com/spf13/cobra"

	"expenserule/cmd/root"
	"expenserule/internal/keyfile"
)

var apiKey string

// Cmd represents the setup command.
var Cmd = &cobra.Command{
	Use:   "setup",
	Short: "Store the Gemini API key",
	Long: `Write the Gemini API key to the data directory so categorization can fall
back to model inference. Config and GEMINI_API_KEY take precedence over
the stored key.`,
	RunE: setupFunc,
}

func init() {
	Cmd.Flags().StringVar(&apiKey, "api-key", "", "Gemini API key")
	_ = Cmd.MarkFlagRequired("api-key")
}

func setupFunc(cmd *cobra.Command, args []string) error {
	if err := keyfile.Save(root.Cfg.Data.Directory, apiKey); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "API key stored at %s\n", keyfile.Path(root.Cfg.Data.Directory))
	return nil
}
