// Package root contains the root command for the application
package root

import (
	"github.com/spf13/cobra"

	"expenserule/internal/config"
	"expenserule/internal/logging"
)

var (
	// Log is the shared logger instance for commands. It is replaced with the
	// configured logger before any command runs.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cfg is the resolved configuration, populated before any command runs.
	Cfg *config.Config

	logLevel string

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "expenserule",
		Short: "Categorize business expenses into IRS Schedule C lines.",
		Long: `expenserule assigns a Schedule C tax category to each expense from its
merchant name. Resolution consults recorded corrections first, then a
built-in merchant table, then Gemini model inference.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}

			Cfg = cfg
			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Init registers the persistent flags shared by every command.
func Init() {
	Cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
}
