package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kvconnect/kvconnect/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate [values-file]",
	Short: "Validate a connection value set against the schema",
	Long: `Validate checks a value set against the connection schema and reports
every problem at once: missing required fields for the active topology and
auth mode, values that cannot be coerced to their declared type, and values
outside an enumerated set. Values for hidden fields are ignored.

With no argument the value set is assembled from the --config file and the
environment.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadValueSet(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading values: %v\n", err)
			os.Exit(1)
		}

		errs := config.Validate(cfg)
		if len(errs) > 0 {
			fmt.Fprintln(os.Stderr, "Configuration validation errors:")
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "  - %s\n", e.Error())
			}
			os.Exit(1)
		}

		fmt.Println("Configuration is valid.")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func loadValueSet(args []string) (config.Config, error) {
	if len(args) == 1 {
		return config.LoadConfig(args[0])
	}
	return config.FromViper(), nil
}
