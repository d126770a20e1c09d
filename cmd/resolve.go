package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kvconnect/kvconnect/internal/config"
)

var redactSecrets bool

var resolveCmd = &cobra.Command{
	Use:   "resolve [values-file]",
	Short: "Resolve a value set into the effective connection configuration",
	Long: `Resolve validates a value set and prints the effective configuration as
YAML: only the fields active for the chosen topology and auth mode, with
defaults filled in and types coerced. This is the record the connection
factory consumes.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadValueSet(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading values: %v\n", err)
			os.Exit(1)
		}

		resolved, errs := config.Resolve(cfg)
		if len(errs) > 0 {
			fmt.Fprintln(os.Stderr, "Configuration validation errors:")
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "  - %s\n", e.Error())
			}
			os.Exit(1)
		}

		fmt.Print(config.RenderYAML(resolved, redactSecrets))
	},
}

func init() {
	resolveCmd.Flags().BoolVar(&redactSecrets, "redact", false, "replace secret values in the output")
	rootCmd.AddCommand(resolveCmd)
}
