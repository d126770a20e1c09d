package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kvconnect/kvconnect/pkg/webui"
)

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the schema and resolution API over HTTP",
	Long: `Serve exposes the connection schema as a JSON API for configuration
frontends: GET /api/schema returns the field descriptors, POST /api/validate
checks a value set, POST /api/resolve returns the effective configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		server := &webui.Server{Port: port}
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start API server: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", 62079, "Port for the API server")
	rootCmd.AddCommand(serveCmd)
}
