/*
main.go - Application entry point

PURPOSE:
  Command line for the dimensional analysis engine. Builds the registry
  from the built-in and stored catalogs, seals it, then either serves the
  HTTP API or answers one command.

COMMANDS:
  serve                          Start the HTTP API
  convert <value> <from> <to>    Convert one value
  catalog import <file>          Store a catalog document (.json/.yaml)
  catalog list                   List stored catalogs
  catalog export                 Print the live registry as a document

STARTUP SEQUENCE:
  1. Load config (--config), apply flag overrides
  2. Open the SQLite store
  3. Declare built-in catalogs, catalog files, then stored catalogs
  4. Seal the registry
  5. Run the command

GLOBAL FLAGS:
  --config   YAML config file (default: $DIMENSIONAL_CONFIG)
  --port     HTTP server port, overrides config
  --db       SQLite database path, overrides config
             Use ":memory:" for an in-memory database

EXAMPLES:
  dimensional serve --db ./data/units.db
  dimensional convert 32 fahrenheit celsius
  dimensional convert 36 kilometer_per_hour "meter/second"
  dimensional catalog import catalogs/brewing.yaml

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Config file layout
  - factory/catalog.go: Catalog documents
*/
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	portFlag   int
	dbFlag     string
)

var rootCmd = &cobra.Command{
	Use:           "dimensional",
	Short:         "Dimensional analysis and unit conversion",
	Long:          "dimensional checks dimensions and converts quantities between unit systems, over HTTP or from the terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("DIMENSIONAL_CONFIG"), "Path to YAML config file")
	rootCmd.PersistentFlags().IntVar(&portFlag, "port", 0, "HTTP server port (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "SQLite database path (overrides config)")

	rootCmd.AddCommand(serveCmd, convertCmd, catalogCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
