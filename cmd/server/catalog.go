package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/warp/dimensional/algebra"
	"github.com/warp/dimensional/factory"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage catalog documents",
}

var exportFormat string

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store a catalog document, applied on the next start",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		format, err := factory.FormatFromPath(path)
		if err != nil {
			return err
		}
		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		doc, err := factory.Parse(body, format)
		if err != nil {
			return err
		}
		if doc.Name == "" {
			return fmt.Errorf("%s: catalog name is required", path)
		}

		// Dry run against a registry built like the server's, minus any
		// earlier version of this catalog.
		scratch := algebra.NewRegistry()
		if err := declareCatalogs(cmd.Context(), scratch, e.cfg, e.store, e.logger, doc.Name); err != nil {
			return err
		}
		if err := factory.NewLoader(scratch, e.logger).Apply(doc); err != nil {
			return fmt.Errorf("%s does not apply: %w", path, err)
		}

		rec, err := e.store.SaveCatalog(cmd.Context(), algebra.CatalogRecord{
			ID:     doc.Name,
			Name:   doc.Name,
			Format: format,
			Body:   body,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored catalog %s (version %d)\n", rec.Name, rec.Version)
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		recs, err := e.store.ListCatalogs(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "NAME\tFORMAT\tVERSION\tUPDATED")
		for _, rec := range recs {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\n", rec.Name, rec.Format, rec.Version, rec.UpdatedAt.Format(time.RFC3339))
		}
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the live registry as a catalog document",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer e.Close()

		out, err := factory.Marshal(factory.ToDocument(e.registry, "export"), exportFormat)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	catalogExportCmd.Flags().StringVar(&exportFormat, "format", factory.FormatYAML, "Output format: json or yaml")
	catalogCmd.AddCommand(catalogImportCmd, catalogListCmd, catalogExportCmd)
}
