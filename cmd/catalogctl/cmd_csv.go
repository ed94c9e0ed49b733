package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"modhome/internal/catalog"
	"modhome/internal/catalogdb"
	"modhome/internal/publish"
	"modhome/pkg/database"
	"modhome/pkg/models"
)

func (a *app) exportCSVCmd() *cobra.Command {
	var (
		from       string
		sqlitePath string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "export-csv",
		Short: "Export the published catalog (JSON or SQLite mirror) as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				products []models.Product
				err      error
			)
			if sqlitePath != "" {
				db, openErr := database.Open(database.Config{Path: sqlitePath})
				if openErr != nil {
					return openErr
				}
				defer db.Close()
				products, err = catalogdb.NewRepo(db).Load(cmd.Context())
			} else {
				products, err = catalog.ReadProducts(from)
			}
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := catalog.WriteCSV(&buf, products); err != nil {
				return err
			}
			if err := publish.Files(buf.Bytes(), out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d products to %s\n", len(products), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&from, "from", a.cfg.CatalogPath, "Published catalog JSON")
	f.StringVar(&sqlitePath, "sqlite", "", "Read from this SQLite mirror instead of JSON")
	f.StringVarP(&out, "out", "o", "data/products.csv", "CSV output path")
	return cmd
}

func (a *app) importCSVCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "import-csv <file.csv>",
		Short: "Convert a spreadsheet of listings into a raw catalog for run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			raw, err := catalog.ReadRawCSV(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			data, err := catalog.Encode(raw)
			if err != nil {
				return err
			}
			if err := publish.Files(data, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d listings to %s\n", len(raw), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", a.cfg.InputPath, "Raw catalog JSON output")
	return cmd
}
