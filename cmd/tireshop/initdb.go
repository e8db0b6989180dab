package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wheelmaster/tireshop/internal/app"
	"github.com/wheelmaster/tireshop/internal/catalog"
	"go.uber.org/zap"
)

func newInitDBCmd(opts *rootOptions) *cobra.Command {
	var catalogPath string
	cmd := &cobra.Command{
		Use:   "initdb",
		Short: "Create tables, remove duplicate products and seed the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates := app.DefaultProducts()
			if catalogPath != "" {
				products, err := catalog.NewReader(catalogPath).Load()
				if err != nil {
					return err
				}
				candidates = products
			}

			application, err := opts.setup()
			if err != nil {
				return err
			}
			defer application.Release()

			report, removed, err := application.InitCatalog(cmd.Context(), candidates)
			if err != nil {
				zap.L().Error("database initialization failed", zap.Error(err))
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed duplicate products: %d\n", removed)
			for _, res := range report.Results {
				switch res.Outcome {
				case app.SeedFailed:
					fmt.Fprintf(out, "  %-8s %s: %v\n", res.Outcome, res.Name, res.Err)
				default:
					fmt.Fprintf(out, "  %-8s %s (id %d)\n", res.Outcome, res.Name, res.ProductID)
				}
			}
			fmt.Fprintf(out, "Seeded products: %d inserted, %d skipped, %d failed\n",
				report.Inserted, report.Skipped, report.Failed)
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "seed from a catalog document instead of the built-in product list")
	return cmd
}
