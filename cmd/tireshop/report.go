package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/wheelmaster/tireshop/internal/app"
	"github.com/wheelmaster/tireshop/internal/report"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print catalog, order and metrics summaries",
	}
	cmd.AddCommand(
		newReportProductsCmd(opts),
		newReportOrdersCmd(opts),
		newReportMetricsCmd(opts),
	)
	return cmd
}

// runReport prints failures as a diagnostic line and still exits cleanly.
// The metrics store is opened only when withMetrics is set.
func runReport(cmd *cobra.Command, opts *rootOptions, withMetrics bool, fn func(app.RepositoryProvider) error) error {
	application, err := opts.setup()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error connecting to database: %v\n", err)
		return nil
	}
	defer application.Release()
	if withMetrics {
		application.EnableMetrics()
	}

	if err := fn(application); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return nil
}

func newReportProductsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List stored products",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, false, func(repos app.RepositoryProvider) error {
				return report.New(repos.Products(), repos.Orders()).Products(cmd.Context(), cmd.OutOrStdout())
			})
		},
	}
}

func newReportOrdersCmd(opts *rootOptions) *cobra.Command {
	var since, format string
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List stored orders, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			sinceTime, err := report.ParseSince(since)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return nil
			}
			if format != report.FormatText && format != report.FormatCSV {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: unknown format %q\n", format)
				return nil
			}
			return runReport(cmd, opts, false, func(repos app.RepositoryProvider) error {
				return report.New(repos.Products(), repos.Orders()).Orders(cmd.Context(), cmd.OutOrStdout(), report.Options{
					Since:  sinceTime,
					Format: format,
				})
			})
		},
	}
	cmd.Flags().StringVar(&since, "since", "", "only orders created at or after this date")
	cmd.Flags().StringVar(&format, "format", report.FormatText, "output format: text or csv")
	return cmd
}

func newReportMetricsCmd(opts *rootOptions) *cobra.Command {
	var hours int
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show order counters recorded by the storefront",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts, true, func(app.RepositoryProvider) error {
				return report.Metrics(cmd.OutOrStdout(), time.Duration(hours)*time.Hour, time.Now())
			})
		},
	}
	cmd.Flags().IntVar(&hours, "hours", 24, "window size in hours")
	return cmd
}
