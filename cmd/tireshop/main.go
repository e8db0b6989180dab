package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/wheelmaster/tireshop/config"
	"github.com/wheelmaster/tireshop/internal/app"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "tireshop",
		Short:         "Tire storefront and catalog tools",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "tireshop.yml", "config file")

	root.AddCommand(
		newServeCmd(opts),
		newInitDBCmd(opts),
		newReportCmd(opts),
	)
	return root
}

// setup loads configuration and opens the database. Callers own Release.
func (o *rootOptions) setup() (*app.Application, error) {
	cfg, err := config.LoadConfig(o.configFile)
	if err != nil {
		return nil, err
	}
	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		application.Release()
		return nil, err
	}
	return application, nil
}
