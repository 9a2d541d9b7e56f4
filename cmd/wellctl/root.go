package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"well-dashboard/internal/app"
	"well-dashboard/internal/config"
	"well-dashboard/internal/datasource"
)

var (
	cfgFile    string
	sourceKind string
)

var rootCmd = &cobra.Command{
	Use:   "wellctl",
	Short: "Inspect and export monthly well production",
	Long: `wellctl reads the same data source as the dashboard (vendor API, MySQL or SQLite)
and prints well lists, monthly production, or writes an XLSX workbook.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVar(&sourceKind, "source", "", "override data source kind (api, mysql, sqlite)")
}

// loadConfig loads the config file (if any) plus env overrides
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if sourceKind != "" {
		cfg.Source.Kind = sourceKind
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// openSource opens the configured data source; caller closes the returned closer
func openSource(ctx context.Context) (datasource.Client, io.Closer, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	src, closer, err := app.OpenSource(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening %s source: %w", cfg.Source.Kind, err)
	}
	return src, closer, cfg, nil
}
