package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mysqlrepo "well-dashboard/internal/repositories/mysql"
)

var (
	loadCSV   string
	loadBatch int
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load monthly production from CSV into the MySQL/SQLite source",
	Long: `Reads a CSV with columns well_name,date,oil_rate,wat_rate,oil_cum,wat_cum and
replaces the stored rows of every well found in the file. Only SQL sources are supported.`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadCSV, "csv", "", "CSV file to load (required)")
	loadCmd.Flags().IntVar(&loadBatch, "batch", 500, "rows per INSERT")
	_ = loadCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	src, closer, cfg, err := openSource(cmd.Context())
	if err != nil {
		return err
	}
	defer closer.Close()

	repo, ok := src.(*mysqlrepo.ProductionRepo)
	if !ok {
		return fmt.Errorf("load needs a mysql or sqlite source, got %q", cfg.Source.Kind)
	}

	f, err := os.Open(loadCSV)
	if err != nil {
		return fmt.Errorf("opening %s: %w", loadCSV, err)
	}
	defer f.Close()

	wells, tbl, err := mysqlrepo.ReadProductionCSV(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", loadCSV, err)
	}
	if err := repo.Import(cmd.Context(), wells, tbl, loadBatch); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d rows for %d wells\n", len(tbl), len(wells))
	return nil
}
