package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"well-dashboard/internal/export"
	"well-dashboard/internal/services"
)

var (
	exportAll      bool
	exportOut      string
	exportParallel int
)

var exportCmd = &cobra.Command{
	Use:   "export [well...]",
	Short: "Write monthly production to an XLSX workbook",
	Long:  `Writes one sheet per well. Use --all to export every well in the data source.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "export every well from the data source")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "production.xlsx", "output file")
	exportCmd.Flags().IntVar(&exportParallel, "parallel", export.DefaultParallel, "concurrent fetches")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if !exportAll && len(args) == 0 {
		return fmt.Errorf("give at least one well or --all")
	}

	src, closer, _, err := openSource(cmd.Context())
	if err != nil {
		return err
	}
	defer closer.Close()

	wells := args
	if exportAll {
		snap, err := services.LoadWellSnapshot(cmd.Context(), src)
		if err != nil {
			return err
		}
		wells = snap.Names()
		if len(wells) == 0 {
			return fmt.Errorf("data source has no wells")
		}
	}

	tables, err := export.Collect(cmd.Context(), src, wells, exportParallel)
	if err != nil {
		return err
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("creating %s: %w", exportOut, err)
	}
	if err := export.WriteAll(f, tables); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", exportOut, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d wells to %s\n", len(tables), exportOut)
	return nil
}
