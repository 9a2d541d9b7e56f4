package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"well-dashboard/internal/datasource"
	"well-dashboard/internal/services"
)

var productionCmd = &cobra.Command{
	Use:   "production <well>",
	Short: "Print monthly production for one well",
	Long: `Fetches monthly production for a single well and prints one row per month
followed by the latest cumulative values. Empty cells mean the source had no value.`,
	Args: cobra.ExactArgs(1),
	RunE: runProduction,
}

func init() {
	rootCmd.AddCommand(productionCmd)
}

func runProduction(cmd *cobra.Command, args []string) error {
	src, closer, cfg, err := openSource(cmd.Context())
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.SourceTimeout())
	defer cancel()
	tbl, err := src.GetMonthlyProduction(ctx, []string{args[0]})
	if err != nil {
		return fmt.Errorf("fetching production for %s: %w (%s)", args[0], err, services.Classify(err))
	}
	return printProduction(cmd.OutOrStdout(), args[0], tbl)
}

func printProduction(w io.Writer, well string, tbl datasource.ProductionTable) error {
	series, err := services.ShapeProduction(tbl)
	if err != nil {
		return err
	}
	if series.Empty() {
		fmt.Fprintf(w, "No production data for %s\n", well)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Date\tOil rate\tWater rate\tOil cum\tWater cum\t")
	for _, rec := range tbl {
		d, _ := services.ParseDate(rec.Date)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			d.Format("2006-01"), num(rec.OilRate), num(rec.WatRate), num(rec.OilCum), num(rec.WatCum))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s: %d months, oil cum %s, water cum %s\n",
		well, len(tbl), last(series.OilCum), last(series.WaterCum))
	return nil
}

func num(v *float64) string {
	if v == nil {
		return ""
	}
	return humanize.CommafWithDigits(*v, 2)
}

func last(s services.Series) string {
	if len(s) == 0 {
		return "-"
	}
	return humanize.CommafWithDigits(s[len(s)-1].Value, 2)
}
