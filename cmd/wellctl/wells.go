package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"well-dashboard/internal/services"
)

var wellsCmd = &cobra.Command{
	Use:   "wells",
	Short: "List wells available from the data source",
	Args:  cobra.NoArgs,
	RunE:  runWells,
}

func init() {
	rootCmd.AddCommand(wellsCmd)
}

func runWells(cmd *cobra.Command, args []string) error {
	src, closer, cfg, err := openSource(cmd.Context())
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.SourceTimeout())
	defer cancel()
	snap, err := services.LoadWellSnapshot(ctx, src)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range snap.Names() {
		fmt.Fprintln(out, name)
	}
	if snap.Len() == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No wells found")
	}
	return nil
}
