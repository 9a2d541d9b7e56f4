package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"well-dashboard/internal/export"
	"well-dashboard/internal/publisher"
	"well-dashboard/internal/services"
)

var publishAll bool

var publishCmd = &cobra.Command{
	Use:   "publish [well...]",
	Short: "Publish latest monthly production per well to MQTT",
	Long: `Publishes one retained JSON message per well to {topic_prefix}/{well}/state with the
latest oil/water rate and cumulative values. Broker settings come from the mqtt config section
or MQTT_* environment variables.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().BoolVar(&publishAll, "all", false, "publish every well from the data source")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	if !publishAll && len(args) == 0 {
		return fmt.Errorf("give at least one well or --all")
	}

	src, closer, cfg, err := openSource(cmd.Context())
	if err != nil {
		return err
	}
	defer closer.Close()

	pub, err := publisher.New(publisher.Options{
		Broker:      cfg.MQTT.Broker,
		Username:    cfg.MQTT.Username,
		Password:    cfg.MQTT.Password,
		TopicPrefix: cfg.MQTT.TopicPrefix,
		ClientID:    cfg.MQTT.ClientID,
	})
	if err != nil {
		return err
	}
	defer pub.Close()

	wells := args
	if publishAll {
		snap, err := services.LoadWellSnapshot(cmd.Context(), src)
		if err != nil {
			return err
		}
		wells = snap.Names()
	}

	tables, err := export.Collect(cmd.Context(), src, wells, export.DefaultParallel)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, t := range tables {
		series, err := services.ShapeProduction(t.Table)
		if err != nil {
			return fmt.Errorf("shaping %s: %w", t.Well, err)
		}
		s := publisher.Summarize(t.Well, series)
		if err := pub.Publish(s); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s -> %s (%d months)\n", t.Well, pub.Topic(t.Well), s.Months)
	}
	return nil
}
