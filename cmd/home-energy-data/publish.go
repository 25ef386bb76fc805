package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jameshanlon/home-energy-data/internal/logging"
	"github.com/jameshanlon/home-energy-data/internal/publisher"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish generated statistics to MQTT",
	Long: `Reads the generated data.json document and publishes its statistics to
the configured MQTT broker as retained per-metric topics.`,
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	logging.Init(debug || verbose > 0)
	fmt.Printf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.MQTT.Enabled {
		return fmt.Errorf("MQTT publishing is not enabled in config")
	}

	doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	pub, err := publisher.New(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	count, err := pub.PublishStats(doc)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Published %d topics to %s\n", count, cfg.MQTT.Broker)
	return nil
}
