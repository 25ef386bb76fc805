package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jameshanlon/home-energy-data/internal/logging"
	"github.com/jameshanlon/home-energy-data/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a PDF report of the generated statistics",
	Long:  `Reads the generated data.json document and renders a one-page PDF summary.`,
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	logging.Init(debug || verbose > 0)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	data, err := report.BuildPDF(doc)
	if err != nil {
		return fmt.Errorf("rendering PDF: %w", err)
	}

	path := filepath.Join(getOutputDir(cfg), "report.pdf")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("✓ Wrote %s\n", path)
	return nil
}
