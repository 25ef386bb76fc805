package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jameshanlon/home-energy-data/internal/logging"
	"github.com/jameshanlon/home-energy-data/internal/report"
)

var xlsxCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Export the generated statistics as a spreadsheet",
	Long:  `Reads the generated data.json document and writes an XLSX workbook with the annual statistics and a chart inventory.`,
	RunE:  runXLSX,
}

func init() {
	rootCmd.AddCommand(xlsxCmd)
}

func runXLSX(cmd *cobra.Command, args []string) error {
	logging.Init(debug || verbose > 0)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	data, err := report.BuildXLSX(doc)
	if err != nil {
		return fmt.Errorf("rendering workbook: %w", err)
	}

	path := filepath.Join(getOutputDir(cfg), "stats.xlsx")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("✓ Wrote %s\n", path)
	return nil
}
