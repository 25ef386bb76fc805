package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jameshanlon/home-energy-data/internal/charts"
	"github.com/jameshanlon/home-energy-data/internal/config"
	"github.com/jameshanlon/home-energy-data/internal/dataset"
	"github.com/jameshanlon/home-energy-data/internal/export"
	"github.com/jameshanlon/home-energy-data/internal/ingest"
	"github.com/jameshanlon/home-energy-data/internal/logging"
	"github.com/jameshanlon/home-energy-data/internal/stats"
	"github.com/jameshanlon/home-energy-data/internal/units"
	"github.com/jameshanlon/home-energy-data/pkg/models"
)

const version = "0.1.0"

var (
	cfgFile        string
	dataDir        string
	outputDir      string
	dumpTable      bool
	dateFrom       string
	dateTo         string
	scaleConsumed  float64
	scaleGenerated float64
	debug          bool
	verbose        int
)

var rootCmd = &cobra.Command{
	Use:   "home-energy-data",
	Short: "Analyse heat pump CSV exports and generate dashboard data",
	Long: `home-energy-data ingests the CSV exports of an Arotherm heat pump
installation, aggregates annual energy totals and SCOP figures, and writes
the data.json document rendered by the dashboard.`,
	Version: version,
	RunE:    runAnalyse,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "output directory (default is ./output)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print debugging messages")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "verbosity (-v, -vv, etc)")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "root of the CSV export tree (default is ./data)")
	rootCmd.Flags().BoolVar(&dumpTable, "dump", false, "dump the parsed dataset in a table")
	rootCmd.Flags().StringVar(&dateFrom, "from", "", "only include data points from this date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&dateTo, "to", "", "only include data points to this date (YYYY-MM-DD)")
	rootCmd.Flags().Float64Var(&scaleConsumed, "scale-consumed", 1.0, "scale measured consumed energy Wh values")
	rootCmd.Flags().Float64Var(&scaleGenerated, "scale-generated", 1.0, "scale measured generated energy Wh values")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration file
func loadConfig() (*config.Config, error) {
	return config.Load(getConfigPath())
}

// getOutputDir returns the output directory, flag overriding config
func getOutputDir(cfg *config.Config) string {
	if outputDir != "" {
		return outputDir
	}
	return cfg.GetOutputDir()
}

// loadDocument reads the generated data.json from the output directory
func loadDocument(cfg *config.Config) (*models.Document, error) {
	path := filepath.Join(getOutputDir(cfg), "data.json")
	doc, err := export.Read(path)
	if err != nil {
		return nil, fmt.Errorf("loading statistics (run the analysis first): %w", err)
	}
	return doc, nil
}

func runAnalyse(cmd *cobra.Command, args []string) error {
	logging.Init(debug || verbose > 0)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Flags override config values
	if dataDir == "" {
		dataDir = cfg.GetDataDir()
	}
	if !cmd.Flags().Changed("scale-consumed") {
		scaleConsumed = cfg.GetScaleConsumed()
	}
	if !cmd.Flags().Changed("scale-generated") {
		scaleGenerated = cfg.GetScaleGenerated()
	}
	if scaleConsumed <= 0 || scaleGenerated <= 0 {
		return fmt.Errorf("scale factors must be positive")
	}

	from, to, err := parseDateRange()
	if err != nil {
		return err
	}

	// Ingest every configured year
	ds := dataset.New()
	years := cfg.GetYears()
	for _, y := range years {
		fs := ingest.NewFileSet(dataDir, y.Year, y.EnergyColumnRepeats,
			cfg.GetHeatPumpID(), cfg.GetDHWCircuit(), cfg.Zone)
		if err := ingest.ReadYear(ds, fs); err != nil {
			return err
		}
	}
	fmt.Printf("✓ Parsed %s records from %d years of exports\n",
		units.FormatCount(ds.Len()), len(years))

	// Apply calibration factors
	ds.Scale(scaleConsumed, scaleGenerated)

	if dumpTable {
		dump(os.Stdout, ds)
		return nil
	}

	annual, total, err := stats.Compute(ds, from, to, scaleConsumed, scaleGenerated)
	if err != nil {
		return err
	}

	doc := &models.Document{
		AnnualStats: annual,
		TotalStats:  total,
		Charts:      charts.Build(ds, from, to),
	}

	path := filepath.Join(getOutputDir(cfg), "data.json")
	if err := export.Write(path, doc); err != nil {
		return err
	}
	fmt.Printf("✓ Wrote %s\n", path)

	printSummary(annual, total)
	return nil
}

// parseDateRange parses the --from/--to flags; zero times mean unbounded
func parseDateRange() (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if dateFrom != "" {
		from, err = time.Parse("2006-01-02", dateFrom)
		if err != nil {
			return from, to, fmt.Errorf("parsing --from date: %w", err)
		}
	}
	if dateTo != "" {
		to, err = time.Parse("2006-01-02", dateTo)
		if err != nil {
			return from, to, fmt.Errorf("parsing --to date: %w", err)
		}
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return from, to, fmt.Errorf("--to date is before --from date")
	}
	return from, to, nil
}

// dump writes one row per record to w in the column order of the source files
func dump(w io.Writer, ds *dataset.Dataset) {
	fmt.Fprintf(w, "%-19s", "DateTime")
	for _, f := range dataset.Fields {
		fmt.Fprintf(w, "  %s", f)
	}
	fmt.Fprintln(w)

	for _, r := range ds.Records() {
		fmt.Fprintf(w, "%-19s", r.Timestamp.Format("2006-01-02 15:04:05"))
		for _, f := range dataset.Fields {
			width := len(string(f))
			if v, ok := r.Get(f); ok {
				fmt.Fprintf(w, "  %*.2f", width, v)
			} else {
				fmt.Fprintf(w, "  %*s", width, "-")
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%s rows\n", units.FormatCount(ds.Len()))
}

func printSummary(annual []models.Stats, total models.Stats) {
	fmt.Println("\nAnnual statistics:")
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("%-6s  %5s  %12s  %12s  %6s\n", "Year", "Days", "Consumed", "Generated", "SCOP")
	fmt.Println("------------------------------------------------------------")
	for _, s := range annual {
		fmt.Printf("%-6d  %5d  %12s  %12s  %6s\n",
			s.Year, s.LengthDays,
			units.FormatWh(s.TotalConsumed), units.FormatWh(s.TotalGenerated),
			scopString(s.SCOP))
	}
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("%-6s  %5d  %12s  %12s  %6s\n",
		"Total", total.LengthDays,
		units.FormatWh(total.TotalConsumed), units.FormatWh(total.TotalGenerated),
		scopString(total.SCOP))
}

func scopString(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
