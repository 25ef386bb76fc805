package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	"github.com/jameshanlon/home-energy-data/internal/logging"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the output directory over HTTP",
	Long: `Serves the output directory so the dashboard can fetch data.json without
file:// restrictions.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logging.Init(debug || verbose > 0)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dir := getOutputDir(cfg)
	if _, err := os.Stat(filepath.Join(dir, "data.json")); err != nil {
		return fmt.Errorf("no data.json in %s, run the analysis first: %w", dir, err)
	}

	slog.Info("serving dashboard data", "addr", serveAddr, "dir", dir)
	srv := &http.Server{
		Addr:         serveAddr,
		Handler:      handlers.CombinedLoggingHandler(os.Stdout, newHandler(dir)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// newHandler routes the health check and serves everything else from dir
func newHandler(dir string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, `{"status":"ok"}`)
	}).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(dir)))
	return r
}
