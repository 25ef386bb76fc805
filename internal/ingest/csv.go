// Package ingest parses the semicolon-delimited CSV exports of the heat-pump
// controller into a dataset.Dataset, one file at a time.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jameshanlon/home-energy-data/internal/dataset"
)

const timestampLayout = "2006-01-02 15:04:05"

// ReadFile parses one export file into ds. headers describes the expected
// columns (position 0 is the timestamp); the file's own header row is
// skipped. Returns the number of ingested rows.
func ReadFile(ds *dataset.Dataset, path string, headers []string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	n, err := readRows(ds, f, headers)
	if err != nil {
		return n, fmt.Errorf("reading %s: %w", path, err)
	}
	slog.Info("read rows", "count", n, "file", path)
	return n, nil
}

// readRows parses CSV rows from r. Comment lines ("#...") and header lines
// ("DateTime...") are skipped silently; malformed rows are skipped with a
// warning so one corrupt line cannot invalidate a multi-year dataset.
func readRows(ds *dataset.Dataset, r io.Reader, headers []string) (int, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	fields := resolveFields(headers)
	count := 0

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn("skipping unreadable line", "error", err)
			continue
		}
		if len(row) == 0 {
			continue
		}

		first := strings.TrimSpace(row[0])
		if strings.HasPrefix(first, "#") || strings.HasPrefix(first, "DateTime") {
			continue
		}

		// Tolerate a single trailing empty cell from semicolon-terminated lines.
		if len(row) == len(headers)+1 && strings.TrimSpace(row[len(row)-1]) == "" {
			row = row[:len(row)-1]
		}
		if len(row) != len(headers) {
			slog.Warn("skipping row: column count mismatch",
				"timestamp", first, "want", len(headers), "got", len(row))
			continue
		}

		ts, err := time.Parse(timestampLayout, first)
		if err != nil {
			slog.Warn("skipping row: unparseable timestamp", "value", first)
			continue
		}

		// Parse every cell before committing any, so a skipped row leaves
		// no partial fields behind.
		type cell struct {
			field dataset.Field
			value float64
		}
		cells := make([]cell, 0, len(row)-1)
		ok := true
		for i := 1; i < len(row); i++ {
			s := strings.TrimSpace(row[i])
			if s == "" || fields[i-1] == "" {
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				slog.Warn("skipping row: unparseable value",
					"timestamp", first, "column", headers[i], "value", s)
				ok = false
				break
			}
			cells = append(cells, cell{fields[i-1], v})
		}
		if !ok {
			continue
		}

		for _, c := range cells {
			ds.Add(ts, c.field, c.value)
		}
		count++
	}

	return count, nil
}

// resolveFields canonicalizes the value column headers, validating each
// against the known field enumeration. Unknown columns are warned about
// once and their cells dropped.
func resolveFields(headers []string) []dataset.Field {
	fields := make([]dataset.Field, len(headers)-1)
	warned := make(map[dataset.Field]bool)
	for i, h := range headers[1:] {
		f := dataset.Canonical(h)
		if !dataset.Known(f) {
			if !warned[f] {
				slog.Warn("ignoring unknown column", "header", h)
				warned[f] = true
			}
			continue
		}
		fields[i] = f
	}
	return fields
}
