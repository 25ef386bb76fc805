package export

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jameshanlon/home-energy-data/pkg/models"
)

func scop(v float64) *float64 { return &v }

func sampleDocument() *models.Document {
	return &models.Document{
		AnnualStats: []models.Stats{{
			Year:             2023,
			LengthDays:       100,
			HeatingConsumed:  1000,
			TotalConsumed:    1000,
			HeatingGenerated: 3000,
			TotalGenerated:   3000,
			HeatingSCOP:      scop(3.0),
			SCOP:             scop(3.0),
			ScaleConsumed:    1.0,
			ScaleGenerated:   1.0,
		}},
		TotalStats: models.Stats{LengthDays: 100, ScaleConsumed: 1.0, ScaleGenerated: 1.0},
		Charts: []models.Chart{{
			Name:   "Energy consumed",
			Symbol: "energy-consumed",
			Type:   models.ChartLine,
			Labels: []string{"02 01 2023"},
			Series: map[string][]float64{"Heating (Wh)": {1000}},
		}},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	doc := sampleDocument()

	if err := Write(path, doc); err != nil {
		t.Fatalf("Write: %v", err)
	}
	back, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(doc, back) {
		t.Fatalf("round trip changed the document:\nbefore %+v\nafter  %+v", doc, back)
	}
}

func TestWriteIsIndentedAndKeyOrdered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := Write(path, sampleDocument()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	s := string(data)
	if !strings.HasPrefix(s, "{\n  \"annual_stats\"") {
		t.Fatalf("expected two-space indentation starting with annual_stats, got %q", s[:40])
	}
	if strings.Index(s, `"total_stats"`) < strings.Index(s, `"annual_stats"`) ||
		strings.Index(s, `"charts"`) < strings.Index(s, `"total_stats"`) {
		t.Fatalf("unexpected top-level key order")
	}
	if !strings.HasSuffix(s, "}\n") {
		t.Fatalf("expected a trailing newline")
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := Write(path, sampleDocument()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// Overwrite to exercise the rename-over path as well.
	if err := Write(path, sampleDocument()); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "data.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("expected only data.json, got %v", names)
	}
}

func TestWriteCreatesOutputDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "data.json")
	if err := Write(path, sampleDocument()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected the output directory to be created: %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "data.json")); err == nil {
		t.Fatalf("expected an error for a missing document")
	}
}
