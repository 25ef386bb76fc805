package stats

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jameshanlon/home-energy-data/internal/dataset"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeHeatingOnly(t *testing.T) {
	ds := dataset.New()
	ds.Add(day(2023, time.January, 5), dataset.ConsumedHeating, 1000)
	ds.Add(day(2023, time.January, 5), dataset.GeneratedHeating, 3000)
	ds.Add(day(2023, time.January, 6), dataset.ConsumedHeating, 2000)
	ds.Add(day(2023, time.January, 6), dataset.GeneratedHeating, 6000)

	annual, total, err := Compute(ds, time.Time{}, time.Time{}, 1.0, 1.0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if total.HeatingConsumed != 3000 || total.HeatingGenerated != 9000 {
		t.Fatalf("unexpected totals: %+v", total)
	}
	if total.TotalConsumed != 3000 || total.TotalGenerated != 9000 {
		t.Fatalf("expected water totals of zero to leave combined totals intact: %+v", total)
	}
	if total.HeatingSCOP == nil || *total.HeatingSCOP != 3.0 {
		t.Fatalf("expected heating SCOP 3.0, got %v", total.HeatingSCOP)
	}
	if total.WaterSCOP != nil {
		t.Fatalf("expected water SCOP to be undefined, got %v", *total.WaterSCOP)
	}
	if total.SCOP == nil || *total.SCOP != 3.0 {
		t.Fatalf("expected combined SCOP 3.0, got %v", total.SCOP)
	}
	if total.LengthDays != 1 {
		t.Fatalf("expected 1 day between first and last record, got %d", total.LengthDays)
	}
	if total.Year != 0 {
		t.Fatalf("expected the whole-range entry to carry no year, got %d", total.Year)
	}

	if len(annual) != 1 {
		t.Fatalf("expected one annual entry, got %d", len(annual))
	}
	if annual[0].Year != 2023 {
		t.Fatalf("expected year 2023, got %d", annual[0].Year)
	}
	if annual[0].HeatingSCOP == nil || *annual[0].HeatingSCOP != 3.0 {
		t.Fatalf("expected annual heating SCOP 3.0, got %v", annual[0].HeatingSCOP)
	}
}

func TestComputeUndefinedSCOP(t *testing.T) {
	ds := dataset.New()
	ds.Add(day(2023, time.June, 1), dataset.OutdoorTemp, 15)
	ds.Add(day(2023, time.June, 2), dataset.GeneratedHeating, 500)

	annual, total, err := Compute(ds, time.Time{}, time.Time{}, 1.0, 1.0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for _, scop := range []*float64{total.HeatingSCOP, total.WaterSCOP, total.SCOP} {
		if scop != nil {
			t.Fatalf("expected undefined SCOP with zero consumption, got %v", *scop)
		}
	}
	if len(annual) != 1 || annual[0].SCOP != nil {
		t.Fatalf("expected the annual entry to carry undefined SCOP too")
	}
}

func TestComputeOverflowingSCOP(t *testing.T) {
	ds := dataset.New()
	// A denormal consumption reading from a corrupt cell overflows the ratio.
	ds.Add(day(2023, time.June, 1), dataset.ConsumedHeating, 5e-324)
	ds.Add(day(2023, time.June, 1), dataset.GeneratedHeating, 3000)

	annual, total, err := Compute(ds, time.Time{}, time.Time{}, 1.0, 1.0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for _, scop := range []*float64{total.HeatingSCOP, total.SCOP} {
		if scop != nil {
			t.Fatalf("expected an overflowing ratio to be undefined, got %v", *scop)
		}
	}
	if len(annual) != 1 || annual[0].HeatingSCOP != nil {
		t.Fatalf("expected the annual entry to drop the ratio too, got %+v", annual)
	}
	if _, err := json.Marshal(total); err != nil {
		t.Fatalf("marshal: %v", err)
	}
}

func TestComputeEmptyDataset(t *testing.T) {
	_, _, err := Compute(dataset.New(), time.Time{}, time.Time{}, 1.0, 1.0)
	if !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords, got %v", err)
	}
}

func TestComputeEmptyRange(t *testing.T) {
	ds := dataset.New()
	ds.Add(day(2023, time.June, 1), dataset.ConsumedHeating, 100)
	_, _, err := Compute(ds, day(2024, time.January, 1), time.Time{}, 1.0, 1.0)
	if !errors.Is(err, ErrNoRecords) {
		t.Fatalf("expected ErrNoRecords for a range with no data, got %v", err)
	}
}

func TestAnnualTotalsPartitionWholeRange(t *testing.T) {
	ds := dataset.New()
	ds.Add(day(2023, time.February, 1), dataset.ConsumedHeating, 1000)
	ds.Add(day(2023, time.February, 1), dataset.ConsumedWater, 300)
	ds.Add(day(2023, time.December, 31), dataset.ConsumedHeating, 750)
	ds.Add(day(2024, time.January, 1), dataset.ConsumedHeating, 420)
	ds.Add(day(2024, time.July, 10), dataset.ConsumedWater, 111)
	ds.Add(day(2024, time.July, 10), dataset.GeneratedWater, 333)

	annual, total, err := Compute(ds, time.Time{}, time.Time{}, 1.0, 1.0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(annual) != 2 {
		t.Fatalf("expected 2 annual entries, got %d", len(annual))
	}

	var consumed, generated float64
	for _, s := range annual {
		consumed += s.TotalConsumed
		generated += s.TotalGenerated
	}
	if math.Abs(consumed-total.TotalConsumed) > 1e-9 {
		t.Fatalf("annual consumed %v does not partition total %v", consumed, total.TotalConsumed)
	}
	if math.Abs(generated-total.TotalGenerated) > 1e-9 {
		t.Fatalf("annual generated %v does not partition total %v", generated, total.TotalGenerated)
	}
	if math.Abs(total.TotalConsumed-(total.HeatingConsumed+total.WaterConsumed)) > 1e-9 {
		t.Fatalf("combined consumed is not the category sum")
	}
}

func TestComputeRestrictsYearsToRange(t *testing.T) {
	ds := dataset.New()
	ds.Add(day(2023, time.January, 10), dataset.ConsumedHeating, 999)
	ds.Add(day(2023, time.November, 1), dataset.ConsumedHeating, 100)
	ds.Add(day(2023, time.December, 1), dataset.ConsumedHeating, 200)

	annual, total, err := Compute(ds, day(2023, time.June, 1), time.Time{}, 1.0, 1.0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if total.HeatingConsumed != 300 {
		t.Fatalf("expected the January record to be filtered out, got %v", total.HeatingConsumed)
	}
	if len(annual) != 1 || annual[0].HeatingConsumed != 300 {
		t.Fatalf("expected the annual entry to cover the filtered sub-range, got %+v", annual)
	}
	if annual[0].LengthDays != 30 {
		t.Fatalf("expected 30 days between Nov 1 and Dec 1, got %d", annual[0].LengthDays)
	}
}

func TestComputeSyntheticYear(t *testing.T) {
	ds := dataset.New()
	start := day(2024, time.January, 1)
	for i := 0; i < 100; i++ {
		ts := start.AddDate(0, 0, i)
		ds.Add(ts, dataset.ConsumedHeating, 1000)
		ds.Add(ts, dataset.GeneratedHeating, 3210)
	}

	annual, _, err := Compute(ds, time.Time{}, time.Time{}, 1.0, 1.0)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if len(annual) != 1 {
		t.Fatalf("expected one year, got %d", len(annual))
	}
	s := annual[0]
	if s.LengthDays != 99 {
		t.Fatalf("expected 99 days, got %d", s.LengthDays)
	}
	if s.SCOP == nil || math.Abs(*s.SCOP-3.21) > 0.005 {
		t.Fatalf("expected SCOP 3.21 to two decimals, got %v", s.SCOP)
	}
}

func TestComputeStampsScaleFactors(t *testing.T) {
	ds := dataset.New()
	ds.Add(day(2023, time.June, 1), dataset.ConsumedHeating, 100)

	annual, total, err := Compute(ds, time.Time{}, time.Time{}, 1.05, 0.97)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if total.ScaleConsumed != 1.05 || total.ScaleGenerated != 0.97 {
		t.Fatalf("expected scale factors on the total entry, got %+v", total)
	}
	if annual[0].ScaleConsumed != 1.05 || annual[0].ScaleGenerated != 0.97 {
		t.Fatalf("expected scale factors on annual entries, got %+v", annual[0])
	}
}
