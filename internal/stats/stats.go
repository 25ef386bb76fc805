// Package stats aggregates a dataset into per-year and whole-range figures.
package stats

import (
	"errors"
	"math"
	"time"

	"github.com/jameshanlon/home-energy-data/internal/dataset"
	"github.com/jameshanlon/home-energy-data/pkg/models"
)

// ErrNoRecords reports an empty filtered dataset.
var ErrNoRecords = errors.New("no records in the requested range")

// Compute derives one Stats per calendar year with records in [from, to],
// plus a whole-range Stats. Per-year figures cover the intersection of the
// year with the requested range, so the annual totals partition the
// whole-range totals. Zero bounds are open ended. The scale factors are
// recorded on each Stats for provenance; scaling itself happens on the
// dataset before aggregation.
func Compute(ds *dataset.Dataset, from, to time.Time, scaleConsumed, scaleGenerated float64) ([]models.Stats, models.Stats, error) {
	total, n := compute(ds, 0, from, to, scaleConsumed, scaleGenerated)
	if n == 0 {
		return nil, models.Stats{}, ErrNoRecords
	}

	var annual []models.Stats
	for _, year := range ds.Years() {
		s, n := compute(ds, year, from, to, scaleConsumed, scaleGenerated)
		if n == 0 {
			continue
		}
		annual = append(annual, s)
	}
	return annual, total, nil
}

// compute aggregates one period: a calendar year intersected with [from, to],
// or the whole range when year is zero. Returns the record count so callers
// can distinguish an empty period from a zero-energy one.
func compute(ds *dataset.Dataset, year int, from, to time.Time, scaleConsumed, scaleGenerated float64) (models.Stats, int) {
	lo, hi := from, to
	if year != 0 {
		lo = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		hi = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
		if !from.IsZero() && from.After(lo) {
			lo = from
		}
		if !to.IsZero() && to.Before(hi) {
			hi = to
		}
	}

	s := models.Stats{
		Year:           year,
		ScaleConsumed:  scaleConsumed,
		ScaleGenerated: scaleGenerated,
	}
	recs := ds.Range(lo, hi)
	if len(recs) == 0 {
		return s, 0
	}

	s.HeatingConsumed = ds.Total(dataset.ConsumedHeating, lo, hi)
	s.WaterConsumed = ds.Total(dataset.ConsumedWater, lo, hi)
	s.HeatingGenerated = ds.Total(dataset.GeneratedHeating, lo, hi)
	s.WaterGenerated = ds.Total(dataset.GeneratedWater, lo, hi)
	s.TotalConsumed = s.HeatingConsumed + s.WaterConsumed
	s.TotalGenerated = s.HeatingGenerated + s.WaterGenerated

	first := recs[0].Timestamp
	last := recs[len(recs)-1].Timestamp
	s.LengthDays = int(last.Sub(first) / (24 * time.Hour))

	s.HeatingSCOP = scop(s.HeatingGenerated, s.HeatingConsumed)
	s.WaterSCOP = scop(s.WaterGenerated, s.WaterConsumed)
	s.SCOP = scop(s.TotalGenerated, s.TotalConsumed)
	return s, len(recs)
}

// scop returns generated/consumed, or nil when the ratio is undefined: no
// energy consumed in the period, or a corrupt reading that overflows the
// division. Never NaN or Inf.
func scop(generated, consumed float64) *float64 {
	if consumed == 0 {
		return nil
	}
	v := generated / consumed
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
