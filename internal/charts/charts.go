// Package charts projects a dataset into the line and scatter charts the
// dashboard renders.
package charts

import (
	"strconv"
	"time"

	"github.com/gosimple/slug"

	"github.com/jameshanlon/home-energy-data/internal/dataset"
	"github.com/jameshanlon/home-energy-data/pkg/models"
)

const labelLayout = "02 01 2006"

// maxPlausibleCOP bounds credible readings; the controller occasionally
// logs energy pairs implying a COP a residential unit cannot sustain.
const maxPlausibleCOP = 6

// Build assembles the dashboard charts from ds restricted to [from, to].
// The weekly COP chart covers whole calendar years, one series per year
// present in the range.
func Build(ds *dataset.Dataset, from, to time.Time) []models.Chart {
	recs := ds.Range(from, to)
	return []models.Chart{
		energyConsumed(recs),
		heatGenerated(recs),
		weeklyCOP(ds, yearsOf(recs)),
		cop(recs),
		dhwTemperature(recs),
		ambientTemperature(recs),
		heatVsCOP(recs),
	}
}

func newLine(name string, series ...string) models.Chart {
	c := models.Chart{
		Name:   name,
		Symbol: slug.Make(name),
		Type:   models.ChartLine,
		Labels: []string{},
		Series: make(map[string][]float64, len(series)),
	}
	for _, s := range series {
		c.Series[s] = []float64{}
	}
	return c
}

func newScatter(name string, series ...string) models.Chart {
	c := models.Chart{
		Name:   name,
		Symbol: slug.Make(name),
		Type:   models.ChartScatter,
		Points: make(map[string][]models.Point, len(series)),
	}
	for _, s := range series {
		c.Points[s] = []models.Point{}
	}
	return c
}

// energyConsumed charts the electrical energy drawn per day. A record
// contributes only when both consumed fields are present, keeping labels
// and series rectangular.
func energyConsumed(recs []*dataset.Record) models.Chart {
	c := newLine("Energy consumed", "Heating (Wh)", "Hot water (Wh)", "Total (Wh)")
	for _, r := range recs {
		if !r.Has(dataset.ConsumedHeating, dataset.ConsumedWater) {
			continue
		}
		heating := r.Value(dataset.ConsumedHeating)
		water := r.Value(dataset.ConsumedWater)
		c.Labels = append(c.Labels, r.Timestamp.Format(labelLayout))
		c.Series["Heating (Wh)"] = append(c.Series["Heating (Wh)"], heating)
		c.Series["Hot water (Wh)"] = append(c.Series["Hot water (Wh)"], water)
		c.Series["Total (Wh)"] = append(c.Series["Total (Wh)"], heating+water)
	}
	return c
}

func heatGenerated(recs []*dataset.Record) models.Chart {
	c := newLine("Heat energy generated",
		"Heat generated heating (Wh)", "Heat generated hot water (Wh)")
	for _, r := range recs {
		if !r.Has(dataset.GeneratedHeating, dataset.GeneratedWater) {
			continue
		}
		c.Labels = append(c.Labels, r.Timestamp.Format(labelLayout))
		c.Series["Heat generated heating (Wh)"] = append(
			c.Series["Heat generated heating (Wh)"], r.Value(dataset.GeneratedHeating))
		c.Series["Heat generated hot water (Wh)"] = append(
			c.Series["Heat generated hot water (Wh)"], r.Value(dataset.GeneratedWater))
	}
	return c
}

// weeklyCOP charts the combined COP averaged per ISO week, one series per
// calendar year. Daily records make each week seven readings, so the sum
// is divided by seven.
func weeklyCOP(ds *dataset.Dataset, years []int) models.Chart {
	c := newLine("Weekly averaged COP")
	for week := 1; week <= 52; week++ {
		c.Labels = append(c.Labels, strconv.Itoa(week))
	}
	for _, year := range years {
		sums := weeklyCOPSums(ds, year)
		series := make([]float64, 0, 52)
		for week := 1; week <= 52; week++ {
			series = append(series, sums[week]/7)
		}
		c.Series[strconv.Itoa(year)] = series
	}
	return c
}

// weeklyCOPSums accumulates per-record combined COP by ISO week number over
// one whole calendar year. Index 53 absorbs long-year readings; only weeks
// 1..52 are charted.
func weeklyCOPSums(ds *dataset.Dataset, year int) [54]float64 {
	var sums [54]float64
	for _, r := range ds.Year(year) {
		if !r.Has(dataset.ConsumedHeating, dataset.ConsumedWater,
			dataset.GeneratedHeating, dataset.GeneratedWater) {
			continue
		}
		consumed := r.Value(dataset.ConsumedHeating) + r.Value(dataset.ConsumedWater)
		generated := r.Value(dataset.GeneratedHeating) + r.Value(dataset.GeneratedWater)
		combined := 0.0
		if consumed != 0 {
			combined = generated / consumed
		}
		if combined > maxPlausibleCOP {
			// Erroneous reading.
			continue
		}
		_, week := r.Timestamp.ISOWeek()
		sums[week] += combined
	}
	return sums
}

func cop(recs []*dataset.Record) models.Chart {
	c := newLine("COP", "COP heating", "COP hot water")
	for _, r := range recs {
		if !r.Has(dataset.ConsumedHeating, dataset.ConsumedWater,
			dataset.GeneratedHeating, dataset.GeneratedWater) {
			continue
		}
		heating := 0.0
		if v := r.Value(dataset.ConsumedHeating); v != 0 {
			heating = r.Value(dataset.GeneratedHeating) / v
		}
		water := 0.0
		if v := r.Value(dataset.ConsumedWater); v != 0 {
			water = r.Value(dataset.GeneratedWater) / v
		}
		if heating > maxPlausibleCOP || water > maxPlausibleCOP {
			// Erroneous reading.
			continue
		}
		c.Labels = append(c.Labels, r.Timestamp.Format(labelLayout))
		c.Series["COP heating"] = append(c.Series["COP heating"], heating)
		c.Series["COP hot water"] = append(c.Series["COP hot water"], water)
	}
	return c
}

func dhwTemperature(recs []*dataset.Record) models.Chart {
	c := newLine("Hot water temperature (C)", "DHW")
	for _, r := range recs {
		if !r.Has(dataset.DhwTankTemp) {
			continue
		}
		c.Labels = append(c.Labels, r.Timestamp.Format(labelLayout))
		c.Series["DHW"] = append(c.Series["DHW"], r.Value(dataset.DhwTankTemp))
	}
	return c
}

func ambientTemperature(recs []*dataset.Record) models.Chart {
	c := newLine("Ambient temperature", "Internal", "External")
	for _, r := range recs {
		if !r.Has(dataset.OutdoorTemp, dataset.RoomTemp) {
			continue
		}
		c.Labels = append(c.Labels, r.Timestamp.Format(labelLayout))
		c.Series["Internal"] = append(c.Series["Internal"], r.Value(dataset.RoomTemp))
		c.Series["External"] = append(c.Series["External"], r.Value(dataset.OutdoorTemp))
	}
	return c
}

// heatVsCOP correlates heat output against the COP achieved while producing
// it, one series per source category, points in record order.
func heatVsCOP(recs []*dataset.Record) models.Chart {
	c := newScatter("Heat output vs COP", "Heating", "Hot water")
	for _, r := range recs {
		addHeatVsCOPPoint(&c, "Heating", r, dataset.GeneratedHeating, dataset.ConsumedHeating)
		addHeatVsCOPPoint(&c, "Hot water", r, dataset.GeneratedWater, dataset.ConsumedWater)
	}
	return c
}

func addHeatVsCOPPoint(c *models.Chart, series string, r *dataset.Record, generated, consumed dataset.Field) {
	if !r.Has(generated, consumed) {
		return
	}
	in := r.Value(consumed)
	if in <= 0 {
		return
	}
	out := r.Value(generated)
	ratio := out / in
	if ratio > maxPlausibleCOP {
		// Erroneous reading.
		return
	}
	c.Points[series] = append(c.Points[series], models.Point{X: out, Y: ratio})
}

// yearsOf lists the distinct calendar years of recs in ascending order.
func yearsOf(recs []*dataset.Record) []int {
	var years []int
	seen := make(map[int]bool)
	for _, r := range recs {
		y := r.Timestamp.Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	return years
}
