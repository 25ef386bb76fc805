package models

import (
	"encoding/json"
	"fmt"
)

// Document is the JSON artifact consumed by the charting dashboard.
// Its shape is a stable contract: annual_stats carries one entry per
// calendar year, total_stats the whole requested range (no "year" key).
type Document struct {
	AnnualStats []Stats `json:"annual_stats"`
	TotalStats  Stats   `json:"total_stats"`
	Charts      []Chart `json:"charts"`
}

// Stats holds the aggregated energy totals and SCOP figures for one
// reporting period. Totals are in Wh. The SCOP fields are pointers so an
// undefined ratio (zero consumption in the period) serializes as null,
// never NaN or Infinity.
type Stats struct {
	Year             int      `json:"year,omitempty"` // 0 for the whole-range entry
	LengthDays       int      `json:"length_days"`
	HeatingConsumed  float64  `json:"annual_heating_consumed"`
	WaterConsumed    float64  `json:"annual_water_consumed"`
	TotalConsumed    float64  `json:"annual_total_consumed"`
	HeatingGenerated float64  `json:"annual_heating_generated"`
	WaterGenerated   float64  `json:"annual_water_generated"`
	TotalGenerated   float64  `json:"annual_total_generated"`
	HeatingSCOP      *float64 `json:"heating_scop"`
	WaterSCOP        *float64 `json:"water_scop"`
	SCOP             *float64 `json:"scop"`
	ScaleConsumed    float64  `json:"scale_consumed"`
	ScaleGenerated   float64  `json:"scale_generated"`
}

// ChartType tags the two chart variants.
type ChartType string

const (
	ChartLine    ChartType = "line"
	ChartScatter ChartType = "scatter"
)

// Point is a single scatter chart data point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Chart is one chart in the document. Line charts populate Labels and
// Series; scatter charts populate Points. Symbol is a slug of Name, safe
// for use as a DOM element id by the dashboard.
type Chart struct {
	Name   string
	Symbol string
	Type   ChartType
	Labels []string
	Series map[string][]float64
	Points map[string][]Point
}

// MarshalJSON emits the contract shape: series values are plain numbers
// for line charts and {x, y} objects for scatter charts, which omit the
// labels key entirely.
func (c Chart) MarshalJSON() ([]byte, error) {
	if c.Type == ChartScatter {
		return json.Marshal(struct {
			Name   string             `json:"name"`
			Symbol string             `json:"symbol"`
			Type   ChartType          `json:"type"`
			Series map[string][]Point `json:"series"`
		}{c.Name, c.Symbol, c.Type, c.Points})
	}
	return json.Marshal(struct {
		Name   string               `json:"name"`
		Symbol string               `json:"symbol"`
		Type   ChartType            `json:"type"`
		Labels []string             `json:"labels"`
		Series map[string][]float64 `json:"series"`
	}{c.Name, c.Symbol, c.Type, c.Labels, c.Series})
}

// UnmarshalJSON decodes the series into the representation matching the
// chart's type tag.
func (c *Chart) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name   string          `json:"name"`
		Symbol string          `json:"symbol"`
		Type   ChartType       `json:"type"`
		Labels []string        `json:"labels"`
		Series json.RawMessage `json:"series"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Name = raw.Name
	c.Symbol = raw.Symbol
	c.Type = raw.Type
	c.Labels = raw.Labels
	c.Series = nil
	c.Points = nil

	if len(raw.Series) == 0 {
		return nil
	}
	switch raw.Type {
	case ChartLine:
		return json.Unmarshal(raw.Series, &c.Series)
	case ChartScatter:
		return json.Unmarshal(raw.Series, &c.Points)
	default:
		return fmt.Errorf("unknown chart type: %q", raw.Type)
	}
}
