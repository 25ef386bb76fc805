package dataset

import (
	"strings"
	"time"
)

// Field is the canonical name of one measured quantity, derived from a CSV
// column header with ":" replaced by "_".
type Field string

const (
	ConsumedHeating    Field = "ConsumedElectricalEnergy_Heating"
	ConsumedWater      Field = "ConsumedElectricalEnergy_DomesticHotWater"
	GeneratedHeating   Field = "HeatGenerated_Heating"
	GeneratedWater     Field = "HeatGenerated_DomesticHotWater"
	EnvironmentHeating Field = "EarnedEnvironmentEnergy_Heating"
	EnvironmentWater   Field = "EarnedEnvironmentEnergy_DomesticHotWater"
	DhwTankTemp        Field = "DhwTankTemperature"
	OutdoorTemp        Field = "OutdoorTemperature"
	ManualSetpoint     Field = "ManualModeSetpointHeating"
	RoomSetpoint       Field = "RoomTemperatureSetpoint"
	RoomTemp           Field = "CurrentRoomTemperature"
)

// Fields lists every known field, in dump column order.
var Fields = []Field{
	ConsumedHeating,
	ConsumedWater,
	GeneratedHeating,
	GeneratedWater,
	EnvironmentHeating,
	EnvironmentWater,
	DhwTankTemp,
	OutdoorTemp,
	ManualSetpoint,
	RoomSetpoint,
	RoomTemp,
}

var knownFields = func() map[Field]bool {
	m := make(map[Field]bool, len(Fields))
	for _, f := range Fields {
		m[f] = true
	}
	return m
}()

// Canonical maps a raw CSV column header to its field name.
func Canonical(header string) Field {
	return Field(strings.ReplaceAll(strings.TrimSpace(header), ":", "_"))
}

// Known reports whether f is part of the measurement schema.
func Known(f Field) bool {
	return knownFields[f]
}

// IsConsumedEnergy reports whether f is a consumed electrical energy
// reading, subject to the --scale-consumed correction factor.
func (f Field) IsConsumedEnergy() bool {
	return strings.HasPrefix(string(f), "ConsumedElectricalEnergy_")
}

// IsGeneratedEnergy reports whether f is a generated heat energy reading,
// subject to the --scale-generated correction factor.
func (f Field) IsGeneratedEnergy() bool {
	return strings.HasPrefix(string(f), "HeatGenerated_")
}

// Record holds every measured field for one timestamp, merged across the
// source files that mention it.
type Record struct {
	Timestamp time.Time
	values    map[Field]float64
}

func newRecord(ts time.Time) *Record {
	return &Record{Timestamp: ts, values: make(map[Field]float64)}
}

// Get returns the value of f and whether the record carries it.
func (r *Record) Get(f Field) (float64, bool) {
	v, ok := r.values[f]
	return v, ok
}

// Value returns the value of f, or zero when absent.
func (r *Record) Value(f Field) float64 {
	return r.values[f]
}

// Has reports whether the record carries every one of the given fields.
func (r *Record) Has(fields ...Field) bool {
	for _, f := range fields {
		if _, ok := r.values[f]; !ok {
			return false
		}
	}
	return true
}
