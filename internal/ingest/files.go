package ingest

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jameshanlon/home-energy-data/internal/dataset"
)

// Column lists for the four export kinds, as written by the controller.
// The energy file repeats its block once per device channel; the number of
// repeats varies by firmware year and comes from configuration.
var (
	energyColumns = []string{
		"ConsumedElectricalEnergy:Heating",
		"ConsumedElectricalEnergy:DomesticHotWater",
		"HeatGenerated:Heating",
		"HeatGenerated:DomesticHotWater",
		"EarnedEnvironmentEnergy:Heating",
		"EarnedEnvironmentEnergy:DomesticHotWater",
	}
	dhwColumns    = []string{"DhwTankTemperature"}
	systemColumns = []string{"OutdoorTemperature"}
	zoneColumns   = []string{
		"ManualModeSetpointHeating",
		"RoomTemperatureSetpoint",
		"CurrentRoomTemperature",
	}
)

// energyHeaders expands the repeated energy block into a flat column list.
func energyHeaders(repeats int) []string {
	if repeats < 1 {
		repeats = 1
	}
	headers := make([]string, 0, 1+repeats*len(energyColumns))
	headers = append(headers, "DateTime")
	for i := 0; i < repeats; i++ {
		headers = append(headers, energyColumns...)
	}
	return headers
}

func withTimestamp(columns []string) []string {
	return append([]string{"DateTime"}, columns...)
}

// FileSet names the four export files of one year.
type FileSet struct {
	Year    int
	Repeats int
	Energy  string
	DHW     string
	System  string
	Zone    string
}

// NewFileSet resolves the file paths for one year under dataDir, following
// the controller's naming convention: data/<year>/<kind>_<year>[...].csv.
func NewFileSet(dataDir string, year, repeats int, heatPumpID string, dhwCircuit, zone int) FileSet {
	dir := filepath.Join(dataDir, strconv.Itoa(year))
	return FileSet{
		Year:    year,
		Repeats: repeats,
		Energy:  filepath.Join(dir, fmt.Sprintf("energy_data_%d_%s.csv", year, heatPumpID)),
		DHW:     filepath.Join(dir, fmt.Sprintf("domestic_hot_water_%d_data_%d.csv", dhwCircuit, year)),
		System:  filepath.Join(dir, fmt.Sprintf("system_data_%d.csv", year)),
		Zone:    filepath.Join(dir, fmt.Sprintf("zone_%d_data_%d.csv", zone, year)),
	}
}

// ReadYear ingests all four files of one year into ds. A missing or
// unopenable file is a hard error: the configured years are expected to be
// present in full.
func ReadYear(ds *dataset.Dataset, fs FileSet) error {
	for _, f := range []struct {
		path    string
		headers []string
	}{
		{fs.Energy, energyHeaders(fs.Repeats)},
		{fs.DHW, withTimestamp(dhwColumns)},
		{fs.System, withTimestamp(systemColumns)},
		{fs.Zone, withTimestamp(zoneColumns)},
	} {
		if _, err := ReadFile(ds, f.path, f.headers); err != nil {
			return fmt.Errorf("ingesting year %d: %w", fs.Year, err)
		}
	}
	return nil
}
