package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	DataDir        string     `yaml:"data_dir,omitempty"`        // Root of the per-year CSV export tree (fallback: data)
	OutputDir      string     `yaml:"output_dir,omitempty"`      // Where data.json and reports land (fallback: output)
	HeatPumpID     string     `yaml:"heat_pump_id,omitempty"`    // Device id suffix in the energy file name
	DHWCircuit     int        `yaml:"dhw_circuit,omitempty"`     // Circuit number in the hot water file name
	Zone           int        `yaml:"zone,omitempty"`            // Zone number in the zone file name
	ScaleConsumed  float64    `yaml:"scale_consumed,omitempty"`  // Calibration factor for consumed energy
	ScaleGenerated float64    `yaml:"scale_generated,omitempty"` // Calibration factor for generated energy
	Years          []Year     `yaml:"years,omitempty"`
	MQTT           MQTTConfig `yaml:"mqtt,omitempty"`
}

// Year describes one year of controller exports
type Year struct {
	Year                int `yaml:"year"`
	EnergyColumnRepeats int `yaml:"energy_column_repeats,omitempty"` // Times the energy file repeats its column block
}

// MQTTConfig holds broker settings for the publish command
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // e.g., "homeassistant.local:1883"
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // Fallback: heatpump
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetDataDir returns the data root with a default of ./data
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return "data"
	}
	return c.DataDir
}

// GetOutputDir returns the output directory with a default of ./output
func (c *Config) GetOutputDir() string {
	if c.OutputDir == "" {
		return "output"
	}
	return c.OutputDir
}

// GetHeatPumpID returns the device id used in energy file names
func (c *Config) GetHeatPumpID() string {
	if c.HeatPumpID == "" {
		return "ArothermPlus_21222500100211330001005519N3"
	}
	return c.HeatPumpID
}

// GetDHWCircuit returns the hot water circuit number with a default of 255
func (c *Config) GetDHWCircuit() int {
	if c.DHWCircuit <= 0 {
		return 255
	}
	return c.DHWCircuit
}

// GetScaleConsumed returns the consumed-energy calibration factor, default 1.0
func (c *Config) GetScaleConsumed() float64 {
	if c.ScaleConsumed == 0 {
		return 1.0
	}
	return c.ScaleConsumed
}

// GetScaleGenerated returns the generated-energy calibration factor, default 1.0
func (c *Config) GetScaleGenerated() float64 {
	if c.ScaleGenerated == 0 {
		return 1.0
	}
	return c.ScaleGenerated
}

// GetYears returns the configured export years, falling back to the known
// controller history (2023 exports repeat the energy block 6 times, 2024
// exports 10 times)
func (c *Config) GetYears() []Year {
	if len(c.Years) == 0 {
		return []Year{
			{Year: 2023, EnergyColumnRepeats: 6},
			{Year: 2024, EnergyColumnRepeats: 10},
		}
	}
	return c.Years
}

// GetTopicPrefix returns the MQTT topic prefix with a default of heatpump
func (m MQTTConfig) GetTopicPrefix() string {
	if m.TopicPrefix == "" {
		return "heatpump"
	}
	return m.TopicPrefix
}
