package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/geoscience-tools/geochemtools/internal/geochem"
)

// Config is the injected parameter set for the pipeline: which physical
// column names carry which fields, the crustal-abundance reference table, and
// the map parameters passed through to external plotting. No component reads
// ambient global state; the loaded Config is handed to each at construction.
type Config struct {
	ColumnNames   map[string]string  `mapstructure:"column_names" yaml:"column_names"`
	CrustalAbund  map[string]float64 `mapstructure:"crustal_abund" yaml:"crustal_abund"`
	MethodMapPath string             `mapstructure:"method_map_path" yaml:"method_map_path"`

	// Map parameters consumed by the external plotting collaborator.
	Projection int                  `mapstructure:"projection" yaml:"projection"`
	Extent     map[string]float64   `mapstructure:"extent" yaml:"extent"`
	Places     map[string][]float64 `mapstructure:"places" yaml:"places"`
}

// Schema resolves the configured column-name bindings, falling back to the
// SARIG defaults for any binding left unset.
func (c *Config) Schema() geochem.Schema {
	s := geochem.DefaultSarigSchema()
	if c == nil || len(c.ColumnNames) == 0 {
		return s
	}
	bind := func(key string, dst *string) {
		if v, ok := c.ColumnNames[key]; ok && v != "" {
			*dst = v
		}
	}
	bind("sample_no", &s.SampleNo)
	bind("sample_type", &s.SampleSource)
	bind("drillhole_id", &s.Drillhole)
	bind("depth_from", &s.DepthFrom)
	bind("depth_to", &s.DepthTo)
	bind("analysis_no", &s.AnalysisNo)
	bind("analysis_type", &s.AnalysisType)
	bind("laboratory", &s.Laboratory)
	bind("element", &s.Element)
	bind("value", &s.Value)
	bind("units", &s.Units)
	bind("method_code", &s.MethodCode)
	bind("longitude", &s.Longitude)
	bind("latitude", &s.Latitude)
	return s
}

// Abundances resolves the crustal-abundance reference table, falling back to
// the built-in defaults when no configuration was loaded.
func (c *Config) Abundances() map[string]float64 {
	if c == nil || len(c.CrustalAbund) == 0 {
		return defaultCrustalAbund()
	}
	return c.CrustalAbund
}

// defaultCrustalAbund holds average upper-crustal abundances in ppm after
// Rudnick and Gao (2003). Users extend or override the table in the config
// file for elements not listed here.
func defaultCrustalAbund() map[string]float64 {
	return map[string]float64{
		"Ag": 0.053,
		"As": 4.8,
		"Au": 0.0015,
		"Ce": 63,
		"Co": 17.3,
		"Cr": 92,
		"Cu": 28,
		"Fe": 39200,
		"La": 31,
		"Mn": 775,
		"Mo": 1.1,
		"Ni": 47,
		"Pb": 17,
		"Sn": 2.1,
		"Th": 10.5,
		"U":  2.7,
		"V":  97,
		"W":  1.9,
		"Zn": 67,
	}
}

// Save writes the configuration to cfgFile, or to
// ~/.geochemtools/config.yaml when cfgFile is empty.
func Save(c *Config, cfgFile string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".geochemtools")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env and defaults.
// Precedence: env (GEOCHEM_*) > config file > defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GEOCHEM")
	v.AutomaticEnv()

	v.SetDefault("column_names", map[string]string{})
	v.SetDefault("crustal_abund", defaultCrustalAbund())
	v.SetDefault("method_map_path", "")
	v.SetDefault("projection", 3107)
	v.SetDefault("extent", map[string]float64{
		"min_long": 129.0,
		"max_long": 141.0,
		"min_lat":  -38.0,
		"max_lat":  -26.0,
	})
	v.SetDefault("places", map[string][]float64{
		"Adelaide":     {138.6, -34.92},
		"Coober Pedy":  {134.75, -29.01},
		"Port Augusta": {137.78, -32.49},
	})

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".geochemtools")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// the config file is optional; defaults cover a missing one
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// merge defaults under user-supplied abundances
	if c.CrustalAbund == nil {
		c.CrustalAbund = defaultCrustalAbund()
	} else {
		for el, val := range defaultCrustalAbund() {
			if _, ok := c.CrustalAbund[el]; !ok {
				c.CrustalAbund[el] = val
			}
		}
	}
	return &c, nil
}

// Path returns the location of the user-editable config file.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".geochemtools", "config.yaml"), nil
}
