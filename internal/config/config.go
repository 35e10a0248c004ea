// Package config provides configuration management for medalprep runs.
//
// Configuration is layered, lowest precedence first: defaults from NewConfig,
// an optional YAML file, then MEDALPREP_ environment variables. Nested keys
// are separated by a double underscore in the environment, for example
// MEDALPREP_INDICATORS__GDP_PER_CAPITA=gdp.csv.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/paveg/medalprep/internal/errors"
	medalio "github.com/paveg/medalprep/internal/io"
	"github.com/paveg/medalprep/internal/model"
)

// Environment variables read by Load.
const (
	EnvPrefix     = "MEDALPREP_"
	EnvConfigFile = "MEDALPREP_CONFIG"
)

// Default configuration values
const (
	DefaultDataDir        = "data"
	DefaultOutputDir      = "output"
	DefaultSeason         = "Summer"
	DefaultStartYear      = 1896
	DefaultEndYear        = 2023
	DefaultFill           = -10
	DefaultCountryColumn  = "country"
	DefaultMedalsFile     = "olympic_medals.csv"
	DefaultHostsFile      = "olympic_hosts.csv"
	DefaultTallyOutput    = "summer_olympic_medal_tally.csv"
	DefaultAnalysisOutput = "olympic_analysis_data.csv"
)

// Config represents the configuration of one pipeline run
type Config struct {
	// Input locations. Relative file names resolve against DataDir.
	DataDir       string            `koanf:"data_dir" validate:"required"`
	Medals        string            `koanf:"medals" validate:"required"`
	Hosts         string            `koanf:"hosts" validate:"required"`
	Indicators    map[string]string `koanf:"indicators" validate:"required,dive,required"` // indicator column -> wide file
	CountryColumn string            `koanf:"country_column" validate:"required"`
	AliasesFile   string            `koanf:"aliases_file"`

	// Transform settings
	Season    string  `koanf:"season" validate:"required"`
	StartYear int     `koanf:"start_year" validate:"min=1"`
	EndYear   int     `koanf:"end_year" validate:"gtfield=StartYear"`
	Fill      float64 `koanf:"fill"`
	Workers   int     `koanf:"workers" validate:"min=0"` // 0 = runtime.NumCPU()

	// Outputs. Relative file names resolve against OutputDir; empty disables
	// the optional ones.
	OutputDir      string `koanf:"output_dir" validate:"required"`
	TallyOutput    string `koanf:"tally_output"`
	AnalysisOutput string `koanf:"analysis_output" validate:"required"`
	ChartsDir      string `koanf:"charts_dir"`
	MetricsFile    string `koanf:"metrics_file"`

	// Observability
	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`
	Trace     bool   `koanf:"trace"`
}

// DefaultIndicatorFiles maps every indicator column to its default wide file.
func DefaultIndicatorFiles() map[string]string {
	return map[string]string{
		model.Population.String():             "pop.csv",
		model.GDPPerCapita.String():           "gdp_pcap.csv",
		model.LifeExpectancy.String():         "lex.csv",
		model.Pop2039Percent.String():         "pop_20_39_percent.csv",
		model.UrbanPopulationPercent.String(): "urban_population_percent_of_total.csv",
		model.BMIMean.String():                "bmi_men.csv",
		model.DemocracyScore.String():         "democracy_score_use_as_color.csv",
		model.SurfaceArea.String():            "surface_area_sq_km.csv",
	}
}

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		DataDir:       DefaultDataDir,
		Medals:        DefaultMedalsFile,
		Hosts:         DefaultHostsFile,
		Indicators:    DefaultIndicatorFiles(),
		CountryColumn: DefaultCountryColumn,

		Season:    DefaultSeason,
		StartYear: DefaultStartYear,
		EndYear:   DefaultEndYear,
		Fill:      DefaultFill,

		OutputDir:      DefaultOutputDir,
		TallyOutput:    DefaultTallyOutput,
		AnalysisOutput: DefaultAnalysisOutput,

		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load builds a Config from defaults, the YAML file at path and the
// environment. When path is empty, MEDALPREP_CONFIG names the file, if set.
// The result is validated.
func Load(path string) (Config, error) {
	cfg := NewConfig()
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
		default:
			return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.NewValidationError("config", "", err.Error())
	}

	names := make([]string, 0, len(c.Indicators))
	for name := range c.Indicators {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := model.ParseIndicator(name); err != nil {
			return errors.NewValidationError("config", "indicators", err.Error())
		}
	}
	for _, ind := range model.Indicators() {
		if _, ok := c.Indicators[ind.String()]; !ok {
			return errors.NewValidationError("config", "indicators",
				fmt.Sprintf("no source file for indicator %s", ind))
		}
	}

	if !medalio.SupportedOutput(c.AnalysisOutput) {
		return errors.NewValidationError("config", "analysis_output",
			fmt.Sprintf("unsupported output extension %q", filepath.Ext(c.AnalysisOutput)))
	}
	if c.TallyOutput != "" && !medalio.SupportedOutput(c.TallyOutput) {
		return errors.NewValidationError("config", "tally_output",
			fmt.Sprintf("unsupported output extension %q", filepath.Ext(c.TallyOutput)))
	}
	return nil
}

// WorkerCount returns the indicator worker pool size.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// InputPath resolves an input file name against DataDir.
func (c *Config) InputPath(name string) string {
	return resolve(c.DataDir, name)
}

// OutputPath resolves an output file name against OutputDir. Empty names
// stay empty.
func (c *Config) OutputPath(name string) string {
	if name == "" {
		return ""
	}
	return resolve(c.OutputDir, name)
}

// IndicatorPaths returns the resolved wide file of every configured indicator.
func (c *Config) IndicatorPaths() (map[model.Indicator]string, error) {
	paths := make(map[model.Indicator]string, len(c.Indicators))
	for name, file := range c.Indicators {
		ind, err := model.ParseIndicator(name)
		if err != nil {
			return nil, errors.NewValidationError("config", "indicators", err.Error())
		}
		paths[ind] = c.InputPath(file)
	}
	return paths, nil
}

func resolve(dir, name string) string {
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
