package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	DataDir   string       `yaml:"dataDir" validate:"required"`
	PageSize  int          `yaml:"pageSize" validate:"gt=0,lte=1000"`
	LogLevel  string       `yaml:"logLevel" validate:"oneof=debug info warn error"`
	LogFormat string       `yaml:"logFormat" validate:"oneof=text json"`
	Cities    []CitySource `yaml:"cities" validate:"required,len=3,dive"`
}

// CitySource maps a city name to the CSV file holding its trips
type CitySource struct {
	Name string `yaml:"name" validate:"required"`
	File string `yaml:"file" validate:"required"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		DataDir:   ".",
		PageSize:  5,
		LogLevel:  "warn",
		LogFormat: "text",
		Cities: []CitySource{
			{Name: "chicago", File: "chicago.csv"},
			{Name: "new york", File: "new_york_city.csv"},
			{Name: "washington", File: "washington.csv"},
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// BIKESHARE_* environment variables, in that order.
//
// An empty path falls back to BIKESHARE_CONFIG. A .env file in the working
// directory is loaded first if present; a malformed one is an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("BIKESHARE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("BIKESHARE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("BIKESHARE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("BIKESHARE_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("BIKESHARE_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BIKESHARE_PAGE_SIZE: %q", v)
		}
		cfg.PageSize = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct constraints and that city names are unique
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	seen := make(map[string]bool, len(c.Cities))
	for _, city := range c.Cities {
		name := normalize(city.Name)
		if seen[name] {
			return errors.New("invalid configuration: duplicate city " + city.Name)
		}
		seen[name] = true
	}
	return nil
}

// Catalog returns the immutable lookup tables derived from this configuration
func (c *Config) Catalog() Catalog {
	return NewCatalog(c.DataDir, c.Cities)
}
