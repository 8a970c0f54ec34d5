package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAlgorithm  = "metropolis"
	DefaultSize       = 32
	DefaultK          = 1.0
	DefaultJ          = 1.0
	DefaultT          = 2.0
	DefaultIterations = 1000
	DefaultBurnin     = 100
)

type Config struct {
	Algorithm  string     `yaml:"algorithm" toml:"algorithm"`
	Size       int        `yaml:"size" toml:"size"`
	K          float64    `yaml:"k" toml:"k"`
	J          float64    `yaml:"j" toml:"j"`
	T          float64    `yaml:"t" toml:"t"`
	Iterations int        `yaml:"iterations" toml:"iterations"`
	Burnin     int        `yaml:"burnin" toml:"burnin"`
	Seed       int64      `yaml:"seed" toml:"seed"`
	SaveConfig bool       `yaml:"save_config" toml:"save_config"`
	Scan       ScanConfig `yaml:"scan" toml:"scan"`
}

// ScanConfig describes a fixed temperature grid.
type ScanConfig struct {
	TMin  float64 `yaml:"t_min" toml:"t_min"`
	TMax  float64 `yaml:"t_max" toml:"t_max"`
	Steps int     `yaml:"steps" toml:"steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:  DefaultAlgorithm,
		Size:       DefaultSize,
		K:          DefaultK,
		J:          DefaultJ,
		T:          DefaultT,
		Iterations: DefaultIterations,
		Burnin:     DefaultBurnin,
		Scan: ScanConfig{
			TMin:  1.5,
			TMax:  3.5,
			Steps: 9,
		},
	}
}

// Load reads a YAML or TOML file (chosen by extension) over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Validate reports configuration values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", c.Size)
	}
	if c.K <= 0 {
		return fmt.Errorf("k must be positive, got %f", c.K)
	}
	if c.T <= 0 {
		return fmt.Errorf("temperature must be positive, got %f", c.T)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must not be negative, got %d", c.Iterations)
	}
	if c.Burnin < 0 {
		return fmt.Errorf("burnin must not be negative, got %d", c.Burnin)
	}
	if c.Scan.Steps > 0 && (c.Scan.TMin <= 0 || c.Scan.TMax <= 0) {
		return fmt.Errorf("scan temperatures must be positive, got %f..%f", c.Scan.TMin, c.Scan.TMax)
	}
	return nil
}

// Temperatures expands the scan grid, endpoints included.
func (s ScanConfig) Temperatures() []float64 {
	if s.Steps <= 1 {
		return []float64{s.TMin}
	}
	temps := make([]float64, s.Steps)
	step := (s.TMax - s.TMin) / float64(s.Steps-1)
	for i := range temps {
		temps[i] = s.TMin + float64(i)*step
	}
	return temps
}
