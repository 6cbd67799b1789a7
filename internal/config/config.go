package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kmehta/boltgroup/internal/geom"
	"github.com/kmehta/boltgroup/internal/icr"
)

const (
	DefaultRows       = 2
	DefaultCols       = 2
	DefaultRowSpacing = 3.0
	DefaultColSpacing = 3.0
)

type Config struct {
	Pattern PatternConfig `yaml:"pattern"`
	Load    LoadConfig    `yaml:"load"`
	Solver  SolverConfig  `yaml:"solver"`
}

type PatternConfig struct {
	Rows       int     `yaml:"rows"`
	Cols       int     `yaml:"cols"`
	RowSpacing float64 `yaml:"row_spacing"`
	ColSpacing float64 `yaml:"col_spacing"`
}

type LoadConfig struct {
	Eccentricity float64 `yaml:"eccentricity"`
	Rotation     float64 `yaml:"rotation"`
}

type SolverConfig struct {
	Tolerance        float64 `yaml:"tolerance"`
	MaxIterations    int     `yaml:"max_iterations"`
	DivergenceGrace  int     `yaml:"divergence_grace"`
	DivergenceGrowth float64 `yaml:"divergence_growth"`
}

func DefaultConfig() *Config {
	opts := icr.DefaultOptions()
	return &Config{
		Pattern: PatternConfig{
			Rows:       DefaultRows,
			Cols:       DefaultCols,
			RowSpacing: DefaultRowSpacing,
			ColSpacing: DefaultColSpacing,
		},
		Load: LoadConfig{Eccentricity: 6.0},
		Solver: SolverConfig{
			Tolerance:        opts.Tolerance,
			MaxIterations:    opts.MaxIterations,
			DivergenceGrace:  opts.DivergenceGrace,
			DivergenceGrowth: opts.DivergenceGrowth,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GeomPattern validates and returns the configured fastener pattern.
func (c *Config) GeomPattern() (geom.Pattern, error) {
	return geom.NewPattern(c.Pattern.Rows, c.Pattern.Cols, c.Pattern.RowSpacing, c.Pattern.ColSpacing)
}

func (c *Config) LoadCase() icr.Load {
	return icr.Load{Eccentricity: c.Load.Eccentricity, Rotation: c.Load.Rotation}
}

// SolverOptions maps the solver section onto icr.Options; zero fields
// fall back to the defaults.
func (c *Config) SolverOptions() icr.Options {
	opts := icr.DefaultOptions()
	if c.Solver.Tolerance > 0 {
		opts.Tolerance = c.Solver.Tolerance
	}
	if c.Solver.MaxIterations > 0 {
		opts.MaxIterations = c.Solver.MaxIterations
	}
	if c.Solver.DivergenceGrace > 0 {
		opts.DivergenceGrace = c.Solver.DivergenceGrace
	}
	if c.Solver.DivergenceGrowth > 0 {
		opts.DivergenceGrowth = c.Solver.DivergenceGrowth
	}
	return opts
}
