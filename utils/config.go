package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/go-gol-duel/model"
)

// Config holds the configuration for a simulation run
type Config struct {
	Rows          int    `json:"rows" yaml:"rows"`
	Cols          int    `json:"cols" yaml:"cols"`
	Topology      string `json:"topology" yaml:"topology"`
	Strategy      string `json:"strategy" yaml:"strategy"`
	Workers       int    `json:"workers" yaml:"workers"`
	UseMemoryPool bool   `json:"use_memory_pool" yaml:"use_memory_pool"`
	EmptyGlyph    string `json:"empty_glyph" yaml:"empty_glyph"`
	LogLevel      string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns a 10x10 clamped setup
func DefaultConfig() Config {
	return Config{
		Rows:          10,
		Cols:          10,
		Topology:      "clamped",
		Strategy:      "bounded",
		Workers:       0, // runtime.NumCPU()
		UseMemoryPool: true,
		EmptyGlyph:    "-",
		LogLevel:      "info",
	}
}

// LoadConfig loads configuration from a JSON or YAML file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in %+v", filename)
	}
	return config, nil
}

// Engine builds the evolution engine described by the config
func (c Config) Engine() (model.Engine, error) {
	strategy, err := model.ParseStrategy(c.Strategy)
	if err != nil {
		return model.Engine{}, errors.Wrap(err, "[Engine]")
	}
	if c.Workers < 0 {
		return model.Engine{}, errors.Errorf("[Engine] workers must be >= 0, got %d", c.Workers)
	}
	engine := model.Engine{Strategy: strategy, Workers: c.Workers}
	if c.UseMemoryPool {
		engine.Pool = model.NewGridPool()
	}
	return engine, nil
}

// GridTopology returns the configured edge handling
func (c Config) GridTopology() (model.Topology, error) {
	topology, err := model.ParseTopology(c.Topology)
	if err != nil {
		return topology, errors.Wrap(err, "[GridTopology]")
	}
	return topology, nil
}

// Validate checks dimensions and enumerated fields
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return errors.Errorf("[Validate] grid must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	}
	if c.Workers < 0 {
		return errors.Errorf("[Validate] workers must be >= 0, got %d", c.Workers)
	}
	if _, err := model.ParseTopology(c.Topology); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	if _, err := model.ParseStrategy(c.Strategy); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	return nil
}
