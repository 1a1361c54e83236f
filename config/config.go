// Package config resolves run settings from a TOML file, TMC_* environment
// variables and command line flags, in increasing precedence
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/tmc-evolve/evolve"
	"github.com/lixenwraith/tmc-evolve/logging"
	"github.com/lixenwraith/tmc-evolve/objective"
	"github.com/lixenwraith/tmc-evolve/parameter"
	"github.com/lixenwraith/tmc-evolve/tmc"
)

// Config holds the settings of one invocation
type Config struct {
	Prop       string `toml:"prop"`
	Iterations int    `toml:"num_iter"`
	Population int    `toml:"population"`
	Offspring  int    `toml:"num_offspring"`
	Seed       int64  `toml:"seed"`
	Model      string `toml:"model"`
	Strategy   string `toml:"strategy"`
	Path       string `toml:"path"`

	LigandFile   string `toml:"ligand_file"`
	SpaceFile    string `toml:"space_file"`
	ChargePolicy string `toml:"charge_policy"`
	Replicates   int    `toml:"replicates"`
	Resume       string `toml:"resume"`

	LogLevel string `toml:"log_level"`
	Listen   string `toml:"listen"`
	Monitor  bool   `toml:"monitor"`
	Chime    bool   `toml:"chime"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Prop:         parameter.DefaultProperty,
		Iterations:   parameter.DefaultIterations,
		Population:   parameter.DefaultPopulation,
		Offspring:    parameter.DefaultOffspring,
		Seed:         parameter.DefaultSeed,
		Model:        parameter.DefaultModel,
		Strategy:     parameter.DefaultStrategy,
		Path:         parameter.DefaultOutputPath,
		LigandFile:   parameter.DefaultLigandFile,
		SpaceFile:    parameter.DefaultSpaceFile,
		ChargePolicy: tmc.ExcludeSlot.String(),
		Replicates:   parameter.DefaultReplicates,
		LogLevel:     parameter.DefaultLogLevel,
	}
}

// DecodeFile overlays the keys present in a TOML file onto cfg
func DecodeFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config: %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ValidationError lists every problem found in a Config
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "config: " + strings.Join(e.Issues, "; ")
}

// Validate checks every field and reports all issues at once
func (c Config) Validate() error {
	var issues []string
	addf := func(format string, v ...any) {
		issues = append(issues, fmt.Sprintf(format, v...))
	}

	if _, err := objective.Parse(c.Prop); err != nil {
		addf("prop %q not one of %s", c.Prop, strings.Join(objective.Names(), ", "))
	}
	if c.Iterations < 0 {
		addf("num_iter %d < 0", c.Iterations)
	}
	if c.Population < 1 {
		addf("population %d < 1", c.Population)
	}
	if c.Offspring < 1 {
		addf("num_offspring %d < 1", c.Offspring)
	}
	if c.Seed < 0 {
		addf("seed %d < 0", c.Seed)
	}
	if c.Model != parameter.DefaultModel {
		addf("model %q not supported, only %q", c.Model, parameter.DefaultModel)
	}
	if _, err := evolve.ParseStrategy(c.Strategy); err != nil {
		addf("strategy %q not one of best, all, const", c.Strategy)
	}
	if _, err := tmc.ParseChargePolicy(c.ChargePolicy); err != nil {
		addf("charge_policy %q not one of slot, matching", c.ChargePolicy)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		addf("log_level %q not one of debug, info, warn, error", c.LogLevel)
	}
	if c.Path == "" {
		addf("path is empty")
	}
	if c.LigandFile == "" {
		addf("ligand_file is empty")
	}
	if c.SpaceFile == "" {
		addf("space_file is empty")
	}
	if c.Replicates < 1 {
		addf("replicates %d < 1", c.Replicates)
	}
	if c.Resume != "" && c.Replicates > 1 {
		addf("resume continues a single run, replicates must be 1")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// RunConfig converts the size settings for the replicate with the given seed
func (c Config) RunConfig(runID string, seed int64) evolve.RunConfig {
	strategy, _ := evolve.ParseStrategy(c.Strategy)
	return evolve.RunConfig{
		RunID:      runID,
		Iterations: c.Iterations,
		Population: c.Population,
		Offspring:  c.Offspring,
		Seed:       uint64(seed),
		Strategy:   strategy,
	}
}

// OutputBase returns the extension-less output path of one run
func (c Config) OutputBase(seed int64, runID string) string {
	name := fmt.Sprintf("%s-pop_%d-offspring_%d-iter_%d-seed_%d-model_%s-ss_%s-%s",
		c.Prop, c.Population, c.Offspring, c.Iterations, seed, c.Model, c.Strategy, runID)
	return filepath.Join(c.Path, name)
}

// Getenv is the environment lookup used by Load
type Getenv func(string) string

// LoadProcess resolves settings for the running process
func LoadProcess() (Config, error) {
	return Load(os.Args[1:], os.Getenv)
}
