package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
)

// EnvPrefix prefixes every environment variable
const EnvPrefix = "TMC_"

// ErrHelp is returned when -h or --help was requested
var ErrHelp = flag.ErrHelp

// resolver binds one setting to its flag and environment variable
type resolver struct {
	flagName    string
	envVarName  string
	description string
	boolean     bool
	setter      func(*Config, string) error
}

// optionValue records whether a flag was given and keeps its raw text
type optionValue struct {
	value   string
	set     bool
	boolean bool
}

func (v *optionValue) String() string { return v.value }

func (v *optionValue) Set(s string) error {
	v.value = s
	v.set = true
	return nil
}

func (v *optionValue) IsBoolFlag() bool { return v.boolean }

func resolvers() []resolver {
	return []resolver{
		{flagName: "prop", envVarName: "TMC_PROP", description: "objective: gap, polarisability, pf, mb, mpsg",
			setter: func(c *Config, v string) error { c.Prop = v; return nil }},
		{flagName: "num_iter", envVarName: "TMC_NUM_ITER", description: "optimization iterations",
			setter: intSetter(func(c *Config) *int { return &c.Iterations })},
		{flagName: "population", envVarName: "TMC_POPULATION", description: "population size per generation",
			setter: intSetter(func(c *Config) *int { return &c.Population })},
		{flagName: "num_offspring", envVarName: "TMC_NUM_OFFSPRING", description: "complexes proposed per iteration",
			setter: intSetter(func(c *Config) *int { return &c.Offspring })},
		{flagName: "seed", envVarName: "TMC_SEED", description: "seed for initial sampling and the genetic operators",
			setter: func(c *Config, v string) error {
				n, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					return err
				}
				c.Seed = n
				return nil
			}},
		{flagName: "model", envVarName: "TMC_MODEL", description: "proposal model, only ga",
			setter: func(c *Config, v string) error { c.Model = v; return nil }},
		{flagName: "strategy", envVarName: "TMC_STRATEGY", description: "parent selection: best, all, const",
			setter: func(c *Config, v string) error { c.Strategy = v; return nil }},
		{flagName: "path", envVarName: "TMC_PATH", description: "output directory for csv, log and checkpoint files",
			setter: func(c *Config, v string) error { c.Path = v; return nil }},
		{flagName: "ligand_file", envVarName: "TMC_LIGAND_FILE", description: "ligand catalog csv (id, charge)",
			setter: func(c *Config, v string) error { c.LigandFile = v; return nil }},
		{flagName: "space_file", envVarName: "TMC_SPACE_FILE", description: "ground truth search space csv",
			setter: func(c *Config, v string) error { c.SpaceFile = v; return nil }},
		{flagName: "charge_policy", envVarName: "TMC_CHARGE_POLICY", description: "mutation partial charge: slot, matching",
			setter: func(c *Config, v string) error { c.ChargePolicy = v; return nil }},
		{flagName: "replicates", envVarName: "TMC_REPLICATES", description: "independent runs with seeds seed, seed+1, ...",
			setter: intSetter(func(c *Config) *int { return &c.Replicates })},
		{flagName: "resume", envVarName: "TMC_RESUME", description: "checkpoint file to continue",
			setter: func(c *Config, v string) error { c.Resume = v; return nil }},
		{flagName: "log-level", envVarName: "TMC_LOG_LEVEL", description: "log level: debug, info, warn, error",
			setter: func(c *Config, v string) error { c.LogLevel = v; return nil }},
		{flagName: "listen", envVarName: "TMC_LISTEN", description: "telemetry address (e.g. :9090), empty disables",
			setter: func(c *Config, v string) error { c.Listen = v; return nil }},
		{flagName: "monitor", envVarName: "TMC_MONITOR", description: "show the terminal dashboard", boolean: true,
			setter: boolSetter(func(c *Config) *bool { return &c.Monitor })},
		{flagName: "chime", envVarName: "TMC_CHIME", description: "play a tone on a new best score", boolean: true,
			setter: boolSetter(func(c *Config) *bool { return &c.Chime })},
	}
}

func intSetter(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func boolSetter(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

// Load resolves defaults, then the TOML file named by --config or TMC_CONFIG,
// then environment variables, then flags, and validates the result
func Load(args []string, getenv Getenv) (Config, error) {
	return load(args, getenv, io.Discard)
}

func load(args []string, getenv Getenv, usage io.Writer) (Config, error) {
	fs := flag.NewFlagSet("tmc-evolve", flag.ContinueOnError)
	fs.SetOutput(usage)

	configFile := fs.String("config", "", "TOML settings file")

	table := resolvers()
	values := make(map[string]*optionValue, len(table))
	for _, r := range table {
		v := &optionValue{boolean: r.boolean}
		values[r.flagName] = v
		fs.Var(v, r.flagName, r.description)
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("config: unexpected arguments %v", fs.Args())
	}

	cfg := Default()

	path := *configFile
	if path == "" {
		path = getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := DecodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	for _, r := range table {
		var value string
		if v := values[r.flagName]; v.set {
			value = v.value
		} else if env := getenv(r.envVarName); env != "" {
			value = env
		} else {
			continue
		}
		if err := r.setter(&cfg, value); err != nil {
			return Config{}, fmt.Errorf("config: %s=%q: %w", r.flagName, value, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Usage writes the flag help text
func Usage(w io.Writer) {
	_, err := load([]string{"-h"}, func(string) string { return "" }, w)
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(w, err)
	}
}
