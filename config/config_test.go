package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tmc-evolve/evolve"
)

func envMap(m map[string]string) Getenv {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "gap", cfg.Prop)
	assert.Equal(t, 20, cfg.Iterations)
	assert.Equal(t, 20, cfg.Population)
	assert.Equal(t, 10, cfg.Offspring)
	assert.Equal(t, "ga", cfg.Model)
	assert.Equal(t, "all", cfg.Strategy)
	assert.Equal(t, "./llm-results", cfg.Path)
	assert.Equal(t, "slot", cfg.ChargePolicy)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, `
prop = "pf"
num_iter = 5
population = 8
strategy = "best"
`)
	env := envMap(map[string]string{
		"TMC_CONFIG":     path,
		"TMC_POPULATION": "12",
		"TMC_STRATEGY":   "const",
	})

	cfg, err := Load([]string{"--strategy", "all", "--monitor"}, env)
	require.NoError(t, err)

	// File values survive unless overridden
	assert.Equal(t, "pf", cfg.Prop)
	assert.Equal(t, 5, cfg.Iterations)
	// Env beats file, flag beats env
	assert.Equal(t, 12, cfg.Population)
	assert.Equal(t, "all", cfg.Strategy)
	assert.True(t, cfg.Monitor)
	assert.Equal(t, 10, cfg.Offspring)
}

func TestLoad_ConfigFlagOverEnv(t *testing.T) {
	fromFlag := writeFile(t, `prop = "mb"`)
	fromEnv := writeFile(t, `prop = "mpsg"`)

	cfg, err := Load([]string{"--config", fromFlag}, envMap(map[string]string{"TMC_CONFIG": fromEnv}))
	require.NoError(t, err)
	assert.Equal(t, "mb", cfg.Prop)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("bad int", func(t *testing.T) {
		_, err := Load([]string{"--num_iter", "many"}, envMap(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "num_iter")
	})

	t.Run("unknown file key", func(t *testing.T) {
		path := writeFile(t, `popsize = 3`)
		_, err := Load([]string{"--config", path}, envMap(nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "popsize")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, envMap(nil))
		assert.Error(t, err)
	})

	t.Run("positional", func(t *testing.T) {
		_, err := Load([]string{"extra"}, envMap(nil))
		assert.Error(t, err)
	})

	t.Run("help", func(t *testing.T) {
		_, err := Load([]string{"-h"}, envMap(nil))
		assert.ErrorIs(t, err, ErrHelp)
	})
}

func TestValidate_CollectsIssues(t *testing.T) {
	cfg := Default()
	cfg.Prop = "homo"
	cfg.Population = 0
	cfg.Model = "gpt-4"
	cfg.Strategy = "elite"
	cfg.Replicates = 2
	cfg.Resume = "run.toml"

	err := cfg.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Issues, 5)
	assert.Contains(t, err.Error(), "gpt-4")
}

func TestConfig_OutputBase(t *testing.T) {
	cfg := Default()
	cfg.Path = "out"
	assert.Equal(t,
		filepath.Join("out", "gap-pop_20-offspring_10-iter_20-seed_3-model_ga-ss_all-1a2b3c4d"),
		cfg.OutputBase(3, "1a2b3c4d"))
}

func TestConfig_RunConfig(t *testing.T) {
	cfg := Default()
	cfg.Strategy = "const"
	rc := cfg.RunConfig("id", 4)
	assert.Equal(t, evolve.StrategyConst, rc.Strategy)
	assert.Equal(t, uint64(4), rc.Seed)
	assert.Equal(t, "id", rc.RunID)
	assert.Equal(t, 20, rc.Population)
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf)
	assert.Contains(t, buf.String(), "-num_offspring")
	assert.Contains(t, buf.String(), "-config")
}
