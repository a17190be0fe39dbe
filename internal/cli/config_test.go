package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/sched"
	"github.com/matzehuels/permsample/pkg/ss"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultRunConfigIsValid(t *testing.T) {
	cfg := defaultRunConfig()
	require.NoError(t, cfg.validate())
	assert.Equal(t, ss.NameVBSS, cfg.Algorithm)
	assert.Equal(t, []string{sched.NameATC}, cfg.Heuristics)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
}

func TestMergeConfigFile(t *testing.T) {
	path := writeFile(t, "run.toml", `
algorithm = "hbss"
heuristics = ["atc", "covert"]
strategy = "weighted"
weights = [3.0, 1.0]
samples = 50
bias = "power"
bias_exponent = 1.5
`)
	cfg := defaultRunConfig()
	require.NoError(t, cfg.merge(path, func(string) bool { return false }))

	assert.Equal(t, ss.NameHBSS, cfg.Algorithm)
	assert.Equal(t, []string{"atc", "covert"}, cfg.Heuristics)
	assert.Equal(t, "weighted", cfg.Strategy)
	assert.Equal(t, []float64{3, 1}, cfg.Weights)
	assert.Equal(t, 50, cfg.Samples)
	assert.Equal(t, biasPower, cfg.Bias)
	assert.Equal(t, 1.5, cfg.BiasExponent)
	assert.Equal(t, ss.DefaultBeta, cfg.Beta, "keys missing from the file keep their value")
}

func TestMergeExplicitFlagsWin(t *testing.T) {
	path := writeFile(t, "run.toml", "algorithm = \"hbss\"\nheuristics = [\"edd\"]\nsamples = 50\n")

	cfg := defaultRunConfig()
	cfg.Samples = 7
	cfg.Heuristics = []string{"wspt"}
	changed := map[string]bool{"samples": true, "heuristic": true}
	require.NoError(t, cfg.merge(path, func(name string) bool { return changed[name] }))

	assert.Equal(t, ss.NameHBSS, cfg.Algorithm)
	assert.Equal(t, 7, cfg.Samples)
	assert.Equal(t, []string{"wspt"}, cfg.Heuristics)
}

func TestMergeErrors(t *testing.T) {
	never := func(string) bool { return false }

	cfg := defaultRunConfig()
	err := cfg.merge(writeFile(t, "bad.toml", "samples = "), never)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "%v", err)

	err = cfg.merge(writeFile(t, "unknown.toml", "sample = 10"), never)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "%v", err)
	assert.Contains(t, err.Error(), "sample")

	err = cfg.merge(filepath.Join(t.TempDir(), "missing.toml"), never)
	assert.Error(t, err)
}

func TestConfigFlagsMatchSampleFlags(t *testing.T) {
	cmd := New(os.Stderr, LogInfo).sampleCommand()
	for name := range configFlags {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*runConfig)
		code   errors.Code
	}{
		{"algorithm", func(c *runConfig) { c.Algorithm = "anneal" }, errors.ErrCodeInvalidAlgorithm},
		{"no heuristics", func(c *runConfig) { c.Heuristics = nil }, errors.ErrCodeEmptyHeuristicSet},
		{"samples", func(c *runConfig) { c.Samples = -1 }, errors.ErrCodeInvalidConfig},
		{"workers", func(c *runConfig) { c.Workers = 0 }, errors.ErrCodeInvalidConfig},
		{"timeout", func(c *runConfig) { c.Timeout = -5 }, errors.ErrCodeInvalidConfig},
		{"bias", func(c *runConfig) { c.Bias = "linear" }, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultRunConfig()
			tt.modify(&cfg)
			err := cfg.validate()
			assert.True(t, errors.Is(err, tt.code), "%v", err)
		})
	}
}

func TestRankBias(t *testing.T) {
	cfg := defaultRunConfig()
	bias, err := cfg.rankBias()
	require.NoError(t, err)
	assert.Equal(t, 0.5, bias(2))

	cfg.Bias = biasPower
	cfg.BiasExponent = 2
	bias, err = cfg.rankBias()
	require.NoError(t, err)
	assert.InDelta(t, 0.25, bias(2), 1e-12)

	cfg.BiasExponent = 0
	_, err = cfg.rankBias()
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidExponent))
}
