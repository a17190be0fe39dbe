package cli

import (
	"runtime"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/sched"
	"github.com/matzehuels/permsample/pkg/ss"
)

// Bias names accepted by --bias.
const (
	biasInverse = "inverse"
	biasExp     = "exp"
	biasPower   = "power"
)

// runConfig is the sampling configuration. It is filled from flags and,
// with --config, from a TOML file:
//
//	algorithm = "hbss"
//	heuristics = ["atc", "covert"]
//	strategy = "weighted"
//	weights = [3, 1]
//	samples = 5000
//	bias = "power"
//	bias_exponent = 2.0
//
// Flags given on the command line take precedence over the file.
type runConfig struct {
	Algorithm    string    `toml:"algorithm"`
	Heuristics   []string  `toml:"heuristics"`
	Strategy     string    `toml:"strategy"`
	Weights      []float64 `toml:"weights"`
	Samples      int       `toml:"samples"`
	Workers      int       `toml:"workers"`
	Seed         uint64    `toml:"seed"`
	Exponent     float64   `toml:"exponent"`
	Bias         string    `toml:"bias"`
	BiasExponent float64   `toml:"bias_exponent"`
	Beta         float64   `toml:"beta"`
	K            float64   `toml:"k"`
	Timeout      int       `toml:"timeout"`
}

func defaultRunConfig() runConfig {
	return runConfig{
		Algorithm:    ss.NameVBSS,
		Heuristics:   []string{sched.NameATC},
		Strategy:     ss.HybridRandom.String(),
		Samples:      1000,
		Workers:      runtime.NumCPU(),
		Exponent:     1,
		Bias:         biasInverse,
		BiasExponent: 2,
		Beta:         ss.DefaultBeta,
		K:            sched.DefaultK,
		Timeout:      defaultTimeout,
	}
}

// configFlags maps flag names to the fields they set.
var configFlags = map[string]func(dst, src *runConfig){
	"algo":            func(d, s *runConfig) { d.Algorithm = s.Algorithm },
	"heuristic":       func(d, s *runConfig) { d.Heuristics = s.Heuristics },
	"hybrid-strategy": func(d, s *runConfig) { d.Strategy = s.Strategy },
	"weights":         func(d, s *runConfig) { d.Weights = s.Weights },
	"samples":         func(d, s *runConfig) { d.Samples = s.Samples },
	"workers":         func(d, s *runConfig) { d.Workers = s.Workers },
	"seed":            func(d, s *runConfig) { d.Seed = s.Seed },
	"exponent":        func(d, s *runConfig) { d.Exponent = s.Exponent },
	"bias":            func(d, s *runConfig) { d.Bias = s.Bias },
	"bias-exponent":   func(d, s *runConfig) { d.BiasExponent = s.BiasExponent },
	"beta":            func(d, s *runConfig) { d.Beta = s.Beta },
	"k":               func(d, s *runConfig) { d.K = s.K },
	"timeout":         func(d, s *runConfig) { d.Timeout = s.Timeout },
}

// merge overlays the TOML file at path onto cfg, except for the fields
// whose flags changed reports as set.
func (cfg *runConfig) merge(path string, changed func(name string) bool) error {
	// Decoding may reuse slice backing arrays.
	explicit := *cfg
	explicit.Heuristics = slices.Clone(cfg.Heuristics)
	explicit.Weights = slices.Clone(cfg.Weights)
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	for name, restore := range configFlags {
		if changed(name) {
			restore(cfg, &explicit)
		}
	}
	return nil
}

// validate checks what the sampler constructors do not.
func (cfg *runConfig) validate() error {
	algorithms := []string{ss.NameGreedy, ss.NameVBSS, ss.NameHBSS, ss.NameAcceptanceBand}
	if !slices.Contains(algorithms, cfg.Algorithm) {
		return errors.New(errors.ErrCodeInvalidAlgorithm, "unknown algorithm %q (want one of %v)", cfg.Algorithm, algorithms)
	}
	if len(cfg.Heuristics) == 0 {
		return errors.New(errors.ErrCodeEmptyHeuristicSet, "at least one heuristic is required")
	}
	if cfg.Samples < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "samples must be non-negative, got %d", cfg.Samples)
	}
	if cfg.Workers < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout must be non-negative, got %d", cfg.Timeout)
	}
	switch cfg.Bias {
	case biasInverse, biasExp, biasPower:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown bias %q (want %s, %s or %s)", cfg.Bias, biasInverse, biasExp, biasPower)
	}
	return nil
}

// rankBias returns the HBSS rank bias named by cfg.Bias.
func (cfg *runConfig) rankBias() (ss.RankBias, error) {
	switch cfg.Bias {
	case biasExp:
		return ss.ExpRank, nil
	case biasPower:
		return ss.InversePowerRank(cfg.BiasExponent)
	}
	return ss.InverseRank, nil
}
