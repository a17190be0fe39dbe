package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/permsample/pkg/cache"
	"github.com/matzehuels/permsample/pkg/errors"
	"github.com/matzehuels/permsample/pkg/history"
	"github.com/matzehuels/permsample/pkg/observability"
	"github.com/matzehuels/permsample/pkg/observability/prom"
	"github.com/matzehuels/permsample/pkg/rng"
	"github.com/matzehuels/permsample/pkg/sched"
	"github.com/matzehuels/permsample/pkg/search"
	"github.com/matzehuels/permsample/pkg/ss"
)

// sampleOptions holds the sample command's flags outside runConfig.
type sampleOptions struct {
	cfg         runConfig
	configPath  string
	random      int
	output      string
	noCache     bool
	redisURL    string
	mongoURI    string
	metricsAddr string
}

// sampleCommand creates the sample command.
func (c *CLI) sampleCommand() *cobra.Command {
	opts := sampleOptions{cfg: defaultRunConfig()}

	cmd := &cobra.Command{
		Use:   "sample [instance.toml]",
		Short: "Search an instance for a low-tardiness job sequence",
		Long: `Search a single-machine instance for a job sequence with low total weighted
tardiness.

Each run builds a sequence one job at a time. At every step the heuristic scores
the unscheduled jobs and the algorithm picks one:

  greedy   always the best-scoring job
  vbss     at random, with probability growing with the score (--exponent)
  hbss     at random, with probability falling with the score's rank (--bias)
  band     uniformly among jobs scoring within --beta of the best

Several --heuristic values form a hybrid: each run is guided by one of them,
chosen by --hybrid-strategy. Runs are spread over --workers goroutines and stop
after --samples runs, at --timeout, or when a sequence without tardiness is found.

The best sequence per instance is cached; later runs start from it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.configPath != "" {
				if err := opts.cfg.merge(opts.configPath, cmd.Flags().Changed); err != nil {
					return err
				}
			}
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runSample(cmd.Context(), input, opts)
		},
	}

	cfg := &opts.cfg
	f := cmd.Flags()

	// Input & output
	f.IntVar(&opts.random, "random", 0, "sample a random instance with this many jobs instead of a file")
	f.StringVarP(&opts.output, "output", "o", "", "write the best sequence to this TOML file")
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML run configuration (flags given explicitly win)")

	// Algorithm flags
	f.StringVarP(&cfg.Algorithm, "algo", "a", cfg.Algorithm, "algorithm: greedy, vbss (default), hbss, band")
	f.StringSliceVarP(&cfg.Heuristics, "heuristic", "H", cfg.Heuristics, "heuristics; more than one forms a hybrid (see 'permsample heuristics')")
	f.StringVar(&cfg.Strategy, "hybrid-strategy", cfg.Strategy, "hybrid member choice: random (default), round-robin, weighted")
	f.Float64SliceVar(&cfg.Weights, "weights", cfg.Weights, "member weights for --hybrid-strategy weighted")
	f.Float64Var(&cfg.Exponent, "exponent", cfg.Exponent, "vbss: score exponent")
	f.StringVar(&cfg.Bias, "bias", cfg.Bias, "hbss: rank bias inverse (default), exp, power")
	f.Float64Var(&cfg.BiasExponent, "bias-exponent", cfg.BiasExponent, "hbss: exponent of the power bias")
	f.Float64Var(&cfg.Beta, "beta", cfg.Beta, "band: acceptance band width in [0,1]")
	f.Float64Var(&cfg.K, "k", cfg.K, "look-ahead of the atc and covert heuristics")

	// Run flags
	f.IntVarP(&cfg.Samples, "samples", "n", cfg.Samples, "number of construction runs")
	f.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "concurrent workers")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0: different every run)")
	f.IntVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout in seconds (0: none)")

	// Backends
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the best-solution cache")
	f.StringVar(&opts.redisURL, "redis", "", "Redis URL of a shared best-solution cache")
	f.StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI of a shared run history")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while sampling")

	completeValues(cmd, "algo", ss.NameGreedy, ss.NameVBSS, ss.NameHBSS, ss.NameAcceptanceBand)
	completeValues(cmd, "heuristic", sched.Names()...)
	completeValues(cmd, "hybrid-strategy", ss.HybridRandom.String(), ss.HybridRoundRobin.String(), ss.HybridWeighted.String())
	completeValues(cmd, "bias", biasInverse, biasExp, biasPower)

	return cmd
}

// completeValues registers a fixed set of shell completions for a flag.
func completeValues(cmd *cobra.Command, flag string, values ...string) {
	_ = cmd.RegisterFlagCompletionFunc(flag, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
}

// runSample loads the instance, samples it and records the outcome.
func (c *CLI) runSample(ctx context.Context, input string, opts sampleOptions) error {
	cfg := opts.cfg
	if err := cfg.validate(); err != nil {
		return err
	}
	logger := loggerFromContext(ctx)

	inst, err := loadInstance(input, opts.random, cfg.Seed)
	if err != nil {
		return err
	}
	wt, err := sched.NewWeightedTardiness(inst)
	if err != nil {
		return err
	}
	h, err := newHeuristic(wt, cfg)
	if err != nil {
		return err
	}
	hash, err := instanceHash(inst)
	if err != nil {
		return fmt.Errorf("hash instance: %w", err)
	}
	logger.Debugf("Instance %s: %d jobs, hash %s", inst.Name, inst.Len(), hash[:12])

	if opts.metricsAddr != "" {
		stop, err := serveMetrics(ctx, logger, opts.metricsAddr)
		if err != nil {
			return fmt.Errorf("serve metrics: %w", err)
		}
		defer stop()
	}

	store, err := newCache(ctx, opts.noCache, opts.redisURL)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()
	key := newKeyer(opts.redisURL).BestKey(hash, sched.Objective)

	timeout := time.Duration(cfg.Timeout) * time.Second
	tracker := search.NewProgressTracker[int]()
	progressLog := newSearchLogger(logger, tracker, timeout)
	seedFromCache(ctx, logger, store, key, wt, tracker, progressLog)

	run, err := newBatch(h, cfg, ss.Options[int]{
		Seed:       cfg.Seed,
		Tracker:    tracker,
		OnImproved: progressLog.improved,
	})
	if err != nil {
		return err
	}

	samples := cfg.Samples
	if cfg.Algorithm == ss.NameGreedy && len(cfg.Heuristics) == 1 {
		// One heuristic makes greedy deterministic.
		samples = min(samples, 1)
	}

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()
	stopTracker := context.AfterFunc(runCtx, tracker.Stop)
	defer stopTracker()

	beatCtx, stopBeat := context.WithCancel(runCtx)
	go progressLog.heartbeat(beatCtx)

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(runCtx, fmt.Sprintf("Sampling %d jobs with %s...", inst.Len(), cfg.Algorithm))
	spinner.Start()
	batch, runErr := run(runCtx, cfg.Workers, samples)
	if runErr != nil && runCtx.Err() == nil {
		spinner.StopWithError("Sampling failed")
	} else {
		spinner.Stop()
	}
	stopBeat()

	var stopped string
	switch {
	case ctx.Err() != nil:
		stopped = "interrupted"
	case runCtx.Err() != nil:
		stopped = "timeout"
		logger.Warnf("Timeout reached after %v; try increasing --timeout", timeout)
	case runErr != nil:
		return fmt.Errorf("sample: %w", runErr)
	}
	prog.done(fmt.Sprintf("Sampled %d sequences", batch.Runs))

	best, ok := tracker.Best()
	if !ok {
		printWarning("No sequence sampled")
		return ctx.Err()
	}

	// Record the result even if the run was interrupted.
	saveCtx := context.WithoutCancel(ctx)
	rec := history.NewRecord()
	rec.Instance = inst.Name
	rec.InstanceHash = hash
	rec.Algorithm = cfg.Algorithm
	rec.Heuristics = cfg.Heuristics
	rec.Seed = cfg.Seed
	rec.Workers = cfg.Workers
	rec.Runs = batch.Runs
	rec.Cost = float64(best.Cost)
	rec.Solution = best.Solution
	rec.Elapsed = time.Since(prog.start)
	rec.Optimal = wt.IsMinCost(best.Cost)
	rec.Stopped = stopped

	saved, err := cache.SaveIfBetter(saveCtx, store, key, &cache.Best{
		Solution:  best.Solution,
		Cost:      float64(best.Cost),
		Algorithm: cfg.Algorithm,
		RunID:     rec.ID,
	}, 0)
	if err != nil {
		logger.Warnf("Cache write failed: %v", err)
	} else if saved {
		logger.Debug("Cached new best sequence")
	}
	recordRun(saveCtx, logger, opts.mongoURI, rec)

	fromCache := !batch.Found || batch.Best.Cost > best.Cost
	printSuccess("Best cost %s", StyleNumber.Render(strconv.Itoa(best.Cost)))
	printKeyValue("Instance", fmt.Sprintf("%s (%d jobs)", inst.Name, inst.Len()))
	printKeyValue("Algorithm", describeRun(cfg))
	printKeyValue("Sequence", formatSequence(best.Solution, 24))
	printKeyValue("Run", rec.ID)
	printRunStats(batch.Runs, rec.Elapsed, fromCache, rec.Optimal)

	if opts.output != "" {
		if err := writeSolution(opts.output, inst.Name, rec); err != nil {
			return fmt.Errorf("write output %s: %w", opts.output, err)
		}
		printFile(opts.output)
	}
	return ctx.Err()
}

// loadInstance reads input or, with random > 0, generates an instance.
func loadInstance(input string, random int, seed uint64) (*sched.Instance, error) {
	switch {
	case input != "" && random > 0:
		return nil, errors.New(errors.ErrCodeInvalidInput, "give an instance file or --random, not both")
	case input != "":
		return sched.LoadFile(input)
	case random > 0:
		if seed == 0 {
			seed = 1
		}
		return sched.Generate(random, seed, sched.DefaultGenerateOptions())
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "no instance: give an instance file or --random n")
}

// instanceHash hashes the instance content. The name is left out so that
// renamed copies share cache entries.
func instanceHash(inst *sched.Instance) (string, error) {
	anon := *inst
	anon.Name = ""
	data, err := anon.Bytes()
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// newHeuristic combines the configured heuristics. A single heuristic is
// wrapped too, so every algorithm sees the same heuristic type.
func newHeuristic(wt *sched.WeightedTardiness, cfg runConfig) (*ss.Hybrid[int], error) {
	members := make([]ss.HybridMember[int], 0, len(cfg.Heuristics))
	for _, name := range cfg.Heuristics {
		m, err := sched.Member(strings.ToLower(strings.TrimSpace(name)), wt, cfg.K)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	strategy, err := ss.ParseHybridStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	var seed uint64
	if cfg.Seed != 0 {
		// Keep member choice independent of the sampler's stream.
		seed = rng.New(cfg.Seed).Split().Uint64()
	}
	return ss.NewHybrid(members, ss.HybridConfig{Strategy: strategy, Weights: cfg.Weights, Seed: seed})
}

// batchFunc runs up to samples construction runs on workers goroutines.
type batchFunc func(ctx context.Context, workers, samples int) (ss.Batch[int], error)

func parallel[S ss.Splittable[int, S]](s S) batchFunc {
	return func(ctx context.Context, workers, samples int) (ss.Batch[int], error) {
		return ss.Parallel[int](ctx, s, workers, samples)
	}
}

// newBatch builds the configured sampler over h.
func newBatch(h *ss.Hybrid[int], cfg runConfig, opts ss.Options[int]) (batchFunc, error) {
	switch cfg.Algorithm {
	case ss.NameGreedy:
		s, err := ss.NewGreedy(h, opts)
		if err != nil {
			return nil, err
		}
		return parallel(s), nil
	case ss.NameVBSS:
		s, err := ss.NewVBSS(h, ss.VBSSConfig{Exponent: cfg.Exponent}, opts)
		if err != nil {
			return nil, err
		}
		return parallel(s), nil
	case ss.NameHBSS:
		bias, err := cfg.rankBias()
		if err != nil {
			return nil, err
		}
		s, err := ss.NewHBSS(h, ss.HBSSConfig{Bias: bias}, opts)
		if err != nil {
			return nil, err
		}
		return parallel(s), nil
	case ss.NameAcceptanceBand:
		s, err := ss.NewAcceptanceBand(h, cfg.Beta, opts)
		if err != nil {
			return nil, err
		}
		return parallel(s), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidAlgorithm, "unknown algorithm %q", cfg.Algorithm)
}

// seedFromCache starts the tracker from the cached best sequence, if any.
// Cache failures are logged and otherwise ignored.
func seedFromCache(ctx context.Context, logger *log.Logger, store cache.Cache, key string,
	wt *sched.WeightedTardiness, tracker *search.ProgressTracker[int], progressLog *searchLogger) {
	cached, ok, err := cache.LoadBest(ctx, store, key)
	if err != nil {
		logger.Warnf("Cache lookup failed: %v", err)
		return
	}
	if !ok {
		return
	}
	if err := cached.Validate(wt.Len()); err != nil {
		logger.Warnf("Ignoring cached sequence: %v", err)
		return
	}
	// Recompute rather than trust the stored cost.
	cost := wt.Cost(cached.Solution)
	tracker.Update(cost, cached.Solution, wt.IsMinCost(cost))
	progressLog.seeded(cost)
}

// recordRun stores rec in the run history. Failures are logged.
func recordRun(ctx context.Context, logger *log.Logger, mongoURI string, rec *history.Record) {
	store, err := newHistory(ctx, mongoURI)
	if err != nil {
		logger.Warnf("Run history unavailable: %v", err)
		return
	}
	defer store.Close()
	if err := store.Put(ctx, rec); err != nil {
		logger.Warnf("Run history write failed: %v", err)
	}
}

// serveMetrics registers Prometheus hooks and serves them on addr. The
// returned function stops the server and restores the no-op hooks.
func serveMetrics(ctx context.Context, logger *log.Logger, addr string) (func(), error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	hooks := prom.NewHooks(reg)

	srv, err := prom.Listen(addr, reg)
	if err != nil {
		return nil, err
	}
	observability.SetSamplerHooks(hooks)
	observability.SetCacheHooks(hooks)

	srvCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(srvCtx); err != nil {
			logger.Warnf("Metrics server: %v", err)
		}
	}()
	logger.Infof("Serving metrics on http://%s/metrics", srv.Addr())

	return func() {
		cancel()
		<-done
		observability.Reset()
	}, nil
}

// describeRun summarizes the algorithm and heuristics of cfg.
func describeRun(cfg runConfig) string {
	var algo string
	switch cfg.Algorithm {
	case ss.NameVBSS:
		algo = fmt.Sprintf("vbss (exponent %g)", cfg.Exponent)
	case ss.NameHBSS:
		algo = fmt.Sprintf("hbss (%s bias)", cfg.Bias)
	case ss.NameAcceptanceBand:
		algo = fmt.Sprintf("band (beta %g)", cfg.Beta)
	default:
		algo = cfg.Algorithm
	}
	heuristics := strings.Join(cfg.Heuristics, ", ")
	if len(cfg.Heuristics) > 1 {
		heuristics = fmt.Sprintf("%s hybrid of %s", cfg.Strategy, heuristics)
	}
	return algo + " · " + heuristics
}

// formatSequence renders up to limit jobs of seq.
func formatSequence(seq []int, limit int) string {
	n := min(len(seq), limit)
	parts := make([]string, n)
	for i := range n {
		parts[i] = strconv.Itoa(seq[i])
	}
	s := strings.Join(parts, " ")
	if len(seq) > n {
		s += fmt.Sprintf(" … (+%d)", len(seq)-n)
	}
	return s
}

// solutionFile is the TOML written by --output.
type solutionFile struct {
	Instance  string  `toml:"instance"`
	Objective string  `toml:"objective"`
	Cost      float64 `toml:"cost"`
	Optimal   bool    `toml:"optimal"`
	Run       string  `toml:"run"`
	Sequence  []int   `toml:"sequence"`
}

func writeSolution(path, instance string, rec *history.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = toml.NewEncoder(f).Encode(solutionFile{
		Instance:  instance,
		Objective: sched.Objective,
		Cost:      rec.Cost,
		Optimal:   rec.Optimal,
		Run:       rec.ID,
		Sequence:  rec.Solution,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
