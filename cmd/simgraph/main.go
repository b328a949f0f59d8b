package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dd0wney/cluso-simgraph/pkg/algorithms"
	"github.com/dd0wney/cluso-simgraph/pkg/analysis"
	"github.com/dd0wney/cluso-simgraph/pkg/builder"
	"github.com/dd0wney/cluso-simgraph/pkg/config"
	"github.com/dd0wney/cluso-simgraph/pkg/graph"
	"github.com/dd0wney/cluso-simgraph/pkg/logging"
	"github.com/dd0wney/cluso-simgraph/pkg/metrics"
	"github.com/dd0wney/cluso-simgraph/pkg/record"
	"github.com/dd0wney/cluso-simgraph/pkg/sampling"
	"github.com/dd0wney/cluso-simgraph/pkg/similarity"
)

// cliFlags holds the command line. Overrides apply only when the flag was
// given, so any seed, including 0, can be chosen.
type cliFlags struct {
	configPath  string
	population  int
	seed        uint64
	workers     int
	metricsAddr string
	set         map[string]bool
}

func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("simgraph", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "YAML configuration file (defaults apply when empty)")
	fs.IntVar(&f.population, "n", 500, "Number of synthetic students to generate")
	fs.Uint64Var(&f.seed, "seed", 0, "Override the configured sampling seed")
	fs.IntVar(&f.workers, "workers", 0, "Override the configured builder worker count")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address and wait for a signal after the run")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply copies explicitly given flags onto cfg.
func (f *cliFlags) apply(cfg *config.Config) {
	if f.set["seed"] {
		cfg.Sampling.Seed = f.seed
	}
	if f.set["workers"] {
		cfg.Workers = f.workers
	}
}

func main() {
	flags, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simgraph: %v\n", err)
		os.Exit(1)
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "simgraph: %v\n", err)
		os.Exit(1)
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = logging.ParseLevel(env)
	}
	logger := logging.NewZapLogger(os.Stdout, level)
	logging.SetDefaultLogger(logger)
	defer logger.Sync()

	reg := metrics.NewRegistry()

	var srv *http.Server
	if flags.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", reg.Handler())
		srv = &http.Server{
			Addr:              flags.metricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening", logging.String("addr", flags.metricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", logging.Error(err))
			}
		}()
	}

	if err := run(cfg, flags.population, logger, reg); err != nil {
		logger.Error("run failed", logging.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	if srv != nil {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("metrics server shutdown", logging.Error(err))
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return config.Load(f)
}

func run(cfg *config.Config, n int, logger logging.Logger, reg *metrics.Registry) error {
	schema := record.StudentSchema()

	scorer, err := similarity.FromConfig(schema, cfg.Similarity)
	if err != nil {
		return err
	}
	filter, err := algorithms.ClusterKeys(schema, cfg.Clusters.Attributes...)
	if err != nil {
		return fmt.Errorf("cluster attributes: %w", err)
	}

	rng := sampling.NewRand(cfg.Sampling.Seed)
	students := record.RandomStudents(n, rng)
	train, test, err := sampling.Split(students, cfg.Sampling.TrainFraction, rng)
	if err != nil {
		return err
	}
	logger.Info("population sampled",
		logging.Int("population", len(students)),
		logging.Int("train", len(train)),
		logging.Int("test", len(test)),
		logging.Uint64("seed", cfg.Sampling.Seed),
	)

	buildOpts := builder.Options{Workers: cfg.Workers, Logger: logger, Metrics: reg}
	analysisOpts := analysis.Options{
		TopN:     cfg.TopN,
		Clusters: algorithms.ClusterOptions{MinWeight: cfg.Clusters.MinWeight, Attributes: filter},
		Validate: true,
		Workers:  cfg.Workers,
		Logger:   logger,
		Metrics:  reg,
	}

	var trainGraph *graph.Graph
	var trainReport *analysis.Report
	for _, part := range []struct {
		name    string
		records []record.Record
	}{
		{"train", train},
		{"test", test},
	} {
		partLogger := logger.With(logging.String("partition", part.name))
		buildOpts.Logger = partLogger
		analysisOpts.Logger = partLogger

		g, err := builder.Build(builder.AssignIDs(part.records), scorer, buildOpts)
		if err != nil {
			return fmt.Errorf("%s graph: %w", part.name, err)
		}
		report, err := analysis.Run(g, analysisOpts)
		if err != nil {
			return fmt.Errorf("%s analysis: %w", part.name, err)
		}
		logReport(partLogger, report)

		if trainGraph == nil {
			trainGraph, trainReport = g, report
		}
	}

	if !cfg.Sensitivity.Enabled {
		return nil
	}

	overrides, err := analysis.NeutralOverrides(schema, record.StudentNeutrals(), cfg.Sensitivity.Attributes...)
	if err != nil {
		return fmt.Errorf("sensitivity: %w", err)
	}
	analysisOpts.Logger = logger.With(logging.String("partition", "train"))
	impacts, err := analysis.Sensitivity(trainReport, trainGraph, scorer, overrides, analysisOpts)
	if err != nil {
		return err
	}
	for rank, impact := range analysis.Ranked(impacts) {
		logger.Info("attribute impact",
			logging.Int("rank", rank+1),
			logging.String("attribute", impact.Attribute),
			logging.Float64("mean_degree_delta", impact.MeanDegreeDelta),
			logging.Int("cluster_delta", impact.ClusterDelta),
			logging.Float64("mean_closeness_delta", impact.MeanClosenessDelta),
		)
	}
	return nil
}

func logReport(logger logging.Logger, report *analysis.Report) {
	for rank, n := range report.TopDegree {
		logger.Info("top degree",
			logging.Int("rank", rank+1),
			logging.NodeID(uint64(n.NodeID)),
			logging.Float64("degree", n.Score),
		)
	}
	for rank, n := range report.TopCloseness {
		logger.Info("top closeness",
			logging.Int("rank", rank+1),
			logging.NodeID(uint64(n.NodeID)),
			logging.Float64("closeness", n.Score),
		)
	}
	if report.HasDeviation {
		dev := report.ClosenessDeviation
		logger.Info("closeness outlier",
			logging.NodeID(uint64(dev.ID)),
			logging.Float64("closeness", dev.Value),
			logging.Float64("mean", dev.Mean),
			logging.Float64("percent_from_mean", dev.Percent),
		)
	}

	largest := 0
	if c := report.Clusters.Largest(); c != nil {
		largest = c.Size
	}
	logger.Info("clusters",
		logging.Int("count", len(report.Clusters.Clusters)),
		logging.Int("largest", largest),
		logging.Int("singletons", report.Clusters.Singletons()),
		logging.Float64("mean_size", report.ClusterSizes.Mean),
	)
}
