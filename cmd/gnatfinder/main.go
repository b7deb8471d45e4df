package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gnatfinder/gnatfinder/pkg/core"
	"github.com/gnatfinder/gnatfinder/pkg/emit"
	"github.com/gnatfinder/gnatfinder/pkg/ingest"
	"github.com/gnatfinder/gnatfinder/pkg/pipeline"
)

func main() {
	var cliOverrides core.CLIOverrides

	rootCmd := &cobra.Command{
		Use:   "gnatfinder <n_cells> <spike_file> <network_file> <tau> <thresh> <c_radius>",
		Short: "gnatfinder - second-order causal activity graphs of spiking neural networks",
		Long:  "Computes the second-order causal activity graph (GNAT graph) of a spiking neural network from a spike train and its synaptic connectivity.",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Flags(), &cliOverrides, args)
		},
		SilenceUsage: true,
	}

	f := rootCmd.Flags()
	cliOverrides.ConfigPath = f.StringP("config", "f", "", "Path to YAML config file (overrides GNATFINDER_CONFIG env)")
	cliOverrides.OutPath = f.String("out", "", "Edge output file path")
	cliOverrides.Workers = f.Int("workers", 0, "Phase-2 worker pool size (1 = sequential, 0 = physical core count)")
	cliOverrides.BufferSize = f.Int("buffer-size", 0, "Edge emitter pending-edge buffer capacity")
	cliOverrides.ProgressEvery = f.Int("progress-every", 0, "Log progress every N postsynaptic neurons")
	cliOverrides.LogLevel = f.String("log-level", "", "Log level: debug|info|warn|error")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// run implements the pipeline run after CLI flags and positional arguments
// are parsed.
func run(flags *pflag.FlagSet, cliOverrides *core.CLIOverrides, args []string) error {
	core.PrintBanner()

	runID := uuid.NewString()

	positional, err := parsePositionalArgs(args)
	if err != nil {
		return err
	}

	configPath := ""
	if cliOverrides.ConfigPath != nil && *cliOverrides.ConfigPath != "" {
		configPath = *cliOverrides.ConfigPath
	} else {
		configPath = os.Getenv("GNATFINDER_CONFIG")
	}

	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	applyExplicitFlags(flags, cfg, cliOverrides)

	if cfg.Pipeline.Workers == 0 {
		cfg.Pipeline.Workers = defaultWorkerCount()
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := core.NewLogger(cfg.Log.Level, runID)
	log.Infof("run %s starting: n_cells=%d tau=%v thresh=%v c_radius=%v", runID, positional.nCells, positional.tau, positional.thresh, positional.cRadius)
	log.Infof("config: workers=%d buffer_size=%d progress_every=%d out=%s", cfg.Pipeline.Workers, cfg.Pipeline.BufferSize, cfg.Pipeline.ProgressEvery, cfg.Output.Path)

	raster, err := ingest.LoadSpikes(positional.spikeFile, positional.nCells)
	if err != nil {
		return fmt.Errorf("loading spike file: %w", err)
	}
	log.Infof("loaded %d spikes across %d neurons", raster.NSpikes(), positional.nCells)

	net, err := ingest.LoadNetwork(positional.networkFile, uint64(positional.nCells))
	if err != nil {
		return fmt.Errorf("loading network file: %w", err)
	}

	trees, dropped, err := pipeline.Build(raster, log)
	if err != nil {
		return fmt.Errorf("building quadtrees: %w", err)
	}
	if dropped > 0 {
		log.Warnf("dropped %d spike-pair points outside their neuron's root boundary", dropped)
	}

	sink, err := emit.Open(cfg.Output.Path, cfg.Pipeline.BufferSize)
	if err != nil {
		return fmt.Errorf("opening output sink: %w", err)
	}
	defer sink.Close()

	var writer emit.Writer = sink
	if cfg.Pipeline.Workers > 1 {
		writer = emit.NewConcurrentSink(sink)
	}

	params := pipeline.Params{
		Tau:           positional.tau,
		Thresh:        positional.thresh,
		CRadius:       positional.cRadius,
		Workers:       cfg.Pipeline.Workers,
		BufferSize:    cfg.Pipeline.BufferSize,
		ProgressEvery: cfg.Pipeline.ProgressEvery,
	}

	stats, err := pipeline.Run(context.Background(), raster, net, trees, writer, params, log)
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	if err := sink.Close(); err != nil {
		return fmt.Errorf("closing output sink: %w", err)
	}

	log.Infof("done: %d neurons processed, %d edges emitted, %d points dropped", stats.NeuronsProcessed, stats.EdgesEmitted, dropped)
	return nil
}

// defaultWorkerCount sizes the Phase-2 worker pool from physical core
// count when the resolved worker count is 0. klauspost/cpuid reports
// the topology without shelling out to runtime.NumCPU's logical-core
// count, which overcounts on hyperthreaded machines for this CPU-bound,
// allocation-light workload.
func defaultWorkerCount() int {
	if n := cpuid.CPU.PhysicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// applyExplicitFlags applies only the CLI flags that were explicitly set
// by the user on the command line. Unset flags are ignored so they do not
// override values resolved from YAML or environment variables.
func applyExplicitFlags(flags *pflag.FlagSet, cfg *core.Config, o *core.CLIOverrides) {
	overrides := core.CLIOverrides{}

	if flags.Changed("out") {
		overrides.OutPath = o.OutPath
	}
	if flags.Changed("workers") {
		overrides.Workers = o.Workers
	}
	if flags.Changed("buffer-size") {
		overrides.BufferSize = o.BufferSize
	}
	if flags.Changed("progress-every") {
		overrides.ProgressEvery = o.ProgressEvery
	}
	if flags.Changed("log-level") {
		overrides.LogLevel = o.LogLevel
	}

	cfg.ApplyCLIOverrides(&overrides)
}
