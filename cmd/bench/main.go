package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/i5heu/GoNativeCollections/internal/native"
	"github.com/i5heu/GoNativeCollections/internal/testbench"
	"github.com/i5heu/GoNativeCollections/pkg/config"
)

// BenchmarkResult holds results for one test run.
type BenchmarkResult struct {
	Implementation string  `json:"implementation"`
	Workload       string  `json:"workload"`
	Capacity       int     `json:"capacity"`
	Ops            int64   `json:"ops"`
	Cycles         int64   `json:"cycles"`
	TestDuration   string  `json:"test_duration"`  // e.g. "2s"
	ActualElapsed  string  `json:"actual_elapsed"` // measured time
	Throughput     float64 `json:"throughput_ops_sec"`
	Mallocs        uint64  `json:"mallocs"`
	TotalAlloc     uint64  `json:"total_alloc_bytes"`
	NumGC          uint32  `json:"num_gc"`
	Timestamp      int64   `json:"timestamp"`
	GoVersion      string  `json:"go_version"`
}

// SystemInfo holds system information.
type SystemInfo struct {
	NumCPU      int     `json:"num_cpu"`
	CPUModel    string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH      string  `json:"go_arch"`
	TotalMemory uint64  `json:"total_memory_bytes,omitempty"`
}

// FullReport represents a complete test session.
type FullReport struct {
	SessionTime string            `json:"session_time"`
	SystemInfo  SystemInfo        `json:"system_info"`
	Config      config.Config     `json:"config"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

var (
	profilePath  string
	jsonExport   bool
	jsonFile     string
	showProgress bool
	verbose      bool

	rootCmd = &cobra.Command{
		Use:   "bench",
		Short: "benchmark native fixed-capacity containers against Go-heap baselines",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "run every implementation through the configured workloads",
		RunE:  runBench,
	}

	tableCmd = &cobra.Command{
		Use:   "table",
		Short: "print a markdown summary of the last session in the JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return outputMarkdownTable(os.Stdout, jsonFile)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&jsonFile, "jsonfile", "test-results.json", "Path to the JSON results file")

	runCmd.Flags().StringVar(&profilePath, "config", "", "YAML bench profile; built-in defaults when empty")
	runCmd.Flags().BoolVar(&jsonExport, "json", false, "Append results to the JSON results file")
	runCmd.Flags().BoolVar(&showProgress, "progress", false, "Display a progress bar with ETA")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every run and native allocation")

	rootCmd.AddCommand(runCmd, tableCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return cfg.Build()
}

func runBench(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	if verbose {
		native.SetLogger(logger.Named("native"))
	}

	cfg, err := config.Load(profilePath)
	if err != nil {
		return err
	}

	impls := getImplementations()
	totalTests := len(cfg.Workloads) * cfg.Iterations * len(impls)

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.NewOptions(totalTests,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("benchmarking"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionClearOnFinish(),
		)
	}

	logger.Info("bench session starting",
		zap.Int("capacity", cfg.Capacity),
		zap.Int("iterations", cfg.Iterations),
		zap.Duration("duration", cfg.Duration),
		zap.Int("runs", totalTests))

	var results []BenchmarkResult
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for _, workload := range cfg.Workloads {
		for iteration := 1; iteration <= cfg.Iterations; iteration++ {
			for _, impl := range impls {
				result, err := runOne(ctx, impl, workload, cfg)
				if err != nil {
					return fmt.Errorf("%s/%s iteration %d: %w", impl.name, workload, iteration, err)
				}
				results = append(results, result)

				logger.Info("run finished",
					zap.String("impl", impl.name),
					zap.String("workload", string(workload)),
					zap.Int("iteration", iteration),
					zap.Float64("ops_per_sec", result.Throughput),
					zap.Uint64("mallocs", result.Mallocs),
					zap.Uint32("gc", result.NumGC))

				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	report := FullReport{
		SessionTime: time.Now().Format(time.RFC3339),
		SystemInfo:  gatherSystemInfo(),
		Config:      cfg,
		Benchmarks:  results,
	}

	if jsonExport {
		if err := appendReport(jsonFile, report); err != nil {
			return err
		}
		logger.Info("wrote results", zap.String("file", jsonFile))
	}
	return nil
}

func runOne(ctx context.Context, impl Implementation, workload testbench.Workload, cfg config.Config) (BenchmarkResult, error) {
	runtime.GC()
	c, release, err := impl.newCycler(cfg.Capacity)
	if err != nil {
		return BenchmarkResult{}, err
	}
	defer func() { _ = release() }()

	res, err := testbench.RunTimedWorkload(ctx, c, workload, cfg.Duration, func(i int) int64 {
		return int64(i)
	})
	if err != nil {
		return BenchmarkResult{}, err
	}
	if err := release(); err != nil {
		return BenchmarkResult{}, fmt.Errorf("release: %w", err)
	}

	return BenchmarkResult{
		Implementation: impl.name,
		Workload:       string(workload),
		Capacity:       cfg.Capacity,
		Ops:            res.Ops,
		Cycles:         res.Cycles,
		TestDuration:   cfg.Duration.String(),
		ActualElapsed:  res.Elapsed.String(),
		Throughput:     res.Throughput(),
		Mallocs:        res.Mallocs,
		TotalAlloc:     res.TotalAlloc,
		NumGC:          res.NumGC,
		Timestamp:      time.Now().Unix(),
		GoVersion:      runtime.Version(),
	}, nil
}

// appendReport appends the session to the JSON file, creating it if needed.
func appendReport(filename string, report FullReport) error {
	var previous []FullReport
	if data, err := os.ReadFile(filename); err == nil && len(data) > 0 {
		if err := json.Unmarshal(data, &previous); err != nil {
			return fmt.Errorf("parse existing %s: %w", filename, err)
		}
	}
	updated := append(previous, report)
	data, err := json.MarshalIndent(updated, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}
