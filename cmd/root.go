package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/isaacglide/lighthouse/harnet"
	"github.com/isaacglide/lighthouse/trace"
	"github.com/isaacglide/lighthouse/tti"
)

var (
	verbose    bool
	harFile    string
	jsonOutput bool
	fmpMillis  float64
	dclMillis  float64
	Logger     *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "lighthouse <trace-file>",
		Short: "Compute the Consistently Interactive metric for one page load",
		Long: `Lighthouse computes the Consistently Interactive (time to interactive)
metric for a single page load: the earliest moment after first meaningful
paint at which the page sustains five seconds that are quiet on both the
main thread and the network. Main-thread activity is read from a Chrome
trace file; network activity is read from a HAR recording of the same load.`,
		Args: cobra.ExactArgs(1),
		Example: `  lighthouse trace.json
  lighthouse trace.json --har recording.har
  lighthouse trace.json --fmp 1800 --dcl 1500 --json`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger()
		},
		RunE: runMetric,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().StringVar(&harFile, "har", "", "HAR recording supplying the network timeline")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON instead of a report")
	rootCmd.Flags().Float64Var(&fmpMillis, "fmp", 0, "Override first meaningful paint (ms after navigation start)")
	rootCmd.Flags().Float64Var(&dclMillis, "dcl", 0, "Override DOM content loaded (ms after navigation start)")

	// will be reconfigured in PersistentPreRun based on flags
	setupLogger()
}

func runMetric(cmd *cobra.Command, args []string) error {
	input, err := assembleInput(args[0])
	if err != nil {
		return err
	}

	metric, info, err := tti.Compute(*input)
	if err != nil {
		var terr *tti.Error
		if errors.As(err, &terr) {
			Logger.Debug("metric unavailable", "kind", terr.Kind.String())
		}
		return fmt.Errorf("consistently interactive: %w", err)
	}

	if jsonOutput {
		return writeJSON(cmd, metric, info)
	}

	fmt.Fprint(cmd.OutOrStdout(), RenderReport(metric, info))
	return nil
}

// assembleInput gathers the metric's input snapshot from the trace
// file, the optional HAR recording, and any flag overrides.
func assembleInput(tracePath string) (*tti.Input, error) {
	tr, err := trace.Load(tracePath)
	if err != nil {
		return nil, err
	}

	timestamps, err := tr.Timestamps()
	if err != nil {
		return nil, fmt.Errorf("invalid trace: %w", err)
	}

	longTasks, err := tr.LongTasks()
	if err != nil {
		return nil, fmt.Errorf("invalid trace: %w", err)
	}
	Logger.Debug("trace loaded", "events", len(tr.Events), "longTasks", len(longTasks))

	var requests []tti.Request
	if harFile != "" {
		har, err := harnet.Load(harFile)
		if err != nil {
			return nil, err
		}

		origin, err := harnet.Origin(har)
		if err != nil {
			return nil, fmt.Errorf("invalid HAR: %w", err)
		}
		requests = harnet.Requests(har, origin)
		Logger.Debug("HAR loaded", "requests", len(requests))

		// a HAR page timing can stand in when the trace lost the event
		if timestamps.DOMContentLoaded == 0 {
			if dcl, ok := harnet.DOMContentLoaded(har); ok {
				timestamps.DOMContentLoaded = timestamps.NavigationStart + dcl*1000
			}
		}
	}

	if fmpMillis > 0 {
		timestamps.FirstMeaningfulPaint = timestamps.NavigationStart + fmpMillis*1000
	}
	if dclMillis > 0 {
		timestamps.DOMContentLoaded = timestamps.NavigationStart + dclMillis*1000
	}

	return &tti.Input{
		Timestamps: timestamps,
		LongTasks:  longTasks,
		Requests:   requests,
	}, nil
}

type jsonResult struct {
	Timing              float64          `json:"timing"`
	Timestamp           float64          `json:"timestamp"`
	CPUQuietPeriod      tti.TimePeriod   `json:"cpuQuietPeriod"`
	NetworkQuietPeriod  tti.TimePeriod   `json:"networkQuietPeriod"`
	CPUQuietPeriods     []tti.TimePeriod `json:"cpuQuietPeriods"`
	NetworkQuietPeriods []tti.TimePeriod `json:"networkQuietPeriods"`
}

func writeJSON(cmd *cobra.Command, metric tti.Metric, info *tti.QuietPeriodInfo) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(jsonResult{
		Timing:              metric.Timing,
		Timestamp:           metric.Timestamp,
		CPUQuietPeriod:      info.CPUQuietPeriod,
		NetworkQuietPeriod:  info.NetworkQuietPeriod,
		CPUQuietPeriods:     info.CPUQuietPeriods,
		NetworkQuietPeriods: info.NetworkQuietPeriods,
	})
}

// setupLogger configures the global slog logger based on the verbose flag
func setupLogger() {
	var opts *slog.HandlerOptions

	if verbose {
		opts = &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}
	} else {
		opts = &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}
