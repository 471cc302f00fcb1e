package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/fetchkit/packages/bench"
	"github.com/abdul-hamid-achik/fetchkit/packages/fetch"
)

var benchCmd = &cobra.Command{
	Use:   "bench <url>",
	Short: "Measure request latency against a URL",
	Long: `Issue repeated requests against one URL and report latency percentiles.

Examples:
  fetchkit bench https://api.example.com/health -d 10s -r 100
  fetchkit bench https://api.example.com/users -d 30s -c 20`,
	Args: cobra.ExactArgs(1),
	RunE: benchCommand,
}

var (
	benchClientFlags clientFlags
	benchDuration    time.Duration
	benchRate        float64
	benchConcurrency int
	benchMethod      string
	benchHeaders     []string
)

func init() {
	benchCmd.Flags().DurationVarP(&benchDuration, "duration", "d", 10*time.Second, "how long to run")
	benchCmd.Flags().Float64VarP(&benchRate, "rate", "r", 0, "requests per second (0 = unlimited)")
	benchCmd.Flags().IntVarP(&benchConcurrency, "concurrency", "c", 10, "max in-flight requests")
	benchCmd.Flags().StringVarP(&benchMethod, "method", "X", "", "HTTP method (default GET)")
	benchCmd.Flags().StringArrayVarP(&benchHeaders, "header", "H", nil, `header line "Name: value" (repeatable)`)
	addClientFlags(benchCmd, &benchClientFlags)
}

func benchCommand(cmd *cobra.Command, args []string) error {
	headers, err := parseHeaders(benchHeaders)
	if err != nil {
		return err
	}

	client, cleanup, err := benchClientFlags.build()
	if err != nil {
		return err
	}
	defer cleanup()

	runner := bench.NewRunner(client, &bench.Config{
		URL:         args[0],
		Options:     &fetch.RequestOptions{Method: benchMethod, Headers: headers},
		Duration:    benchDuration,
		Rate:        benchRate,
		Concurrency: benchConcurrency,
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Benchmarking %s for %s...\n\n", args[0], benchDuration)

	report, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", bold("Summary"))
	fmt.Fprintf(cmd.OutOrStdout(), "  Requests: %d (%.1f/s)\n", report.Total, report.RPS)
	fmt.Fprintf(cmd.OutOrStdout(), "  Success:  %d\n", report.Success)
	if report.Errors > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "  Errors:   %s\n", red(fmt.Sprintf("%d", report.Errors)))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "  Errors:   0\n")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", bold("Latency"))
	fmt.Fprintf(cmd.OutOrStdout(), "  p50: %v\n", report.P50)
	fmt.Fprintf(cmd.OutOrStdout(), "  p90: %v\n", report.P90)
	fmt.Fprintf(cmd.OutOrStdout(), "  p95: %v\n", report.P95)
	fmt.Fprintf(cmd.OutOrStdout(), "  p99: %v\n", report.P99)
	fmt.Fprintf(cmd.OutOrStdout(), "  max: %v\n", report.Max)

	return nil
}
