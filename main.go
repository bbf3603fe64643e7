// flamefilter: trim folded-stack profiles before rendering an inverted
// (callee-rooted) flame graph.
//
// Stacks are grouped by their leaf frame. Groups whose share of the total
// sample count is at or below a cutoff percentage are dropped; the rest can
// be restricted to leaf frames matching regular expressions and truncated to
// a bounded number of frames counted from the leaf. Output stays in
// folded-stack text format so it pipes straight into flamegraph.pl.
//
// Input auto-detection:
//
//	.jfr / .jfr.gz       →  async-profiler JFR recording (--event selects cpu/wall/alloc/lock)
//	.pb / .pb.gz / .pprof →  pprof protobuf profile
//	everything else       →  folded-stack text (".gz" is gunzipped; "-" reads stdin)
package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

// ---------------------------------------------------------------------------
// CLI
// ---------------------------------------------------------------------------

var examples = []string{
	"  Drop leaf groups below 1% of samples:   $ flamefilter --cutoff-percentage 1 -o out.folded stacks.folded",
	"  Keep only allocation leaves:            $ flamefilter --show 'malloc|calloc|realloc' -o out.folded stacks.folded",
	"  At most 5 frames above each leaf:       $ flamefilter --stack-limit 5 -o out.folded stacks.folded",
	"  Majority groups only, via expression:   $ flamefilter --select 'share > 50.0' -o - stacks.folded",
	"  Filter a JFR wall-clock recording:      $ flamefilter --event wall -o out.folded profile.jfr",
	"  Render the result:                      $ flamefilter -o - stacks.folded | flamegraph.pl --inverted > flame.svg",
}

var rootCmd = &cobra.Command{
	Use:           "flamefilter [flags] <input-file>",
	Short:         "Filter folded stacks by leaf frame for inverted flame graphs",
	Example:       strings.Join(examples, "\n"),
	Args:          cobra.ExactArgs(1),
	PreRunE:       validateFlags,
	RunE:          func(cmd *cobra.Command, args []string) error { return run(args[0]) },
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagCutoff     float64
	flagStackLimit int
	flagShow       []string
	flagSelect     string
	flagEvent      string
	flagOutput     string
)

// compiled once during flag validation
var (
	showPatterns  []*regexp.Regexp
	groupSelector *selector
)

func init() {
	rootCmd.Flags().Float64Var(&flagCutoff, "cutoff-percentage", 0.5, "drop leaf groups at or below this share of total samples, in percent")
	rootCmd.Flags().IntVar(&flagStackLimit, "stack-limit", 0, "keep at most this many frames counted from the leaf (0 = unlimited)")
	rootCmd.Flags().StringArrayVar(&flagShow, "show", nil, "regular expression a leaf frame must fully match to be shown; repeatable")
	rootCmd.Flags().StringVar(&flagSelect, "select", "", "Starlark expression over leaf, count and share deciding whether a group is kept")
	rootCmd.Flags().StringVar(&flagEvent, "event", "cpu", "event type for JFR inputs: cpu, wall, alloc, lock")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file, - for stdout")
	_ = rootCmd.MarkFlagRequired("output")
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if flagCutoff < 0 || flagCutoff >= 100 {
		return fmt.Errorf("cutoff-percentage must be in [0, 100), got %v", flagCutoff)
	}
	if flagStackLimit < 0 {
		return fmt.Errorf("stack-limit must be 0 or greater, got %d", flagStackLimit)
	}
	switch flagEvent {
	case "cpu", "wall", "alloc", "lock":
	default:
		return fmt.Errorf("unknown event type %q (valid: cpu, wall, alloc, lock)", flagEvent)
	}
	var err error
	showPatterns, err = compileShowPatterns(flagShow)
	if err != nil {
		return err
	}
	if flagSelect != "" {
		groupSelector, err = newSelector(flagSelect)
		if err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Pipeline
// ---------------------------------------------------------------------------

func run(inputPath string) error {
	lines, err := readInput(inputPath, flagEvent)
	if err != nil {
		return err
	}
	groups, err := aggregate(lines)
	if err != nil {
		return err
	}
	kept, err := filterGroups(groups, flagCutoff, showPatterns, groupSelector)
	if err != nil {
		return err
	}
	truncateStacks(kept, flagStackLimit)
	return writeOutput(flagOutput, kept)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
