package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/cribbage/internal/config"
	"github.com/lox/cribbage/internal/randutil"
	"github.com/lox/cribbage/internal/stats"
)

const histogramWidth = 40

type StatsCmd struct {
	Hands      int    `help:"Random hands to sample"`
	Workers    int    `help:"Worker goroutines, 0 for one per CPU up to 8"`
	Seed       int64  `help:"Sampling seed, 0 for random"`
	HandSize   int    `help:"Cards per hand (1-13)"`
	Exhaustive bool   `help:"Score every possible hand instead of sampling"`
	Output     string `short:"o" help:"Write a JSON report to this file" type:"path"`
}

func (c *StatsCmd) apply(cfg *config.Config) error {
	if c.Hands != 0 {
		cfg.Stats.Hands = c.Hands
	}
	if c.Workers != 0 {
		cfg.Stats.Workers = c.Workers
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.HandSize != 0 {
		cfg.Game.HandSize = c.HandSize
	}
	return cfg.Validate()
}

func (c *StatsCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	if err := c.apply(cfg); err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sampler := stats.NewSampler(logger, quartz.NewReal())
	report, err := sampler.Run(ctx, stats.Options{
		Hands:      cfg.Stats.Hands,
		HandSize:   cfg.Game.HandSize,
		Workers:    cfg.Stats.Workers,
		Seed:       randutil.Resolve(cfg.Game.Seed, time.Now()),
		Exhaustive: c.Exhaustive,
	})
	if err != nil {
		return err
	}

	printReport(os.Stdout, report)

	if c.Output != "" {
		if err := stats.WriteReport(c.Output, report); err != nil {
			return err
		}
		fmt.Printf("\nReport written to %s\n", c.Output)
	}
	return nil
}

func printReport(out io.Writer, report *stats.Report) {
	d := report.Distribution
	lo, hi := d.ConfidenceInterval95()

	fmt.Fprintf(out, "%d-card hands (%s, %d workers, %s)\n\n",
		report.HandSize, report.Mode, report.Workers, report.Elapsed.Round(time.Millisecond))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Hands:\t%d\n", d.Hands)
	fmt.Fprintf(w, "Mean:\t%.3f ± %.3f (95%% CI %.3f to %.3f)\n", d.Mean(), d.StdError()*1.96, lo, hi)
	fmt.Fprintf(w, "Std dev:\t%.3f\n", d.StdDev())
	fmt.Fprintf(w, "Median:\t%d\n", d.Median())
	fmt.Fprintf(w, "90th percentile:\t%d\n", d.Percentile(0.9))
	fmt.Fprintf(w, "Max:\t%d (%s)\n", d.Max, d.MaxHand)
	fmt.Fprintf(w, "Zero hands:\t%d (%.1f%%)\n", d.Zero, percent(d.Zero, d.Hands))
	w.Flush()

	fmt.Fprintln(out, "\nTotals:")
	peak := 0
	for _, n := range d.Histogram {
		peak = max(peak, n)
	}
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, score := range d.Scores() {
		n := d.Histogram[score]
		fmt.Fprintf(w, "%d\t%d\t%.2f%%\t %s\n", score, n, percent(n, d.Hands), bar(n, peak))
	}
	w.Flush()

	fmt.Fprintln(out, "\nCombos:")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, text := range comboOrder(d.Combos) {
		fmt.Fprintf(w, "%s\t%d\n", text, d.Combos[text])
	}
	w.Flush()
}

// comboOrder sorts combo names by count, most common first
func comboOrder(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return names
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}

func bar(n, peak int) string {
	if peak == 0 || n == 0 {
		return ""
	}
	return strings.Repeat("#", max(1, n*histogramWidth/peak))
}
