// Package stats measures how cribbage hand totals are distributed, either
// by sampling random deals or by enumerating every possible hand.
package stats

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/combin"

	"github.com/lox/cribbage/cards"
	"github.com/lox/cribbage/internal/fileutil"
	"github.com/lox/cribbage/internal/randutil"
	"github.com/lox/cribbage/internal/seq"
	"github.com/lox/cribbage/scoring"
)

// Report modes
const (
	ModeSample     = "sample"
	ModeExhaustive = "exhaustive"
)

const (
	maxWorkers    = 8
	checkInterval = 1024
	batchSize     = 4096
	maxExhaustive = 10_000_000
)

// Options controls a stats run
type Options struct {
	Hands      int
	HandSize   int
	Workers    int
	Seed       int64
	Exhaustive bool
}

// Report is the result of a stats run
type Report struct {
	Mode         string        `json:"mode"`
	HandSize     int           `json:"hand_size"`
	Seed         int64         `json:"seed,omitempty"`
	Workers      int           `json:"workers"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	Distribution *Distribution `json:"distribution"`
}

// Sampler runs score distribution jobs over a worker pool
type Sampler struct {
	logger *log.Logger
	clock  quartz.Clock
}

// NewSampler creates a sampler
func NewSampler(logger *log.Logger, clock quartz.Clock) *Sampler {
	return &Sampler{
		logger: logger.WithPrefix("stats"),
		clock:  clock,
	}
}

// Run samples opts.Hands random hands, or every hand of opts.HandSize cards
// when opts.Exhaustive is set
func (s *Sampler) Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.HandSize < 1 || opts.HandSize > scoring.MaxHandSize {
		return nil, fmt.Errorf("hand size must be between 1 and %d, got %d", scoring.MaxHandSize, opts.HandSize)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = min(runtime.NumCPU(), maxWorkers)
	}

	report := &Report{
		HandSize: opts.HandSize,
		Workers:  workers,
	}

	start := s.clock.Now()
	var (
		dist *Distribution
		err  error
	)
	if opts.Exhaustive {
		report.Mode = ModeExhaustive
		total := seq.Binomial(cards.DeckSize, opts.HandSize)
		if total > maxExhaustive {
			return nil, fmt.Errorf("%d-card hands number %d, too many to enumerate", opts.HandSize, total)
		}
		s.logger.Info("Enumerating hands", "hand_size", opts.HandSize, "hands", total, "workers", workers)
		dist, err = s.exhaustive(ctx, opts.HandSize, workers)
	} else {
		if opts.Hands <= 0 {
			return nil, fmt.Errorf("hands must be positive, got %d", opts.Hands)
		}
		report.Mode = ModeSample
		report.Seed = opts.Seed
		s.logger.Info("Sampling hands", "hand_size", opts.HandSize, "hands", opts.Hands, "workers", workers, "seed", opts.Seed)
		dist, err = s.sample(ctx, opts, workers)
	}
	if err != nil {
		return nil, err
	}
	if err := dist.Validate(); err != nil {
		return nil, fmt.Errorf("inconsistent distribution: %w", err)
	}

	report.Distribution = dist
	report.Elapsed = s.clock.Since(start)
	s.logger.Info("Stats complete", "hands", dist.Hands, "mean", dist.Mean(), "max", dist.Max, "elapsed", report.Elapsed)
	return report, nil
}

// sample deals random hands on independent streams, one per worker
func (s *Sampler) sample(ctx context.Context, opts Options, workers int) (*Distribution, error) {
	perWorker := opts.Hands / workers
	remainder := opts.Hands % workers
	streams := randutil.Streams(opts.Seed, workers)
	results := make([]*Distribution, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		hands := perWorker
		if w < remainder {
			hands++
		}

		g.Go(func() error {
			deck := cards.NewDeck(streams[w])
			dist := NewDistribution()
			for i := range hands {
				if i%checkInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				deck.Shuffle()
				hand, err := scoring.NewHand(deck.Deal(opts.HandSize))
				if err != nil {
					return err
				}
				dist.Add(hand, hand.FindAllCombos())
			}
			results[w] = dist
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merge(results), nil
}

// exhaustive enumerates every combination of handSize cards. One goroutine
// generates index batches and the workers score them.
func (s *Sampler) exhaustive(ctx context.Context, handSize, workers int) (*Distribution, error) {
	full := cards.NewDeck(nil).Cards()
	batches := make(chan [][]int, workers)
	results := make([]*Distribution, workers)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(batches)

		gen := combin.NewCombinationGenerator(len(full), handSize)
		batch := make([][]int, 0, batchSize)
		for gen.Next() {
			batch = append(batch, gen.Combination(nil))
			if len(batch) < batchSize {
				continue
			}
			select {
			case batches <- batch:
			case <-ctx.Done():
				return ctx.Err()
			}
			batch = make([][]int, 0, batchSize)
		}
		if len(batch) == 0 {
			return nil
		}
		select {
		case batches <- batch:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	for w := range workers {
		g.Go(func() error {
			dist := NewDistribution()
			buf := make([]cards.Card, handSize)
			for batch := range batches {
				if err := ctx.Err(); err != nil {
					return err
				}
				for _, idx := range batch {
					for i, j := range idx {
						buf[i] = full[j]
					}
					hand, err := scoring.NewHand(buf)
					if err != nil {
						return err
					}
					dist.Add(hand, hand.FindAllCombos())
				}
			}
			results[w] = dist
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merge(results), nil
}

func merge(results []*Distribution) *Distribution {
	total := NewDistribution()
	for _, r := range results {
		total.Merge(r)
	}
	return total
}

// WriteReport writes the report as indented JSON, replacing filename
// atomically
func WriteReport(filename string, report *Report) error {
	if err := fileutil.WriteJSON(filename, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
