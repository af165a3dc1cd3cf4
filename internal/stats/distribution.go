package stats

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/cribbage/scoring"
)

// Distribution accumulates hand totals and how often each kind of combo
// appears
type Distribution struct {
	Hands     int            `json:"hands"`
	Sum       int64          `json:"sum"`
	SumSq     int64          `json:"sum_sq"` // Sum of squares for variance
	Max       int            `json:"max"`
	MaxHand   string         `json:"max_hand,omitempty"`
	Zero      int            `json:"zero"` // Hands that score nothing
	Histogram map[int]int    `json:"histogram"`
	Combos    map[string]int `json:"combos"`
}

// NewDistribution returns an empty distribution
func NewDistribution() *Distribution {
	return &Distribution{
		Histogram: make(map[int]int),
		Combos:    make(map[string]int),
	}
}

// Add records the combos found in one hand
func (d *Distribution) Add(hand scoring.Hand, combos []scoring.Combo) {
	total := scoring.Total(combos)

	d.Hands++
	d.Sum += int64(total)
	d.SumSq += int64(total) * int64(total)
	d.Histogram[total]++
	if total == 0 {
		d.Zero++
	}
	// Ties keep the lexically smaller hand, as in Merge
	if total > d.Max || d.MaxHand == "" {
		d.Max = total
		d.MaxHand = hand.String()
	} else if total == d.Max {
		if name := hand.String(); name < d.MaxHand {
			d.MaxHand = name
		}
	}

	for _, c := range combos {
		d.Combos[c.Text]++
	}
}

// Merge folds other into d. Ties on the maximum keep the lexically smaller
// hand so merged results do not depend on worker order.
func (d *Distribution) Merge(other *Distribution) {
	if other == nil || other.Hands == 0 {
		return
	}

	switch {
	case d.Hands == 0, other.Max > d.Max:
		d.Max = other.Max
		d.MaxHand = other.MaxHand
	case other.Max == d.Max && other.MaxHand < d.MaxHand:
		d.MaxHand = other.MaxHand
	}

	d.Hands += other.Hands
	d.Sum += other.Sum
	d.SumSq += other.SumSq
	d.Zero += other.Zero
	for score, n := range other.Histogram {
		d.Histogram[score] += n
	}
	for text, n := range other.Combos {
		d.Combos[text] += n
	}
}

// Mean returns the average hand total
func (d *Distribution) Mean() float64 {
	if d.Hands == 0 {
		return 0
	}
	return float64(d.Sum) / float64(d.Hands)
}

// Variance returns the sample variance of hand totals
func (d *Distribution) Variance() float64 {
	if d.Hands < 2 {
		return 0
	}
	mean := d.Mean()
	return (float64(d.SumSq) - float64(d.Hands)*mean*mean) / float64(d.Hands-1)
}

// StdDev returns the sample standard deviation of hand totals
func (d *Distribution) StdDev() float64 {
	return math.Sqrt(d.Variance())
}

// StdError returns the standard error of the mean
func (d *Distribution) StdError() float64 {
	if d.Hands == 0 {
		return 0
	}
	return d.StdDev() / math.Sqrt(float64(d.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (d *Distribution) ConfidenceInterval95() (float64, float64) {
	mean := d.Mean()
	margin := 1.96 * d.StdError()
	return mean - margin, mean + margin
}

// Scores returns the distinct totals seen, ascending
func (d *Distribution) Scores() []int {
	scores := make([]int, 0, len(d.Histogram))
	for score := range d.Histogram {
		scores = append(scores, score)
	}
	slices.Sort(scores)
	return scores
}

// Percentile returns the total at the given percentile (0.0 to 1.0) using
// the nearest rank
func (d *Distribution) Percentile(p float64) int {
	if d.Hands == 0 {
		return 0
	}
	p = max(0, min(1, p))
	rank := int(math.Ceil(p * float64(d.Hands)))
	if rank < 1 {
		rank = 1
	}

	seen := 0
	scores := d.Scores()
	for _, score := range scores {
		seen += d.Histogram[score]
		if seen >= rank {
			return score
		}
	}
	return scores[len(scores)-1]
}

// Median returns the 50th percentile total
func (d *Distribution) Median() int {
	return d.Percentile(0.5)
}

// Validate checks that the running sums agree with the histogram
func (d *Distribution) Validate() error {
	hands := 0
	var sum int64
	for score, n := range d.Histogram {
		if n < 0 {
			return fmt.Errorf("negative count %d for score %d", n, score)
		}
		hands += n
		sum += int64(score) * int64(n)
	}
	if hands != d.Hands {
		return fmt.Errorf("histogram holds %d hands, expected %d", hands, d.Hands)
	}
	if sum != d.Sum {
		return fmt.Errorf("histogram sums to %d, expected %d", sum, d.Sum)
	}
	if d.Histogram[0] != d.Zero {
		return fmt.Errorf("zero count mismatch: histogram=%d, zero=%d", d.Histogram[0], d.Zero)
	}
	return nil
}
