package seq

import (
	"slices"

	"gonum.org/v1/gonum/stat/combin"
)

// Factorial returns n! for small non-negative n. Values below 2 yield 1.
func Factorial(n int) int {
	total := 1
	for i := 2; i <= n; i++ {
		total *= i
	}
	return total
}

// Binomial returns n choose k, or 0 when k > n or either is negative
func Binomial(n, k int) int {
	if n < 0 || k < 0 || n < k {
		return 0
	}
	return combin.Binomial(n, k)
}

// Product returns every index tuple of the Cartesian product of dimensions
// with the given lengths. The first dimension varies fastest, carrying into
// later dimensions on wraparound. It returns nil if any length is not
// positive.
func Product(lens []int) [][]int {
	if len(lens) == 0 {
		return nil
	}
	for _, n := range lens {
		if n <= 0 {
			return nil
		}
	}

	// combin varies the last dimension fastest, so enumerate the reversed
	// dimensions and flip each tuple back.
	reversed := slices.Clone(lens)
	slices.Reverse(reversed)

	tuples := combin.Cartesian(reversed)
	for _, tuple := range tuples {
		slices.Reverse(tuple)
	}
	return tuples
}
