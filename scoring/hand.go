// Package scoring finds the scoring combinations in a cribbage hand.
//
// A Hand is a read-only view over a slice of cards, typically five cards
// dealt from a shuffled deck. FindAllCombos runs four independent detectors
// and concatenates their results in a fixed order:
//
//   - fifteens: every subset whose values sum to exactly 15, 2 points each
//   - of a kind: cards sharing a number, 2 points per pair within the group
//   - flush: more than four cards of one suit, 1 point per card
//   - runs: three or more consecutive numbers, one combo per choice of
//     duplicate card, 1 point per number in the run
//
// Scoring is pure; a Hand may be scored repeatedly and concurrently.
//
//	hand, err := scoring.NewHand(cards.MustParseCards("5H 5S JD 4C 6C"))
//	for _, combo := range hand.FindAllCombos() {
//	    fmt.Println(combo)
//	}
package scoring

import (
	"errors"
	"fmt"

	"github.com/lox/cribbage/cards"
	"github.com/lox/cribbage/internal/seq"
)

const (
	fifteenTarget = 15
	fifteenScore  = 2
	minFlushSize  = 5
	minRunLength  = 3
)

// MaxHandSize is the largest hand dealt for play or statistics. Fifteens
// are found by walking the power set, so each extra card doubles the work.
const MaxHandSize = 13

// ErrHandTooLarge is returned by NewHand for hands the power set
// enumeration cannot cover
var ErrHandTooLarge = errors.New("hand too large")

// Hand is a read-only view over the cards being scored
type Hand struct {
	cards []cards.Card
}

// NewHand wraps cs without copying it. Hands of 64 or more cards are
// rejected.
func NewHand(cs []cards.Card) (Hand, error) {
	if len(cs) >= seq.MaxPowerSetItems {
		return Hand{}, fmt.Errorf("%w: %d cards, maximum is %d", ErrHandTooLarge, len(cs), seq.MaxPowerSetItems-1)
	}
	return Hand{cards: cs}, nil
}

// MustHand is like NewHand but panics on invalid input
func MustHand(cs []cards.Card) Hand {
	h, err := NewHand(cs)
	if err != nil {
		panic(err)
	}
	return h
}

// Cards returns the cards in the hand. Callers must not modify the slice.
func (h Hand) Cards() []cards.Card {
	return h.cards
}

// Len returns the number of cards in the hand
func (h Hand) Len() int {
	return len(h.cards)
}

// Contains reports whether card is in the hand
func (h Hand) Contains(card cards.Card) bool {
	for _, c := range h.cards {
		if c == card {
			return true
		}
	}
	return false
}

func (h Hand) String() string {
	return cards.FormatCards(h.cards)
}

// FindAllCombos returns every scoring combination in the hand: fifteens,
// then of-a-kind groups, then flushes, then runs
func (h Hand) FindAllCombos() []Combo {
	var combos []Combo
	combos = h.findFifteens(combos)
	combos = h.findNOfKind(combos)
	combos = h.findFlush(combos)
	combos = h.findRuns(combos)
	return combos
}

func (h Hand) findFifteens(combos []Combo) []Combo {
	for set := range seq.NewPowerSet(h.cards).All() {
		sum := 0
		for _, card := range set {
			sum += card.Value()
		}
		if sum == fifteenTarget {
			combos = append(combos, Combo{
				Cards: set,
				Score: fifteenScore,
				Text:  "fifteen",
			})
		}
	}
	return combos
}

func (h Hand) findNOfKind(combos []Combo) []Combo {
	for _, group := range seq.GroupBy(h.cards, cards.Card.Number) {
		size := len(group.Items)
		if size > 1 {
			combos = append(combos, Combo{
				Cards: group.Items,
				Score: 2 * seq.Binomial(size, 2),
				Text:  fmt.Sprintf("%d of a kind", size),
			})
		}
	}
	return combos
}

func (h Hand) findFlush(combos []Combo) []Combo {
	for _, group := range seq.GroupBy(h.cards, cards.Card.Suit) {
		size := len(group.Items)
		if size >= minFlushSize {
			combos = append(combos, Combo{
				Cards: group.Items,
				Score: size,
				Text:  fmt.Sprintf("%d-flush", size),
			})
		}
	}
	return combos
}

func (h Hand) findRuns(combos []Combo) []Combo {
	var candidates [][]cards.Card
	prev := -1
	for _, group := range seq.GroupBy(h.cards, cards.Card.Number) {
		if prev != -1 && group.Key != prev+1 {
			combos = makeRunCombos(candidates, combos)
			candidates = candidates[:0]
		}
		prev = group.Key
		candidates = append(candidates, group.Items)
	}
	return makeRunCombos(candidates, combos)
}

// makeRunCombos emits one combo per way of picking a card from each group,
// provided the groups form a long enough run
func makeRunCombos(groups [][]cards.Card, combos []Combo) []Combo {
	if len(groups) < minRunLength {
		return combos
	}

	lens := make([]int, len(groups))
	for i, g := range groups {
		lens[i] = len(g)
	}

	for _, choice := range seq.Product(lens) {
		run := make([]cards.Card, len(groups))
		for i, idx := range choice {
			run[i] = groups[i][idx]
		}
		combos = append(combos, Combo{
			Cards: run,
			Score: len(groups),
			Text:  fmt.Sprintf("run of %d", len(groups)),
		})
	}
	return combos
}
