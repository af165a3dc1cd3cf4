package scoring

import (
	"fmt"

	"github.com/lox/cribbage/cards"
)

// Combo is one scoring combination found in a hand. Combos are independent
// scoring events and may share cards with each other.
type Combo struct {
	Cards []cards.Card
	Score int
	Text  string
}

// Matches reports whether other holds the same cards as the combo,
// ignoring order. Repeated cards must repeat the same number of times.
func (c Combo) Matches(other []cards.Card) bool {
	if len(c.Cards) != len(other) {
		return false
	}
	counts := make(map[cards.Card]int, len(c.Cards))
	for _, card := range c.Cards {
		counts[card]++
	}
	for _, card := range other {
		if counts[card] == 0 {
			return false
		}
		counts[card]--
	}
	return true
}

// String renders the combo as "<cards>: <score> points for a <text>"
func (c Combo) String() string {
	return fmt.Sprintf("%s: %d points for a %s", cards.FormatCards(c.Cards), c.Score, c.Text)
}

// Total sums the score of every combo
func Total(combos []Combo) int {
	total := 0
	for _, c := range combos {
		total += c.Score
	}
	return total
}
