package cards

import (
	"math/rand/v2"
)

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

// Deck is a standard 52-card deck. Dealing takes a prefix view of the
// shuffled cards, so dealt hands stay valid until the next Shuffle.
type Deck struct {
	cards [DeckSize]Card
	rng   *rand.Rand
}

// NewDeck creates an unshuffled deck ordered by number then suit
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}

	i := 0
	for number := Ace; number <= King; number++ {
		for _, suit := range Suits {
			d.cards[i] = Card{suit: suit, number: uint8(number)}
			i++
		}
	}

	return d
}

// Shuffle shuffles the deck using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal returns the first n cards. It returns nil if n is out of range.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || n > len(d.cards) {
		return nil
	}
	return d.cards[:n:n]
}

// Cards returns the full deck in its current order
func (d *Deck) Cards() []Card {
	return d.cards[:]
}
