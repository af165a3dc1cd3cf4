// Package cards provides the playing card value type, its compact text
// notation and a standard 52-card deck.
package cards

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit represents a card suit. The ordering is only used for deterministic
// grouping and display.
type Suit uint8

const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds
)

// Suits lists every suit in ascending order
var Suits = [4]Suit{Spades, Clubs, Hearts, Diamonds}

// String returns the suit letter used in card notation
func (s Suit) String() string {
	switch s {
	case Spades:
		return "S"
	case Clubs:
		return "C"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	default:
		return "?"
	}
}

// Symbol returns the unicode suit symbol for terminal rendering
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Named card numbers
const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13
)

// Card is an immutable playing card. The zero value is not a valid card;
// use NewCard, MustCard or ParseCard.
type Card struct {
	suit   Suit
	number uint8
}

// NewCard creates a card, rejecting numbers outside 1..13
func NewCard(suit Suit, number int) (Card, error) {
	if number < Ace || number > King {
		return Card{}, &CardParseError{Message: fmt.Sprintf("invalid card: number %d is out of range", number)}
	}
	if suit > Diamonds {
		return Card{}, &CardParseError{Message: fmt.Sprintf("invalid card suit: %d", suit)}
	}
	return Card{suit: suit, number: uint8(number)}, nil
}

// MustCard is like NewCard but panics on invalid input
func MustCard(suit Suit, number int) Card {
	c, err := NewCard(suit, number)
	if err != nil {
		panic(err)
	}
	return c
}

// Suit returns the card's suit
func (c Card) Suit() Suit {
	return c.suit
}

// Number returns the card's number, 1 (Ace) through 13 (King)
func (c Card) Number() int {
	return int(c.number)
}

// Value returns the card's value for counting fifteens: face cards count 10
func (c Card) Value() int {
	return min(int(c.number), 10)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.suit.IsRed()
}

// String returns the card notation, e.g. "AS" or "10H"
func (c Card) String() string {
	return rankString(int(c.number)) + c.suit.String()
}

// Pretty returns the card with a suit symbol, e.g. "A♠"
func (c Card) Pretty() string {
	return rankString(int(c.number)) + c.suit.Symbol()
}

func rankString(number int) string {
	switch number {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return strconv.Itoa(number)
	}
}

// CardParseError reports card notation that could not be decoded
type CardParseError struct {
	Message string
}

func (e *CardParseError) Error() string {
	return e.Message
}

// ParseCard parses "<number><suit>" where number is 1-13 or A, J, Q, K and
// suit is the final character, one of S, C, H or D. Both are case-insensitive.
func ParseCard(s string) (Card, error) {
	if s == "" {
		return Card{}, &CardParseError{Message: fmt.Sprintf("invalid card %q", s)}
	}

	suitChar := s[len(s)-1]
	numStr := s[:len(s)-1]

	var suit Suit
	switch suitChar {
	case 's', 'S':
		suit = Spades
	case 'c', 'C':
		suit = Clubs
	case 'h', 'H':
		suit = Hearts
	case 'd', 'D':
		suit = Diamonds
	default:
		return Card{}, &CardParseError{Message: fmt.Sprintf("invalid card suit: %q", string(suitChar))}
	}

	var num int
	switch strings.ToUpper(numStr) {
	case "A":
		num = Ace
	case "J":
		num = Jack
	case "Q":
		num = Queen
	case "K":
		num = King
	default:
		// Plain decimal only: no sign and no leading zero
		if !isDecimal(numStr) {
			return Card{}, &CardParseError{Message: fmt.Sprintf("invalid card number: %q", numStr)}
		}
		n, err := strconv.Atoi(numStr)
		if err != nil {
			return Card{}, &CardParseError{Message: fmt.Sprintf("invalid card number: %q", numStr)}
		}
		num = n
	}

	if num < Ace || num > King {
		return Card{}, &CardParseError{Message: fmt.Sprintf("invalid card: number %q is out of range", numStr)}
	}

	return Card{suit: suit, number: uint8(num)}, nil
}

func isDecimal(s string) bool {
	if s == "" || s[0] == '0' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MustParseCard is like ParseCard but panics on invalid input
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a whitespace separated list of cards such as "5H 10S KD"
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	result := make([]Card, 0, len(fields))
	for _, field := range fields {
		card, err := ParseCard(field)
		if err != nil {
			return nil, err
		}
		result = append(result, card)
	}
	return result, nil
}

// MustParseCards is like ParseCards but panics on invalid input
func MustParseCards(s string) []Card {
	result, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return result
}

// FormatCards joins the notation of each card with single spaces
func FormatCards(cs []Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
