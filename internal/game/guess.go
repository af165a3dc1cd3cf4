package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/cribbage/cards"
	"github.com/lox/cribbage/scoring"
)

var (
	// ErrDuplicateCard is returned when a guess names the same card twice
	ErrDuplicateCard = errors.New("card typed twice")
	// ErrCardNotInHand is returned when a guess names a card not in the hand
	ErrCardNotInHand = errors.New("card isn't in your hand")
	// ErrMissingScore is returned when a guess has cards but no trailing score
	ErrMissingScore = errors.New("missing score")
	// ErrNoCards is returned when a guess has a score but no cards
	ErrNoCards = errors.New("no cards given")
)

// CardError names the card that made a guess invalid
type CardError struct {
	Card cards.Card
	Err  error
}

func (e *CardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Card)
}

func (e *CardError) Unwrap() error {
	return e.Err
}

// ParseGuess parses "<card> <card> ... <score>". The cards must all be in
// the hand and distinct. When the score is missing the parsed cards are
// still returned alongside ErrMissingScore so the caller can ask for it.
func ParseGuess(line string, hand scoring.Hand) (Guess, error) {
	var guess Guess

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return guess, ErrNoCards
	}

	hasScore := false
	if score, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
		guess.Score = score
		hasScore = true
		parts = parts[:len(parts)-1]
	}

	if len(parts) == 0 {
		return guess, ErrNoCards
	}

	for _, part := range parts {
		card, err := cards.ParseCard(part)
		if err != nil {
			return Guess{}, err
		}
		for _, c := range guess.Cards {
			if c == card {
				return Guess{}, &CardError{Card: card, Err: ErrDuplicateCard}
			}
		}
		if !hand.Contains(card) {
			return Guess{}, &CardError{Card: card, Err: ErrCardNotInHand}
		}
		guess.Cards = append(guess.Cards, card)
	}

	if !hasScore {
		return guess, ErrMissingScore
	}
	return guess, nil
}

// DescribeGuessError turns a ParseGuess error into a message for the player
func DescribeGuessError(err error) string {
	var cardErr *CardError
	switch {
	case errors.Is(err, ErrDuplicateCard) && errors.As(err, &cardErr):
		return fmt.Sprintf("You typed %s twice!", cardErr.Card)
	case errors.Is(err, ErrCardNotInHand):
		return "That card isn't in your hand!"
	case errors.Is(err, ErrNoCards):
		return "Which cards? Try something like: 5H 10S 2"
	default:
		return err.Error()
	}
}

// ParseScore parses a score entered on its own
func ParseScore(s string) (int, error) {
	score, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", strings.TrimSpace(s))
	}
	return score, nil
}

// Outcome is the result of judging a guess
type Outcome int

const (
	InvalidCombo Outcome = iota
	WrongScore
	Correct
)

func (o Outcome) String() string {
	switch o {
	case Correct:
		return "correct"
	case WrongScore:
		return "wrong score"
	case InvalidCombo:
		return "invalid combo"
	default:
		return "unknown"
	}
}

// Judge compares a guess against the pending combos. A combo with the same
// cards and the claimed score is Correct. Otherwise the first combo with the
// same cards is WrongScore. The returned index is -1 for InvalidCombo.
func Judge(pending []scoring.Combo, guess Guess) (Outcome, int) {
	first := -1
	for i, combo := range pending {
		if !combo.Matches(guess.Cards) {
			continue
		}
		if combo.Score == guess.Score {
			return Correct, i
		}
		if first == -1 {
			first = i
		}
	}
	if first != -1 {
		return WrongScore, first
	}
	return InvalidCombo, -1
}
