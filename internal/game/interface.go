package game

import (
	"context"
	"errors"

	"github.com/lox/cribbage/cards"
	"github.com/lox/cribbage/scoring"
)

// ErrQuit is returned by a UserInterface when the player asks to leave
var ErrQuit = errors.New("player quit")

// Guess is a claimed scoring combination
type Guess struct {
	Cards []cards.Card
	Score int
}

// UserInterface is the set of display hooks and prompts the game loop needs
// from a front end
type UserInterface interface {
	DisplayHand(hand scoring.Hand)
	DisplayCorrectGuess(combo scoring.Combo)
	DisplayWrongScore(actual scoring.Combo)
	DisplayInvalidCombo()
	DisplayMissedCombos(combos []scoring.Combo)
	DisplayWinMessage(score int)
	DisplayLoseMessage(score int)
	DisplayScores(scores Scoreboard)

	// GetGuess blocks until the player enters a guess. A nil guess with a
	// nil error means the player has finished guessing for this hand.
	GetGuess(ctx context.Context, hand scoring.Hand) (*Guess, error)

	// PlayAgain asks whether to deal another hand
	PlayAgain(ctx context.Context) (bool, error)
}
