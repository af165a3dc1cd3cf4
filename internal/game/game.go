package game

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/cribbage/cards"
	"github.com/lox/cribbage/scoring"
)

// Options controls hand size and the penalties for bad guesses
type Options struct {
	HandSize            int
	WrongScorePenalty   int
	InvalidComboPenalty int
}

// DefaultOptions returns the standard five card game
func DefaultOptions() Options {
	return Options{
		HandSize:            5,
		WrongScorePenalty:   1,
		InvalidComboPenalty: 2,
	}
}

// Scoreboard holds the running totals across rounds
type Scoreboard struct {
	Player int
	CPU    int
}

// RoundResult summarises a completed round
type RoundResult struct {
	Hand         scoring.Hand
	Combos       int
	Guesses      int
	Claimed      []scoring.Combo
	Missed       []scoring.Combo
	PlayerPoints int
	CPUPoints    int
	Duration     time.Duration
}

// Won reports whether the player claimed every combo
func (r *RoundResult) Won() bool {
	return len(r.Missed) == 0
}

// Dealer supplies the cards for each round
type Dealer interface {
	Shuffle()
	Deal(n int) []cards.Card
}

// Game runs rounds against a UserInterface
type Game struct {
	ui     UserInterface
	deck   Dealer
	logger *log.Logger
	clock  quartz.Clock
	opts   Options
	scores Scoreboard
	rounds int
}

// NewGame creates a game dealing from deck
func NewGame(ui UserInterface, deck Dealer, logger *log.Logger, clock quartz.Clock, opts Options) *Game {
	return &Game{
		ui:     ui,
		deck:   deck,
		logger: logger.WithPrefix("game"),
		clock:  clock,
		opts:   opts,
	}
}

// Scores returns the running totals
func (g *Game) Scores() Scoreboard {
	return g.scores
}

// Rounds returns the number of completed rounds
func (g *Game) Rounds() int {
	return g.rounds
}

// Run plays rounds until the player declines to play again or quits
func (g *Game) Run(ctx context.Context) error {
	if g.opts.HandSize < 1 || g.opts.HandSize > scoring.MaxHandSize {
		return fmt.Errorf("hand size must be between 1 and %d, got %d", scoring.MaxHandSize, g.opts.HandSize)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		g.deck.Shuffle()
		dealt := g.deck.Deal(g.opts.HandSize)
		if dealt == nil {
			return fmt.Errorf("cannot deal %d cards from a %d card deck", g.opts.HandSize, cards.DeckSize)
		}

		if _, err := g.PlayRound(ctx, dealt); err != nil {
			if errors.Is(err, ErrQuit) {
				g.logger.Info("Player quit mid-round", "rounds", g.rounds)
				return nil
			}
			return err
		}

		g.ui.DisplayScores(g.scores)

		again, err := g.ui.PlayAgain(ctx)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if !again {
			g.logger.Info("Session finished", "rounds", g.rounds, "player", g.scores.Player, "cpu", g.scores.CPU)
			return nil
		}
	}
}

// PlayRound scores dealt, collects guesses until the player is done and
// settles the round
func (g *Game) PlayRound(ctx context.Context, dealt []cards.Card) (*RoundResult, error) {
	hand, err := scoring.NewHand(dealt)
	if err != nil {
		return nil, err
	}

	start := g.clock.Now()
	g.ui.DisplayHand(hand)

	pending := hand.FindAllCombos()
	result := &RoundResult{
		Hand:   hand,
		Combos: len(pending),
	}
	g.logger.Debug("Dealt hand", "hand", hand.String(), "combos", len(pending), "total", scoring.Total(pending))

	roundScore := 0
	for {
		guess, err := g.ui.GetGuess(ctx, hand)
		if err != nil {
			return nil, err
		}
		if guess == nil {
			break
		}
		result.Guesses++

		outcome, idx := Judge(pending, *guess)
		g.logger.Debug("Judged guess", "cards", cards.FormatCards(guess.Cards), "score", guess.Score, "outcome", outcome)

		switch outcome {
		case Correct:
			combo := pending[idx]
			g.ui.DisplayCorrectGuess(combo)
			roundScore += combo.Score
			result.Claimed = append(result.Claimed, combo)
			pending = slices.Delete(pending, idx, idx+1)
		case WrongScore:
			g.ui.DisplayWrongScore(pending[idx])
			result.CPUPoints += g.opts.WrongScorePenalty
			pending = slices.Delete(pending, idx, idx+1)
		case InvalidCombo:
			g.ui.DisplayInvalidCombo()
			result.CPUPoints += g.opts.InvalidComboPenalty
		}
	}

	if len(pending) == 0 {
		g.ui.DisplayWinMessage(roundScore)
		result.PlayerPoints = roundScore
	} else {
		result.Missed = pending
		g.ui.DisplayMissedCombos(pending)
		muggins := scoring.Total(pending)
		g.ui.DisplayLoseMessage(muggins)
		result.CPUPoints += muggins
	}

	g.scores.Player += result.PlayerPoints
	g.scores.CPU += result.CPUPoints
	g.rounds++
	result.Duration = g.clock.Since(start)

	g.logger.Info("Round complete",
		"hand", hand.String(),
		"won", result.Won(),
		"player", result.PlayerPoints,
		"cpu", result.CPUPoints,
		"duration", result.Duration)

	return result, nil
}
