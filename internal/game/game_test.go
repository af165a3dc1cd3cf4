package game

import (
	"context"
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cribbage/cards"
	"github.com/lox/cribbage/scoring"
)

// scriptedUI replays a fixed list of guesses and records what was displayed
type scriptedUI struct {
	guesses  []*Guess
	again    []bool
	clock    *quartz.Mock
	perGuess time.Duration

	hands    []scoring.Hand
	correct  []scoring.Combo
	wrong    []scoring.Combo
	invalid  int
	missed   []scoring.Combo
	wins     []int
	losses   []int
	scores   []Scoreboard
	guessErr error
}

func (s *scriptedUI) DisplayHand(hand scoring.Hand) { s.hands = append(s.hands, hand) }
func (s *scriptedUI) DisplayCorrectGuess(combo scoring.Combo) { s.correct = append(s.correct, combo) }
func (s *scriptedUI) DisplayWrongScore(actual scoring.Combo) { s.wrong = append(s.wrong, actual) }
func (s *scriptedUI) DisplayInvalidCombo() { s.invalid++ }
func (s *scriptedUI) DisplayMissedCombos(combos []scoring.Combo) { s.missed = append(s.missed, combos...) }
func (s *scriptedUI) DisplayWinMessage(score int) { s.wins = append(s.wins, score) }
func (s *scriptedUI) DisplayLoseMessage(score int) { s.losses = append(s.losses, score) }
func (s *scriptedUI) DisplayScores(scores Scoreboard) { s.scores = append(s.scores, scores) }

func (s *scriptedUI) GetGuess(ctx context.Context, hand scoring.Hand) (*Guess, error) {
	if s.clock != nil && s.perGuess > 0 {
		s.clock.Advance(s.perGuess).MustWait(ctx)
	}
	if s.guessErr != nil && len(s.guesses) == 0 {
		return nil, s.guessErr
	}
	if len(s.guesses) == 0 {
		return nil, nil
	}
	g := s.guesses[0]
	s.guesses = s.guesses[1:]
	return g, nil
}

func (s *scriptedUI) PlayAgain(ctx context.Context) (bool, error) {
	if len(s.again) == 0 {
		return false, nil
	}
	a := s.again[0]
	s.again = s.again[1:]
	return a, nil
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func guess(notation string, score int) *Guess {
	return &Guess{Cards: cards.MustParseCards(notation), Score: score}
}

func newTestGame(t *testing.T, ui *scriptedUI) *Game {
	t.Helper()
	clock := quartz.NewMock(t)
	ui.clock = clock
	deck := cards.NewDeck(rand.New(rand.NewPCG(1, 1)))
	return NewGame(ui, deck, quietLogger(), clock, DefaultOptions())
}

func TestPlayRoundAllClaimed(t *testing.T) {
	// 5H 10S: one fifteen, 5H 5D: one pair, 5D 10S: another fifteen
	ui := &scriptedUI{
		guesses: []*Guess{
			guess("5H 10S", 2),
			guess("5D 5H", 2),
			guess("10S 5D", 2),
		},
		perGuess: 2 * time.Second,
	}
	g := newTestGame(t, ui)

	result, err := g.PlayRound(context.Background(), cards.MustParseCards("5H 10S 5D"))
	require.NoError(t, err)

	assert.True(t, result.Won())
	assert.Equal(t, 3, result.Combos)
	assert.Equal(t, 3, result.Guesses)
	assert.Equal(t, 6, result.PlayerPoints)
	assert.Zero(t, result.CPUPoints)
	assert.Len(t, ui.correct, 3)
	assert.Equal(t, []int{6}, ui.wins)
	assert.Empty(t, ui.losses)
	assert.Equal(t, Scoreboard{Player: 6}, g.Scores())
	assert.Equal(t, 8*time.Second, result.Duration, "four prompts at two seconds each")
}

func TestPlayRoundPenaltiesAndMuggins(t *testing.T) {
	ui := &scriptedUI{
		guesses: []*Guess{
			guess("5H 10S", 3), // wrong score, combo consumed
			guess("5H 5D", 1),  // wrong score
			guess("10S", 2),    // nothing
		},
	}
	g := newTestGame(t, ui)

	result, err := g.PlayRound(context.Background(), cards.MustParseCards("5H 10S 5D"))
	require.NoError(t, err)

	assert.False(t, result.Won())
	require.Len(t, ui.wrong, 2)
	assert.Equal(t, "fifteen", ui.wrong[0].Text)
	assert.Equal(t, "2 of a kind", ui.wrong[1].Text)
	assert.Equal(t, 1, ui.invalid)

	require.Len(t, result.Missed, 1)
	assert.Equal(t, "10S 5D", cards.FormatCards(result.Missed[0].Cards))
	assert.Equal(t, []int{2}, ui.losses)

	// 1 + 1 penalties, 2 for the invalid combo, 2 muggins
	assert.Equal(t, 6, result.CPUPoints)
	assert.Zero(t, result.PlayerPoints)
	assert.Equal(t, Scoreboard{CPU: 6}, g.Scores())
}

func TestPlayRoundForfeitsClaimedPointsOnMiss(t *testing.T) {
	ui := &scriptedUI{guesses: []*Guess{guess("5H 10S", 2)}}
	g := newTestGame(t, ui)

	result, err := g.PlayRound(context.Background(), cards.MustParseCards("5H 10S 5D"))
	require.NoError(t, err)

	assert.Len(t, result.Claimed, 1)
	assert.Zero(t, result.PlayerPoints)
	assert.Equal(t, 4, result.CPUPoints)
	assert.Len(t, ui.missed, 2)
}

func TestPlayRoundPrefersComboWithClaimedScore(t *testing.T) {
	// A-5 of hearts: the full hand is a fifteen (2), a 5-flush (5) and a run of 5 (5)
	ui := &scriptedUI{guesses: []*Guess{
		guess("AH 2H 3H 4H 5H", 5),
		guess("AH 2H 3H 4H 5H", 5),
		guess("AH 2H 3H 4H 5H", 2),
	}}
	g := newTestGame(t, ui)

	result, err := g.PlayRound(context.Background(), cards.MustParseCards("AH 2H 3H 4H 5H"))
	require.NoError(t, err)

	require.Len(t, ui.correct, 3)
	assert.Equal(t, "5-flush", ui.correct[0].Text)
	assert.Equal(t, "run of 5", ui.correct[1].Text)
	assert.Equal(t, "fifteen", ui.correct[2].Text)
	assert.True(t, result.Won())
	assert.Equal(t, 12, result.PlayerPoints)
}

func TestPlayRoundPropagatesQuit(t *testing.T) {
	ui := &scriptedUI{guessErr: ErrQuit}
	g := newTestGame(t, ui)

	_, err := g.PlayRound(context.Background(), cards.MustParseCards("5H 10S 5D"))
	assert.ErrorIs(t, err, ErrQuit)
	assert.Zero(t, g.Rounds())
}

func TestPlayRoundRejectsOversizedHand(t *testing.T) {
	g := newTestGame(t, &scriptedUI{})
	_, err := g.PlayRound(context.Background(), make([]cards.Card, 64))
	assert.ErrorIs(t, err, scoring.ErrHandTooLarge)
}

func TestRunPlaysUntilDeclined(t *testing.T) {
	ui := &scriptedUI{again: []bool{true, true, false}}
	g := newTestGame(t, ui)

	require.NoError(t, g.Run(context.Background()))

	assert.Equal(t, 3, g.Rounds())
	require.Len(t, ui.hands, 3)
	for _, h := range ui.hands {
		assert.Equal(t, 5, h.Len())
	}
	assert.Len(t, ui.scores, 3)
	assert.Equal(t, g.Scores(), ui.scores[2])
}

func TestRunQuitIsClean(t *testing.T) {
	ui := &scriptedUI{guessErr: ErrQuit}
	g := newTestGame(t, ui)

	require.NoError(t, g.Run(context.Background()))
	assert.Zero(t, g.Rounds())
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newTestGame(t, &scriptedUI{})
	assert.ErrorIs(t, g.Run(ctx), context.Canceled)
}

func TestRunRejectsImpossibleHandSize(t *testing.T) {
	ui := &scriptedUI{}
	clock := quartz.NewMock(t)
	opts := DefaultOptions()
	opts.HandSize = 60
	g := NewGame(ui, cards.NewDeck(nil), quietLogger(), clock, opts)

	assert.Error(t, g.Run(context.Background()))
}

func TestRunRejectsHandTooSlowToScore(t *testing.T) {
	for _, size := range []int{scoring.MaxHandSize + 1, cards.DeckSize} {
		ui := &scriptedUI{}
		opts := DefaultOptions()
		opts.HandSize = size
		g := NewGame(ui, cards.NewDeck(nil), quietLogger(), quartz.NewMock(t), opts)

		err := g.Run(context.Background())
		assert.ErrorContains(t, err, "hand size must be between 1 and 13")
		assert.Equal(t, 0, g.Rounds())
	}
}
