package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/cribbage/cards"
	"github.com/lox/cribbage/internal/game"
	"github.com/lox/cribbage/scoring"
)

// TUIInterface drives a TUIModel from the game loop
type TUIInterface struct {
	model   *TUIModel
	program *tea.Program
	logger  *log.Logger
	done    chan error
}

var _ game.UserInterface = (*TUIInterface)(nil)

// NewTUIInterface creates a full screen interface
func NewTUIInterface(logger *log.Logger, opts ...tea.ProgramOption) *TUIInterface {
	model := NewTUIModel(logger)
	return &TUIInterface{
		model:   model,
		program: tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...),
		logger:  logger.WithPrefix("tui"),
	}
}

// NewTestInterface creates an interface with no running program. Messages
// are applied to the model directly and input comes from InjectInput.
func NewTestInterface(logger *log.Logger) *TUIInterface {
	return &TUIInterface{
		model:  NewTUIModelWithOptions(logger, true),
		logger: logger.WithPrefix("tui"),
	}
}

// Model returns the underlying Bubble Tea model
func (ti *TUIInterface) Model() *TUIModel {
	return ti.model
}

// Start runs the TUI program on its own goroutine
func (ti *TUIInterface) Start() error {
	if ti.program == nil {
		return nil
	}

	ti.done = make(chan error, 1)
	go func() {
		_, err := ti.program.Run()
		if err != nil {
			ti.logger.Error("TUI exited with error", "error", err)
		}
		// Unblock a game loop still waiting on input
		ti.model.submit(InputResult{Quit: true})
		ti.done <- err
	}()
	return nil
}

// Close stops the TUI program and waits for the terminal to be restored
func (ti *TUIInterface) Close() error {
	if ti.program == nil || ti.done == nil {
		return nil
	}
	ti.model.SendQuitSignal()
	return <-ti.done
}

func (ti *TUIInterface) send(msg tea.Msg) {
	if ti.program == nil {
		ti.model.Update(msg)
		return
	}
	ti.program.Send(msg)
}

func (ti *TUIInterface) log(style lipgloss.Style, text string) {
	ti.send(logMsg{plain: text, styled: style.Render(text)})
}

func (ti *TUIInterface) prompt(placeholder string) {
	ti.send(promptMsg{placeholder: placeholder})
}

// DisplayHand shows the dealt hand in the log and sidebar
func (ti *TUIInterface) DisplayHand(hand scoring.Hand) {
	dealt := slices.Clone(hand.Cards())
	ti.send(handMsg{hand: dealt})
	ti.send(logMsg{
		plain:  "Hand: " + cards.FormatCards(dealt),
		styled: HandStyle.Render("Hand: ") + formatCards(dealt),
	})
}

// DisplayCorrectGuess confirms a claimed combo
func (ti *TUIInterface) DisplayCorrectGuess(combo scoring.Combo) {
	ti.log(SuccessStyle, fmt.Sprintf("Correct! %d points for a %s.", combo.Score, combo.Text))
}

// DisplayWrongScore reports the real score of a combo claimed at the wrong value
func (ti *TUIInterface) DisplayWrongScore(actual scoring.Combo) {
	ti.log(WarningStyle, fmt.Sprintf("Nope, score is %d for a %s.", actual.Score, actual.Text))
}

// DisplayInvalidCombo reports a guess that matches no combo
func (ti *TUIInterface) DisplayInvalidCombo() {
	ti.log(ErrorStyle, "Nope! That's nothing.")
}

// DisplayMissedCombos lists the combos the player did not claim
func (ti *TUIInterface) DisplayMissedCombos(combos []scoring.Combo) {
	ti.log(PlainStyle, "You missed some:")
	for _, combo := range combos {
		ti.log(InfoStyle, "  "+combo.String())
	}
}

// DisplayWinMessage announces the points banked for a fully claimed hand
func (ti *TUIInterface) DisplayWinMessage(score int) {
	ti.log(SuccessStyle, fmt.Sprintf("Aww yiss! %d points for you!", score))
}

// DisplayLoseMessage announces muggins
func (ti *TUIInterface) DisplayLoseMessage(score int) {
	ti.log(ErrorStyle, fmt.Sprintf("Computer gets muggins of %d points.", score))
}

// DisplayScores updates the sidebar totals
func (ti *TUIInterface) DisplayScores(scores game.Scoreboard) {
	ti.send(scoresMsg{scores: scores})
	ti.log(ScoreStyle, fmt.Sprintf("Score total: You: %d  Computer: %d", scores.Player, scores.CPU))
}

func (ti *TUIInterface) readLine(ctx context.Context) (string, error) {
	result, err := ti.model.WaitForInput(ctx)
	if err != nil {
		return "", err
	}
	if result.Quit {
		return "", game.ErrQuit
	}
	return result.Line, nil
}

// GetGuess waits for a line that parses as a guess. An empty line ends
// guessing for the hand; "quit" leaves the game.
func (ti *TUIInterface) GetGuess(ctx context.Context, hand scoring.Hand) (*game.Guess, error) {
	for {
		ti.prompt("<cards> <score>, e.g. 5H 10S 2. Enter on its own when done")
		line, err := ti.readLine(ctx)
		if err != nil {
			return nil, err
		}

		switch strings.ToLower(line) {
		case "":
			return nil, nil
		case "quit", "exit":
			return nil, game.ErrQuit
		}

		guess, err := game.ParseGuess(line, hand)
		if errors.Is(err, game.ErrMissingScore) {
			ti.log(PlainStyle, "Score?")
			ti.prompt("Score for " + cards.FormatCards(guess.Cards))
			scoreLine, err := ti.readLine(ctx)
			if err != nil {
				return nil, err
			}
			score, err := game.ParseScore(scoreLine)
			if err != nil {
				ti.log(ErrorStyle, "invalid number")
				continue
			}
			guess.Score = score
			return &guess, nil
		}
		if err != nil {
			ti.logger.Debug("Rejected guess", "input", line, "error", err)
			ti.log(ErrorStyle, game.DescribeGuessError(err))
			continue
		}

		return &guess, nil
	}
}

// PlayAgain asks whether to deal another hand
func (ti *TUIInterface) PlayAgain(ctx context.Context) (bool, error) {
	ti.log(PlainStyle, "Play again? [y/n]")
	ti.prompt("y to deal again, n to finish")
	line, err := ti.readLine(ctx)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(line), "y"), nil
}
