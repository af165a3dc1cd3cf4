// Package console implements the line-based front end: the hand is printed,
// guesses are typed one per line and a blank line ends the round.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/cribbage/cards"
	"github.com/lox/cribbage/internal/game"
	"github.com/lox/cribbage/scoring"
)

type styles struct {
	red     lipgloss.Style
	black   lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		red:     r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		black:   r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		err:     r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")),
		info:    r.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

type line struct {
	text string
	err  error
}

// UI reads guesses from in and writes feedback to out
type UI struct {
	in     io.Reader
	out    io.Writer
	logger *log.Logger
	styles styles

	once  sync.Once
	lines chan line
}

var _ game.UserInterface = (*UI)(nil)

// New creates a console UI. With noColor set all output is plain text.
func New(in io.Reader, out io.Writer, logger *log.Logger, noColor bool) *UI {
	renderer := lipgloss.NewRenderer(out)
	if noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &UI{
		in:     in,
		out:    out,
		logger: logger.WithPrefix("console"),
		styles: newStyles(renderer),
		lines:  make(chan line),
	}
}

// readLoop feeds lines from the input to the lines channel until EOF. It
// runs on its own goroutine so reads can be abandoned on cancellation.
func (u *UI) readLoop() {
	scanner := bufio.NewScanner(u.in)
	for scanner.Scan() {
		u.lines <- line{text: scanner.Text()}
	}
	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	u.lines <- line{err: err}
	close(u.lines)
}

func (u *UI) readLine(ctx context.Context) (string, error) {
	u.once.Do(func() { go u.readLoop() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-u.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

func (u *UI) println(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UI) formatCards(cs []cards.Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		if c.IsRed() {
			parts[i] = u.styles.red.Render(c.String())
		} else {
			parts[i] = u.styles.black.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}

// DisplayHand prints the dealt hand
func (u *UI) DisplayHand(hand scoring.Hand) {
	u.println("")
	u.println(u.formatCards(hand.Cards()))
	u.println(u.styles.info.Render("Enter combos as <cards> <score>, blank line when done."))
}

// DisplayCorrectGuess confirms a claimed combo
func (u *UI) DisplayCorrectGuess(combo scoring.Combo) {
	u.println(u.styles.success.Render(fmt.Sprintf("Correct! %d points for a %s.", combo.Score, combo.Text)))
}

// DisplayWrongScore reports the real score of a combo claimed at the wrong value
func (u *UI) DisplayWrongScore(actual scoring.Combo) {
	u.println(u.styles.warning.Render(fmt.Sprintf("Nope, score is %d for a %s.", actual.Score, actual.Text)))
}

// DisplayInvalidCombo reports a guess that matches no combo
func (u *UI) DisplayInvalidCombo() {
	u.println(u.styles.err.Render("Nope! That's nothing."))
}

// DisplayMissedCombos lists the combos the player did not claim
func (u *UI) DisplayMissedCombos(combos []scoring.Combo) {
	u.println("You missed some:")
	for _, combo := range combos {
		u.println(combo.String())
	}
}

// DisplayWinMessage announces the points banked for a fully claimed hand
func (u *UI) DisplayWinMessage(score int) {
	u.println(u.styles.success.Render(fmt.Sprintf("Aww yiss! %d points for you!", score)))
}

// DisplayLoseMessage announces muggins
func (u *UI) DisplayLoseMessage(score int) {
	u.println(u.styles.err.Render(fmt.Sprintf("Computer gets muggins of %d points.", score)))
}

// DisplayScores prints the running totals
func (u *UI) DisplayScores(scores game.Scoreboard) {
	u.println(fmt.Sprintf("Score total: You: %d", scores.Player))
	u.println(fmt.Sprintf("        Computer: %d", scores.CPU))
}

// GetGuess reads lines until one parses as a guess. A blank line or end of
// input ends guessing for the hand.
func (u *UI) GetGuess(ctx context.Context, hand scoring.Hand) (*game.Guess, error) {
	for {
		text, err := u.readLine(ctx)
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		text = strings.TrimSpace(text)
		switch strings.ToLower(text) {
		case "":
			return nil, nil
		case "quit", "exit":
			return nil, game.ErrQuit
		}

		guess, err := game.ParseGuess(text, hand)
		if errors.Is(err, game.ErrMissingScore) {
			fmt.Fprint(u.out, "Score? ")
			scoreText, err := u.readLine(ctx)
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			score, err := game.ParseScore(scoreText)
			if err != nil {
				u.println(u.styles.err.Render("invalid number"))
				continue
			}
			guess.Score = score
			return &guess, nil
		}
		if err != nil {
			u.logger.Debug("Rejected guess", "input", text, "error", err)
			u.println(u.styles.err.Render(game.DescribeGuessError(err)))
			continue
		}

		return &guess, nil
	}
}

// PlayAgain asks whether to deal another hand. End of input means no.
func (u *UI) PlayAgain(ctx context.Context) (bool, error) {
	fmt.Fprint(u.out, "Play again? [y/n] ")
	text, err := u.readLine(ctx)
	if errors.Is(err, io.EOF) {
		u.println("")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(text)), "y"), nil
}
