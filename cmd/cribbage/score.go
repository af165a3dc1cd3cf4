package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/cribbage/cards"
	"github.com/lox/cribbage/scoring"
)

type ScoreCmd struct {
	Cards []string `arg:"" help:"Cards to score, e.g. 5H 10S JD 4C 6C"`
}

func (c *ScoreCmd) Run(globals *Globals) error {
	hand, err := parseHand(c.Cards)
	if err != nil {
		return err
	}

	renderer := lipgloss.NewRenderer(os.Stdout)
	if globals.NoColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	writeCombos(os.Stdout, renderer, hand.FindAllCombos())
	return nil
}

// parseHand accepts cards as separate arguments or quoted together
func parseHand(args []string) (scoring.Hand, error) {
	cs, err := cards.ParseCards(strings.Join(args, " "))
	if err != nil {
		return scoring.Hand{}, err
	}
	if len(cs) == 0 {
		return scoring.Hand{}, fmt.Errorf("no cards given")
	}
	for i, card := range cs {
		for _, other := range cs[:i] {
			if card == other {
				return scoring.Hand{}, fmt.Errorf("card %s given twice", card)
			}
		}
	}
	return scoring.NewHand(cs)
}

func formatCombo(c scoring.Combo) string {
	return fmt.Sprintf("%s - %s for %d points", cards.FormatCards(c.Cards), c.Text, c.Score)
}

func writeCombos(w io.Writer, r *lipgloss.Renderer, combos []scoring.Combo) {
	total := r.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)

	for _, combo := range combos {
		fmt.Fprintln(w, formatCombo(combo))
	}
	fmt.Fprintln(w, total.Render(fmt.Sprintf("Total: %d points", scoring.Total(combos))))
}
