package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/cribbage/cards"
	"github.com/lox/cribbage/internal/config"
	"github.com/lox/cribbage/internal/console"
	"github.com/lox/cribbage/internal/game"
	"github.com/lox/cribbage/internal/randutil"
	"github.com/lox/cribbage/internal/tui"
)

type PlayCmd struct {
	UI       string `help:"User interface (console or tui)"`
	Seed     int64  `help:"Deck seed, 0 for a random deal"`
	HandSize int    `help:"Cards dealt per hand (1-13)"`
}

func (c *PlayCmd) apply(cfg *config.Config) error {
	if c.UI != "" {
		cfg.UI.Mode = c.UI
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.HandSize != 0 {
		cfg.Game.HandSize = c.HandSize
	}
	return cfg.Validate()
}

func (c *PlayCmd) Run(globals *Globals) error {
	cfg, err := globals.loadConfig()
	if err != nil {
		return err
	}
	if err := c.apply(cfg); err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := randutil.Resolve(cfg.Game.Seed, time.Now())
	logger.Info("Starting session", "seed", seed, "ui", cfg.UI.Mode, "hand_size", cfg.Game.HandSize)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var ui game.UserInterface
	switch cfg.UI.Mode {
	case config.ModeTUI:
		if cfg.UI.NoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		ti := tui.NewTUIInterface(logger)
		if err := ti.Start(); err != nil {
			return fmt.Errorf("failed to start TUI: %w", err)
		}
		defer func() {
			if err := ti.Close(); err != nil {
				logger.Error("Failed to close interface", "error", err)
			}
		}()
		ui = ti
	default:
		fmt.Println(titleStyle.Render("♠ ♥ Cribbage ♦ ♣"))
		ui = console.New(os.Stdin, os.Stdout, logger, cfg.UI.NoColor)
	}

	opts := game.Options{
		HandSize:            cfg.Game.HandSize,
		WrongScorePenalty:   *cfg.Game.WrongScorePenalty,
		InvalidComboPenalty: *cfg.Game.InvalidComboPenalty,
	}
	deck := cards.NewDeck(randutil.New(seed))
	g := game.NewGame(ui, deck, logger, quartz.NewReal(), opts)

	err = g.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("Interrupted", "rounds", g.Rounds())
		return nil
	}
	return err
}
