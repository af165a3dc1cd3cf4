package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/cribbage/internal/config"
)

// version is set by ldflags during build
var version = "dev"

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// Globals are flags shared by every command
type Globals struct {
	Config   string `help:"Path to HCL config file" default:"cribbage.hcl" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error)"`
	LogFile  string `help:"Log file path"`
	NoColor  bool   `help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" default:"1" help:"Play the scoring trainer (default)"`
	Score   ScoreCmd         `cmd:"" help:"List every scoring combination in a set of cards"`
	Stats   StatsCmd         `cmd:"" help:"Measure how hand totals are distributed"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cribbage"),
		kong.Description("Practice counting cribbage hands"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// loadConfig reads the config file and applies flag overrides
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}

	if g.LogLevel != "" {
		cfg.UI.LogLevel = g.LogLevel
	}
	if g.LogFile != "" {
		cfg.UI.LogFile = g.LogFile
	}
	if g.NoColor {
		cfg.UI.NoColor = true
	}

	return cfg, nil
}

// openLogger writes structured logs to the configured file, keeping the
// terminal free for the game
func openLogger(cfg *config.Config) (*log.Logger, func(), error) {
	file, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level, err := log.ParseLevel(cfg.UI.LogLevel)
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "cribbage",
		Level:           level,
	})

	closeFn := func() {
		if err := file.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}
	return logger, closeFn, nil
}
