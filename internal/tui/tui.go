package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/cribbage/cards"
	"github.com/lox/cribbage/internal/game"
)

const inputBuffer = 16

// TUIModel represents the Bubble Tea model for the trainer
type TUIModel struct {
	logger *log.Logger

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	// State
	gameLog     []string
	inputs      chan InputResult
	quitSignal  chan struct{}
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Sidebar
	hand   []cards.Card
	scores game.Scoreboard
	rounds int

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// InputResult is one line submitted by the player
type InputResult struct {
	Line string
	Quit bool
}

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

type logMsg struct {
	plain  string
	styled string
}

type handMsg struct {
	hand []cards.Card
}

type scoresMsg struct {
	scores game.Scoreboard
}

type promptMsg struct {
	placeholder string
}

// NewTUIModel creates a new TUI model
func NewTUIModel(logger *log.Logger) *TUIModel {
	return NewTUIModelWithOptions(logger, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(logger *log.Logger, testMode bool) *TUIModel {
	// Sized properly once a WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Waiting for the deal..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &TUIModel{
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		gameLog:     []string{},
		inputs:      make(chan InputResult, inputBuffer),
		quitSignal:  make(chan struct{}, 1),
		focusedPane: 1,
		testMode:    testMode,
		capturedLog: []string{},
	}
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenForQuit())
}

// listenForQuit returns a command that listens for quit signals
func (m *TUIModel) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case logMsg:
		m.addEntry(msg.plain, msg.styled)
		return m, nil

	case handMsg:
		m.hand = msg.hand
		return m, nil

	case scoresMsg:
		m.scores = msg.scores
		m.rounds++
		return m, nil

	case promptMsg:
		m.input.Placeholder = msg.placeholder
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updated dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.submit(InputResult{Quit: true})
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				line := strings.TrimSpace(m.input.Value())
				if line != "" {
					m.addEntry("> "+line, InfoStyle.Render("> "+line))
				}
				m.submit(InputResult{Line: line})
				m.input.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit hands a line to the game loop without blocking the UI
func (m *TUIModel) submit(result InputResult) {
	select {
	case m.inputs <- result:
	default:
		m.logger.Warn("Input dropped, game loop is not reading", "line", result.Line)
	}
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	inputContent := m.renderInputPane()
	inputHeight := lipgloss.Height(inputContent)
	inputPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor(1)).
		Width(max(m.width-2, 1)).
		Render(inputContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 24)
	paneHeight := max(m.height-inputHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	// Start at the top on first sizing
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoTop()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor(0)).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, inputPane)
}

func (m *TUIModel) borderColor(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return lipgloss.Color("#04B575")
	}
	return lipgloss.Color("#626262")
}

// renderSidebarPane shows the current hand and the running score
func (m *TUIModel) renderSidebarPane() string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("Cribbage"))
	content.WriteString("\n\n")

	content.WriteString(InfoStyle.Render("Hand:"))
	content.WriteString("\n")
	if len(m.hand) == 0 {
		content.WriteString("  -")
	} else {
		content.WriteString("  " + formatCards(m.hand))
	}
	content.WriteString("\n\n")

	content.WriteString(InfoStyle.Render(fmt.Sprintf("Score after %d rounds:", m.rounds)))
	content.WriteString("\n")
	content.WriteString(ScoreStyle.Render(fmt.Sprintf("  You:      %d", m.scores.Player)))
	content.WriteString("\n")
	content.WriteString(ScoreStyle.Render(fmt.Sprintf("  Computer: %d", m.scores.CPU)))

	return content.String()
}

// renderInputPane renders the input line and key help
func (m *TUIModel) renderInputPane() string {
	var content strings.Builder

	content.WriteString(m.input.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}

	return content.String()
}

// formatCards formats cards with colors
func formatCards(cs []cards.Card) string {
	formatted := make([]string, len(cs))
	for i, card := range cs {
		if card.IsRed() {
			formatted[i] = RedCardStyle.Render(card.String())
		} else {
			formatted[i] = BlackCardStyle.Render(card.String())
		}
	}
	return strings.Join(formatted, " ")
}

// AddLogEntry adds an unstyled entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.addEntry(entry, entry)
}

func (m *TUIModel) addEntry(plain, styled string) {
	m.gameLog = append(m.gameLog, styled)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, plain)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// WaitForInput blocks until the player submits a line or ctx is done
func (m *TUIModel) WaitForInput(ctx context.Context) (InputResult, error) {
	select {
	case <-ctx.Done():
		return InputResult{}, ctx.Err()
	case result := <-m.inputs:
		return result, nil
	}
}

// SendQuitSignal signals the TUI to quit gracefully
func (m *TUIModel) SendQuitSignal() {
	select {
	case m.quitSignal <- struct{}{}:
	default:
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectInput programmatically submits a line (test mode only)
func (m *TUIModel) InjectInput(line string) error {
	if !m.testMode {
		return fmt.Errorf("input injection only available in test mode")
	}

	select {
	case m.inputs <- InputResult{Line: line}:
		return nil
	default:
		return fmt.Errorf("input channel full")
	}
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}
