package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tiltmaze/internal/core"
	"github.com/vovakirdan/tiltmaze/internal/registry"
	"github.com/vovakirdan/tiltmaze/internal/storage"
)

// Options configures the game host.
type Options struct {
	Store        *storage.Store // Optional run history
	Logger       *log.Logger    // Defaults to a discarding logger
	KeyboardTilt float64        // Tilt reading produced by an arrow key
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	log        *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	runSaved   bool // Whether the current run has been saved
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		log:        opts.Logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(opts.KeyboardTilt),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		if !m.gameState.GameOver {
			m.saveRun(storage.OutcomeQuit)
		}
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	restart := m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if restart && !m.gameState.GameOver {
		m.keyMapper.Level()
		m.runSaved = false
		m.log.Info("run restarted", "game", m.game.ID())
	}

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		outcome := storage.OutcomeHalted
		if m.gameState.Won {
			outcome = storage.OutcomeCompleted
		}
		m.saveRun(outcome)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the current score and level. Failures are logged only.
func (m *Model) saveRun(outcome storage.Outcome) {
	m.runSaved = true
	if m.store == nil {
		return
	}
	run := storage.Run{
		GameID:  m.game.ID(),
		Score:   m.gameState.Score,
		Level:   m.gameState.Level,
		Outcome: outcome,
	}
	if run.Level == 0 {
		return
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.log.Error("cannot save run", "err", err)
		return
	}
	m.log.Info("run saved", "score", run.Score, "level", run.Level, "outcome", outcome)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".tiltmaze", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("cannot save screenshot", "err", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Press, drag and release for pointer input
	)

	_, err := p.Run()
	return err
}
