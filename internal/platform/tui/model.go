package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-brawl/internal/core"
	"github.com/vovakirdan/tui-brawl/internal/registry"
	"github.com/vovakirdan/tui-brawl/internal/storage"
)

// MatchSaver records finished sessions. *storage.Store implements it.
type MatchSaver interface {
	SaveMatch(m storage.Match) (int64, error)
}

// Saver adapts an optional store; a nil store yields a nil MatchSaver.
func Saver(s *storage.Store) MatchSaver {
	if s == nil {
		return nil
	}
	return s
}

// GameModel runs one variant inside Bubble Tea with pause, restart and
// back-to-menu support.
type GameModel struct {
	game     registry.Game
	screen   *core.Screen
	store    MatchSaver
	config   core.RuntimeConfig
	logger   *log.Logger
	keys     GameKeyMap
	input    *core.InputManager
	held     *HeldKeys
	lastTick time.Time
	state    core.SessionState

	paused     bool
	saved      bool
	quitting   bool
	backToMenu bool
	exitOnBack bool // no menu to return to
	err        error
}

// NewGameModel creates a model for game. A nil store disables match history.
func NewGameModel(game registry.Game, store MatchSaver, cfg core.RuntimeConfig, logger *log.Logger) *GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		logger: logger,
		keys:   DefaultGameKeyMap(),
	}
	m.resetInput()
	return m
}

func (m *GameModel) resetInput() {
	m.input = core.NewInputManager()
	m.held = NewHeldKeys(m.input)
	m.lastTick = time.Time{}
}

// Init builds the arena and starts the tick loop.
func (m *GameModel) Init() tea.Cmd {
	if err := m.game.Reset(m.config); err != nil {
		m.err = err
		m.quitting = true
		return tea.Quit
	}
	m.state = m.game.State()
	m.logger.Info("session started", "variant", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m *GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.BlurMsg:
		m.held.Clear()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m *GameModel) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit

	case core.ActionPause:
		if !m.state.Over() {
			m.paused = !m.paused
			m.held.Clear()
		}

	case core.ActionBack:
		if m.state.Over() || m.paused {
			m.finish()
			m.backToMenu = true
			if m.exitOnBack {
				return m, tea.Quit
			}
		}

	case core.ActionRestart:
		if m.state.Over() {
			m.restart()
		}

	case core.ActionLeft, core.ActionRight, core.ActionAttack:
		if !m.paused {
			m.held.Press(action, m.keys.Sprinting(msg), now)
		}
	}

	return m, nil
}

// handleTick advances the session by the real time since the previous tick.
func (m *GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	dt := frameDelta(m.lastTick, now)
	m.lastTick = now
	if m.paused {
		return m, tickCmd(m.config.TickRate)
	}

	if err := m.game.Frame(dt, m.input); err != nil {
		m.logger.Error("frame failed", "variant", m.game.ID(), "error", err)
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.held.Expire(now)
	m.state = m.game.State()

	if m.state.Over() {
		m.finish()
	}

	return m, tickCmd(m.config.TickRate)
}

// restart starts a fresh session with a new seed.
func (m *GameModel) restart() {
	m.config.Seed = time.Now().UnixNano()
	if err := m.game.Reset(m.config); err != nil {
		m.logger.Error("restart failed", "error", err)
		m.err = err
		return
	}
	m.resetInput()
	m.state = m.game.State()
	m.saved = false
	m.paused = false
	m.logger.Info("session restarted", "variant", m.game.ID(), "seed", m.config.Seed)
}

// finish records the session once. Abandoned sessions are kept only if they scored.
func (m *GameModel) finish() {
	if m.saved {
		return
	}
	if !m.state.Over() && m.state.Score == 0 {
		return
	}
	m.saved = true

	m.logger.Info("session ended",
		"variant", m.game.ID(),
		"outcome", m.state.Outcome(),
		"score", m.state.Score,
		"kills", m.state.Kills,
		"elapsed", fmt.Sprintf("%.1fs", m.state.Elapsed),
	)

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveMatch(MatchFromState(m.game.ID(), m.config.Seed, m.state)); err != nil {
		m.logger.Warn("could not save match", "error", err)
	}
}

// MatchFromState converts a session summary into a history record.
func MatchFromState(variant string, seed int64, st core.SessionState) storage.Match {
	return storage.Match{
		Variant:     variant,
		Score:       st.Score,
		Kills:       st.Kills,
		Bots:        st.Bots,
		DamageDealt: st.DamageDealt,
		DamageTaken: st.DamageTaken,
		Elapsed:     st.Elapsed,
		Outcome:     st.Outcome(),
		Seed:        seed,
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".brawl", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m *GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	if m.paused {
		m.screen.DrawMessage("PAUSED", "P resume  |  B menu  |  Q quit")
	}
	return RenderScreen(m.screen)
}

// State returns the latest session summary.
func (m *GameModel) State() core.SessionState { return m.state }

// Paused reports whether the session is paused.
func (m *GameModel) Paused() bool { return m.paused }

// IsQuitting returns true if user requested to quit entirely.
func (m *GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m *GameModel) BackToMenu() bool { return m.backToMenu }

// Err returns the error that stopped the session, if any.
func (m *GameModel) Err() error { return m.err }

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store MatchSaver, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, logger)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	if _, err := p.Run(); err != nil {
		return err
	}
	return model.Err()
}
