package tui

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-brawl/internal/core"
	"github.com/vovakirdan/tui-brawl/internal/storage"
)

// fakeGame records frames and ends when told to.
type fakeGame struct {
	resets   int
	frames   []float64
	lastIn   core.Input
	state    core.SessionState
	frameErr error
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) error {
	g.resets++
	g.frames = nil
	g.state = core.SessionState{Bots: 5}
	return nil
}

func (g *fakeGame) Frame(dt float64, in *core.InputManager) error {
	if g.frameErr != nil {
		return g.frameErr
	}
	g.frames = append(g.frames, dt)
	g.lastIn = in.Snapshot()
	g.state.Elapsed += dt
	return nil
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "arena")
}

func (g *fakeGame) State() core.SessionState { return g.state }

type recordingSaver struct {
	matches []storage.Match
}

func (s *recordingSaver) SaveMatch(m storage.Match) (int64, error) {
	s.matches = append(s.matches, m)
	return int64(len(s.matches)), nil
}

func newTestModel(t *testing.T) (*GameModel, *fakeGame, *recordingSaver) {
	t.Helper()
	g := &fakeGame{}
	saver := &recordingSaver{}
	m := NewGameModel(g, saver, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 9}, nil)
	m.Init()
	return m, g, saver
}

func tick(m *GameModel, at time.Time) tea.Cmd {
	_, cmd := m.Update(TickMsg(at))
	return cmd
}

func TestGameModelUsesRealFrameTime(t *testing.T) {
	m, g, _ := newTestModel(t)
	start := time.Unix(100, 0)

	tick(m, start)
	tick(m, start.Add(20*time.Millisecond))
	tick(m, start.Add(50*time.Millisecond))

	if len(g.frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(g.frames))
	}
	want := []float64{0, 0.02, 0.03}
	for i, dt := range g.frames {
		if math.Abs(dt-want[i]) > 1e-9 {
			t.Errorf("frame %d dt = %v, expected %v", i, dt, want[i])
		}
	}
}

func TestGameModelPauseStopsFrames(t *testing.T) {
	m, g, _ := newTestModel(t)
	start := time.Unix(100, 0)
	tick(m, start)

	m.Update(runeKey('p'))
	if !m.Paused() {
		t.Fatal("p should pause")
	}
	tick(m, start.Add(time.Second))
	if len(g.frames) != 1 {
		t.Errorf("paused model ran a frame: %v", g.frames)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("paused view should show the pause box")
	}

	m.Update(runeKey('p'))
	tick(m, start.Add(time.Second+10*time.Millisecond))
	if n := len(g.frames); n != 2 || math.Abs(g.frames[1]-0.01) > 1e-9 {
		t.Errorf("resume should not replay the paused time: %v", g.frames)
	}
}

func TestGameModelHeldKeysReachTheGame(t *testing.T) {
	m, g, _ := newTestModel(t)
	start := time.Now()

	m.Update(tea.KeyMsg{Type: tea.KeyShiftLeft})
	tick(m, start)
	if !g.lastIn.Left || !g.lastIn.Sprint {
		t.Errorf("frame input = %+v, expected sprinting left", g.lastIn)
	}

	tick(m, start.Add(HoldInitial+50*time.Millisecond))
	tick(m, start.Add(HoldInitial+60*time.Millisecond))
	if g.lastIn.Left {
		t.Error("left should expire without repeats")
	}
}

func TestGameModelSavesFinishedSessionOnce(t *testing.T) {
	m, g, saver := newTestModel(t)
	start := time.Unix(100, 0)
	tick(m, start)

	g.state.PlayerDead = true
	g.state.Score = 75
	g.state.Kills = 1
	tick(m, start.Add(time.Second))
	tick(m, start.Add(2*time.Second))

	if len(saver.matches) != 1 {
		t.Fatalf("expected one saved match, got %d", len(saver.matches))
	}
	got := saver.matches[0]
	if got.Variant != "fake" || got.Outcome != "dead" || got.Score != 75 || got.Seed != 9 || got.Bots != 5 {
		t.Errorf("saved match = %+v", got)
	}
}

func TestGameModelRestartAfterDeath(t *testing.T) {
	m, g, saver := newTestModel(t)

	// Restart is ignored mid-session
	m.Update(runeKey('r'))
	if g.resets != 1 {
		t.Fatalf("restart during play reset the game")
	}

	g.state.Cleared = true
	tick(m, time.Unix(100, 0))
	m.Update(runeKey('r'))
	if g.resets != 2 {
		t.Fatalf("expected a reset after the session ended, got %d", g.resets)
	}
	if m.State().Over() {
		t.Error("state should be fresh after restart")
	}

	g.state.PlayerDead = true
	tick(m, time.Unix(101, 0))
	if len(saver.matches) != 2 {
		t.Errorf("both sessions should be saved, got %d", len(saver.matches))
	}
}

func TestGameModelBackOnlyWhenStopped(t *testing.T) {
	m, _, saver := newTestModel(t)

	m.Update(runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back during play should be ignored")
	}

	m.Update(runeKey('p'))
	m.Update(runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back while paused should leave")
	}
	if len(saver.matches) != 0 {
		t.Error("an abandoned session without score should not be saved")
	}
}

func TestGameModelQuitSavesScoredSession(t *testing.T) {
	m, g, saver := newTestModel(t)
	g.state.Score = 30
	tick(m, time.Unix(100, 0))

	_, cmd := m.Update(runeKey('q'))
	if cmd == nil || !m.IsQuitting() {
		t.Fatal("q should quit")
	}
	if len(saver.matches) != 1 || saver.matches[0].Outcome != "quit" {
		t.Errorf("quit should record the scored session: %+v", saver.matches)
	}
}

func TestGameModelFrameErrorStops(t *testing.T) {
	m, g, _ := newTestModel(t)
	g.frameErr = errors.New("boom")

	tick(m, time.Unix(100, 0))
	if !m.IsQuitting() || !errors.Is(m.Err(), g.frameErr) {
		t.Errorf("frame error should stop the model, err = %v", m.Err())
	}
}

func TestFrameDelta(t *testing.T) {
	now := time.Unix(100, 0)
	if d := frameDelta(time.Time{}, now); d != 0 {
		t.Errorf("first tick delta = %v", d)
	}
	if d := frameDelta(now, now.Add(-time.Second)); d != 0 {
		t.Errorf("backwards clock delta = %v", d)
	}
	if d := frameDelta(now, now.Add(250*time.Millisecond)); d != 0.25 {
		t.Errorf("delta = %v, expected 0.25", d)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawTextColored(0, 1, "xy", core.ColorDarkGray)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xy"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output lost %q", want)
		}
	}
}
