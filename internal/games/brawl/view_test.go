package brawl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-brawl/internal/core"
	"github.com/vovakirdan/tui-brawl/internal/sim"
)

func TestCameraClampsToArena(t *testing.T) {
	b := sim.NewBounds()
	cam := NewCamera(80, 22)

	cam.Snap(core.V(-29, -28), b)
	assert.Equal(t, -30+80/(2*ColsPerUnit), cam.X)
	assert.Equal(t, -30+22/(2*RowsPerUnit), cam.Y)

	cam.Snap(core.V(29, 25), b)
	assert.Equal(t, 30-80/(2*ColsPerUnit), cam.X)
	assert.Equal(t, 30-22/(2*RowsPerUnit), cam.Y)

	// A viewport wider than the arena stays centered.
	wide := NewCamera(200, 22)
	wide.Snap(core.V(10, -28), b)
	assert.Equal(t, 0.0, wide.X)
}

func TestCameraFollowEases(t *testing.T) {
	b := sim.NewBounds()
	cam := NewCamera(40, 100)
	cam.Snap(core.V(0, 0), b)
	require.Equal(t, 0.0, cam.X)

	cam.Follow(core.V(5, 0), b)
	assert.InDelta(t, 5*FollowSmoothing, cam.X, 1e-12)

	for i := 0; i < 200; i++ {
		cam.Follow(core.V(5, 0), b)
	}
	assert.InDelta(t, 5, cam.X, 1e-6)
}

func TestCameraProject(t *testing.T) {
	cam := &Camera{X: 0, Y: 0, ViewW: 40, ViewH: 20}

	col, row := cam.Project(core.V(0, 0))
	assert.Equal(t, 20, col)
	assert.Equal(t, 10, row)

	col, row = cam.Project(core.V(-1, 1))
	assert.Equal(t, 18, col)
	assert.Equal(t, 9, row)
}

func TestStaminaAlpha(t *testing.T) {
	assert.Equal(t, 1.0, StaminaAlpha(50, 1.234))
	assert.Equal(t, 1.0, StaminaAlpha(LowStamina, 0))
	for _, tt := range []float64{0, 0.3, 1, 2.5} {
		a := StaminaAlpha(10, tt)
		assert.GreaterOrEqual(t, a, 0.4)
		assert.LessOrEqual(t, a, 0.8)
	}
	assert.InDelta(t, 0.4, StaminaAlpha(10, 0), 1e-12)
}

func TestBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", Bar(50, 100, 10))
	assert.Equal(t, "░░░░", Bar(-3, 100, 4))
	assert.Equal(t, "████", Bar(150, 100, 4))
}

func newTestGame(t *testing.T, v Variant) *Game {
	t.Helper()
	g := New(v)
	cfg := core.DefaultConfig()
	cfg.Seed = 3
	require.NoError(t, g.Reset(cfg))
	return g
}

func TestRenderDrawsArena(t *testing.T) {
	g := newTestGame(t, Variants[1])
	require.NoError(t, g.Frame(1.0/60, core.NewInputManager()))

	scr := core.NewScreen(80, 24)
	g.Render(scr)

	assert.Contains(t, scr.Row(0), "HP")
	assert.Contains(t, scr.Row(0), "ST")
	assert.Contains(t, scr.Row(0), "Bots 5/5")
	assert.Equal(t, strings.Repeat("─", 80), scr.Row(1))
	assert.Contains(t, scr.Row(23), string(FloorChar))

	// The player stands on the floor in the middle of the view.
	assert.Contains(t, scr.Row(21), "O")
	assert.Equal(t, core.ColorCyan, scr.GetCell(strings.IndexRune(scr.Row(21), 'O'), 21).Color)
}

func TestRenderShowsDeathMessage(t *testing.T) {
	g := newTestGame(t, Variants[0])
	p := g.sim.Player()
	p.Health = 0

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	assert.Contains(t, scr.String(), "YOU DIED")
}

func TestRenderIndicators(t *testing.T) {
	r := &Renderer{Camera: &Camera{ViewW: 40, ViewH: 20}}
	scr := core.NewScreen(40, 22)

	r.drawIndicator(scr, sim.IndicatorView{Position: core.V(0, 0), Value: 7, Color: core.ColorBrightRed, Alpha: 1})
	assert.Contains(t, scr.Row(12), "-7")
	col := strings.Index(scr.Row(12), "-7")
	assert.Equal(t, core.ColorBrightRed, scr.GetCell(col, 12).Color)

	r.drawIndicator(scr, sim.IndicatorView{Position: core.V(0, 4), Value: 9, Color: core.ColorBrightRed, Alpha: 0.1})
	col = strings.Index(scr.Row(8), "-9")
	require.GreaterOrEqual(t, col, 0)
	assert.Equal(t, core.ColorDarkGray, scr.GetCell(col, 8).Color)
}
