// Package brawl presents the arena simulation as a playable session:
// sprites, camera, HUD and the variants offered by the platform.
package brawl

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-brawl/internal/core"
	"github.com/vovakirdan/tui-brawl/internal/physics"
	"github.com/vovakirdan/tui-brawl/internal/registry"
	"github.com/vovakirdan/tui-brawl/internal/sim"
)

// Variant is a registered way to play the arena.
type Variant struct {
	ID       string
	Title    string
	Bots     int  // 0 uses the runtime setting
	Autoplay bool // the autopilot drives the player
}

// Variants lists every registered variant.
var Variants = []Variant{
	{ID: "brawl", Title: "Brawl"},
	{ID: "skirmish", Title: "Skirmish (5 bots)", Bots: sim.MinPopulation},
	{ID: "horde", Title: "Horde (10 bots)", Bots: sim.MaxPopulation},
	{ID: "demo", Title: "Demo (autopilot)", Autoplay: true},
}

// spritePath stores the custom sprite file set via CLI
var spritePath string

var logger = log.New(io.Discard)

// SetSpritePath sets a sprite file to load instead of the built-in one.
func SetSpritePath(path string) {
	spritePath = path
}

// SetLogger sets the logger handed to every new session.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game runs one arena session.
type Game struct {
	variant  Variant
	autoplay bool
	runtime  core.RuntimeConfig

	sim      *sim.Simulation
	renderer *Renderer
	pilot    *Autopilot
	clock    float64
}

// New creates a session of variant v. Call Reset before use.
func New(v Variant) *Game {
	return &Game{variant: v, autoplay: v.Autoplay}
}

// ID returns the variant identifier.
func (g *Game) ID() string { return g.variant.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.variant.Title }

// SetAutoplay hands the player to the autopilot from the next Reset.
func (g *Game) SetAutoplay(on bool) { g.autoplay = on }

// Reset builds a fresh arena.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	g.runtime = runtime

	sprites, err := LoadSprites(spritePath)
	if err != nil {
		return fmt.Errorf("brawl: %w", err)
	}

	bots := g.variant.Bots
	if bots == 0 {
		bots = runtime.Bots
	}

	world := physics.NewWorld(core.V(0, physics.DefaultGravity))
	s, err := sim.New(world, sim.Options{
		Population: bots,
		Rand:       rand.New(rand.NewSource(runtime.Seed)),
		Frames:     sprites,
		Logger:     logger.With("variant", g.variant.ID, "seed", runtime.Seed),
	})
	if err != nil {
		return fmt.Errorf("brawl: %w", err)
	}
	g.sim = s
	g.clock = 0

	cam := NewCamera(runtime.ScreenW, runtime.ScreenH-HUDRows)
	cam.Snap(g.playerPosition(), s.Bounds())
	g.renderer = &Renderer{Sprites: sprites, Camera: cam}

	g.pilot = nil
	if g.autoplay {
		g.pilot = NewAutopilot(runtime.Seed + 1)
	}
	return nil
}

// Frame advances the session. Keys come from in unless the autopilot plays.
func (g *Game) Frame(dt float64, in *core.InputManager) error {
	var src sim.InputSource = in
	if g.pilot != nil {
		g.pilot.Observe(g.sim.Snapshot())
		src = g.pilot
	}
	if err := g.sim.Frame(dt, src); err != nil {
		return err
	}
	g.clock += dt
	g.renderer.Camera.Follow(g.playerPosition(), g.sim.Bounds())
	return nil
}

func (g *Game) playerPosition() core.Vec2 {
	return g.sim.PositionOf(g.sim.Player())
}

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	g.renderer.Draw(dst, g.sim.Snapshot(), g.clock)
}

// State returns the session summary.
func (g *Game) State() core.SessionState {
	return g.sim.State()
}

// Snapshot exposes the render state for headless callers.
func (g *Game) Snapshot() sim.Snapshot {
	return g.sim.Snapshot()
}

// Register every variant with the registry
func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}
