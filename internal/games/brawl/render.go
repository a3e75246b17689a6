package brawl

import (
	"fmt"

	"github.com/vovakirdan/tui-brawl/internal/core"
	"github.com/vovakirdan/tui-brawl/internal/sim"
)

// Visual characters for the arena.
const (
	FloorChar = '▀'
	WallChar  = '█'
)

// Renderer draws snapshots into a screen buffer.
type Renderer struct {
	Sprites *SpriteLibrary
	Camera  *Camera
}

// Draw paints the arena, actors, indicators and HUD. t is the session clock
// used for blinking.
func (r *Renderer) Draw(dst *core.Screen, snap sim.Snapshot, t float64) {
	dst.Clear()
	r.Camera.Resize(dst.Width(), dst.Height()-HUDRows)

	r.drawArena(dst, snap.Bounds)

	// Dead actors first so the living draw over corpses.
	for _, a := range snap.Actors {
		if a.Health <= 0 {
			r.drawActor(dst, a)
		}
	}
	for _, a := range snap.Actors {
		if a.Health > 0 && a.Kind == sim.KindBot {
			r.drawActor(dst, a)
		}
	}
	for _, a := range snap.Actors {
		if a.Health > 0 && a.Kind == sim.KindPlayer {
			r.drawActor(dst, a)
		}
	}

	for _, ind := range snap.Indicators {
		r.drawIndicator(dst, ind)
	}

	drawHUD(dst, snap, t)

	switch {
	case snap.PlayerDead:
		dst.DrawMessage("YOU DIED", fmt.Sprintf("Score: %d  |  R restart  B menu", snap.Stats.Score()))
	case snap.Cleared:
		dst.DrawMessage("ARENA CLEARED", fmt.Sprintf("Score: %d  |  R restart  B menu", snap.Stats.Score()))
	}
}

// cell projects a world point into screen coordinates below the HUD.
func (r *Renderer) cell(p core.Vec2) (int, int) {
	col, row := r.Camera.Project(p)
	return col, row + HUDRows
}

func (r *Renderer) drawArena(dst *core.Screen, b sim.Bounds) {
	_, floor := r.cell(core.V(0, b.GroundTop))
	_, ceiling := r.cell(core.V(0, b.Half))
	left, _ := r.cell(core.V(-b.Half, 0))
	leftInner, _ := r.cell(core.V(b.LeftInner, 0))
	rightInner, _ := r.cell(core.V(b.RightInner, 0))
	right, _ := r.cell(core.V(b.Half, 0))

	top := max(ceiling, HUDRows)
	for x := max(leftInner, 0); x < min(rightInner, dst.Width()); x++ {
		dst.SetColored(x, floor, FloorChar, core.ColorGray)
	}
	for x := left; x < leftInner; x++ {
		dst.DrawVLine(x, top, floor-top+1, WallChar, core.ColorDarkGray)
	}
	for x := rightInner; x < right; x++ {
		dst.DrawVLine(x, top, floor-top+1, WallChar, core.ColorDarkGray)
	}
}

func (r *Renderer) drawActor(dst *core.Screen, a sim.ActorView) {
	sprite := r.Sprites.Sprite(a.Kind, a.Mode, a.Frame, a.Facing)
	if sprite == nil {
		sprite = Sprite{"####", "####"}
	}
	col, row := r.cell(core.V(a.Position.X-a.HalfExtents.X, a.Position.Y+a.HalfExtents.Y))
	color := actorColor(a)
	for dy, line := range sprite {
		dx := 0
		for _, ch := range line {
			if ch != ' ' {
				if row+dy >= HUDRows {
					dst.SetColored(col+dx, row+dy, ch, color)
				}
			}
			dx++
		}
	}
}

func actorColor(a sim.ActorView) core.Color {
	switch {
	case a.Health <= 0:
		return core.ColorGray
	case a.Kind == sim.KindPlayer:
		return core.ColorCyan
	case a.Aggro:
		return core.ColorRed
	default:
		return core.ColorWhite
	}
}

func (r *Renderer) drawIndicator(dst *core.Screen, ind sim.IndicatorView) {
	text := fmt.Sprintf("-%d", ind.Value)
	col, row := r.cell(ind.Position)
	if row < HUDRows {
		return
	}
	color := ind.Color
	if ind.Alpha < 0.4 {
		color = core.ColorDarkGray
	}
	dst.DrawTextColored(col-len(text)/2, row, text, color)
}
