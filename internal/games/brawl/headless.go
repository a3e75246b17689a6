package brawl

import (
	"errors"
	"math"

	"github.com/vovakirdan/tui-brawl/internal/core"
	"github.com/vovakirdan/tui-brawl/internal/sim"
)

// ErrNotReset is returned when a session is driven before Reset.
var ErrNotReset = errors.New("brawl: session not reset")

// RunResult summarizes a headless run.
type RunResult struct {
	State  core.SessionState
	Stats  sim.Stats
	Frames int
}

// RunHeadless drives g at a fixed frame time of dt seconds until the
// session ends or limit seconds of play have passed. Without autoplay the
// player stands still and bots stay passive.
func RunHeadless(g *Game, dt, limit float64) (RunResult, error) {
	if g.sim == nil {
		return RunResult{}, ErrNotReset
	}

	in := core.NewInputManager()
	frames := int(math.Round(limit / dt))
	var res RunResult
	for ; res.Frames < frames && !g.State().Over(); res.Frames++ {
		if err := g.Frame(dt, in); err != nil {
			return res, err
		}
	}

	res.State = g.State()
	res.Stats = g.sim.Stats()
	return res, nil
}
