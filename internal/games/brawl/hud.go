package brawl

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-brawl/internal/core"
	"github.com/vovakirdan/tui-brawl/internal/sim"
)

// HUD layout.
const (
	HUDRows        = 2
	BarWidth       = 16
	LowStamina     = 33.0
	BlinkThreshold = 0.6 // blink alpha below this draws dimmed
)

// StaminaAlpha pulses the stamina gauge while it runs low.
func StaminaAlpha(stamina, t float64) float64 {
	if stamina >= LowStamina {
		return 1
	}
	return 0.4 + 0.4*math.Abs(math.Sin(3*t))
}

// Bar renders value/max as a fixed-width gauge.
func Bar(value, maxValue float64, width int) string {
	filled := int(math.Round(core.ClampF(value/maxValue, 0, 1) * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// drawHUD writes the gauges and session counters across the top rows.
func drawHUD(dst *core.Screen, snap sim.Snapshot, t float64) {
	x := 1
	x = drawGauge(dst, x, "HP", snap.HUD.Health, sim.MaxHealth, core.ColorGreen, healthColor(snap.HUD.Health))

	stColor := core.ColorYellow
	if StaminaAlpha(snap.HUD.Stamina, t) < BlinkThreshold {
		stColor = core.ColorDarkGray
	}
	x = drawGauge(dst, x+2, "ST", snap.HUD.Stamina, sim.MaxStamina, core.ColorYellow, stColor)
	if snap.HUD.SprintLocked {
		dst.DrawTextColored(x+1, 0, "LOCK", core.ColorBrightRed)
	}

	alive := 0
	for _, a := range snap.Actors {
		if a.Kind == sim.KindBot && a.Health > 0 {
			alive++
		}
	}
	right := fmt.Sprintf("Bots %d/%d  Score %d ", alive, len(snap.Actors)-1, snap.Stats.Score())
	dst.DrawText(dst.Width()-len(right), 0, right)

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// drawGauge draws "LBL [bar] NN" and returns the column after it.
func drawGauge(dst *core.Screen, x int, label string, value, maxValue float64, labelColor, barColor core.Color) int {
	dst.DrawTextColored(x, 0, label, labelColor)
	x += len(label) + 1
	dst.DrawText(x, 0, "[")
	dst.DrawTextColored(x+1, 0, Bar(value, maxValue, BarWidth), barColor)
	dst.DrawText(x+1+BarWidth, 0, "]")
	num := fmt.Sprintf("%3.0f", value)
	dst.DrawText(x+BarWidth+3, 0, num)
	return x + BarWidth + 3 + len(num)
}

func healthColor(hp float64) core.Color {
	switch {
	case hp > 60:
		return core.ColorGreen
	case hp > 30:
		return core.ColorYellow
	default:
		return core.ColorRed
	}
}
