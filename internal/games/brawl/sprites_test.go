package brawl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-brawl/internal/sim"
)

func TestDefaultSpritesCoverEveryMode(t *testing.T) {
	lib, err := LoadSprites("")
	require.NoError(t, err)

	for _, k := range []sim.Kind{sim.KindPlayer, sim.KindBot} {
		for _, m := range sim.Modes() {
			assert.Positive(t, lib.FrameCount(k, m), "%s %s", k, m)
			s := lib.Sprite(k, m, 0, 1)
			require.Len(t, s, 2, "%s %s", k, m)
			for _, row := range s {
				assert.Len(t, []rune(row), 4, "%s %s row %q", k, m, row)
			}
		}
	}
}

func TestAttackAnimationsLastHalfASecond(t *testing.T) {
	lib, err := LoadSprites("")
	require.NoError(t, err)

	for _, k := range []sim.Kind{sim.KindPlayer, sim.KindBot} {
		assert.Equal(t, 30, lib.FrameCount(k, sim.ModeIdleAttack))
		assert.Equal(t, 30, lib.FrameCount(k, sim.ModeMoveAttack))
	}
}

func TestSortFrames(t *testing.T) {
	frames := map[string][]string{
		"frame10":    {"j"},
		"frame2":     {"b"},
		"frame1":     {"a"},
		"._frame3":   {"junk"},
		"cover":      {"z"},
		"run_03.png": {"c"},
	}
	assert.Equal(t, []string{"frame1", "frame2", "run_03.png", "frame10", "cover"}, SortFrames(frames))
}

func TestFallbacks(t *testing.T) {
	lib, err := ParseSprites([]byte(`
actors:
  player:
    idle:
      hold: 2
      frames:
        "1": ["i1"]
        "2": ["i2"]
    walk:
      hold: 3
      frames:
        "1": ["w1"]
    run:
      hold: 1
      frames: {}
`))
	require.NoError(t, err)

	tests := []struct {
		mode sim.Mode
		want string
		n    int
	}{
		{sim.ModeIdle, "i1", 4},
		{sim.ModeWalk, "w1", 3},
		{sim.ModeRun, "i1", 4},
		{sim.ModeIdleAttack, "i1", 4},
		{sim.ModeMoveAttack, "w1", 3},
		{sim.ModeDead, "i1", 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.n, lib.FrameCount(sim.KindPlayer, tt.mode), tt.mode.String())
		assert.Equal(t, tt.want, lib.Sprite(sim.KindPlayer, tt.mode, 0, 1)[0], tt.mode.String())
	}

	// Hold stretches each frame; the last frame absorbs overshoot.
	assert.Equal(t, "i1", lib.Sprite(sim.KindPlayer, sim.ModeIdle, 1, 1)[0])
	assert.Equal(t, "i2", lib.Sprite(sim.KindPlayer, sim.ModeIdle, 2, 1)[0])
	assert.Equal(t, "i2", lib.Sprite(sim.KindPlayer, sim.ModeIdle, 99, 1)[0])

	// Kinds with no frames at all resolve to nothing.
	assert.Equal(t, 0, lib.FrameCount(sim.KindBot, sim.ModeIdle))
	assert.Nil(t, lib.Sprite(sim.KindBot, sim.ModeIdle, 0, 1))
}

func TestParseSpritesRejectsUnknownNames(t *testing.T) {
	_, err := ParseSprites([]byte("actors:\n  ghost:\n    idle: {hold: 1}\n"))
	assert.ErrorContains(t, err, "ghost")

	_, err = ParseSprites([]byte("actors:\n  bot:\n    jump: {hold: 1}\n"))
	assert.ErrorContains(t, err, "jump")

	_, err = ParseSprites([]byte("actors: ["))
	assert.Error(t, err)
}

func TestLoadSpritesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprites.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
actors:
  bot:
    idle:
      hold: 5
      frames:
        "1": ["@"]
`), 0o644))

	lib, err := LoadSprites(path)
	require.NoError(t, err)
	assert.Equal(t, 5, lib.FrameCount(sim.KindBot, sim.ModeRun))

	_, err = LoadSprites(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMirror(t *testing.T) {
	got := Mirror(Sprite{" O=>", "/ \\", "(x"})
	assert.Equal(t, Sprite{"<=O ", " / \\", "  x)"}, got)
}
