package brawl

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-brawl/internal/sim"
)

//go:embed sprites.yaml
var defaultSprites []byte

// YAMLSprites is the on-disk layout of a sprite file.
type YAMLSprites struct {
	Actors map[string]map[string]YAMLFrameSet `yaml:"actors"`
}

// YAMLFrameSet holds the frames of one mode keyed by frame name.
type YAMLFrameSet struct {
	Hold   int                 `yaml:"hold"`
	Frames map[string][]string `yaml:"frames"`
}

// Sprite is one frame, one string per row.
type Sprite []string

// FrameSet is an ordered animation for one mode.
type FrameSet struct {
	Hold   int
	Frames []Sprite
}

// Ticks is the animation length in 60 fps ticks.
func (f FrameSet) Ticks() int { return len(f.Frames) * f.Hold }

// SpriteLibrary resolves sprites by actor kind and animation mode.
type SpriteLibrary struct {
	sets map[sim.Kind]map[sim.Mode]FrameSet
}

// fallbacks is consulted when a mode has no frames.
var fallbacks = map[sim.Mode]sim.Mode{
	sim.ModeWalk:       sim.ModeIdle,
	sim.ModeRun:        sim.ModeIdle,
	sim.ModeIdleAttack: sim.ModeIdle,
	sim.ModeDead:       sim.ModeIdle,
	sim.ModeMoveAttack: sim.ModeWalk,
}

// ParseSprites parses a sprite file.
func ParseSprites(data []byte) (*SpriteLibrary, error) {
	var ys YAMLSprites
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return nil, fmt.Errorf("sprites: yaml unmarshal: %w", err)
	}

	lib := &SpriteLibrary{sets: make(map[sim.Kind]map[sim.Mode]FrameSet)}
	for kindName, modes := range ys.Actors {
		kind, ok := parseKind(kindName)
		if !ok {
			return nil, fmt.Errorf("sprites: unknown actor kind %q", kindName)
		}
		lib.sets[kind] = make(map[sim.Mode]FrameSet)
		for modeName, fs := range modes {
			mode, ok := sim.ParseMode(modeName)
			if !ok {
				return nil, fmt.Errorf("sprites: %s: unknown mode %q", kindName, modeName)
			}
			set := FrameSet{Hold: max(1, fs.Hold)}
			for _, name := range SortFrames(fs.Frames) {
				set.Frames = append(set.Frames, Sprite(fs.Frames[name]))
			}
			lib.sets[kind][mode] = set
		}
	}
	return lib, nil
}

// LoadSprites reads a sprite file, or the built-in set when path is empty.
func LoadSprites(path string) (*SpriteLibrary, error) {
	if path == "" {
		return ParseSprites(defaultSprites)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sprites: read %s: %w", path, err)
	}
	return ParseSprites(data)
}

func parseKind(name string) (sim.Kind, bool) {
	switch name {
	case sim.KindPlayer.String():
		return sim.KindPlayer, true
	case sim.KindBot.String():
		return sim.KindBot, true
	}
	return 0, false
}

// SortFrames orders frame names by their numeric index. Names starting with
// "._" are skipped; names without digits sort last, by name.
func SortFrames(frames map[string][]string) []string {
	names := make([]string, 0, len(frames))
	for name := range frames {
		if strings.HasPrefix(name, "._") {
			continue
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, aok := frameIndex(names[i])
		b, bok := frameIndex(names[j])
		switch {
		case aok && bok && a != b:
			return a < b
		case aok != bok:
			return aok
		}
		return names[i] < names[j]
	})
	return names
}

// frameIndex extracts the last run of digits in name.
func frameIndex(name string) (int, bool) {
	end := strings.LastIndexFunc(name, unicode.IsDigit)
	if end < 0 {
		return 0, false
	}
	start := end
	for start > 0 && unicode.IsDigit(rune(name[start-1])) {
		start--
	}
	n, err := strconv.Atoi(name[start : end+1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// resolve walks the fallback chain until a non-empty set is found.
func (l *SpriteLibrary) resolve(k sim.Kind, m sim.Mode) (FrameSet, bool) {
	for range len(fallbacks) + 1 {
		if set, ok := l.sets[k][m]; ok && len(set.Frames) > 0 {
			return set, true
		}
		next, ok := fallbacks[m]
		if !ok {
			break
		}
		m = next
	}
	return FrameSet{}, false
}

// FrameCount returns the animation length in ticks, or 0 if nothing resolves.
func (l *SpriteLibrary) FrameCount(k sim.Kind, m sim.Mode) int {
	set, ok := l.resolve(k, m)
	if !ok {
		return 0
	}
	return set.Ticks()
}

// Sprite returns the frame for an animation tick, mirrored when facing left.
func (l *SpriteLibrary) Sprite(k sim.Kind, m sim.Mode, tick, facing int) Sprite {
	set, ok := l.resolve(k, m)
	if !ok {
		return nil
	}
	idx := min(max(tick/set.Hold, 0), len(set.Frames)-1)
	s := set.Frames[idx]
	if facing < 0 {
		return Mirror(s)
	}
	return s
}

var mirrored = map[rune]rune{
	'/': '\\', '\\': '/',
	'<': '>', '>': '<',
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
}

// Mirror flips a sprite horizontally, swapping directional glyphs.
func Mirror(s Sprite) Sprite {
	width := 0
	for _, row := range s {
		width = max(width, len([]rune(row)))
	}
	out := make(Sprite, len(s))
	for i, row := range s {
		rs := []rune(row)
		flipped := make([]rune, width)
		for j := range flipped {
			flipped[j] = ' '
		}
		for j, r := range rs {
			if m, ok := mirrored[r]; ok {
				r = m
			}
			flipped[width-1-j] = r
		}
		out[i] = string(flipped)
	}
	return out
}
