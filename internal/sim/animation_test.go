package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectMode(t *testing.T) {
	alive := func(attack AttackState) *Actor {
		a := newActor(1, KindBot, 1, 1)
		a.Attack = attack
		return a
	}
	dead := newActor(2, KindBot, 1, 1)
	dead.Health = 0

	tests := []struct {
		name   string
		actor  *Actor
		motion Motion
		want   Mode
	}{
		{"dead overrides everything", dead, Motion{Speed: 5, Directional: true, Fast: true}, ModeDead},
		{"idle swing", alive(AttackIdle), Motion{}, ModeIdleAttack},
		{"move swing while running", alive(AttackMove), Motion{Speed: 5, Directional: true, Fast: true}, ModeMoveAttack},
		{"run", alive(AttackNone), Motion{Speed: 4, Directional: true, Fast: true}, ModeRun},
		{"walk", alive(AttackNone), Motion{Speed: 2, Directional: true}, ModeWalk},
		{"sliding without intent", alive(AttackNone), Motion{Speed: 2}, ModeIdle},
		{"too slow to walk", alive(AttackNone), Motion{Speed: 0.1, Directional: true, Fast: true}, ModeIdle},
		{"idle", alive(AttackNone), Motion{}, ModeIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectMode(tt.actor, tt.motion))
		})
	}
}

func TestAnimatorLoops(t *testing.T) {
	var an Animator
	var got []int
	for i := 0; i < 5; i++ {
		got = append(got, an.Update(1.0/AnimationFPS, ModeIdle, 3))
	}
	assert.Equal(t, []int{1, 2, 0, 1, 2}, got)
}

func TestAnimatorRestartsOnModeChange(t *testing.T) {
	var an Animator
	an.Update(1.0/AnimationFPS, ModeIdle, 4)
	an.Update(1.0/AnimationFPS, ModeIdle, 4)
	assert.Equal(t, 2, an.Frame())

	assert.Equal(t, 0, an.Update(1.0/AnimationFPS, ModeWalk, 4))
	assert.Equal(t, ModeWalk, an.Mode())
	assert.Equal(t, 1, an.Update(1.0/AnimationFPS, ModeWalk, 4))
}

func TestAnimatorDeadFreezesOnLastFrame(t *testing.T) {
	var an Animator
	an.Update(1.0/AnimationFPS, ModeDead, 3)

	var got []int
	for i := 0; i < 5; i++ {
		got = append(got, an.Update(1.0/AnimationFPS, ModeDead, 3))
	}
	assert.Equal(t, []int{1, 2, 2, 2, 2}, got)
}

func TestAnimatorWithoutFrames(t *testing.T) {
	var an Animator
	assert.Equal(t, 0, an.Update(1, ModeRun, 0))
	assert.Equal(t, 0, an.Update(1, ModeRun, 0))
}

func TestModeNames(t *testing.T) {
	for _, m := range Modes() {
		got, ok := ParseMode(m.String())
		assert.True(t, ok)
		assert.Equal(t, m, got)
	}
	_, ok := ParseMode("jump")
	assert.False(t, ok)
	assert.Equal(t, "move-attack", ModeMoveAttack.String())
}
