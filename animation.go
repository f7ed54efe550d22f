package rowan

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to three float32 fields of a GameObject together.
// Hand it to GameObject.AddTween to have the world drive it, or call Update
// yourself. A group whose target has been destroyed stops without writing.
type TweenGroup struct {
	tweens [3]*gween.Tween
	count  int
	fields [3]*float32
	target *GameObject
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDead() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

func tweenVector(obj *GameObject, v *Vector, to Vector, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: obj}
	for i := range 3 {
		g.tweens[i] = gween.New(v[i], to[i], duration, fn)
		g.fields[i] = &v[i]
	}
	return g
}

// TweenPosition moves obj.Pos to the target over duration seconds.
func TweenPosition(obj *GameObject, to Vector, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenVector(obj, &obj.Pos, to, duration, fn)
}

// TweenClipSize grows or shrinks the picking volume of obj.
func TweenClipSize(obj *GameObject, to Vector, duration float32, fn ease.TweenFunc) *TweenGroup {
	return tweenVector(obj, &obj.ClipSize, to, duration, fn)
}
