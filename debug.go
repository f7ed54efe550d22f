package rowan

import "fmt"

// debugMaxTreeDepth is the object tree depth above which AttachChild warns.
const debugMaxTreeDepth = 32

// debugMaxChildCount is the child count above which AttachChild warns.
const debugMaxChildCount = 1000

// debugStats summarises the world for the on-screen debug overlay.
type debugStats struct {
	scenes  int
	objects int
	dying   int
	current string
}

func (w *World) debugStats() debugStats {
	st := debugStats{
		scenes:  w.scenes.Len(),
		objects: len(w.objects),
		dying:   len(w.dying),
	}
	if w.current != nil {
		st.current = w.current.name
	}
	return st
}

func (s debugStats) String() string {
	return fmt.Sprintf("scene: %s | scenes: %d | objects: %d | dying: %d",
		s.current, s.scenes, s.objects, s.dying)
}

func (w *World) debugCheckTreeDepth(o *GameObject) {
	depth := 0
	for p := o; p != nil; p = w.objects[p.parent] {
		depth++
		if p.parent == NoObject {
			break
		}
	}
	if depth > debugMaxTreeDepth {
		w.log.Write(LogWarning, LogEngine, "Tree depth %d exceeds %d (object %q)", depth, debugMaxTreeDepth, o.Name)
	}
}

func (w *World) debugCheckChildCount(o *GameObject) {
	n := 0
	for c := o.child; c != NoObject; {
		child := w.objects[c]
		if child == nil {
			break
		}
		n++
		c = child.next
	}
	if n > debugMaxChildCount {
		w.log.Write(LogWarning, LogEngine, "Object %q has %d children (threshold %d)", o.Name, n, debugMaxChildCount)
	}
}
