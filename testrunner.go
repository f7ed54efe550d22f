package rowan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string `json:"action"`
	Label  string `json:"label,omitempty"`
	Key    string `json:"key,omitempty"`
	Button string `json:"button,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	FromX  int    `json:"fromX,omitempty"`
	FromY  int    `json:"fromY,omitempty"`
	ToX    int    `json:"toX,omitempty"`
	ToY    int    `json:"toY,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// TestRunner replays a scripted sequence of input across frames. Attach it
// to an Engine with SetTestRunner.
//
// Actions: "key" (tap), "keydown", "keyup", "click", "mousedown", "mouseup",
// "move", "drag", "wait", "save" (flush dirty scenes), "screenshot" and "log".
type TestRunner struct {
	steps      []scriptStep
	cursor     int
	waitCount  int
	done       bool
	screenshot func(label string)
}

var keysByName = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		m[strings.ToLower(k.String())] = k
	}
	return m
}()

func parseKeyName(name string) (ebiten.Key, bool) {
	k, ok := keysByName[strings.ToLower(name)]
	return k, ok
}

func parseButtonName(name string) (MouseButton, bool) {
	switch strings.ToLower(name) {
	case "", "left":
		return MouseButtonLeft, true
	case "right":
		return MouseButtonRight, true
	case "middle":
		return MouseButtonMiddle, true
	}
	return 0, false
}

// LoadTestScript parses a JSON input script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "key", "keydown", "keyup":
			if _, ok := parseKeyName(st.Key); !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown key %q", i, st.Key)
			}
		case "mousedown", "mouseup":
			if _, ok := parseButtonName(st.Button); !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown button %q", i, st.Button)
			}
		case "click", "move", "drag", "wait", "save", "screenshot", "log":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether every step has run and its input has been dispatched.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Engine.Update before
// input is dispatched.
func (r *TestRunner) step(in *Input, w *World) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if in.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "key":
		k, _ := parseKeyName(st.Key)
		in.InjectKeyTap(k)
	case "keydown", "keyup":
		k, _ := parseKeyName(st.Key)
		in.InjectKey(k, st.Action == "keydown")
	case "click":
		in.InjectClick(st.X, st.Y)
	case "mousedown", "mouseup":
		b, _ := parseButtonName(st.Button)
		in.InjectMouse(b, st.Action == "mousedown", st.X, st.Y)
	case "move":
		in.InjectMove(st.X, st.Y)
	case "drag":
		in.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "save":
		if w != nil {
			if err := w.Flush(); err != nil {
				w.Log().Write(LogError, LogScript, "Test script save failed: %v", err)
			}
		}
	case "screenshot":
		if r.screenshot != nil {
			r.screenshot(st.Label)
		}
	case "log":
		if w != nil {
			w.Log().Write(LogInfo, LogScript, "%s", st.Label)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}
