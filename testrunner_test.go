package rowan

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "key", "key": "Space"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "log", "label": "after-click"}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "key" || runner.steps[0].Key != "Space" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "dance"}]}`},
		{"unknown key", `{"steps": [{"action": "key", "key": "NoSuchKey"}]}`},
		{"unknown button", `{"steps": [{"action": "mousedown", "button": "fourth"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadTestScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseKeyName(t *testing.T) {
	tests := []struct {
		name string
		want ebiten.Key
	}{
		{"A", ebiten.KeyA},
		{"space", ebiten.KeySpace},
		{"Escape", ebiten.KeyEscape},
		{"digit1", ebiten.KeyDigit1},
	}
	for _, tt := range tests {
		got, ok := parseKeyName(tt.name)
		if !ok || got != tt.want {
			t.Errorf("parseKeyName(%q) = %v, %v; want %v", tt.name, got, ok, tt.want)
		}
	}
}

func TestRunnerStep_Click(t *testing.T) {
	in := NewInput(nil)
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}

	// First step call: click queues press+release (2 events).
	runner.step(in, nil)
	if in.Pending() != 2 {
		t.Fatalf("expected 2 queued events, got %d", in.Pending())
	}
	// Not done while injections are pending.
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	in.Update()
	in.Update()

	runner.step(in, nil)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	in := NewInput(nil)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "keydown", "key": "Enter"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	// Frame 1: execute wait (waitCount becomes 2).
	runner.step(in, nil)
	// Frames 2 and 3: count down.
	runner.step(in, nil)
	runner.step(in, nil)
	if in.Pending() != 0 || runner.Done() {
		t.Fatal("keydown should not run during the wait")
	}

	// Frame 4: keydown queued.
	runner.step(in, nil)
	if in.Pending() != 1 {
		t.Fatalf("expected keydown queued, got %d events", in.Pending())
	}
	in.Update()
	if !in.IsKeyDepressed(ebiten.KeyEnter) {
		t.Error("Enter should be held")
	}
	runner.step(in, nil)
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerStep_Drag(t *testing.T) {
	in := NewInput(nil)
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "drag", "fromX": 10, "fromY": 10, "toX": 200, "toY": 200, "frames": 4}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(in, nil)
	if in.Pending() != 4 {
		t.Fatalf("expected 4 queued events for drag, got %d", in.Pending())
	}
}

func TestRunnerWaitsForInjectQueue(t *testing.T) {
	in := NewInput(nil)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "move", "x": 5, "y": 5}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(in, nil)
	runner.step(in, nil)
	if runner.cursor != 1 {
		t.Errorf("cursor should still be 1, got %d", runner.cursor)
	}

	in.Update()
	in.Update()
	runner.step(in, nil)
	if in.Pending() != 1 {
		t.Errorf("move should be queued, pending = %d", in.Pending())
	}
}

func TestRunnerSaveFlushesWorld(t *testing.T) {
	w, fs := newTestWorld(t, nil)
	s := w.AddScene("scripted")
	w.CreateObject("", s)

	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "save"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.step(NewInput(nil), w)

	if s.Dirty() {
		t.Error("save step should flush dirty scenes")
	}
	if _, err := fs.Stat("scenes/scripted.scn"); err != nil {
		t.Errorf("scene file not written: %v", err)
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}
