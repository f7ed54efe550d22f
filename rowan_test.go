package rowan

import "testing"

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"object new", ObjectNew.String(), "new"},
		{"object loading", ObjectLoading.String(), "loading"},
		{"object active", ObjectActive.String(), "active"},
		{"object sleep", ObjectSleep.String(), "sleep"},
		{"object death", ObjectDeath.String(), "death"},
		{"object unknown", ObjectState(99).String(), "unknown"},
		{"scene unloaded", SceneUnloaded.String(), "unloaded"},
		{"scene active", SceneActive.String(), "active"},
		{"clip none", ClipNone.String(), "none"},
		{"clip sphere", ClipSphere.String(), "sphere"},
		{"clip box", ClipAxisBox.String(), "axisbox"},
		{"input none", InputNone.String(), "none"},
		{"input keydown", InputKeyDown.String(), "keydown"},
		{"input motion", InputMouseMotion.String(), "mousemotion"},
		{"button right", MouseButtonRight.String(), "right"},
		{"button unknown", MouseButton(7).String(), "unknown"},
		{"category game", LogGame.String(), "game"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestParseClipType(t *testing.T) {
	tests := []struct {
		in   string
		want ClipType
	}{
		{"sphere", ClipSphere},
		{"Sphere", ClipSphere},
		{"sphere_small", ClipSphere},
		{"axisbox", ClipAxisBox},
		{"AXISBOX", ClipAxisBox},
		{"", ClipNone},
		{"cube", ClipNone},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseClipType(tt.in); got != tt.want {
				t.Errorf("parseClipType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestInputTypeIsKey(t *testing.T) {
	for _, typ := range []InputType{InputKeyDown, InputKeyUp} {
		if !typ.isKey() {
			t.Errorf("%v should be a key type", typ)
		}
	}
	for _, typ := range []InputType{InputNone, InputMouseDown, InputMouseUp, InputMouseMotion} {
		if typ.isKey() {
			t.Errorf("%v should not be a key type", typ)
		}
	}
}
