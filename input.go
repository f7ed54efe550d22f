package rowan

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// MaxDepressedKeys is how many keys can be tracked as held at once.
const MaxDepressedKeys = 8

// KeyNone marks "no key" in LastKey results.
const KeyNone ebiten.Key = -1

// InputCallback is called when a registered input happens. pressed is true for
// key and button downs, false for ups; for mouse motion it reports whether any
// button is held. The return value is informational: dispatch never stops
// early because a callback returned false.
type InputCallback func(pressed bool) bool

// RawEvent is a single platform input event fed to Input.Dispatch.
type RawEvent struct {
	Type   InputType
	Key    ebiten.Key  // key events only
	Button MouseButton // mouse button events only
	X, Y   int         // cursor position, mouse events only
}

// KeyEvent builds a key press or release event.
func KeyEvent(key ebiten.Key, pressed bool) RawEvent {
	typ := InputKeyUp
	if pressed {
		typ = InputKeyDown
	}
	return RawEvent{Type: typ, Key: key}
}

// MouseEvent builds a button press or release event at a cursor position.
func MouseEvent(button MouseButton, pressed bool, x, y int) RawEvent {
	typ := InputMouseUp
	if pressed {
		typ = InputMouseDown
	}
	return RawEvent{Type: typ, Button: button, X: x, Y: y}
}

// MotionEvent builds a cursor motion event.
func MotionEvent(x, y int) RawEvent {
	return RawEvent{Type: InputMouseMotion, X: x, Y: y}
}

type inputEvent struct {
	fn      InputCallback
	typ     InputType
	mouse   bool
	key     ebiten.Key
	button  MouseButton
	oneShot bool
	removed bool
	node    *ListNode[*inputEvent]
}

func (e *inputEvent) matches(ev RawEvent) bool {
	if e.typ != ev.Type {
		return false
	}
	switch ev.Type {
	case InputKeyDown, InputKeyUp:
		return !e.mouse && e.key == ev.Key
	case InputMouseDown, InputMouseUp:
		return e.mouse && e.button == ev.Button
	case InputMouseMotion:
		return e.mouse
	}
	return false
}

// CallbackHandle allows removing a registered input callback.
type CallbackHandle struct {
	ev *inputEvent
	in *Input
}

// Remove unregisters the callback so it no longer fires. Removing twice, or
// removing a one-shot that already fired, does nothing.
func (h CallbackHandle) Remove() {
	if h.in == nil || h.ev == nil {
		return
	}
	h.in.remove(h.ev)
}

// Input is the registry of input callbacks plus a cache of the current input
// state. Callbacks registered later are dispatched first.
type Input struct {
	log    *Log
	events List[*inputEvent]
	alpha  *inputEvent

	injectQueue []RawEvent
	keyBuf      []ebiten.Key

	depressed   [MaxDepressedKeys]ebiten.Key
	lastPress   ebiten.Key
	lastRelease ebiten.Key
	buttons     [3]bool
	mouseX      int
	mouseY      int
	screenW     int
	screenH     int
	focus       bool
	fullscreen  bool
}

// NewInput returns an empty registry. A nil log discards diagnostics.
func NewInput(log *Log) *Input {
	if log == nil {
		log = NewNopLog()
	}
	in := &Input{
		log:         log,
		lastPress:   KeyNone,
		lastRelease: KeyNone,
		focus:       true,
	}
	for i := range in.depressed {
		in.depressed[i] = KeyNone
	}
	return in
}

// Startup records whether the window is fullscreen. A fullscreen window keeps
// focus when the cursor leaves it.
func (in *Input) Startup(fullscreen bool) {
	in.fullscreen = fullscreen
}

// Shutdown drops every registration and pending injected event.
func (in *Input) Shutdown() {
	for n := in.events.Head(); n != nil; n = n.Next() {
		n.Value.removed = true
	}
	in.events.Clear()
	if in.alpha != nil {
		in.alpha.removed = true
		in.alpha = nil
	}
	in.injectQueue = nil
}

func (in *Input) register(e *inputEvent) CallbackHandle {
	if e.fn == nil {
		panic("rowan: cannot register nil input callback")
	}
	e.node = in.events.Insert(e)
	return CallbackHandle{ev: e, in: in}
}

// RegisterKeyCallback calls fn when key produces an event of type typ
// (InputKeyDown or InputKeyUp). A one-shot callback is removed after it fires.
func (in *Input) RegisterKeyCallback(fn InputCallback, key ebiten.Key, typ InputType, oneShot bool) CallbackHandle {
	return in.register(&inputEvent{fn: fn, typ: typ, key: key, oneShot: oneShot})
}

// RegisterMouseCallback calls fn when button produces an event of type typ.
// For InputMouseMotion the button is ignored and fn runs on every move.
func (in *Input) RegisterMouseCallback(fn InputCallback, button MouseButton, typ InputType, oneShot bool) CallbackHandle {
	return in.register(&inputEvent{fn: fn, typ: typ, mouse: true, button: button, oneShot: oneShot})
}

// RegisterAlphaKeyCallback sets the single catch-all callback for letter and
// digit keys. Registering again replaces the previous callback. Use LastKey to
// find out which key fired it.
func (in *Input) RegisterAlphaKeyCallback(fn InputCallback, typ InputType, oneShot bool) CallbackHandle {
	if fn == nil {
		panic("rowan: cannot register nil input callback")
	}
	if in.alpha != nil {
		in.alpha.removed = true
	}
	in.alpha = &inputEvent{fn: fn, typ: typ, key: KeyNone, oneShot: oneShot}
	return CallbackHandle{ev: in.alpha, in: in}
}

func (in *Input) remove(e *inputEvent) {
	if e.removed {
		return
	}
	e.removed = true
	if e == in.alpha {
		in.alpha = nil
		return
	}
	in.events.Remove(e.node)
}

// NumCallbacks returns the number of keyed and mouse registrations, not
// counting the alphanumeric slot.
func (in *Input) NumCallbacks() int {
	return in.events.Len()
}

// Dispatch updates the cached input state from ev and fires every matching
// callback, most recently registered first, then the alphanumeric slot when a
// letter or digit key matches its type. Every match fires whatever earlier
// callbacks return. It returns the number of callbacks fired.
func (in *Input) Dispatch(ev RawEvent) int {
	pressed := in.record(ev)

	var matched []*inputEvent
	for n := in.events.Head(); n != nil; n = n.Next() {
		if n.Value.matches(ev) {
			matched = append(matched, n.Value)
		}
	}
	if in.alpha != nil && ev.Type.isKey() && in.alpha.typ == ev.Type && isAlphaNumeric(ev.Key) {
		matched = append(matched, in.alpha)
	}

	fired := 0
	for _, e := range matched {
		// An earlier callback may have removed this one.
		if e.removed {
			continue
		}
		e.fn(pressed)
		fired++
		if e.oneShot {
			in.remove(e)
		}
	}
	return fired
}

// record folds ev into the cached state and returns the activation state
// passed to callbacks.
func (in *Input) record(ev RawEvent) bool {
	switch ev.Type {
	case InputKeyDown:
		in.lastPress = ev.Key
		in.pressKey(ev.Key)
		return true
	case InputKeyUp:
		in.lastRelease = ev.Key
		in.releaseKey(ev.Key)
		return false
	case InputMouseDown:
		in.setButton(ev.Button, true)
		in.mouseX, in.mouseY = ev.X, ev.Y
		return true
	case InputMouseUp:
		in.setButton(ev.Button, false)
		in.mouseX, in.mouseY = ev.X, ev.Y
		return false
	case InputMouseMotion:
		in.mouseX, in.mouseY = ev.X, ev.Y
		return in.buttons[MouseButtonLeft] || in.buttons[MouseButtonRight] || in.buttons[MouseButtonMiddle]
	}
	return false
}

func (in *Input) setButton(b MouseButton, down bool) {
	if int(b) < len(in.buttons) {
		in.buttons[b] = down
	}
}

func (in *Input) pressKey(k ebiten.Key) {
	free := -1
	for i, d := range in.depressed {
		if d == k {
			return
		}
		if d == KeyNone && free < 0 {
			free = i
		}
	}
	if free < 0 {
		in.log.WriteOnce(LogWarning, LogEngine, "More than %d keys held at once, ignoring %s", MaxDepressedKeys, k)
		return
	}
	in.depressed[free] = k
}

func (in *Input) releaseKey(k ebiten.Key) {
	for i, d := range in.depressed {
		if d == k {
			in.depressed[i] = KeyNone
		}
	}
}

// IsKeyDepressed reports whether k is currently held.
func (in *Input) IsKeyDepressed(k ebiten.Key) bool {
	for _, d := range in.depressed {
		if d == k {
			return true
		}
	}
	return false
}

// IsMouseButtonDown reports whether b is currently held.
func (in *Input) IsMouseButtonDown(b MouseButton) bool {
	return int(b) < len(in.buttons) && in.buttons[b]
}

// LastKey returns the last key pressed, or released when pressed is false.
// KeyNone means no such key has been seen.
func (in *Input) LastKey(pressed bool) ebiten.Key {
	if pressed {
		return in.lastPress
	}
	return in.lastRelease
}

// MousePos returns the cursor position in window pixels.
func (in *Input) MousePos() Vector2 {
	return Vector2{float32(in.mouseX), float32(in.mouseY)}
}

// SetScreenSize sets the window size used by MousePosRelative.
func (in *Input) SetScreenSize(w, h int) {
	in.screenW, in.screenH = w, h
}

// MousePosRelative returns the cursor position scaled to 0..1 of the window.
func (in *Input) MousePosRelative() Vector2 {
	if in.screenW <= 0 || in.screenH <= 0 {
		return Vector2{}
	}
	return Vector2{float32(in.mouseX) / float32(in.screenW), float32(in.mouseY) / float32(in.screenH)}
}

// SetFocus records whether the app has OS focus. A fullscreen app never
// loses focus.
func (in *Input) SetFocus(focus bool) {
	if in.fullscreen {
		focus = true
	}
	in.focus = focus
}

// HasFocus reports whether the app has OS focus.
func (in *Input) HasFocus() bool {
	return in.focus
}

// Update dispatches the next injected event, if any. Injected events are
// consumed one per frame so sequences such as a click span two frames.
func (in *Input) Update() {
	if len(in.injectQueue) == 0 {
		return
	}
	ev := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]
	in.Dispatch(ev)
}

func isAlphaNumeric(k ebiten.Key) bool {
	return (k >= ebiten.KeyA && k <= ebiten.KeyZ) || (k >= ebiten.KeyDigit0 && k <= ebiten.KeyDigit9)
}
