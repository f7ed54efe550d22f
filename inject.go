package rowan

import "github.com/hajimehoshi/ebiten/v2"

// Inject queues a raw event. Queued events are dispatched one per Update
// call, like real input arriving on consecutive frames.
func (in *Input) Inject(ev RawEvent) {
	in.injectQueue = append(in.injectQueue, ev)
}

// InjectKey queues a key press or release.
func (in *Input) InjectKey(key ebiten.Key, pressed bool) {
	in.Inject(KeyEvent(key, pressed))
}

// InjectKeyTap queues a press followed by a release of key. Consumes two
// frames.
func (in *Input) InjectKeyTap(key ebiten.Key) {
	in.InjectKey(key, true)
	in.InjectKey(key, false)
}

// InjectMouse queues a button press or release at the given window
// coordinates.
func (in *Input) InjectMouse(button MouseButton, pressed bool, x, y int) {
	in.Inject(MouseEvent(button, pressed, x, y))
}

// InjectMove queues a cursor move to the given window coordinates.
func (in *Input) InjectMove(x, y int) {
	in.Inject(MotionEvent(x, y))
}

// InjectClick queues a left button press followed by a release at the same
// coordinates. Consumes two frames.
func (in *Input) InjectClick(x, y int) {
	in.InjectMouse(MouseButtonLeft, true, x, y)
	in.InjectMouse(MouseButtonLeft, false, x, y)
}

// InjectDrag queues a left button drag: press at (fromX, fromY), frames-2
// interpolated moves, and a release at (toX, toY). Minimum frames is 2.
func (in *Input) InjectDrag(fromX, fromY, toX, toY, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectMouse(MouseButtonLeft, true, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + int(float64(toX-fromX)*t)
		y := fromY + int(float64(toY-fromY)*t)
		in.InjectMove(x, y)
	}
	in.InjectMouse(MouseButtonLeft, false, toX, toY)
}

// Pending returns the number of queued injected events.
func (in *Input) Pending() int {
	return len(in.injectQueue)
}
