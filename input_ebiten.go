package rowan

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var ebitenButtons = [...]struct {
	button MouseButton
	eb     ebiten.MouseButton
}{
	{MouseButtonLeft, ebiten.MouseButtonLeft},
	{MouseButtonRight, ebiten.MouseButtonRight},
	{MouseButtonMiddle, ebiten.MouseButtonMiddle},
}

// PollEbiten turns this tick's ebiten input changes into RawEvents and
// dispatches them: focus, key presses then releases, cursor motion, then
// mouse buttons. It must be called from ebiten's Update. It returns the number
// of callbacks fired.
func (in *Input) PollEbiten() int {
	in.SetFocus(ebiten.IsFocused())

	fired := 0
	in.keyBuf = inpututil.AppendJustPressedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		fired += in.Dispatch(KeyEvent(k, true))
	}
	in.keyBuf = inpututil.AppendJustReleasedKeys(in.keyBuf[:0])
	for _, k := range in.keyBuf {
		fired += in.Dispatch(KeyEvent(k, false))
	}

	x, y := ebiten.CursorPosition()
	if x != in.mouseX || y != in.mouseY {
		fired += in.Dispatch(MotionEvent(x, y))
	}

	for _, b := range ebitenButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			fired += in.Dispatch(MouseEvent(b.button, true, x, y))
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			fired += in.Dispatch(MouseEvent(b.button, false, x, y))
		}
	}
	return fired
}
