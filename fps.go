package rowan

import "fmt"

// fpsRefresh is how often, in seconds, the overlay rate text is rebuilt.
const fpsRefresh = 0.5

// fpsCounter keeps the frame and tick rate text shown by the debug overlay.
type fpsCounter struct {
	elapsed float32
	text    string
}

func (c *fpsCounter) update(dt float32, fps, tps float64) {
	c.elapsed += dt
	if c.text != "" && c.elapsed < fpsRefresh {
		return
	}
	c.elapsed = 0
	c.text = fmt.Sprintf("FPS: %.1f TPS: %.1f", fps, tps)
}

func (c *fpsCounter) String() string { return c.text }
