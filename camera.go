package rowan

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

// Camera describes the perspective view the game renders with, so that
// window coordinates can be turned into pick rays.
type Camera struct {
	// Pos is the eye position in world space.
	Pos Vector
	// Dir is the view direction. It need not be normalised.
	Dir Vector
	// Up is the world up vector.
	Up Vector
	// FovY is the vertical field of view in degrees.
	FovY float32
	// Near and Far bound the pick ray.
	Near, Far float32
	// Width and Height are the viewport size in pixels.
	Width, Height int

	follow       ObjectID
	followOffset Vector
	followLerp   float32

	scroll *TweenGroup
}

// NewCamera returns a camera at the origin looking down -Z with a 60 degree
// field of view.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Dir:    Vector{0, 0, -1},
		Up:     Vector{0, 1, 0},
		FovY:   60,
		Near:   0.1,
		Far:    1000,
		Width:  width,
		Height: height,
	}
}

// View returns the world to eye matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Pos, c.Pos.Add(c.Dir), c.Up)
}

// Projection returns the perspective matrix for the viewport.
func (c *Camera) Projection() mgl32.Mat4 {
	aspect := float32(1)
	if c.Height > 0 {
		aspect = float32(c.Width) / float32(c.Height)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// ScreenRay returns the segment from the near plane to the far plane under
// the window position (x, y). Window y grows downwards.
func (c *Camera) ScreenRay(x, y float32) (from, to Vector, err error) {
	view, proj := c.View(), c.Projection()
	wy := float32(c.Height) - y
	from, err = mgl32.UnProject(Vector{x, wy, 0}, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return Vector{}, Vector{}, err
	}
	to, err = mgl32.UnProject(Vector{x, wy, 1}, view, proj, 0, 0, c.Width, c.Height)
	if err != nil {
		return Vector{}, Vector{}, err
	}
	return from, to, nil
}

// WorldToScreen projects p to window coordinates.
func (c *Camera) WorldToScreen(p Vector) Vector2 {
	win := mgl32.Project(p, c.View(), c.Projection(), 0, 0, c.Width, c.Height)
	return Vector2{win.X(), float32(c.Height) - win.Y()}
}

// Follow makes the camera track an object, keeping offset from it. A lerp of
// 1 snaps every frame; lower values trail behind.
func (c *Camera) Follow(id ObjectID, offset Vector, lerp float32) {
	c.follow = id
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking.
func (c *Camera) Unfollow() {
	c.follow = NoObject
}

// ScrollTo moves the eye to pos over duration seconds. Following is paused
// until the move ends.
func (c *Camera) ScrollTo(pos Vector, duration float32, fn ease.TweenFunc) {
	c.scroll = tweenVector(nil, &c.Pos, pos, duration, fn)
}

// update advances scrolling and following. An object that has died or been
// released ends the follow.
func (c *Camera) update(dt float32, w *World) {
	if c.scroll != nil {
		c.scroll.Update(dt)
		if c.scroll.Done {
			c.scroll = nil
		}
		return
	}
	if c.follow == NoObject {
		return
	}
	o := w.GetGameObject(c.follow)
	if o == nil || o.IsDead() {
		c.follow = NoObject
		return
	}
	want := o.Pos.Add(c.followOffset)
	c.Pos = c.Pos.Add(want.Sub(c.Pos).Mul(c.followLerp))
}
