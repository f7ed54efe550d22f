package rowan

import "github.com/go-gl/mathgl/mgl32"

// Vector is a 3D position, direction or extent in world space.
type Vector = mgl32.Vec3

// Vector2 is a 2D vector used for screen-relative positions and sizes.
type Vector2 = mgl32.Vec2

// ObjectID is the world-unique handle of a GameObject. IDs are allocated
// monotonically by the World and are never reused.
type ObjectID uint32

// NoObject is the zero handle. It never identifies a live object.
const NoObject ObjectID = 0

// ObjectState drives how an update affects a GameObject.
type ObjectState uint8

const (
	ObjectNew     ObjectState = iota // created but not ready for life
	ObjectLoading                    // resolving models, textures and templates
	ObjectActive                     // updating in the world
	ObjectSleep                      // no updates, can wake back up
	ObjectDeath                      // waiting for release, terminal
)

func (s ObjectState) String() string {
	switch s {
	case ObjectNew:
		return "new"
	case ObjectLoading:
		return "loading"
	case ObjectActive:
		return "active"
	case ObjectSleep:
		return "sleep"
	case ObjectDeath:
		return "death"
	default:
		return "unknown"
	}
}

// SceneState tracks which scenes are loaded.
type SceneState uint8

const (
	SceneUnloaded SceneState = iota // not updating
	SceneLoading                    // reading settings and objects
	SceneActive                     // updating
)

func (s SceneState) String() string {
	switch s {
	case SceneUnloaded:
		return "unloaded"
	case SceneLoading:
		return "loading"
	case SceneActive:
		return "active"
	default:
		return "unknown"
	}
}

// ClipType selects the volume used when picking a GameObject.
type ClipType uint8

const (
	ClipNone    ClipType = iota // not pickable
	ClipSphere                  // sphere of radius ClipSize.X() around the position
	ClipAxisBox                 // axis aligned box of extent ClipSize centred on the position
)

func (c ClipType) String() string {
	switch c {
	case ClipSphere:
		return "sphere"
	case ClipAxisBox:
		return "axisbox"
	default:
		return "none"
	}
}

// parseClipType matches the template spelling of a clip type. Matching is by
// substring so "sphere_small" still selects a sphere.
func parseClipType(s string) ClipType {
	switch {
	case containsFold(s, "sphere"):
		return ClipSphere
	case containsFold(s, "axisbox"):
		return ClipAxisBox
	default:
		return ClipNone
	}
}

// InputType identifies the kind of raw input event a callback responds to.
type InputType uint8

const (
	InputNone        InputType = iota // unclassified
	InputKeyDown                      // a keyboard key was pressed
	InputKeyUp                        // a keyboard key was released
	InputMouseDown                    // a mouse button was pressed
	InputMouseUp                      // a mouse button was released
	InputMouseMotion                  // the mouse moved
)

func (t InputType) String() string {
	switch t {
	case InputKeyDown:
		return "keydown"
	case InputKeyUp:
		return "keyup"
	case InputMouseDown:
		return "mousedown"
	case InputMouseUp:
		return "mouseup"
	case InputMouseMotion:
		return "mousemotion"
	default:
		return "none"
	}
}

// isKey reports whether t is a keyboard event type.
func (t InputType) isKey() bool {
	return t == InputKeyDown || t == InputKeyUp
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// TextureCategory groups textures so a TextureManager can evict them together.
type TextureCategory uint8

// TextureCategoryWorld marks textures owned by game objects.
const TextureCategoryWorld TextureCategory = 0

// Model is a borrowed reference to a mesh owned by a ModelManager.
type Model interface {
	Path() string
}

// Texture is a borrowed reference to an image owned by a TextureManager.
type Texture interface {
	Path() string
}

// ModelManager resolves model paths. The returned model stays owned by the
// manager; callers only keep the reference.
type ModelManager interface {
	GetModel(path string) (Model, bool)
}

// TextureManager resolves texture paths within a category.
type TextureManager interface {
	GetTexture(path string, category TextureCategory) (Texture, bool)
}
