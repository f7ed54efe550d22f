package rowan

// DefaultObjectName is the name given to objects created without a template.
const DefaultObjectName = "NEW_GAME_OBJECT"

// DefaultObjectPos is where objects created without a template start.
var DefaultObjectPos = Vector{0, 0, -20}

// Behavior is per-frame game logic attached to a GameObject. It runs only
// while the object is Active.
type Behavior func(obj *GameObject, dt float32)

// GameObject is an entity in a Scene. Objects live in the World's arena and
// refer to each other by ObjectID, so a destroyed object can never be reached
// through a stale link.
type GameObject struct {
	// Name is a human-readable label, not required to be unique.
	Name string
	// Pos is the world-space position.
	Pos Vector
	// ClipType selects the picking volume.
	ClipType ClipType
	// ClipSize is the sphere radius (X) or box extent.
	ClipSize Vector
	// OnUpdate runs once per frame while the object is Active.
	OnUpdate Behavior
	// UserData is an arbitrary payload for game code.
	UserData any

	id       ObjectID
	template string
	state    ObjectState
	scene    *Scene
	lifetime float32

	// Tree links are handles into the World arena.
	parent ObjectID
	child  ObjectID
	next   ObjectID
	root   *ListNode[ObjectID] // node in scene.roots while a root

	model   Model
	texture Texture
	tweens  []*TweenGroup
}

// ID returns the world-unique handle of the object.
func (o *GameObject) ID() ObjectID { return o.id }

// Template returns the template path the object was created from, or "".
func (o *GameObject) Template() string { return o.template }

// State returns the lifecycle state.
func (o *GameObject) State() ObjectState { return o.state }

// Scene returns the owning scene.
func (o *GameObject) Scene() *Scene { return o.scene }

// Lifetime returns the seconds spent Active.
func (o *GameObject) Lifetime() float32 { return o.lifetime }

// Parent returns the parent handle, NoObject for a scene root.
func (o *GameObject) Parent() ObjectID { return o.parent }

// FirstChild returns the most recently attached child, or NoObject.
func (o *GameObject) FirstChild() ObjectID { return o.child }

// NextSibling returns the next sibling handle, or NoObject.
func (o *GameObject) NextSibling() ObjectID { return o.next }

// Model returns the borrowed model reference, or nil.
func (o *GameObject) Model() Model { return o.model }

// Texture returns the borrowed texture reference, or nil.
func (o *GameObject) Texture() Texture { return o.texture }

// IsActive reports whether the object is updating.
func (o *GameObject) IsActive() bool { return o.state == ObjectActive }

// IsDead reports whether the object has been destroyed.
func (o *GameObject) IsDead() bool { return o.state == ObjectDeath }

// SetSleeping stops updates on an Active object. Other states are left alone.
func (o *GameObject) SetSleeping() bool {
	if o.state != ObjectActive {
		return false
	}
	o.state = ObjectSleep
	return true
}

// SetActive wakes a sleeping object or finishes loading one. A new object
// only advances to Loading, so it still passes through its first update
// before going live. A dead object stays dead.
func (o *GameObject) SetActive() bool {
	switch o.state {
	case ObjectSleep, ObjectLoading:
		o.state = ObjectActive
		return true
	case ObjectNew:
		o.state = ObjectLoading
		return true
	}
	return false
}

// AddTween makes the object drive g every frame it is Active. Finished
// groups are dropped automatically.
func (o *GameObject) AddTween(g *TweenGroup) {
	if g == nil {
		panic("rowan: cannot add nil tween group")
	}
	o.tweens = append(o.tweens, g)
}

// update advances the object by one frame.
func (o *GameObject) update(dt float32) {
	switch o.state {
	case ObjectLoading:
		// Models and textures resolve synchronously during creation, so a
		// loading object is ready on its first frame.
		o.state = ObjectActive
	case ObjectActive:
		o.lifetime += dt
		o.updateTweens(dt)
		if o.OnUpdate != nil {
			o.OnUpdate(o, dt)
		}
	}
}

func (o *GameObject) updateTweens(dt float32) {
	live := o.tweens[:0]
	for _, g := range o.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(o.tweens); i++ {
		o.tweens[i] = nil
	}
	o.tweens = live
}
