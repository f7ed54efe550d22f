package rowan

import (
	"fmt"
	"io"
	"strconv"
)

// Scene is a named group of GameObjects. The scene owns the root objects of
// its trees; children are reached through their parents' handles.
type Scene struct {
	name        string
	path        string
	state       SceneState
	beginLoaded bool
	dirty       bool
	count       int

	world *World
	roots List[ObjectID]
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// SetName renames the scene and marks it dirty.
func (s *Scene) SetName(name string) {
	s.name = name
	s.dirty = true
}

// Path returns the file the scene was loaded from or saved to, or "".
func (s *Scene) Path() string { return s.path }

// State returns the load state.
func (s *Scene) State() SceneState { return s.state }

// BeginLoaded reports whether the scene is made current at startup.
func (s *Scene) BeginLoaded() bool { return s.beginLoaded }

// SetBeginLoaded changes the startup flag and marks the scene dirty.
func (s *Scene) SetBeginLoaded(v bool) {
	s.beginLoaded = v
	s.dirty = true
}

// Dirty reports whether the scene has changes not yet written to disk.
func (s *Scene) Dirty() bool { return s.dirty }

// MarkDirty flags the scene for the next World.Flush.
func (s *Scene) MarkDirty() { s.dirty = true }

// NumObjects returns the number of live objects in the scene, children
// included.
func (s *Scene) NumObjects() int { return s.count }

// NumRoots returns the number of root objects.
func (s *Scene) NumRoots() int { return s.roots.Len() }

// Roots returns the root objects, most recently added first.
func (s *Scene) Roots() []*GameObject {
	out := make([]*GameObject, 0, s.roots.Len())
	for n := s.roots.Head(); n != nil; n = n.Next() {
		if o := s.world.objects[n.Value]; o != nil {
			out = append(out, o)
		}
	}
	return out
}

// Walk visits every live object, roots head first and each tree in preorder,
// until fn returns false.
func (s *Scene) Walk(fn func(*GameObject) bool) {
	for n := s.roots.Head(); n != nil; n = n.Next() {
		if !s.walk(n.Value, fn) {
			return
		}
	}
}

func (s *Scene) walk(id ObjectID, fn func(*GameObject) bool) bool {
	o := s.world.objects[id]
	if o == nil || o.IsDead() {
		return true
	}
	if !fn(o) {
		return false
	}
	for c := o.child; c != NoObject; {
		child := s.world.objects[c]
		if child == nil {
			break
		}
		if !s.walk(c, fn) {
			return false
		}
		c = child.next
	}
	return true
}

// Object returns the live object with the given id if it belongs to s.
func (s *Scene) Object(id ObjectID) *GameObject {
	var found *GameObject
	s.Walk(func(o *GameObject) bool {
		if o.id == id {
			found = o
			return false
		}
		return true
	})
	return found
}

// FindObject returns the first object named name in walk order, ignoring
// case.
func (s *Scene) FindObject(name string) *GameObject {
	h := NewStringHash(name)
	var found *GameObject
	s.Walk(func(o *GameObject) bool {
		if h.Matches(o.Name) {
			found = o
			return false
		}
		return true
	})
	return found
}

func (s *Scene) attachRoot(o *GameObject) {
	o.scene = s
	o.parent = NoObject
	o.next = NoObject
	o.root = s.roots.Insert(o.id)
}

func (s *Scene) detachRoot(o *GameObject) {
	s.roots.Remove(o.root)
	o.root = nil
}

// update advances every object once. The walk is snapshotted first so
// behaviors may create or destroy objects.
func (s *Scene) update(dt float32) {
	var objs []*GameObject
	s.Walk(func(o *GameObject) bool {
		objs = append(objs, o)
		return true
	})
	for _, o := range objs {
		if !o.IsDead() {
			o.update(dt)
		}
	}
}

// GameFile builds the on-disk representation of s.
func (s *Scene) GameFile() *GameFile {
	gf := NewGameFile(WithFs(s.world.fs), WithLog(s.world.log))
	root := gf.AddObject(sceneRootName, nil)
	// An unnamed scene takes its name from the file name when reloaded.
	if s.name != "" {
		gf.AddProperty(root, "name", s.name)
	}
	gf.AddProperty(root, "beginLoaded", strconv.FormatBool(s.beginLoaded))
	// Oldest root first so a reload rebuilds the same head order.
	for n := s.roots.Tail(); n != nil; n = n.Prev() {
		s.addObjectEntry(gf, root, n.Value)
	}
	return gf
}

func (s *Scene) addObjectEntry(gf *GameFile, parent *Object, id ObjectID) {
	o := s.world.objects[id]
	if o == nil || o.IsDead() {
		return
	}
	entry := gf.AddObject(sceneObjectName, parent)
	if o.template != "" {
		gf.AddProperty(entry, "template", o.template)
	}
	// Written even when empty so a cleared name does not fall back to the
	// template's.
	gf.AddProperty(entry, "name", o.Name)
	gf.AddProperty(entry, "pos", formatVector(o.Pos))
	// Always written, "none" included, so the template cannot override a
	// clip volume changed after creation.
	gf.AddProperty(entry, "clipType", o.ClipType.String())
	gf.AddProperty(entry, "clipSize", formatVector(o.ClipSize))

	// Children are linked newest first; write them oldest first.
	var kids []ObjectID
	for c := o.child; c != NoObject; {
		child := s.world.objects[c]
		if child == nil {
			break
		}
		kids = append(kids, c)
		c = child.next
	}
	for i := len(kids) - 1; i >= 0; i-- {
		s.addObjectEntry(gf, entry, kids[i])
	}
}

// Serialise writes s in scene file format.
func (s *Scene) Serialise(w io.Writer) error {
	gf := s.GameFile()
	defer gf.Unload()
	return gf.Serialise(w)
}

func formatVector(v Vector) string {
	return fmt.Sprintf("%g, %g, %g", v[0], v[1], v[2])
}
