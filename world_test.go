package rowan

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
)

type fakeResource string

func (r fakeResource) Path() string { return string(r) }

// fakeModels resolves only the paths it lists.
type fakeModels map[string]bool

func (m fakeModels) GetModel(path string) (Model, bool) {
	if m[path] {
		return fakeResource(path), true
	}
	return nil, false
}

type fakeTextures map[string]bool

func (m fakeTextures) GetTexture(path string, _ TextureCategory) (Texture, bool) {
	if m[path] {
		return fakeResource(path), true
	}
	return nil, false
}

func newTestWorld(t *testing.T, files map[string]string) (*World, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, data := range files {
		if err := afero.WriteFile(fs, name, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	w := NewWorld(WorldConfig{
		Fs:           fs,
		Models:       fakeModels{"ship.mdl": true},
		Textures:     fakeTextures{"ship.png": true},
		TemplatePath: "templates",
		ScenePath:    "scenes",
	})
	return w, fs
}

const shipTemplate = `gameObject
{
	name : ship
	model : ship.mdl
	texture : ship.png
	clipType : sphere
	clipSize : 2, 2, 2
	pos : 1, 2, 3
}
`

// --- CreateObject ---

func TestCreateObjectWithoutSceneFails(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	obj, err := w.CreateObject("", nil)
	if obj != nil {
		t.Error("expected no object")
	}
	if !errors.Is(err, ErrNoScene) {
		t.Errorf("err = %v, want ErrNoScene", err)
	}
}

func TestCreateDefaultObject(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	s := w.AddScene("main")

	obj, err := w.CreateObject("", nil)
	if err != nil {
		t.Fatalf("CreateObject: %v", err)
	}
	if obj.Name != DefaultObjectName {
		t.Errorf("Name = %q, want %q", obj.Name, DefaultObjectName)
	}
	if obj.Pos != DefaultObjectPos {
		t.Errorf("Pos = %v, want %v", obj.Pos, DefaultObjectPos)
	}
	if obj.State() != ObjectLoading {
		t.Errorf("State = %v, want loading", obj.State())
	}
	if obj.Scene() != s || s.NumObjects() != 1 || s.NumRoots() != 1 {
		t.Error("object should be a root of the current scene")
	}
	if w.GetGameObject(obj.ID()) != obj {
		t.Error("GetGameObject should find the new object")
	}
	if !s.Dirty() {
		t.Error("creating an object should mark the scene dirty")
	}
}

func TestCreateObjectFromTemplate(t *testing.T) {
	w, _ := newTestWorld(t, map[string]string{"templates/ship.tmp": shipTemplate})
	w.AddScene("main")

	obj, err := w.CreateObject("ship", nil)
	if err != nil {
		t.Fatalf("CreateObject: %v", err)
	}
	if obj.Name != "ship" {
		t.Errorf("Name = %q, want ship", obj.Name)
	}
	if obj.ClipType != ClipSphere || obj.ClipSize != (Vector{2, 2, 2}) {
		t.Errorf("clip = %v %v, want sphere [2 2 2]", obj.ClipType, obj.ClipSize)
	}
	if obj.Pos != (Vector{1, 2, 3}) {
		t.Errorf("Pos = %v, want [1 2 3]", obj.Pos)
	}
	if obj.Model() == nil || obj.Model().Path() != "ship.mdl" {
		t.Error("model should be resolved")
	}
	if obj.Texture() == nil || obj.Texture().Path() != "ship.png" {
		t.Error("texture should be resolved")
	}
	if obj.Template() != "ship" {
		t.Errorf("Template = %q, want ship", obj.Template())
	}
}

func TestCreateObjectTemplatePathResolution(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	tests := []struct {
		in, want string
	}{
		{"ship", "templates/ship.tmp"},
		{"ship.tmp", "templates/ship.tmp"},
		{"enemies/grunt", "templates/enemies/grunt.tmp"},
		{"/abs/thing", "/abs/thing.tmp"},
	}
	for _, tt := range tests {
		if got := w.resolveTemplate(tt.in); got != tt.want {
			t.Errorf("resolveTemplate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreateObjectModelFailureDiscardsObject(t *testing.T) {
	tmpl := "gameObject\n{\n\tname : ghost\n\tmodel : missing.mdl\n}\n"
	w, _ := newTestWorld(t, map[string]string{"templates/ghost.tmp": tmpl})
	s := w.AddScene("main")
	before := s.NumObjects()

	obj, err := w.CreateObject("ghost", nil)
	if obj != nil {
		t.Error("expected no object when the model fails to load")
	}
	if !errors.Is(err, ErrModelLoad) {
		t.Errorf("err = %v, want ErrModelLoad", err)
	}
	if s.NumObjects() != before || s.NumRoots() != 0 {
		t.Errorf("scene object count changed: %d -> %d", before, s.NumObjects())
	}
	if w.NumObjects() != 0 {
		t.Error("failed object should not be in the arena")
	}

	// The failed attempt does not spend an id.
	next, err := w.CreateObject("", nil)
	if err != nil {
		t.Fatal(err)
	}
	if next.ID() != 1 {
		t.Errorf("ID = %d, want 1", next.ID())
	}
}

func TestCreateObjectTextureFailure(t *testing.T) {
	tmpl := "gameObject\n{\n\ttexture : missing.png\n}\n"
	w, _ := newTestWorld(t, map[string]string{"templates/t.tmp": tmpl})
	w.AddScene("main")
	if _, err := w.CreateObject("t", nil); !errors.Is(err, ErrTextureLoad) {
		t.Errorf("err = %v, want ErrTextureLoad", err)
	}
}

func TestCreateObjectTemplateErrors(t *testing.T) {
	w, _ := newTestWorld(t, map[string]string{"templates/wrong.tmp": "other\n{\n}\n"})
	w.AddScene("main")

	if _, err := w.CreateObject("wrong", nil); !errors.Is(err, ErrTemplateRoot) {
		t.Errorf("wrong root: err = %v, want ErrTemplateRoot", err)
	}
	if _, err := w.CreateObject("absent", nil); !errors.Is(err, ErrFileOpen) {
		t.Errorf("missing file: err = %v, want ErrFileOpen", err)
	}
	if w.CurrentScene().NumObjects() != 0 {
		t.Error("failed creations should not add objects")
	}
}

func TestCreateObjectIntoExplicitScene(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	main := w.AddScene("main")
	other := w.AddScene("other")

	obj, err := w.CreateObject("", other)
	if err != nil {
		t.Fatal(err)
	}
	if obj.Scene() != other || other.NumObjects() != 1 || main.NumObjects() != 0 {
		t.Error("object should go to the given scene")
	}
}

func TestObjectIDsUniqueAndMonotonic(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	w.AddScene("main")

	var last ObjectID
	for i := 0; i < 5; i++ {
		obj, err := w.CreateObject("", nil)
		if err != nil {
			t.Fatal(err)
		}
		if obj.ID() <= last {
			t.Fatalf("ID %d not greater than %d", obj.ID(), last)
		}
		last = obj.ID()
		if i == 2 {
			w.DestroyObject(obj.ID())
			w.Update(0)
		}
	}
	if last != 5 {
		t.Errorf("last ID = %d, want 5 (ids are never reused)", last)
	}
}

// --- Tree ---

func TestAttachChild(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	s := w.AddScene("main")
	parent, _ := w.CreateObject("", nil)
	a, _ := w.CreateObject("", nil)
	b, _ := w.CreateObject("", nil)

	if err := w.AttachChild(parent.ID(), a.ID()); err != nil {
		t.Fatal(err)
	}
	if err := w.AttachChild(parent.ID(), b.ID()); err != nil {
		t.Fatal(err)
	}

	if s.NumRoots() != 1 || s.NumObjects() != 3 {
		t.Errorf("roots/objects = %d/%d, want 1/3", s.NumRoots(), s.NumObjects())
	}
	kids := w.Children(parent.ID())
	if len(kids) != 2 || kids[0] != b || kids[1] != a {
		t.Error("children should be most recently attached first")
	}
	if a.Parent() != parent.ID() || parent.FirstChild() != b.ID() || b.NextSibling() != a.ID() {
		t.Error("handle links are wrong")
	}
}

func TestAttachChildErrors(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	w.AddScene("main")
	other := w.AddScene("other")
	root, _ := w.CreateObject("", nil)
	child, _ := w.CreateObject("", nil)
	grandchild, _ := w.CreateObject("", nil)
	foreign, _ := w.CreateObject("", other)
	w.AttachChild(root.ID(), child.ID())
	w.AttachChild(child.ID(), grandchild.ID())

	tests := []struct {
		name          string
		parent, child ObjectID
		want          error
	}{
		{"self", root.ID(), root.ID(), ErrCycle},
		{"cycle", grandchild.ID(), root.ID(), ErrCycle},
		{"already parented", root.ID(), grandchild.ID(), ErrAlreadyParented},
		{"different scene", root.ID(), foreign.ID(), ErrDifferentScene},
		{"unknown", root.ID(), 999, ErrObjectNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := w.AttachChild(tt.parent, tt.child); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

// --- DestroyObject ---

func TestDestroyObjectDefersRelease(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	s := w.AddScene("main")
	obj, _ := w.CreateObject("", nil)
	id := obj.ID()

	if !w.DestroyObject(id) {
		t.Fatal("DestroyObject should succeed")
	}
	if s.NumObjects() != 0 || s.NumRoots() != 0 {
		t.Error("destroyed object should leave the scene immediately")
	}
	if got := w.GetGameObject(id); got != obj || !got.IsDead() {
		t.Error("destroyed object should stay reachable, dead, until the frame ends")
	}
	if w.DestroyObject(id) {
		t.Error("destroying twice should fail")
	}

	w.Update(0.016)
	if w.GetGameObject(id) != nil {
		t.Error("object should be released at the end of the frame")
	}
}

func TestDestroyObjectTakesSubtree(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	s := w.AddScene("main")
	root, _ := w.CreateObject("", nil)
	a, _ := w.CreateObject("", nil)
	b, _ := w.CreateObject("", nil)
	c, _ := w.CreateObject("", nil)
	w.AttachChild(root.ID(), a.ID())
	w.AttachChild(root.ID(), b.ID())
	w.AttachChild(b.ID(), c.ID())

	w.DestroyObject(b.ID())
	if !b.IsDead() || !c.IsDead() {
		t.Error("subtree should be dead")
	}
	if s.NumObjects() != 2 {
		t.Errorf("NumObjects = %d, want 2", s.NumObjects())
	}
	kids := w.Children(root.ID())
	if len(kids) != 1 || kids[0] != a {
		t.Error("destroyed child should be unlinked from its parent")
	}

	w.DestroyObject(root.ID())
	w.Update(0)
	if w.NumObjects() != 0 || s.NumObjects() != 0 {
		t.Errorf("arena/scene = %d/%d, want empty", w.NumObjects(), s.NumObjects())
	}
}

func TestDestroyUnknownObject(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	if w.DestroyObject(42) {
		t.Error("destroying an unknown id should fail")
	}
}

// --- Update ---

func TestUpdateLifecycle(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	w.AddScene("main")
	obj, _ := w.CreateObject("", nil)

	calls := 0
	obj.OnUpdate = func(o *GameObject, dt float32) { calls++ }

	w.Update(0.5)
	if obj.State() != ObjectActive {
		t.Fatalf("State = %v, want active after first frame", obj.State())
	}
	if calls != 0 {
		t.Error("behavior should not run while loading")
	}

	w.Update(0.5)
	w.Update(0.5)
	if calls != 2 {
		t.Errorf("behavior calls = %d, want 2", calls)
	}
	if obj.Lifetime() != 1 {
		t.Errorf("Lifetime = %v, want 1", obj.Lifetime())
	}

	obj.SetSleeping()
	w.Update(0.5)
	if calls != 2 {
		t.Error("sleeping object should not update")
	}
}

func TestBehaviorCanDestroyDuringUpdate(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	w.AddScene("main")
	a, _ := w.CreateObject("", nil)
	b, _ := w.CreateObject("", nil)
	w.Update(0) // both active

	bRan := false
	b.OnUpdate = func(o *GameObject, dt float32) { w.DestroyObject(a.ID()) }
	a.OnUpdate = func(o *GameObject, dt float32) { bRan = true }

	// b is the head root and runs first, killing a before its turn.
	w.Update(0.1)
	if bRan {
		t.Error("object destroyed earlier in the frame should not update")
	}
	if w.GetGameObject(a.ID()) != nil {
		t.Error("a should be released at the end of the frame")
	}
}

func TestStateTransitions(t *testing.T) {
	o := &GameObject{state: ObjectActive}
	if !o.SetSleeping() || o.State() != ObjectSleep {
		t.Error("active -> sleep should succeed")
	}
	if o.SetSleeping() {
		t.Error("sleep -> sleep should be refused")
	}
	if !o.SetActive() || !o.IsActive() {
		t.Error("sleep -> active should succeed")
	}
	o.state = ObjectDeath
	if o.SetActive() || o.SetSleeping() {
		t.Error("death is terminal")
	}
}

func TestSetActiveFromNewGoesThroughLoading(t *testing.T) {
	o := &GameObject{state: ObjectNew}
	if !o.SetActive() || o.State() != ObjectLoading {
		t.Fatalf("new -> %v, want loading", o.State())
	}
	o.update(0)
	if !o.IsActive() {
		t.Errorf("state after first update = %v, want active", o.State())
	}
	l := &GameObject{state: ObjectLoading}
	if !l.SetActive() || !l.IsActive() {
		t.Error("loading -> active should succeed")
	}
}

func TestShutdown(t *testing.T) {
	w, _ := newTestWorld(t, nil)
	w.AddScene("main")
	w.CreateObject("", nil)
	w.Shutdown()
	if w.NumObjects() != 0 || w.CurrentScene() != nil || len(w.Scenes()) != 0 {
		t.Error("Shutdown should clear everything")
	}
}

type categoryTextures struct {
	got []TextureCategory
}

func (m *categoryTextures) GetTexture(path string, c TextureCategory) (Texture, bool) {
	m.got = append(m.got, c)
	return fakeResource(path), true
}

func TestTemplateTexturesUseWorldCategory(t *testing.T) {
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, "templates/ship.tmp", []byte(shipTemplate), 0o644)
	tex := &categoryTextures{}
	w := NewWorld(WorldConfig{Fs: fs, Models: fakeModels{"ship.mdl": true}, Textures: tex, TemplatePath: "templates"})
	w.AddScene("main")
	if _, err := w.CreateObject("ship", nil); err != nil {
		t.Fatal(err)
	}
	if len(tex.got) != 1 || tex.got[0] != TextureCategoryWorld {
		t.Errorf("categories = %v, want [world]", tex.got)
	}
}
