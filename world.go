package rowan

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const (
	templateExt     = ".tmp"
	sceneExt        = ".scn"
	templateRoot    = "gameObject"
	sceneRootName   = "scene"
	sceneObjectName = "object"

	// DefaultSceneName names the scene created when startup finds none.
	DefaultSceneName = "scene01"
)

// WorldConfig holds the collaborators of a World. Nil fields get defaults:
// the OS filesystem, a no-op log and managers that resolve nothing.
type WorldConfig struct {
	Fs       afero.Fs
	Log      *Log
	Models   ModelManager
	Textures TextureManager

	// TemplatePath is the directory relative template names resolve against.
	TemplatePath string
	// ScenePath is the directory scanned for scene files.
	ScenePath string
}

// World owns every Scene and every GameObject. Objects are kept in an arena
// keyed by ObjectID; ids come from a single counter and are never reused.
type World struct {
	fs       afero.Fs
	log      *Log
	models   ModelManager
	textures TextureManager

	templatePath string
	scenePath    string

	scenes  List[*Scene]
	current *Scene

	objects map[ObjectID]*GameObject
	lastID  ObjectID
	dying   []ObjectID

	debug bool
}

// NewWorld creates an empty world.
func NewWorld(cfg WorldConfig) *World {
	w := &World{
		fs:           cfg.Fs,
		log:          cfg.Log,
		models:       cfg.Models,
		textures:     cfg.Textures,
		templatePath: cfg.TemplatePath,
		scenePath:    cfg.ScenePath,
		objects:      make(map[ObjectID]*GameObject),
	}
	if w.fs == nil {
		w.fs = afero.NewOsFs()
	}
	if w.log == nil {
		w.log = NewNopLog()
	}
	return w
}

// Log returns the log the world reports to.
func (w *World) Log() *Log { return w.log }

// Fs returns the filesystem the world reads and writes.
func (w *World) Fs() afero.Fs { return w.fs }

// SetDebugMode enables tree shape warnings on AttachChild.
func (w *World) SetDebugMode(enabled bool) { w.debug = enabled }

// Startup sets the template and scene directories and loads every scene file
// found in the scene directory. A scene marked beginLoaded becomes current,
// otherwise the first one loaded. When no scene loads, an empty default scene
// is created so objects always have somewhere to go. The returned error
// collects the files that failed; the world is usable either way.
func (w *World) Startup(templatePath, scenePath string) error {
	w.templatePath = templatePath
	w.scenePath = scenePath

	var errs []error
	infos, err := afero.ReadDir(w.fs, scenePath)
	if err != nil {
		w.log.Write(LogError, LogEngine, "Unable to read scene directory %s", scenePath)
		errs = append(errs, fmt.Errorf("%w: %s: %v", ErrFileOpen, scenePath, err))
	}
	names := make([]string, 0, len(infos))
	for _, fi := range infos {
		if !fi.IsDir() && strings.EqualFold(filepath.Ext(fi.Name()), sceneExt) {
			names = append(names, fi.Name())
		}
	}
	sort.Strings(names)

	var first *Scene
	for _, name := range names {
		s, err := w.LoadScene(filepath.Join(scenePath, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if first == nil {
			first = s
		}
		if s.beginLoaded && w.current == nil {
			w.current = s
		}
	}
	if w.current == nil {
		w.current = first
	}
	if w.current == nil {
		w.current = w.AddScene(DefaultSceneName)
	}
	w.log.Write(LogInfo, LogEngine, "World started with %d scenes, current scene %s", w.scenes.Len(), w.current.name)
	return errors.Join(errs...)
}

// Shutdown destroys every object and forgets every scene.
func (w *World) Shutdown() {
	for _, s := range w.scenes.Values() {
		for _, o := range s.Roots() {
			w.DestroyObject(o.id)
		}
	}
	w.release()
	w.scenes.Clear()
	w.current = nil
}

// AddScene creates an empty, active scene. The first scene added becomes
// current.
func (w *World) AddScene(name string) *Scene {
	s := &Scene{name: name, world: w, state: SceneActive}
	w.scenes.Insert(s)
	if w.current == nil {
		w.current = s
	}
	return s
}

// Scenes returns every scene, most recently added first.
func (w *World) Scenes() []*Scene { return w.scenes.Values() }

// Scene returns the scene named name, ignoring case, or nil.
func (w *World) Scene(name string) *Scene {
	h := NewStringHash(name)
	if n := w.scenes.Find(func(s *Scene) bool { return h.Matches(s.name) }); n != nil {
		return n.Value
	}
	return nil
}

// CurrentScene returns the scene new objects go to by default, or nil.
func (w *World) CurrentScene() *Scene { return w.current }

// SetCurrentScene switches the scene that updates and receives new objects.
func (w *World) SetCurrentScene(s *Scene) {
	if s != nil && s.state == SceneUnloaded {
		s.state = SceneActive
	}
	w.current = s
}

// NumObjects returns the number of objects in the arena, including objects
// destroyed this frame and not yet released.
func (w *World) NumObjects() int { return len(w.objects) }

// GetGameObject returns the object with the given id. Objects destroyed
// during the current frame are still returned, in the Death state, until the
// end of the frame.
func (w *World) GetGameObject(id ObjectID) *GameObject {
	return w.objects[id]
}

func (w *World) nextID() ObjectID {
	w.lastID++
	return w.lastID
}

// CreateObject builds a GameObject and attaches it as a root of scene, or of
// the current scene when scene is nil.
//
// With an empty templatePath the object gets the default name and position.
// Otherwise the template is loaded and must have a gameObject root; its
// optional name, model, clipType, clipSize, pos and texture properties are
// applied. A model or texture that cannot be resolved fails the whole
// creation: nothing is added to the scene and no id is spent.
func (w *World) CreateObject(templatePath string, scene *Scene) (*GameObject, error) {
	if scene == nil {
		scene = w.current
	}
	if scene == nil {
		w.log.Write(LogError, LogEngine, "Cannot create game object, no scene is loaded")
		return nil, ErrNoScene
	}

	o := &GameObject{
		Name:  DefaultObjectName,
		Pos:   DefaultObjectPos,
		state: ObjectNew,
	}
	if templatePath != "" {
		if err := w.applyTemplate(o, templatePath); err != nil {
			return nil, err
		}
		o.template = templatePath
	}

	o.id = w.nextID()
	o.state = ObjectLoading
	w.objects[o.id] = o
	scene.attachRoot(o)
	scene.count++
	scene.dirty = true
	return o, nil
}

func (w *World) resolveTemplate(name string) string {
	p := name
	if !filepath.IsAbs(p) && w.templatePath != "" {
		p = filepath.Join(w.templatePath, p)
	}
	if !strings.HasSuffix(strings.ToLower(p), templateExt) {
		p += templateExt
	}
	return p
}

func (w *World) applyTemplate(o *GameObject, name string) error {
	file := w.resolveTemplate(name)
	gf, err := LoadGameFile(w.fs, file, w.log)
	if err != nil {
		return err
	}
	defer gf.Unload()

	root := gf.FindObject(templateRoot)
	if root == nil {
		w.log.Write(LogError, LogEngine, "Template %s has no %s object", file, templateRoot)
		return fmt.Errorf("%w: %s", ErrTemplateRoot, file)
	}

	if p := root.FindProperty("name"); p != nil {
		o.Name = p.String()
	}
	if p := root.FindProperty("pos"); p != nil {
		o.Pos = p.Vector()
	}
	if p := root.FindProperty("clipType"); p != nil {
		o.ClipType = parseClipType(p.String())
	}
	if p := root.FindProperty("clipSize"); p != nil {
		o.ClipSize = p.Vector()
	}
	if p := root.FindProperty("model"); p != nil {
		var m Model
		ok := false
		if w.models != nil {
			m, ok = w.models.GetModel(p.String())
		}
		if !ok {
			w.log.Write(LogError, LogEngine, "Unable to load model %s for template %s", p.String(), file)
			return fmt.Errorf("%w: %s (template %s)", ErrModelLoad, p.String(), file)
		}
		o.model = m
	}
	if p := root.FindProperty("texture"); p != nil {
		var t Texture
		ok := false
		if w.textures != nil {
			t, ok = w.textures.GetTexture(p.String(), TextureCategoryWorld)
		}
		if !ok {
			w.log.Write(LogError, LogEngine, "Unable to load texture %s for template %s", p.String(), file)
			return fmt.Errorf("%w: %s (template %s)", ErrTextureLoad, p.String(), file)
		}
		o.texture = t
	}
	return nil
}

// DestroyObject detaches the object and its subtree from the scene and marks
// them dead. They stay in the arena, so GetGameObject still answers for them,
// until the end of the current World.Update. Returns false for unknown or
// already destroyed ids.
func (w *World) DestroyObject(id ObjectID) bool {
	o := w.objects[id]
	if o == nil || o.IsDead() {
		return false
	}
	s := o.scene
	if o.parent != NoObject {
		w.unlinkChild(o)
	} else {
		s.detachRoot(o)
	}
	s.count -= w.kill(o)
	s.dirty = true
	return true
}

func (w *World) unlinkChild(o *GameObject) {
	p := w.objects[o.parent]
	if p == nil {
		return
	}
	if p.child == o.id {
		p.child = o.next
	} else {
		for c := p.child; c != NoObject; {
			sib := w.objects[c]
			if sib == nil {
				break
			}
			if sib.next == o.id {
				sib.next = o.next
				break
			}
			c = sib.next
		}
	}
	o.parent = NoObject
	o.next = NoObject
}

// kill marks o and its descendants dead and queues them for release. It
// returns the number of objects killed.
func (w *World) kill(o *GameObject) int {
	n := 1
	for c := o.child; c != NoObject; {
		child := w.objects[c]
		if child == nil {
			break
		}
		n += w.kill(child)
		c = child.next
	}
	o.state = ObjectDeath
	w.dying = append(w.dying, o.id)
	return n
}

// release drops dead objects from the arena.
func (w *World) release() {
	for _, id := range w.dying {
		if o := w.objects[id]; o != nil {
			o.model = nil
			o.texture = nil
			o.tweens = nil
			o.scene = nil
		}
		delete(w.objects, id)
	}
	w.dying = w.dying[:0]
}

// AttachChild makes child the first child of parent. The child must be a
// root of the same scene, and parent must not be inside child's subtree.
func (w *World) AttachChild(parentID, childID ObjectID) error {
	p := w.objects[parentID]
	c := w.objects[childID]
	if p == nil || c == nil || p.IsDead() || c.IsDead() {
		return ErrObjectNotFound
	}
	if p.scene != c.scene {
		return ErrDifferentScene
	}
	if c.parent != NoObject {
		return ErrAlreadyParented
	}
	if w.isAncestor(c, p) {
		return ErrCycle
	}

	c.scene.detachRoot(c)
	c.parent = p.id
	c.next = p.child
	p.child = c.id
	c.scene.dirty = true

	if w.debug {
		w.debugCheckTreeDepth(c)
		w.debugCheckChildCount(p)
	}
	return nil
}

// isAncestor reports whether a is n or one of n's ancestors.
func (w *World) isAncestor(a, n *GameObject) bool {
	for p := n; p != nil; p = w.objects[p.parent] {
		if p == a {
			return true
		}
		if p.parent == NoObject {
			break
		}
	}
	return false
}

// Children returns the direct children of id, most recently attached first.
func (w *World) Children(id ObjectID) []*GameObject {
	o := w.objects[id]
	if o == nil {
		return nil
	}
	var out []*GameObject
	for c := o.child; c != NoObject; {
		child := w.objects[c]
		if child == nil {
			break
		}
		out = append(out, child)
		c = child.next
	}
	return out
}

// Update advances the current scene by dt seconds and then releases every
// object destroyed during the frame.
func (w *World) Update(dt float32) {
	if w.current != nil && w.current.state == SceneActive {
		w.current.update(dt)
	}
	w.release()
}
