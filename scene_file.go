package rowan

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// LoadScene reads a scene file and adds the scene to the world. It does not
// change the current scene.
//
// Each object entry is created from its template, if any, and then the
// entry's own name, pos, clipType and clipSize override the template. Nested
// object entries become children. An entry that fails to create is logged and
// skipped together with its children.
func (w *World) LoadScene(file string) (*Scene, error) {
	gf, err := LoadGameFile(w.fs, file, w.log)
	if err != nil {
		return nil, err
	}
	defer gf.Unload()

	root := gf.FindObject(sceneRootName)
	if root == nil {
		w.log.Write(LogError, LogEngine, "Scene file %s has no %s object", file, sceneRootName)
		return nil, fmt.Errorf("%w: %s", ErrSceneRoot, file)
	}

	s := &Scene{
		name:  strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
		path:  file,
		state: SceneLoading,
		world: w,
	}
	if p := root.FindProperty("name"); p != nil {
		s.name = p.String()
	}
	if p := root.FindProperty("beginLoaded"); p != nil {
		s.beginLoaded = p.Bool()
	}
	w.scenes.Insert(s)

	entries := root.Children()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Is(sceneObjectName) {
			w.loadSceneObject(s, entries[i], NoObject)
		}
	}

	s.state = SceneActive
	s.dirty = false
	w.log.Write(LogInfo, LogEngine, "Loaded scene %s with %d objects", s.name, s.count)
	return s, nil
}

func (w *World) loadSceneObject(s *Scene, entry *Object, parent ObjectID) {
	var tmpl string
	if p := entry.FindProperty("template"); p != nil {
		tmpl = p.String()
	}
	o, err := w.CreateObject(tmpl, s)
	if err != nil {
		w.log.Write(LogWarning, LogEngine, "Skipping object in scene %s: %v", s.name, err)
		return
	}

	if p := entry.FindProperty("name"); p != nil {
		o.Name = p.String()
	}
	if p := entry.FindProperty("pos"); p != nil {
		o.Pos = p.Vector()
	}
	if p := entry.FindProperty("clipType"); p != nil {
		o.ClipType = parseClipType(p.String())
	}
	if p := entry.FindProperty("clipSize"); p != nil {
		o.ClipSize = p.Vector()
	}

	if parent != NoObject {
		if err := w.AttachChild(parent, o.id); err != nil {
			w.log.Write(LogWarning, LogEngine, "Unable to attach %s in scene %s: %v", o.Name, s.name, err)
		}
	}

	kids := entry.Children()
	for i := len(kids) - 1; i >= 0; i-- {
		if kids[i].Is(sceneObjectName) {
			w.loadSceneObject(s, kids[i], o.id)
		}
	}
}

// SaveScene writes s to the file it was loaded from, or to
// <scene dir>/<name>.scn for a scene that has never been saved. An unnamed
// scene is saved as the default scene name.
func (w *World) SaveScene(s *Scene) error {
	file := s.path
	if file == "" {
		name := s.name
		if name == "" {
			name = DefaultSceneName
		}
		file = filepath.Join(w.scenePath, name+sceneExt)
	}
	if dir := filepath.Dir(file); dir != "." {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create scene directory %s: %w", dir, err)
		}
	}
	gf := s.GameFile()
	defer gf.Unload()
	if err := gf.Write(file); err != nil {
		return err
	}
	s.path = file
	s.dirty = false
	w.log.Write(LogInfo, LogEngine, "Saved scene %s to %s", s.name, file)
	return nil
}

// Flush saves every dirty scene.
func (w *World) Flush() error {
	var errs []error
	for n := w.scenes.Head(); n != nil; n = n.Next() {
		if n.Value.dirty {
			if err := w.SaveScene(n.Value); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
