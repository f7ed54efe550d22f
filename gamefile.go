package rowan

import (
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Property is a named text value inside an Object. Typed accessors parse the
// text each time they are called.
type Property struct {
	name  StringHash
	value string
}

// Name returns the property name as written.
func (p *Property) Name() string {
	return p.name.String()
}

// Is reports whether the property answers to name, ignoring case.
func (p *Property) Is(name string) bool {
	return p.name.Matches(name)
}

// String returns the raw value.
func (p *Property) String() string {
	return p.value
}

// SetValue replaces the raw value.
func (p *Property) SetValue(v string) {
	p.value = v
}

// Int parses the value as a base 10 integer, 0 on failure.
func (p *Property) Int() int {
	v, err := strconv.Atoi(strings.TrimSpace(p.value))
	if err != nil {
		return 0
	}
	return v
}

// Float parses the value as a float, 0 on failure.
func (p *Property) Float() float32 {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.value), 32)
	if err != nil {
		return 0
	}
	return float32(v)
}

// Bool parses the value with strconv.ParseBool, false on failure.
func (p *Property) Bool() bool {
	v, err := strconv.ParseBool(strings.TrimSpace(p.value))
	if err != nil {
		return false
	}
	return v
}

// Vector parses up to three whitespace or comma separated components.
// Missing or malformed components are 0.
func (p *Property) Vector() Vector {
	var v Vector
	parseComponents(p.value, v[:])
	return v
}

// Vector2 parses up to two whitespace or comma separated components.
func (p *Property) Vector2() Vector2 {
	var v Vector2
	parseComponents(p.value, v[:])
	return v
}

func parseComponents(s string, out []float32) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	for i := 0; i < len(out) && i < len(fields); i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			continue
		}
		out[i] = float32(f)
	}
}

// Object is a named node of a GameFile tree. It owns its properties and child
// objects. The parent link is fixed when the object is created.
type Object struct {
	name       StringHash
	parent     *Object
	children   List[*Object]
	properties List[*Property]
}

// Name returns the object name as written.
func (o *Object) Name() string {
	return o.name.String()
}

// Is reports whether the object answers to name, ignoring case.
func (o *Object) Is(name string) bool {
	return o.name.Matches(name)
}

// Parent returns the enclosing object, or nil for a top-level object.
func (o *Object) Parent() *Object {
	return o.parent
}

// FirstChild returns the most recently added child, or nil.
func (o *Object) FirstChild() *ListNode[*Object] {
	return o.children.Head()
}

// Children returns the child objects, most recently added first.
func (o *Object) Children() []*Object {
	return o.children.Values()
}

// Properties returns the properties, most recently added first.
func (o *Object) Properties() []*Property {
	return o.properties.Values()
}

// NumChildren returns the number of direct children.
func (o *Object) NumChildren() int {
	return o.children.Len()
}

// NumProperties returns the number of properties.
func (o *Object) NumProperties() int {
	return o.properties.Len()
}

// FindObject returns the first direct child named name. With duplicate names
// the most recently added child wins.
func (o *Object) FindObject(name string) *Object {
	h := NewStringHash(name)
	if n := o.children.Find(func(c *Object) bool { return c.name.Equal(h) }); n != nil {
		return n.Value
	}
	return nil
}

// FindProperty returns the first property named name, or nil.
func (o *Object) FindProperty(name string) *Property {
	h := NewStringHash(name)
	if n := o.properties.Find(func(p *Property) bool { return p.name.Equal(h) }); n != nil {
		return n.Value
	}
	return nil
}

// RemoveProperty drops the first property named name.
func (o *Object) RemoveProperty(name string) bool {
	h := NewStringHash(name)
	n := o.properties.Find(func(p *Property) bool { return p.name.Equal(h) })
	return o.properties.Remove(n)
}

func (o *Object) release() {
	for n := o.children.Head(); n != nil; n = n.Next() {
		n.Value.release()
	}
	o.children.Clear()
	o.properties.Clear()
	o.parent = nil
}

// GameFile is a parsed game file: a list of top-level objects, each of which
// may own a subtree.
type GameFile struct {
	fs      afero.Fs
	log     *Log
	path    string
	objects List[*Object]
	loaded  bool

	diagnostics []*GrammarError
}

// GameFileOption configures a GameFile.
type GameFileOption func(*GameFile)

// WithFs sets the filesystem used by Load and Write. Defaults to the OS.
func WithFs(fs afero.Fs) GameFileOption {
	return func(g *GameFile) { g.fs = fs }
}

// WithLog sets where parse diagnostics go. Defaults to a no-op log.
func WithLog(log *Log) GameFileOption {
	return func(g *GameFile) { g.log = log }
}

// NewGameFile returns an empty game file.
func NewGameFile(opts ...GameFileOption) *GameFile {
	g := &GameFile{}
	for _, opt := range opts {
		opt(g)
	}
	if g.fs == nil {
		g.fs = afero.NewOsFs()
	}
	if g.log == nil {
		g.log = NewNopLog()
	}
	return g
}

// LoadGameFile reads and parses path from fs. On an open failure it returns
// an empty, unloaded file together with the error.
func LoadGameFile(fs afero.Fs, path string, log *Log) (*GameFile, error) {
	g := NewGameFile(WithFs(fs), WithLog(log))
	err := g.Load(path)
	return g, err
}

// Path returns the path the file was last loaded from or written to.
func (g *GameFile) Path() string {
	return g.path
}

// IsLoaded reports whether the last Load opened its file.
func (g *GameFile) IsLoaded() bool {
	return g.loaded
}

// Objects returns the top-level objects, most recently added first.
func (g *GameFile) Objects() []*Object {
	return g.objects.Values()
}

// NumObjects returns the number of top-level objects.
func (g *GameFile) NumObjects() int {
	return g.objects.Len()
}

// AddObject creates an object named name. With a nil parent it becomes a
// top-level object; otherwise it becomes the first child of parent.
func (g *GameFile) AddObject(name string, parent *Object) *Object {
	o := &Object{name: NewStringHash(name), parent: parent}
	if parent != nil {
		parent.children.Insert(o)
	} else {
		g.objects.Insert(o)
	}
	return o
}

// AddProperty adds a property to obj and returns it. Duplicate names are
// allowed; the newest one shadows the others in lookups.
func (g *GameFile) AddProperty(obj *Object, name, value string) *Property {
	p := &Property{name: NewStringHash(name), value: value}
	obj.properties.Insert(p)
	return p
}

// FindObject returns the first top-level object named name.
func (g *GameFile) FindObject(name string) *Object {
	h := NewStringHash(name)
	if n := g.objects.Find(func(o *Object) bool { return o.name.Equal(h) }); n != nil {
		return n.Value
	}
	return nil
}

// FindObjectPath resolves a slash separated path of object names starting
// at the top level, e.g. "scene/object/light".
func (g *GameFile) FindObjectPath(path string) *Object {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	o := g.FindObject(parts[0])
	for _, part := range parts[1:] {
		if o == nil {
			return nil
		}
		o = o.FindObject(part)
	}
	return o
}

// RemoveObject detaches a top-level object and releases its subtree.
func (g *GameFile) RemoveObject(obj *Object) bool {
	n := g.objects.Find(func(o *Object) bool { return o == obj })
	if !g.objects.Remove(n) {
		return false
	}
	obj.release()
	return true
}

// FindProperty looks up a property of a top-level object.
func (g *GameFile) FindProperty(object, property string) *Property {
	if o := g.FindObject(object); o != nil {
		return o.FindProperty(property)
	}
	return nil
}

// GetString returns the raw value, "" when missing.
func (g *GameFile) GetString(object, property string) string {
	if p := g.FindProperty(object, property); p != nil {
		return p.String()
	}
	return ""
}

// GetInt returns the integer value, -1 when missing.
func (g *GameFile) GetInt(object, property string) int {
	if p := g.FindProperty(object, property); p != nil {
		return p.Int()
	}
	return -1
}

// GetFloat returns the float value, 0 when missing.
func (g *GameFile) GetFloat(object, property string) float32 {
	if p := g.FindProperty(object, property); p != nil {
		return p.Float()
	}
	return 0
}

// GetBool returns the boolean value, false when missing.
func (g *GameFile) GetBool(object, property string) bool {
	if p := g.FindProperty(object, property); p != nil {
		return p.Bool()
	}
	return false
}

// GetVector returns the vector value, the zero vector when missing.
func (g *GameFile) GetVector(object, property string) Vector {
	if p := g.FindProperty(object, property); p != nil {
		return p.Vector()
	}
	return Vector{}
}

// GetVector2 returns the 2D vector value, the zero vector when missing.
func (g *GameFile) GetVector2(object, property string) Vector2 {
	if p := g.FindProperty(object, property); p != nil {
		return p.Vector2()
	}
	return Vector2{}
}

// Unload releases every object and property exactly once and leaves the file
// empty.
func (g *GameFile) Unload() {
	for n := g.objects.Head(); n != nil; n = n.Next() {
		n.Value.release()
	}
	g.objects.Clear()
	g.loaded = false
}
