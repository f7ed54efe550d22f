package rowan

import (
	"errors"
	"fmt"
)

var (
	// ErrFileOpen reports a game file that could not be opened.
	ErrFileOpen = errors.New("could not open file")

	// ErrGrammar is wrapped by every GrammarError.
	ErrGrammar = errors.New("bad game file format")

	// ErrUnwritableName reports an object or property name that would not
	// parse back after writing.
	ErrUnwritableName = errors.New("name cannot be written to a game file")

	// ErrNoScene reports a creation with no scene given and none current.
	ErrNoScene = errors.New("no scene to add the object to")

	// ErrTemplateRoot reports a template without a gameObject object.
	ErrTemplateRoot = errors.New("template has no gameObject root")

	// ErrModelLoad reports a template model the ModelManager could not find.
	ErrModelLoad = errors.New("model failed to load")

	// ErrTextureLoad reports a template texture the TextureManager could not
	// find.
	ErrTextureLoad = errors.New("texture failed to load")

	// ErrObjectNotFound reports an id that names no live object.
	ErrObjectNotFound = errors.New("object not found")

	// ErrAlreadyParented reports an AttachChild on an object that is not a
	// root.
	ErrAlreadyParented = errors.New("object already has a parent")

	// ErrCycle reports an AttachChild that would make an object its own
	// ancestor.
	ErrCycle = errors.New("attaching would create a cycle")

	// ErrDifferentScene reports an AttachChild across scenes.
	ErrDifferentScene = errors.New("objects belong to different scenes")

	// ErrSceneRoot reports a scene file without a scene object.
	ErrSceneRoot = errors.New("scene file has no scene root")
)

// GrammarError describes where a game file broke the grammar.
type GrammarError struct {
	File   string
	Line   int
	Reason string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
}

func (e *GrammarError) Unwrap() error {
	return ErrGrammar
}
