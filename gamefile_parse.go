package rowan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxLineBytes = 1 << 20

// Load replaces the contents of g with the objects parsed from path.
//
// A file that cannot be opened is logged and reported as ErrFileOpen; g is
// left empty. Grammar problems never fail the load: the offending top-level
// object is dropped, the problem is logged with its line number and kept in
// Diagnostics, and parsing carries on with the next declaration.
func (g *GameFile) Load(path string) error {
	g.Unload()
	g.diagnostics = g.diagnostics[:0]
	g.path = path

	f, err := g.fs.Open(path)
	if err != nil {
		g.log.Write(LogError, LogEngine, "Could not open game file resource at path %s", path)
		return fmt.Errorf("%w: %s: %v", ErrFileOpen, path, err)
	}
	defer f.Close()

	g.loaded = true
	return g.Parse(f, path)
}

// Parse reads game file text from r and adds the objects it declares to the
// top level of g. name is used in diagnostics. Only read errors are returned.
func (g *GameFile) Parse(r io.Reader, name string) error {
	lines, err := readLines(r)
	if err != nil {
		return fmt.Errorf("read game file %s: %w", name, err)
	}

	for i := 0; i < len(lines); {
		line := lines[i]
		if strings.TrimSpace(line) == "" || isComment(line) {
			i++
			continue
		}
		if !isDeclaration(line) {
			g.report(&GrammarError{File: name, Line: i + 1, Reason: "expecting an object declaration"})
			i++
			continue
		}

		obj, consumed, err := g.parseObject(lines, i, nil, name)
		if err != nil {
			var gerr *GrammarError
			if errors.As(err, &gerr) {
				g.report(gerr)
			}
			// Skip the failed body so none of its children surface at the top
			// level. A body that never balances was missing a close brace;
			// resume on the next line so an object it swallowed still parses.
			if next, ok := skipBody(lines, i); ok {
				i = next
			} else {
				i++
			}
			continue
		}
		g.objects.Insert(obj)
		i += consumed
	}
	return nil
}

// parseObject parses the object declared at lines[start]. It returns the
// detached object and the number of lines consumed, counting the declaration.
// On failure no object is returned; the caller decides where to resume.
func (g *GameFile) parseObject(lines []string, start int, parent *Object, file string) (*Object, int, error) {
	obj := &Object{name: NewStringHash(strings.TrimSpace(lines[start])), parent: parent}
	i := start + 1

	if i < len(lines) && isComment(lines[i]) {
		i++
	}
	if i >= len(lines) || !strings.Contains(lines[i], "{") {
		return nil, i - start, &GrammarError{
			File:   file,
			Line:   i + 1,
			Reason: fmt.Sprintf("expecting an open brace after object declaration %q", obj.Name()),
		}
	}
	i++
	if i < len(lines) && isComment(lines[i]) {
		i++
	}

	for {
		if i >= len(lines) {
			return nil, i - start, &GrammarError{
				File:   file,
				Line:   len(lines),
				Reason: fmt.Sprintf("missing close brace for object %q", obj.Name()),
			}
		}
		line := lines[i]
		switch {
		case isCloseBrace(line):
			return obj, i + 1 - start, nil

		case strings.TrimSpace(line) == "":
			// A blank line closes the object early. Hand-edited files rely on
			// this, so it is kept rather than reported.
			return obj, i + 1 - start, nil

		case isComment(line):
			i++

		case isDeclaration(line):
			child, n, err := g.parseObject(lines, i, obj, file)
			if err != nil {
				return nil, i + n - start, err
			}
			obj.children.Insert(child)
			i += n

		default:
			name, value, ok := splitProperty(line)
			if !ok {
				return nil, i + 1 - start, &GrammarError{
					File:   file,
					Line:   i + 1,
					Reason: fmt.Sprintf("expecting 'name : value' in object %q", obj.Name()),
				}
			}
			obj.properties.Insert(&Property{name: NewStringHash(name), value: value})
			i++
		}
	}
}

func (g *GameFile) report(err *GrammarError) {
	g.diagnostics = append(g.diagnostics, err)
	g.log.Write(LogError, LogEngine, "Bad game file format in %s at line %d: %s", err.File, err.Line, err.Reason)
}

// Diagnostics returns the grammar problems found by the last Load or Parse
// calls, in file order.
func (g *GameFile) Diagnostics() []*GrammarError {
	return g.diagnostics
}

func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)
	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	return lines, sc.Err()
}

// skipBody returns the index of the line after the close brace matching the
// body opened below the declaration at start. ok is false when no body opens
// there or its braces never balance.
func skipBody(lines []string, start int) (next int, ok bool) {
	depth := 0
	for i := start + 1; i < len(lines); i++ {
		line := lines[i]
		switch {
		case isComment(line):
		case strings.HasPrefix(strings.TrimSpace(line), "{"):
			depth++
		case depth == 0:
			return 0, false
		case isCloseBrace(line):
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// isComment reports whether line is a comment. A "//" that follows the colon
// of a property belongs to the value ("url : http://host") and does not make
// the line a comment.
func isComment(line string) bool {
	c := strings.Index(line, "//")
	if c < 0 {
		return false
	}
	colon := strings.IndexByte(line, ':')
	return colon < 0 || c < colon
}

// isDeclaration reports whether line names a new object: non-blank and free
// of braces and colons.
func isDeclaration(line string) bool {
	if strings.TrimSpace(line) == "" || isComment(line) {
		return false
	}
	return !strings.ContainsAny(line, "{}:")
}

// isCloseBrace reports whether line ends the current object. Property values
// may contain braces, so a line with a colon never closes.
func isCloseBrace(line string) bool {
	return strings.Contains(line, "}") && !strings.Contains(line, ":")
}

// splitProperty splits "name : value" at the first colon. Both halves must be
// non-empty after trimming. A value written as a Go quoted string is
// unquoted, which is how empty and padded values are stored.
func splitProperty(line string) (name, value string, ok bool) {
	name, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", false
	}
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return "", "", false
	}
	if value[0] == '"' {
		if uq, err := strconv.Unquote(value); err == nil {
			value = uq
		}
	}
	return name, value, true
}
