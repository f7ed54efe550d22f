package rowan

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// Write serialises g to path on its filesystem, replacing any existing file.
func (g *GameFile) Write(path string) error {
	var buf bytes.Buffer
	if err := g.Serialise(&buf); err != nil {
		return err
	}
	if err := afero.WriteFile(g.fs, path, buf.Bytes(), 0o644); err != nil {
		g.log.Write(LogError, LogEngine, "Could not write game file resource at path %s", path)
		return fmt.Errorf("write game file %s: %w", path, err)
	}
	g.path = path
	return nil
}

// Serialise writes g in game file format. Objects and properties are written
// oldest first, so parsing the output rebuilds lists in the same order and
// the same duplicate shadows the others.
//
// Values that would not survive a reload as written (empty, padded with
// spaces, multi-line or starting with a quote) are written as Go quoted
// strings. Names cannot be quoted; a name the parser would misread fails
// with ErrUnwritableName and nothing is written.
func (g *GameFile) Serialise(w io.Writer) error {
	for n := g.objects.Head(); n != nil; n = n.Next() {
		if err := checkNames(n.Value); err != nil {
			return err
		}
	}
	bw := bufio.NewWriter(w)
	first := true
	for n := g.objects.Tail(); n != nil; n = n.Prev() {
		if !first {
			bw.WriteByte('\n')
		}
		first = false
		writeObject(bw, n.Value, 0)
	}
	return bw.Flush()
}

func writeObject(w *bufio.Writer, o *Object, depth int) {
	indent := strings.Repeat("\t", depth)
	fmt.Fprintf(w, "%s%s\n%s{\n", indent, o.Name(), indent)
	for n := o.properties.Tail(); n != nil; n = n.Prev() {
		p := n.Value
		fmt.Fprintf(w, "%s\t%s : %s\n", indent, p.Name(), encodeValue(p.value))
	}
	for n := o.children.Tail(); n != nil; n = n.Prev() {
		writeObject(w, n.Value, depth+1)
	}
	fmt.Fprintf(w, "%s}\n", indent)
}

func checkNames(o *Object) error {
	if !writableName(o.Name()) {
		return fmt.Errorf("%w: object %q", ErrUnwritableName, o.Name())
	}
	for n := o.properties.Head(); n != nil; n = n.Next() {
		if !writableName(n.Value.Name()) {
			return fmt.Errorf("%w: property %q of %q", ErrUnwritableName, n.Value.Name(), o.Name())
		}
	}
	for n := o.children.Head(); n != nil; n = n.Next() {
		if err := checkNames(n.Value); err != nil {
			return err
		}
	}
	return nil
}

// writableName reports whether name reads back unchanged as an object or
// property name.
func writableName(name string) bool {
	return name != "" &&
		name == strings.TrimSpace(name) &&
		!strings.ContainsAny(name, "{}:\r\n") &&
		!strings.Contains(name, "//")
}

func encodeValue(v string) string {
	if v == "" || v != strings.TrimSpace(v) ||
		strings.HasPrefix(v, `"`) || strings.ContainsAny(v, "\r\n") {
		return strconv.Quote(v)
	}
	return v
}
