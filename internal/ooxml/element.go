// Package ooxml is a minimal composite XML element tree used to build
// WordprocessingML and DrawingML parts. Names carry their namespace prefix
// verbatim ("w:p", "c:chart"); prefixes are declared on the part root.
package ooxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Attr struct {
	Name  string
	Value string
}

type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// New creates an element from a name and name/value attribute pairs.
func New(name string, attrs ...string) *Element {
	e := &Element{Name: name}
	for i := 0; i+1 < len(attrs); i += 2 {
		e.Attrs = append(e.Attrs, Attr{Name: attrs[i], Value: attrs[i+1]})
	}

	return e
}

// Val is a shorthand for the many single-attribute elements of OOXML, e.g.
// Val("c:gapWidth", "55") is <c:gapWidth val="55"/>.
func Val(name, value string) *Element {
	attr := "val"
	if strings.HasPrefix(name, "w:") {
		attr = "w:val"
	}

	return New(name, attr, value)
}

func BoolVal(name string, v bool) *Element {
	if v {
		return Val(name, "1")
	}

	return Val(name, "0")
}

func IntVal[T ~int | ~int64 | ~uint | ~uint32 | ~uint64](name string, v T) *Element {
	return Val(name, strconv.FormatInt(int64(v), 10))
}

// WithText sets the character data of e and returns e.
func (e *Element) WithText(text string) *Element {
	e.Text = text
	return e
}

// SetAttr sets or replaces an attribute and returns e.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}

	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})

	return e
}

func (e *Element) AttrValue(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}

	return "", false
}

// Append adds children to e and returns e, so trees can be built inline.
// Nil children are ignored.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}

	return e
}

// AppendChild adds child to e and returns child.
func (e *Element) AppendChild(child *Element) *Element {
	e.Children = append(e.Children, child)
	return child
}

// Remove detaches child from e. It reports whether child was found.
func (e *Element) Remove(child *Element) bool {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return true
		}
	}

	return false
}

// Find returns the first descendant named name, depth first.
func (e *Element) Find(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}

		if found := c.Find(name); found != nil {
			return found
		}
	}

	return nil
}

// FindAll returns every descendant named name, depth first.
func (e *Element) FindAll(name string) []*Element {
	out := []*Element{}
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}

		out = append(out, c.FindAll(name)...)
	}

	return out
}

// WriteTo encodes e and its descendants as XML without a declaration.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	enc := xml.NewEncoder(cw)

	err := e.encode(enc)
	if err != nil {
		return cw.n, fmt.Errorf("unable to encode element %s: %w", e.Name, err)
	}

	err = enc.Flush()
	if err != nil {
		return cw.n, fmt.Errorf("unable to flush encoder: %w", err)
	}

	return cw.n, nil
}

func (e *Element) encode(enc *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Name}}
	for _, a := range e.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}

	err := enc.EncodeToken(start)
	if err != nil {
		return err
	}

	if e.Text != "" {
		err = enc.EncodeToken(xml.CharData(e.Text))
		if err != nil {
			return err
		}
	}

	for _, c := range e.Children {
		err = c.encode(enc)
		if err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}

// Bytes returns the standalone part content: the XML declaration followed
// by e. Empty elements are collapsed to self-closing tags.
func (e *Element) Bytes() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteString(Header)

	_, err := e.WriteTo(&buf)
	if err != nil {
		return nil, err
	}

	return collapseEmptyTags(buf.Bytes()), nil
}

func (e *Element) String() string {
	buf := bytes.Buffer{}
	_, err := e.WriteTo(&buf)
	if err != nil {
		return ""
	}

	return string(collapseEmptyTags(buf.Bytes()))
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)

	return n, err
}
