// Package model describes a report template: a Document made of pages whose
// content nodes (labels, tables, charts, loops, ...) reference context values
// through "#Key#" placeholder tokens.
package model

type ElementKind string

const (
	KindPage        ElementKind = "Page"
	KindForEachPage ElementKind = "ForEachPage"
	KindForEach     ElementKind = "ForEach"
	KindParagraph   ElementKind = "Paragraph"
	KindLabel       ElementKind = "Label"
	KindTable       ElementKind = "Table"
	KindBarModel    ElementKind = "BarModel"
	KindImage       ElementKind = "Image"
	KindBarcode     ElementKind = "Barcode"
	KindPageBreak   ElementKind = "PageBreak"
)

// Element is a template node. The set of implementations is closed and
// dispatched by kind in the renderer.
type Element interface {
	Kind() ElementKind
	Base() *BaseElement
	// Clone returns a deep copy sharing no mutable state with the receiver.
	Clone() Element
}

// BaseElement holds the fields every node carries.
type BaseElement struct {
	// ShowKey names a boolean context item. When it is bound to false the
	// element is not rendered.
	ShowKey string `json:"showKey,omitempty"`
}

func (b *BaseElement) Base() *BaseElement { return b }

// Elements is an ordered list of nodes, encoded in JSON with a "type"
// discriminator on each item.
type Elements []Element

func (es Elements) Clone() Elements {
	if es == nil {
		return nil
	}

	out := make(Elements, len(es))
	for i, e := range es {
		if e != nil {
			out[i] = e.Clone()
		}
	}

	return out
}

var constructors = map[ElementKind]func() Element{
	KindPage:        func() Element { return &Page{} },
	KindForEachPage: func() Element { return &ForEachPage{} },
	KindForEach:     func() Element { return &ForEach{} },
	KindParagraph:   func() Element { return &Paragraph{} },
	KindLabel:       func() Element { return &Label{} },
	KindTable:       func() Element { return &Table{} },
	KindBarModel:    func() Element { return &BarModel{} },
	KindImage:       func() Element { return &Image{} },
	KindBarcode:     func() Element { return &Barcode{} },
	KindPageBreak:   func() Element { return &PageBreak{} },
}

// NewElement returns an empty node of the given kind.
func NewElement(kind ElementKind) (Element, bool) {
	newFn, ok := constructors[kind]
	if !ok {
		return nil, false
	}

	return newFn(), true
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}

	c := *v
	return &c
}
