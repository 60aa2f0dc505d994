package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BorderPositions is a set of table or cell border positions.
type BorderPositions uint8

const (
	BorderNone             BorderPositions = 0
	BorderLeft             BorderPositions = 1
	BorderTop              BorderPositions = 2
	BorderRight            BorderPositions = 4
	BorderBottom           BorderPositions = 8
	BorderInsideHorizontal BorderPositions = 16
	BorderInsideVertical   BorderPositions = 32
)

var borderPositionNames = []struct {
	pos  BorderPositions
	name string
}{
	{BorderLeft, "LEFT"},
	{BorderTop, "TOP"},
	{BorderRight, "RIGHT"},
	{BorderBottom, "BOTTOM"},
	{BorderInsideHorizontal, "INSIDEHORIZONTAL"},
	{BorderInsideVertical, "INSIDEVERTICAL"},
}

func (p BorderPositions) Has(pos BorderPositions) bool {
	return pos != 0 && p&pos == pos
}

func (p BorderPositions) String() string {
	names := []string{}
	for _, n := range borderPositionNames {
		if p.Has(n.pos) {
			names = append(names, n.name)
		}
	}

	if len(names) == 0 {
		return "NONE"
	}

	return strings.Join(names, ", ")
}

func (p BorderPositions) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts either the numeric flag value or a comma separated
// list of position names ("LEFT, TOP").
func (p *BorderPositions) UnmarshalJSON(data []byte) error {
	var n uint8
	if err := json.Unmarshal(data, &n); err == nil {
		*p = BorderPositions(n)
		return nil
	}

	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return fmt.Errorf("unable to unmarshal border positions: %w", err)
	}

	var out BorderPositions
	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part == "" || part == "NONE" {
			continue
		}

		found := false
		for _, n := range borderPositionNames {
			if n.name == part {
				out |= n.pos
				found = true
				break
			}
		}

		if !found {
			return fmt.Errorf("unknown border position %q", part)
		}
	}

	*p = out

	return nil
}

const DefaultBorderStyle = "thick"

// BorderModel describes table or cell borders. Widths are in eighths of a
// point.
type BorderModel struct {
	BorderPositions             BorderPositions `json:"borderPositions"`
	BorderColor                 string          `json:"borderColor,omitempty"`
	BorderStyle                 string          `json:"borderStyle,omitempty"`
	BorderWidth                 uint            `json:"borderWidth,omitempty"`
	UseVariableBorders          bool            `json:"useVariableBorders,omitempty"`
	BorderWidthLeft             uint            `json:"borderWidthLeft,omitempty"`
	BorderWidthTop              uint            `json:"borderWidthTop,omitempty"`
	BorderWidthRight            uint            `json:"borderWidthRight,omitempty"`
	BorderWidthBottom           uint            `json:"borderWidthBottom,omitempty"`
	BorderWidthInsideHorizontal uint            `json:"borderWidthInsideHorizontal,omitempty"`
	BorderWidthInsideVertical   uint            `json:"borderWidthInsideVertical,omitempty"`
}

func (b *BorderModel) Clone() *BorderModel {
	if b == nil {
		return nil
	}

	c := *b
	return &c
}

// Width returns the width of one position, honoring UseVariableBorders.
func (b *BorderModel) Width(pos BorderPositions) uint {
	if !b.UseVariableBorders {
		return b.BorderWidth
	}

	switch pos {
	case BorderLeft:
		return b.BorderWidthLeft
	case BorderTop:
		return b.BorderWidthTop
	case BorderRight:
		return b.BorderWidthRight
	case BorderBottom:
		return b.BorderWidthBottom
	case BorderInsideHorizontal:
		return b.BorderWidthInsideHorizontal
	case BorderInsideVertical:
		return b.BorderWidthInsideVertical
	}

	return b.BorderWidth
}

type VerticalAlignment string

const (
	AlignTop    VerticalAlignment = "top"
	AlignCenter VerticalAlignment = "center"
	AlignBottom VerticalAlignment = "bottom"
)

// Table renders HeaderRow, then Rows, then one RowModel copy per item of the
// data source bound to DataSourceKey.
type Table struct {
	BaseElement
	// TableWidth is in twentieths of a point, 0 means automatic.
	TableWidth                int          `json:"tableWidth,omitempty"`
	ColsWidth                 []int        `json:"colsWidth,omitempty"`
	Borders                   *BorderModel `json:"borders,omitempty"`
	HeaderRow                 *Row         `json:"headerRow,omitempty"`
	Rows                      []*Row       `json:"rows,omitempty"`
	DataSourceKey             string       `json:"dataSourceKey,omitempty"`
	RowModel                  *Row         `json:"rowModel,omitempty"`
	AutoContextAddItemsPrefix string       `json:"autoContextAddItemsPrefix,omitempty"`
}

func (*Table) Kind() ElementKind { return KindTable }

func (t *Table) Clone() Element {
	c := &Table{
		BaseElement:               t.BaseElement,
		TableWidth:                t.TableWidth,
		Borders:                   t.Borders.Clone(),
		HeaderRow:                 t.HeaderRow.Clone(),
		DataSourceKey:             t.DataSourceKey,
		RowModel:                  t.RowModel.Clone(),
		AutoContextAddItemsPrefix: t.AutoContextAddItemsPrefix,
	}

	if t.ColsWidth != nil {
		c.ColsWidth = append([]int{}, t.ColsWidth...)
	}

	if t.Rows != nil {
		c.Rows = make([]*Row, len(t.Rows))
		for i, r := range t.Rows {
			c.Rows[i] = r.Clone()
		}
	}

	return c
}

type Row struct {
	ShowKey   string  `json:"showKey,omitempty"`
	RowHeight *int    `json:"rowHeight,omitempty"`
	Cells     []*Cell `json:"cells"`
}

func (r *Row) Clone() *Row {
	if r == nil {
		return nil
	}

	c := &Row{ShowKey: r.ShowKey, RowHeight: cloneInt(r.RowHeight)}
	if r.Cells != nil {
		c.Cells = make([]*Cell, len(r.Cells))
		for i, cell := range r.Cells {
			c.Cells[i] = cell.Clone()
		}
	}

	return c
}

type Cell struct {
	Width             *int              `json:"width,omitempty"`
	ColSpan           int               `json:"colSpan,omitempty"`
	Borders           *BorderModel      `json:"borders,omitempty"`
	Shading           string            `json:"shading,omitempty"`
	VerticalAlignment VerticalAlignment `json:"verticalAlignment,omitempty"`
	ChildElements     Elements          `json:"childElements"`
}

func (c *Cell) Clone() *Cell {
	if c == nil {
		return nil
	}

	return &Cell{
		Width:             cloneInt(c.Width),
		ColSpan:           c.ColSpan,
		Borders:           c.Borders.Clone(),
		Shading:           c.Shading,
		VerticalAlignment: c.VerticalAlignment,
		ChildElements:     c.ChildElements.Clone(),
	}
}
