package engine

import (
	"strconv"
	"strings"

	"github.com/JJJJJJack/go-report-docx/internal/ooxml"
	"github.com/JJJJJJack/go-report-docx/model"
)

// schema order of the border children
var borderElements = []struct {
	pos  model.BorderPositions
	name string
}{
	{model.BorderTop, "w:top"},
	{model.BorderLeft, "w:left"},
	{model.BorderBottom, "w:bottom"},
	{model.BorderRight, "w:right"},
	{model.BorderInsideHorizontal, "w:insideH"},
	{model.BorderInsideVertical, "w:insideV"},
}

// RenderBorders returns the w:tblBorders of a table, or nil when border is
// nil.
func RenderBorders(border *model.BorderModel) *ooxml.Element {
	return renderBorders("w:tblBorders", border)
}

// RenderCellBorders returns the w:tcBorders of a table cell, or nil when
// border is nil.
func RenderCellBorders(border *model.BorderModel) *ooxml.Element {
	return renderBorders("w:tcBorders", border)
}

func renderBorders(name string, border *model.BorderModel) *ooxml.Element {
	if border == nil {
		return nil
	}

	style := border.BorderStyle
	if style == "" {
		style = model.DefaultBorderStyle
	}

	out := ooxml.New(name)

	for _, b := range borderElements {
		if !border.BorderPositions.Has(b.pos) {
			continue
		}

		el := ooxml.New(b.name, "w:val", style)
		if border.BorderColor != "" {
			el.SetAttr("w:color", strings.TrimPrefix(border.BorderColor, "#"))
		}
		el.SetAttr("w:sz", strconv.FormatUint(uint64(border.Width(b.pos)), 10))
		el.SetAttr("w:space", "0")

		out.Append(el)
	}

	return out
}
