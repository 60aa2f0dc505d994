package engine

import (
	"strings"

	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/internal/ooxml"
	"github.com/JJJJJJack/go-report-docx/model"
)

// renderLabel resolves the label, appends its run to parent and returns it.
func (e *Engine) renderLabel(label *model.Label, parent *ooxml.Element, ctx *datacontext.Context) (*ooxml.Element, error) {
	resolved := Resolve(label, ctx, e.formatter).(*model.Label)

	run := ooxml.New("w:r")
	run.Append(labelProperties(resolved), textElement(resolved.Text))

	runParent(parent).Append(run)

	return run, nil
}

// labelProperties returns the w:rPr of a label, or nil when nothing is set.
func labelProperties(label *model.Label) *ooxml.Element {
	rPr := ooxml.New("w:rPr")

	if label.FontName != "" {
		rPr.Append(ooxml.New("w:rFonts",
			"w:ascii", label.FontName,
			"w:hAnsi", label.FontName,
			"w:cs", label.FontName,
		))
	}

	if label.Bold {
		rPr.Append(ooxml.New("w:b"))
	}

	if label.Italic {
		rPr.Append(ooxml.New("w:i"))
	}

	if label.FontColor != "" {
		rPr.Append(ooxml.Val("w:color", strings.TrimPrefix(label.FontColor, "#")))
	}

	if label.FontSize != "" {
		rPr.Append(ooxml.Val("w:sz", label.FontSize))
	}

	if label.Underline {
		rPr.Append(ooxml.Val("w:u", "single"))
	}

	if label.Shading != "" {
		rPr.Append(shading(label.Shading))
	}

	if len(rPr.Children) == 0 {
		return nil
	}

	return rPr
}

func textElement(text string) *ooxml.Element {
	t := ooxml.New("w:t").WithText(text)
	if strings.TrimSpace(text) != text {
		t.SetAttr("xml:space", "preserve")
	}

	return t
}

func shading(fill string) *ooxml.Element {
	return ooxml.New("w:shd",
		"w:val", "clear",
		"w:color", "auto",
		"w:fill", strings.TrimPrefix(fill, "#"),
	)
}
