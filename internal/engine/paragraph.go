package engine

import (
	"strconv"

	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/internal/ooxml"
	"github.com/JJJJJJack/go-report-docx/model"
)

func (e *Engine) renderParagraph(paragraph *model.Paragraph, parent *ooxml.Element, ctx *datacontext.Context) error {
	resolved := Resolve(paragraph, ctx, e.formatter).(*model.Paragraph)

	p := ooxml.New("w:p")
	p.Append(paragraphProperties(resolved))

	for _, child := range resolved.ChildElements {
		err := e.renderElement(child, p, ctx)
		if err != nil {
			return err
		}
	}

	// a paragraph inside a paragraph is flattened into its parent
	if parent.Name == "w:p" {
		for _, c := range p.Children {
			if c.Name != "w:pPr" {
				parent.Append(c)
			}
		}

		return nil
	}

	parent.Append(p)

	return nil
}

func paragraphProperties(paragraph *model.Paragraph) *ooxml.Element {
	pPr := ooxml.New("w:pPr")

	if paragraph.ParagraphStyleID != "" {
		pPr.Append(ooxml.Val("w:pStyle", paragraph.ParagraphStyleID))
	}

	if paragraph.SpacingBefore != nil || paragraph.SpacingAfter != nil {
		spacing := ooxml.New("w:spacing")
		if paragraph.SpacingBefore != nil {
			spacing.SetAttr("w:before", strconv.Itoa(*paragraph.SpacingBefore))
		}
		if paragraph.SpacingAfter != nil {
			spacing.SetAttr("w:after", strconv.Itoa(*paragraph.SpacingAfter))
		}
		pPr.Append(spacing)
	}

	if paragraph.Shading != "" {
		pPr.Append(shading(paragraph.Shading))
	}

	if paragraph.Justification != "" {
		pPr.Append(ooxml.Val("w:jc", string(paragraph.Justification)))
	}

	if len(pPr.Children) == 0 {
		return nil
	}

	return pPr
}

func (e *Engine) renderPageBreak(parent *ooxml.Element) {
	br := ooxml.New("w:r").Append(ooxml.New("w:br", "w:type", "page"))

	if parent.Name == "w:p" {
		parent.Append(br)
		return
	}

	parent.Append(ooxml.New("w:p").Append(br))
}
