package engine

import (
	"strconv"

	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/internal/ooxml"
	"github.com/JJJJJJack/go-report-docx/model"
)

// renderPage renders the page content into body and closes it with a
// section break carrying the page geometry.
func (e *Engine) renderPage(doc *model.Document, page *model.Page, body *ooxml.Element, ctx *datacontext.Context) error {
	if !e.visible(page.ShowKey, ctx) {
		e.logger.Debug("page hidden", "showKey", page.ShowKey)
		return nil
	}

	for _, child := range page.ChildElements {
		err := e.renderElement(child, body, ctx)
		if err != nil {
			return err
		}
	}

	margin := page.Margin
	if margin == nil {
		margin = doc.Margin
	}

	p := body.AppendChild(ooxml.New("w:p"))
	p.AppendChild(ooxml.New("w:pPr")).Append(e.sectionProperties(doc, page.Orientation, margin))
	e.lastSection = p

	return nil
}

// closeBody moves the properties of the last section to the end of the body,
// where Word expects them.
func (e *Engine) closeBody(doc *model.Document, body *ooxml.Element) {
	if e.lastSection == nil {
		body.Append(e.sectionProperties(doc, model.Portrait, doc.Margin))
		return
	}

	sectPr := e.lastSection.Find("w:sectPr")
	body.Remove(e.lastSection)
	body.Append(sectPr)
	e.lastSection = nil
}

func (e *Engine) sectionProperties(doc *model.Document, orientation model.Orientation, margin *model.Margin) *ooxml.Element {
	sectPr := ooxml.New("w:sectPr")

	for _, ref := range e.sectionRefs {
		sectPr.Append(&ooxml.Element{Name: ref.Name, Attrs: ref.Attrs})
	}

	size := model.DefaultPageSize
	if doc.PageSize != nil {
		size = *doc.PageSize
	}

	pgSz := ooxml.New("w:pgSz")
	if orientation == model.Landscape {
		pgSz.SetAttr("w:w", strconv.Itoa(size.Height))
		pgSz.SetAttr("w:h", strconv.Itoa(size.Width))
		pgSz.SetAttr("w:orient", "landscape")
	} else {
		pgSz.SetAttr("w:w", strconv.Itoa(size.Width))
		pgSz.SetAttr("w:h", strconv.Itoa(size.Height))
	}

	sectPr.Append(ooxml.Val("w:type", "nextPage"), pgSz)

	if margin != nil {
		header, footer := margin.Header, margin.Footer
		if header == 0 {
			header = 720
		}
		if footer == 0 {
			footer = 720
		}

		sectPr.Append(ooxml.New("w:pgMar",
			"w:top", strconv.Itoa(margin.Top),
			"w:right", strconv.Itoa(margin.Right),
			"w:bottom", strconv.Itoa(margin.Bottom),
			"w:left", strconv.Itoa(margin.Left),
			"w:header", strconv.Itoa(header),
			"w:footer", strconv.Itoa(footer),
			"w:gutter", "0",
		))
	}

	return sectPr
}
