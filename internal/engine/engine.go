// Package engine walks a report template against a data context and emits
// the WordprocessingML tree of the main document, adding chart and media
// parts to a [Target] as it goes.
package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/internal/docx"
	"github.com/JJJJJJack/go-report-docx/internal/ooxml"
	"github.com/JJJJJJack/go-report-docx/model"
)

// Target is the document package the renderers write parts into.
type Target interface {
	// AddChart stores a chart part, with its optional embedded workbook, and
	// returns the relationship id referencing it from the main document.
	AddChart(chartSpace, workbook []byte) (string, error)
	// AddMedia stores an image part and returns its relationship id.
	AddMedia(extension string, data []byte) (string, error)
	// NextDocPrID returns a package-unique wp:docPr identifier.
	NextDocPrID() (uint32, error)
}

var _ Target = (*docx.Package)(nil)

type Engine struct {
	target         Target
	formatter      *datacontext.Formatter
	logger         *slog.Logger
	assetsDir      string
	chartWorkbooks bool
	sectionRefs    []*ooxml.Element

	lastSection  *ooxml.Element
	chartCount   int
	pictureCount int
}

type Option func(*Engine)

// WithFormatter sets the locale numbers and dates are rendered with.
func WithFormatter(f *datacontext.Formatter) Option {
	return func(e *Engine) {
		if f != nil {
			e.formatter = f
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithAssetsDir sets the directory image paths are resolved in. Paths never
// escape it.
func WithAssetsDir(dir string) Option {
	return func(e *Engine) {
		e.assetsDir = dir
	}
}

// WithChartWorkbooks toggles the workbook embedded behind each chart.
func WithChartWorkbooks(enabled bool) Option {
	return func(e *Engine) {
		e.chartWorkbooks = enabled
	}
}

// WithSectionReferences adds header/footer reference elements to every
// section the engine emits.
func WithSectionReferences(refs ...*ooxml.Element) Option {
	return func(e *Engine) {
		e.sectionRefs = append(e.sectionRefs, refs...)
	}
}

func New(target Target, opts ...Option) *Engine {
	e := &Engine{
		target:         target,
		formatter:      datacontext.DefaultFormatter(),
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		assetsDir:      ".",
		chartWorkbooks: true,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// RenderDocument renders every page of doc and returns the w:document root.
// doc may be modified (margin inheritance), callers pass a clone.
func (e *Engine) RenderDocument(doc *model.Document, ctx *datacontext.Context) (*ooxml.Element, error) {
	if ctx == nil {
		ctx = datacontext.New()
	}

	root := ooxml.New("w:document", ooxml.DocumentNamespaces()...)
	body := root.AppendChild(ooxml.New("w:body"))

	e.lastSection = nil

	for i, page := range doc.Pages {
		var err error

		switch p := page.(type) {
		case *model.Page:
			err = e.renderPage(doc, p, body, ctx)
		case *model.ForEachPage:
			err = e.renderForEachPage(doc, p, body, ctx)
		case nil:
			continue
		default:
			err = fmt.Errorf("%s is not a page", page.Kind())
		}

		if err != nil {
			return nil, fmt.Errorf("unable to render page %d: %w", i, err)
		}
	}

	e.closeBody(doc, body)

	e.logger.Debug("document rendered",
		"sections", len(body.FindAll("w:sectPr")),
		"drawings", len(body.FindAll("w:drawing")),
	)

	return root, nil
}

// renderElement dispatches a content node to its renderer.
func (e *Engine) renderElement(el model.Element, parent *ooxml.Element, ctx *datacontext.Context) error {
	if el == nil {
		return nil
	}

	if !e.visible(el.Base().ShowKey, ctx) {
		e.logger.Debug("element hidden", "kind", el.Kind(), "showKey", el.Base().ShowKey)
		return nil
	}

	switch node := el.(type) {
	case *model.Paragraph:
		return e.renderParagraph(node, parent, ctx)
	case *model.Label:
		_, err := e.renderLabel(node, parent, ctx)
		return err
	case *model.Table:
		return e.renderTable(node, parent, ctx)
	case *model.BarModel:
		_, err := e.renderChart(node, parent, ctx)
		return err
	case *model.Image:
		return e.renderImage(node, parent, ctx)
	case *model.Barcode:
		return e.renderBarcode(node, parent, ctx)
	case *model.PageBreak:
		e.renderPageBreak(parent)
		return nil
	case *model.ForEach:
		return e.renderForEach(node, parent, ctx)
	case *model.Page, *model.ForEachPage:
		return fmt.Errorf("%s can only be used as a document page", el.Kind())
	}

	return fmt.Errorf("%w: %T", model.ErrUnknownElement, el)
}

// visible reports whether a node guarded by showKey must be rendered: only a
// boolean item bound to false hides it.
func (e *Engine) visible(showKey string, ctx *datacontext.Context) bool {
	if showKey == "" {
		return true
	}

	show, err := datacontext.Get[*datacontext.BooleanModel](ctx, showKey)
	if err != nil {
		return true
	}

	return show.Value
}

// runParent returns the element runs are appended to: parent itself, or a
// new paragraph when parent is a block container.
func runParent(parent *ooxml.Element) *ooxml.Element {
	switch parent.Name {
	case "w:body", "w:tc":
		return parent.AppendChild(ooxml.New("w:p"))
	}

	return parent
}
