// Package goreportdocx renders report templates (pages, paragraphs, tables,
// charts, images) against a data context into WordprocessingML documents.
package goreportdocx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	goziputils "github.com/JJJJJJack/go-zip-utils"

	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/internal/docx"
	"github.com/JJJJJJack/go-report-docx/internal/engine"
	"github.com/JJJJJJack/go-report-docx/internal/ooxml"
	"github.com/JJJJJJack/go-report-docx/model"
	"github.com/JJJJJJack/go-report-docx/xml"
)

// ReportGenerator renders report templates into a .docx, either blank or
// based on an existing document whose styles, headers, footers and theme are
// kept. A generator is not safe for concurrent use.
type ReportGenerator struct {
	// base document bytes, nil for a blank document
	base                []byte
	config              *generatorConfig
	output              bytes.Buffer
	filesPreProcessors  xml.HandlersMap
	filesPostProcessors xml.HandlersMap
}

// NewReportGenerator creates a generator producing documents from scratch.
func NewReportGenerator(opts ...Option) (*ReportGenerator, error) {
	cfg, err := newGeneratorConfig(opts)
	if err != nil {
		return nil, err
	}

	return &ReportGenerator{
		config:              cfg,
		output:              bytes.Buffer{},
		filesPreProcessors:  make(xml.HandlersMap),
		filesPostProcessors: make(xml.HandlersMap),
	}, nil
}

// NewReportGeneratorFromBytes creates a generator based on the provided DOCX
// file bytes. The body of the base document is replaced by the rendered one.
func NewReportGeneratorFromBytes(docxBytes []byte, opts ...Option) (*ReportGenerator, error) {
	// fail early on a broken base document
	_, err := docx.OpenPackage(docxBytes)
	if err != nil {
		return nil, fmt.Errorf("unable to open base document: %w", err)
	}

	g, err := NewReportGenerator(opts...)
	if err != nil {
		return nil, err
	}

	g.base = docxBytes

	return g, nil
}

// NewReportGeneratorFromFilename creates a generator based on the provided
// DOCX filename (reading from disk).
func NewReportGeneratorFromFilename(docxFilename string, opts ...Option) (*ReportGenerator, error) {
	docxBytes, err := os.ReadFile(docxFilename)
	if err != nil {
		return nil, fmt.Errorf("unable to read file %s: %w", docxFilename, err)
	}

	return NewReportGeneratorFromBytes(docxBytes, opts...)
}

// AddPreProcessors adds XML pre-processing map in which the key is the XML file path
// (e.g., "word/header1.xml") and the value is a list of functions to be applied to that file
// of the base document before the report is rendered.
func (g *ReportGenerator) AddPreProcessors(filesPreProcessors xml.HandlersMap) {
	g.filesPreProcessors = filesPreProcessors
}

// AddPostProcessors adds XML post-processing map in which the key is the XML file path
// (e.g., "word/document.xml") and the value is a list of functions to be applied to that file
// after the report has been rendered.
func (g *ReportGenerator) AddPostProcessors(filesPostProcessors xml.HandlersMap) {
	g.filesPostProcessors = filesPostProcessors
}

// Generate renders doc against ctx. doc is never modified. On error the
// generator holds no output.
func (g *ReportGenerator) Generate(doc *model.Document, ctx *datacontext.Context) error {
	g.output.Reset()

	if doc == nil {
		return fmt.Errorf("no document to render")
	}

	pkg, err := g.openPackage()
	if err != nil {
		return err
	}

	g.config.logger.Debug("rendering document", "locale", g.config.formatter.Language().String())

	sectionRefs := []*ooxml.Element{}
	for _, ref := range pkg.SectionReferences() {
		sectionRefs = append(sectionRefs, ooxml.New(ref.Element, "w:type", ref.Type, "r:id", ref.RelID))
	}

	eng := engine.New(pkg,
		engine.WithFormatter(g.config.formatter),
		engine.WithLogger(g.config.logger),
		engine.WithAssetsDir(g.config.assetsDir),
		engine.WithChartWorkbooks(g.config.chartWorkbooks),
		engine.WithSectionReferences(sectionRefs...),
	)

	root, err := eng.RenderDocument(doc.Clone(), ctx)
	if err != nil {
		return fmt.Errorf("unable to render document: %w", err)
	}

	content, err := root.Bytes()
	if err != nil {
		return fmt.Errorf("unable to encode document: %w", err)
	}

	pkg.SetDocument(content)

	g.config.logger.Debug("writing package", "parts", len(pkg.PartNames()))

	output := bytes.Buffer{}
	_, err = pkg.WriteTo(&output)
	if err != nil {
		return fmt.Errorf("unable to write package: %w", err)
	}

	// custom user post processing
	data := output.Bytes()
	if len(g.filesPostProcessors) > 0 {
		data, err = processZip(data, g.filesPostProcessors)
		if err != nil {
			return fmt.Errorf("unable to post-process document: %w", err)
		}
	}

	g.output.Write(data)

	return nil
}

func (g *ReportGenerator) openPackage() (*docx.Package, error) {
	if g.base == nil {
		return docx.NewPackage(), nil
	}

	base := g.base

	// custom user pre processing
	if len(g.filesPreProcessors) > 0 {
		var err error
		base, err = processZip(base, g.filesPreProcessors)
		if err != nil {
			return nil, fmt.Errorf("unable to pre-process base document: %w", err)
		}
	}

	pkg, err := docx.OpenPackage(base)
	if err != nil {
		return nil, fmt.Errorf("unable to open base document: %w", err)
	}

	return pkg, nil
}

// processZip rewrites every file of the zip archive data that has handlers.
func processZip(data []byte, handlers xml.HandlersMap) ([]byte, error) {
	zipMap, err := goziputils.NewZipMapFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("unable to create zip map for processing: %w", err)
	}

	output := bytes.Buffer{}
	zipWriter := zip.NewWriter(&output)

	for _, filename := range slices.Sorted(maps.Keys(zipMap)) {
		f := zipMap[filename]

		if len(handlers[filename]) == 0 {
			err := goziputils.CopyFile(zipWriter, f)
			if err != nil {
				return nil, fmt.Errorf("unable to copy original file '%s' during processing: %w", f.Name, err)
			}

			continue
		}

		fileContent, err := goziputils.ReadZipFileContent(f)
		if err != nil {
			return nil, fmt.Errorf("unable to read file '%s' for processing: %w", f.Name, err)
		}

		processed, err := handlers.Apply(filename, string(fileContent))
		if err != nil {
			return nil, fmt.Errorf("error processing file '%s': %w", f.Name, err)
		}

		err = goziputils.RewriteFileIntoZipWriter(zipWriter, f, []byte(processed))
		if err != nil {
			return nil, fmt.Errorf("unable to rewrite processed file '%s': %w", f.Name, err)
		}
	}

	err = zipWriter.Close()
	if err != nil {
		return nil, fmt.Errorf("unable to close zip writer after processing: %w", err)
	}

	return output.Bytes(), nil
}

// Save saves the generated docx file to the specified filename.
func (g *ReportGenerator) Save(filename string) error {
	if g.output.Len() == 0 {
		return fmt.Errorf("no document has been generated")
	}

	return os.WriteFile(filename, g.output.Bytes(), 0644)
}

// Bytes returns the generated docx file bytes (empty if Generate was not
// used or failed).
func (g *ReportGenerator) Bytes() []byte {
	return g.output.Bytes()
}

// WriteTo writes the generated docx file to w.
func (g *ReportGenerator) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(g.output.Bytes())
	return int64(n), err
}

// GenerateReport renders a parsed report into blank document bytes.
func GenerateReport(report *model.Report, opts ...Option) ([]byte, error) {
	g, err := NewReportGenerator(opts...)
	if err != nil {
		return nil, err
	}

	err = g.Generate(report.Document, report.ContextModel)
	if err != nil {
		return nil, err
	}

	return g.Bytes(), nil
}
