package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"maps"
	"path"
	"slices"

	goziputils "github.com/JJJJJJack/go-zip-utils"
)

const (
	documentFilename     = "word/document.xml"
	documentRelsFilename = "word/_rels/document.xml.rels"
	stylesFilename       = "word/styles.xml"
	rootRelsFilename     = "_rels/.rels"

	// ChartWorkbookRelID is the id, inside a chart part's own relationships,
	// of the embedded workbook holding the chart data.
	ChartWorkbookRelID = "rId1"
)

// Package is a WordprocessingML package under construction: the main
// document plus the chart, workbook and media parts the renderers add. It is
// either blank or derived from a base .docx whose styles, headers, footers
// and theme are carried over.
type Package struct {
	base         goziputils.ZipMap
	contentTypes *contentTypes
	documentRels *relationship
	meta         *documentMeta
	sectionRefs  []SectionReference

	// generated parts, by part name
	parts map[string][]byte
}

// NewPackage returns a blank package with default styles.
func NewPackage() *Package {
	rels := &relationship{}
	rels.addRelationship(stylesRelationship, "styles.xml")

	return &Package{
		contentTypes: newContentTypes(),
		documentRels: rels,
		meta:         &documentMeta{},
		parts: map[string][]byte{
			rootRelsFilename: []byte(rootRelsXml),
			stylesFilename:   []byte(defaultStylesXml),
		},
	}
}

var sectionRelationshipTypes = map[string]string{
	"w:headerReference": headerRelationship,
	"w:footerReference": footerRelationship,
}

// OpenPackage returns a package based on an existing .docx. Its main
// document body is discarded when the package is written; every other part
// is kept.
func OpenPackage(docxBytes []byte) (*Package, error) {
	zm, err := goziputils.NewZipMapFromBytes(docxBytes)
	if err != nil {
		return nil, fmt.Errorf("unable to create DOCX zip map: %w", err)
	}

	for _, required := range []string{contentTypesFilename, documentFilename, documentRelsFilename} {
		if zm[required] == nil {
			return nil, fmt.Errorf("%s not found in the DOCX file", required)
		}
	}

	ctData, err := goziputils.ReadZipFileContent(zm[contentTypesFilename])
	if err != nil {
		return nil, fmt.Errorf("unable to read content types file: %w", err)
	}

	ct, err := parseContentTypes(ctData)
	if err != nil {
		return nil, fmt.Errorf("unable to parse content types file: %w", err)
	}

	relData, err := goziputils.ReadZipFileContent(zm[documentRelsFilename])
	if err != nil {
		return nil, fmt.Errorf("unable to read rel file '%s': %w", documentRelsFilename, err)
	}

	rels, err := parseRelationship(relData)
	if err != nil {
		return nil, fmt.Errorf("unable to parse rel file '%s': %w", documentRelsFilename, err)
	}

	meta, err := parseDocumentMeta(zm)
	if err != nil {
		return nil, fmt.Errorf("unable to parse document metadata: %w", err)
	}

	documentXml, err := goziputils.ReadZipFileContent(zm[documentFilename])
	if err != nil {
		return nil, fmt.Errorf("unable to read document file: %w", err)
	}

	sectionRefs := []SectionReference{}
	for _, ref := range parseSectionReferences(string(documentXml)) {
		rel, ok := rels.target(ref.RelID)
		if ok && rel.Type == sectionRelationshipTypes[ref.Element] {
			sectionRefs = append(sectionRefs, ref)
		}
	}

	return &Package{
		base:         zm,
		contentTypes: ct,
		documentRels: rels,
		meta:         meta,
		sectionRefs:  sectionRefs,
		parts:        map[string][]byte{},
	}, nil
}

// SectionReferences returns the header and footer references every section
// of the generated document should carry.
func (p *Package) SectionReferences() []SectionReference {
	return p.sectionRefs
}

// SetDocument sets the content of the main document part.
func (p *Package) SetDocument(content []byte) {
	p.parts[documentFilename] = content
}

// NextDocPrID returns an identifier for a wp:docPr element that is unique in
// the package.
func (p *Package) NextDocPrID() (uint32, error) {
	return p.meta.RandUniqueDocPrId()
}

// AddChart adds a chart part and returns the id of its relationship from the
// main document. When workbook is not nil it is embedded and referenced from
// the chart as [ChartWorkbookRelID].
func (p *Package) AddChart(chartSpace, workbook []byte) (string, error) {
	n := p.meta.NextChartNumber()
	chartFilename := fmt.Sprintf("word/charts/chart%d.xml", n)

	p.parts[chartFilename] = chartSpace
	p.contentTypes.AddOverrideUnique("/"+chartFilename, chartContentType)

	if workbook != nil {
		w := p.meta.NextWorkbookNumber()
		xlsxFilename := fmt.Sprintf("word/embeddings/Microsoft_Excel_Worksheet%d.xlsx", w)

		chartRels := &relationship{}
		chartRels.addRelationship(packageRelationship, "../embeddings/"+path.Base(xlsxFilename))

		relsData, err := chartRels.toXML()
		if err != nil {
			return "", fmt.Errorf("unable to marshal rels of '%s': %w", chartFilename, err)
		}

		p.parts[xlsxFilename] = workbook
		p.parts[fmt.Sprintf("word/charts/_rels/chart%d.xml.rels", n)] = relsData
		p.contentTypes.AddDefaultUnique("xlsx", xlsxContentType)
	}

	return p.documentRels.addRelationship(chartRelationship, mediaTarget(chartFilename)), nil
}

// AddMedia adds an image part and returns the id of its relationship from
// the main document.
func (p *Package) AddMedia(extension string, data []byte) (string, error) {
	ext, err := NormalizeMediaExtension(extension)
	if err != nil {
		return "", err
	}

	n := p.meta.NextImageNumber()
	mediaFilename := fmt.Sprintf("word/media/image%d.%s", n, ext)

	p.parts[mediaFilename] = data
	p.contentTypes.AddDefaultUnique(ext, mediaContentTypes[ext])

	return p.documentRels.addRelationship(imageRelationship, mediaTarget(mediaFilename)), nil
}

// PartNames returns the names of every part the package will contain.
func (p *Package) PartNames() []string {
	names := map[string]struct{}{
		contentTypesFilename: {},
		documentRelsFilename: {},
		documentFilename:     {},
	}

	for name := range p.base {
		names[name] = struct{}{}
	}

	for name := range p.parts {
		names[name] = struct{}{}
	}

	return slices.Sorted(maps.Keys(names))
}

// WriteTo writes the package as a zip archive.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	if p.parts[documentFilename] == nil {
		return 0, fmt.Errorf("the main document has not been set")
	}

	output := bytes.Buffer{}
	zipWriter := zip.NewWriter(&output)

	// Copy all base files except the ones that are regenerated
	for _, filename := range slices.Sorted(maps.Keys(p.base)) {
		switch filename {
		case contentTypesFilename, documentRelsFilename, documentFilename:
			continue
		}

		if _, ok := p.parts[filename]; ok {
			continue
		}

		err := goziputils.CopyFile(zipWriter, p.base[filename])
		if err != nil {
			return 0, fmt.Errorf("unable to copy original file '%s': %w", filename, err)
		}
	}

	ctData, err := p.contentTypes.ToXml()
	if err != nil {
		return 0, fmt.Errorf("unable to marshal content types to XML: %w", err)
	}

	relsData, err := p.documentRels.toXML()
	if err != nil {
		return 0, fmt.Errorf("unable to marshal document rels: %w", err)
	}

	generated := maps.Clone(p.parts)
	generated[contentTypesFilename] = ctData
	generated[documentRelsFilename] = relsData

	for _, filename := range slices.Sorted(maps.Keys(generated)) {
		err := goziputils.WriteFile(zipWriter, filename, generated[filename])
		if err != nil {
			return 0, fmt.Errorf("unable to write file '%s': %w", filename, err)
		}
	}

	err = zipWriter.Close()
	if err != nil {
		return 0, fmt.Errorf("unable to close zip writer: %w", err)
	}

	return output.WriteTo(w)
}
