package docx

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	goziputils "github.com/JJJJJJack/go-zip-utils"
)

// documentMeta allocates the identifiers that must stay unique across the
// package: wp:docPr ids and part numbers.
type documentMeta struct {
	docPrIdsBijectiveIndex uint32
	docPrIds               []uint32
	greaterChartNumber     uint64
	greaterImageNumber     uint64
	greaterWorkbookNumber  uint64
}

const DOC_PR_ID_ROOF = 2_147_483_647 // docx id attributes are 32-bit signed integers

// rotl32 rotates a 32-bit integer left by k bits.
func rotl32(x uint32, k uint) uint32 {
	return (x << k) | (x >> (32 - k))
}

// bijective32 is a fast bijective permutation on 32-bit integers.
func bijective32(x uint32) uint32 {
	x *= 0x9E3779B1
	x = rotl32(x, 16)
	x ^= 0x85EBCA6B
	return x
}

func (d *documentMeta) RandUniqueDocPrId() (uint32, error) {
	if d.docPrIdsBijectiveIndex == 0 {
		d.docPrIdsBijectiveIndex = 1
	}

	docPrId := uint32(0)
	for i := 0; ; i++ {
		if i >= DOC_PR_ID_ROOF {
			return 0, fmt.Errorf("this should not happen, surpassed %d attempts to create a unique id for a wp:docPr tag", DOC_PR_ID_ROOF)
		}

		docPrId = bijective32(d.docPrIdsBijectiveIndex) % DOC_PR_ID_ROOF
		d.docPrIdsBijectiveIndex++

		if !slices.Contains(d.docPrIds, docPrId) && docPrId != 0 {
			break
		}
	}

	d.docPrIds = append(d.docPrIds, docPrId)

	return docPrId, nil
}

func (d *documentMeta) NextChartNumber() uint64 {
	d.greaterChartNumber++
	return d.greaterChartNumber
}

func (d *documentMeta) NextImageNumber() uint64 {
	d.greaterImageNumber++
	return d.greaterImageNumber
}

func (d *documentMeta) NextWorkbookNumber() uint64 {
	d.greaterWorkbookNumber++
	return d.greaterWorkbookNumber
}

var (
	docPrIdRegEx     = regexp.MustCompile(`<wp:docPr\s+id="(\d+)"`)
	chartNumberRegEx = regexp.MustCompile(`^word/charts/chart(\d+)\.xml$`)
	imageNumberRegEx = regexp.MustCompile(`^word/media/image(\d+)\.\w+$`)
	xlsxNumberRegEx  = regexp.MustCompile(`^word/embeddings/Microsoft_Excel_Worksheet(\d*)\.xlsx$`)
	headerFooterRE   = regexp.MustCompile(`^word/(header|footer)\d*\.xml$`)
)

// parseDocumentMeta collects the identifiers already used by a base package,
// so that generated parts never collide with the ones it carries over.
func parseDocumentMeta(zm goziputils.ZipMap) (*documentMeta, error) {
	d := documentMeta{}

	for filename, f := range zm {
		if m := chartNumberRegEx.FindStringSubmatch(filename); m != nil {
			d.greaterChartNumber = max(d.greaterChartNumber, parseNumber(m[1]))
			continue
		}

		if m := imageNumberRegEx.FindStringSubmatch(filename); m != nil {
			d.greaterImageNumber = max(d.greaterImageNumber, parseNumber(m[1]))
			continue
		}

		if m := xlsxNumberRegEx.FindStringSubmatch(filename); m != nil {
			d.greaterWorkbookNumber = max(d.greaterWorkbookNumber, parseNumber(m[1]))
			continue
		}

		if !headerFooterRE.MatchString(filename) {
			continue
		}

		content, err := goziputils.ReadZipFileContent(f)
		if err != nil {
			return nil, fmt.Errorf("unable to read zip file content of '%s': %w", filename, err)
		}

		for _, m := range docPrIdRegEx.FindAllStringSubmatch(string(content), -1) {
			docPrId, err := strconv.ParseUint(m[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("could not parse DocPr ID '%s': %w", m[1], err)
			}

			d.docPrIds = append(d.docPrIds, uint32(docPrId))
		}
	}

	return &d, nil
}

func parseNumber(s string) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// SectionReference is a header or footer reference of the base document's
// last section, carried into every generated section.
type SectionReference struct {
	// Element is "w:headerReference" or "w:footerReference".
	Element string
	Type    string
	RelID   string
}

var (
	sectionReferenceRegEx = regexp.MustCompile(`<w:(header|footer)Reference\b[^>]*/>`)
	attrRegEx             = regexp.MustCompile(`([\w:]+)="([^"]*)"`)
)

// TODO: use xml parsing instead of regex
func parseSectionReferences(documentXml string) []SectionReference {
	refs := []SectionReference{}

	for _, m := range sectionReferenceRegEx.FindAllStringSubmatch(documentXml, -1) {
		ref := SectionReference{Element: "w:" + m[1] + "Reference"}

		for _, attr := range attrRegEx.FindAllStringSubmatch(m[0], -1) {
			switch attr[1] {
			case "w:type":
				ref.Type = attr[2]
			case "r:id":
				ref.RelID = attr[2]
			}
		}

		if ref.RelID == "" || slices.ContainsFunc(refs, func(r SectionReference) bool {
			return r.Element == ref.Element && r.Type == ref.Type
		}) {
			continue
		}

		refs = append(refs, ref)
	}

	return refs
}

func mediaTarget(filename string) string {
	return strings.TrimPrefix(filename, "word/")
}
