package engine

import (
	"fmt"
	"strconv"

	"github.com/JJJJJJack/go-report-docx/internal/ooxml"
)

// inline returns a run holding an inline drawing of cx × cy EMU around
// graphicData.
func (e *Engine) inline(name string, cx, cy int64, graphicData *ooxml.Element) (*ooxml.Element, error) {
	id, err := e.target.NextDocPrID()
	if err != nil {
		return nil, fmt.Errorf("unable to allocate drawing id: %w", err)
	}

	docPrID := strconv.FormatUint(uint64(id), 10)
	width := strconv.FormatInt(cx, 10)
	height := strconv.FormatInt(cy, 10)

	inline := ooxml.New("wp:inline", "distT", "0", "distB", "0", "distL", "0", "distR", "0").Append(
		ooxml.New("wp:extent", "cx", width, "cy", height),
		ooxml.New("wp:effectExtent", "l", "0", "t", "0", "r", "0", "b", "0"),
		ooxml.New("wp:docPr", "id", docPrID, "name", name),
		ooxml.New("wp:cNvGraphicFramePr").Append(ooxml.New("a:graphicFrameLocks", "noChangeAspect", "1")),
		ooxml.New("a:graphic").Append(graphicData),
	)

	return ooxml.New("w:r").Append(ooxml.New("w:drawing").Append(inline)), nil
}

// chartInline returns the drawing run of a chart part.
func (e *Engine) chartInline(relID string, cx, cy int64) (*ooxml.Element, error) {
	e.chartCount++

	graphicData := ooxml.New("a:graphicData", "uri", ooxml.GraphicDataChart).Append(
		ooxml.New("c:chart", "r:id", relID),
	)

	return e.inline("Chart "+strconv.Itoa(e.chartCount), cx, cy, graphicData)
}

// pictureInline returns the drawing run of a media part.
func (e *Engine) pictureInline(relID string, cx, cy int64) (*ooxml.Element, error) {
	e.pictureCount++
	name := "Picture " + strconv.Itoa(e.pictureCount)

	width := strconv.FormatInt(cx, 10)
	height := strconv.FormatInt(cy, 10)

	graphicData := ooxml.New("a:graphicData", "uri", ooxml.GraphicDataPicture).Append(
		ooxml.New("pic:pic").Append(
			ooxml.New("pic:nvPicPr").Append(
				ooxml.New("pic:cNvPr", "id", "0", "name", name),
				ooxml.New("pic:cNvPicPr"),
			),
			ooxml.New("pic:blipFill").Append(
				ooxml.New("a:blip", "r:embed", relID),
				ooxml.New("a:stretch").Append(ooxml.New("a:fillRect")),
			),
			ooxml.New("pic:spPr").Append(
				ooxml.New("a:xfrm").Append(
					ooxml.New("a:off", "x", "0", "y", "0"),
					ooxml.New("a:ext", "cx", width, "cy", height),
				),
				ooxml.New("a:prstGeom", "prst", "rect").Append(ooxml.New("a:avLst")),
			),
		),
	)

	return e.inline(name, cx, cy, graphicData)
}
