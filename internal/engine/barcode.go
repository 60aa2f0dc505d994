package engine

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"
	"github.com/skip2/go-qrcode"

	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/internal/ooxml"
	"github.com/JJJJJJack/go-report-docx/model"
)

const (
	defaultQRSize        = 256
	defaultBarcodeWidth  = 300
	defaultBarcodeHeight = 80
)

func (e *Engine) renderBarcode(code *model.Barcode, parent *ooxml.Element, ctx *datacontext.Context) error {
	resolved := Resolve(code, ctx, e.formatter).(*model.Barcode)

	data, width, height, err := encodeBarcode(resolved)
	if err != nil {
		return fmt.Errorf("unable to encode %s barcode %q: %w", resolved.Symbology, resolved.Value, err)
	}

	relID, err := e.target.AddMedia("png", data)
	if err != nil {
		return fmt.Errorf("unable to add barcode: %w", err)
	}

	run, err := e.pictureInline(relID, int64(width)*model.EMUPerPixel, int64(height)*model.EMUPerPixel)
	if err != nil {
		return err
	}

	runParent(parent).Append(run)

	return nil
}

// encodeBarcode returns the PNG picture of the barcode and its pixel size.
func encodeBarcode(code *model.Barcode) ([]byte, int, int, error) {
	if code.Symbology == model.SymbologyQR || code.Symbology == "" {
		size := code.Width
		if size <= 0 {
			size = defaultQRSize
		}

		data, err := qrcode.Encode(code.Value, qrcode.Medium, size)
		if err != nil {
			return nil, 0, 0, err
		}

		return data, size, size, nil
	}

	var (
		bc  barcode.Barcode
		err error
	)

	switch code.Symbology {
	case model.SymbologyCode128:
		bc, err = code128.Encode(code.Value)
	case model.SymbologyEAN13:
		bc, err = ean.Encode(code.Value)
	default:
		return nil, 0, 0, fmt.Errorf("unknown symbology %q", code.Symbology)
	}

	if err != nil {
		return nil, 0, 0, err
	}

	width, height := code.Width, code.Height
	if width <= 0 {
		width = defaultBarcodeWidth
	}
	if height <= 0 {
		height = defaultBarcodeHeight
	}

	scaled, err := barcode.Scale(bc, width, height)
	if err != nil {
		return nil, 0, 0, err
	}

	buf := bytes.Buffer{}
	err = png.Encode(&buf, scaled)
	if err != nil {
		return nil, 0, 0, err
	}

	return buf.Bytes(), width, height, nil
}
