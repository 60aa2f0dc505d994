package engine

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/internal/docx"
	"github.com/JJJJJJack/go-report-docx/internal/ooxml"
	"github.com/JJJJJJack/go-report-docx/model"
)

var errImageSource = errors.New("image has neither a path nor a context key")

func (e *Engine) renderImage(img *model.Image, parent *ooxml.Element, ctx *datacontext.Context) error {
	resolved := Resolve(img, ctx, e.formatter).(*model.Image)

	data, ext, err := e.imageContent(resolved, ctx)
	if err != nil {
		return err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("unable to decode image: %w", err)
	}

	if ext == "" {
		ext = format
	}

	ext, err = docx.NormalizeMediaExtension(ext)
	if err != nil {
		return err
	}

	relID, err := e.target.AddMedia(ext, data)
	if err != nil {
		return fmt.Errorf("unable to add image: %w", err)
	}

	width, height := fit(cfg.Width, cfg.Height, resolved.MaxWidth, resolved.MaxHeight)

	run, err := e.pictureInline(relID, int64(width)*model.EMUPerPixel, int64(height)*model.EMUPerPixel)
	if err != nil {
		return err
	}

	runParent(parent).Append(run)

	return nil
}

// imageContent returns the image bytes and their extension, from the context
// item bound to ContextKey or from Path inside the assets directory.
func (e *Engine) imageContent(img *model.Image, ctx *datacontext.Context) ([]byte, string, error) {
	if img.ContextKey != "" {
		item, err := datacontext.Get[*datacontext.ImageModel](ctx, img.ContextKey)
		if err != nil {
			return nil, "", fmt.Errorf("unable to read image %s: %w", img.ContextKey, err)
		}

		return item.Data, item.Extension, nil
	}

	if img.Path == "" {
		return nil, "", errImageSource
	}

	path, err := securejoin.SecureJoin(e.assetsDir, img.Path)
	if err != nil {
		return nil, "", fmt.Errorf("unable to resolve image path %s: %w", img.Path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("unable to read image %s: %w", img.Path, err)
	}

	return data, filepath.Ext(path), nil
}

// fit scales width × height down, keeping the ratio, until it fits the
// optional bounds.
func fit(width, height int, maxWidth, maxHeight *int) (int, int) {
	w, h := float64(width), float64(height)

	if maxWidth != nil && *maxWidth > 0 && w > float64(*maxWidth) {
		h = h * float64(*maxWidth) / w
		w = float64(*maxWidth)
	}

	if maxHeight != nil && *maxHeight > 0 && h > float64(*maxHeight) {
		w = w * float64(*maxHeight) / h
		h = float64(*maxHeight)
	}

	return max(int(w+0.5), 1), max(int(h+0.5), 1)
}
