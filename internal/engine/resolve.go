package engine

import (
	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/model"
)

// Resolve returns a copy of el whose own text fields have their placeholder
// tokens substituted from ctx. Children are left untouched: they resolve
// against their own scope when rendered. Neither el nor ctx is modified.
func Resolve(el model.Element, ctx *datacontext.Context, f *datacontext.Formatter) model.Element {
	switch node := el.(type) {
	case *model.Label:
		return resolveLabel(node, ctx, f)
	case *model.BarModel:
		return resolveChart(node, ctx, f)
	case *model.Image:
		return resolveImage(node, ctx, f)
	case *model.Barcode:
		return resolveBarcode(node, ctx, f)
	case *model.Paragraph:
		c := *node
		c.Shading = ctx.Replace(c.Shading, f)
		return &c
	}

	return el
}

func resolveLabel(label *model.Label, ctx *datacontext.Context, f *datacontext.Formatter) *model.Label {
	c := *label
	c.Text = ctx.Replace(c.Text, f)
	c.FontName = ctx.Replace(c.FontName, f)
	c.FontSize = ctx.Replace(c.FontSize, f)
	c.FontColor = ctx.Replace(c.FontColor, f)
	c.Shading = ctx.Replace(c.Shading, f)

	return &c
}

func resolveChart(chart *model.BarModel, ctx *datacontext.Context, f *datacontext.Formatter) *model.BarModel {
	c := chart.Clone().(*model.BarModel)
	c.Title = ctx.Replace(c.Title, f)

	for i := range c.Categories {
		c.Categories[i].Name = ctx.Replace(c.Categories[i].Name, f)
	}

	for i := range c.Series {
		c.Series[i].Name = ctx.Replace(c.Series[i].Name, f)
	}

	return c
}

func resolveImage(image *model.Image, ctx *datacontext.Context, f *datacontext.Formatter) *model.Image {
	c := image.Clone().(*model.Image)
	c.Path = ctx.Replace(c.Path, f)

	return c
}

func resolveBarcode(barcode *model.Barcode, ctx *datacontext.Context, f *datacontext.Formatter) *model.Barcode {
	c := *barcode
	c.Value = ctx.Replace(c.Value, f)

	return &c
}
