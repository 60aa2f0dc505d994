package engine

import (
	"fmt"
	"strconv"

	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/internal/docx"
	"github.com/JJJJJJack/go-report-docx/internal/ooxml"
	"github.com/JJJJJJack/go-report-docx/internal/xlsx"
	"github.com/JJJJJJack/go-report-docx/model"
)

const (
	categoryAxisID = "48650112"
	valueAxisID    = "48672768"
)

// renderChart renders a bar or doughnut chart into its own part and appends
// the drawing run to parent. It returns nil, nil when the chart is bound to
// missing data.
func (e *Engine) renderChart(chart *model.BarModel, parent *ooxml.Element, ctx *datacontext.Context) (*ooxml.Element, error) {
	bound, ok := e.bindChart(chart, ctx)
	if !ok {
		return nil, nil
	}

	resolved := Resolve(bound, ctx, e.formatter).(*model.BarModel)

	err := resolved.Validate()
	if err != nil {
		return nil, err
	}

	b := &chartBuilder{chart: resolved}
	if e.chartWorkbooks {
		b.data = chartData(resolved)
	}

	chartSpace, err := b.chartSpace()
	if err != nil {
		return nil, err
	}

	content, err := chartSpace.Bytes()
	if err != nil {
		return nil, fmt.Errorf("unable to encode chart: %w", err)
	}

	var workbook []byte
	if b.data != nil {
		workbook, err = b.data.Workbook()
		if err != nil {
			return nil, fmt.Errorf("unable to build chart workbook: %w", err)
		}
	}

	relID, err := e.target.AddChart(content, workbook)
	if err != nil {
		return nil, fmt.Errorf("unable to add chart: %w", err)
	}

	cx, cy := resolved.Size()

	run, err := e.chartInline(relID, cx, cy)
	if err != nil {
		return nil, err
	}

	runParent(parent).Append(run)

	return run, nil
}

// bindChart returns a copy of chart carrying the data bound to its
// DataSourceKey. ok is false when the bound data is incomplete.
func (e *Engine) bindChart(chart *model.BarModel, ctx *datacontext.Context) (*model.BarModel, bool) {
	out := chart.Clone().(*model.BarModel)
	if chart.DataSourceKey == "" {
		return out, true
	}

	bound, err := datacontext.Get[*datacontext.BarChartModel](ctx, chart.DataSourceKey)
	if err != nil {
		e.logger.Debug("chart data not bound, using the template data", "key", chart.DataSourceKey, "error", err)
		return out, true
	}

	content := bound.BarChartContent
	if content == nil || content.Categories == nil || content.Series == nil {
		e.logger.Debug("chart skipped, bound data is incomplete", "key", chart.DataSourceKey)
		return nil, false
	}

	out.Categories = make([]model.BarCategory, len(content.Categories))
	for i, c := range content.Categories {
		out.Categories[i] = model.BarCategory{Name: c.Name, Color: c.Color}
	}

	out.Series = make([]model.BarSerie, len(content.Series))
	for i, s := range content.Series {
		out.Series[i] = model.BarSerie{
			Name:              s.Name,
			Color:             s.Color,
			DataLabelColor:    s.DataLabelColor,
			LabelFormatString: s.LabelFormatString,
			Values:            append([]float64(nil), s.Values...),
		}
	}

	return out, true
}

func chartData(chart *model.BarModel) *xlsx.ChartData {
	data := &xlsx.ChartData{
		Categories: make([]string, len(chart.Categories)),
		Series:     make([]xlsx.Serie, len(chart.Series)),
	}

	for i, c := range chart.Categories {
		data.Categories[i] = c.Name
	}

	for i, s := range chart.Series {
		data.Series[i] = xlsx.Serie{Name: s.Name, Values: s.Values}
	}

	return data
}

// chartBuilder emits the c:chartSpace of a validated chart. When data is set
// the series reference the embedded workbook, otherwise they carry literals.
type chartBuilder struct {
	chart *model.BarModel
	data  *xlsx.ChartData
}

func (b *chartBuilder) chartSpace() (*ooxml.Element, error) {
	chart := b.chart

	plot, err := b.plot()
	if err != nil {
		return nil, err
	}

	plotArea := ooxml.New("c:plotArea").Append(ooxml.New("c:layout"), plot)
	if chart.BarChartType != model.DoughnutChart {
		valAx, err := b.valueAxis()
		if err != nil {
			return nil, err
		}

		plotArea.Append(b.categoryAxis(), valAx)
	}

	c := ooxml.New("c:chart")
	switch {
	case chart.ShowTitle && chart.Title != "":
		c.Append(title(chart.Title), ooxml.BoolVal("c:autoTitleDeleted", false))
	case chart.ShowTitle:
		// Word fills in a title of its own
		c.Append(
			ooxml.New("c:title").Append(ooxml.BoolVal("c:overlay", false)),
			ooxml.BoolVal("c:autoTitleDeleted", false),
		)
	default:
		c.Append(ooxml.BoolVal("c:autoTitleDeleted", true))
	}

	c.Append(plotArea)

	if chart.ShowLegend {
		c.Append(b.legend())
	}

	c.Append(
		ooxml.BoolVal("c:plotVisOnly", true),
		ooxml.Val("c:dispBlanksAs", "gap"),
		ooxml.BoolVal("c:showDLblsOverMax", false),
	)

	space := ooxml.New("c:chartSpace", ooxml.ChartNamespaces()...).Append(
		ooxml.Val("c:lang", "en-US"),
		ooxml.BoolVal("c:roundedCorners", false),
		c,
	)

	if !chart.HasBorder {
		space.Append(ooxml.New("c:spPr").Append(ooxml.New("a:ln").Append(ooxml.New("a:noFill"))))
	}

	if b.data != nil {
		space.Append(ooxml.New("c:externalData", "r:id", docx.ChartWorkbookRelID).Append(
			ooxml.BoolVal("c:autoUpdate", false),
		))
	}

	return space, nil
}

func (b *chartBuilder) plot() (*ooxml.Element, error) {
	if b.chart.BarChartType == model.DoughnutChart {
		return b.doughnutPlot()
	}

	return b.barPlot()
}

func (b *chartBuilder) barPlot() (*ooxml.Element, error) {
	chart := b.chart

	direction := chart.BarDirection
	if direction == "" {
		direction = model.BarDirectionBar
	}

	grouping := chart.BarGrouping
	if grouping == "" {
		grouping = model.GroupingClustered
	}

	plot := ooxml.New("c:barChart").Append(
		ooxml.Val("c:barDir", string(direction)),
		ooxml.Val("c:grouping", string(grouping)),
		ooxml.BoolVal("c:varyColors", false),
	)

	for i, serie := range chart.Series {
		ser := ooxml.New("c:ser").Append(
			ooxml.IntVal("c:idx", i),
			ooxml.IntVal("c:order", i),
			b.serieText(i, serie.Name),
		)

		if serie.Color != "" {
			color, err := model.NormalizeColor(fmt.Sprintf("series[%d].color", i), serie.Color)
			if err != nil {
				return nil, err
			}
			ser.Append(solidFillProperties(color))
		}

		ser.Append(ooxml.BoolVal("c:invertIfNegative", false))

		if serie.LabelFormatString != "" || serie.DataLabelColor != "" {
			dLbls, err := b.serieLabels(i, serie)
			if err != nil {
				return nil, err
			}
			ser.Append(dLbls)
		}

		ser.Append(b.categories(), b.values(i, serie.Values))
		plot.Append(ser)
	}

	dLbls, err := b.chartLabels()
	if err != nil {
		return nil, err
	}
	plot.Append(dLbls)

	gapWidth := model.DefaultGapWidth
	if chart.SpaceBetweenLineCategories != nil {
		gapWidth = *chart.SpaceBetweenLineCategories
	}
	plot.Append(ooxml.IntVal("c:gapWidth", gapWidth))

	if grouping == model.GroupingStacked || grouping == model.GroupingPercentStacked {
		plot.Append(ooxml.IntVal("c:overlap", 100))
	}

	plot.Append(ooxml.Val("c:axId", categoryAxisID), ooxml.Val("c:axId", valueAxisID))

	return plot, nil
}

func (b *chartBuilder) doughnutPlot() (*ooxml.Element, error) {
	chart := b.chart

	plot := ooxml.New("c:doughnutChart").Append(ooxml.BoolVal("c:varyColors", true))

	for i, serie := range chart.Series {
		ser := ooxml.New("c:ser").Append(
			ooxml.IntVal("c:idx", i),
			ooxml.IntVal("c:order", i),
			b.serieText(i, serie.Name),
		)

		if serie.Color != "" {
			color, err := model.NormalizeColor(fmt.Sprintf("series[%d].color", i), serie.Color)
			if err != nil {
				return nil, err
			}
			ser.Append(solidFillProperties(color))
		}

		for j, category := range chart.Categories {
			if category.Color == "" {
				continue
			}

			color, err := model.NormalizeColor(fmt.Sprintf("categories[%d].color", j), category.Color)
			if err != nil {
				return nil, err
			}

			ser.Append(ooxml.New("c:dPt").Append(
				ooxml.IntVal("c:idx", j),
				ooxml.BoolVal("c:bubble3D", false),
				solidFillProperties(color),
			))
		}

		if serie.LabelFormatString != "" || serie.DataLabelColor != "" {
			dLbls, err := b.serieLabels(i, serie)
			if err != nil {
				return nil, err
			}
			ser.Append(dLbls)
		}

		ser.Append(b.categories(), b.values(i, serie.Values))
		plot.Append(ser)
	}

	dLbls, err := b.chartLabels()
	if err != nil {
		return nil, err
	}
	dLbls.Append(ooxml.BoolVal("c:showLeaderLines", true))

	plot.Append(
		dLbls,
		ooxml.IntVal("c:firstSliceAng", 0),
		ooxml.IntVal("c:holeSize", 50),
	)

	return plot, nil
}

// chartLabels returns the plot level c:dLbls.
func (b *chartBuilder) chartLabels() (*ooxml.Element, error) {
	dLbls := ooxml.New("c:dLbls")

	if b.chart.ShowDataLabel && b.chart.DataLabelColor != "" {
		color, err := model.NormalizeColor("dataLabelColor", b.chart.DataLabelColor)
		if err != nil {
			return nil, err
		}
		dLbls.Append(colorTextProperties(color))
	}

	return dLbls.Append(labelFlags(b.chart.ShowDataLabel)...), nil
}

func (b *chartBuilder) serieLabels(i int, serie model.BarSerie) (*ooxml.Element, error) {
	dLbls := ooxml.New("c:dLbls")

	if serie.LabelFormatString != "" {
		dLbls.Append(ooxml.New("c:numFmt", "formatCode", serie.LabelFormatString, "sourceLinked", "0"))
	}

	if serie.DataLabelColor != "" {
		color, err := model.NormalizeColor(fmt.Sprintf("series[%d].dataLabelColor", i), serie.DataLabelColor)
		if err != nil {
			return nil, err
		}
		dLbls.Append(colorTextProperties(color))
	}

	return dLbls.Append(labelFlags(b.chart.ShowDataLabel)...), nil
}

func labelFlags(showValue bool) []*ooxml.Element {
	return []*ooxml.Element{
		ooxml.BoolVal("c:showLegendKey", false),
		ooxml.BoolVal("c:showVal", showValue),
		ooxml.BoolVal("c:showCatName", false),
		ooxml.BoolVal("c:showSerName", false),
		ooxml.BoolVal("c:showPercent", false),
		ooxml.BoolVal("c:showBubbleSize", false),
	}
}

func (b *chartBuilder) serieText(i int, name string) *ooxml.Element {
	if b.data == nil {
		return ooxml.New("c:tx").Append(ooxml.New("c:v").WithText(name))
	}

	return ooxml.New("c:tx").Append(ooxml.New("c:strRef").Append(
		ooxml.New("c:f").WithText(b.data.SerieNameRef(i)),
		ooxml.New("c:strCache").Append(
			ooxml.IntVal("c:ptCount", 1),
			point(0, name),
		),
	))
}

func (b *chartBuilder) categories() *ooxml.Element {
	names := ooxml.New("c:strLit")
	if b.data != nil {
		names.Name = "c:strCache"
	}

	names.Append(ooxml.IntVal("c:ptCount", len(b.chart.Categories)))
	for i, c := range b.chart.Categories {
		names.Append(point(i, c.Name))
	}

	if b.data == nil {
		return ooxml.New("c:cat").Append(names)
	}

	return ooxml.New("c:cat").Append(ooxml.New("c:strRef").Append(
		ooxml.New("c:f").WithText(b.data.CategoriesRef()),
		names,
	))
}

func (b *chartBuilder) values(i int, values []float64) *ooxml.Element {
	numbers := ooxml.New("c:numLit")
	if b.data != nil {
		numbers.Name = "c:numCache"
	}

	numbers.Append(
		ooxml.New("c:formatCode").WithText("General"),
		ooxml.IntVal("c:ptCount", len(values)),
	)
	for j, v := range values {
		numbers.Append(point(j, strconv.FormatFloat(v, 'f', -1, 64)))
	}

	if b.data == nil {
		return ooxml.New("c:val").Append(numbers)
	}

	return ooxml.New("c:val").Append(ooxml.New("c:numRef").Append(
		ooxml.New("c:f").WithText(b.data.ValuesRef(i)),
		numbers,
	))
}

func point(idx int, value string) *ooxml.Element {
	return ooxml.New("c:pt", "idx", strconv.Itoa(idx)).Append(ooxml.New("c:v").WithText(value))
}

func (b *chartBuilder) categoryAxis() *ooxml.Element {
	chart := b.chart

	axPos := "l"
	if chart.BarDirection == model.BarDirectionColumn {
		axPos = "b"
	}

	ax := ooxml.New("c:catAx").Append(
		ooxml.Val("c:axId", categoryAxisID),
		ooxml.New("c:scaling").Append(ooxml.Val("c:orientation", "minMax")),
		ooxml.BoolVal("c:delete", chart.DeleteAxeCategory),
		ooxml.Val("c:axPos", axPos),
		ooxml.New("c:numFmt", "formatCode", "General", "sourceLinked", "1"),
		ooxml.Val("c:majorTickMark", "none"),
		ooxml.Val("c:minorTickMark", "none"),
		ooxml.Val("c:tickLblPos", "nextTo"),
	)

	if !chart.ShowMajorGridlines {
		ax.Append(ooxml.New("c:spPr").Append(ooxml.New("a:ln").Append(ooxml.New("a:noFill"))))
	}

	return ax.Append(
		ooxml.Val("c:crossAx", valueAxisID),
		ooxml.Val("c:crosses", "autoZero"),
		ooxml.BoolVal("c:auto", true),
		ooxml.Val("c:lblAlgn", "ctr"),
		ooxml.IntVal("c:lblOffset", 100),
		ooxml.BoolVal("c:noMultiLvlLbl", false),
	)
}

func (b *chartBuilder) valueAxis() (*ooxml.Element, error) {
	chart := b.chart

	axPos := "b"
	if chart.BarDirection == model.BarDirectionColumn {
		axPos = "l"
	}

	ax := ooxml.New("c:valAx").Append(
		ooxml.Val("c:axId", valueAxisID),
		ooxml.New("c:scaling").Append(ooxml.Val("c:orientation", "minMax")),
		ooxml.BoolVal("c:delete", chart.DeleteAxeValue),
		ooxml.Val("c:axPos", axPos),
	)

	if chart.ShowMajorGridlines {
		gridlines := ooxml.New("c:majorGridlines")

		if chart.MajorGridlinesColor != "" {
			color, err := model.NormalizeColor("majorGridlinesColor", chart.MajorGridlinesColor)
			if err != nil {
				return nil, err
			}

			gridlines.Append(ooxml.New("c:spPr").Append(
				ooxml.New("a:ln").Append(solidFill(color)),
			))
		}

		ax.Append(gridlines)
	}

	return ax.Append(
		ooxml.New("c:numFmt", "formatCode", "General", "sourceLinked", "1"),
		ooxml.Val("c:majorTickMark", "out"),
		ooxml.Val("c:minorTickMark", "none"),
		ooxml.Val("c:tickLblPos", "nextTo"),
		ooxml.Val("c:crossAx", categoryAxisID),
		ooxml.Val("c:crosses", "autoZero"),
		ooxml.Val("c:crossBetween", "between"),
	), nil
}

func (b *chartBuilder) legend() *ooxml.Element {
	legend := ooxml.New("c:legend").Append(
		ooxml.Val("c:legendPos", "r"),
		ooxml.New("c:layout"),
		ooxml.BoolVal("c:overlay", false),
	)

	if b.chart.FontFamilyLegend != "" {
		legend.Append(textProperties(
			ooxml.New("a:defRPr").Append(ooxml.New("a:latin", "typeface", b.chart.FontFamilyLegend)),
		))
	}

	return legend
}

func title(text string) *ooxml.Element {
	return ooxml.New("c:title").Append(
		ooxml.New("c:tx").Append(ooxml.New("c:rich").Append(
			ooxml.New("a:bodyPr"),
			ooxml.New("a:lstStyle"),
			ooxml.New("a:p").Append(
				ooxml.New("a:r").Append(ooxml.New("a:t").WithText(text)),
			),
		)),
		ooxml.BoolVal("c:overlay", false),
	)
}

func solidFill(color string) *ooxml.Element {
	return ooxml.New("a:solidFill").Append(ooxml.Val("a:srgbClr", color))
}

func solidFillProperties(color string) *ooxml.Element {
	return ooxml.New("c:spPr").Append(solidFill(color))
}

func colorTextProperties(color string) *ooxml.Element {
	return textProperties(ooxml.New("a:defRPr").Append(solidFill(color)))
}

func textProperties(defRPr *ooxml.Element) *ooxml.Element {
	return ooxml.New("c:txPr").Append(
		ooxml.New("a:bodyPr"),
		ooxml.New("a:lstStyle"),
		ooxml.New("a:p").Append(
			ooxml.New("a:pPr").Append(defRPr),
			ooxml.New("a:endParaRPr", "lang", "en-US"),
		),
	)
}
