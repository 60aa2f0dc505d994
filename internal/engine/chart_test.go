package engine

import (
	"bytes"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/internal/ooxml"
	"github.com/JJJJJJack/go-report-docx/model"
)

func salesChart() *model.BarModel {
	return &model.BarModel{
		Title:      "Sales",
		ShowTitle:  true,
		ShowLegend: true,
		Categories: []model.BarCategory{{Name: "Q1"}, {Name: "Q2"}},
		Series: []model.BarSerie{
			{Name: "2024", Color: "#FF0000", Values: []float64{1, 2.5}},
		},
	}
}

func renderChartPart(t *testing.T, chart *model.BarModel, ctx *datacontext.Context, opts ...Option) (*ooxml.Element, *recordingTarget) {
	t.Helper()

	target := &recordingTarget{}
	body := ooxml.New("w:body")

	run, err := New(target, opts...).renderChart(chart, body, ctx)
	require.NoError(t, err)

	return run, target
}

func TestRenderBarChart(t *testing.T) {
	run, target := renderChartPart(t, salesChart(), nil)

	require.NotNil(t, run)
	require.Len(t, target.charts, 1)

	xml := string(target.charts[0])
	assert.Contains(t, xml, `<c:barDir val="bar"/>`)
	assert.Contains(t, xml, `<c:grouping val="clustered"/>`)
	assert.Contains(t, xml, `<c:gapWidth val="55"/>`)
	assert.NotContains(t, xml, `c:overlap`)
	assert.Contains(t, xml, `<a:srgbClr val="FF0000"/>`)
	assert.Contains(t, xml, `<a:t>Sales</a:t>`)
	assert.Contains(t, xml, `<c:legendPos val="r"/>`)
	assert.Contains(t, xml, `<c:f>Sheet1!$B$1</c:f>`)
	assert.Contains(t, xml, `<c:externalData r:id="rId1">`)
	assert.Contains(t, xml, `<c:axId val="48650112"/>`)
	assert.Contains(t, xml, `<c:axId val="48672768"/>`)
	assert.Contains(t, xml, `<c:spPr><a:ln><a:noFill/></a:ln></c:spPr><c:externalData`)

	extent := run.Find("wp:extent")
	require.NotNil(t, extent)
	cx, _ := extent.AttrValue("cx")
	cy, _ := extent.AttrValue("cy")
	assert.Equal(t, strconv.Itoa(model.DefaultChartWidthEMU), cx)
	assert.Equal(t, strconv.Itoa(model.DefaultChartHeightEMU), cy)

	chart := run.Find("c:chart")
	require.NotNil(t, chart)
	id, _ := chart.AttrValue("r:id")
	assert.Equal(t, "rId1", id)
}

func TestRenderChartEmbedsWorkbook(t *testing.T) {
	_, target := renderChartPart(t, salesChart(), nil)

	require.NotNil(t, target.workbooks[0])

	f, err := excelize.OpenReader(bytes.NewReader(target.workbooks[0]))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"", "2024"}, {"Q1", "1"}, {"Q2", "2.5"}}, rows)
}

func TestRenderChartWithoutWorkbook(t *testing.T) {
	_, target := renderChartPart(t, salesChart(), nil, WithChartWorkbooks(false))

	require.Len(t, target.charts, 1)
	assert.Nil(t, target.workbooks[0])

	xml := string(target.charts[0])
	assert.Contains(t, xml, `<c:numLit>`)
	assert.Contains(t, xml, `<c:strLit>`)
	assert.NotContains(t, xml, `c:externalData`)
	assert.NotContains(t, xml, `<c:f>`)
}

func TestRenderChartSize(t *testing.T) {
	chart := salesChart()
	width, height := 100, 50
	chart.MaxWidth = &width
	chart.MaxHeight = &height

	run, _ := renderChartPart(t, chart, nil)

	extent := run.Find("wp:extent")
	cx, _ := extent.AttrValue("cx")
	cy, _ := extent.AttrValue("cy")
	assert.Equal(t, "952500", cx)
	assert.Equal(t, "476250", cy)
}

func TestRenderChartColumnStacked(t *testing.T) {
	chart := salesChart()
	chart.BarDirection = model.BarDirectionColumn
	chart.BarGrouping = model.GroupingStacked
	chart.ShowMajorGridlines = true
	chart.MajorGridlinesColor = "00ff00"

	_, target := renderChartPart(t, chart, nil)

	xml := string(target.charts[0])
	assert.Contains(t, xml, `<c:barDir val="col"/>`)
	assert.Contains(t, xml, `<c:overlap val="100"/>`)
	assert.Contains(t, xml, `<c:catAx><c:axId val="48650112"/><c:scaling><c:orientation val="minMax"/></c:scaling><c:delete val="0"/><c:axPos val="b"/>`)
	assert.Contains(t, xml, `<c:majorGridlines><c:spPr><a:ln><a:solidFill><a:srgbClr val="00ff00"/>`)
}

func TestRenderDoughnutChart(t *testing.T) {
	chart := salesChart()
	chart.BarChartType = model.DoughnutChart
	chart.Categories[1].Color = "0000FF"

	_, target := renderChartPart(t, chart, nil)

	xml := string(target.charts[0])
	assert.Contains(t, xml, `<c:doughnutChart><c:varyColors val="1"/>`)
	assert.Contains(t, xml, `<c:dPt><c:idx val="1"/><c:bubble3D val="0"/><c:spPr><a:solidFill><a:srgbClr val="0000FF"/>`)
	assert.Contains(t, xml, `<c:showLeaderLines val="1"/>`)
	assert.Contains(t, xml, `<c:holeSize val="50"/>`)
	assert.NotContains(t, xml, `c:catAx`)
}

func TestRenderChartSeriesCategoryMismatch(t *testing.T) {
	chart := salesChart()
	chart.Series[0].Values = []float64{1, 2, 3}

	target := &recordingTarget{}
	_, err := New(target).renderChart(chart, ooxml.New("w:body"), nil)

	var chartErr *model.ChartModelError
	require.True(t, errors.As(err, &chartErr))
	assert.Equal(t, model.CodeSeriesCategoryMismatch, chartErr.Code)
	assert.Empty(t, target.charts)
}

func TestRenderChartUnknownType(t *testing.T) {
	chart := salesChart()
	chart.BarChartType = "LineChart"

	target := &recordingTarget{}
	_, err := New(target).renderChart(chart, ooxml.New("w:body"), nil)

	var chartErr *model.ChartModelError
	require.True(t, errors.As(err, &chartErr))
	assert.Equal(t, model.CodeUnknownChartType, chartErr.Code)
	assert.Empty(t, target.charts)
}

func TestRenderChartTitle(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		showTitle bool
		contains  []string
		absent    []string
	}{
		{
			name:      "explicit title",
			title:     "Sales",
			showTitle: true,
			contains:  []string{`<a:t>Sales</a:t>`, `<c:autoTitleDeleted val="0"/>`},
		},
		{
			name:      "automatic title",
			showTitle: true,
			contains:  []string{`<c:title><c:overlay val="0"/></c:title><c:autoTitleDeleted val="0"/>`},
			absent:    []string{`<c:tx>`},
		},
		{
			name:     "hidden title",
			title:    "Sales",
			contains: []string{`<c:autoTitleDeleted val="1"/>`},
			absent:   []string{`<c:title>`, `<a:t>Sales</a:t>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart := salesChart()
			chart.Title = tt.title
			chart.ShowTitle = tt.showTitle

			_, target := renderChartPart(t, chart, nil)
			require.Len(t, target.charts, 1)

			xml := string(target.charts[0])
			for _, want := range tt.contains {
				assert.Contains(t, xml, want)
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, xml, unwanted)
			}
		})
	}
}

func TestRenderChartInvalidColors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*model.BarModel)
	}{
		{"serie color", func(c *model.BarModel) { c.Series[0].Color = "red" }},
		{"serie label color", func(c *model.BarModel) { c.Series[0].DataLabelColor = "#12345" }},
		{"data label color", func(c *model.BarModel) {
			c.ShowDataLabel = true
			c.DataLabelColor = "##FFFFFF"
		}},
		{"gridlines color", func(c *model.BarModel) {
			c.ShowMajorGridlines = true
			c.MajorGridlinesColor = "GGGGGG"
		}},
		{"doughnut category color", func(c *model.BarModel) {
			c.BarChartType = model.DoughnutChart
			c.Categories[0].Color = "blue"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart := salesChart()
			tt.modify(chart)

			target := &recordingTarget{}
			_, err := New(target).renderChart(chart, ooxml.New("w:body"), nil)

			require.ErrorIs(t, err, model.ErrInvalidColor)
			assert.Empty(t, target.charts)
		})
	}
}

func TestRenderChartMissingData(t *testing.T) {
	chart := salesChart()
	chart.Series = nil

	_, err := New(&recordingTarget{}).renderChart(chart, ooxml.New("w:body"), nil)

	require.ErrorIs(t, err, model.ErrMissingChartData)
}

func TestRenderChartBoundData(t *testing.T) {
	chart := salesChart()
	chart.DataSourceKey = "#Chart#"

	ctx := datacontext.New().Add("#Chart#", &datacontext.BarChartModel{
		BarChartContent: &datacontext.BarChartData{
			Categories: []datacontext.BarChartCategory{{Name: "North"}, {Name: "South"}, {Name: "East"}},
			Series: []datacontext.BarChartSerie{
				{Name: "Units", Values: []float64{3, 4, 5}},
			},
		},
	})

	_, target := renderChartPart(t, chart, ctx)

	xml := string(target.charts[0])
	assert.Contains(t, xml, `<c:v>North</c:v>`)
	assert.Contains(t, xml, `<c:v>Units</c:v>`)
	assert.NotContains(t, xml, `<c:v>Q1</c:v>`)
	assert.Len(t, chart.Categories, 2)
}

func TestRenderChartIncompleteBoundDataIsSkipped(t *testing.T) {
	chart := salesChart()
	chart.DataSourceKey = "#Chart#"

	tests := []struct {
		name string
		item *datacontext.BarChartModel
	}{
		{"nil content", &datacontext.BarChartModel{}},
		{"nil categories", &datacontext.BarChartModel{BarChartContent: &datacontext.BarChartData{
			Series: []datacontext.BarChartSerie{{Name: "x"}},
		}}},
		{"nil series", &datacontext.BarChartModel{BarChartContent: &datacontext.BarChartData{
			Categories: []datacontext.BarChartCategory{{Name: "x"}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &recordingTarget{}
			body := ooxml.New("w:body")
			ctx := datacontext.New().Add("#Chart#", tt.item)

			run, err := New(target).renderChart(chart, body, ctx)

			require.NoError(t, err)
			assert.Nil(t, run)
			assert.Empty(t, target.charts)
			assert.Empty(t, body.Children)
		})
	}
}

func TestRenderChartResolvesNames(t *testing.T) {
	chart := salesChart()
	chart.Title = "Sales #Year#"
	chart.Series[0].Name = "#Year#"

	ctx := datacontext.New().Add("#Year#", &datacontext.StringModel{Value: "2025"})

	_, target := renderChartPart(t, chart, ctx)

	xml := string(target.charts[0])
	assert.Contains(t, xml, `<a:t>Sales 2025</a:t>`)
	assert.Contains(t, xml, `<c:v>2025</c:v>`)
}
