package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JJJJJJack/go-report-docx/datacontext"
)

func intPtr(v int) *int { return &v }

func sampleDocument() *Document {
	return &Document{
		Margin: &Margin{Top: 720, Right: 720, Bottom: 720, Left: 720},
		Pages: Elements{
			&Page{ChildElements: Elements{
				&Paragraph{ChildElements: Elements{&Label{Text: "#Title#", FontColor: "FF0000"}}},
				&Table{
					Borders: &BorderModel{BorderPositions: BorderLeft | BorderTop, BorderWidth: 4},
					Rows: []*Row{{Cells: []*Cell{{ChildElements: Elements{&Label{Text: "cell"}}}}}},
				},
			}},
			&ForEachPage{
				Page:                      Page{ChildElements: Elements{&Label{Text: "#Name#"}}},
				DataSourceKey:             "#Rows#",
				AutoContextAddItemsPrefix: "Row",
			},
			&Page{ChildElements: Elements{
				&BarModel{
					Title:      "Sales",
					MaxWidth:   intPtr(400),
					Categories: []BarCategory{{Name: "A"}, {Name: "B"}},
					Series:     []BarSerie{{Name: "S", Values: []float64{1, 2}}},
				},
				&ForEach{DataSourceKey: "#Rows#", ItemTemplate: Elements{&PageBreak{}}},
				&Image{Path: "logo.png"},
				&Barcode{Value: "123", Symbology: SymbologyQR},
			}},
		},
	}
}

func TestDocumentCloneIsDeep(t *testing.T) {
	doc := sampleDocument()
	clone := doc.Clone()

	require.Empty(t, cmp.Diff(doc, clone))

	clone.Margin.Top = 1
	clone.Pages[0].(*Page).ChildElements[0].(*Paragraph).ChildElements[0].(*Label).Text = "changed"
	clone.Pages[0].(*Page).ChildElements[1].(*Table).Borders.BorderWidth = 99
	clone.Pages[1].(*ForEachPage).ChildElements[0].(*Label).Text = "changed"
	chart := clone.Pages[2].(*Page).ChildElements[0].(*BarModel)
	chart.Series[0].Values[0] = 42
	*chart.MaxWidth = 1

	assert.Equal(t, 720, doc.Margin.Top)
	assert.Equal(t, "#Title#", doc.Pages[0].(*Page).ChildElements[0].(*Paragraph).ChildElements[0].(*Label).Text)
	assert.Equal(t, uint(4), doc.Pages[0].(*Page).ChildElements[1].(*Table).Borders.BorderWidth)
	assert.Equal(t, "#Name#", doc.Pages[1].(*ForEachPage).ChildElements[0].(*Label).Text)
	original := doc.Pages[2].(*Page).ChildElements[0].(*BarModel)
	assert.Equal(t, []float64{1, 2}, original.Series[0].Values)
	assert.Equal(t, 400, *original.MaxWidth)
}

func TestElementsJSONRoundTrip(t *testing.T) {
	doc := sampleDocument()

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	decoded := &Document{}
	require.NoError(t, json.Unmarshal(data, decoded))

	if diff := cmp.Diff(doc, decoded); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestElementsUnmarshal(t *testing.T) {
	data := []byte(`[
		{"type": "Label", "text": "hello", "showKey": "#Show#"},
		{"type": "ForEachPage", "dataSourceKey": "#Rows#", "margin": {"top": 10, "right": 0, "bottom": 0, "left": 0},
		 "childElements": [{"type": "PageBreak"}]},
		{"type": "Table", "borders": {"borderPositions": "LEFT, INSIDEVERTICAL", "borderWidth": 8}}
	]`)

	var es Elements
	require.NoError(t, json.Unmarshal(data, &es))
	require.Len(t, es, 3)

	label := es[0].(*Label)
	assert.Equal(t, "hello", label.Text)
	assert.Equal(t, "#Show#", label.Base().ShowKey)

	fep := es[1].(*ForEachPage)
	assert.Equal(t, "#Rows#", fep.DataSourceKey)
	assert.Equal(t, 10, fep.Margin.Top)
	assert.Equal(t, KindPageBreak, fep.ChildElements[0].Kind())

	table := es[2].(*Table)
	assert.True(t, table.Borders.BorderPositions.Has(BorderLeft))
	assert.True(t, table.Borders.BorderPositions.Has(BorderInsideVertical))
	assert.False(t, table.Borders.BorderPositions.Has(BorderTop))

	err := json.Unmarshal([]byte(`[{"type": "Hologram"}]`), &es)
	require.ErrorIs(t, err, ErrUnknownElement)
}

func TestBorderPositionsJSON(t *testing.T) {
	var p BorderPositions
	require.NoError(t, json.Unmarshal([]byte(`5`), &p))
	assert.Equal(t, BorderLeft|BorderRight, p)
	assert.Equal(t, "LEFT, RIGHT", p.String())

	require.NoError(t, json.Unmarshal([]byte(`"none"`), &p))
	assert.Equal(t, BorderNone, p)

	require.Error(t, json.Unmarshal([]byte(`"DIAGONAL"`), &p))
}

func TestBarModelValidate(t *testing.T) {
	tests := []struct {
		name     string
		model    BarModel
		wantErr  error
		wantCode string
	}{
		{
			name: "valid",
			model: BarModel{
				Categories: []BarCategory{{Name: "A"}, {Name: "B"}},
				Series:     []BarSerie{{Values: []float64{1, 2}}, {Values: []float64{3, 4}}},
			},
		},
		{
			name:    "nil categories",
			model:   BarModel{Series: []BarSerie{}},
			wantErr: ErrMissingChartData,
		},
		{
			name:    "nil series",
			model:   BarModel{Categories: []BarCategory{}},
			wantErr: ErrMissingChartData,
		},
		{
			name: "one serie too long",
			model: BarModel{
				Categories: []BarCategory{{Name: "A"}, {Name: "B"}},
				Series:     []BarSerie{{Values: []float64{1, 2}}, {Values: []float64{1, 2, 3}}},
			},
			wantCode: CodeSeriesCategoryMismatch,
		},
		{
			name: "doughnut",
			model: BarModel{
				BarChartType: DoughnutChart,
				Categories:   []BarCategory{{Name: "A"}},
				Series:       []BarSerie{{Values: []float64{1}}},
			},
		},
		{
			name: "unknown chart type",
			model: BarModel{
				BarChartType: "PieChart",
				Categories:   []BarCategory{{Name: "A"}},
				Series:       []BarSerie{{Values: []float64{1}}},
			},
			wantCode: CodeUnknownChartType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.model.Validate()

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != "":
				var chartErr *ChartModelError
				require.ErrorAs(t, err, &chartErr)
				assert.Equal(t, tt.wantCode, chartErr.Code)
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestBarModelSize(t *testing.T) {
	cx, cy := (&BarModel{}).Size()
	assert.Equal(t, int64(5486400), cx)
	assert.Equal(t, int64(3200400), cy)

	cx, cy = (&BarModel{MaxWidth: intPtr(600), MaxHeight: intPtr(300)}).Size()
	assert.Equal(t, int64(600*9525), cx)
	assert.Equal(t, int64(300*9525), cy)

	cx, cy = (&BarModel{MaxHeight: intPtr(100)}).Size()
	assert.Equal(t, int64(5486400), cx)
	assert.Equal(t, int64(952500), cy)
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "#FF00aa", want: "FF00aa"},
		{in: "00FF00", want: "00FF00"},
		{in: "abcdef", want: "abcdef"},
		{in: "#FFF", wantErr: true},
		{in: "GG0000", wantErr: true},
		{in: "##FF0000", wantErr: true},
		{in: "FF-000", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeColor("serie color", tt.in)
			if tt.wantErr {
				var colorErr *ColorError
				require.ErrorAs(t, err, &colorErr)
				require.ErrorIs(t, err, ErrInvalidColor)
				assert.Equal(t, "serie color", colorErr.Field)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReport(t *testing.T) {
	report, err := ParseReport([]byte(`{
		"document": {"pages": [{"type": "Page", "childElements": [{"type": "Label", "text": "#A#"}]}]},
		"contextModel": {"#A#": {"type": "String", "value": "a"}}
	}`))
	require.NoError(t, err)
	require.Len(t, report.Document.Pages, 1)
	assert.True(t, report.ContextModel.Exists("#A#"))

	report, err = ParseReport([]byte(`{"document": {"pages": []}}`))
	require.NoError(t, err)
	assert.Equal(t, 0, report.ContextModel.Len())
	assert.IsType(t, &datacontext.Context{}, report.ContextModel)

	_, err = ParseReport([]byte(`{}`))
	require.Error(t, err)
}
