package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/internal/ooxml"
	"github.com/JJJJJJack/go-report-docx/model"
)

type media struct {
	extension string
	data      []byte
}

// recordingTarget keeps every part the engine adds.
type recordingTarget struct {
	charts    [][]byte
	workbooks [][]byte
	media     []media
	rels      int
	docPrID   uint32
}

func (t *recordingTarget) AddChart(chartSpace, workbook []byte) (string, error) {
	t.charts = append(t.charts, chartSpace)
	t.workbooks = append(t.workbooks, workbook)
	t.rels++

	return fmt.Sprintf("rId%d", t.rels), nil
}

func (t *recordingTarget) AddMedia(extension string, data []byte) (string, error) {
	t.media = append(t.media, media{extension: extension, data: data})
	t.rels++

	return fmt.Sprintf("rId%d", t.rels), nil
}

func (t *recordingTarget) NextDocPrID() (uint32, error) {
	t.docPrID++
	return t.docPrID, nil
}

func singlePage(children ...model.Element) *model.Document {
	return &model.Document{
		Pages: model.Elements{&model.Page{ChildElements: children}},
	}
}

func render(t *testing.T, doc *model.Document, ctx *datacontext.Context, opts ...Option) (*ooxml.Element, *recordingTarget) {
	t.Helper()

	target := &recordingTarget{}
	root, err := New(target, opts...).RenderDocument(doc, ctx)
	require.NoError(t, err)

	return root.Find("w:body"), target
}

// innerText concatenates the character data of el and its descendants.
func innerText(el *ooxml.Element) string {
	out := el.Text
	for _, c := range el.Children {
		out += innerText(c)
	}

	return out
}

func itemsSource(names ...string) *datacontext.DataSourceModel {
	ds := &datacontext.DataSourceModel{}
	for _, name := range names {
		ds.Items = append(ds.Items, datacontext.New().Add("#Name#", &datacontext.StringModel{Value: name}))
	}

	return ds
}

func TestRenderDocumentEndsWithBodySection(t *testing.T) {
	body, _ := render(t, singlePage(&model.Label{Text: "hello"}), nil)

	last := body.Children[len(body.Children)-1]
	assert.Equal(t, "w:sectPr", last.Name)
	assert.Len(t, body.FindAll("w:sectPr"), 1)
	assert.Equal(t, "hello", innerText(body))

	pgSz := last.Find("w:pgSz")
	require.NotNil(t, pgSz)
	w, _ := pgSz.AttrValue("w:w")
	assert.Equal(t, "11906", w)
}

func TestRenderDocumentLandscapeSwapsPageSize(t *testing.T) {
	doc := &model.Document{
		Pages: model.Elements{&model.Page{Orientation: model.Landscape}},
	}

	body, _ := render(t, doc, nil)

	pgSz := body.Find("w:pgSz")
	require.NotNil(t, pgSz)

	w, _ := pgSz.AttrValue("w:w")
	orient, _ := pgSz.AttrValue("w:orient")
	assert.Equal(t, "16838", w)
	assert.Equal(t, "landscape", orient)
}

func TestRenderDocumentHiddenPage(t *testing.T) {
	doc := &model.Document{
		Pages: model.Elements{
			&model.Page{BaseElement: model.BaseElement{ShowKey: "#Show#"}, ChildElements: model.Elements{&model.Label{Text: "hidden"}}},
			&model.Page{ChildElements: model.Elements{&model.Label{Text: "shown"}}},
		},
	}
	ctx := datacontext.New().Add("#Show#", &datacontext.BooleanModel{Value: false})

	body, _ := render(t, doc, ctx)

	assert.Equal(t, "shown", innerText(body))
}

func TestRenderDocumentRejectsNestedPage(t *testing.T) {
	doc := singlePage(&model.Page{})

	_, err := New(&recordingTarget{}).RenderDocument(doc, nil)
	require.Error(t, err)
}

func TestVisible(t *testing.T) {
	ctx := datacontext.New().
		Add("#Yes#", &datacontext.BooleanModel{Value: true}).
		Add("#No#", &datacontext.BooleanModel{Value: false}).
		Add("#Text#", &datacontext.StringModel{Value: "false"})

	e := New(&recordingTarget{})

	tests := []struct {
		showKey string
		want    bool
	}{
		{"", true},
		{"#Yes#", true},
		{"#No#", false},
		{"#Text#", true},
		{"#Missing#", true},
	}

	for _, tt := range tests {
		t.Run(tt.showKey, func(t *testing.T) {
			assert.Equal(t, tt.want, e.visible(tt.showKey, ctx))
		})
	}
}

func TestResolveDoesNotMutate(t *testing.T) {
	ctx := datacontext.New().Add("#Name#", &datacontext.StringModel{Value: "Alice"})
	label := &model.Label{Text: "Hello #Name# #Unknown#"}

	first := Resolve(label, ctx, nil).(*model.Label)
	second := Resolve(label, ctx, nil).(*model.Label)

	assert.Equal(t, "Hello Alice #Unknown#", first.Text)
	assert.Equal(t, first, second)
	assert.Equal(t, "Hello #Name# #Unknown#", label.Text)
	assert.Equal(t, 1, ctx.Len())
}

func TestResolveIsIdempotent(t *testing.T) {
	ctx := datacontext.New().
		Add("#Greeting#", &datacontext.StringModel{Value: "see #Who#"}).
		Add("#Who#", &datacontext.StringModel{Value: "bee"}).
		Add("#Color#", &datacontext.StringModel{Value: "#Hex#"}).
		Add("#Hex#", &datacontext.StringModel{Value: "FF0000"})

	tests := []struct {
		name string
		el   model.Element
	}{
		{"label", &model.Label{Text: "#Greeting# #Missing#", FontColor: "#Color#"}},
		{"chart", &model.BarModel{
			Title:      "#Greeting#",
			Categories: []model.BarCategory{{Name: "#Who#"}},
			Series:     []model.BarSerie{{Name: "#Greeting#", Values: []float64{1}}},
		}},
		{"barcode", &model.Barcode{Value: "#Greeting#"}},
		{"image", &model.Image{Path: "#Who#.png"}},
		{"paragraph", &model.Paragraph{Shading: "#Color#"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Resolve(tt.el, ctx, nil)
			twice := Resolve(once, ctx, nil)
			assert.Equal(t, once, twice)
		})
	}

	label := Resolve(tests[0].el, ctx, nil).(*model.Label)
	assert.Equal(t, "see bee #Missing#", label.Text)
	assert.Equal(t, "FF0000", label.FontColor)
}

func TestResolveLeavesChildrenAlone(t *testing.T) {
	ctx := datacontext.New().Add("#Name#", &datacontext.StringModel{Value: "Alice"})
	paragraph := &model.Paragraph{
		Shading: "#Name#",
		ChildElements: model.Elements{
			&model.Label{Text: "#Name#"},
		},
	}

	resolved := Resolve(paragraph, ctx, nil).(*model.Paragraph)

	assert.Equal(t, "Alice", resolved.Shading)
	assert.Equal(t, "#Name#", resolved.ChildElements[0].(*model.Label).Text)
}
