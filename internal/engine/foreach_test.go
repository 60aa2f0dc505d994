package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/model"
)

func rowPage(key string) *model.ForEachPage {
	return &model.ForEachPage{
		Page: model.Page{
			ChildElements: model.Elements{
				&model.Label{Text: "[#Row_ForEachPage_IndexBaseOne# #Name#]"},
				&model.Label{
					BaseElement: model.BaseElement{ShowKey: "#Row_ForEachPage_IsFirstItem#"},
					Text:        "(first)",
				},
				&model.Label{
					BaseElement: model.BaseElement{ShowKey: "#Row_ForEachPage_IsLastItem#"},
					Text:        "(last)",
				},
			},
		},
		DataSourceKey:             key,
		AutoContextAddItemsPrefix: "Row",
	}
}

func TestForEachPageRendersOnePagePerItem(t *testing.T) {
	doc := &model.Document{Pages: model.Elements{rowPage("#Items#")}}
	ctx := datacontext.New().Add("#Items#", itemsSource("a", "b", "c"))

	body, _ := render(t, doc, ctx)

	assert.Len(t, body.FindAll("w:sectPr"), 3)
	assert.Equal(t, "[1 a](first)[2 b][3 c](last)", innerText(body))
}

func TestForEachPageWithoutItems(t *testing.T) {
	tests := []struct {
		name string
		ctx  *datacontext.Context
	}{
		{"empty source", datacontext.New().Add("#Items#", &datacontext.DataSourceModel{})},
		{"missing source", datacontext.New()},
		{"wrong kind", datacontext.New().Add("#Items#", &datacontext.StringModel{Value: "x"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &model.Document{Pages: model.Elements{rowPage("#Items#")}}

			body, _ := render(t, doc, tt.ctx)

			assert.Equal(t, "", innerText(body))
			// only the closing section of the body
			assert.Len(t, body.FindAll("w:sectPr"), 1)
		})
	}
}

func TestForEachPageMarkers(t *testing.T) {
	markers := []string{"IsFirstItem", "IsLastItem", "IsOdd", "IsEven"}
	children := model.Elements{}
	for _, m := range markers {
		children = append(children, &model.Label{
			BaseElement: model.BaseElement{ShowKey: "#P_ForEachPage_" + m + "#"},
			Text:        m + ";",
		})
	}
	children = append(children, &model.Label{Text: "#P_ForEachPage_IndexBaseZero#|"})

	doc := &model.Document{Pages: model.Elements{&model.ForEachPage{
		Page:                      model.Page{ChildElements: children},
		DataSourceKey:             "#Items#",
		AutoContextAddItemsPrefix: "P",
	}}}
	ctx := datacontext.New().Add("#Items#", itemsSource("a", "b", "c", "d"))

	body, _ := render(t, doc, ctx)

	assert.Equal(t,
		"IsFirstItem;IsEven;0|IsOdd;1|IsEven;2|IsLastItem;IsOdd;3|",
		innerText(body))
}

func TestForEachPageDoesNotMutateItems(t *testing.T) {
	source := itemsSource("a", "b")
	ctx := datacontext.New().Add("#Items#", source)
	doc := &model.Document{Pages: model.Elements{rowPage("#Items#")}}

	render(t, doc, ctx)

	for _, item := range source.Items {
		assert.Equal(t, 1, item.Len())
	}
}

func TestForEachPageMarginInheritance(t *testing.T) {
	ctx := datacontext.New().Add("#Items#", itemsSource("a"))

	t.Run("page margin goes up to the document", func(t *testing.T) {
		page := rowPage("#Items#")
		page.Margin = &model.Margin{Top: 100, Right: 200, Bottom: 300, Left: 400}
		doc := &model.Document{Pages: model.Elements{page}}

		render(t, doc, ctx)

		require.NotNil(t, doc.Margin)
		assert.Equal(t, 400, doc.Margin.Left)
		assert.NotSame(t, page.Margin, doc.Margin)
	})

	t.Run("document margin goes down to the page", func(t *testing.T) {
		doc := &model.Document{
			Margin: &model.Margin{Top: 10, Right: 20, Bottom: 30, Left: 40},
			Pages:  model.Elements{rowPage("#Items#")},
		}

		body, _ := render(t, doc, ctx)

		pgMar := body.Find("w:pgMar")
		require.NotNil(t, pgMar)
		left, _ := pgMar.AttrValue("w:left")
		assert.Equal(t, "40", left)
		assert.Nil(t, doc.Pages[0].(*model.ForEachPage).Margin)
	})
}

func TestForEachRendersTemplatePerItem(t *testing.T) {
	doc := singlePage(&model.Paragraph{
		ChildElements: model.Elements{
			&model.ForEach{
				DataSourceKey:             "#Items#",
				AutoContextAddItemsPrefix: "L",
				ItemTemplate: model.Elements{
					&model.Label{Text: "#L_ForEach_IndexBaseOne#.#Name# "},
				},
			},
		},
	})
	ctx := datacontext.New().Add("#Items#", itemsSource("x", "y"))

	body, _ := render(t, doc, ctx)

	paragraphs := body.FindAll("w:p")
	// content paragraph, no section paragraph for a single page
	require.Len(t, paragraphs, 1)
	assert.Equal(t, "1.x 2.y ", innerText(paragraphs[0]))
	assert.Len(t, paragraphs[0].FindAll("w:r"), 2)
}

func TestItemScope(t *testing.T) {
	item := datacontext.New().Add("#Name#", &datacontext.StringModel{Value: "a"})

	scope := itemScope(item, "", scopeForEach, 0, 1)
	assert.Equal(t, 1, scope.Len())

	scope = itemScope(item, "X", scopeTable, 1, 3)
	assert.Equal(t, 7, scope.Len())
	assert.Equal(t, 1, item.Len())

	index, err := datacontext.Get[*datacontext.StringModel](scope, "#X_Table_IndexBaseOne#")
	require.NoError(t, err)
	assert.Equal(t, "2", index.Value)

	odd, err := datacontext.Get[*datacontext.BooleanModel](scope, "#X_Table_IsOdd#")
	require.NoError(t, err)
	assert.True(t, odd.Value)
}
