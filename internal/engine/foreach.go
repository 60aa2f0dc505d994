package engine

import (
	"strconv"

	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/internal/ooxml"
	"github.com/JJJJJJack/go-report-docx/model"
)

// Loop scopes, used in the marker keys: "#<prefix>_<scope>_IsFirstItem#".
const (
	scopeForEachPage = "ForEachPage"
	scopeForEach     = "ForEach"
	scopeTable       = "Table"
)

// dataSource returns the items bound to key, or false when the key is unset,
// unbound or bound to another kind.
func (e *Engine) dataSource(key string, ctx *datacontext.Context) ([]*datacontext.Context, bool) {
	if key == "" {
		return nil, false
	}

	ds, err := datacontext.Get[*datacontext.DataSourceModel](ctx, key)
	if err != nil {
		e.logger.Debug("data source not bound", "key", key, "error", err)
		return nil, false
	}

	return ds.Items, true
}

// itemScope returns the scope of item i of n: a clone of the item with the
// iteration markers added when prefix is set. The item itself is never
// modified.
func itemScope(item *datacontext.Context, prefix, scope string, i, n int) *datacontext.Context {
	out := item.Clone()
	if prefix == "" {
		return out
	}

	key := func(marker string) string {
		return "#" + prefix + "_" + scope + "_" + marker + "#"
	}

	out.Add(key("IsFirstItem"), &datacontext.BooleanModel{Value: i == 0})
	out.Add(key("IsLastItem"), &datacontext.BooleanModel{Value: i == n-1})
	out.Add(key("IndexBaseZero"), &datacontext.StringModel{Value: strconv.Itoa(i)})
	out.Add(key("IndexBaseOne"), &datacontext.StringModel{Value: strconv.Itoa(i + 1)})
	out.Add(key("IsOdd"), &datacontext.BooleanModel{Value: i%2 == 1})
	out.Add(key("IsEven"), &datacontext.BooleanModel{Value: i%2 == 0})

	return out
}

// renderForEachPage renders a clone of the page for each item of its data
// source, in order. A missing source renders nothing.
func (e *Engine) renderForEachPage(doc *model.Document, forEach *model.ForEachPage, body *ooxml.Element, ctx *datacontext.Context) error {
	if !e.visible(forEach.ShowKey, ctx) {
		e.logger.Debug("page loop hidden", "showKey", forEach.ShowKey)
		return nil
	}

	items, ok := e.dataSource(forEach.DataSourceKey, ctx)
	if !ok {
		return nil
	}

	for i, item := range items {
		newPage := forEach.Clone().(*model.ForEachPage)

		// doc inherits margin from page
		if doc.Margin == nil && newPage.Margin != nil {
			doc.Margin = newPage.Margin.Clone()
		} else if doc.Margin != nil && newPage.Margin == nil {
			newPage.Margin = doc.Margin.Clone()
		}

		scope := itemScope(item, forEach.AutoContextAddItemsPrefix, scopeForEachPage, i, len(items))

		page := newPage.Clone().(*model.ForEachPage).Page
		page.ShowKey = ""

		err := e.renderPage(doc, &page, body, scope)
		if err != nil {
			return err
		}
	}

	return nil
}

// renderForEach renders the item template once per item of its data source,
// into parent.
func (e *Engine) renderForEach(forEach *model.ForEach, parent *ooxml.Element, ctx *datacontext.Context) error {
	items, ok := e.dataSource(forEach.DataSourceKey, ctx)
	if !ok {
		return nil
	}

	for i, item := range items {
		scope := itemScope(item, forEach.AutoContextAddItemsPrefix, scopeForEach, i, len(items))

		for _, child := range forEach.ItemTemplate.Clone() {
			err := e.renderElement(child, parent, scope)
			if err != nil {
				return err
			}
		}
	}

	return nil
}
