package engine

import (
	"errors"
	"strconv"

	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/internal/ooxml"
	"github.com/JJJJJJack/go-report-docx/model"
)

var errTableInParagraph = errors.New("a table cannot be placed inside a paragraph")

func (e *Engine) renderTable(table *model.Table, parent *ooxml.Element, ctx *datacontext.Context) error {
	if parent.Name == "w:p" {
		return errTableInParagraph
	}

	tbl := ooxml.New("w:tbl")

	tblPr := tbl.AppendChild(ooxml.New("w:tblPr"))
	if table.TableWidth > 0 {
		tblPr.Append(ooxml.New("w:tblW", "w:w", strconv.Itoa(table.TableWidth), "w:type", "dxa"))
	} else {
		tblPr.Append(ooxml.New("w:tblW", "w:w", "0", "w:type", "auto"))
	}
	tblPr.Append(RenderBorders(table.Borders))

	grid := tbl.AppendChild(ooxml.New("w:tblGrid"))

	rows := 0

	if table.HeaderRow != nil {
		tr, err := e.renderRow(table.HeaderRow, ctx, true)
		if err != nil {
			return err
		}
		if tr != nil {
			tbl.Append(tr)
			rows++
		}
	}

	for _, row := range table.Rows {
		tr, err := e.renderRow(row, ctx, false)
		if err != nil {
			return err
		}
		if tr != nil {
			tbl.Append(tr)
			rows++
		}
	}

	if table.RowModel != nil {
		items, _ := e.dataSource(table.DataSourceKey, ctx)
		for i, item := range items {
			scope := itemScope(item, table.AutoContextAddItemsPrefix, scopeTable, i, len(items))

			tr, err := e.renderRow(table.RowModel.Clone(), scope, false)
			if err != nil {
				return err
			}
			if tr != nil {
				tbl.Append(tr)
				rows++
			}
		}
	}

	if rows == 0 {
		e.logger.Debug("table without rows skipped", "dataSourceKey", table.DataSourceKey)
		return nil
	}

	if len(table.ColsWidth) > 0 {
		for _, w := range table.ColsWidth {
			grid.Append(ooxml.New("w:gridCol", "w:w", strconv.Itoa(w)))
		}
	} else {
		for range gridColumns(tbl) {
			grid.Append(ooxml.New("w:gridCol"))
		}
	}

	parent.Append(tbl)

	return nil
}

// gridColumns counts the grid columns of the widest rendered row.
func gridColumns(tbl *ooxml.Element) int {
	cols := 0
	for _, tr := range tbl.Children {
		if tr.Name != "w:tr" {
			continue
		}

		n := 0
		for _, tc := range tr.Children {
			if tc.Name != "w:tc" {
				continue
			}

			span := 1
			if gs := tc.Find("w:gridSpan"); gs != nil {
				v, _ := gs.AttrValue("w:val")
				if s, err := strconv.Atoi(v); err == nil && s > 1 {
					span = s
				}
			}
			n += span
		}

		cols = max(cols, n)
	}

	return cols
}

// renderRow returns nil when the row is hidden.
func (e *Engine) renderRow(row *model.Row, ctx *datacontext.Context, header bool) (*ooxml.Element, error) {
	if !e.visible(row.ShowKey, ctx) {
		return nil, nil
	}

	tr := ooxml.New("w:tr")

	trPr := ooxml.New("w:trPr")
	if row.RowHeight != nil {
		trPr.Append(ooxml.Val("w:trHeight", strconv.Itoa(*row.RowHeight)))
	}
	if header {
		trPr.Append(ooxml.New("w:tblHeader"))
	}
	if len(trPr.Children) > 0 {
		tr.Append(trPr)
	}

	for _, cell := range row.Cells {
		tc, err := e.renderCell(cell, ctx)
		if err != nil {
			return nil, err
		}
		tr.Append(tc)
	}

	return tr, nil
}

func (e *Engine) renderCell(cell *model.Cell, ctx *datacontext.Context) (*ooxml.Element, error) {
	tc := ooxml.New("w:tc")

	tcPr := tc.AppendChild(ooxml.New("w:tcPr"))
	if cell.Width != nil {
		tcPr.Append(ooxml.New("w:tcW", "w:w", strconv.Itoa(*cell.Width), "w:type", "dxa"))
	}
	if cell.ColSpan > 1 {
		tcPr.Append(ooxml.IntVal("w:gridSpan", cell.ColSpan))
	}
	tcPr.Append(RenderCellBorders(cell.Borders))
	if cell.Shading != "" {
		tcPr.Append(shading(ctx.Replace(cell.Shading, e.formatter)))
	}
	if cell.VerticalAlignment != "" {
		tcPr.Append(ooxml.Val("w:vAlign", string(cell.VerticalAlignment)))
	}

	for _, child := range cell.ChildElements {
		err := e.renderElement(child, tc, ctx)
		if err != nil {
			return nil, err
		}
	}

	// a cell must end with a paragraph
	if last := tc.Children[len(tc.Children)-1]; last.Name != "w:p" {
		tc.Append(ooxml.New("w:p"))
	}

	return tc, nil
}
