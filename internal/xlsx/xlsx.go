// Package xlsx builds the workbook embedded behind each chart, so the chart
// data can be edited from Word.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Sheet1"

type Serie struct {
	Name   string
	Values []float64
}

// ChartData is laid out with categories in column A (from row 2) and one
// column per series (from column B), series names on row 1.
type ChartData struct {
	Categories []string
	Series     []Serie
}

// SerieNameRef returns the formula of the cell holding the name of serie i.
func (c *ChartData) SerieNameRef(i int) string {
	cell, _ := excelize.CoordinatesToCellName(i+2, 1, true)
	return SheetName + "!" + cell
}

// CategoriesRef returns the formula of the range holding the categories.
func (c *ChartData) CategoriesRef() string {
	return c.columnRange(1)
}

// ValuesRef returns the formula of the range holding the values of serie i.
func (c *ChartData) ValuesRef(i int) string {
	return c.columnRange(i + 2)
}

func (c *ChartData) columnRange(col int) string {
	rows := max(len(c.Categories), 1)
	first, _ := excelize.CoordinatesToCellName(col, 2, true)
	last, _ := excelize.CoordinatesToCellName(col, rows+1, true)

	return SheetName + "!" + first + ":" + last
}

// Workbook returns the .xlsx bytes of the chart data.
func (c *ChartData) Workbook() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, category := range c.Categories {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("unable to compute category cell %d: %w", i, err)
		}

		err = f.SetCellStr(SheetName, cell, category)
		if err != nil {
			return nil, fmt.Errorf("unable to set category cell %s: %w", cell, err)
		}
	}

	for i, serie := range c.Series {
		cell, err := excelize.CoordinatesToCellName(i+2, 1)
		if err != nil {
			return nil, fmt.Errorf("unable to compute serie cell %d: %w", i, err)
		}

		err = f.SetCellStr(SheetName, cell, serie.Name)
		if err != nil {
			return nil, fmt.Errorf("unable to set serie name cell %s: %w", cell, err)
		}

		for j, v := range serie.Values {
			cell, err := excelize.CoordinatesToCellName(i+2, j+2)
			if err != nil {
				return nil, fmt.Errorf("unable to compute value cell (%d, %d): %w", i, j, err)
			}

			err = f.SetCellFloat(SheetName, cell, v, -1, 64)
			if err != nil {
				return nil, fmt.Errorf("unable to set value cell %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("unable to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
