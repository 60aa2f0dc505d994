// Package sample provides the report rendered when no input file is given.
package sample

import (
	"time"

	"github.com/JJJJJJack/go-report-docx/datacontext"
	"github.com/JJJJJJack/go-report-docx/model"
)

type region struct {
	name    string
	manager string
	// quarterly revenue, in thousands
	revenue [4]float64
	target  float64
}

var regions = []region{
	{"North", "Alice Martin", [4]float64{120, 135, 128, 150}, 500},
	{"South", "Bruno Costa", [4]float64{90, 88, 102, 110}, 420},
	{"East", "Chen Wei", [4]float64{75, 95, 99, 104}, 360},
}

var quarters = []string{"Q1", "Q2", "Q3", "Q4"}

// Report returns the sample template and its context.
func Report() *model.Report {
	return &model.Report{
		Document:     Document(),
		ContextModel: Context(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)),
	}
}

func intPtr(v int) *int { return &v }

func Document() *model.Document {
	return &model.Document{
		Margin:   &model.Margin{Top: 1134, Right: 1134, Bottom: 1134, Left: 1134},
		PageSize: &model.PageSize{Width: 11906, Height: 16838},
		Pages: model.Elements{
			coverPage(),
			regionPages(),
			summaryPage(),
		},
	}
}

func title(text string) *model.Paragraph {
	return &model.Paragraph{
		Justification: model.JustifyCenter,
		SpacingAfter:  intPtr(240),
		ChildElements: model.Elements{
			&model.Label{Text: text, FontSize: "40", Bold: true, FontColor: "#1F3864"},
		},
	}
}

func coverPage() *model.Page {
	return &model.Page{
		ChildElements: model.Elements{
			title("#Title#"),
			&model.Paragraph{
				Justification: model.JustifyCenter,
				ChildElements: model.Elements{
					&model.Label{Text: "Closing date: #ClosingDate#", Italic: true},
				},
			},
			&model.Paragraph{
				Justification: model.JustifyCenter,
				ChildElements: model.Elements{
					&model.Label{
						BaseElement: model.BaseElement{ShowKey: "#IsDraft#"},
						Text:        "DRAFT",
						Bold:        true,
						FontColor:   "C00000",
						Shading:     "FFF2CC",
					},
				},
			},
			&model.Paragraph{
				ChildElements: model.Elements{
					&model.Label{Text: "Regions: "},
					&model.ForEach{
						DataSourceKey:             "#Regions#",
						AutoContextAddItemsPrefix: "Region",
						ItemTemplate: model.Elements{
							&model.Label{Text: " #Region_ForEach_IndexBaseOne#. "},
							&model.Label{Text: "#Name#", Bold: true},
						},
					},
				},
			},
			&model.Paragraph{
				Justification: model.JustifyCenter,
				ChildElements: model.Elements{
					&model.Barcode{Value: "#ReportURL#", Symbology: model.SymbologyQR, Width: 160},
				},
			},
		},
	}
}

func regionPages() *model.ForEachPage {
	header := &model.Row{
		Cells: []*model.Cell{
			headerCell("Quarter"),
			headerCell("Revenue (k)"),
		},
	}

	row := &model.Row{
		Cells: []*model.Cell{
			textCell("#Quarter#"),
			textCell("#Revenue#"),
		},
	}

	return &model.ForEachPage{
		Page: model.Page{
			Orientation: model.Landscape,
			ChildElements: model.Elements{
				title("Region #Region_ForEachPage_IndexBaseOne#: #Name#"),
				&model.Label{Text: "Manager: #Manager#"},
				&model.Table{
					ColsWidth: []int{3000, 3000},
					Borders: &model.BorderModel{
						BorderPositions: model.BorderLeft | model.BorderTop | model.BorderRight | model.BorderBottom | model.BorderInsideHorizontal,
						BorderColor:     "#8EAADB",
						BorderStyle:     "single",
						BorderWidth:     4,
					},
					HeaderRow:                 header,
					DataSourceKey:             "#Quarters#",
					RowModel:                  row,
					AutoContextAddItemsPrefix: "Quarter",
				},
				&model.BarModel{
					Title:              "#Name# revenue",
					ShowTitle:          true,
					DataSourceKey:      "#RevenueChart#",
					ShowDataLabel:      true,
					ShowMajorGridlines: true,
					BarDirection:       model.BarDirectionColumn,
					BarGrouping:        model.GroupingClustered,
					MaxWidth:           intPtr(560),
					MaxHeight:          intPtr(280),
				},
				&model.Label{
					BaseElement: model.BaseElement{ShowKey: "#Region_ForEachPage_IsLastItem#"},
					Text:        "End of regional figures.",
					Italic:      true,
				},
			},
		},
		DataSourceKey:             "#Regions#",
		AutoContextAddItemsPrefix: "Region",
	}
}

func summaryPage() *model.Page {
	categories := make([]model.BarCategory, len(regions))
	targets := make([]float64, len(regions))
	colors := []string{"4472C4", "ED7D31", "A5A5A5"}
	for i, r := range regions {
		categories[i] = model.BarCategory{Name: r.name, Color: colors[i%len(colors)]}
		targets[i] = r.target
	}

	return &model.Page{
		ChildElements: model.Elements{
			title("Summary"),
			&model.BarModel{
				BarChartType:     model.DoughnutChart,
				Title:            "Yearly targets",
				ShowTitle:        true,
				ShowLegend:       true,
				FontFamilyLegend: "Calibri",
				ShowDataLabel:    true,
				DataLabelColor:   "FFFFFF",
				Categories:       categories,
				Series:           []model.BarSerie{{Name: "Target", Values: targets}},
			},
			&model.PageBreak{},
			&model.Label{Text: "Total revenue: #Total#"},
		},
	}
}

func headerCell(text string) *model.Cell {
	return &model.Cell{
		Shading: "D9E2F3",
		ChildElements: model.Elements{
			&model.Label{Text: text, Bold: true},
		},
	}
}

func textCell(text string) *model.Cell {
	return &model.Cell{
		VerticalAlignment: model.AlignCenter,
		ChildElements:     model.Elements{&model.Label{Text: text}},
	}
}

// Context returns the sample data, closed at the given date.
func Context(closing time.Time) *datacontext.Context {
	items := &datacontext.DataSourceModel{}
	total := 0.0

	for _, r := range regions {
		rows := &datacontext.DataSourceModel{}
		for i, q := range quarters {
			rows.Items = append(rows.Items, datacontext.New().
				Add("#Quarter#", &datacontext.StringModel{Value: q}).
				Add("#Revenue#", &datacontext.DoubleModel{Value: r.revenue[i], RenderPattern: "N1"}))
			total += r.revenue[i]
		}

		chart := &datacontext.BarChartData{
			Series: []datacontext.BarChartSerie{{Name: "Revenue", Color: "4472C4", Values: r.revenue[:]}},
		}
		for _, q := range quarters {
			chart.Categories = append(chart.Categories, datacontext.BarChartCategory{Name: q})
		}

		items.Items = append(items.Items, datacontext.New().
			Add("#Name#", &datacontext.StringModel{Value: r.name}).
			Add("#Manager#", &datacontext.StringModel{Value: r.manager}).
			Add("#Quarters#", rows).
			Add("#RevenueChart#", &datacontext.BarChartModel{BarChartContent: chart}))
	}

	return datacontext.New().
		Add("#Title#", &datacontext.StringModel{Value: "Yearly sales report"}).
		Add("#ClosingDate#", &datacontext.DateModel{Value: closing, RenderPattern: "02/01/2006"}).
		Add("#IsDraft#", &datacontext.BooleanModel{Value: true}).
		Add("#ReportURL#", &datacontext.StringModel{Value: "https://example.com/reports/sales"}).
		Add("#Total#", &datacontext.DoubleModel{Value: total, RenderPattern: "N1"}).
		Add("#Regions#", items)
}
