package model

import (
	"fmt"
	"regexp"
	"strings"
)

type BarChartType string

const (
	BarChart      BarChartType = "BarChart"
	DoughnutChart BarChartType = "DoughnutChart"
)

type BarDirection string

const (
	BarDirectionBar    BarDirection = "bar"
	BarDirectionColumn BarDirection = "col"
)

type BarGrouping string

const (
	GroupingClustered      BarGrouping = "clustered"
	GroupingStacked        BarGrouping = "stacked"
	GroupingPercentStacked BarGrouping = "percentStacked"
	GroupingStandard       BarGrouping = "standard"
)

const (
	// EMUPerPixel converts pixels at 96 DPI to English Metric Units.
	EMUPerPixel = 9525

	DefaultChartWidthEMU  = 5486400
	DefaultChartHeightEMU = 3200400
	DefaultGapWidth       = 55
)

type BarCategory struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type BarSerie struct {
	Name              string    `json:"name"`
	Color             string    `json:"color,omitempty"`
	DataLabelColor    string    `json:"dataLabelColor,omitempty"`
	LabelFormatString string    `json:"labelFormatString,omitempty"`
	Values            []float64 `json:"values"`
}

// BarModel is a bar or doughnut chart. Every series must hold exactly one
// value per category.
type BarModel struct {
	BaseElement
	BarChartType BarChartType `json:"barChartType,omitempty"`
	// DataSourceKey, when bound to a bar chart context item, replaces
	// Categories and Series with the bound ones.
	DataSourceKey string `json:"dataSourceKey,omitempty"`

	Title     string `json:"title,omitempty"`
	ShowTitle bool   `json:"showTitle,omitempty"`

	ShowLegend       bool   `json:"showLegend,omitempty"`
	FontFamilyLegend string `json:"fontFamilyLegend,omitempty"`

	ShowDataLabel  bool   `json:"showDataLabel,omitempty"`
	DataLabelColor string `json:"dataLabelColor,omitempty"`

	ShowMajorGridlines  bool   `json:"showMajorGridlines,omitempty"`
	MajorGridlinesColor string `json:"majorGridlinesColor,omitempty"`

	DeleteAxeCategory bool `json:"deleteAxeCategory,omitempty"`
	DeleteAxeValue    bool `json:"deleteAxeValue,omitempty"`

	BarDirection BarDirection `json:"barDirection,omitempty"`
	BarGrouping  BarGrouping  `json:"barGrouping,omitempty"`
	// SpaceBetweenLineCategories is the gap width between categories, in
	// percent of a bar width.
	SpaceBetweenLineCategories *int `json:"spaceBetweenLineCategories,omitempty"`

	HasBorder bool `json:"hasBorder,omitempty"`
	// MaxWidth and MaxHeight are in pixels.
	MaxWidth  *int `json:"maxWidth,omitempty"`
	MaxHeight *int `json:"maxHeight,omitempty"`

	Categories []BarCategory `json:"categories,omitempty"`
	Series     []BarSerie    `json:"series,omitempty"`
}

func (*BarModel) Kind() ElementKind { return KindBarModel }

func (b *BarModel) Clone() Element {
	c := *b
	c.SpaceBetweenLineCategories = cloneInt(b.SpaceBetweenLineCategories)
	c.MaxWidth = cloneInt(b.MaxWidth)
	c.MaxHeight = cloneInt(b.MaxHeight)

	if b.Categories != nil {
		c.Categories = append([]BarCategory{}, b.Categories...)
	}

	if b.Series != nil {
		c.Series = make([]BarSerie, len(b.Series))
		for i, s := range b.Series {
			s.Values = append([]float64(nil), s.Values...)
			c.Series[i] = s
		}
	}

	return &c
}

// Validate checks the chart shape: categories and series must be present and
// each series must hold one value per category.
func (b *BarModel) Validate() error {
	if b.Categories == nil || b.Series == nil {
		return ErrMissingChartData
	}

	switch b.BarChartType {
	case "", BarChart, DoughnutChart:
	default:
		return &ChartModelError{
			Code:    CodeUnknownChartType,
			Message: fmt.Sprintf("unknown chart type %q", b.BarChartType),
		}
	}

	for _, s := range b.Series {
		if len(s.Values) != len(b.Categories) {
			return &ChartModelError{
				Code: CodeSeriesCategoryMismatch,
				Message: fmt.Sprintf("serie %q has %d values for %d categories",
					s.Name, len(s.Values), len(b.Categories)),
			}
		}
	}

	return nil
}

// Size returns the drawing extent in EMU, falling back to the default size for
// each missing dimension.
func (b *BarModel) Size() (cx, cy int64) {
	cx, cy = DefaultChartWidthEMU, DefaultChartHeightEMU

	if b.MaxWidth != nil {
		cx = int64(*b.MaxWidth) * EMUPerPixel
	}

	if b.MaxHeight != nil {
		cy = int64(*b.MaxHeight) * EMUPerPixel
	}

	return cx, cy
}

var colorRegEx = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// NormalizeColor validates a six hex digit color with an optional leading
// "#" and returns it without the "#". field names the offending attribute in
// the returned [ColorError].
func NormalizeColor(field, color string) (string, error) {
	if !colorRegEx.MatchString(color) {
		return "", &ColorError{Field: field, Value: color}
	}

	return strings.TrimPrefix(color, "#"), nil
}
