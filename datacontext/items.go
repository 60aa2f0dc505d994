package datacontext

import "time"

// Kind identifies the concrete type of a context [Item].
type Kind string

const (
	KindString     Kind = "String"
	KindBoolean    Kind = "Boolean"
	KindDouble     Kind = "Double"
	KindDate       Kind = "Date"
	KindStringList Kind = "StringList"
	KindDataSource Kind = "DataSource"
	KindBarChart   Kind = "BarChart"
	KindImage      Kind = "Image"
)

// Item is a value bound to a placeholder key. The set of implementations is
// closed: every item is one of the *Model types of this package.
type Item interface {
	Kind() Kind
}

type StringModel struct {
	Value string `json:"value"`
}

type BooleanModel struct {
	Value bool `json:"value"`
}

// DoubleModel is a number rendered through a [Formatter] with RenderPattern
// (e.g. "N2", "F0", "P1"). An empty pattern prints the shortest representation.
type DoubleModel struct {
	Value         float64 `json:"value"`
	RenderPattern string  `json:"renderPattern,omitempty"`
}

// DateModel is a date rendered with RenderPattern as a Go time layout.
type DateModel struct {
	Value         time.Time `json:"value"`
	RenderPattern string    `json:"renderPattern,omitempty"`
}

type StringListModel struct {
	Values []string `json:"values"`
}

// DataSourceModel is an ordered collection of nested scopes, one per item.
type DataSourceModel struct {
	Items []*Context `json:"items"`
}

// BarChartModel carries the categories and series a chart can bind to
// through its DataSourceKey.
type BarChartModel struct {
	BarChartContent *BarChartData `json:"barChartContent"`
}

type BarChartData struct {
	Categories []BarChartCategory `json:"categories"`
	Series     []BarChartSerie    `json:"series"`
}

type BarChartCategory struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type BarChartSerie struct {
	Name              string    `json:"name"`
	Color             string    `json:"color,omitempty"`
	DataLabelColor    string    `json:"dataLabelColor,omitempty"`
	LabelFormatString string    `json:"labelFormatString,omitempty"`
	Values            []float64 `json:"values"`
}

// ImageModel is a binary image payload. Extension is the file extension
// without the dot ("png", "jpeg", ...).
type ImageModel struct {
	Data      []byte `json:"data"`
	Extension string `json:"extension"`
}

func (*StringModel) Kind() Kind     { return KindString }
func (*BooleanModel) Kind() Kind    { return KindBoolean }
func (*DoubleModel) Kind() Kind     { return KindDouble }
func (*DateModel) Kind() Kind       { return KindDate }
func (*StringListModel) Kind() Kind { return KindStringList }
func (*DataSourceModel) Kind() Kind { return KindDataSource }
func (*BarChartModel) Kind() Kind   { return KindBarChart }
func (*ImageModel) Kind() Kind      { return KindImage }

// NewItem returns an empty item of the given kind.
func NewItem(kind Kind) (Item, bool) {
	switch kind {
	case KindString:
		return &StringModel{}, true
	case KindBoolean:
		return &BooleanModel{}, true
	case KindDouble:
		return &DoubleModel{}, true
	case KindDate:
		return &DateModel{}, true
	case KindStringList:
		return &StringListModel{}, true
	case KindDataSource:
		return &DataSourceModel{}, true
	case KindBarChart:
		return &BarChartModel{}, true
	case KindImage:
		return &ImageModel{}, true
	}

	return nil, false
}
