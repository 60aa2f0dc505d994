package model

// Margin is a page margin in twentieths of a point.
type Margin struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
	Header int `json:"header,omitempty"`
	Footer int `json:"footer,omitempty"`
}

func (m *Margin) Clone() *Margin {
	if m == nil {
		return nil
	}

	c := *m
	return &c
}

// PageSize is a page size in twentieths of a point.
type PageSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// A4 portrait.
var DefaultPageSize = PageSize{Width: 11906, Height: 16838}

type Orientation string

const (
	Portrait  Orientation = "Portrait"
	Landscape Orientation = "Landscape"
)

// Document is the root of a template. Pages holds *Page and *ForEachPage
// nodes.
type Document struct {
	Margin   *Margin   `json:"margin,omitempty"`
	PageSize *PageSize `json:"pageSize,omitempty"`
	Pages    Elements  `json:"pages"`
}

func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}

	c := &Document{
		Margin: d.Margin.Clone(),
		Pages:  d.Pages.Clone(),
	}

	if d.PageSize != nil {
		ps := *d.PageSize
		c.PageSize = &ps
	}

	return c
}

type Page struct {
	BaseElement
	Margin        *Margin     `json:"margin,omitempty"`
	Orientation   Orientation `json:"orientation,omitempty"`
	ChildElements Elements    `json:"childElements"`
}

func (*Page) Kind() ElementKind { return KindPage }

func (p *Page) Clone() Element {
	return p.clonePage()
}

func (p *Page) clonePage() *Page {
	return &Page{
		BaseElement:   p.BaseElement,
		Margin:        p.Margin.Clone(),
		Orientation:   p.Orientation,
		ChildElements: p.ChildElements.Clone(),
	}
}

// ForEachPage renders its page once per item of the data source bound to
// DataSourceKey.
type ForEachPage struct {
	Page
	DataSourceKey string `json:"dataSourceKey"`
	// AutoContextAddItemsPrefix, when set, adds iteration markers such as
	// "#<prefix>_ForEachPage_IsFirstItem#" to each item scope.
	AutoContextAddItemsPrefix string `json:"autoContextAddItemsPrefix,omitempty"`
}

func (*ForEachPage) Kind() ElementKind { return KindForEachPage }

func (f *ForEachPage) Clone() Element {
	return &ForEachPage{
		Page:                      *f.Page.clonePage(),
		DataSourceKey:             f.DataSourceKey,
		AutoContextAddItemsPrefix: f.AutoContextAddItemsPrefix,
	}
}
