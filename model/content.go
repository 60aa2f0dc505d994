package model

type Justification string

const (
	JustifyLeft   Justification = "left"
	JustifyCenter Justification = "center"
	JustifyRight  Justification = "right"
	JustifyBoth   Justification = "both"
)

type Paragraph struct {
	BaseElement
	ParagraphStyleID string        `json:"paragraphStyleId,omitempty"`
	Justification    Justification `json:"justification,omitempty"`
	// SpacingBefore and SpacingAfter are in twentieths of a point.
	SpacingBefore *int     `json:"spacingBefore,omitempty"`
	SpacingAfter  *int     `json:"spacingAfter,omitempty"`
	Shading       string   `json:"shading,omitempty"`
	ChildElements Elements `json:"childElements"`
}

func (*Paragraph) Kind() ElementKind { return KindParagraph }

func (p *Paragraph) Clone() Element {
	return &Paragraph{
		BaseElement:      p.BaseElement,
		ParagraphStyleID: p.ParagraphStyleID,
		Justification:    p.Justification,
		SpacingBefore:    cloneInt(p.SpacingBefore),
		SpacingAfter:     cloneInt(p.SpacingAfter),
		Shading:          p.Shading,
		ChildElements:    p.ChildElements.Clone(),
	}
}

// Label is a run of text. Styling fields are applied only when non-blank and
// are not validated.
type Label struct {
	BaseElement
	Text      string `json:"text"`
	FontName  string `json:"fontName,omitempty"`
	FontSize  string `json:"fontSize,omitempty"` // half-points
	FontColor string `json:"fontColor,omitempty"`
	Shading   string `json:"shading,omitempty"`
	Bold      bool   `json:"bold,omitempty"`
	Italic    bool   `json:"italic,omitempty"`
	Underline bool   `json:"underline,omitempty"`
}

func (*Label) Kind() ElementKind { return KindLabel }

func (l *Label) Clone() Element {
	c := *l
	return &c
}

type PageBreak struct {
	BaseElement
}

func (*PageBreak) Kind() ElementKind { return KindPageBreak }

func (p *PageBreak) Clone() Element {
	c := *p
	return &c
}

// Image embeds a picture read from the context item bound to ContextKey or,
// when ContextKey is empty, from Path relative to the assets directory.
type Image struct {
	BaseElement
	Path       string `json:"path,omitempty"`
	ContextKey string `json:"contextKey,omitempty"`
	// MaxWidth and MaxHeight are in pixels; the picture keeps its ratio.
	MaxWidth  *int `json:"maxWidth,omitempty"`
	MaxHeight *int `json:"maxHeight,omitempty"`
}

func (*Image) Kind() ElementKind { return KindImage }

func (i *Image) Clone() Element {
	return &Image{
		BaseElement: i.BaseElement,
		Path:        i.Path,
		ContextKey:  i.ContextKey,
		MaxWidth:    cloneInt(i.MaxWidth),
		MaxHeight:   cloneInt(i.MaxHeight),
	}
}

type Symbology string

const (
	SymbologyQR      Symbology = "qr"
	SymbologyCode128 Symbology = "code128"
	SymbologyEAN13   Symbology = "ean13"
)

// Barcode renders Value as a PNG picture. Width and Height are in pixels.
type Barcode struct {
	BaseElement
	Value     string    `json:"value"`
	Symbology Symbology `json:"symbology"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
}

func (*Barcode) Kind() ElementKind { return KindBarcode }

func (b *Barcode) Clone() Element {
	c := *b
	return &c
}

// ForEach renders ItemTemplate once per item of the data source bound to
// DataSourceKey, in place.
type ForEach struct {
	BaseElement
	DataSourceKey             string   `json:"dataSourceKey"`
	AutoContextAddItemsPrefix string   `json:"autoContextAddItemsPrefix,omitempty"`
	ItemTemplate              Elements `json:"itemTemplate"`
}

func (*ForEach) Kind() ElementKind { return KindForEach }

func (f *ForEach) Clone() Element {
	return &ForEach{
		BaseElement:               f.BaseElement,
		DataSourceKey:             f.DataSourceKey,
		AutoContextAddItemsPrefix: f.AutoContextAddItemsPrefix,
		ItemTemplate:              f.ItemTemplate.Clone(),
	}
}
