package datacontext

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DefaultDateLayout = "2006-01-02"

// Formatter renders numbers and dates for a given locale. It replaces any
// process-wide culture setting: callers pass it down explicitly.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

// ParseFormatter builds a Formatter from a BCP 47 tag such as "en-US" or "it".
func ParseFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}

	return NewFormatter(tag), nil
}

func (f *Formatter) Language() language.Tag {
	return f.tag
}

// FormatNumber renders v with a pattern made of a letter and an optional
// number of decimals:
//
//	N2  grouped decimal, 2 decimals   (1,234.50)
//	F2  decimal without grouping      (1234.50)
//	P1  percentage, 1 decimal         (12.5%)
//
// Unrecognized patterns fall back to the shortest representation.
func (f *Formatter) FormatNumber(v float64, pattern string) string {
	if pattern == "" {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	letter := strings.ToUpper(pattern[:1])
	decimals := -1
	if len(pattern) > 1 {
		d, err := strconv.Atoi(pattern[1:])
		if err != nil || d < 0 {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		decimals = d
	}

	opts := []number.Option{}
	if decimals >= 0 {
		opts = append(opts, number.Scale(decimals))
	}

	switch letter {
	case "N":
		return f.printer.Sprint(number.Decimal(v, opts...))
	case "F":
		opts = append(opts, number.NoSeparator())
		return f.printer.Sprint(number.Decimal(v, opts...))
	case "P":
		return f.printer.Sprint(number.Percent(v, opts...))
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (f *Formatter) FormatDate(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultDateLayout
	}

	return t.Format(layout)
}

var defaultFormatter = NewFormatter(language.AmericanEnglish)

// DefaultFormatter formats for en-US.
func DefaultFormatter() *Formatter {
	return defaultFormatter
}
