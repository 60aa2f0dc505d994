package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownElement = errors.New("unknown template element type")

	// ErrMissingChartData is returned when a chart has no categories or no
	// series to draw.
	ErrMissingChartData = errors.New("chart model has no categories or no series")

	// ErrInvalidColor is wrapped by every [ColorError].
	ErrInvalidColor = errors.New("invalid color")
)

// CodeSeriesCategoryMismatch is the [ChartModelError] code reported when a
// series does not hold one value per category.
const CodeSeriesCategoryMismatch = "004-001"

// CodeUnknownChartType is the [ChartModelError] code reported for a
// barChartType other than BarChart or DoughnutChart.
const CodeUnknownChartType = "004-002"

// ChartModelError reports an ill-formed chart model.
type ChartModelError struct {
	Code    string
	Message string
}

func (e *ChartModelError) Error() string {
	return fmt.Sprintf("chart model error %s: %s", e.Code, e.Message)
}

// ColorError reports a color that is not six hexadecimal digits.
type ColorError struct {
	Field string
	Value string
}

func (e *ColorError) Error() string {
	return fmt.Sprintf("invalid color %q for %s", e.Value, e.Field)
}

func (e *ColorError) Unwrap() error {
	return ErrInvalidColor
}
