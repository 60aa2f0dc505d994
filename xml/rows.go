package xml

import (
	"regexp"
	"strings"
)

var (
	tableRe    = regexp.MustCompile(`(?s)<w:tbl\b[^>]*>.*?</w:tbl>`)
	tableRowRe = regexp.MustCompile(`(?s)<w:tr\b[^>]*>.*?</w:tr>`)
	textRe     = regexp.MustCompile(`(?is)<w:t(?:\s[^>]*)?>(.*?)</w:t>`)
	// drawings, pictures and shapes render without text
	visualRe = regexp.MustCompile(`(?is)<w:drawing\b|<w:pict\b|<mc:AlternateContent\b|<v:shape\b|<wps:spPr\b`)
)

// isRowEmpty reports whether a table row renders nothing: no visible text
// and no visual content.
func isRowEmpty(row string) bool {
	if visualRe.MatchString(row) {
		return false
	}

	for _, m := range textRe.FindAllStringSubmatch(row, -1) {
		if strings.TrimSpace(m[1]) != "" {
			return false
		}
	}

	return true
}

// RemoveEmptyTableRows returns a handler dropping the table rows that
// render nothing, e.g. data rows whose bindings resolved to blanks. A table
// left without rows is dropped as a whole. Nested tables are not supported.
func RemoveEmptyTableRows() Handler {
	return func(content string) (string, error) {
		content = tableRowRe.ReplaceAllStringFunc(content, func(row string) string {
			if isRowEmpty(row) {
				return ""
			}
			return row
		})

		return tableRe.ReplaceAllStringFunc(content, func(table string) string {
			if !tableRowRe.MatchString(table) {
				return ""
			}
			return table
		}), nil
	}
}
