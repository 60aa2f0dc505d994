package xml

import (
	"fmt"
	"strings"
)

// Handler takes the content of a package part and returns the modified
// content that will replace it.
type Handler func(content string) (string, error)

// HandlersMap maps part names (e.g. "word/document.xml") to a [Handler]
// chain. Each part content is modified sequentially by each function in the
// []Handler slice and the final output overwrites the original.
type HandlersMap map[string][]Handler

// Add appends handlers to the chain of filename.
func (m HandlersMap) Add(filename string, handlers ...Handler) HandlersMap {
	m[filename] = append(m[filename], handlers...)
	return m
}

// Apply runs the chain of filename over content. Parts without handlers are
// returned unchanged.
func (m HandlersMap) Apply(filename, content string) (string, error) {
	var err error
	for i, handler := range m[filename] {
		content, err = handler(content)
		if err != nil {
			return "", fmt.Errorf("handler %d of '%s': %w", i, filename, err)
		}
	}

	return content, nil
}

// ReplaceAll returns a handler replacing every occurrence of old with new.
func ReplaceAll(old, new string) Handler {
	return func(content string) (string, error) {
		return strings.ReplaceAll(content, old, new), nil
	}
}
