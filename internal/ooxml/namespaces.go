package ooxml

import (
	"regexp"
)

// Header is the declaration Word writes at the top of every part.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

const (
	NamespaceW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NamespaceWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	NamespaceA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NamespacePIC = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	NamespaceC   = "http://schemas.openxmlformats.org/drawingml/2006/chart"

	GraphicDataChart   = NamespaceC
	GraphicDataPicture = NamespacePIC
)

// DocumentNamespaces returns the prefix declarations of a main document part.
func DocumentNamespaces() []string {
	return []string{
		"xmlns:w", NamespaceW,
		"xmlns:r", NamespaceR,
		"xmlns:wp", NamespaceWP,
		"xmlns:a", NamespaceA,
		"xmlns:pic", NamespacePIC,
		"xmlns:c", NamespaceC,
	}
}

// ChartNamespaces returns the prefix declarations of a chart part.
func ChartNamespaces() []string {
	return []string{
		"xmlns:c", NamespaceC,
		"xmlns:a", NamespaceA,
		"xmlns:r", NamespaceR,
	}
}

var emptyTagRegEx = regexp.MustCompile(`<([A-Za-z_][\w:.-]*)((?:\s+[^<>]*?)?)></([A-Za-z_][\w:.-]*)>`)

// collapseEmptyTags rewrites <x a="1"></x> as <x a="1"/>.
func collapseEmptyTags(data []byte) []byte {
	return emptyTagRegEx.ReplaceAllFunc(data, func(m []byte) []byte {
		sub := emptyTagRegEx.FindSubmatch(m)
		if string(sub[1]) != string(sub[3]) {
			return m
		}

		out := make([]byte, 0, len(m))
		out = append(out, '<')
		out = append(out, sub[1]...)
		out = append(out, sub[2]...)
		out = append(out, '/', '>')

		return out
	})
}
