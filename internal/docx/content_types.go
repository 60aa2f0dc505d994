package docx

import (
	"bytes"
	"encoding/xml"
	"strings"
)

const (
	contentTypesFilename = "[Content_Types].xml"

	mainDocumentContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	stylesContentType       = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	chartContentType        = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
	relsContentType         = "application/vnd.openxmlformats-package.relationships+xml"
	xlsxContentType         = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type tagDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type tagOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentTypes struct {
	XMLName   xml.Name      `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []tagDefault  `xml:"Default"`
	Overrides []tagOverride `xml:"Override"`
}

func newContentTypes() *contentTypes {
	ct := &contentTypes{}
	ct.AddDefaultUnique("rels", relsContentType)
	ct.AddDefaultUnique("xml", "application/xml")
	ct.AddOverrideUnique("/"+documentFilename, mainDocumentContentType)
	ct.AddOverrideUnique("/"+stylesFilename, stylesContentType)

	return ct
}

func parseContentTypes(data []byte) (*contentTypes, error) {
	var ct contentTypes
	err := xml.Unmarshal(data, &ct)
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

// AddDefaultUnique adds a default content type if the extension is not
// already mapped.
func (ct *contentTypes) AddDefaultUnique(extension, contentType string) {
	for _, d := range ct.Defaults {
		if strings.EqualFold(d.Extension, extension) {
			return
		}
	}

	ct.Defaults = append(ct.Defaults, tagDefault{
		Extension:   extension,
		ContentType: contentType,
	})
}

// AddOverrideUnique adds an override for partName unless one exists.
func (ct *contentTypes) AddOverrideUnique(partName, contentType string) {
	for _, o := range ct.Overrides {
		if o.PartName == partName {
			return
		}
	}

	ct.Overrides = append(ct.Overrides, tagOverride{
		PartName:    partName,
		ContentType: contentType,
	})
}

// replaceEmptyTags replaces specific XML empty tags patterns.
func replaceEmptyTags(data []byte) []byte {
	data = bytes.ReplaceAll(data, []byte("></Default>"), []byte(" />"))
	data = bytes.ReplaceAll(data, []byte("></Override>"), []byte(" />"))
	data = bytes.ReplaceAll(data, []byte("></Relationship>"), []byte(" />"))
	return data
}

func (ct *contentTypes) ToXml() ([]byte, error) {
	output, err := xml.MarshalIndent(ct, "", "  ")
	if err != nil {
		return []byte{}, err
	}

	output = replaceEmptyTags(output)

	header := []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	xmlBytes := make([]byte, 0, len(header)+len(output))

	xmlBytes = append(xmlBytes, header...)
	xmlBytes = append(xmlBytes, output...)

	return xmlBytes, nil
}
