package docx

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
)

const (
	officeDocumentRelationship = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	stylesRelationship         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	imageRelationship          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	chartRelationship          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
	packageRelationship        = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/package"
	headerRelationship         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	footerRelationship         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
)

type relationshipDetail struct {
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
	Id     string `xml:"Id,attr"`

	// "External" for hyperlinks and linked images
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

type relationship struct {
	XMLName       xml.Name             `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Relationships []relationshipDetail `xml:"Relationship"`
	greaterRId    uint64
}

var rIdNRegEx = regexp.MustCompile(`^rId(\d+)$`)

func parseRelationship(data []byte) (*relationship, error) {
	var relationships relationship
	err := xml.Unmarshal(data, &relationships)
	if err != nil {
		return nil, err
	}

	for _, r := range relationships.Relationships {
		m := rIdNRegEx.FindStringSubmatch(r.Id)
		if m == nil {
			continue
		}

		num, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("could not parse rId '%s': %w", r.Id, err)
		}

		if num > relationships.greaterRId {
			relationships.greaterRId = num
		}
	}

	return &relationships, nil
}

// NextRId returns the next free "rIdN" identifier of this relationship set.
func (r *relationship) NextRId() string {
	r.greaterRId++
	return fmt.Sprintf("rId%d", r.greaterRId)
}

// addRelationship appends a relationship with a fresh id and returns the id.
func (r *relationship) addRelationship(relType, target string) string {
	id := r.NextRId()

	r.Relationships = append(r.Relationships, relationshipDetail{
		Type:   relType,
		Target: target,
		Id:     id,
	})

	return id
}

func (r *relationship) target(id string) (relationshipDetail, bool) {
	for _, rel := range r.Relationships {
		if rel.Id == id {
			return rel, true
		}
	}

	return relationshipDetail{}, false
}

func (r *relationship) toXML() ([]byte, error) {
	output, err := xml.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}

	output = replaceEmptyTags(output)

	return append([]byte(xml.Header), output...), nil
}
