package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/JJJJJJack/go-report-docx/datacontext"
)

type elementHeader struct {
	Type ElementKind `json:"type"`
}

func (es Elements) MarshalJSON() ([]byte, error) {
	if es == nil {
		return []byte("[]"), nil
	}

	raws := make([]json.RawMessage, 0, len(es))
	for i, e := range es {
		if e == nil {
			continue
		}

		raw, err := marshalElement(e)
		if err != nil {
			return nil, fmt.Errorf("unable to marshal element %d (%s): %w", i, e.Kind(), err)
		}

		raws = append(raws, raw)
	}

	return json.Marshal(raws)
}

func (es *Elements) UnmarshalJSON(data []byte) error {
	raws := []json.RawMessage{}
	err := json.Unmarshal(data, &raws)
	if err != nil {
		return fmt.Errorf("unable to unmarshal element list: %w", err)
	}

	out := make(Elements, 0, len(raws))
	for i, raw := range raws {
		var header elementHeader
		err := json.Unmarshal(raw, &header)
		if err != nil {
			return fmt.Errorf("unable to read type of element %d: %w", i, err)
		}

		e, ok := NewElement(header.Type)
		if !ok {
			return fmt.Errorf("element %d: %w %q", i, ErrUnknownElement, header.Type)
		}

		err = json.Unmarshal(raw, e)
		if err != nil {
			return fmt.Errorf("unable to unmarshal %s element %d: %w", header.Type, i, err)
		}

		out = append(out, e)
	}

	*es = out

	return nil
}

func marshalElement(e Element) ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	header, err := json.Marshal(elementHeader{Type: e.Kind()})
	if err != nil {
		return nil, err
	}

	body = bytes.TrimPrefix(body, []byte("{"))
	if len(bytes.TrimSpace(body)) == 1 {
		return header, nil
	}

	header = bytes.TrimSuffix(header, []byte("}"))
	header = append(header, ',')

	return append(header, body...), nil
}

// Report bundles a template and the context it is rendered against. It is the
// single-file input format of the report generator.
type Report struct {
	Document     *Document            `json:"document"`
	ContextModel *datacontext.Context `json:"contextModel"`
}

// ParseReport decodes a JSON [Report].
func ParseReport(data []byte) (*Report, error) {
	report := &Report{}
	err := json.Unmarshal(data, report)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal report: %w", err)
	}

	if report.Document == nil {
		return nil, fmt.Errorf("report has no document")
	}

	if report.ContextModel == nil {
		report.ContextModel = datacontext.New()
	}

	return report, nil
}
