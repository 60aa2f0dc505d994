package goreportdocx

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/JJJJJJack/go-report-docx/model"
)

// LoadReport reads a report (template and context) from a .json, .yaml or
// .yml file.
func LoadReport(path string) (*model.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read report %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("unable to read report %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported report format %q", filepath.Ext(path))
	}

	report, err := model.ParseReport(data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse report %s: %w", path, err)
	}

	return report, nil
}

// yamlToJSON converts a YAML document to JSON, so that it is decoded by the
// same polymorphic unmarshalers.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	err := yaml.Unmarshal(data, &v)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal yaml: %w", err)
	}

	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("unable to convert yaml to json: %w", err)
	}

	return out, nil
}
