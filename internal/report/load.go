package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Format names an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the decoder for a file by its extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", name)
	}
}

// Load reads a report file, validates it, and decodes it.
func Load(path string) (ReportData, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return ReportData{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return ReportData{}, fmt.Errorf("unable to open report %s: %w", path, err)
	}
	defer file.Close()

	data, err := Decode(file, format)
	if err != nil {
		return ReportData{}, fmt.Errorf("unable to load report %s: %w", path, err)
	}
	return data, nil
}

// Decode reads a whole document from r. YAML is converted to JSON first so
// both encodings go through the same schema check and decoder.
func Decode(r io.Reader, format Format) (ReportData, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return ReportData{}, fmt.Errorf("read report: %w", err)
	}

	if format == FormatYAML {
		raw, err = yamlToJSON(raw)
		if err != nil {
			return ReportData{}, err
		}
	}

	if err := ValidateDocument(raw); err != nil {
		return ReportData{}, err
	}

	var data ReportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return ReportData{}, fmt.Errorf("decode report JSON: %w", err)
	}
	return data, nil
}

func yamlToJSON(raw []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode report YAML: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert report YAML: %w", err)
	}
	return out, nil
}
