package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/provgate/internal/extract"
	"github.com/ppiankov/provgate/internal/model"
)

// LoadRecord reads and parses a work product file. The format is chosen
// by extension: .json, or .yaml/.yml.
func LoadRecord(path string) (*model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read work product: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return model.ParseJSONRecord(data)
	case ".yaml", ".yml":
		return model.ParseYAMLRecord(data)
	default:
		return nil, fmt.Errorf("unsupported work product format: %s (expected .json, .yaml, or .yml)", path)
	}
}

// LoadContent reads rendered content. HTML inputs are reduced to their
// visible text before validation; everything else is used verbatim.
func LoadContent(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}

	if extract.IsHTMLPath(path) {
		text, err := extract.TextFromHTML(string(data))
		if err != nil {
			return "", fmt.Errorf("extract text from %s: %w", path, err)
		}
		return text, nil
	}

	return string(data), nil
}
