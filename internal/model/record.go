package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Key-naming convention for work products:
//   - keys starting with MetadataPrefix are reserved for tool metadata
//   - keys ending in SourceSuffix / VerifiedAtSuffix are provenance
//     companions of the fact field they are derived from
const (
	MetadataKey      = "_metadata"
	MetadataPrefix   = "_"
	SourceSuffix     = "_source"
	VerifiedAtSuffix = "_verified_at"
)

// Metadata fields every well-formed work product must carry
var RequiredMetadataFields = []string{"extraction_date", "model", "extractor_version"}

// Record is a work product: an ordered mapping from field name to value.
// Key order follows the source document, so validators that iterate fields
// produce deterministic, reproducible messages for identical input.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates an empty record
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores a value, appending the key to the order on first insert
func (r *Record) Set(key string, value any) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key and whether the key is present
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether the key is present, regardless of its value
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the field names in document order
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of fields
func (r *Record) Len() int {
	return len(r.keys)
}

// Metadata returns the reserved metadata block if present and map-shaped
func (r *Record) Metadata() (map[string]any, bool) {
	v, ok := r.values[MetadataKey]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	return m, ok
}

// ParseJSONRecord decodes a JSON object preserving its key order.
// Numbers are kept as their literal digit sequence (json.Number) so that
// downstream cross-referencing sees them exactly as written.
func ParseJSONRecord(data []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parse record: top-level value must be an object, got %v", tok)
	}

	rec := NewRecord()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse record key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parse record key: unexpected token %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("parse record value for %q: %w", key, err)
		}
		rec.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}

	return rec, nil
}

// ParseYAMLRecord decodes a YAML mapping preserving its key order
func ParseYAMLRecord(data []byte) (*Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("parse record: empty document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse record: top-level value must be a mapping")
	}

	rec := NewRecord()
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valNode := root.Content[i+1]

		var value any
		if err := valNode.Decode(&value); err != nil {
			return nil, fmt.Errorf("parse record value for %q: %w", keyNode.Value, err)
		}
		rec.Set(keyNode.Value, value)
	}

	return rec, nil
}

// IsNumber reports whether a record value is numeric.
// Booleans and nil are not numbers even though Go and JSON would let
// them coerce.
func IsNumber(v any) bool {
	switch v.(type) {
	case json.Number, int, int64, float64:
		return true
	}
	return false
}

// IsEmptyValue reports whether a value counts as empty for provenance
// purposes: nil and the empty string qualify, a literal 0 does not.
func IsEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// Stringify renders a record value the way it would appear in text.
// Numbers render as their digit sequence, nested structures as their
// default textual form.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
