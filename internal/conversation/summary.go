package conversation

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Shape tells how a summarizer result was interpreted.
type Shape string

const (
	// ShapeText is a plain string result.
	ShapeText Shape = "text"
	// ShapeStructured is a value carrying a "summary" string.
	ShapeStructured Shape = "structured"
	// ShapeUnrecognized is any other value, kept as its JSON encoding.
	ShapeUnrecognized Shape = "unrecognized"
)

// Summary is a normalised summarizer result.
type Summary struct {
	Shape Shape
	Text  string
}

// NormalizeSummary turns whatever a summarizer returned into display text.
func NormalizeSummary(v any) (Summary, error) {
	switch s := v.(type) {
	case string:
		return Summary{Shape: ShapeText, Text: s}, nil
	case map[string]any:
		if t, ok := s["summary"].(string); ok {
			return Summary{Shape: ShapeStructured, Text: t}, nil
		}
	case map[string]string:
		if t, ok := s["summary"]; ok {
			return Summary{Shape: ShapeStructured, Text: t}, nil
		}
	}
	if t, ok := summaryField(v); ok {
		return Summary{Shape: ShapeStructured, Text: t}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return Summary{}, fmt.Errorf("unrecognized summary of type %T: %w", v, err)
	}
	return Summary{Shape: ShapeUnrecognized, Text: string(b)}, nil
}

// summaryField reads a string field named Summary from a struct or struct pointer.
func summaryField(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return "", false
	}
	f := rv.FieldByName("Summary")
	if !f.IsValid() || f.Kind() != reflect.String {
		return "", false
	}
	return f.String(), true
}
