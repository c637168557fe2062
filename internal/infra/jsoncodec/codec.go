package jsoncodec

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Codec parses schema text and re-encodes it for display.
type Codec struct{}

// Decode parses data into plain Go values: objects become map[string]any,
// arrays []any, numbers float64. Duplicate object names are rejected.
func (Codec) Decode(data []byte) (any, error) {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return value, nil
}

// Canonicalize returns the RFC 8785 form of input.
func (Codec) Canonicalize(ctx context.Context, input []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value := jsontext.Value(bytes.Clone(input))
	if err := value.Canonicalize(); err != nil {
		return nil, fmt.Errorf("canonicalize json: %w", err)
	}
	return []byte(value), nil
}

// Indent reformats input with two-space indentation, keeping member order.
func (Codec) Indent(input []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf, jsontext.WithIndent("  "))
	if err := enc.WriteValue(jsontext.Value(input)); err != nil {
		return nil, fmt.Errorf("indent json: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode marshals value with two-space indentation and sorted object names.
func (Codec) Encode(value any) ([]byte, error) {
	data, err := json.Marshal(value, json.Deterministic(true), jsontext.WithIndent("  "))
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return data, nil
}
