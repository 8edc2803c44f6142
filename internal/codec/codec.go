// Package codec turns transport-level tool arguments into one canonical value.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CodeKey is the argument key the REST "code" field is folded into.
const CodeKey = "code"

// Value is a decoded JSON document. Numbers are kept as json.Number.
type Value = any

var errTrailingData = errors.New("unexpected data after JSON value")

// Decode parses an arguments string received as text.
// Blank input yields an empty object.
func Decode(raw string) (Value, error) {
	if strings.TrimSpace(raw) == "" {
		return emptyObject(), nil
	}
	return decode([]byte(raw))
}

// FromBody builds canonical arguments from an already decoded request body.
// Absent or null arguments yield an empty object. A non-nil code is stored
// under CodeKey unless the arguments already carry it.
func FromBody(arguments json.RawMessage, code *string) (Value, error) {
	var value Value
	trimmed := bytes.TrimSpace(arguments)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		value = emptyObject()
	} else {
		decoded, err := decode(trimmed)
		if err != nil {
			return nil, err
		}
		value = decoded
	}

	if code == nil {
		return value, nil
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, Malformed(fmt.Errorf("%q requires object arguments, got %s", CodeKey, kindOf(value)))
	}
	if _, exists := obj[CodeKey]; !exists {
		obj[CodeKey] = *code
	}
	return obj, nil
}

// Encode renders a value as compact JSON without HTML escaping.
func Encode(value Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("encode arguments: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, Malformed(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, Malformed(errTrailingData)
	}
	return value, nil
}

func emptyObject() map[string]any {
	return map[string]any{}
}

func kindOf(value Value) string {
	switch value.(type) {
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}
