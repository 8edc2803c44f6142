package codec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBlankYieldsEmptyObject(t *testing.T) {
	for _, raw := range []string{"", " ", "\n\t  \r\n"} {
		value, err := Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, value, "raw=%q", raw)
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"unterminated object": `{"a":`,
		"bare word":           `not json`,
		"trailing data":       `{"a":1} {"b":2}`,
		"trailing garbage":    `[1,2]x`,
		"single quotes":       `{'a':1}`,
		"dangling comma":      `{"a":1,}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(raw)
			require.Error(t, err)

			var argErr *ArgumentError
			require.True(t, errors.As(err, &argErr))
			assert.Equal(t, KindMalformed, argErr.Kind)
			assert.True(t, errors.Is(err, ErrMalformed))
			assert.False(t, errors.Is(err, ErrMissingField))
			assert.Contains(t, err.Error(), "malformed arguments")
		})
	}
}

func TestDecodeAcceptsAnyJSONValue(t *testing.T) {
	cases := []struct {
		raw  string
		want Value
	}{
		{raw: `{"x":1}`, want: map[string]any{"x": json.Number("1")}},
		{raw: ` [true, null] `, want: []any{true, nil}},
		{raw: `"text"`, want: "text"},
		{raw: `3.5`, want: json.Number("3.5")},
		{raw: `null`, want: nil},
	}
	for _, tc := range cases {
		value, err := Decode(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, value, tc.raw)
	}
}

func TestRoundTripIsLossless(t *testing.T) {
	inputs := []string{
		`{"code":"print(1)","limits":{"cpu":0.5,"mem":268435456}}`,
		`{"big":123456789012345678901234567890,"precise":1.0000000000000001}`,
		`["<tag>", "a&b", "é", -0.0, 1e400]`,
		`{"nested":[{"a":[]},{"b":{}}],"empty":""}`,
	}
	for _, raw := range inputs {
		first, err := Decode(raw)
		require.NoError(t, err)

		encoded, err := Encode(first)
		require.NoError(t, err)

		second, err := Decode(string(encoded))
		require.NoError(t, err)
		assert.Equal(t, first, second, raw)

		again, err := Encode(second)
		require.NoError(t, err)
		assert.Equal(t, string(encoded), string(again))
	}
}

func TestEncodeKeepsNumberText(t *testing.T) {
	value, err := Decode(`{"n":123456789012345678901234567890}`)
	require.NoError(t, err)

	encoded, err := Encode(value)
	require.NoError(t, err)
	assert.Equal(t, `{"n":123456789012345678901234567890}`, string(encoded))
}

func TestFromBody(t *testing.T) {
	code := "print('hi')"

	t.Run("absent arguments", func(t *testing.T) {
		value, err := FromBody(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, value)
	})

	t.Run("null arguments", func(t *testing.T) {
		value, err := FromBody(json.RawMessage(" null "), nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, value)
	})

	t.Run("object arguments", func(t *testing.T) {
		value, err := FromBody(json.RawMessage(`{"lang":"python"}`), nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"lang": "python"}, value)
	})

	t.Run("code folded into empty arguments", func(t *testing.T) {
		value, err := FromBody(nil, &code)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"code": code}, value)
	})

	t.Run("explicit code argument wins", func(t *testing.T) {
		value, err := FromBody(json.RawMessage(`{"code":"x = 1"}`), &code)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"code": "x = 1"}, value)
	})

	t.Run("code with non-object arguments", func(t *testing.T) {
		_, err := FromBody(json.RawMessage(`[1,2]`), &code)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformed))
		assert.Contains(t, err.Error(), "array")
	})

	t.Run("malformed arguments", func(t *testing.T) {
		_, err := FromBody(json.RawMessage(`{"a":`), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformed))
	})
}

func TestMissingField(t *testing.T) {
	err := MissingField("tool_name")
	assert.Equal(t, "missing field: tool_name", err.Error())
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.False(t, errors.Is(err, ErrMalformed))
	assert.Equal(t, "tool_name", err.Field)
}
