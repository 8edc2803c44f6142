package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactArguments(t *testing.T) {
	in := map[string]any{
		"code":        "print(1)",
		"api_token":   "abc",
		"secret_name": "db",
		"env": map[string]any{
			"PASSWORD": "hunter2",
			"HOME":     "/root",
		},
		"files": []any{
			map[string]any{"name": "a.py", "Authorization": "Bearer x"},
			"plain",
		},
	}

	got := RedactArguments(in)

	assert.Equal(t, map[string]any{
		"code":        "print(1)",
		"api_token":   Mask,
		"secret_name": "db",
		"env": map[string]any{
			"PASSWORD": Mask,
			"HOME":     "/root",
		},
		"files": []any{
			map[string]any{"name": "a.py", "Authorization": Mask},
			"plain",
		},
	}, got)

	// input untouched
	assert.Equal(t, "abc", in["api_token"])
	assert.Equal(t, "hunter2", in["env"].(map[string]any)["PASSWORD"])
}

func TestRedactArgumentsScalars(t *testing.T) {
	assert.Nil(t, RedactArguments(nil))
	assert.Equal(t, "text", RedactArguments("text"))
	assert.Equal(t, 42, RedactArguments(42))
}
