package startup

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/sandbox-gateway/internal/dsl"
	"github.com/codex-k8s/sandbox-gateway/internal/log"
)

func TestRunExecutesHooksInOrder(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "marker")
	hooks := []dsl.HookConfig{
		{Command: "echo first >> " + marker},
		{Command: ""},
		{Command: "echo second >> " + marker, Timeout: "5s"},
	}

	var buf bytes.Buffer
	require.NoError(t, Run(context.Background(), hooks, log.NewWithWriter("info", &buf)))

	data, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
	assert.Contains(t, buf.String(), "running startup hook")
}

func TestRunStopsOnFailure(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "marker")
	hooks := []dsl.HookConfig{
		{Command: "echo boom >&2; exit 3"},
		{Command: "touch " + marker},
	}

	var buf bytes.Buffer
	err := Run(context.Background(), hooks, log.NewWithWriter("info", &buf))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "startup hook 0 failed")
	assert.Contains(t, buf.String(), "boom")
	assert.NoFileExists(t, marker)
}

func TestRunInvalidTimeout(t *testing.T) {
	err := Run(context.Background(), []dsl.HookConfig{{Command: "true", Timeout: "soon"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timeout")
}

func TestRunHonoursTimeout(t *testing.T) {
	err := Run(context.Background(), []dsl.HookConfig{{Command: "sleep 5", Timeout: "50ms"}}, nil)
	assert.Error(t, err)
}
