package audit

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/sandbox-gateway/internal/correlation"
	"github.com/codex-k8s/sandbox-gateway/internal/log"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var record map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		out = append(out, record)
	}
	return out
}

func TestRecordInfoEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(log.NewWithWriter("info", &buf))
	ctx := correlation.With(context.Background(), correlation.Context{RequestID: "req-1"})

	logger.Record(ctx, Event{
		Method:    "POST",
		Path:      "/api/v1/execute_tool",
		Message:   "executing tool",
		ToolName:  "python",
		Arguments: map[string]any{"token": "secret"},
	})

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "executing tool", rec["message"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "POST", rec["method"])
	assert.Equal(t, "/api/v1/execute_tool", rec["path"])
	assert.Equal(t, "python", rec["tool_name"])
	assert.NotContains(t, rec, "error")
	assert.NotContains(t, rec, "arguments")
}

func TestRecordErrorEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(log.NewWithWriter("info", &buf))

	logger.Record(context.Background(), Event{Method: "POST", Path: "/x", Message: "tool failed", Err: errors.New("boom")})

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, "ERROR", records[0]["level"])
	assert.Equal(t, "boom", records[0]["error"])
	assert.Equal(t, correlation.Sentinel, records[0]["request_id"])
}

func TestRecordDebugIncludesRedactedArguments(t *testing.T) {
	var buf bytes.Buffer
	logger := New(log.NewWithWriter("debug", &buf))

	logger.Record(context.Background(), Event{
		Message:   "executing tool",
		Arguments: map[string]any{"code": "1+1", "api_key": "k"},
	})

	records := decodeLines(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, map[string]any{"code": "1+1", "api_key": "***"}, records[0]["arguments"])
}

func TestRecordNeverFails(t *testing.T) {
	var nilLogger *StdLogger
	assert.NotPanics(t, func() { nilLogger.Record(context.Background(), Event{}) })
	assert.NotPanics(t, func() { New(nil).Record(context.Background(), Event{}) })
	assert.NotPanics(t, func() {
		New(log.NewWithWriter("info", brokenWriter{})).Record(context.Background(), Event{Message: "x"})
	})
	assert.NotPanics(t, func() { Nop{}.Record(context.Background(), Event{}) })
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { panic("backend down") }

func TestConcurrentEventsKeepTheirRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(log.NewWithWriter("info", &buf))

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := correlation.With(context.Background(), correlation.Context{RequestID: fmt.Sprintf("req-%d", i)})
			logger.Record(ctx, Event{Message: "executing tool", ToolName: fmt.Sprintf("tool-%d", i)})
		}(i)
	}
	wg.Wait()

	records := decodeLines(t, &buf)
	require.Len(t, records, n)
	for _, rec := range records {
		var idx int
		_, err := fmt.Sscanf(rec["request_id"].(string), "req-%d", &idx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("tool-%d", idx), rec["tool_name"])
	}
}
