package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/sandbox-gateway/internal/protocol"
)

func TestPlaceholder(t *testing.T) {
	res, err := Placeholder{}.Execute(context.Background(), Request{ToolName: "anything", Arguments: []any{1}})
	require.NoError(t, err)
	assert.Equal(t, Result{Status: "executed", Value: 42}, res)
}

func requireBash(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
}

func TestCommandSuccess(t *testing.T) {
	requireBash(t)
	cmd := Command{Command: `echo -n "{{ .ToolName }} "; cat; echo warn >&2`}

	res, err := cmd.Execute(context.Background(), Request{ToolName: "py", Arguments: map[string]any{"code": "1"}})
	require.NoError(t, err)
	assert.Equal(t, protocol.StatusOK, res.Status)
	assert.Equal(t, `py {"code":"1"}`, res.Stdout)
	assert.Equal(t, "warn\n", res.Stderr)
}

func TestCommandNonZeroExitIsFailedResult(t *testing.T) {
	requireBash(t)
	res, err := Command{Command: `echo bad >&2; exit 2`}.Execute(context.Background(), Request{ToolName: "x"})
	require.NoError(t, err)
	assert.Equal(t, protocol.StatusFailed, res.Status)
	assert.Equal(t, "bad\n", res.Stderr)
}

func TestCommandTimeoutIsError(t *testing.T) {
	requireBash(t)
	_, err := Command{Command: `sleep 5`, Timeout: 50 * time.Millisecond}.Execute(context.Background(), Request{ToolName: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCommandMissingBinaryIsError(t *testing.T) {
	_, err := Command{Command: "/nonexistent/sandbox", Args: []string{"run"}}.Execute(context.Background(), Request{ToolName: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start")
}

func TestHTTPSync(t *testing.T) {
	var got protocol.ExecutorRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "req-1", r.Header.Get("x-request-id"))
		assert.Equal(t, "secret", r.Header.Get("X-Engine-Token"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"status":"OK","stdout":"hi\n","result":{"n":1}}`))
	}))
	defer srv.Close()

	h := HTTP{URL: srv.URL, Headers: map[string]string{"X-Engine-Token": "secret"}}
	res, err := h.Execute(context.Background(), Request{ToolName: "py", Arguments: map[string]any{"a": 1}, RequestID: "req-1"})
	require.NoError(t, err)
	assert.Equal(t, Result{Status: "ok", Stdout: "hi\n", Value: map[string]any{"n": float64(1)}}, res)
	assert.Equal(t, "py", got.ToolName)
	assert.Equal(t, "req-1", got.RequestID)
	_, err = uuid.Parse(got.ExecutionID)
	assert.NoError(t, err)
	assert.Nil(t, got.Callback)
}

func TestHTTPErrors(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
		want   string
	}{
		"non 2xx":        {status: http.StatusBadGateway, body: "down", want: "executor status 502: down"},
		"unknown status": {status: http.StatusOK, body: `{"status":"weird"}`, want: "unknown executor status"},
		"pending sync":   {status: http.StatusOK, body: `{"status":"pending"}`, want: "pending"},
		"not json":       {status: http.StatusOK, body: `nope`, want: "invalid executor response"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := HTTP{URL: srv.URL}.Execute(context.Background(), Request{ToolName: "x"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestHTTPAsyncCallback(t *testing.T) {
	store := NewPendingStore()
	callback := httptest.NewServer(&CallbackHandler{Store: store})
	defer callback.Close()

	engine := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req protocol.ExecutorRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.WriteHeader(http.StatusAccepted)
		if !assert.NotNil(t, req.Callback) {
			return
		}

		go func() {
			body, _ := json.Marshal(protocol.ExecutorCallbackPayload{
				ExecutionID:      req.ExecutionID,
				RequestID:        req.RequestID,
				ExecutorResponse: protocol.ExecutorResponse{Status: "ok", Stdout: "done"},
			})
			resp, err := http.Post(req.Callback.URL, "application/json", bytes.NewReader(body))
			if err == nil {
				resp.Body.Close()
			}
		}()
	}))
	defer engine.Close()

	h := HTTP{URL: engine.URL, Async: true, CallbackURL: callback.URL, Pending: store}
	res, err := h.Execute(context.Background(), Request{ToolName: "x", RequestID: "req-async"})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, "done", res.Stdout)
	assert.Zero(t, store.Len())
}

func TestHTTPAsyncSharedRequestID(t *testing.T) {
	store := NewPendingStore()
	callback := httptest.NewServer(&CallbackHandler{Store: store})
	defer callback.Close()

	var (
		mu  sync.Mutex
		ids = map[string]bool{}
	)
	release := make(chan struct{})
	engine := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req protocol.ExecutorRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) || !assert.NotNil(t, req.Callback) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "client-id", req.RequestID)
		mu.Lock()
		ids[req.ExecutionID] = true
		if len(ids) == 2 {
			close(release)
		}
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)

		go func() {
			<-release
			body, _ := json.Marshal(protocol.ExecutorCallbackPayload{
				ExecutionID:      req.ExecutionID,
				RequestID:        req.RequestID,
				ExecutorResponse: protocol.ExecutorResponse{Status: "ok", Stdout: req.ToolName},
			})
			resp, err := http.Post(req.Callback.URL, "application/json", bytes.NewReader(body))
			if err == nil {
				resp.Body.Close()
			}
		}()
	}))
	defer engine.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	h := HTTP{URL: engine.URL, Async: true, CallbackURL: callback.URL, Pending: store}
	var wg sync.WaitGroup
	results := make([]Result, 2)
	errs := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = h.Execute(ctx, Request{ToolName: fmt.Sprintf("tool-%d", i), RequestID: "client-id"})
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, "ok", results[i].Status)
		assert.Equal(t, fmt.Sprintf("tool-%d", i), results[i].Stdout)
	}
	assert.Len(t, ids, 2)
	assert.Zero(t, store.Len())
}

func TestHTTPAsyncCancelled(t *testing.T) {
	store := NewPendingStore()
	engine := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer engine.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	h := HTTP{URL: engine.URL, Async: true, CallbackURL: "http://gateway/cb", Pending: store}
	_, err := h.Execute(ctx, Request{ToolName: "x"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, store.Len())
}

func TestHTTPAsyncRequiresCallback(t *testing.T) {
	_, err := HTTP{URL: "http://engine", Async: true}.Execute(context.Background(), Request{})
	assert.ErrorContains(t, err, "callback url")
}

func TestPendingStoreDuplicate(t *testing.T) {
	store := NewPendingStore()
	_, err := store.Register("a")
	require.NoError(t, err)
	_, err = store.Register("a")
	assert.ErrorIs(t, err, errExecutionAlreadyPending)

	store.Cancel("a")
	assert.False(t, store.Resolve("a", Result{}))
}

func TestCallbackHandlerValidation(t *testing.T) {
	store := NewPendingStore()
	_, err := store.Register("known")
	require.NoError(t, err)
	handler := &CallbackHandler{Store: store}

	cases := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{name: "wrong method", method: http.MethodGet, want: http.StatusMethodNotAllowed},
		{name: "bad json", method: http.MethodPost, body: `{`, want: http.StatusBadRequest},
		{name: "missing id", method: http.MethodPost, body: `{"status":"ok"}`, want: http.StatusBadRequest},
		{name: "request id is not a key", method: http.MethodPost, body: `{"request_id":"known","status":"ok"}`, want: http.StatusBadRequest},
		{name: "bad status", method: http.MethodPost, body: `{"execution_id":"known","status":"pending"}`, want: http.StatusBadRequest},
		{name: "unknown id", method: http.MethodPost, body: `{"execution_id":"other","status":"ok"}`, want: http.StatusNotFound},
		{name: "resolved", method: http.MethodPost, body: `{"execution_id":"known","request_id":"req-1","status":"failed","stderr":"e"}`, want: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tc.method, "/api/v1/executor/callback", strings.NewReader(tc.body)))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
