package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/codex-k8s/sandbox-gateway/internal/correlation"
	"github.com/codex-k8s/sandbox-gateway/internal/protocol"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxResponseBytes   = 1 << 20
)

// HTTP calls a remote execution engine.
type HTTP struct {
	// URL is the engine endpoint.
	URL string
	// Method overrides the HTTP method.
	Method string
	// Headers adds HTTP headers.
	Headers map[string]string
	// Timeout is the HTTP client timeout.
	Timeout time.Duration
	// Async enables the callback-based execution flow.
	Async bool
	// CallbackURL is the gateway callback endpoint announced to the engine.
	CallbackURL string
	// Pending stores async executions.
	Pending *PendingStore
	// Client overrides the HTTP client.
	Client *http.Client
}

// Execute sends the execution request and parses the engine response.
func (h HTTP) Execute(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(h.URL) == "" {
		return Result{}, errors.New("executor url is empty")
	}
	if h.Async {
		if strings.TrimSpace(h.CallbackURL) == "" {
			return Result{}, errors.New("executor callback url is empty")
		}
		if h.Pending == nil {
			return Result{}, errors.New("executor async store is not configured")
		}
	}

	// The request id may be shared by concurrent calls; the pending slot may not.
	executionID := uuid.NewString()

	payload := protocol.ExecutorRequest{
		ExecutionID: executionID,
		RequestID:   req.RequestID,
		ToolName:    req.ToolName,
		Arguments:   req.Arguments,
	}
	if h.Async {
		payload.Callback = &protocol.ExecutorCallback{URL: h.CallbackURL}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode request: %w", err)
	}

	method := strings.ToUpper(strings.TrimSpace(h.Method))
	if method == "" {
		method = http.MethodPost
	}
	request, err := http.NewRequestWithContext(ctx, method, h.URL, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set(correlation.Header, req.RequestID)
	for key, value := range h.Headers {
		request.Header.Set(key, value)
	}

	var pendingCh <-chan Result
	if h.Async {
		ch, err := h.Pending.Register(executionID)
		if err != nil {
			return Result{}, err
		}
		pendingCh = ch
		defer h.Pending.Cancel(executionID)
	}

	resp, err := h.client().Do(request)
	if err != nil {
		return Result{}, fmt.Errorf("executor request failed: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	data = bytes.TrimSpace(data)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("executor status %d: %s", resp.StatusCode, data)
	}
	if h.Async && resp.StatusCode == http.StatusAccepted && len(data) == 0 {
		return awaitResult(ctx, pendingCh)
	}

	var parsed protocol.ExecutorResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Result{}, fmt.Errorf("invalid executor response: %w", err)
	}
	status := strings.ToLower(strings.TrimSpace(parsed.Status))
	switch status {
	case protocol.StatusOK, protocol.StatusFailed:
		return Result{Status: status, Stdout: parsed.Stdout, Stderr: parsed.Stderr, Value: parsed.Result}, nil
	case protocol.StatusPending:
		if h.Async {
			return awaitResult(ctx, pendingCh)
		}
		return Result{}, errors.New("executor returned pending status")
	default:
		return Result{}, fmt.Errorf("unknown executor status: %q", parsed.Status)
	}
}

func (h HTTP) client() *http.Client {
	if h.Client != nil {
		return h.Client
	}
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

func awaitResult(ctx context.Context, pendingCh <-chan Result) (Result, error) {
	select {
	case result, ok := <-pendingCh:
		if !ok {
			return Result{}, errors.New("execution callback channel closed")
		}
		return result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
