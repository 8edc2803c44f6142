package executor

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/codex-k8s/sandbox-gateway/internal/protocol"
)

type pendingExecution struct {
	ch chan Result
}

// PendingStore keeps async execution results keyed by execution id.
type PendingStore struct {
	mu      sync.Mutex
	pending map[string]*pendingExecution
}

// NewPendingStore creates a new async execution store.
func NewPendingStore() *PendingStore {
	return &PendingStore{pending: make(map[string]*pendingExecution)}
}

// Register allocates a pending slot for id.
func (s *PendingStore) Register(id string) (<-chan Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pending[id]; exists {
		return nil, errExecutionAlreadyPending
	}
	ch := make(chan Result, 1)
	s.pending[id] = &pendingExecution{ch: ch}
	return ch, nil
}

// Resolve delivers the result for id. It reports false when nothing is pending.
func (s *PendingStore) Resolve(id string, result Result) bool {
	entry, ok := s.pop(id)
	if !ok {
		return false
	}
	entry.ch <- result
	close(entry.ch)
	return true
}

// Cancel removes a pending execution without a result.
func (s *PendingStore) Cancel(id string) {
	entry, ok := s.pop(id)
	if ok {
		close(entry.ch)
	}
}

func (s *PendingStore) pop(id string) (*pendingExecution, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	return entry, ok
}

// Len returns the number of pending executions.
func (s *PendingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// CallbackHandler accepts async results posted by a remote execution engine.
type CallbackHandler struct {
	Store  *PendingStore
	Logger *slog.Logger
}

// ServeHTTP processes callbacks from async executors.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.Store == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	var payload protocol.ExecutorCallbackPayload
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxResponseBytes))
	if err := decoder.Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	id := strings.TrimSpace(payload.ExecutionID)
	status := strings.ToLower(strings.TrimSpace(payload.Status))
	if id == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	switch status {
	case protocol.StatusOK, protocol.StatusFailed:
	default:
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result := Result{Status: status, Stdout: payload.Stdout, Stderr: payload.Stderr, Value: payload.Result}
	if !h.Store.Resolve(id, result) {
		if h.Logger != nil {
			h.Logger.Warn("executor callback not pending", "execution_id", id, "request_id", payload.RequestID)
		}
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

var errExecutionAlreadyPending = errors.New("execution already pending")
