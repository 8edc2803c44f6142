package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/codex-k8s/sandbox-gateway/internal/protocol"
)

// Handler serves liveness and readiness probes.
type Handler struct {
	identity protocol.Identity
	ready    atomic.Bool
}

// New returns a health handler reporting identity.
func New(identity protocol.Identity) *Handler {
	return &Handler{identity: identity}
}

// SetReady marks the handler as ready.
func (h *Handler) SetReady() {
	h.ready.Store(true)
}

// SetNotReady marks the handler as not ready.
func (h *Handler) SetNotReady() {
	h.ready.Store(false)
}

// Health reports the static service identity. It never fails.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(h.identity)
}

// Readyz handles readiness probes.
func (h *Handler) Readyz(w http.ResponseWriter, _ *http.Request) {
	if h.ready.Load() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready"))
}
