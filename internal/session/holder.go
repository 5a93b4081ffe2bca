package session

import (
	"sync"

	"resto-notify/internal/model"
)

// Holder keeps the current session. The backend client reads the token from
// here on every request, so a re-login takes effect without rewiring.
type Holder struct {
	mu   sync.RWMutex
	sess model.Session
}

// NewHolder creates an empty Holder.
func NewHolder() *Holder {
	return &Holder{}
}

// Set replaces the current session.
func (h *Holder) Set(sess model.Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sess = sess
}

// Current returns the current session.
func (h *Holder) Current() model.Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sess
}

// Token returns the current auth token, or "" when logged out.
func (h *Holder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sess.Token
}

// Clear drops the current session.
func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sess = model.Session{}
}
