package logger

import (
	"net/http"
	"strings"

	"github.com/joeydtaylor/steeze-items/pkg/transport/httpx"
)

// AllowBodyLogging extends the allowlist. Entries are route patterns
// ("/api/v1/items/{id}") or literal paths.
func (m *Middleware) AllowBodyLogging(patterns ...string) {
	m.mu.Lock()
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p != "" {
			m.bodyPaths[p] = struct{}{}
		}
	}
	m.mu.Unlock()
}

// Only log small JSON request bodies on allowlisted routes.
func (m *Middleware) shouldLogBody(r *http.Request, body []byte) bool {
	if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
		return false
	}
	if len(body) == 0 || len(body) > 1<<16 { // 64 KiB cap
		return false
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p := httpx.RoutePattern(r); p != "" {
		if _, ok := m.bodyPaths[p]; ok {
			return true
		}
	}
	_, ok := m.bodyPaths[r.URL.Path]
	return ok
}
