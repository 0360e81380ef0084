// pkg/core/handlers.go
package core

import (
	"context"
	"sort"
	"sync"
)

// InprocHandler is the signature for in-process handlers.
// 'in' is the raw request body, 'status' is the HTTP status code to send.
// A non-nil err with status 0 is answered as 500.
type InprocHandler func(ctx context.Context, in []byte) (out []byte, status int, err error)

// Handlers is the set of in-process handlers routes can reference by name.
type Handlers struct {
	mu sync.RWMutex
	m  map[string]InprocHandler
}

func NewHandlers() *Handlers { return &Handlers{m: map[string]InprocHandler{}} }

// Register makes a handler available under a name referenced in manifest.toml.
// Registering the same name twice replaces the earlier handler.
func (hs *Handlers) Register(name string, h InprocHandler) {
	hs.mu.Lock()
	hs.m[name] = h
	hs.mu.Unlock()
}

// Lookup retrieves a registered handler by name.
func (hs *Handlers) Lookup(name string) (InprocHandler, bool) {
	if hs == nil {
		return nil, false
	}
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	h, ok := hs.m[name]
	return h, ok
}

// Names lists registered handler names, sorted.
func (hs *Handlers) Names() []string {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	out := make([]string, 0, len(hs.m))
	for n := range hs.m {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
