package metrics

import (
	"net/http"
	"strings"
	"sync"

	"github.com/joeydtaylor/steeze-items/pkg/transport/httpx"
)

var (
	skipMu    sync.RWMutex
	skipPaths = map[string]struct{}{"/metrics": {}}
)

// AddMetricsSkipPaths lets callers extend the skip list (default keeps only "/metrics").
func AddMetricsSkipPaths(paths ...string) {
	skipMu.Lock()
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p != "" {
			skipPaths[p] = struct{}{}
		}
	}
	skipMu.Unlock()
}

func isSkipPath(r *http.Request) bool {
	skipMu.RLock()
	_, ok := skipPaths[r.URL.Path]
	skipMu.RUnlock()
	return ok
}

// uriLabel collapses ids by using the matched route pattern. Unmatched
// requests share one label so random 404 paths cannot grow the series set.
func uriLabel(r *http.Request) string {
	if p := httpx.RoutePattern(r); p != "" {
		return p
	}
	return "unmatched"
}
