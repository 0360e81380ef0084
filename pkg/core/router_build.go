package core

import (
	"net/http"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	manifest "github.com/joeydtaylor/steeze-items/pkg/manifest"
	hmetrics "github.com/joeydtaylor/steeze-items/pkg/middleware/metrics"
	"go.uber.org/zap"
)

// BuildRouter mounts the built-in endpoints and every manifest route on
// d.Router and returns the resulting handler.
func BuildRouter(cfg manifest.Config, d BuildDeps) http.Handler {
	r := d.Router
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat("/ping"))

	if d.Auth != nil {
		r.Use(d.Auth.Middleware())
	}
	if d.LogMW != nil {
		r.Use(d.LogMW.Middleware(d.Auth))
	}
	// metrics collector that references auth state without copying it
	r.Use(hmetrics.Collect(d.Auth))

	r.NotFound(NotFound)
	r.MethodNotAllowed(NotFound)

	health := d.Health
	if health == nil {
		health = HealthHandler(time.Now(), nil)
	}
	r.Get("/health", health)
	if d.Metrics != nil {
		r.Get("/metrics", d.Metrics)
	}

	for _, rt := range cfg.Routes {
		full := cfg.FullPath(rt)
		h := wrapRoute(rt, d)
		if rt.Policy.TimeoutMS > 0 {
			h = withTimeout(h, time.Duration(rt.Policy.TimeoutMS)*time.Millisecond)
		}
		h = withGuard(h, d.Auth, rt.Guard)

		if d.LogMW != nil && rt.HasTag(manifest.TagLogBody) {
			d.LogMW.AllowBodyLogging(full)
		}

		switch rt.Method {
		case http.MethodGet:
			r.Get(full, h)
		case http.MethodPost:
			r.Post(full, h)
		case http.MethodPut:
			r.Put(full, h)
		case http.MethodDelete:
			r.Delete(full, h)
		default:
			r.Handle(rt.Method, full, h)
		}
		d.log().Debug("route mounted",
			zap.String("method", rt.Method),
			zap.String("path", full),
			zap.String("handler", rt.Handler.Name))
	}
	return r.Mux()
}
