// pkg/transport/httpx/router.go
package httpx

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router is the minimal HTTP router contract the service depends on.
// transport/httpx.NewChi implements this.
type Router interface {
	Handle(method, path string, h http.Handler)
	Get(path string, h http.Handler)
	Post(path string, h http.Handler)
	Put(path string, h http.Handler)
	Delete(path string, h http.Handler)
	NotFound(h http.HandlerFunc)
	MethodNotAllowed(h http.HandlerFunc)
	Mux() http.Handler
	Use(mw ...func(http.Handler) http.Handler)
}

// chiRouter is our default Router backed by github.com/go-chi/chi.
type chiRouter struct{ r *chi.Mux }

// NewChi returns a Chi-backed Router.
func NewChi() Router { return &chiRouter{r: chi.NewRouter()} }

func (c *chiRouter) Handle(method, path string, h http.Handler) { c.r.Method(method, path, h) }
func (c *chiRouter) Get(path string, h http.Handler)            { c.r.Method(http.MethodGet, path, h) }
func (c *chiRouter) Post(path string, h http.Handler)           { c.r.Method(http.MethodPost, path, h) }
func (c *chiRouter) Put(path string, h http.Handler)            { c.r.Method(http.MethodPut, path, h) }
func (c *chiRouter) Delete(path string, h http.Handler)         { c.r.Method(http.MethodDelete, path, h) }
func (c *chiRouter) NotFound(h http.HandlerFunc)                { c.r.NotFound(h) }
func (c *chiRouter) MethodNotAllowed(h http.HandlerFunc)        { c.r.MethodNotAllowed(h) }
func (c *chiRouter) Mux() http.Handler                          { return c.r }
func (c *chiRouter) Use(mw ...func(http.Handler) http.Handler)  { c.r.Use(mw...) }

// PathParam returns the named URL parameter captured by the router for the
// request that owns ctx, or "" when there is none.
func PathParam(ctx context.Context, name string) string {
	return chi.URLParamFromCtx(ctx, name)
}

// RoutePattern returns the matched route pattern (e.g. "/api/v1/items/{id}")
// once routing has completed, or "" if nothing matched.
func RoutePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}
