package logger

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/steeze-items/pkg/middleware/auth"
	"go.uber.org/zap"
)

// Middleware writes one access-log line per request.
type Middleware struct {
	access *zap.Logger

	mu        sync.RWMutex
	bodyPaths map[string]struct{}
}

func NewMiddleware(access *zap.Logger) *Middleware {
	if access == nil {
		access = zap.NewNop()
	}
	return &Middleware{access: access, bodyPaths: map[string]struct{}{}}
}

func (m *Middleware) Middleware(ca *auth.Middleware) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimd.NewWrapResponseWriter(w, r.ProtoMajor)

			// Read and RESTORE request body so downstream can consume it
			var body []byte
			if r.Body != nil {
				if b, err := io.ReadAll(r.Body); err == nil {
					body = b
				}
				r.Body.Close()
				r.Body = io.NopCloser(bytes.NewReader(body))
			}

			scheme := "http"
			if r.TLS != nil {
				scheme = "https"
			}

			start := time.Now()
			defer func() {
				u := ca.GetUser(r.Context())
				log := m.access.With(
					zap.String("dateTime", start.UTC().Format(time.RFC1123)),
					zap.String("requestId", chimd.GetReqID(r.Context())),
					zap.String("httpScheme", scheme),
					zap.Bool("isAuthenticated", u.Username != ""),
					zap.String("username", u.Username),
					zap.String("role", u.Role.Name),
					zap.String("authenticationProvider", u.AuthenticationSource.Provider),
					zap.String("httpProto", r.Proto),
					zap.String("httpMethod", r.Method),
					zap.String("remoteAddr", r.RemoteAddr),
					zap.String("uri", r.URL.Path),
					zap.Duration("lat", time.Since(start)),
					zap.Int("responseSize", ww.BytesWritten()),
					zap.Int("status", ww.Status()),
				)

				// Redact by default; allowlist small JSON bodies only.
				if m.shouldLogBody(r, body) {
					log.Info("", zap.ByteString("requestData", body))
				} else {
					log.Info("")
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
