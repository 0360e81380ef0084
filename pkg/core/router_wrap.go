package core

import (
	"io"
	"net/http"

	chimd "github.com/go-chi/chi/v5/middleware"
	manifest "github.com/joeydtaylor/steeze-items/pkg/manifest"
	"go.uber.org/zap"
)

func wrapRoute(rt manifest.Route, d BuildDeps) http.HandlerFunc {
	switch rt.Handler.Type {
	case manifest.HandlerInproc:
		h, ok := d.Handlers.Lookup(rt.Handler.Name)
		if !ok {
			d.log().Warn("route references unregistered handler",
				zap.String("method", rt.Method),
				zap.String("path", rt.Path),
				zap.String("handler", rt.Handler.Name))
			return func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, []byte(`{"error":"handler not found"}`), http.StatusInternalServerError)
			}
		}
		return func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			if err != nil {
				writeError(w, "Invalid request body", http.StatusBadRequest)
				return
			}
			out, status, err := h(r.Context(), body)
			if err != nil {
				d.log().Error("handler failed",
					zap.String("handler", rt.Handler.Name),
					zap.String("requestId", chimd.GetReqID(r.Context())),
					zap.Error(err))
				writeError(w, "Internal Server Error", statusIf(status, http.StatusInternalServerError))
				return
			}
			writeJSON(w, out, statusIf(status, http.StatusOK))
		}

	default:
		return func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, []byte(`{"error":"unknown handler type"}`), http.StatusInternalServerError)
		}
	}
}
