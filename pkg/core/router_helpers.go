package core

import (
	"net/http"

	"github.com/joeydtaylor/steeze-items/pkg/codec"
)

func writeJSON(w http.ResponseWriter, payload []byte, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if len(payload) > 0 {
		_, _ = w.Write(payload)
		return
	}
	_, _ = w.Write([]byte(`{}`))
}

// writeValue encodes v and writes it with status.
func writeValue(w http.ResponseWriter, v any, status int) {
	b, err := codec.JSONStrict.Marshal(v)
	if err != nil {
		writeJSON(w, []byte(`{"success":false,"error":"Internal Server Error"}`), http.StatusInternalServerError)
		return
	}
	writeJSON(w, b, status)
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeError writes the {success:false, error} envelope used by item routes.
func writeError(w http.ResponseWriter, msg string, status int) {
	writeValue(w, errorBody{Error: msg}, status)
}

func statusIf(s, def int) int {
	if s > 0 {
		return s
	}
	return def
}

// NotFound answers unmatched paths and methods.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, []byte(`{"error":"Route not found"}`), http.StatusNotFound)
}
