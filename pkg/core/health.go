package core

import (
	"net/http"
	"time"
)

// isoMillis matches the timestamp shape existing health probes parse.
const isoMillis = "2006-01-02T15:04:05.000Z"

type healthBody struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// HealthHandler reports liveness and seconds since started. now defaults to
// time.Now.
func HealthHandler(started time.Time, now func() time.Time) http.HandlerFunc {
	if now == nil {
		now = time.Now
	}
	return func(w http.ResponseWriter, _ *http.Request) {
		t := now()
		writeValue(w, healthBody{
			Status:    "healthy",
			Timestamp: t.UTC().Format(isoMillis),
			Uptime:    t.Sub(started).Seconds(),
		}, http.StatusOK)
	}
}
