// Package kiosk exposes the polled savings value over HTTP: a JSON value
// endpoint for integrations and an embedded big-digit page for wall
// displays. Handlers only ever read holder snapshots; they never trigger a
// fetch cycle themselves.
package kiosk

import (
	_ "embed"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/blue-edge/carbonclock/internal/poll"
)

//go:embed index.html
var indexHTML []byte

type valueResponse struct {
	Value     float64   `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
	Stale     bool      `json:"stale"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the kiosk HTTP surface over the given holder.
func NewRouter(holder *poll.Holder) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/value", func(w http.ResponseWriter, req *http.Request) {
		snap, ready := holder.Snapshot()
		if !ready {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "value not ready yet"})
			return
		}
		writeJSON(w, http.StatusOK, valueResponse{
			Value:     math.Round(snap.Value*1000) / 1000,
			UpdatedAt: snap.UpdatedAt,
			Stale:     snap.Stale,
		})
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(indexHTML)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
