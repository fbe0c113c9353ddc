// Package stations exposes computed uptime results over HTTP.
package stations

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gridwatt/stationuptime/core/model"
	"github.com/gridwatt/stationuptime/core/summary"
)

// Provider supplies the latest computed uptime data.
type Provider interface {
	Report() *model.UptimeReport
	Summary() summary.Summary
	Reload() error
}

// NewHandler returns the API handler. Requests must include an Authorization
// header with "Bearer <token>" when token is non-empty.
func NewHandler(p Provider, token string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/stations/uptime", authorize(token, handleUptime(p)))
	mux.Handle("/api/fleet/summary", authorize(token, handleSummary(p)))
	mux.Handle("/api/reload", authorize(token, handleReload(p)))
	return mux
}

func authorize(token string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" {
			if r.Header.Get("Authorization") != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// handleUptime serves GET /api/stations/uptime. An optional station_id query
// parameter narrows the response to one station.
func handleUptime(p Provider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		report := p.Report()
		if report == nil {
			http.Error(w, "no computation has run yet", http.StatusServiceUnavailable)
			return
		}

		if q := r.URL.Query().Get("station_id"); q != "" {
			id, err := strconv.ParseUint(q, 10, 32)
			if err != nil {
				http.Error(w, "invalid station_id", http.StatusBadRequest)
				return
			}
			for _, st := range report.Stations {
				if st.Station == model.StationID(id) {
					writeJSON(w, st)
					return
				}
			}
			http.Error(w, "unknown station", http.StatusNotFound)
			return
		}
		writeJSON(w, report)
	})
}

// handleSummary serves GET /api/fleet/summary.
func handleSummary(p Provider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if p.Report() == nil {
			http.Error(w, "no computation has run yet", http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, p.Summary())
	})
}

// handleReload serves POST /api/reload: re-parse the input file and
// recompute.
func handleReload(p Provider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := p.Reload(); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, p.Report())
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
