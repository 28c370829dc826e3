package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AVISPL/dal-avdevices-wireless-presentation-barco-clickshare/internal/fleet"
)

// MetricsHandler exposes the Prometheus registry.
func MetricsHandler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// DashboardsHandler serves dashboard JSON from an in-memory map.
func DashboardsHandler(dashboards map[string][]byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if data, ok := dashboards[path]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
			return
		}

		http.NotFound(w, r)
	})
}

type healthResponse struct {
	Status  string                  `json:"status"`
	Devices map[string]fleet.Health `json:"devices"`
}

// HealthHandler reports daemon liveness plus the health state of every
// registered device. The daemon itself is always "ok" when it can answer;
// device trouble shows up per device, not as an overall failure.
func HealthHandler(registry *fleet.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		devices := make(map[string]fleet.Health)
		for _, summary := range registry.Summaries() {
			devices[summary.Name] = summary.Health
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Devices: devices})
	})
}
