// internal/handlers/http/metrics_handler.go
// Metrics in plain Prometheus text format

package http

import (
	"fmt"
	"net/http"

	"weather-xml/internal/middleware"
)

func MetricsHandler(counter *middleware.RequestCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		fmt.Fprintf(w, "# HELP app_up 1 if the app is up\n# TYPE app_up gauge\napp_up 1\n")
		if counter == nil {
			return
		}
		snap := counter.Snapshot()
		fmt.Fprintf(w, "# HELP http_responses_total Responses served, by status class.\n# TYPE http_responses_total counter\n")
		for class := 1; class <= 5; class++ {
			fmt.Fprintf(w, "http_responses_total{class=\"%dxx\"} %d\n", class, snap[class])
		}
	}
}
