// internal/handlers/http/health_handler.go
// Health and readiness checks

package http

import (
	"context"
	"log"
	"net/http"

	"weather-xml/internal/xmlcodec"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := xmlcodec.EncodeFields("health", xmlcodec.Field{Name: "status", Value: "ok"})
	writeDoc(w, r, http.StatusOK, doc, err)
}

// ReadyHandler answers 503 while check fails.
func ReadyHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := check(r.Context()); err != nil {
			log.Printf("[WARN] readiness check failed: %v", err)
			doc, encErr := xmlcodec.EncodeFields("health", xmlcodec.Field{Name: "status", Value: "unavailable"})
			writeDoc(w, r, http.StatusServiceUnavailable, doc, encErr)
			return
		}
		HealthHandler(w, r)
	}
}
