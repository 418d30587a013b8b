// internal/handlers/http/weather_handler.go
package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"weather-xml/internal/middleware"
	"weather-xml/internal/model"
	"weather-xml/internal/xmlcodec"
	"weather-xml/pkg/weather"
)

type WeatherFetcher interface {
	Fetch(ctx context.Context, city string) (model.WeatherReading, error)
}

type WeatherHandler struct {
	Weather WeatherFetcher
}

// Get proxies GET /weather/{city_name} to the upstream and answers in XML.
// Every upstream failure is a 502 carrying the upstream status or a fixed
// reason; transport causes are only logged.
func (h *WeatherHandler) Get(w http.ResponseWriter, r *http.Request) {
	city := mux.Vars(r)["city_name"]

	reading, err := h.Weather.Fetch(r.Context(), city)
	if err != nil {
		var ue *weather.UpstreamError
		if errors.As(err, &ue) {
			rid := middleware.RequestIDFrom(r.Context())
			if ue.Err != nil {
				log.Printf("[WARN] weather %q rid=%s: %v: %v", city, rid, ue, ue.Err)
			} else {
				log.Printf("[WARN] weather %q rid=%s: %v", city, rid, ue)
			}
			writeErrorMessage(w, http.StatusBadGateway, ue.Error())
			return
		}
		writeError(w, r, err)
		return
	}
	doc, err := xmlcodec.EncodeWeather(reading)
	writeDoc(w, r, http.StatusOK, doc, err)
}
