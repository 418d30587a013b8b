// internal/app/routes.go
package app

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"

	"weather-xml/internal/config"
	hh "weather-xml/internal/handlers/http"
	"weather-xml/internal/middleware"
	"weather-xml/internal/services"
	"weather-xml/internal/util"
)

type RegisterDeps struct {
	Cities  *services.CityService
	Weather hh.WeatherFetcher
	Metrics *middleware.RequestCounter
	Clock   util.Clock
}

// RegisterRoutes mounts the page, static, weather, cities and ops routes.
func RegisterRoutes(r *mux.Router, cfg *config.Config, deps RegisterDeps) {
	// CORS answers OPTIONS itself; routes list the method so mux matches them.
	r.Use(
		middleware.RequestID,
		middleware.AccessLog(deps.Metrics),
		middleware.Recover,
		middleware.CORS,
		chimw.RealIP,
		chimw.RequestSize(cfg.MaxBodyBytes),
	)
	r.NotFoundHandler = http.HandlerFunc(hh.NotFoundHandler)
	r.MethodNotAllowedHandler = http.HandlerFunc(hh.MethodNotAllowedHandler)

	// --- page + assets ---
	r.HandleFunc("/", hh.IndexHandler(cfg.TemplatesDir)).Methods(http.MethodGet, http.MethodHead)
	r.PathPrefix("/static/").Handler(hh.StaticHandler(cfg.StaticDir)).Methods(http.MethodGet, http.MethodHead)

	// --- weather proxy ---
	wh := &hh.WeatherHandler{Weather: deps.Weather}
	r.HandleFunc("/weather/{city_name}", wh.Get).Methods(http.MethodGet, http.MethodOptions)

	// --- saved cities; writes are guarded only when ADMIN_JWT_SECRET is set ---
	ch := &hh.CitiesHandler{Cities: deps.Cities}
	guard := middleware.AdminJWTAuth(cfg.Admin.JWTSecret)
	r.HandleFunc("/cities", ch.List).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/cities", guard(http.HandlerFunc(ch.Create))).Methods(http.MethodPost)
	r.Handle("/cities/{id}", guard(http.HandlerFunc(ch.Update))).Methods(http.MethodPut, http.MethodOptions)
	r.Handle("/cities/{id}", guard(http.HandlerFunc(ch.Delete))).Methods(http.MethodDelete)

	// --- ops ---
	r.HandleFunc("/healthz", hh.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/readyz", hh.ReadyHandler(deps.Cities.Ready)).Methods(http.MethodGet)
	r.HandleFunc("/metrics", hh.MetricsHandler(deps.Metrics)).Methods(http.MethodGet)
	r.Handle("/login", &hh.LoginHandler{
		User:      cfg.Admin.User,
		PassHash:  cfg.Admin.PassHash,
		JWTSecret: cfg.Admin.JWTSecret,
		TTL:       cfg.Admin.TokenTTL,
		Clock:     deps.Clock,
	}).Methods(http.MethodPost, http.MethodOptions)
}
