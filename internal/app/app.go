// internal/app/app.go
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/mux"

	"weather-xml/internal/config"
	hh "weather-xml/internal/handlers/http"
	"weather-xml/internal/middleware"
	mysqlrepo "weather-xml/internal/repositories/mysql"
	"weather-xml/internal/repositories/xmlfile"
	"weather-xml/internal/services"
	"weather-xml/internal/util"
	"weather-xml/pkg/db"
	"weather-xml/pkg/weather"
)

// App holds the main router and the resources it owns.
type App struct {
	Router  *mux.Router
	Cities  *services.CityService
	Metrics *middleware.RequestCounter

	db *sql.DB
}

// Deps are the collaborators New builds from config; tests inject their own.
type Deps struct {
	Repo    services.CityRepo
	Weather hh.WeatherFetcher
	Clock   util.Clock
}

// New builds the store backend and weather client from cfg, then the router.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	var (
		repo services.CityRepo
		conn *sql.DB
	)

	switch cfg.Store.Backend {
	case config.BackendMySQL:
		var err error
		conn, err = db.NewMySQL(cfg.Store.DSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		if err := db.WaitReady(ctx, conn, 20, 3*time.Second); err != nil {
			conn.Close()
			return nil, err
		}
		repo = &mysqlrepo.CitiesRepo{DB: conn}
		log.Printf("[INFO] city store: mysql")
	default:
		repo = xmlfile.NewCitiesRepo(cfg.Store.CitiesFile)
		log.Printf("[INFO] city store: %s", cfg.Store.CitiesFile)
	}

	if err := repo.EnsureInitialized(ctx); err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("init city store: %w", err)
	}

	a := NewWithDeps(cfg, Deps{
		Repo:    repo,
		Weather: weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.Timeout),
		Clock:   util.RealClock{},
	})
	a.db = conn
	return a, nil
}

// NewWithDeps wires routes and middleware around already built collaborators.
func NewWithDeps(cfg *config.Config, deps Deps) *App {
	r := mux.NewRouter()
	if deps.Clock == nil {
		deps.Clock = util.RealClock{}
	}

	a := &App{
		Router:  r,
		Cities:  services.NewCityService(deps.Repo),
		Metrics: &middleware.RequestCounter{},
	}

	RegisterRoutes(r, cfg, RegisterDeps{
		Cities:  a.Cities,
		Weather: deps.Weather,
		Metrics: a.Metrics,
		Clock:   deps.Clock,
	})
	return a
}

// Close releases the database pool when the mysql backend is in use.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
