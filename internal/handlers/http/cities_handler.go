// internal/handlers/http/cities_handler.go
// CRUD over the saved city list, XML in and XML out

package http

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"weather-xml/internal/model"
	"weather-xml/internal/util"
	"weather-xml/internal/xmlcodec"
)

type CityService interface {
	List(ctx context.Context) (model.CityCollection, error)
	Create(ctx context.Context, name string) (model.City, error)
	Update(ctx context.Context, id int, name string) (model.City, error)
	Delete(ctx context.Context, id int) error
}

type CitiesHandler struct {
	Cities CityService
}

func (h *CitiesHandler) List(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Cities.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := xmlcodec.EncodeCities(cities)
	writeDoc(w, r, http.StatusOK, doc, err)
}

func (h *CitiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	name, err := readCityName(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	city, err := h.Cities.Create(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := xmlcodec.EncodeResult("City added", xmlcodec.Field{Name: "id", Value: strconv.Itoa(city.ID)})
	writeDoc(w, r, http.StatusCreated, doc, err)
}

func (h *CitiesHandler) Update(w http.ResponseWriter, r *http.Request) {
	name, err := readCityName(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, ok := cityID(r)
	if !ok {
		writeError(w, r, util.NotFound("City not found"))
		return
	}
	if _, err := h.Cities.Update(r.Context(), id, name); err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := xmlcodec.EncodeResult("City updated")
	writeDoc(w, r, http.StatusOK, doc, err)
}

func (h *CitiesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := cityID(r)
	if !ok {
		writeError(w, r, util.NotFound("City not found"))
		return
	}
	if err := h.Cities.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	doc, err := xmlcodec.EncodeResult("City deleted")
	writeDoc(w, r, http.StatusOK, doc, err)
}

func readCityName(r *http.Request) (string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", util.BadInput("Invalid XML payload: "+err.Error(), err)
	}
	return xmlcodec.DecodeCityPayload(body)
}

// cityID parses the {id} path segment. Anything that is not a positive
// integer cannot name a stored city.
// cityID accepts only the canonical decimal form, so "01" and "+1" miss.
func cityID(r *http.Request) (int, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 || strconv.Itoa(id) != raw {
		return 0, false
	}
	return id, true
}
