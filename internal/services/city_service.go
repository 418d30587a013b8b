// internal/services/city_service.go
// City CRUD over whichever store backend is configured

package services

import (
	"context"
	"log"
	"strings"

	"weather-xml/internal/model"
	"weather-xml/internal/util"
)

// CityRepo is implemented by xmlfile.CitiesRepo and mysql.CitiesRepo.
type CityRepo interface {
	EnsureInitialized(ctx context.Context) error
	List(ctx context.Context) (model.CityCollection, error)
	Create(ctx context.Context, name string) (model.City, error)
	Update(ctx context.Context, id int, name string) (model.City, error)
	Delete(ctx context.Context, id int) error
}

type CityService struct {
	repo CityRepo
}

func NewCityService(repo CityRepo) *CityService {
	return &CityService{repo: repo}
}

// Ready reports whether the backing store can be initialized.
func (s *CityService) Ready(ctx context.Context) error {
	return s.repo.EnsureInitialized(ctx)
}

func (s *CityService) List(ctx context.Context) (model.CityCollection, error) {
	return s.repo.List(ctx)
}

func (s *CityService) Create(ctx context.Context, name string) (model.City, error) {
	name, err := cleanName(name)
	if err != nil {
		return model.City{}, err
	}
	c, err := s.repo.Create(ctx, name)
	if err != nil {
		return model.City{}, err
	}
	log.Printf("[INFO] city %d created (%s)", c.ID, c.Name)
	return c, nil
}

func (s *CityService) Update(ctx context.Context, id int, name string) (model.City, error) {
	name, err := cleanName(name)
	if err != nil {
		return model.City{}, err
	}
	return s.repo.Update(ctx, id, name)
}

func (s *CityService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[INFO] city %d deleted", id)
	return nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", util.BadInput("Invalid XML payload: Missing name element", nil)
	}
	return name, nil
}
