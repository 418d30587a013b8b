// internal/repositories/xmlfile/cities_repo.go
// City store backed by a single XML document on disk
package xmlfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"weather-xml/internal/model"
	"weather-xml/internal/util"
	"weather-xml/internal/xmlcodec"
)

// CitiesRepo reloads the whole file on every call and rewrites it whole on
// every mutation. mu is held across each read-modify-write cycle.
type CitiesRepo struct {
	path string
	mu   sync.Mutex
}

func NewCitiesRepo(path string) *CitiesRepo {
	return &CitiesRepo{path: path}
}

func (r *CitiesRepo) Path() string { return r.path }

// EnsureInitialized creates the file with an empty collection if it is absent.
func (r *CitiesRepo) EnsureInitialized(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ensure()
}

func (r *CitiesRepo) List(ctx context.Context) (model.CityCollection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *CitiesRepo) Create(ctx context.Context, name string) (model.City, error) {
	if err := ctx.Err(); err != nil {
		return model.City{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cities, err := r.load()
	if err != nil {
		return model.City{}, err
	}
	city := model.City{ID: cities.NextID(), Name: name}
	if err := r.write(append(cities, city)); err != nil {
		return model.City{}, err
	}
	return city, nil
}

func (r *CitiesRepo) Update(ctx context.Context, id int, name string) (model.City, error) {
	if err := ctx.Err(); err != nil {
		return model.City{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cities, err := r.load()
	if err != nil {
		return model.City{}, err
	}
	i := cities.IndexOf(id)
	if i < 0 {
		return model.City{}, util.NotFound("City not found")
	}
	cities[i].Name = name
	if err := r.write(cities); err != nil {
		return model.City{}, err
	}
	return cities[i], nil
}

func (r *CitiesRepo) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cities, err := r.load()
	if err != nil {
		return err
	}
	kept := make(model.CityCollection, 0, len(cities))
	for _, c := range cities {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(cities) {
		return util.NotFound("City not found")
	}
	return r.write(kept)
}

func (r *CitiesRepo) ensure() error {
	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return util.Storage("stat cities file", err)
	}
	return r.write(nil)
}

func (r *CitiesRepo) load() (model.CityCollection, error) {
	if err := r.ensure(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, util.Storage("read cities file", err)
	}
	cities, err := xmlcodec.DecodeCities(data)
	if err != nil {
		return nil, util.Storage(fmt.Sprintf("parse %s", r.path), err)
	}
	return cities, nil
}

// write replaces the file through a temp file + rename in the same directory.
func (r *CitiesRepo) write(cities model.CityCollection) error {
	doc, err := xmlcodec.EncodeCities(cities)
	if err != nil {
		return util.Internal("encode cities", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return util.Storage("create data dir", err)
	}
	tmp, err := os.CreateTemp(dir, ".cities-*.xml.tmp")
	if err != nil {
		return util.Storage("create temp file", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		cleanup()
		return util.Storage("write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return util.Storage("close temp file", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return util.Storage("chmod temp file", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		cleanup()
		return util.Storage("replace cities file", err)
	}
	return nil
}
