// internal/repositories/mysql/cities_repo.go
// City store backed by a MySQL table, same contract as the XML file store
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"weather-xml/internal/model"
	"weather-xml/internal/util"
)

const (
	createCitiesTableSQL = `CREATE TABLE IF NOT EXISTS cities (
	id   INT NOT NULL PRIMARY KEY,
	name VARCHAR(255) NOT NULL
)`
	listCitiesSQL = `SELECT id, name FROM cities ORDER BY id`
	nextCityIDSQL = `SELECT COALESCE(MAX(id), 0) + 1 FROM cities FOR UPDATE`
	insertCitySQL = `INSERT INTO cities (id, name) VALUES (?, ?)`
	lockCitySQL   = `SELECT id FROM cities WHERE id = ? FOR UPDATE`
	updateCitySQL = `UPDATE cities SET name = ? WHERE id = ?`
	deleteCitySQL = `DELETE FROM cities WHERE id = ?`
)

type CitiesRepo struct{ DB *sql.DB }

func (r *CitiesRepo) EnsureInitialized(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, createCitiesTableSQL); err != nil {
		return util.Storage("create cities table", err)
	}
	return nil
}

func (r *CitiesRepo) List(ctx context.Context) (model.CityCollection, error) {
	rows, err := r.DB.QueryContext(ctx, listCitiesSQL)
	if err != nil {
		return nil, util.Storage("list cities", err)
	}
	defer rows.Close()

	out := model.CityCollection{}
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, util.Storage("scan city", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, util.Storage("list cities", err)
	}
	return out, nil
}

// Create computes max(id)+1 under a row lock so concurrent creates serialize.
func (r *CitiesRepo) Create(ctx context.Context, name string) (model.City, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.City{}, util.Storage("begin tx", err)
	}
	defer tx.Rollback()

	var id int
	if err := tx.QueryRowContext(ctx, nextCityIDSQL).Scan(&id); err != nil {
		return model.City{}, util.Storage("next city id", err)
	}
	if _, err := tx.ExecContext(ctx, insertCitySQL, id, name); err != nil {
		return model.City{}, util.Storage(fmt.Sprintf("insert city %d", id), err)
	}
	if err := tx.Commit(); err != nil {
		return model.City{}, util.Storage("commit create", err)
	}
	return model.City{ID: id, Name: name}, nil
}

// Update checks existence first: MySQL reports zero affected rows when the
// name does not change.
func (r *CitiesRepo) Update(ctx context.Context, id int, name string) (model.City, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.City{}, util.Storage("begin tx", err)
	}
	defer tx.Rollback()

	var found int
	err = tx.QueryRowContext(ctx, lockCitySQL, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return model.City{}, util.NotFound("City not found")
	}
	if err != nil {
		return model.City{}, util.Storage(fmt.Sprintf("lookup city %d", id), err)
	}
	if _, err := tx.ExecContext(ctx, updateCitySQL, name, id); err != nil {
		return model.City{}, util.Storage(fmt.Sprintf("update city %d", id), err)
	}
	if err := tx.Commit(); err != nil {
		return model.City{}, util.Storage("commit update", err)
	}
	return model.City{ID: id, Name: name}, nil
}

func (r *CitiesRepo) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, deleteCitySQL, id)
	if err != nil {
		return util.Storage(fmt.Sprintf("delete city %d", id), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return util.Storage("rows affected", err)
	}
	if n == 0 {
		return util.NotFound("City not found")
	}
	return nil
}
