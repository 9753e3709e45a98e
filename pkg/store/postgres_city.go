package store

import (
	"context"
	"database/sql"
	"errors"

	// Packages
	pq "github.com/lib/pq"
	weatherdeck "github.com/mutablelogic/go-weatherdeck"
	schema "github.com/mutablelogic/go-weatherdeck/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// PostgresCityStore is a CityStore backed by a PostgreSQL table.
type PostgresCityStore struct {
	db *sql.DB
}

var _ schema.CityStore = (*PostgresCityStore)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	pqUniqueViolation = "23505"
)

const (
	pgCreateTable = `
		CREATE TABLE IF NOT EXISTS cities (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL,
			name       TEXT NOT NULL,
			state      TEXT NOT NULL DEFAULT '',
			country    TEXT NOT NULL,
			lat        DOUBLE PRECISION NOT NULL,
			lon        DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	pgCreateIndex = `
		CREATE UNIQUE INDEX IF NOT EXISTS cities_user_place
		ON cities (user_id, LOWER(name), LOWER(state), LOWER(country))`
	pgInsert = `
		INSERT INTO cities (id, user_id, name, state, country, lat, lon, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	pgSelect = `
		SELECT id, user_id, name, state, country, lat, lon, created_at
		FROM cities`
	pgList   = pgSelect + ` WHERE user_id = $1 ORDER BY created_at, id`
	pgGet    = pgSelect + ` WHERE user_id = $1 AND id = $2`
	pgDelete = `
		DELETE FROM cities WHERE user_id = $1 AND id = $2
		RETURNING id, user_id, name, state, country, lat, lon, created_at`
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewPostgresCityStore connects to the database and creates the cities
// table when it does not exist.
func NewPostgresCityStore(ctx context.Context, databaseURL string) (*PostgresCityStore, error) {
	if databaseURL == "" {
		return nil, weatherdeck.ErrBadParameter.With("database url is required")
	}
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, weatherdeck.ErrInternalServerError.Withf("open database: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, weatherdeck.ErrInternalServerError.Withf("ping database: %v", err)
	}
	for _, stmt := range []string{pgCreateTable, pgCreateIndex} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, weatherdeck.ErrInternalServerError.Withf("create schema: %v", err)
		}
	}
	return &PostgresCityStore{db: db}, nil
}

// Close the database connection
func (p *PostgresCityStore) Close() error {
	return p.db.Close()
}

// Truncate removes all cities for all users
func (p *PostgresCityStore) Truncate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, `TRUNCATE cities`); err != nil {
		return weatherdeck.ErrInternalServerError.Withf("truncate: %v", err)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// CreateCity saves a new city for the user.
func (p *PostgresCityStore) CreateCity(ctx context.Context, user string, meta schema.CityMeta) (*schema.City, error) {
	city, err := newCity(user, meta)
	if err != nil {
		return nil, err
	}
	if _, err := p.db.ExecContext(ctx, pgInsert, city.ID, city.User, city.Name, city.State, city.Country, city.Lat, city.Lon, city.Created); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, weatherdeck.ErrConflict.Withf("%s (%s) already saved", schema.Label(city.Name, city.State), city.Country)
		}
		return nil, weatherdeck.ErrInternalServerError.Withf("insert city: %v", err)
	}
	return city, nil
}

// ListCities returns the user's cities, oldest first.
func (p *PostgresCityStore) ListCities(ctx context.Context, user string) ([]*schema.City, error) {
	rows, err := p.db.QueryContext(ctx, pgList, user)
	if err != nil {
		return nil, weatherdeck.ErrInternalServerError.Withf("list cities: %v", err)
	}
	defer rows.Close()

	result := make([]*schema.City, 0)
	for rows.Next() {
		city, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, city)
	}
	if err := rows.Err(); err != nil {
		return nil, weatherdeck.ErrInternalServerError.Withf("list cities: %v", err)
	}
	return result, nil
}

// GetCity returns one of the user's cities.
func (p *PostgresCityStore) GetCity(ctx context.Context, user, id string) (*schema.City, error) {
	city, err := scanCity(p.db.QueryRowContext(ctx, pgGet, user, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, weatherdeck.ErrNotFound.Withf("city %q", id)
	}
	return city, err
}

// DeleteCity removes one of the user's cities and returns it.
func (p *PostgresCityStore) DeleteCity(ctx context.Context, user, id string) (*schema.City, error) {
	city, err := scanCity(p.db.QueryRowContext(ctx, pgDelete, user, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, weatherdeck.ErrNotFound.Withf("city %q", id)
	}
	return city, err
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

type scanner interface {
	Scan(dest ...any) error
}

// scanCity reads one row. sql.ErrNoRows is returned unwrapped.
func scanCity(row scanner) (*schema.City, error) {
	city := new(schema.City)
	if err := row.Scan(&city.ID, &city.User, &city.Name, &city.State, &city.Country, &city.Lat, &city.Lon, &city.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, weatherdeck.ErrInternalServerError.Withf("scan city: %v", err)
	}
	city.Created = city.Created.UTC()
	return city, nil
}
