package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/havenapp/haven/internal/models"
)

// SQLiteDB stores preferences as single-row tables; saves replace the
// previous value.
type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS user_location (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			city TEXT,
			state TEXT,
			country TEXT,
			address TEXT,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS user_preferences (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			payload TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) SaveLocation(ctx context.Context, loc models.Location) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_location (id, latitude, longitude, city, state, country, address, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			city = excluded.city,
			state = excluded.state,
			country = excluded.country,
			address = excluded.address,
			updated_at = excluded.updated_at`,
		loc.Latitude, loc.Longitude, loc.City, loc.State, loc.Country, loc.Address, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error saving location: %w", err)
	}
	return nil
}

func (s *SQLiteDB) LoadLocation(ctx context.Context) (*models.Location, error) {
	var loc models.Location
	err := s.db.QueryRowContext(ctx, `
		SELECT latitude, longitude, city, state, country, address
		FROM user_location WHERE id = 1`).
		Scan(&loc.Latitude, &loc.Longitude, &loc.City, &loc.State, &loc.Country, &loc.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading location: %w", err)
	}
	return &loc, nil
}

func (s *SQLiteDB) SavePreferences(ctx context.Context, prefs models.UserPreferences) error {
	payload, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("error encoding preferences: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_preferences (id, payload, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error saving preferences: %w", err)
	}
	return nil
}

func (s *SQLiteDB) LoadPreferences(ctx context.Context) (*models.UserPreferences, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM user_preferences WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading preferences: %w", err)
	}

	var prefs models.UserPreferences
	if err := json.Unmarshal([]byte(payload), &prefs); err != nil {
		return nil, fmt.Errorf("error decoding preferences: %w", err)
	}
	return &prefs, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
