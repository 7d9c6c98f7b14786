package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/weathermood/weather"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no report is cached for a location
var ErrNotFound = errors.New("store: not found")

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// Store is a SQLite-backed weather.Cache plus the saved location list
type Store struct {
	db *sql.DB
}

// Open opens and migrates the database at path, creating parent directories
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("store: path is required")
	}

	dsn := path
	if path != MemoryPath {
		path = filepath.Clean(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: create dir: %w", err)
		}
		dsn = "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	// One connection keeps :memory: databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping sqlite: %w", err)
	}
	if err := applyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// locationKey identifies a location by coordinates rounded to about 10m
func locationKey(loc weather.Location) string {
	return strconv.FormatFloat(loc.Lat, 'f', 4, 64) + "," + strconv.FormatFloat(loc.Lon, 'f', 4, 64)
}

// SaveReport upserts r as the last good report for its location
func (s *Store) SaveReport(ctx context.Context, r weather.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("store: encode report: %w", err)
	}
	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (location_key, payload_json, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(location_key) DO UPDATE SET
		    payload_json = excluded.payload_json,
		    fetched_at = excluded.fetched_at`,
		locationKey(r.Location), string(payload), ts.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("store: save report: %w", err)
	}
	return nil
}

// LoadReport returns the cached report for loc or ErrNotFound
func (s *Store) LoadReport(ctx context.Context, loc weather.Location) (weather.Report, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload_json FROM reports WHERE location_key = ?`, locationKey(loc),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return weather.Report{}, ErrNotFound
	}
	if err != nil {
		return weather.Report{}, fmt.Errorf("store: load report: %w", err)
	}

	var r weather.Report
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return weather.Report{}, fmt.Errorf("store: decode report: %w", err)
	}
	return r, nil
}

// Locations returns saved locations, newest first
func (s *Store) Locations(ctx context.Context) ([]weather.Location, error) {
	return locations(ctx, s.db)
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func locations(ctx context.Context, q querier) ([]weather.Location, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT name, country, lat, lon FROM saved_locations ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("store: list locations: %w", err)
	}
	defer rows.Close()

	var out []weather.Location
	for rows.Next() {
		var l weather.Location
		if err := rows.Scan(&l.Name, &l.Country, &l.Lat, &l.Lon); err != nil {
			return nil, fmt.Errorf("store: scan location: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list locations: %w", err)
	}
	return out, nil
}

// AddLocation saves loc at the front of the list, ignoring duplicates and keeping
// at most weather.MaxSavedLocations; returns the resulting list
func (s *Store) AddLocation(ctx context.Context, loc weather.Location) ([]weather.Location, error) {
	return s.rewrite(ctx, func(saved []weather.Location) ([]weather.Location, bool) {
		return weather.AddLocation(saved, loc)
	})
}

// RemoveLocation deletes the location at index; out-of-range indexes are ignored
func (s *Store) RemoveLocation(ctx context.Context, index int) ([]weather.Location, error) {
	return s.rewrite(ctx, func(saved []weather.Location) ([]weather.Location, bool) {
		return weather.RemoveLocation(saved, index)
	})
}

// rewrite replaces the saved list with edit's result inside one transaction
func (s *Store) rewrite(ctx context.Context, edit func([]weather.Location) ([]weather.Location, bool)) ([]weather.Location, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	saved, err := locations(ctx, tx)
	if err != nil {
		return nil, err
	}
	next, changed := edit(saved)
	if !changed {
		return saved, nil
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM saved_locations`); err != nil {
		return nil, fmt.Errorf("store: clear locations: %w", err)
	}
	for i, l := range next {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO saved_locations (position, name, country, lat, lon) VALUES (?, ?, ?, ?, ?)`,
			i, l.Name, l.Country, l.Lat, l.Lon,
		); err != nil {
			return nil, fmt.Errorf("store: insert location: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return next, nil
}
