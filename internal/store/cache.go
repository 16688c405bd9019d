// Package store provides a SQLite-backed cache of parsed series files.
//
// The cache only saves re-reading unchanged files. It is keyed by file path,
// mtime, and size, and can be deleted at any time. Derived values such as
// projections are never written to it.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/wealthview/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const monthLayout = "2006-01-02"

// Cache provides SQLite-backed series caching.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path and applies
// any pending migrations.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all tracked files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes FROM series_files")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveSeries stores a parsed series under its source path, replacing any
// previous copy of that file.
func (c *Cache) SaveSeries(s model.Series, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)

	_, err = tx.Exec(`INSERT OR REPLACE INTO series_files
		(file_path, series_name, mtime_ns, size_bytes, parsed_at)
		VALUES (?, ?, ?, ?, ?)`,
		s.Source, s.Name, mtimeNs, sizeBytes, now,
	)
	if err != nil {
		return err
	}

	// INSERT OR REPLACE deletes the parent row, but clear explicitly in case
	// foreign keys are off for this connection.
	if _, err := tx.Exec("DELETE FROM observations WHERE file_path = ?", s.Source); err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO observations (file_path, month, value) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, o := range s.Observations {
		// Values are stored as text so decimals survive the round trip exactly.
		if _, err := stmt.Exec(s.Source, o.Date.Format(monthLayout), o.Value.String()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadAllSeries reads every cached series, ordered by file path.
func (c *Cache) LoadAllSeries() ([]model.Series, error) {
	rows, err := c.db.Query("SELECT file_path, series_name FROM series_files ORDER BY file_path")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var series []model.Series
	for rows.Next() {
		var s model.Series
		if err := rows.Scan(&s.Source, &s.Name); err != nil {
			return nil, err
		}
		series = append(series, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Batch-load observations
	obsRows, err := c.db.Query("SELECT file_path, month, value FROM observations ORDER BY file_path, month")
	if err != nil {
		return nil, err
	}
	defer func() { _ = obsRows.Close() }()

	seriesIdx := make(map[string]int, len(series))
	for i, s := range series {
		seriesIdx[s.Source] = i
	}

	for obsRows.Next() {
		var path, monthStr, valueStr string
		if err := obsRows.Scan(&path, &monthStr, &valueStr); err != nil {
			return nil, err
		}
		idx, ok := seriesIdx[path]
		if !ok {
			continue
		}
		date, err := time.Parse(monthLayout, monthStr)
		if err != nil {
			return nil, fmt.Errorf("cached month %q for %s: %w", monthStr, path, err)
		}
		value, err := decimal.NewFromString(valueStr)
		if err != nil {
			return nil, fmt.Errorf("cached value %q for %s: %w", valueStr, path, err)
		}
		series[idx].Observations = append(series[idx].Observations, model.Observation{Date: date, Value: value})
	}

	return series, obsRows.Err()
}

// DeleteFile removes a tracked file and its observations.
func (c *Cache) DeleteFile(filePath string) error {
	_, err := c.db.Exec("DELETE FROM series_files WHERE file_path = ?", filePath)
	return err
}

// SeriesCount returns the number of cached series files.
func (c *Cache) SeriesCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM series_files").Scan(&count)
	return count, err
}
