// seehuhn.de/go/drawtools - drawing tools for interactive price charts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package store keeps drawing documents in a SQLite database, one
// document per chart.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by [Store.Load] if no document is stored for
// the chart.
var ErrNotFound = errors.New("no drawings stored for chart")

// Store persists serialised drawing documents.
type Store struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logrus.Entry
}

// Entry describes one stored document.
type Entry struct {
	ChartID string
	Updated time.Time
	Size    int
}

// Open opens (or creates) the SQLite database at path and runs the
// migrations.  If log is nil, the standard logger is used.
func Open(path string, log *logrus.Entry) (*Store, error) {
	if log == nil {
		log = logrus.StandardLogger().WithField("component", "store")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.WithField("path", path).Debug("drawing store opened")
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS drawings (
			chart_id   TEXT PRIMARY KEY,
			updated_at INTEGER NOT NULL,
			document   BLOB NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_drawings_updated ON drawings(updated_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:32], err)
		}
	}
	return nil
}

// Save stores the document for chartID, replacing any previous one.
func (s *Store) Save(chartID string, doc []byte) error {
	if chartID == "" {
		return errors.New("empty chart id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO drawings (chart_id, updated_at, document)
		VALUES (?,?,?)
		ON CONFLICT(chart_id) DO UPDATE SET
			updated_at = excluded.updated_at,
			document   = excluded.document`,
		chartID, time.Now().UnixMilli(), doc,
	)
	if err != nil {
		return fmt.Errorf("save %q: %w", chartID, err)
	}
	s.log.WithFields(logrus.Fields{"chart_id": chartID, "bytes": len(doc)}).Debug("drawings saved")
	return nil
}

// Load returns the document stored for chartID.
func (s *Store) Load(chartID string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc []byte
	err := s.db.QueryRow(`SELECT document FROM drawings WHERE chart_id = ?`, chartID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, chartID)
	} else if err != nil {
		return nil, fmt.Errorf("load %q: %w", chartID, err)
	}
	return doc, nil
}

// Charts lists the stored documents, most recently updated first.
func (s *Store) Charts() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT chart_id, updated_at, length(document)
		FROM drawings ORDER BY updated_at DESC, chart_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Entry
	for rows.Next() {
		var e Entry
		var ms int64
		if err := rows.Scan(&e.ChartID, &ms, &e.Size); err != nil {
			return nil, err
		}
		e.Updated = time.UnixMilli(ms)
		res = append(res, e)
	}
	return res, rows.Err()
}

// Delete removes the document for chartID.  Deleting a missing chart is
// not an error.
func (s *Store) Delete(chartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM drawings WHERE chart_id = ?`, chartID)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
