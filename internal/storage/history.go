/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage keeps a small per-output-directory history of translation
// runs in an embedded SQLite database, so a regenerated file can be compared
// against what the tool produced before.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	applog "stepcase/internal/log"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// HistoryDirName holds the history database under the output directory.
	HistoryDirName  = ".stepcase"
	HistoryFileName = "history.sqlite"

	// schemaVersion tracks the embedded history schema. Bump on breaking
	// schema changes and add a migration in ensureSchema.
	schemaVersion = 1
)

// Run is one recorded translation.
type Run struct {
	ID     int64
	Time   time.Time
	Input  string
	Output string
	Steps  int
}

// HistoryPath returns the full path of the history database for an output
// directory.
func HistoryPath(dir string) string {
	return filepath.Join(dir, HistoryDirName, HistoryFileName)
}

// Open opens (creating if needed) the history database for an output
// directory, enables WAL mode, and ensures the schema. Callers own closing
// the returned handle.
func Open(ctx context.Context, dir string) (*sql.DB, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "history_open").With(slog.String("dir", dir))
	if dir == "" {
		return nil, errors.New("output directory is required")
	}
	if err := os.MkdirAll(filepath.Join(dir, HistoryDirName), 0o755); err != nil {
		return nil, fmt.Errorf("create %s dir: %w", HistoryDirName, err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(HistoryPath(dir)))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, err
	}
	return db, nil
}

// language=SQL
// dialect=SQLite
const createMetaSQL = `CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`

// language=SQL
// dialect=SQLite
const createRunsSQL = `CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ts TEXT NOT NULL,
	input TEXT NOT NULL,
	output TEXT NOT NULL,
	steps INTEGER NOT NULL
)`

func ensureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createMetaSQL); err != nil {
		return fmt.Errorf("create meta: %w", err)
	}
	if _, err := db.ExecContext(ctx, createRunsSQL); err != nil {
		return fmt.Errorf("create runs: %w", err)
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO meta(key, value) VALUES ('schema_version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		fmt.Sprint(schemaVersion))
	if err != nil {
		return fmt.Errorf("set schema version: %w", err)
	}
	return nil
}

// SaveRun records a translation and prunes the history down to keep entries
// (keep <= 0 disables pruning).
func SaveRun(ctx context.Context, dir string, r Run, keep int) error {
	db, err := Open(ctx, dir)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(ctx, `INSERT INTO runs(ts, input, output, steps) VALUES (?, ?, ?, ?)`,
		r.Time.UTC().Format(time.RFC3339Nano), r.Input, r.Output, r.Steps)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	if keep > 0 {
		_, err = db.ExecContext(ctx,
			`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY ts DESC, id DESC LIMIT ?)`, keep)
		if err != nil {
			return fmt.Errorf("prune runs: %w", err)
		}
	}
	return nil
}

// ListRuns returns up to limit most recent runs, newest first.
func ListRuns(ctx context.Context, dir string, limit int) ([]Run, error) {
	db, err := Open(ctx, dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx,
		`SELECT id, ts, input, output, steps FROM runs ORDER BY ts DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var r Run
		var ts string
		if err := rows.Scan(&r.ID, &ts, &r.Input, &r.Output, &r.Steps); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			r.Time = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LatestRun returns the most recent run, or sql.ErrNoRows if the history is
// empty.
func LatestRun(ctx context.Context, dir string) (Run, error) {
	runs, err := ListRuns(ctx, dir, 1)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, sql.ErrNoRows
	}
	return runs[0], nil
}
