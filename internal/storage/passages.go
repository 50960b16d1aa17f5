package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrNoPassages is returned when the database holds no corpus.
var ErrNoPassages = errors.New("no passages stored")

// Meta describes the stored corpus.
type Meta struct {
	Source     string
	Passages   int
	ImportedAt time.Time
}

// ReplacePassages swaps the stored corpus for passages in one transaction.
// Blank passages are skipped.
func (db *DB) ReplacePassages(ctx context.Context, passages []string, source string) (int, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM passages"); err != nil {
		return 0, fmt.Errorf("failed to clear passages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO passages (position, text) VALUES (?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, p := range passages {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, n, p); err != nil {
			return 0, fmt.Errorf("failed to insert passage %d: %w", n, err)
		}
		n++
	}

	meta := map[string]string{
		"source":      source,
		"passages":    strconv.Itoa(n),
		"imported_at": strconv.FormatInt(time.Now().Unix(), 10),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO corpus_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
			k, v); err != nil {
			return 0, fmt.Errorf("failed to write corpus meta: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit passages: %w", err)
	}
	return n, nil
}

// Passages returns the stored corpus in insertion order.
func (db *DB) Passages(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT text FROM passages ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query passages: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoPassages
	}
	return out, nil
}

// Meta returns what is known about the stored corpus.
func (db *DB) Meta(ctx context.Context) (Meta, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT key, value FROM corpus_meta")
	if err != nil {
		return Meta{}, fmt.Errorf("failed to query corpus meta: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return Meta{}, err
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return Meta{}, err
	}
	if len(values) == 0 {
		return Meta{}, ErrNoPassages
	}

	m := Meta{Source: values["source"]}
	m.Passages, _ = strconv.Atoi(values["passages"])
	if ts, err := strconv.ParseInt(values["imported_at"], 10, 64); err == nil {
		m.ImportedAt = time.Unix(ts, 0)
	}
	return m, nil
}
