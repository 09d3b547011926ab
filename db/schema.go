// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/danielhkuo/juniorwahl/survey"
)

// Supported database types, named after their database/sql drivers
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the respondent database.
// The sqlite driver comes from modernc.org/sqlite and postgres from
// lib/pq; both must be imported by the caller.
func Open(dbType, url string) (*sql.DB, error) {
	if dbType != TypeSQLite && dbType != TypePostgres {
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(dbType, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbType == TypeSQLite {
		// Every connection to :memory: is its own database
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema())
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// PositionColumn holds the zero-based row position in the loaded file
const PositionColumn = "pos"

// schema derives the respondent table from the CSV layout.
// Flags are stored as 0/1 integers so both drivers bind them the same way.
func schema() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS respondent (\n")
	for _, col := range survey.Columns {
		b.WriteString("    ")
		b.WriteString(col.Key)
		switch col.Kind {
		case survey.KindID:
			b.WriteString(" INTEGER PRIMARY KEY")
		case survey.KindCategory:
			b.WriteString(" TEXT")
		default:
			b.WriteString(" INTEGER NOT NULL DEFAULT 0 CHECK (" + col.Key + " IN (0, 1))")
		}
		b.WriteString(",\n")
	}
	b.WriteString("    " + PositionColumn + " INTEGER NOT NULL\n")
	b.WriteString(");\n")
	b.WriteString("\nCREATE INDEX IF NOT EXISTS idx_respondent_zweitstimme ON respondent(zweitstimme);\n")
	b.WriteString("CREATE INDEX IF NOT EXISTS idx_respondent_geschlecht ON respondent(geschlecht);\n")
	return b.String()
}
