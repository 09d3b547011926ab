// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db holds the respondent table and the queries the dashboard needs.

# Drivers

Two database/sql drivers are supported, chosen by type:

  - sqlite: modernc.org/sqlite, pure Go. The default ":memory:" database is
    a scratch copy of the CSV that disappears on exit.
  - postgres: github.com/lib/pq, for running several API instances against
    one loaded dataset.

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	err = db.CreateSchema(conn)

# Schema

One table, respondent, with one column per CSV field. Categorical answers
are nullable TEXT, flags are 0/1 INTEGER, nr is the primary key. pos keeps
the row position in the file and breaks ties in value counts.

# Queries

Store wraps the connection. Every query accepts a survey.Filter, compiled to
a parameterized WHERE clause:

	store := db.NewStore(conn)
	err := store.Replace(ctx, respondents)
	counts, err := store.ValueCounts(ctx, "Zweitstimme", filter)
	tab, err := store.Crosstab(ctx, "Zukunftssicht", filter)

Column names always come from survey.Columns, never from request text.
*/
package db
