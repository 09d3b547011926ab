// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Juniorwahl results API.

The server loads the survey export of a school mock election (Juniorwahl),
answers filtered questions about the respondents and finds every two- and
three-party coalition that reaches a majority of the Zweitstimmen.

# Starting the Server

With no configuration the server reads the default CSV from the working
directory into an in-memory SQLite database:

	go run .

Or with flags:

	go run . -p 3318 -f umfrage.csv -threshold 50 -top 4

A .env file in the working directory is loaded first.

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATA_FILE (-f): Survey CSV (default: Juniorwahl_2025_Auwertung_CSV_v1.csv)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (default: in-memory SQLite, required for postgres)
  - PARTIES_FILE (-parties): YAML palette overriding the built-in party colors
  - MAJORITY_THRESHOLD (-threshold): Majority in percent (default: 50)
  - COALITION_TOP (-top): Coalitions listed before the rest are collapsed (default: 4)
  - ADMIN_KEY_SALT (-admin-salt): Secret for the reload key; reload is off without it

Print the reload key and exit:

	ADMIN_KEY_SALT=... go run . -print-admin-key

# Architecture

  - coalition: Majority coalition search over vote shares
  - survey: CSV layout, ingestion and filters
  - db: Respondent store over database/sql
  - parties: Party colors
  - handlers: HTTP request handlers (dataset, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - models: Request/response types
  - auth: Reload key generation and validation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
