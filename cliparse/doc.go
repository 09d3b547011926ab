// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a validated Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DataFile: Survey CSV export (default: Juniorwahl_2025_Auwertung_CSV_v1.csv)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: Connection string (default for sqlite: :memory:)
  - PartiesFile: YAML party colors merged over the built-in palette
  - Threshold: Majority threshold in percent (default: 50)
  - Top: Coalitions listed before the rest are collapsed (default: 4)
  - AdminKeySalt: Secret for the reload admin key (optional)

# CLI Flags

	-p           Server port
	-f           Survey CSV file
	-t           Database type
	-d           Database URL
	-parties     Party colors YAML
	-threshold   Majority threshold
	-top         Coalitions shown up front
	-admin-salt  Admin key salt
	-print-admin-key  Print the reload key and exit

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATA_FILE          → -f
	DATABASE_TYPE      → -t
	DATABASE_URL       → -d
	PARTIES_FILE       → -parties
	MAJORITY_THRESHOLD → -threshold
	COALITION_TOP      → -top
	ADMIN_KEY_SALT     → -admin-salt

CLI flags take precedence over environment variables. main loads a .env
file first, so its values count as environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing for postgres
  - the port, threshold (0-100) or top count (>= 1) is out of range
  - the database type is neither sqlite nor postgres

Without ADMIN_KEY_SALT, POST /dataset/reload answers 403.
*/
package cliparse
