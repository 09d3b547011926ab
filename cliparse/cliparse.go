package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPort     = 3318
	DefaultDataFile = "Juniorwahl_2025_Auwertung_CSV_v1.csv"
	DefaultDBType   = "sqlite"
	DefaultSQLiteDB = ":memory:"
	DefaultTop      = 4
	DefaultMajority = 50.0
)

type Config struct {
	Port         int     `validate:"min=1,max=65535"`
	DataFile     string  `validate:"required"`
	DatabaseURL  string  `validate:"required"`
	DatabaseType string  `validate:"oneof=sqlite postgres"`
	PartiesFile  string
	Threshold    float64 `validate:"gte=0,lte=100"`
	Top          int     `validate:"min=1"`
	AdminKeySalt string

	// PrintAdminKey prints the reload key and exits instead of serving
	PrintAdminKey bool
}

var validate = validator.New()

// ParseFlags parses flags, falls back to env variables and validates the result
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var threshold string

	fs := flag.NewFlagSet("juniorwahl", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DataFile, "f", "", "Survey CSV file")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.PartiesFile, "parties", "", "YAML file with party colors")
	fs.StringVar(&threshold, "threshold", "", "Majority threshold in percent")
	fs.IntVar(&cfg.Top, "top", 0, "Coalitions shown before the rest are collapsed")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")
	fs.BoolVar(&cfg.PrintAdminKey, "print-admin-key", false, "Print the reload admin key and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DataFile == "" {
		cfg.DataFile = os.Getenv("DATA_FILE")
		if cfg.DataFile == "" {
			cfg.DataFile = DefaultDataFile
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DefaultDBType
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != DefaultDBType {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLiteDB
	}

	if cfg.PartiesFile == "" {
		cfg.PartiesFile = os.Getenv("PARTIES_FILE")
	}

	if threshold == "" {
		threshold = os.Getenv("MAJORITY_THRESHOLD")
	}
	if threshold == "" {
		cfg.Threshold = DefaultMajority
	} else {
		v, err := strconv.ParseFloat(threshold, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid majority threshold %q", threshold)
		}
		cfg.Threshold = v
	}

	if cfg.Top == 0 {
		if topStr := os.Getenv("COALITION_TOP"); topStr != "" {
			top, err := strconv.Atoi(topStr)
			if err != nil {
				return Config{}, errors.New("invalid COALITION_TOP env variable")
			}
			cfg.Top = top
		} else {
			cfg.Top = DefaultTop
		}
	}

	// Optional: without a salt the reload endpoint stays disabled
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ReloadEnabled reports whether an admin key salt is configured
func (c Config) ReloadEnabled() bool {
	return c.AdminKeySalt != ""
}
