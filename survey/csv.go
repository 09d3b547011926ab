// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Delimiter separates fields in the export
const Delimiter = ';'

// TrueValue marks a set flag (the export comes from a German spreadsheet)
const TrueValue = "WAHR"

var (
	ErrTooManyFields = errors.New("too many fields")
	ErrInvalidNr     = errors.New("invalid respondent number")
)

// Source describes a loaded export file
type Source struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// LoadFile reads a survey export from disk
func LoadFile(path string) ([]Respondent, Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Source{}, fmt.Errorf("failed to read survey file: %w", err)
	}

	respondents, err := ReadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, Source{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	sum := sha256.Sum256(data)
	return respondents, Source{
		Path:   path,
		Size:   int64(len(data)),
		SHA256: hex.EncodeToString(sum[:]),
	}, nil
}

// ReadCSV parses a semicolon separated UTF-8 export.
// The first row is a header and is skipped; fields are read by position.
// Rows with only empty cells are skipped as well.
func ReadCSV(r io.Reader) ([]Respondent, error) {
	// Spreadsheet exports often start with a byte order mark
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.Comma = Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return []Respondent{}, nil
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	respondents := []Respondent{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		// Exports often end in rows of bare delimiters
		if isBlank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		respondent, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		respondents = append(respondents, respondent)
	}

	return respondents, nil
}

func parseRecord(record []string) (Respondent, error) {
	if len(record) > NumColumns {
		return Respondent{}, fmt.Errorf("%w: got %d, want %d", ErrTooManyFields, len(record), NumColumns)
	}

	// Short rows are padded with missing values
	for len(record) < NumColumns {
		record = append(record, "")
	}

	var respondent Respondent
	for i, col := range Columns {
		value := clean(record[i])

		switch col.Kind {
		case KindID:
			nr, err := strconv.Atoi(value)
			if err != nil {
				return Respondent{}, fmt.Errorf("%w: %q", ErrInvalidNr, value)
			}
			respondent = NewRespondent(nr)
		case KindCategory:
			if value != "" {
				respondent.Answers[col.Name] = value
			}
		case KindInfoFlag, KindSocialFlag:
			respondent.Flags[col.Name] = strings.EqualFold(value, TrueValue)
		}
	}

	return respondent, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if clean(cell) != "" {
			return false
		}
	}
	return true
}

// clean trims a cell and normalizes it to NFC so "Grünen" typed on
// different machines compares equal
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
