// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/juniorwahl/cliparse"
	"github.com/danielhkuo/juniorwahl/db"
	"github.com/danielhkuo/juniorwahl/survey"
)

// TestAdminSalt enables dataset reloads in GetTestConfig
const TestAdminSalt = "test-admin-salt"

// Candidates of the sample dataset
const (
	CandidateSPD   = "Uwe Schmidt / SPD"
	CandidateCDU   = "Sandra Schmull / CDU"
	CandidateGruen = "Micheal Labetzke / Grünen"
	CandidateLinke = "Darius Hassanpour / Die Linke"
)

// Gruenen is the party name with its umlaut
const Gruenen = "Grünen"

type sampleRow struct {
	erst, zweit, teilnahme, interesse, zukunft, geschlecht string
	info, social                                            []string
}

// Zweitstimme: SPD 4, CDU 3, Grünen 2, Die Linke 1, one missing.
// Geschlecht: weiblich 5, männlich 5, divers 1.
var sampleRows = []sampleRow{
	{CandidateSPD, "SPD", "Ja", "Hoch", "Positiv", "weiblich", []string{"Plakat", "TV"}, []string{"TikTok"}},
	{CandidateCDU, "CDU", "Ja", "Mittel", "Neutral", "männlich", []string{"Zeitung"}, []string{"Instagram"}},
	{CandidateSPD, "SPD", "Ja", "Hoch", "Positiv", "männlich", []string{"TV"}, []string{"TikTok", "Instagram"}},
	{CandidateGruen, Gruenen, "Ja", "Niedrig", "Negativ", "weiblich", []string{"Wahlprogramme"}, []string{"YouTube"}},
	{CandidateCDU, "CDU", "Ja", "Mittel", "Neutral", "weiblich", []string{"Keine"}, []string{"Keine"}},
	{CandidateSPD, "SPD", "Ja", "Hoch", "Positiv", "divers", []string{"Plakat"}, []string{"TikTok"}},
	{CandidateLinke, "Die Linke", "Nein", "Hoch", "Negativ", "männlich", []string{"Wahlprogramme", "Zeitung"}, []string{"X"}},
	{CandidateGruen, Gruenen, "Nein", "Mittel", "Positiv", "weiblich", []string{"TV"}, []string{"TikTok", "Instagram"}},
	{CandidateCDU, "CDU", "Nein", "Niedrig", "Negativ", "männlich", []string{"Keine"}, []string{"Keine"}},
	{CandidateGruen, "SPD", "Nein", "Hoch", "Positiv", "männlich", []string{"Plakat"}, []string{"Twitch"}},
	{"", "", "Nein", "", "Neutral", "weiblich", []string{"Keine"}, []string{"Keine"}},
}

// SampleSize is the number of respondents in SampleCSV
var SampleSize = len(sampleRows)

// SampleCSV renders the sample dataset as a Juniorwahl export.
// Wahlabsicht is "Ja" for everyone and the remaining questions are empty.
func SampleCSV() string {
	names := survey.Names(survey.Columns)
	lines := []string{strings.Join(names, ";")}

	for i, row := range sampleRows {
		fields := make([]string, survey.NumColumns)
		for j, col := range survey.Columns {
			switch col.Name {
			case survey.ColNr:
				fields[j] = strconv.Itoa(i + 1)
			case survey.ColErststimme:
				fields[j] = row.erst
			case survey.ColZweitstimme:
				fields[j] = row.zweit
			case "Vorherige Teilnahme":
				fields[j] = row.teilnahme
			case "Wahlabsicht":
				fields[j] = "Ja"
			case "Interesse an Politik":
				fields[j] = row.interesse
			case "Zukunftssicht":
				fields[j] = row.zukunft
			case survey.ColGeschlecht:
				fields[j] = row.geschlecht
			}

			switch col.Kind {
			case survey.KindInfoFlag:
				fields[j] = flagCell(col.Name, "Info_", row.info)
			case survey.KindSocialFlag:
				fields[j] = flagCell(col.Name, "Social_", row.social)
			}
		}
		lines = append(lines, strings.Join(fields, ";"))
	}

	return strings.Join(lines, "\n") + "\n"
}

func flagCell(column, prefix string, set []string) string {
	for _, s := range set {
		if prefix+s == column {
			return survey.TrueValue
		}
	}
	return "FALSCH"
}

// WriteSampleCSV writes SampleCSV to a temp file and returns its path
func WriteSampleCSV(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "juniorwahl.csv")
	if err := os.WriteFile(path, []byte(SampleCSV()), 0o600); err != nil {
		t.Fatalf("Failed to write sample CSV: %v", err)
	}
	return path
}

// SetupTestDB opens a private in-memory database with the schema applied
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupSampleStore returns a store loaded with the sample dataset
func SetupSampleStore(t *testing.T) *db.Store {
	t.Helper()

	respondents, err := survey.ReadCSV(strings.NewReader(SampleCSV()))
	if err != nil {
		t.Fatalf("Failed to parse sample CSV: %v", err)
	}

	store := db.NewStore(SetupTestDB(t))
	if err := store.Replace(context.Background(), respondents); err != nil {
		t.Fatalf("Failed to load sample respondents: %v", err)
	}

	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DataFile:     cliparse.DefaultDataFile,
		DatabaseURL:  cliparse.DefaultSQLiteDB,
		DatabaseType: db.TypeSQLite,
		Threshold:    cliparse.DefaultMajority,
		Top:          cliparse.DefaultTop,
		AdminKeySalt: TestAdminSalt,
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
