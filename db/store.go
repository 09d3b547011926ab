// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/danielhkuo/juniorwahl/survey"
)

// FalseValue labels an unset flag in cross-tabs
const FalseValue = "FALSCH"

// ValueCount is how often an answer occurs
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FlagCount is how many respondents set a flag
type FlagCount struct {
	Flag  string `json:"flag"`
	Count int    `json:"count"`
}

// CrosstabCell is the number of respondents giving one answer per gender
type CrosstabCell struct {
	Answer string `json:"answer"`
	Gender string `json:"gender"`
	Count  int    `json:"count"`
}

// Crosstab counts answers of one question split by gender
type Crosstab struct {
	Question string         `json:"question"`
	Answers  []string       `json:"answers"`
	Genders  []string       `json:"genders"`
	Cells    []CrosstabCell `json:"cells"`
}

// Store runs respondent queries against the database
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping verifies the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Replace swaps the respondent table contents in a single transaction.
// Slice order is kept as the file position used to break ties.
func (s *Store) Replace(ctx context.Context, respondents []survey.Respondent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM respondent"); err != nil {
		return fmt.Errorf("failed to clear respondents: %w", err)
	}

	keys := make([]string, len(survey.Columns)+1)
	placeholders := make([]string, len(keys))
	for i, col := range survey.Columns {
		keys[i] = col.Key
	}
	keys[len(survey.Columns)] = PositionColumn
	for i := range placeholders {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO respondent (%s) VALUES (%s)",
		strings.Join(keys, ", "), strings.Join(placeholders, ", "),
	))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for pos, r := range respondents {
		args := make([]any, len(keys))
		for i, col := range survey.Columns {
			switch col.Kind {
			case survey.KindID:
				args[i] = r.Nr
			case survey.KindCategory:
				if v, ok := r.Answer(col.Name); ok {
					args[i] = v
				} else {
					args[i] = nil
				}
			default:
				args[i] = boolToInt(r.Flag(col.Name))
			}
		}
		args[len(survey.Columns)] = pos

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert respondent %d: %w", r.Nr, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit respondents: %w", err)
	}

	return nil
}

// Count returns the number of respondents matching the filter
func (s *Store) Count(ctx context.Context, f survey.Filter) (int, error) {
	where, args, err := compileFilter(f)
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM respondent"+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count respondents: %w", err)
	}
	return count, nil
}

// ValueCounts counts the non-missing answers of a categorical column,
// most frequent first; ties go to the answer that appears first in the file,
// whatever its Nr.
func (s *Store) ValueCounts(ctx context.Context, column string, f survey.Filter) ([]ValueCount, error) {
	col, err := categoryColumn(column)
	if err != nil {
		return nil, err
	}

	where, args, err := compileFilter(f, col.Key+" IS NOT NULL")
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %[1]s, COUNT(*) AS n, MIN(%[3]s) AS first_pos
		FROM respondent%[2]s
		GROUP BY %[1]s
		ORDER BY n DESC, first_pos ASC
	`, col.Key, where, PositionColumn), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", col.Name, err)
	}
	defer rows.Close()

	counts := []ValueCount{}
	for rows.Next() {
		var vc ValueCount
		var firstPos int
		if err := rows.Scan(&vc.Value, &vc.Count, &firstPos); err != nil {
			return nil, err
		}
		counts = append(counts, vc)
	}

	return counts, rows.Err()
}

// Distinct lists the non-missing answers of a categorical column across
// all respondents, in order of first appearance
func (s *Store) Distinct(ctx context.Context, column string) ([]string, error) {
	col, err := categoryColumn(column)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %[1]s, MIN(%[2]s) AS first_pos
		FROM respondent
		WHERE %[1]s IS NOT NULL
		GROUP BY %[1]s
		ORDER BY first_pos
	`, col.Key, PositionColumn))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s values: %w", col.Name, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		var firstPos int
		if err := rows.Scan(&v, &firstPos); err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, rows.Err()
}

// FlagCounts returns, for every flag of kind, how many filtered
// respondents set it, in layout order
func (s *Store) FlagCounts(ctx context.Context, kind survey.Kind, f survey.Filter) ([]FlagCount, error) {
	cols := survey.ColumnsOf(kind)
	if len(cols) == 0 || (kind != survey.KindInfoFlag && kind != survey.KindSocialFlag) {
		return nil, fmt.Errorf("%w: %s is not a flag kind", survey.ErrUnknownColumn, kind)
	}

	where, args, err := compileFilter(f)
	if err != nil {
		return nil, err
	}

	sums := make([]string, len(cols))
	for i, col := range cols {
		sums[i] = "COALESCE(SUM(" + col.Key + "), 0)"
	}

	values := make([]int, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}

	query := "SELECT " + strings.Join(sums, ", ") + " FROM respondent" + where
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(dest...); err != nil {
		return nil, fmt.Errorf("failed to count %s flags: %w", kind, err)
	}

	counts := make([]FlagCount, len(cols))
	for i, col := range cols {
		counts[i] = FlagCount{Flag: col.Name, Count: values[i]}
	}
	return counts, nil
}

// Crosstab counts the answers to question per gender. Respondents with a
// missing answer or gender are left out. Every gender that occurs anywhere
// in the data gets a cell for every answer, zero if nobody gave it.
// Answers and genders are sorted alphabetically.
func (s *Store) Crosstab(ctx context.Context, question string, f survey.Filter) (Crosstab, error) {
	col, err := survey.Lookup(question)
	if err != nil {
		return Crosstab{}, err
	}
	if col.Kind == survey.KindID {
		return Crosstab{}, fmt.Errorf("%w: %s cannot be cross-tabulated", survey.ErrUnknownColumn, col.Name)
	}

	genders, err := s.Distinct(ctx, survey.ColGeschlecht)
	if err != nil {
		return Crosstab{}, err
	}
	sort.Strings(genders)

	where, args, err := compileFilter(f, col.Key+" IS NOT NULL", "geschlecht IS NOT NULL")
	if err != nil {
		return Crosstab{}, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %[1]s, geschlecht, COUNT(*)
		FROM respondent%[2]s
		GROUP BY %[1]s, geschlecht
	`, col.Key, where), args...)
	if err != nil {
		return Crosstab{}, fmt.Errorf("failed to cross-tabulate %s: %w", col.Name, err)
	}
	defer rows.Close()

	counts := make(map[[2]string]int)
	seen := make(map[string]bool)
	answers := []string{}
	for rows.Next() {
		var answer, gender string
		var n int
		if err := rows.Scan(&answer, &gender, &n); err != nil {
			return Crosstab{}, err
		}
		if col.Kind != survey.KindCategory {
			answer = flagLabel(answer)
		}
		counts[[2]string{answer, gender}] += n
		if !seen[answer] {
			seen[answer] = true
			answers = append(answers, answer)
		}
	}
	if err := rows.Err(); err != nil {
		return Crosstab{}, err
	}
	sort.Strings(answers)

	cells := make([]CrosstabCell, 0, len(answers)*len(genders))
	for _, answer := range answers {
		for _, gender := range genders {
			cells = append(cells, CrosstabCell{
				Answer: answer,
				Gender: gender,
				Count:  counts[[2]string{answer, gender}],
			})
		}
	}

	return Crosstab{
		Question: col.Name,
		Answers:  answers,
		Genders:  genders,
		Cells:    cells,
	}, nil
}

// Respondents returns the filtered rows ordered by Nr
func (s *Store) Respondents(ctx context.Context, f survey.Filter) ([]survey.Respondent, error) {
	where, args, err := compileFilter(f)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(survey.Columns))
	for i, col := range survey.Columns {
		keys[i] = col.Key
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+strings.Join(keys, ", ")+" FROM respondent"+where+" ORDER BY nr", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query respondents: %w", err)
	}
	defer rows.Close()

	respondents := []survey.Respondent{}
	for rows.Next() {
		var nr int
		answers := make([]sql.NullString, len(survey.Columns))
		flags := make([]int, len(survey.Columns))

		dest := make([]any, len(survey.Columns))
		for i, col := range survey.Columns {
			switch col.Kind {
			case survey.KindID:
				dest[i] = &nr
			case survey.KindCategory:
				dest[i] = &answers[i]
			default:
				dest[i] = &flags[i]
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		r := survey.NewRespondent(nr)
		for i, col := range survey.Columns {
			switch col.Kind {
			case survey.KindID:
			case survey.KindCategory:
				if answers[i].Valid {
					r.Answers[col.Name] = answers[i].String
				}
			default:
				r.Flags[col.Name] = flags[i] == 1
			}
		}
		respondents = append(respondents, r)
	}

	return respondents, rows.Err()
}

func categoryColumn(name string) (survey.Column, error) {
	col, err := survey.Lookup(name)
	if err != nil {
		return survey.Column{}, err
	}
	if col.Kind != survey.KindCategory {
		return survey.Column{}, fmt.Errorf("%w: %s is not a categorical column", survey.ErrUnknownColumn, col.Name)
	}
	return col, nil
}

func flagLabel(v string) string {
	if v == "1" {
		return survey.TrueValue
	}
	return FalseValue
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
