// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"sort"
	"strconv"
	"strings"

	"github.com/danielhkuo/juniorwahl/survey"
)

// compileFilter turns a filter into a " WHERE ..." clause with numbered
// placeholders. Column names come from the survey layout only; request
// values are always bound as arguments. extra conditions are ANDed in.
func compileFilter(f survey.Filter, extra ...string) (string, []any, error) {
	if err := f.Validate(); err != nil {
		return "", nil, err
	}

	conds := append([]string(nil), extra...)
	var args []any

	// Sorted so the same filter always produces the same SQL
	names := make([]string, 0, len(f.Columns))
	for name := range f.Columns {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		values := f.Columns[name]
		if !survey.Selects(values) {
			continue
		}
		col, _ := survey.Lookup(name)

		placeholders := make([]string, len(values))
		for i, v := range values {
			args = append(args, v)
			placeholders[i] = "$" + strconv.Itoa(len(args))
		}
		conds = append(conds, col.Key+" IN ("+strings.Join(placeholders, ", ")+")")
	}

	for _, flags := range [][]string{f.Social, f.Info} {
		if !survey.Selects(flags) {
			continue
		}
		ors := make([]string, len(flags))
		for i, name := range flags {
			col, _ := survey.Lookup(name)
			ors[i] = col.Key + " = 1"
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}
