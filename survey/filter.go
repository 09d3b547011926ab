// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"errors"
	"fmt"
	"slices"
)

// AllValues is the selection that disables a filter
const AllValues = "Alle"

var ErrInvalidFilter = errors.New("invalid filter")

// Filter narrows the respondents a query looks at.
// Columns maps a categorical column to the accepted answers. Social and
// Info select flag columns; a respondent matches if any selected flag is set.
// An empty selection, or one containing "Alle", does not filter.
type Filter struct {
	Columns map[string][]string `json:"columns,omitempty"`
	Social  []string            `json:"social,omitempty"`
	Info    []string            `json:"info,omitempty"`
}

// Selects reports whether a selection narrows the data
func Selects(values []string) bool {
	return len(values) > 0 && !slices.Contains(values, AllValues)
}

// Active reports whether the filter narrows the data at all
func (f Filter) Active() bool {
	for _, values := range f.Columns {
		if Selects(values) {
			return true
		}
	}
	return Selects(f.Social) || Selects(f.Info)
}

// Validate checks that every referenced column exists and has the right kind
func (f Filter) Validate() error {
	for name := range f.Columns {
		col, err := Lookup(name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
		if col.Kind != KindCategory {
			return fmt.Errorf("%w: %s is not a categorical column", ErrInvalidFilter, name)
		}
	}
	if err := validateFlags(f.Social, KindSocialFlag); err != nil {
		return err
	}
	return validateFlags(f.Info, KindInfoFlag)
}

func validateFlags(names []string, kind Kind) error {
	for _, name := range names {
		if name == AllValues {
			continue
		}
		col, err := Lookup(name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
		if col.Kind != kind {
			return fmt.Errorf("%w: %s is not a %s flag", ErrInvalidFilter, name, kind)
		}
	}
	return nil
}
