// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

// Respondent is one row of the survey export.
// Answers are keyed by display name; a missing answer has no entry.
type Respondent struct {
	Nr      int               `json:"nr"`
	Answers map[string]string `json:"answers"`
	Flags   map[string]bool   `json:"flags"`
}

// NewRespondent returns a respondent with empty answer and flag maps
func NewRespondent(nr int) Respondent {
	return Respondent{
		Nr:      nr,
		Answers: make(map[string]string),
		Flags:   make(map[string]bool),
	}
}

// Answer returns the answer for a categorical column
func (r Respondent) Answer(column string) (string, bool) {
	v, ok := r.Answers[column]
	return v, ok
}

// Flag reports whether a flag column is set
func (r Respondent) Flag(column string) bool {
	return r.Flags[column]
}
