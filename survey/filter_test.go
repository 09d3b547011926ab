// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterActive(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		active bool
	}{
		{"zero value", Filter{}, false},
		{"empty selection", Filter{Columns: map[string][]string{ColGeschlecht: {}}}, false},
		{"Alle selected", Filter{Columns: map[string][]string{ColGeschlecht: {"weiblich", AllValues}}}, false},
		{"column selection", Filter{Columns: map[string][]string{ColGeschlecht: {"weiblich"}}}, true},
		{"social selection", Filter{Social: []string{"Social_TikTok"}}, true},
		{"info Alle", Filter{Info: []string{AllValues}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, tt.filter.Active())
		})
	}
}

func TestFilterValidate(t *testing.T) {
	tests := []struct {
		name    string
		filter  Filter
		wantErr bool
	}{
		{"zero value", Filter{}, false},
		{"display name", Filter{Columns: map[string][]string{"Zukunftssicht": {"Positiv"}}}, false},
		{"sql key", Filter{Columns: map[string][]string{"zukunftssicht": {"Positiv"}}}, false},
		{"unknown column", Filter{Columns: map[string][]string{"Haarfarbe": {"blond"}}}, true},
		{"id column", Filter{Columns: map[string][]string{ColNr: {"1"}}}, true},
		{"flag as column", Filter{Columns: map[string][]string{"Social_X": {"WAHR"}}}, true},
		{"social flags", Filter{Social: []string{"Social_X", "Social_Twitch"}}, false},
		{"info flag in social", Filter{Social: []string{"Info_TV"}}, true},
		{"Alle in info", Filter{Info: []string{AllValues}}, false},
		{"unknown info", Filter{Info: []string{"Info_Radio"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFilter)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	col, err := Lookup("Interesse an Politik")
	assert.NoError(t, err)
	assert.Equal(t, "interesse_an_politik", col.Key)
	assert.Equal(t, KindCategory, col.Kind)

	_, err = Lookup("nr; DROP TABLE respondent")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestColumnsLayout(t *testing.T) {
	assert.Equal(t, 22, NumColumns)
	assert.Len(t, ColumnsOf(KindID), 1)
	assert.Len(t, ColumnsOf(KindCategory), 10)
	assert.Len(t, ColumnsOf(KindInfoFlag), 5)
	assert.Len(t, ColumnsOf(KindSocialFlag), 6)
}
