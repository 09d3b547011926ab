// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"errors"
	"fmt"
)

var ErrUnknownColumn = errors.New("unknown column")

// Kind classifies a survey column
type Kind int

const (
	KindID Kind = iota
	KindCategory
	KindInfoFlag
	KindSocialFlag
)

func (k Kind) String() string {
	switch k {
	case KindID:
		return "id"
	case KindCategory:
		return "category"
	case KindInfoFlag:
		return "info"
	case KindSocialFlag:
		return "social"
	default:
		return "unknown"
	}
}

// Column describes one position in the CSV layout.
// Name is the dashboard label, Key the SQL column.
type Column struct {
	Name string
	Key  string
	Kind Kind
}

// Display names of the columns read by name elsewhere
const (
	ColNr          = "Nr"
	ColErststimme  = "Erststimme"
	ColZweitstimme = "Zweitstimme"
	ColGeschlecht  = "Geschlecht"
)

// Columns is the fixed column order of the Juniorwahl export
var Columns = []Column{
	{ColNr, "nr", KindID},
	{ColErststimme, "erststimme", KindCategory},
	{ColZweitstimme, "zweitstimme", KindCategory},
	{"Vorherige Teilnahme", "vorherige_teilnahme", KindCategory},
	{"Wahlabsicht", "wahlabsicht", KindCategory},
	{"Parteivertrauen", "parteivertrauen", KindCategory},
	{"Interesse an Politik", "interesse_an_politik", KindCategory},
	{"Vorbereitung im Unterricht", "vorbereitung_im_unterricht", KindCategory},
	{"Parteiziele verstehen", "parteiziele_verstehen", KindCategory},
	{"Zukunftssicht", "zukunftssicht", KindCategory},
	{ColGeschlecht, "geschlecht", KindCategory},
	{"Info_Plakat", "info_plakat", KindInfoFlag},
	{"Info_Wahlprogramme", "info_wahlprogramme", KindInfoFlag},
	{"Info_TV", "info_tv", KindInfoFlag},
	{"Info_Zeitung", "info_zeitung", KindInfoFlag},
	{"Info_Keine", "info_keine", KindInfoFlag},
	{"Social_TikTok", "social_tiktok", KindSocialFlag},
	{"Social_Instagram", "social_instagram", KindSocialFlag},
	{"Social_X", "social_x", KindSocialFlag},
	{"Social_YouTube", "social_youtube", KindSocialFlag},
	{"Social_Twitch", "social_twitch", KindSocialFlag},
	{"Social_Keine", "social_keine", KindSocialFlag},
}

// NumColumns is the number of fields in a respondent row
var NumColumns = len(Columns)

// Lookup finds a column by display name or SQL key
func Lookup(name string) (Column, error) {
	for _, c := range Columns {
		if c.Name == name || c.Key == name {
			return c, nil
		}
	}
	return Column{}, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// ColumnsOf returns all columns of one kind in layout order
func ColumnsOf(kind Kind) []Column {
	var out []Column
	for _, c := range Columns {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the display names of cols
func Names(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
