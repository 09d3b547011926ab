// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package survey reads the Juniorwahl survey export.

# File Format

The export is semicolon separated UTF-8 with a header row. Columns are read
by position, in the order of Columns:

	Nr; Erststimme; Zweitstimme; Vorherige Teilnahme; Wahlabsicht;
	Parteivertrauen; Interesse an Politik; Vorbereitung im Unterricht;
	Parteiziele verstehen; Zukunftssicht; Geschlecht;
	Info_Plakat ... Info_Keine; Social_TikTok ... Social_Keine

Empty cells are missing answers. Info_* and Social_* cells are flags that
are set when the cell reads WAHR.

# Filters

A Filter selects respondents by answer and by flag:

	f := survey.Filter{
		Columns: map[string][]string{"Geschlecht": {"weiblich"}},
		Social:  []string{"Social_TikTok", "Social_Instagram"},
	}

Selections containing "Alle" are ignored, mirroring the dashboard sidebar.
*/
package survey
