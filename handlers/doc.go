// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Juniorwahl API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - DatasetHandler: loading and reloading the survey CSV
  - ResultsHandler: filter options, vote distributions, coalitions, charts

Handlers are created via constructor functions:

	datasets := handlers.NewDatasetHandler(store, cfg, metrics)
	results := handlers.NewResultsHandler(store, cfg, palette, metrics)

# Dataset

	GET  /dataset        → GetDataset (source file, fingerprint, respondent count)
	POST /dataset/reload → ReloadDataset

Reloading requires the X-Admin-Key header and an admin salt in the
configuration; without a salt the endpoint answers 403. A failed load keeps
the previous dataset.

# Filters

Every POST endpoint takes an optional body:

	{"filter": {"columns": {"Geschlecht": ["weiblich"]}, "social": ["Social_TikTok"]}}

Column selections are ANDed, flag selections match any selected flag, and a
selection containing "Alle" is ignored. GET /filters lists the options.

# Coalitions

	POST /coalitions → GetCoalitions

Vote shares come from the filtered Zweitstimme counts. The first top
coalitions of each size are returned in "top", the rest in "more", each with
its per-party breakdown and the remaining opposition share. The threshold and
top default to the server configuration.

# Charts

	POST /votes/{ballot}     → GetVotes (erststimme, zweitstimme)
	POST /charts/{column}    → GetChart
	POST /social             → GetSocial
	POST /info               → GetInfo
	POST /crosstab/{column}  → GetCrosstab
	POST /respondents        → GetRespondents

Unknown columns and invalid filters answer 400.
*/
package handlers
