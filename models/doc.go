// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

Types for parsing incoming JSON:

  - FilterRequest: filter (survey.Filter)
  - CoalitionRequest: filter, threshold, top

An empty request body is an empty filter.

# Response Types

Types for JSON responses:

  - DatasetResponse: source, respondents, loaded_at
  - FiltersResponse: columns with options, social, info
  - DistributionResponse: ballot, total, counts, shares, colors
  - CoalitionsResponse: threshold, shares, pairs, triples, colors
  - CoalitionGroup: size, top, more, message
  - CoalitionView: parties, share, label, breakdown
  - ChartResponse: column, counts
  - FlagsResponse: group, counts
  - RespondentsResponse: count, respondents
  - ErrorResponse: error, message

# Constants

Ballots:

	BallotFirst  = "erststimme"
	BallotSecond = "zweitstimme"

Messages for a coalition group without a majority:

	NoPairMajority   = "Keine 2er-Koalitionen mit Mehrheit gefunden."
	NoTripleMajority = "Keine 3er-Koalitionen mit Mehrheit gefunden."
*/
package models
