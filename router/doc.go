// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Juniorwahl API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	datasets := handlers.NewDatasetHandler(store, cfg, metrics)
	mux := router.NewRouter(store, cfg, palette, metrics, datasets)

The dataset handler is built by the caller so it can load the CSV before
the server starts.

# Endpoints

Health:

	GET /health

Dataset:

	GET  /dataset        - Source file and respondent count
	POST /dataset/reload - Re-read the CSV (requires X-Admin-Key)

Results (public, optional filter body):

	GET  /filters            - Filter options
	POST /votes/{ballot}     - Erststimme or Zweitstimme distribution
	POST /coalitions         - Majority coalitions
	POST /charts/{column}    - Answer counts of one question
	POST /social             - Social media usage
	POST /info               - Information sources
	POST /crosstab/{column}  - Answers by gender
	POST /respondents        - Filtered rows

Metrics:

	GET /metrics

# Middleware

Every route except /health, /metrics and / is wrapped with request logging.
All routes except /metrics and / are counted by route pattern.
*/
package router
