// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/juniorwahl/cliparse"
	"github.com/danielhkuo/juniorwahl/coalition"
	"github.com/danielhkuo/juniorwahl/db"
	"github.com/danielhkuo/juniorwahl/middleware"
	"github.com/danielhkuo/juniorwahl/models"
	"github.com/danielhkuo/juniorwahl/parties"
	"github.com/danielhkuo/juniorwahl/survey"
)

// maxFilterOptions caps the distinct answers a filterable column may have
const maxFilterOptions = 20

type ResultsHandler struct {
	store   *db.Store
	cfg     cliparse.Config
	palette *parties.Palette
	metrics *middleware.Metrics
}

func NewResultsHandler(store *db.Store, cfg cliparse.Config, palette *parties.Palette, metrics *middleware.Metrics) *ResultsHandler {
	return &ResultsHandler{store: store, cfg: cfg, palette: palette, metrics: metrics}
}

// GetFilters handles GET /filters
// Lists the categorical columns worth filtering on (more than one and fewer
// than 20 distinct answers) and the selectable flags
func (h *ResultsHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	resp := models.FiltersResponse{
		Columns: []models.FilterOption{},
		Social:  survey.Names(survey.ColumnsOf(survey.KindSocialFlag)),
		Info:    survey.Names(survey.ColumnsOf(survey.KindInfoFlag)),
	}

	for _, col := range survey.ColumnsOf(survey.KindCategory) {
		values, err := h.store.Distinct(r.Context(), col.Name)
		if err != nil {
			storeError(w, err, "failed to list filter options")
			return
		}
		if len(values) <= 1 || len(values) >= maxFilterOptions {
			continue
		}

		resp.Columns = append(resp.Columns, models.FilterOption{
			Column:  col.Name,
			Options: append([]string{survey.AllValues}, values...),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetVotes handles POST /votes/{ballot}
// Returns the vote distribution of erststimme or zweitstimme
func (h *ResultsHandler) GetVotes(w http.ResponseWriter, r *http.Request) {
	column, ok := ballotColumn(r.PathValue("ballot"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot must be erststimme or zweitstimme")
		return
	}

	var req models.FilterRequest
	if err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	counts, total, err := h.partyCounts(r, column, req.Filter)
	if err != nil {
		storeError(w, err, "failed to count votes")
		return
	}

	labels := make([]string, len(counts))
	for i, pc := range counts {
		labels[i] = pc.Party
	}

	middleware.JSONResponse(w, http.StatusOK, models.DistributionResponse{
		Ballot: strings.ToLower(column),
		Total:  total,
		Counts: counts,
		Shares: coalition.Normalize(counts),
		Colors: h.palette.Colors(labels),
	})
}

// GetCoalitions handles POST /coalitions
// Searches majority coalitions on the Zweitstimme shares of the filtered respondents
func (h *ResultsHandler) GetCoalitions(w http.ResponseWriter, r *http.Request) {
	var req models.CoalitionRequest
	if err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	threshold := h.cfg.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if threshold < 0 || threshold > 100 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "threshold must be between 0 and 100")
		return
	}

	top := h.cfg.Top
	if req.Top != nil {
		top = *req.Top
	}
	if top < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "top must be at least 1")
		return
	}

	counts, total, err := h.partyCounts(r, survey.ColZweitstimme, req.Filter)
	if err != nil {
		storeError(w, err, "failed to count votes")
		return
	}
	shares := coalition.Normalize(counts)

	start := time.Now()
	result := coalition.Find(shares, threshold)
	h.metrics.ObserveCoalitionSearch(len(shares), time.Since(start))

	labels := make([]string, 0, len(shares)+1)
	for _, ps := range shares {
		labels = append(labels, ps.Party)
	}
	labels = append(labels, coalition.OppositionLabel)

	middleware.JSONResponse(w, http.StatusOK, models.CoalitionsResponse{
		Threshold: threshold,
		Total:     total,
		Shares:    shares,
		Pairs:     group(2, result.Pairs, shares, top, models.NoPairMajority),
		Triples:   group(3, result.Triples, shares, top, models.NoTripleMajority),
		Colors:    h.palette.Colors(labels),
	})
}

// GetChart handles POST /charts/{column}
// Returns value counts for a categorical column
func (h *ResultsHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	var req models.FilterRequest
	if err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	col, err := survey.Lookup(r.PathValue("column"))
	if err != nil {
		storeError(w, err, "")
		return
	}

	counts, err := h.store.ValueCounts(r.Context(), col.Name, req.Filter)
	if err != nil {
		storeError(w, err, "failed to count answers")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ChartResponse{
		Column: col.Name,
		Counts: counts,
	})
}

// GetSocial handles POST /social
func (h *ResultsHandler) GetSocial(w http.ResponseWriter, r *http.Request) {
	h.flagCounts(w, r, survey.KindSocialFlag)
}

// GetInfo handles POST /info
func (h *ResultsHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	h.flagCounts(w, r, survey.KindInfoFlag)
}

func (h *ResultsHandler) flagCounts(w http.ResponseWriter, r *http.Request, kind survey.Kind) {
	var req models.FilterRequest
	if err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	counts, err := h.store.FlagCounts(r.Context(), kind, req.Filter)
	if err != nil {
		storeError(w, err, "failed to count flags")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.FlagsResponse{
		Group:  kind.String(),
		Counts: counts,
	})
}

// GetCrosstab handles POST /crosstab/{column}
// Splits the answers to one question by gender
func (h *ResultsHandler) GetCrosstab(w http.ResponseWriter, r *http.Request) {
	var req models.FilterRequest
	if err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tab, err := h.store.Crosstab(r.Context(), r.PathValue("column"), req.Filter)
	if err != nil {
		storeError(w, err, "failed to cross-tabulate")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, tab)
}

// GetRespondents handles POST /respondents
func (h *ResultsHandler) GetRespondents(w http.ResponseWriter, r *http.Request) {
	var req models.FilterRequest
	if err := middleware.ParseOptionalJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	respondents, err := h.store.Respondents(r.Context(), req.Filter)
	if err != nil {
		storeError(w, err, "failed to query respondents")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RespondentsResponse{
		Count:       len(respondents),
		Respondents: respondents,
	})
}

// partyCounts returns the ballot counts of column in value count order
func (h *ResultsHandler) partyCounts(r *http.Request, column string, f survey.Filter) ([]coalition.PartyCount, int, error) {
	values, err := h.store.ValueCounts(r.Context(), column, f)
	if err != nil {
		return nil, 0, err
	}

	counts := make([]coalition.PartyCount, len(values))
	total := 0
	for i, vc := range values {
		counts[i] = coalition.PartyCount{Party: vc.Value, Count: vc.Count}
		total += vc.Count
	}
	return counts, total, nil
}

// group splits coalitions into the first top and the rest
func group(size int, found []coalition.Coalition, shares coalition.Shares, top int, empty string) models.CoalitionGroup {
	g := models.CoalitionGroup{
		Size: size,
		Top:  []models.CoalitionView{},
		More: []models.CoalitionView{},
	}
	if len(found) == 0 {
		g.Message = empty
		return g
	}

	for i, c := range found {
		view := models.CoalitionView{
			Parties:   c.Parties,
			Share:     c.Share,
			Label:     c.Label(),
			Breakdown: coalition.Breakdown(c, shares),
		}
		if i < top {
			g.Top = append(g.Top, view)
		} else {
			g.More = append(g.More, view)
		}
	}
	return g
}

func ballotColumn(ballot string) (string, bool) {
	switch strings.ToLower(ballot) {
	case models.BallotFirst:
		return survey.ColErststimme, true
	case models.BallotSecond:
		return survey.ColZweitstimme, true
	}
	return "", false
}

// storeError maps request errors to 400 and logs everything else as a 500
func storeError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, survey.ErrUnknownColumn) || errors.Is(err, survey.ErrInvalidFilter) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Error(msg, "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}
