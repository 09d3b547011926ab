package models

import (
	"time"

	"github.com/danielhkuo/juniorwahl/coalition"
	"github.com/danielhkuo/juniorwahl/db"
	"github.com/danielhkuo/juniorwahl/survey"
)

// Ballot names accepted by /votes/{ballot}
const (
	BallotFirst  = "erststimme"
	BallotSecond = "zweitstimme"
)

// Messages shown when no coalition reaches the threshold
const (
	NoPairMajority   = "Keine 2er-Koalitionen mit Mehrheit gefunden."
	NoTripleMajority = "Keine 3er-Koalitionen mit Mehrheit gefunden."
)

// Request types

// An empty body is the same as an empty filter
type FilterRequest struct {
	Filter survey.Filter `json:"filter"`
}

// Threshold and Top fall back to the server configuration
type CoalitionRequest struct {
	Filter    survey.Filter `json:"filter"`
	Threshold *float64      `json:"threshold,omitempty"`
	Top       *int          `json:"top,omitempty"`
}

// Response types

type DatasetResponse struct {
	Source      survey.Source `json:"source"`
	Respondents int           `json:"respondents"`
	LoadedAt    time.Time     `json:"loaded_at"`
}

type FilterOption struct {
	Column  string   `json:"column"`
	Options []string `json:"options"`
}

// Options lists start with "Alle", the no-filter choice
type FiltersResponse struct {
	Columns []FilterOption `json:"columns"`
	Social  []string       `json:"social"`
	Info    []string       `json:"info"`
}

type DistributionResponse struct {
	Ballot string                 `json:"ballot"`
	Total  int                    `json:"total"`
	Counts []coalition.PartyCount `json:"counts"`
	Shares coalition.Shares       `json:"shares"`
	Colors map[string]string      `json:"colors"`
}

type CoalitionView struct {
	Parties   []string               `json:"parties"`
	Share     float64                `json:"share"`
	Label     string                 `json:"label"`
	Breakdown []coalition.PartyShare `json:"breakdown"`
}

// Top is shown directly, More behind a collapsible section
type CoalitionGroup struct {
	Size    int             `json:"size"`
	Top     []CoalitionView `json:"top"`
	More    []CoalitionView `json:"more"`
	Message string          `json:"message,omitempty"`
}

type CoalitionsResponse struct {
	Threshold float64           `json:"threshold"`
	Total     int               `json:"total"`
	Shares    coalition.Shares  `json:"shares"`
	Pairs     CoalitionGroup    `json:"pairs"`
	Triples   CoalitionGroup    `json:"triples"`
	Colors    map[string]string `json:"colors"`
}

type ChartResponse struct {
	Column string          `json:"column"`
	Counts []db.ValueCount `json:"counts"`
}

type FlagsResponse struct {
	Group  string         `json:"group"`
	Counts []db.FlagCount `json:"counts"`
}

type RespondentsResponse struct {
	Count       int                 `json:"count"`
	Respondents []survey.Respondent `json:"respondents"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
