// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coalition

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DefaultThreshold is the share a coalition needs for a governing majority
const DefaultThreshold = 50.0

// OppositionLabel names the remaining share in a coalition breakdown
const OppositionLabel = "Opposition"

// PartyShare is one party's percentage of the valid ballots
type PartyShare struct {
	Party string  `json:"party"`
	Share float64 `json:"share"`
}

// Shares is an ordered party -> percentage mapping.
// Order matters: coalitions list their parties in this order.
type Shares []PartyShare

// Lookup returns the share of a party
func (s Shares) Lookup(party string) (float64, bool) {
	for _, ps := range s {
		if ps.Party == party {
			return ps.Share, true
		}
	}
	return 0, false
}

// Coalition is a combination of 2 or 3 distinct parties and their summed share
type Coalition struct {
	Parties []string `json:"parties"`
	Share   float64  `json:"share"`
}

// Size returns the number of parties in the coalition
func (c Coalition) Size() int {
	return len(c.Parties)
}

// Label renders the coalition the way the dashboard titles it, e.g. "CDU + SPD (52.3%)"
func (c Coalition) Label() string {
	return fmt.Sprintf("%s (%.1f%%)", strings.Join(c.Parties, " + "), c.Share)
}

// Result holds the qualifying coalitions of each size, best first
type Result struct {
	Pairs   []Coalition `json:"pairs"`
	Triples []Coalition `json:"triples"`
}

// FindMajorities runs Find with DefaultThreshold
func FindMajorities(shares Shares) Result {
	return Find(shares, DefaultThreshold)
}

// Find enumerates every 2- and 3-party combination whose summed share
// reaches threshold (inclusive). Parties keep their input order inside a
// coalition; each list is stable-sorted by descending share, so ties keep
// generation order. Parties with a negative or non-finite share are skipped.
func Find(shares Shares, threshold float64) Result {
	parties := usable(shares)

	result := Result{
		Pairs:   []Coalition{},
		Triples: []Coalition{},
	}

	for i := 0; i < len(parties); i++ {
		for j := i + 1; j < len(parties); j++ {
			sum := parties[i].Share + parties[j].Share
			if sum >= threshold {
				result.Pairs = append(result.Pairs, Coalition{
					Parties: []string{parties[i].Party, parties[j].Party},
					Share:   sum,
				})
			}

			for k := j + 1; k < len(parties); k++ {
				sum := parties[i].Share + parties[j].Share + parties[k].Share
				if sum >= threshold {
					result.Triples = append(result.Triples, Coalition{
						Parties: []string{parties[i].Party, parties[j].Party, parties[k].Party},
						Share:   sum,
					})
				}
			}
		}
	}

	sortDescending(result.Pairs)
	sortDescending(result.Triples)

	return result
}

// usable drops invalid shares and repeated party names (first one wins)
func usable(shares Shares) Shares {
	seen := make(map[string]bool, len(shares))
	out := make(Shares, 0, len(shares))
	for _, ps := range shares {
		if ps.Share < 0 || math.IsNaN(ps.Share) || math.IsInf(ps.Share, 0) {
			continue
		}
		if seen[ps.Party] {
			continue
		}
		seen[ps.Party] = true
		out = append(out, ps)
	}
	return out
}

func sortDescending(coalitions []Coalition) {
	sort.SliceStable(coalitions, func(i, j int) bool {
		return coalitions[i].Share > coalitions[j].Share
	})
}

// Breakdown lists each member's own share followed by the opposition,
// i.e. whatever the coalition does not hold.
func Breakdown(c Coalition, shares Shares) []PartyShare {
	out := make([]PartyShare, 0, len(c.Parties)+1)
	for _, party := range c.Parties {
		share, _ := shares.Lookup(party)
		out = append(out, PartyShare{Party: party, Share: share})
	}

	// Rounding can push a coalition a hair over 100
	opposition := math.Max(0, 100-c.Share)
	out = append(out, PartyShare{Party: OppositionLabel, Share: opposition})

	return out
}
