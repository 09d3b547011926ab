// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coalition

// PartyCount is the number of ballots cast for one party
type PartyCount struct {
	Party string `json:"party"`
	Count int    `json:"count"`
}

// Normalize converts ordered ballot counts into percentages of their total.
// The order of counts is kept. A zero total yields empty shares.
func Normalize(counts []PartyCount) Shares {
	total := 0
	for _, pc := range counts {
		if pc.Count > 0 {
			total += pc.Count
		}
	}

	shares := Shares{}
	if total == 0 {
		return shares
	}

	for _, pc := range counts {
		if pc.Count <= 0 {
			continue
		}
		shares = append(shares, PartyShare{
			Party: pc.Party,
			Share: float64(pc.Count) / float64(total) * 100,
		})
	}
	return shares
}
