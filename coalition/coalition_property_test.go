// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coalition

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// sharesOf names generated values P0, P1, ... in order
func sharesOf(values []float64) Shares {
	shares := make(Shares, len(values))
	for i, v := range values {
		shares[i] = PartyShare{Party: fmt.Sprintf("P%d", i), Share: v}
	}
	return shares
}

func propertyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	// Triples grow with n³; ballots rarely list more than a dozen parties
	parameters.MaxSize = 12
	return parameters
}

// qualifies checks one coalition against the input it came from
func qualifies(c Coalition, shares Shares, size int, threshold float64) bool {
	if c.Size() != size {
		return false
	}

	seen := make(map[string]bool)
	sum := 0.0
	for _, party := range c.Parties {
		if seen[party] {
			return false
		}
		seen[party] = true

		share, ok := shares.Lookup(party)
		if !ok {
			return false
		}
		sum += share
	}

	return sum == c.Share && c.Share >= threshold
}

func descending(coalitions []Coalition) bool {
	for i := 1; i < len(coalitions); i++ {
		if coalitions[i-1].Share < coalitions[i].Share {
			return false
		}
	}
	return true
}

func unique(coalitions []Coalition) bool {
	seen := make(map[string]bool)
	for _, c := range coalitions {
		names := append([]string(nil), c.Parties...)
		sort.Strings(names)
		key := strings.Join(names, "\x00")
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}

// bruteForceCount counts qualifying combinations without building them
func bruteForceCount(shares Shares, threshold float64) (pairs, triples int) {
	n := len(shares)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if shares[i].Share+shares[j].Share >= threshold {
				pairs++
			}
			for k := j + 1; k < n; k++ {
				if shares[i].Share+shares[j].Share+shares[k].Share >= threshold {
					triples++
				}
			}
		}
	}
	return pairs, triples
}

func TestFind_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	sharesGen := gen.SliceOf(gen.Float64Range(0, 40))
	thresholdGen := gen.Float64Range(-10, 110)

	properties.Property("every coalition has distinct members reaching the threshold", prop.ForAll(
		func(values []float64, threshold float64) bool {
			shares := sharesOf(values)
			result := Find(shares, threshold)

			for _, c := range result.Pairs {
				if !qualifies(c, shares, 2, threshold) {
					t.Logf("bad pair %v for threshold %f", c, threshold)
					return false
				}
			}
			for _, c := range result.Triples {
				if !qualifies(c, shares, 3, threshold) {
					t.Logf("bad triple %v for threshold %f", c, threshold)
					return false
				}
			}
			return true
		},
		sharesGen, thresholdGen,
	))

	properties.Property("results are sorted by descending share", prop.ForAll(
		func(values []float64, threshold float64) bool {
			result := Find(sharesOf(values), threshold)
			return descending(result.Pairs) && descending(result.Triples)
		},
		sharesGen, thresholdGen,
	))

	properties.Property("no coalition appears twice", prop.ForAll(
		func(values []float64, threshold float64) bool {
			result := Find(sharesOf(values), threshold)
			return unique(result.Pairs) && unique(result.Triples)
		},
		sharesGen, thresholdGen,
	))

	properties.Property("every qualifying combination is found", prop.ForAll(
		func(values []float64, threshold float64) bool {
			shares := sharesOf(values)
			result := Find(shares, threshold)
			pairs, triples := bruteForceCount(shares, threshold)
			return len(result.Pairs) == pairs && len(result.Triples) == triples
		},
		sharesGen, thresholdGen,
	))

	properties.Property("find is idempotent", prop.ForAll(
		func(values []float64, threshold float64) bool {
			shares := sharesOf(values)
			return cmp.Equal(Find(shares, threshold), Find(shares, threshold))
		},
		sharesGen, thresholdGen,
	))

	properties.Property("ties keep generation order", prop.ForAll(
		func(n int) bool {
			// All parties equal: every triple ties, so output must equal i<j<k order
			values := make([]float64, n)
			for i := range values {
				values[i] = 10
			}
			shares := sharesOf(values)
			result := Find(shares, 30)

			idx := 0
			for i := 0; i < n; i++ {
				for j := i + 1; j < n; j++ {
					for k := j + 1; k < n; k++ {
						want := []string{shares[i].Party, shares[j].Party, shares[k].Party}
						if idx >= len(result.Triples) || !cmp.Equal(want, result.Triples[idx].Parties) {
							return false
						}
						idx++
					}
				}
			}
			return idx == len(result.Triples)
		},
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}
