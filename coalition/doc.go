// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package coalition finds the party combinations that would hold a majority.

# Input

Vote shares are an ordered slice of party percentages, normally built from
ballot counts with Normalize:

	shares := coalition.Normalize([]coalition.PartyCount{
		{Party: "CDU", Count: 40},
		{Party: "SPD", Count: 30},
	})

The order is significant: every coalition lists its parties in input order.

# Search

Find enumerates all 2-party and 3-party combinations and keeps those whose
summed share is at least the threshold:

	result := coalition.Find(shares, coalition.DefaultThreshold)
	for _, c := range result.Pairs {
		fmt.Println(c.Label()) // "CDU + SPD (70.0%)"
	}

Both lists are sorted by descending share. The sort is stable, so coalitions
with equal shares stay in generation order. No majority is not an error:
the list is simply empty.

Parties with a negative, NaN or infinite share are ignored, as are repeated
party names after their first occurrence.

# Breakdown

Breakdown returns the members' individual shares plus an "Opposition" entry
for the remainder, which is what a coalition pie chart shows.
*/
package coalition
