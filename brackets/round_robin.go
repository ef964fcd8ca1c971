package brackets

import "github.com/tlemaire/savate-tournament/models"

// roundRobin emits every unordered pair of the pool exactly once,
// k·(k-1)/2 matches in (i, i+1), (i, i+2), ... nested-loop order. The
// fixed order keeps the display reproducible. order is shared across
// pools of one category so display positions never collide.
func roundRobin(pool []*models.Fighter, cat CategoryInfo, tournamentID int, name string, order *int) []MatchDescriptor {
	matches := make([]MatchDescriptor, 0, len(pool)*(len(pool)-1)/2)
	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			matches = append(matches, poolMatch(cat, tournamentID, intPtr(pool[i].ID), intPtr(pool[j].ID), name, *order))
			*order++
		}
	}
	return matches
}

// splitIntoPools distributes fighters over ceil(n/4) pools of 3-4 by
// round-index modulo: fighter i goes to pool i mod numPools.
func splitIntoPools(fighters []*models.Fighter) [][]*models.Fighter {
	numPools := (len(fighters) + 3) / 4
	pools := make([][]*models.Fighter, numPools)
	for i, f := range fighters {
		pools[i%numPools] = append(pools[i%numPools], f)
	}
	return pools
}

// poolName yields A, B, C, ...
func poolName(i int) string {
	return string(rune('A' + i))
}
