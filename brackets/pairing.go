package brackets

import (
	"sort"

	"github.com/tlemaire/savate-tournament/models"
)

// smartPairing orders a group so that consecutive fighters make good
// opponents: sort by age category, then gloves grade, then club id, all
// ascending. Slicing the result into sequential pairs pushes fighters of
// differing age bracket, grade or club together first, which limits
// same-club and mismatched-experience bouts without a full matching
// search. Bounded-effort heuristic, not an optimality guarantee.
func smartPairing(fighters []*models.Fighter) []*models.Fighter {
	sorted := make([]*models.Fighter, len(fighters))
	copy(sorted, fighters)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.AgeCategory != b.AgeCategory {
			return a.AgeCategory < b.AgeCategory
		}
		if a.Gloves != b.Gloves {
			return a.Gloves < b.Gloves
		}
		return a.ClubID < b.ClubID
	})

	return sorted
}
