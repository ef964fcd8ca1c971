package brackets

import "github.com/tlemaire/savate-tournament/models"

// CategoryInfo is the category descriptor stamped on every generated match.
type CategoryInfo struct {
	Sex            models.Sex
	AgeCategory    string
	WeightCategory string
	Gloves         string
	Display        string
}

// MatchDescriptor is one unlinked, unpersisted match produced by the
// generator. Callers persist the descriptors, then run LinkBrackets over
// the assigned ids.
type MatchDescriptor struct {
	TournamentID int
	Fighter1ID   *int
	Fighter2ID   *int

	Kind     models.MatchKind
	Category CategoryInfo

	BracketRound    *models.BracketRound
	BracketPosition *int
	PoolName        *string

	DisplayOrder int
}

// planFunc builds the match set for one category group of a known size.
type planFunc func(g CategoryGroup, tournamentID int) []MatchDescriptor

// Structure policy keyed on category population. Sizes above 8 fall back
// to planLargePools.
var plans = map[int]planFunc{
	1: planDirectWinner,
	2: planFinalOnly,
	3: planSinglePool,
	4: planSemisAndFinal,
	5: planTwoPoolsWithSemis,
	6: planTwoPoolsWithFinal,
	7: planUnevenPools,
	8: planQuarterBracket,
}

func planFor(n int) planFunc {
	if p, ok := plans[n]; ok {
		return p
	}
	return planLargePools
}

// Generate partitions the roster into category groups and applies the size
// policy to each. Pure and deterministic for a fixed input order: the
// smart-pairing sort removes most order sensitivity, remaining ties are
// broken by stable input order. An empty roster yields an empty schedule.
func Generate(fighters []*models.Fighter, tournamentID int) []MatchDescriptor {
	matches := make([]MatchDescriptor, 0)
	for _, group := range GroupByCategory(fighters) {
		matches = append(matches, planFor(len(group.Fighters))(group, tournamentID)...)
	}
	return matches
}

func intPtr(v int) *int {
	return &v
}

// categoryOf derives the display descriptor from the group's first fighter.
func categoryOf(g CategoryGroup) CategoryInfo {
	first := g.Fighters[0]
	return CategoryInfo{
		Sex:            g.Sex,
		AgeCategory:    first.AgeCategory,
		WeightCategory: g.WeightCategory,
		Gloves:         first.Gloves,
		Display:        g.WeightCategory,
	}
}

func bracketMatch(cat CategoryInfo, tournamentID int, f1, f2 *int, round models.BracketRound, position, order int) MatchDescriptor {
	return MatchDescriptor{
		TournamentID:    tournamentID,
		Fighter1ID:      f1,
		Fighter2ID:      f2,
		Kind:            models.MatchKindBracket,
		Category:        cat,
		BracketRound:    &round,
		BracketPosition: &position,
		DisplayOrder:    order,
	}
}

func poolMatch(cat CategoryInfo, tournamentID int, f1, f2 *int, poolName string, order int) MatchDescriptor {
	return MatchDescriptor{
		TournamentID: tournamentID,
		Fighter1ID:   f1,
		Fighter2ID:   f2,
		Kind:         models.MatchKindPool,
		Category:     cat,
		PoolName:     &poolName,
		DisplayOrder: order,
	}
}

// planDirectWinner records a lone fighter as the de-facto category winner:
// a single-slot final instead of silently dropping the category.
func planDirectWinner(g CategoryGroup, tournamentID int) []MatchDescriptor {
	cat := categoryOf(g)
	return []MatchDescriptor{
		bracketMatch(cat, tournamentID, intPtr(g.Fighters[0].ID), nil, models.RoundFinal, 0, 0),
	}
}

func planFinalOnly(g CategoryGroup, tournamentID int) []MatchDescriptor {
	cat := categoryOf(g)
	return []MatchDescriptor{
		bracketMatch(cat, tournamentID, intPtr(g.Fighters[0].ID), intPtr(g.Fighters[1].ID), models.RoundFinal, 0, 0),
	}
}

// planSinglePool: three fighters all meet each other in pool A.
func planSinglePool(g CategoryGroup, tournamentID int) []MatchDescriptor {
	cat := categoryOf(g)
	order := 0
	return roundRobin(g.Fighters, cat, tournamentID, "A", &order)
}

// planSemisAndFinal: two smart-paired semifinals plus a placeholder final
// filled later by winner propagation.
func planSemisAndFinal(g CategoryGroup, tournamentID int) []MatchDescriptor {
	cat := categoryOf(g)
	sorted := smartPairing(g.Fighters)
	return []MatchDescriptor{
		bracketMatch(cat, tournamentID, intPtr(sorted[0].ID), intPtr(sorted[1].ID), models.RoundDemi, 0, 0),
		bracketMatch(cat, tournamentID, intPtr(sorted[2].ID), intPtr(sorted[3].ID), models.RoundDemi, 1, 1),
		bracketMatch(cat, tournamentID, nil, nil, models.RoundFinal, 0, 2),
	}
}

// planTwoPoolsWithSemis: pool A of 3, pool B of 2, then placeholder
// cross-pool semifinals and a final, all filled by the operator once pool
// standings are known.
func planTwoPoolsWithSemis(g CategoryGroup, tournamentID int) []MatchDescriptor {
	cat := categoryOf(g)
	order := 0

	matches := roundRobin(g.Fighters[:3], cat, tournamentID, "A", &order)
	matches = append(matches, roundRobin(g.Fighters[3:], cat, tournamentID, "B", &order)...)

	for _, name := range []string{models.PoolDemi1, models.PoolDemi2, models.PoolFinale} {
		matches = append(matches, poolMatch(cat, tournamentID, nil, nil, name, order))
		order++
	}
	return matches
}

// planTwoPoolsWithFinal: two pools of 3 plus a placeholder final between
// the pool winners.
func planTwoPoolsWithFinal(g CategoryGroup, tournamentID int) []MatchDescriptor {
	cat := categoryOf(g)
	order := 0

	matches := roundRobin(g.Fighters[:3], cat, tournamentID, "A", &order)
	matches = append(matches, roundRobin(g.Fighters[3:], cat, tournamentID, "B", &order)...)
	matches = append(matches, poolMatch(cat, tournamentID, nil, nil, models.PoolFinale, order))
	return matches
}

// planUnevenPools: pool of 4 and pool of 3, no placeholder final; the
// operator decides the cross-pool final by hand.
func planUnevenPools(g CategoryGroup, tournamentID int) []MatchDescriptor {
	cat := categoryOf(g)
	order := 0

	matches := roundRobin(g.Fighters[:4], cat, tournamentID, "A", &order)
	return append(matches, roundRobin(g.Fighters[4:], cat, tournamentID, "B", &order)...)
}

// planQuarterBracket: four smart-paired quarterfinals, two placeholder
// semifinals and a placeholder final.
func planQuarterBracket(g CategoryGroup, tournamentID int) []MatchDescriptor {
	cat := categoryOf(g)
	sorted := smartPairing(g.Fighters)

	matches := make([]MatchDescriptor, 0, 7)
	for i := 0; i < 4; i++ {
		matches = append(matches, bracketMatch(cat, tournamentID,
			intPtr(sorted[i*2].ID), intPtr(sorted[i*2+1].ID), models.RoundQuart, i, i))
	}
	for i := 0; i < 2; i++ {
		matches = append(matches, bracketMatch(cat, tournamentID, nil, nil, models.RoundDemi, i, 4+i))
	}
	return append(matches, bracketMatch(cat, tournamentID, nil, nil, models.RoundFinal, 0, 6))
}

// planLargePools: categories above 8 fighters are split into round-robin
// pools of 3-4 named A, B, C, ...
func planLargePools(g CategoryGroup, tournamentID int) []MatchDescriptor {
	cat := categoryOf(g)
	order := 0

	matches := make([]MatchDescriptor, 0)
	for i, pool := range splitIntoPools(g.Fighters) {
		matches = append(matches, roundRobin(pool, cat, tournamentID, poolName(i), &order)...)
	}
	return matches
}
