package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlemaire/savate-tournament/models"
)

func testFighter(id int, sex models.Sex, weightCat string) *models.Fighter {
	return &models.Fighter{
		ID:              id,
		FirstName:       "F",
		LastName:        "Test",
		Sex:             sex,
		Weight:          60,
		WeightCategory:  weightCat,
		AgeCategory:     "Seniors",
		Gloves:          "bleu",
		CompetitionType: models.CompetitionTournoi,
		ClubID:          1,
	}
}

func testRoster(n int, sex models.Sex, weightCat string) []*models.Fighter {
	fighters := make([]*models.Fighter, n)
	for i := range fighters {
		fighters[i] = testFighter(i+1, sex, weightCat)
	}
	return fighters
}

func countKinds(matches []MatchDescriptor) (brackets, pools int) {
	for _, m := range matches {
		switch m.Kind {
		case models.MatchKindBracket:
			brackets++
		case models.MatchKindPool:
			pools++
		}
	}
	return brackets, pools
}

func TestGenerateSizePolicies(t *testing.T) {
	tests := []struct {
		name         string
		n            int
		wantTotal    int
		wantBrackets int
		wantPools    int
	}{
		{"single fighter gets a solo final", 1, 1, 1, 0},
		{"two fighters fight a final", 2, 1, 1, 0},
		{"three fighters round-robin", 3, 3, 0, 3},
		{"four fighters get semis and final", 4, 3, 3, 0},
		{"five fighters get two pools and hybrid placeholders", 5, 7, 0, 7},
		{"six fighters get two pools and a final placeholder", 6, 7, 0, 7},
		{"seven fighters get uneven pools, no final", 7, 9, 0, 9},
		{"eight fighters get a full quarter bracket", 8, 7, 7, 0},
		{"nine fighters split into three pools", 9, 9, 0, 9},
		{"twelve fighters split into three pools of four", 12, 18, 0, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := Generate(testRoster(tt.n, models.SexMale, "Léger (56-60kg)"), 1)
			require.Len(t, matches, tt.wantTotal)

			brackets, pools := countKinds(matches)
			assert.Equal(t, tt.wantBrackets, brackets)
			assert.Equal(t, tt.wantPools, pools)
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	roster := testRoster(8, models.SexMale, "Moyen (75-80kg)")

	first := Generate(roster, 1)
	second := Generate(roster, 1)

	assert.Equal(t, first, second)
}

func TestGenerateEveryFighterPlaced(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 6, 7, 8, 9, 13} {
		roster := testRoster(n, models.SexFemale, "Coq (48-52kg)")
		matches := Generate(roster, 1)

		seen := make(map[int]bool)
		for _, m := range matches {
			if m.Fighter1ID != nil {
				seen[*m.Fighter1ID] = true
			}
			if m.Fighter2ID != nil {
				seen[*m.Fighter2ID] = true
			}
		}
		for _, f := range roster {
			assert.True(t, seen[f.ID], "size %d: fighter %d missing from schedule", n, f.ID)
		}
	}
}

func TestGenerateSingleFighterSoloFinal(t *testing.T) {
	matches := Generate(testRoster(1, models.SexMale, "Lourd (+85kg)"), 7)

	require.Len(t, matches, 1)
	m := matches[0]
	assert.Equal(t, models.MatchKindBracket, m.Kind)
	require.NotNil(t, m.BracketRound)
	assert.Equal(t, models.RoundFinal, *m.BracketRound)
	require.NotNil(t, m.Fighter1ID)
	assert.Equal(t, 1, *m.Fighter1ID)
	assert.Nil(t, m.Fighter2ID)
	assert.Equal(t, 7, m.TournamentID)
}

func TestGenerateFivePlaceholderNames(t *testing.T) {
	matches := Generate(testRoster(5, models.SexMale, "Plume (52-56kg)"), 1)

	var placeholders []string
	for _, m := range matches {
		if m.Fighter1ID == nil && m.Fighter2ID == nil {
			require.NotNil(t, m.PoolName)
			placeholders = append(placeholders, *m.PoolName)
		}
	}
	assert.Equal(t, []string{models.PoolDemi1, models.PoolDemi2, models.PoolFinale}, placeholders)
}

func TestGenerateSixFinalPlaceholder(t *testing.T) {
	matches := Generate(testRoster(6, models.SexMale, "Plume (52-56kg)"), 1)

	pools := make(map[string]int)
	placeholders := 0
	for _, m := range matches {
		require.NotNil(t, m.PoolName)
		pools[*m.PoolName]++
		if m.Fighter1ID == nil && m.Fighter2ID == nil {
			placeholders++
			assert.Equal(t, models.PoolFinale, *m.PoolName)
		}
	}
	assert.Equal(t, 3, pools["A"])
	assert.Equal(t, 3, pools["B"])
	assert.Equal(t, 1, pools[models.PoolFinale])
	assert.Equal(t, 1, placeholders)
}

func TestGenerateLargePoolNames(t *testing.T) {
	matches := Generate(testRoster(9, models.SexMale, "Léger (56-60kg)"), 1)

	pools := make(map[string]bool)
	for _, m := range matches {
		require.NotNil(t, m.PoolName)
		pools[*m.PoolName] = true
	}
	assert.Equal(t, map[string]bool{"A": true, "B": true, "C": true}, pools)
}

func TestGenerateSeparatesSexes(t *testing.T) {
	roster := append(
		testRoster(2, models.SexMale, "Léger (56-60kg)"),
		&models.Fighter{ID: 10, Sex: models.SexFemale, WeightCategory: "Léger (56-60kg)", AgeCategory: "Seniors"},
		&models.Fighter{ID: 11, Sex: models.SexFemale, WeightCategory: "Léger (56-60kg)", AgeCategory: "Seniors"},
	)

	matches := Generate(roster, 1)
	require.Len(t, matches, 2)
	assert.Equal(t, models.SexMale, matches[0].Category.Sex)
	assert.Equal(t, models.SexFemale, matches[1].Category.Sex)
}

func TestSmartPairingGroupsLikeWithLike(t *testing.T) {
	// Two cadets and two seniors shuffled together: each semifinal should
	// pair within the same age category.
	group := CategoryGroup{
		Sex:            models.SexMale,
		WeightCategory: "Léger (56-60kg)",
		Fighters: []*models.Fighter{
			{ID: 1, AgeCategory: "Seniors", Gloves: "bleu", ClubID: 1},
			{ID: 2, AgeCategory: "Cadets", Gloves: "bleu", ClubID: 2},
			{ID: 3, AgeCategory: "Seniors", Gloves: "bleu", ClubID: 3},
			{ID: 4, AgeCategory: "Cadets", Gloves: "bleu", ClubID: 4},
		},
	}

	matches := planSemisAndFinal(group, 1)
	require.Len(t, matches, 3)

	demi1 := matches[0]
	demi2 := matches[1]
	assert.ElementsMatch(t, []int{2, 4}, []int{*demi1.Fighter1ID, *demi1.Fighter2ID})
	assert.ElementsMatch(t, []int{1, 3}, []int{*demi2.Fighter1ID, *demi2.Fighter2ID})
}

func TestRoundRobinEmitsEveryPairOnce(t *testing.T) {
	pool := testRoster(4, models.SexMale, "Léger (56-60kg)")
	order := 0
	matches := roundRobin(pool, CategoryInfo{}, 1, "A", &order)

	require.Len(t, matches, 6)
	assert.Equal(t, 6, order)

	type pair struct{ a, b int }
	seen := make(map[pair]bool)
	for _, m := range matches {
		p := pair{*m.Fighter1ID, *m.Fighter2ID}
		assert.False(t, seen[p], "duplicate pair %v", p)
		seen[p] = true
	}
}

func TestSplitIntoPools(t *testing.T) {
	tests := []struct {
		n         int
		wantSizes []int
	}{
		{9, []int{3, 3, 3}},
		{10, []int{4, 3, 3}},
		{11, []int{4, 4, 3}},
		{12, []int{4, 4, 4}},
		{13, []int{4, 3, 3, 3}},
	}

	for _, tt := range tests {
		pools := splitIntoPools(testRoster(tt.n, models.SexMale, "x"))
		sizes := make([]int, len(pools))
		for i, p := range pools {
			sizes[i] = len(p)
		}
		assert.Equal(t, tt.wantSizes, sizes, "n=%d", tt.n)
	}
}

func TestGroupByCategoryDisjointAndOrdered(t *testing.T) {
	roster := []*models.Fighter{
		{ID: 1, Sex: models.SexMale, WeightCategory: "Léger (56-60kg)"},
		{ID: 2, Sex: models.SexFemale, WeightCategory: "Coq (48-52kg)"},
		{ID: 3, Sex: models.SexMale, WeightCategory: "Léger (56-60kg)"},
		{ID: 4, Sex: models.SexMale, WeightCategory: "Coq (48-52kg)"},
	}

	groups := GroupByCategory(roster)
	require.Len(t, groups, 3)

	assert.Equal(t, models.SexMale, groups[0].Sex)
	assert.Equal(t, "Léger (56-60kg)", groups[0].WeightCategory)
	assert.Len(t, groups[0].Fighters, 2)

	assert.Equal(t, models.SexFemale, groups[1].Sex)
	assert.Len(t, groups[1].Fighters, 1)

	assert.Equal(t, models.SexMale, groups[2].Sex)
	assert.Equal(t, "Coq (48-52kg)", groups[2].WeightCategory)

	total := 0
	for _, g := range groups {
		total += len(g.Fighters)
	}
	assert.Equal(t, len(roster), total)
}

func TestGenerateEmptyRoster(t *testing.T) {
	assert.Empty(t, Generate(nil, 1))
}
