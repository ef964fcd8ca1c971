package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlemaire/savate-tournament/models"
)

func intPtr(v int) *int { return &v }

func enrolledFighter(id int, weightCat string) *models.Fighter {
	return &models.Fighter{
		ID:              id,
		FirstName:       "F",
		LastName:        "Test",
		Sex:             models.SexMale,
		WeightCategory:  weightCat,
		AgeCategory:     "Seniors",
		Gloves:          "bleu",
		CompetitionType: models.CompetitionTournoi,
	}
}

func TestCreateManualValidations(t *testing.T) {
	fighters := newFakeFighterRepo()
	fighters.byTournament[1] = []*models.Fighter{
		enrolledFighter(1, "Léger (56-60kg)"),
		enrolledFighter(2, "Léger (56-60kg)"),
		enrolledFighter(3, "Lourd (+85kg)"),
	}
	svc := NewMatchService(nil, newFakeMatchRepo(), fighters)

	tests := []struct {
		name    string
		f1, f2  int
		wantErr error
	}{
		{"missing second fighter", 1, 0, ErrMatchFightersRequired},
		{"missing first fighter", 0, 2, ErrMatchFightersRequired},
		{"fighter against themselves", 1, 1, ErrMatchSelfOpponent},
		{"opponent not enrolled", 1, 99, ErrFighterNotEnrolled},
		{"weight categories differ", 1, 3, ErrMatchWeightCategoryMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateManual(context.Background(), 1, tt.f1, tt.f2)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateManualSuccess(t *testing.T) {
	fighters := newFakeFighterRepo()
	fighters.byTournament[1] = []*models.Fighter{
		enrolledFighter(1, "Léger (56-60kg)"),
		enrolledFighter(2, "Léger (56-60kg)"),
	}
	matchRepo := newFakeMatchRepo()
	svc := NewMatchService(nil, matchRepo, fighters)

	match, err := svc.CreateManual(context.Background(), 1, 1, 2)

	require.NoError(t, err)
	require.NotNil(t, match.PoolName)
	assert.Equal(t, models.PoolManuel, *match.PoolName)
	assert.Equal(t, models.MatchKindPool, match.Kind)
	assert.True(t, match.Fighter2Manual)
	assert.Equal(t, 999, match.DisplayOrder)
	assert.Equal(t, "Léger (56-60kg)", match.WeightCategory)
	assert.Len(t, matchRepo.matches, 1)
}

func TestSetSecondFighter(t *testing.T) {
	fighters := newFakeFighterRepo()
	fighters.byTournament[1] = []*models.Fighter{
		enrolledFighter(1, "Léger (56-60kg)"),
		enrolledFighter(2, "Léger (56-60kg)"),
	}
	round := models.RoundFinal
	matchRepo := newFakeMatchRepo(&models.Match{
		ID:           5,
		TournamentID: 1,
		Fighter1ID:   intPtr(1),
		Kind:         models.MatchKindBracket,
		BracketRound: &round,
		Status:       models.MatchStatusPending,
	})
	svc := NewMatchService(nil, matchRepo, fighters)

	match, err := svc.SetSecondFighter(context.Background(), 5, 2)

	require.NoError(t, err)
	require.NotNil(t, match.Fighter2ID)
	assert.Equal(t, 2, *match.Fighter2ID)
	assert.True(t, match.Fighter2Manual)
	require.Len(t, matchRepo.slotUpdates, 1)
	assert.Equal(t, slotUpdate{matchID: 5, slot: 2, fighterID: 2, manual: true}, matchRepo.slotUpdates[0])
}

func TestSetSecondFighterRejections(t *testing.T) {
	fighters := newFakeFighterRepo()
	fighters.byTournament[1] = []*models.Fighter{
		enrolledFighter(1, "Léger (56-60kg)"),
		enrolledFighter(2, "Léger (56-60kg)"),
	}
	matchRepo := newFakeMatchRepo(
		&models.Match{ID: 5, TournamentID: 1, Fighter1ID: intPtr(1), Status: models.MatchStatusPending},
		&models.Match{ID: 6, TournamentID: 1, Fighter1ID: intPtr(1), Fighter2ID: intPtr(2), Status: models.MatchStatusPending},
	)
	svc := NewMatchService(nil, matchRepo, fighters)

	tests := []struct {
		name      string
		matchID   int
		fighterID int
		wantErr   error
	}{
		{"unknown match", 99, 2, ErrMatchNotFound},
		{"already paired", 6, 2, ErrMatchAlreadyPaired},
		{"same fighter in both corners", 5, 1, ErrMatchSelfOpponent},
		{"fighter not enrolled", 5, 42, ErrFighterNotEnrolled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetSecondFighter(context.Background(), tt.matchID, tt.fighterID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, matchRepo.slotUpdates)
}

func TestStatsCountsByStatusAndKind(t *testing.T) {
	leger := "Léger (56-60kg)"
	lourd := "Lourd (+85kg)"
	pool := "A"
	manuel := models.PoolManuel
	round := models.RoundFinal
	matchRepo := newFakeMatchRepo(
		&models.Match{ID: 1, TournamentID: 1, Kind: models.MatchKindPool, PoolName: &pool, Status: models.MatchStatusPending, Sex: models.SexMale, WeightCategory: leger},
		&models.Match{ID: 2, TournamentID: 1, Kind: models.MatchKindPool, PoolName: &pool, Status: models.MatchStatusCompleted, Sex: models.SexMale, WeightCategory: leger},
		&models.Match{ID: 3, TournamentID: 1, Kind: models.MatchKindBracket, BracketRound: &round, Status: models.MatchStatusForfeit, Sex: models.SexMale, WeightCategory: lourd},
		&models.Match{ID: 4, TournamentID: 1, Kind: models.MatchKindPool, PoolName: &manuel, Status: models.MatchStatusPending, Sex: models.SexMale, WeightCategory: leger},
		&models.Match{ID: 5, TournamentID: 2, Kind: models.MatchKindPool, PoolName: &pool, Status: models.MatchStatusPending, Sex: models.SexMale, WeightCategory: leger},
	)
	fighters := newFakeFighterRepo()
	fighters.byTournament[1] = []*models.Fighter{
		enrolledFighter(1, leger),
		enrolledFighter(2, leger),
		enrolledFighter(3, leger),
		enrolledFighter(4, lourd),
	}
	svc := NewMatchService(nil, matchRepo, fighters)

	stats, err := svc.Stats(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Forfeit)
	assert.Equal(t, 1, stats.Brackets)
	assert.Equal(t, 2, stats.Pools)
	assert.Equal(t, 1, stats.Manual)

	require.Len(t, stats.Categories, 2)
	assert.Equal(t, CategoryStat{Sex: models.SexMale, WeightCategory: leger, Fighters: 3, Matches: 3}, stats.Categories[0])
	assert.Equal(t, CategoryStat{Sex: models.SexMale, WeightCategory: lourd, Fighters: 1, Matches: 1}, stats.Categories[1])
}

func TestRunningOrderReproducible(t *testing.T) {
	fighters := newFakeFighterRepo()
	fighters.byTournament[1] = []*models.Fighter{
		enrolledFighter(1, "Léger (56-60kg)"),
		enrolledFighter(2, "Léger (56-60kg)"),
		enrolledFighter(3, "Léger (56-60kg)"),
	}
	pool := "A"
	matchRepo := newFakeMatchRepo(
		&models.Match{ID: 1, TournamentID: 1, Fighter1ID: intPtr(1), Fighter2ID: intPtr(2), Kind: models.MatchKindPool, PoolName: &pool, Status: models.MatchStatusPending},
		&models.Match{ID: 2, TournamentID: 1, Fighter1ID: intPtr(2), Fighter2ID: intPtr(3), Kind: models.MatchKindPool, PoolName: &pool, Status: models.MatchStatusPending},
		&models.Match{ID: 3, TournamentID: 1, Fighter1ID: intPtr(1), Fighter2ID: intPtr(3), Kind: models.MatchKindPool, PoolName: &pool, Status: models.MatchStatusPending},
	)
	svc := NewMatchService(nil, matchRepo, fighters)

	first, err := svc.RunningOrder(context.Background(), 1, 2, 42)
	require.NoError(t, err)
	second, err := svc.RunningOrder(context.Background(), 1, 2, 42)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Match.ID, second[i].Match.ID)
	}

	// Fighter relations come back attached for display.
	require.NotNil(t, first[0].Match.Fighter1)
}

func TestDirectWinnersThroughService(t *testing.T) {
	fighters := newFakeFighterRepo()
	fighters.byTournament[1] = []*models.Fighter{enrolledFighter(1, "Lourd (+85kg)")}
	round := models.RoundFinal
	matchRepo := newFakeMatchRepo(&models.Match{
		ID:           1,
		TournamentID: 1,
		Fighter1ID:   intPtr(1),
		Kind:         models.MatchKindBracket,
		BracketRound: &round,
		Status:       models.MatchStatusPending,
	})
	svc := NewMatchService(nil, matchRepo, fighters)

	winners, err := svc.DirectWinners(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, 1, winners[0].Fighter.ID)
	assert.Equal(t, "solo", winners[0].Source)
}
