package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlemaire/savate-tournament/brackets"
	"github.com/tlemaire/savate-tournament/models"
)

func TestGenerateRefusesWhenMatchesExist(t *testing.T) {
	matchRepo := newFakeMatchRepo(&models.Match{ID: 1, TournamentID: 1, Kind: models.MatchKindPool})
	svc := NewScheduleService(nil, newFakeTournamentRepo(1), newFakeFighterRepo(), matchRepo, nil)

	_, err := svc.Generate(context.Background(), 1, false)

	assert.ErrorIs(t, err, ErrMatchesAlreadyExist)
}

func TestGenerateUnknownTournament(t *testing.T) {
	svc := NewScheduleService(nil, newFakeTournamentRepo(), newFakeFighterRepo(), newFakeMatchRepo(), nil)

	_, err := svc.Generate(context.Background(), 42, false)

	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestWriteScheduleLinksStayWithinCategory(t *testing.T) {
	leger := "Léger (56-60kg)"
	lourd := "Lourd (+85kg)"
	roster := []*models.Fighter{
		enrolledFighter(1, leger),
		enrolledFighter(2, leger),
		enrolledFighter(3, leger),
		enrolledFighter(4, leger),
		enrolledFighter(5, lourd),
		enrolledFighter(6, lourd),
		enrolledFighter(7, lourd),
		enrolledFighter(8, lourd),
	}
	matchRepo := newFakeMatchRepo()
	svc := &scheduleService{matchRepo: matchRepo}

	result, err := svc.writeSchedule(context.Background(), nil, 1, brackets.Generate(roster, 1), false)

	require.NoError(t, err)
	assert.Equal(t, 6, result.TotalMatches)
	assert.Equal(t, 4, result.LinksCreated)

	// Four fighters per category means two semifinals feeding one final.
	// Both semifinals of a weight class must point at that class's final
	// and never at the other class's.
	finalByWeight := make(map[string]int)
	for _, m := range matchRepo.matches {
		if m.IsFinale() {
			finalByWeight[m.WeightCategory] = m.ID
		}
	}
	require.Len(t, finalByWeight, 2)

	demis := 0
	for _, m := range matchRepo.matches {
		if !m.IsDemi() {
			continue
		}
		demis++
		require.NotNil(t, m.NextMatchID)
		assert.Equal(t, finalByWeight[m.WeightCategory], *m.NextMatchID)
	}
	assert.Equal(t, 4, demis)
}

func TestWriteScheduleWipeReplacesExistingSchedule(t *testing.T) {
	leger := "Léger (56-60kg)"
	pool := "A"
	matchRepo := newFakeMatchRepo(
		&models.Match{ID: 1, TournamentID: 1, Kind: models.MatchKindPool, PoolName: &pool, Status: models.MatchStatusPending},
		&models.Match{ID: 2, TournamentID: 2, Kind: models.MatchKindPool, PoolName: &pool, Status: models.MatchStatusPending},
	)
	svc := &scheduleService{matchRepo: matchRepo}
	roster := []*models.Fighter{enrolledFighter(1, leger), enrolledFighter(2, leger)}

	result, err := svc.writeSchedule(context.Background(), nil, 1, brackets.Generate(roster, 1), true)

	require.NoError(t, err)
	assert.Equal(t, []int{1}, matchRepo.wipes)
	assert.Equal(t, 1, result.TotalMatches)

	// The stale schedule is gone; the other tournament is untouched.
	_, staleKept := matchRepo.matches[1]
	assert.False(t, staleKept)
	_, otherKept := matchRepo.matches[2]
	assert.True(t, otherKept)
}

func TestWriteScheduleAbortsOnFailedCreate(t *testing.T) {
	leger := "Léger (56-60kg)"
	roster := []*models.Fighter{
		enrolledFighter(1, leger),
		enrolledFighter(2, leger),
		enrolledFighter(3, leger),
		enrolledFighter(4, leger),
	}
	matchRepo := newFakeMatchRepo()
	matchRepo.failCreateAt = 2
	matchRepo.createErr = assert.AnError
	svc := &scheduleService{matchRepo: matchRepo}

	_, err := svc.writeSchedule(context.Background(), nil, 1, brackets.Generate(roster, 1), false)

	require.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, matchRepo.linkUpdates)
}
