package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tlemaire/savate-tournament/brackets"
	"github.com/tlemaire/savate-tournament/models"
)

func TestRecordResultValidationRunsBeforeAnyWrite(t *testing.T) {
	matchRepo := newFakeMatchRepo(&models.Match{
		ID:           1,
		TournamentID: 1,
		Fighter1ID:   intPtr(1),
		Fighter2ID:   intPtr(2),
		Kind:         models.MatchKindBracket,
		Status:       models.MatchStatusPending,
	})
	svc := NewResultService(nil, matchRepo, nil)

	tests := []struct {
		name     string
		winnerID *int
		status   models.MatchStatus
		wantErr  error
	}{
		{"winner is not a participant", intPtr(99), models.MatchStatusCompleted, brackets.ErrWinnerNotParticipant},
		{"status stays pending", intPtr(1), models.MatchStatusPending, brackets.ErrInvalidResultStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordResult(context.Background(), 1, tt.winnerID, tt.status)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// The nil db would panic on BeginTx; reaching this assertion proves
	// rejected results never open a transaction.
	assert.Empty(t, matchRepo.resultUpdates)
	assert.Empty(t, matchRepo.slotUpdates)
}

func TestRecordResultUnknownMatch(t *testing.T) {
	svc := NewResultService(nil, newFakeMatchRepo(), nil)

	_, err := svc.RecordResult(context.Background(), 1, nil, models.MatchStatusCompleted)

	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestRecordResultAlreadyDecided(t *testing.T) {
	matchRepo := newFakeMatchRepo(&models.Match{
		ID:         1,
		Fighter1ID: intPtr(1),
		Fighter2ID: intPtr(2),
		Kind:       models.MatchKindBracket,
		Status:     models.MatchStatusCompleted,
	})
	svc := NewResultService(nil, matchRepo, nil)

	_, err := svc.RecordResult(context.Background(), 1, intPtr(1), models.MatchStatusCompleted)

	assert.ErrorIs(t, err, brackets.ErrMatchAlreadyDecided)
}
