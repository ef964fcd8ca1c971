package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlemaire/savate-tournament/models"
)

func TestFighterCreateValidation(t *testing.T) {
	svc := NewFighterService(newFakeFighterRepo())

	tests := []struct {
		name    string
		fighter *models.Fighter
		wantErr error
	}{
		{"missing name", &models.Fighter{Sex: models.SexMale, Weight: 60}, ErrFighterNameRequired},
		{"blank last name", &models.Fighter{FirstName: "Léa", LastName: "  ", Sex: models.SexFemale, Weight: 55}, ErrFighterNameRequired},
		{"invalid sex", &models.Fighter{FirstName: "A", LastName: "B", Sex: "X", Weight: 60}, ErrFighterInvalidSex},
		{"zero weight", &models.Fighter{FirstName: "A", LastName: "B", Sex: models.SexMale}, ErrFighterInvalidWeight},
		{"bad competition type", &models.Fighter{FirstName: "A", LastName: "B", Sex: models.SexMale, Weight: 60, CompetitionType: "AMICAL"}, ErrFighterInvalidCompetition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(context.Background(), tt.fighter)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFighterCreateClassifiesAndDefaults(t *testing.T) {
	svc := NewFighterService(newFakeFighterRepo())

	birthYear := time.Now().Year() - 25
	fighter := &models.Fighter{
		FirstName: "Jean",
		LastName:  "Martin",
		Sex:       models.SexMale,
		Weight:    58,
		BirthYear: &birthYear,
		ClubID:    1,
	}

	err := svc.Create(context.Background(), fighter)

	require.NoError(t, err)
	assert.Equal(t, models.CompetitionTournoi, fighter.CompetitionType)
	assert.Equal(t, "Seniors", fighter.AgeCategory)
	assert.Equal(t, "Léger (56-60kg)", fighter.WeightCategory)
}
