package services

import (
	"context"
	"errors"
	"strings"

	"github.com/tlemaire/savate-tournament/categories"
	"github.com/tlemaire/savate-tournament/models"
	"github.com/tlemaire/savate-tournament/repositories"
)

type FighterService interface {
	Create(ctx context.Context, fighter *models.Fighter) error
	GetByID(ctx context.Context, id int) (*models.Fighter, error)
	List(ctx context.Context, clubID *int, sex *models.Sex) ([]*models.Fighter, error)
	Update(ctx context.Context, fighter *models.Fighter) error
	Delete(ctx context.Context, id int) error
}

type fighterService struct {
	fighterRepo repositories.FighterRepository
}

func NewFighterService(fighterRepo repositories.FighterRepository) FighterService {
	return &fighterService{fighterRepo: fighterRepo}
}

func (s *fighterService) Create(ctx context.Context, fighter *models.Fighter) error {
	if err := validateFighter(fighter); err != nil {
		return err
	}
	categories.Classify(fighter)
	return mapFighterRepoError(s.fighterRepo.Create(ctx, fighter))
}

func (s *fighterService) GetByID(ctx context.Context, id int) (*models.Fighter, error) {
	fighter, err := s.fighterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapFighterRepoError(err)
	}
	return fighter, nil
}

func (s *fighterService) List(ctx context.Context, clubID *int, sex *models.Sex) ([]*models.Fighter, error) {
	return s.fighterRepo.List(ctx, clubID, sex)
}

func (s *fighterService) Update(ctx context.Context, fighter *models.Fighter) error {
	if err := validateFighter(fighter); err != nil {
		return err
	}
	// Weight or birth year may have changed; the labels follow.
	categories.Classify(fighter)
	return mapFighterRepoError(s.fighterRepo.Update(ctx, fighter))
}

func (s *fighterService) Delete(ctx context.Context, id int) error {
	return mapFighterRepoError(s.fighterRepo.Delete(ctx, id))
}

func validateFighter(f *models.Fighter) error {
	if strings.TrimSpace(f.FirstName) == "" || strings.TrimSpace(f.LastName) == "" {
		return ErrFighterNameRequired
	}
	if f.Sex != models.SexMale && f.Sex != models.SexFemale {
		return ErrFighterInvalidSex
	}
	if f.Weight <= 0 {
		return ErrFighterInvalidWeight
	}
	if f.CompetitionType == "" {
		f.CompetitionType = models.CompetitionTournoi
	}
	if f.CompetitionType != models.CompetitionTournoi && f.CompetitionType != models.CompetitionInterclub {
		return ErrFighterInvalidCompetition
	}
	return nil
}

func mapFighterRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrFighterNotFound):
		return ErrFighterNotFound
	case errors.Is(err, repositories.ErrFighterClubInvalid):
		return ErrClubNotFound
	case errors.Is(err, repositories.ErrFighterInMatches):
		return ErrFighterInMatches
	default:
		return err
	}
}
