package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tlemaire/savate-tournament/models"
	"github.com/tlemaire/savate-tournament/repositories"
)

type TournamentService interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	GetDetail(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context) ([]*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error

	Enroll(ctx context.Context, tournamentID, fighterID int) error
	Withdraw(ctx context.Context, tournamentID, fighterID int) error
	ListFighters(ctx context.Context, tournamentID int) ([]*models.Fighter, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	fighterRepo    repositories.FighterRepository
	matchRepo      repositories.MatchRepository
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	fighterRepo repositories.FighterRepository,
	matchRepo repositories.MatchRepository,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		fighterRepo:    fighterRepo,
		matchRepo:      matchRepo,
	}
}

func (s *tournamentService) Create(ctx context.Context, t *models.Tournament) error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrTournamentNameRequired
	}
	return mapTournamentRepoError(s.tournamentRepo.Create(ctx, t))
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}
	return t, nil
}

// GetDetail loads a tournament with its roster and its matches, fighter
// relations attached. Roster and matches are fetched in parallel.
func (s *tournamentService) GetDetail(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentRepoError(err)
	}

	var fighters []*models.Fighter
	var matches []*models.Match

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fighters, err = s.fighterRepo.ListByTournament(gCtx, id)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gCtx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	AttachFighters(matches, fighters)

	t.Fighters = make([]models.Fighter, len(fighters))
	for i, f := range fighters {
		t.Fighters[i] = *f
	}
	t.Matches = make([]models.Match, len(matches))
	for i, m := range matches {
		t.Matches[i] = *m
	}
	return t, nil
}

func (s *tournamentService) List(ctx context.Context) ([]*models.Tournament, error) {
	return s.tournamentRepo.List(ctx)
}

func (s *tournamentService) Update(ctx context.Context, t *models.Tournament) error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrTournamentNameRequired
	}
	return mapTournamentRepoError(s.tournamentRepo.Update(ctx, t))
}

func (s *tournamentService) Delete(ctx context.Context, id int) error {
	return mapTournamentRepoError(s.tournamentRepo.Delete(ctx, id))
}

func (s *tournamentService) Enroll(ctx context.Context, tournamentID, fighterID int) error {
	return mapTournamentRepoError(s.tournamentRepo.Enroll(ctx, tournamentID, fighterID))
}

func (s *tournamentService) Withdraw(ctx context.Context, tournamentID, fighterID int) error {
	return mapTournamentRepoError(s.tournamentRepo.Withdraw(ctx, tournamentID, fighterID))
}

func (s *tournamentService) ListFighters(ctx context.Context, tournamentID int) ([]*models.Fighter, error) {
	return s.fighterRepo.ListByTournament(ctx, tournamentID)
}

// AttachFighters resolves the fighter relations of each match against an
// already-loaded roster, avoiding a join per match row.
func AttachFighters(matches []*models.Match, fighters []*models.Fighter) {
	byID := make(map[int]*models.Fighter, len(fighters))
	for _, f := range fighters {
		byID[f.ID] = f
	}
	for _, m := range matches {
		if m.Fighter1ID != nil {
			m.Fighter1 = byID[*m.Fighter1ID]
		}
		if m.Fighter2ID != nil {
			m.Fighter2 = byID[*m.Fighter2ID]
		}
		if m.WinnerID != nil {
			m.Winner = byID[*m.WinnerID]
		}
	}
}

func mapTournamentRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentNameConflict):
		return ErrTournamentNameConflict
	case errors.Is(err, repositories.ErrEnrollmentConflict):
		return ErrFighterAlreadyEnrolled
	case errors.Is(err, repositories.ErrEnrollmentFighterInvalid):
		return ErrFighterNotFound
	case errors.Is(err, repositories.ErrEnrollmentNotFound):
		return ErrFighterNotEnrolled
	case errors.Is(err, repositories.ErrEnrollmentTournoiInvalid):
		return ErrTournamentNotFound
	default:
		return err
	}
}
