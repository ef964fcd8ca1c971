package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/tlemaire/savate-tournament/brackets"
	"github.com/tlemaire/savate-tournament/models"
	"github.com/tlemaire/savate-tournament/repositories"
)

// Manual matches sort after every generated match.
const manualDisplayOrder = 999

// DefaultMinSpacing is the running-order gap a fighter gets between two of
// their bouts unless the caller asks otherwise.
const DefaultMinSpacing = 3

// MatchStats is the per-tournament schedule summary.
type MatchStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Forfeit   int `json:"forfeit"`
	Brackets  int `json:"brackets"`
	Pools     int `json:"pools"`
	Manual    int `json:"manual"`

	Categories []CategoryStat `json:"categories"`
}

// CategoryStat counts the fighters and matches of one (sex, weight) category.
type CategoryStat struct {
	Sex            models.Sex `json:"sex"`
	WeightCategory string     `json:"weight_category"`
	Fighters       int        `json:"fighters"`
	Matches        int        `json:"matches"`
}

type MatchService interface {
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)
	CreateManual(ctx context.Context, tournamentID, fighter1ID, fighter2ID int) (*models.Match, error)
	SetSecondFighter(ctx context.Context, matchID, fighterID int) (*models.Match, error)
	Delete(ctx context.Context, id int) error

	Stats(ctx context.Context, tournamentID int) (*MatchStats, error)
	DirectWinners(ctx context.Context, tournamentID int) ([]brackets.DirectWinner, error)
	RunningOrder(ctx context.Context, tournamentID, minSpacing int, seed int64) ([]brackets.SequenceItem, error)
}

type matchService struct {
	db          *sql.DB
	matchRepo   repositories.MatchRepository
	fighterRepo repositories.FighterRepository
}

func NewMatchService(db *sql.DB, matchRepo repositories.MatchRepository, fighterRepo repositories.FighterRepository) MatchService {
	return &matchService{db: db, matchRepo: matchRepo, fighterRepo: fighterRepo}
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}
	return match, nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	matches, fighters, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	AttachFighters(matches, fighters)
	return matches, nil
}

// CreateManual files an operator-arranged bout under the MANUEL pool. Both
// fighters must be enrolled and share a weight category.
func (s *matchService) CreateManual(ctx context.Context, tournamentID, fighter1ID, fighter2ID int) (*models.Match, error) {
	if fighter1ID == 0 || fighter2ID == 0 {
		return nil, ErrMatchFightersRequired
	}
	if fighter1ID == fighter2ID {
		return nil, ErrMatchSelfOpponent
	}

	roster, err := s.fighterRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	f1 := findFighter(roster, fighter1ID)
	f2 := findFighter(roster, fighter2ID)
	if f1 == nil || f2 == nil {
		return nil, ErrFighterNotEnrolled
	}
	if f1.WeightCategory != f2.WeightCategory {
		return nil, ErrMatchWeightCategoryMismatch
	}

	pool := models.PoolManuel
	match := &models.Match{
		TournamentID:    tournamentID,
		Fighter1ID:      &fighter1ID,
		Fighter2ID:      &fighter2ID,
		Kind:            models.MatchKindPool,
		Sex:             f1.Sex,
		AgeCategory:     f1.AgeCategory,
		WeightCategory:  f1.WeightCategory,
		Gloves:          f1.Gloves,
		CategoryDisplay: f1.WeightCategory,
		PoolName:        &pool,
		Status:          models.MatchStatusPending,
		Fighter2Manual:  true,
		DisplayOrder:    manualDisplayOrder,
	}
	if err := s.matchRepo.Create(ctx, s.db, match); err != nil {
		return nil, mapMatchRepoError(err)
	}

	match.Fighter1 = f1
	match.Fighter2 = f2
	return match, nil
}

// SetSecondFighter hand-fills the open slot of a single-fighter match, for
// example to give a lone direct winner an out-of-category opponent.
func (s *matchService) SetSecondFighter(ctx context.Context, matchID, fighterID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}

	if match.Fighter2ID != nil {
		return nil, ErrMatchAlreadyPaired
	}
	if match.Fighter1ID == nil {
		return nil, ErrMatchFightersRequired
	}
	if *match.Fighter1ID == fighterID {
		return nil, ErrMatchSelfOpponent
	}

	roster, err := s.fighterRepo.ListByTournament(ctx, match.TournamentID)
	if err != nil {
		return nil, err
	}
	if findFighter(roster, fighterID) == nil {
		return nil, ErrFighterNotEnrolled
	}

	if err := s.matchRepo.UpdateFighterSlot(ctx, s.db, matchID, 2, fighterID, true); err != nil {
		return nil, mapMatchRepoError(err)
	}

	match.Fighter2ID = &fighterID
	match.Fighter2Manual = true
	AttachFighters([]*models.Match{match}, roster)
	return match, nil
}

func (s *matchService) Delete(ctx context.Context, id int) error {
	return mapMatchRepoError(s.matchRepo.Delete(ctx, id))
}

func (s *matchService) Stats(ctx context.Context, tournamentID int) (*MatchStats, error) {
	matches, fighters, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	stats := &MatchStats{Total: len(matches), Categories: make([]CategoryStat, 0)}

	type catKey struct {
		sex    models.Sex
		weight string
	}
	catIndex := make(map[catKey]int)
	catAt := func(sex models.Sex, weight string) *CategoryStat {
		k := catKey{sex: sex, weight: weight}
		i, ok := catIndex[k]
		if !ok {
			i = len(stats.Categories)
			catIndex[k] = i
			stats.Categories = append(stats.Categories, CategoryStat{Sex: sex, WeightCategory: weight})
		}
		return &stats.Categories[i]
	}

	for _, f := range fighters {
		catAt(f.Sex, f.WeightCategory).Fighters++
	}
	for _, m := range matches {
		switch m.Status {
		case models.MatchStatusCompleted:
			stats.Completed++
		case models.MatchStatusForfeit:
			stats.Forfeit++
		default:
			stats.Pending++
		}
		switch {
		case m.IsManuel():
			stats.Manual++
		case m.Kind == models.MatchKindBracket:
			stats.Brackets++
		default:
			stats.Pools++
		}
		catAt(m.Sex, m.WeightCategory).Matches++
	}
	return stats, nil
}

func (s *matchService) DirectWinners(ctx context.Context, tournamentID int) ([]brackets.DirectWinner, error) {
	matches, fighters, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	AttachFighters(matches, fighters)
	return brackets.ExtractDirectWinners(matches), nil
}

// RunningOrder sequences a tournament's matches for the fight card. The
// same seed always yields the same order, so a printed card can be
// regenerated unchanged.
func (s *matchService) RunningOrder(ctx context.Context, tournamentID, minSpacing int, seed int64) ([]brackets.SequenceItem, error) {
	if minSpacing <= 0 {
		minSpacing = DefaultMinSpacing
	}

	matches, fighters, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	AttachFighters(matches, fighters)

	rng := rand.New(rand.NewSource(seed))
	return brackets.SequenceForDisplay(matches, minSpacing, rng), nil
}

func (s *matchService) loadTournament(ctx context.Context, tournamentID int) ([]*models.Match, []*models.Fighter, error) {
	var matches []*models.Match
	var fighters []*models.Fighter

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		fighters, err = s.fighterRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, nil, ErrTournamentNotFound
		}
		return nil, nil, fmt.Errorf("failed to load tournament %d schedule: %w", tournamentID, err)
	}
	return matches, fighters, nil
}

func findFighter(roster []*models.Fighter, id int) *models.Fighter {
	for _, f := range roster {
		if f.ID == id {
			return f
		}
	}
	return nil
}
