package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tlemaire/savate-tournament/brackets"
	"github.com/tlemaire/savate-tournament/live"
	"github.com/tlemaire/savate-tournament/models"
	"github.com/tlemaire/savate-tournament/repositories"
)

// GenerateResult summarizes one schedule generation run.
type GenerateResult struct {
	TotalMatches   int `json:"total_matches"`
	BracketMatches int `json:"bracket_matches"`
	PoolMatches    int `json:"pool_matches"`
	Categories     int `json:"categories"`
	LinksCreated   int `json:"links_created"`
}

type ScheduleService interface {
	// Generate builds the full match schedule for a tournament from its
	// enrolled roster. When matches already exist it refuses unless
	// regenerate is set, in which case the existing schedule is replaced.
	Generate(ctx context.Context, tournamentID int, regenerate bool) (*GenerateResult, error)
}

type scheduleService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	fighterRepo    repositories.FighterRepository
	matchRepo      repositories.MatchRepository
	broadcaster    Broadcaster
}

func NewScheduleService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	fighterRepo repositories.FighterRepository,
	matchRepo repositories.MatchRepository,
	broadcaster Broadcaster,
) ScheduleService {
	if broadcaster == nil {
		broadcaster = NopBroadcaster{}
	}
	return &scheduleService{
		db:             db,
		tournamentRepo: tournamentRepo,
		fighterRepo:    fighterRepo,
		matchRepo:      matchRepo,
		broadcaster:    broadcaster,
	}
}

func (s *scheduleService) Generate(ctx context.Context, tournamentID int, regenerate bool) (*GenerateResult, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, mapTournamentRepoError(err)
	}

	existing, err := s.matchRepo.CountByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if existing > 0 && !regenerate {
		return nil, ErrMatchesAlreadyExist
	}

	roster, err := s.fighterRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	// Interclub-only fighters never enter the category draw; their bouts
	// are arranged by hand.
	eligible := make([]*models.Fighter, 0, len(roster))
	for _, f := range roster {
		if f.CompetitionType == models.CompetitionTournoi {
			eligible = append(eligible, f)
		}
	}

	descriptors := brackets.Generate(eligible, tournamentID)
	groups := brackets.GroupByCategory(eligible)

	result, err := s.persistSchedule(ctx, tournamentID, descriptors, regenerate && existing > 0)
	if err != nil {
		return nil, err
	}
	result.Categories = len(groups)

	s.broadcaster.BroadcastToRoom(live.RoomID(tournamentID), live.EventScheduleGenerated, result)
	return result, nil
}

// persistSchedule writes the generated matches and their bracket links in
// one transaction so a half-written schedule never becomes visible.
func (s *scheduleService) persistSchedule(ctx context.Context, tournamentID int, descriptors []brackets.MatchDescriptor, wipe bool) (*GenerateResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin schedule transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	result, err := s.writeSchedule(ctx, tx, tournamentID, descriptors, wipe)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit schedule transaction: %w", err)
	}
	committed = true
	return result, nil
}

// writeSchedule inserts the descriptors and stores the bracket links
// through exec, aborting on the first failed write.
func (s *scheduleService) writeSchedule(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, descriptors []brackets.MatchDescriptor, wipe bool) (*GenerateResult, error) {
	if wipe {
		if err := s.matchRepo.DeleteByTournament(ctx, exec, tournamentID); err != nil {
			return nil, err
		}
	}

	result := &GenerateResult{}

	// Bracket links are computed per category; brackets of different
	// categories must never feed into each other.
	refsByCategory := make(map[brackets.CategoryInfo][]brackets.BracketRef)
	categoryOrder := make([]brackets.CategoryInfo, 0)

	for _, d := range descriptors {
		match := &models.Match{
			TournamentID:    d.TournamentID,
			Fighter1ID:      d.Fighter1ID,
			Fighter2ID:      d.Fighter2ID,
			Kind:            d.Kind,
			Sex:             d.Category.Sex,
			AgeCategory:     d.Category.AgeCategory,
			WeightCategory:  d.Category.WeightCategory,
			Gloves:          d.Category.Gloves,
			CategoryDisplay: d.Category.Display,
			BracketRound:    d.BracketRound,
			BracketPosition: d.BracketPosition,
			PoolName:        d.PoolName,
			Status:          models.MatchStatusPending,
			DisplayOrder:    d.DisplayOrder,
		}
		if err := s.matchRepo.Create(ctx, exec, match); err != nil {
			return nil, mapMatchRepoError(err)
		}

		result.TotalMatches++
		switch match.Kind {
		case models.MatchKindBracket:
			result.BracketMatches++
			if _, seen := refsByCategory[d.Category]; !seen {
				categoryOrder = append(categoryOrder, d.Category)
			}
			refsByCategory[d.Category] = append(refsByCategory[d.Category], brackets.BracketRef{
				ID:       match.ID,
				Round:    *match.BracketRound,
				Position: *match.BracketPosition,
			})
		case models.MatchKindPool:
			result.PoolMatches++
		}
	}

	for _, cat := range categoryOrder {
		for _, update := range brackets.LinkBrackets(refsByCategory[cat]) {
			if err := s.matchRepo.UpdateNextMatchID(ctx, exec, update.ID, update.NextMatchID); err != nil {
				return nil, mapMatchRepoError(err)
			}
			if update.NextMatchID != nil {
				result.LinksCreated++
			}
		}
	}

	return result, nil
}

func mapMatchRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchTournamentInvalid):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrMatchFighterInvalid):
		return ErrFighterNotFound
	default:
		return err
	}
}
