package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tlemaire/savate-tournament/brackets"
	"github.com/tlemaire/savate-tournament/live"
	"github.com/tlemaire/savate-tournament/models"
	"github.com/tlemaire/savate-tournament/repositories"
)

type ResultService interface {
	// RecordResult validates and stores the outcome of a match. For a
	// completed bracket bout with a forward link the winner is pushed into
	// the downstream slot in the same transaction.
	RecordResult(ctx context.Context, matchID int, winnerID *int, status models.MatchStatus) (*models.Match, error)
}

type resultService struct {
	db          *sql.DB
	matchRepo   repositories.MatchRepository
	broadcaster Broadcaster
}

func NewResultService(db *sql.DB, matchRepo repositories.MatchRepository, broadcaster Broadcaster) ResultService {
	if broadcaster == nil {
		broadcaster = NopBroadcaster{}
	}
	return &resultService{db: db, matchRepo: matchRepo, broadcaster: broadcaster}
}

func (s *resultService) RecordResult(ctx context.Context, matchID int, winnerID *int, status models.MatchStatus) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapMatchRepoError(err)
	}

	// All result validation runs before the transaction opens; a rejected
	// result touches nothing.
	fill, err := brackets.ApplyResult(match, winnerID, status)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin result transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if err := s.matchRepo.UpdateResult(ctx, tx, match.ID, match.WinnerID, match.Status); err != nil {
		return nil, mapMatchRepoError(err)
	}
	if fill != nil {
		if err := s.matchRepo.UpdateFighterSlot(ctx, tx, fill.MatchID, fill.Slot, fill.FighterID, false); err != nil {
			return nil, mapMatchRepoError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit result transaction: %w", err)
	}
	committed = true

	s.broadcaster.BroadcastToRoom(live.RoomID(match.TournamentID), live.EventMatchUpdated, match)
	return match, nil
}
