package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/tlemaire/savate-tournament/models"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match references an unknown tournament")
	ErrMatchFighterInvalid    = errors.New("match references an unknown fighter")
	ErrMatchInvalidSlot       = errors.New("fighter slot must be 1 or 2")
)

const matchColumns = `
	id, tournament_id, fighter1_id, fighter2_id, kind, sex, age_category,
	weight_category, gloves, category_display, bracket_round,
	bracket_position, next_match_id, pool_name, status, winner_id,
	fighter2_manual, display_order, created_at`

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)
	CountByTournament(ctx context.Context, tournamentID int) (int, error)
	UpdateNextMatchID(ctx context.Context, exec SQLExecutor, matchID int, nextMatchID *int) error
	UpdateResult(ctx context.Context, exec SQLExecutor, matchID int, winnerID *int, status models.MatchStatus) error
	UpdateFighterSlot(ctx context.Context, exec SQLExecutor, matchID, slot, fighterID int, manual bool) error
	Delete(ctx context.Context, id int) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches
			(tournament_id, fighter1_id, fighter2_id, kind, sex, age_category,
			 weight_category, gloves, category_display, bracket_round,
			 bracket_position, next_match_id, pool_name, status, winner_id,
			 fighter2_manual, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at`

	err := exec.QueryRowContext(ctx, query,
		match.TournamentID,
		match.Fighter1ID,
		match.Fighter2ID,
		match.Kind,
		match.Sex,
		match.AgeCategory,
		match.WeightCategory,
		match.Gloves,
		match.CategoryDisplay,
		match.BracketRound,
		match.BracketPosition,
		match.NextMatchID,
		match.PoolName,
		match.Status,
		match.WinnerID,
		match.Fighter2Manual,
		match.DisplayOrder,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func scanMatch(scan func(dest ...interface{}) error) (*models.Match, error) {
	var m models.Match
	err := scan(
		&m.ID, &m.TournamentID, &m.Fighter1ID, &m.Fighter2ID, &m.Kind, &m.Sex,
		&m.AgeCategory, &m.WeightCategory, &m.Gloves, &m.CategoryDisplay,
		&m.BracketRound, &m.BracketPosition, &m.NextMatchID, &m.PoolName,
		&m.Status, &m.WinnerID, &m.Fighter2Manual, &m.DisplayOrder, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE tournament_id = $1
		ORDER BY display_order ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) CountByTournament(ctx context.Context, tournamentID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM matches WHERE tournament_id = $1`, tournamentID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches for tournament %d: %w", tournamentID, err)
	}
	return count, nil
}

func (r *postgresMatchRepository) UpdateNextMatchID(ctx context.Context, exec SQLExecutor, matchID int, nextMatchID *int) error {
	result, err := exec.ExecContext(ctx,
		`UPDATE matches SET next_match_id = $1 WHERE id = $2`, nextMatchID, matchID)
	if err != nil {
		return fmt.Errorf("failed to update next match for match %d: %w", matchID, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, exec SQLExecutor, matchID int, winnerID *int, status models.MatchStatus) error {
	result, err := exec.ExecContext(ctx,
		`UPDATE matches SET winner_id = $1, status = $2 WHERE id = $3`, winnerID, status, matchID)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateFighterSlot(ctx context.Context, exec SQLExecutor, matchID, slot, fighterID int, manual bool) error {
	var query string
	switch slot {
	case 1:
		query = `UPDATE matches SET fighter1_id = $1 WHERE id = $2`
	case 2:
		query = `UPDATE matches SET fighter2_id = $1, fighter2_manual = $3 WHERE id = $2`
	default:
		return ErrMatchInvalidSlot
	}

	args := []interface{}{fighterID, matchID}
	if slot == 2 {
		args = append(args, manual)
	}

	result, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	_, err := exec.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = $1`, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to delete matches for tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "matches_tournament_id_fkey":
			return ErrMatchTournamentInvalid
		case "matches_fighter1_id_fkey", "matches_fighter2_id_fkey", "matches_winner_id_fkey":
			return ErrMatchFighterInvalid
		}
	}
	return err
}
