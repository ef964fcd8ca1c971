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
	ErrTournamentNotFound       = errors.New("tournament not found")
	ErrTournamentNameConflict   = errors.New("tournament name already exists")
	ErrEnrollmentConflict       = errors.New("fighter is already enrolled in this tournament")
	ErrEnrollmentNotFound       = errors.New("fighter is not enrolled in this tournament")
	ErrEnrollmentFighterInvalid = errors.New("enrollment references an unknown fighter")
	ErrEnrollmentTournoiInvalid = errors.New("enrollment references an unknown tournament")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context) ([]*models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error

	Enroll(ctx context.Context, tournamentID, fighterID int) error
	Withdraw(ctx context.Context, tournamentID, fighterID int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, date, location)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, t.Name, t.Date, t.Location).
		Scan(&t.ID, &t.CreatedAt)
	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, date, location, created_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Date, &t.Location, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament %d: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]*models.Tournament, error) {
	query := `
		SELECT id, name, date, location, created_at
		FROM tournaments
		ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.Date, &t.Location, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, &t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments
		SET name = $1, date = $2, location = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, t.Name, t.Date, t.Location, t.ID)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Enroll(ctx context.Context, tournamentID, fighterID int) error {
	query := `
		INSERT INTO tournament_fighters (tournament_id, fighter_id)
		VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, tournamentID, fighterID)
	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) Withdraw(ctx context.Context, tournamentID, fighterID int) error {
	query := `
		DELETE FROM tournament_fighters
		WHERE tournament_id = $1 AND fighter_id = $2`

	result, err := r.db.ExecContext(ctx, query, tournamentID, fighterID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEnrollmentNotFound)
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "tournaments_name_key":
			return ErrTournamentNameConflict
		case "tournament_fighters_pkey":
			return ErrEnrollmentConflict
		case "tournament_fighters_fighter_id_fkey":
			return ErrEnrollmentFighterInvalid
		case "tournament_fighters_tournament_id_fkey":
			return ErrEnrollmentTournoiInvalid
		}
	}
	return err
}
