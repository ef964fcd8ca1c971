package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/tlemaire/savate-tournament/models"
)

var (
	ErrFighterNotFound    = errors.New("fighter not found")
	ErrFighterClubInvalid = errors.New("fighter references an unknown club")
	ErrFighterInMatches   = errors.New("fighter is referenced by existing matches")
)

const fighterColumns = `
	f.id, f.first_name, f.last_name, f.sex, f.birth_year, f.weight,
	f.weight_category, f.age_category, f.gloves, f.competition_type,
	f.club_id, f.created_at,
	c.id, c.name, c.city, c.contact, c.logo_key, c.created_at`

type FighterRepository interface {
	Create(ctx context.Context, fighter *models.Fighter) error
	GetByID(ctx context.Context, id int) (*models.Fighter, error)
	List(ctx context.Context, clubID *int, sex *models.Sex) ([]*models.Fighter, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Fighter, error)
	Update(ctx context.Context, fighter *models.Fighter) error
	Delete(ctx context.Context, id int) error
}

type postgresFighterRepository struct {
	db *sql.DB
}

func NewPostgresFighterRepository(db *sql.DB) FighterRepository {
	return &postgresFighterRepository{db: db}
}

func (r *postgresFighterRepository) Create(ctx context.Context, fighter *models.Fighter) error {
	query := `
		INSERT INTO fighters
			(first_name, last_name, sex, birth_year, weight, weight_category,
			 age_category, gloves, competition_type, club_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		fighter.FirstName,
		fighter.LastName,
		fighter.Sex,
		fighter.BirthYear,
		fighter.Weight,
		fighter.WeightCategory,
		fighter.AgeCategory,
		fighter.Gloves,
		fighter.CompetitionType,
		fighter.ClubID,
	).Scan(&fighter.ID, &fighter.CreatedAt)

	return r.handleFighterError(err)
}

func scanFighterWithClub(scan func(dest ...interface{}) error) (*models.Fighter, error) {
	var f models.Fighter
	var c models.Club
	err := scan(
		&f.ID, &f.FirstName, &f.LastName, &f.Sex, &f.BirthYear, &f.Weight,
		&f.WeightCategory, &f.AgeCategory, &f.Gloves, &f.CompetitionType,
		&f.ClubID, &f.CreatedAt,
		&c.ID, &c.Name, &c.City, &c.Contact, &c.LogoKey, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.Club = &c
	return &f, nil
}

func (r *postgresFighterRepository) GetByID(ctx context.Context, id int) (*models.Fighter, error) {
	query := `
		SELECT ` + fighterColumns + `
		FROM fighters f
		JOIN clubs c ON c.id = f.club_id
		WHERE f.id = $1`

	fighter, err := scanFighterWithClub(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFighterNotFound
		}
		return nil, fmt.Errorf("failed to scan fighter %d: %w", id, err)
	}
	return fighter, nil
}

func (r *postgresFighterRepository) List(ctx context.Context, clubID *int, sex *models.Sex) ([]*models.Fighter, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + fighterColumns + `
		FROM fighters f
		JOIN clubs c ON c.id = f.club_id
		WHERE 1=1`)

	args := make([]interface{}, 0, 2)
	if clubID != nil {
		args = append(args, *clubID)
		queryBuilder.WriteString(" AND f.club_id = $" + strconv.Itoa(len(args)))
	}
	if sex != nil {
		args = append(args, *sex)
		queryBuilder.WriteString(" AND f.sex = $" + strconv.Itoa(len(args)))
	}
	queryBuilder.WriteString(" ORDER BY f.last_name ASC, f.first_name ASC")

	return r.queryFighters(ctx, queryBuilder.String(), args...)
}

func (r *postgresFighterRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Fighter, error) {
	query := `
		SELECT ` + fighterColumns + `
		FROM fighters f
		JOIN clubs c ON c.id = f.club_id
		JOIN tournament_fighters tf ON tf.fighter_id = f.id
		WHERE tf.tournament_id = $1
		ORDER BY tf.created_at ASC, f.id ASC`

	return r.queryFighters(ctx, query, tournamentID)
}

func (r *postgresFighterRepository) queryFighters(ctx context.Context, query string, args ...interface{}) ([]*models.Fighter, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fighters: %w", err)
	}
	defer rows.Close()

	fighters := make([]*models.Fighter, 0)
	for rows.Next() {
		fighter, err := scanFighterWithClub(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fighter row: %w", err)
		}
		fighters = append(fighters, fighter)
	}
	return fighters, rows.Err()
}

func (r *postgresFighterRepository) Update(ctx context.Context, fighter *models.Fighter) error {
	query := `
		UPDATE fighters
		SET first_name = $1, last_name = $2, sex = $3, birth_year = $4,
		    weight = $5, weight_category = $6, age_category = $7, gloves = $8,
		    competition_type = $9, club_id = $10
		WHERE id = $11`

	result, err := r.db.ExecContext(ctx, query,
		fighter.FirstName,
		fighter.LastName,
		fighter.Sex,
		fighter.BirthYear,
		fighter.Weight,
		fighter.WeightCategory,
		fighter.AgeCategory,
		fighter.Gloves,
		fighter.CompetitionType,
		fighter.ClubID,
		fighter.ID,
	)
	if err != nil {
		return r.handleFighterError(err)
	}
	return checkAffectedRows(result, ErrFighterNotFound)
}

func (r *postgresFighterRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM fighters WHERE id = $1`, id)
	if err != nil {
		return r.handleFighterError(err)
	}
	return checkAffectedRows(result, ErrFighterNotFound)
}

func (r *postgresFighterRepository) handleFighterError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "fighters_club_id_fkey":
			return ErrFighterClubInvalid
		case "matches_fighter1_id_fkey", "matches_fighter2_id_fkey", "matches_winner_id_fkey":
			return ErrFighterInMatches
		}
	}
	return err
}
