package models

import "time"

type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// CompetitionType says whether a fighter counts toward the tournament
// ranking or is only enrolled to fill an opponent slot for a cross-club
// friendly bout.
type CompetitionType string

const (
	CompetitionTournoi   CompetitionType = "TOURNOI"
	CompetitionInterclub CompetitionType = "INTERCLUB"
)

// Fighter is a registered competitor. WeightCategory, AgeCategory and
// Gloves are derived labels, recomputed by the categories package whenever
// the fighter record is saved, and trusted as-is by match generation.
type Fighter struct {
	ID              int             `json:"id" db:"id"`
	FirstName       string          `json:"first_name" db:"first_name"`
	LastName        string          `json:"last_name" db:"last_name"`
	Sex             Sex             `json:"sex" db:"sex"`
	BirthYear       *int            `json:"birth_year,omitempty" db:"birth_year"`
	Weight          float64         `json:"weight" db:"weight"`
	WeightCategory  string          `json:"weight_category" db:"weight_category"`
	AgeCategory     string          `json:"age_category" db:"age_category"`
	Gloves          string          `json:"gloves" db:"gloves"`
	CompetitionType CompetitionType `json:"competition_type" db:"competition_type"`
	ClubID          int             `json:"club_id" db:"club_id"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`

	Club *Club `json:"club,omitempty" db:"-"`
}

func (f *Fighter) FullName() string {
	return f.FirstName + " " + f.LastName
}
