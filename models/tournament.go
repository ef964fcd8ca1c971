package models

import "time"

// Tournament is a single-day savate event. Fighters are enrolled through
// the tournament_fighters join table and matches are generated per event.
type Tournament struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Date      time.Time `json:"date" db:"date"`
	Location  *string   `json:"location,omitempty" db:"location"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Fighters []Fighter `json:"fighters,omitempty" db:"-"`
	Matches  []Match   `json:"matches,omitempty" db:"-"`
}
