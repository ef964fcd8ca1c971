package models

import "time"

// Club is a member club whose fighters enter tournaments.
type Club struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	City      *string   `json:"city,omitempty" db:"city"`
	Contact   *string   `json:"contact,omitempty" db:"contact"`
	LogoKey   *string   `json:"-" db:"logo_key"`
	LogoURL   *string   `json:"logo_url,omitempty" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Fighters []Fighter `json:"fighters,omitempty" db:"-"`
}
