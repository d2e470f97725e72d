package models

import "time"

type Team struct {
	ID           int       `json:"id" db:"id"`
	CategoryID   int       `json:"category_id" db:"category_id"`
	Name         string    `json:"name" db:"name"`
	Abbreviation string    `json:"abbreviation" db:"abbreviation"`
	LogoURL      *string   `json:"logo_url,omitempty" db:"logo_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Category *Category `json:"category,omitempty" db:"-"`
	Players  []Player  `json:"players,omitempty" db:"-"`
}
