package models

import "time"

// Tournament — турнир одного года, например "Copa Don Bosco 2024".
type Tournament struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Year      string    `json:"year" db:"year"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`

	Categories []Category `json:"categories,omitempty" db:"-"`
}

// Category — возрастная категория турнира (промоция, Sub-16 и т.п.).
type Category struct {
	ID           int     `json:"id" db:"id"`
	TournamentID int     `json:"tournament_id" db:"tournament_id"`
	Name         string  `json:"category_name" db:"category_name"`
	Description  *string `json:"description,omitempty" db:"description"`

	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
}
