package models

import "time"

// Position — игровая позиция, соответствует CHECK в таблице players.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

func (p Position) Valid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	}
	return false
}

type Player struct {
	ID           int       `json:"id" db:"id"`
	TeamID       int       `json:"team_id" db:"team_id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	BirthDate    time.Time `json:"birth_date" db:"birth_date"`
	Position     *Position `json:"position,omitempty" db:"position"`
	JerseyNumber *string   `json:"jersey_number,omitempty" db:"jersey_number"`
	DNI          string    `json:"dni" db:"dni"`
	Phone        string    `json:"phone" db:"phone"`
	CohortYear   *int      `json:"cohort_year,omitempty" db:"cohort_year"`
	Occupation   string    `json:"occupation" db:"occupation"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}

func (p Player) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Age считает полных лет на дату now.
func (p Player) Age(now time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	age := now.Year() - p.BirthDate.Year()
	if now.Month() < p.BirthDate.Month() ||
		(now.Month() == p.BirthDate.Month() && now.Day() < p.BirthDate.Day()) {
		age--
	}
	return age
}
