package models

import (
	"fmt"
	"time"
)

// DraftPlayer — кандидат в игроки, извлечённый из одной строки таблицы.
// В БД напрямую не пишется: из него строится Player.
type DraftPlayer struct {
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DNI          string    `json:"dni,omitempty"`
	BirthDate    time.Time `json:"birth_date"`
	JerseyNumber string    `json:"jersey_number,omitempty"`
	Position     Position  `json:"position"`
	Phone        string    `json:"phone"`
	CohortYear   *int      `json:"cohort_year,omitempty"`
	Occupation   string    `json:"occupation"`
	SourceRow    int       `json:"source_row"`
}

func (d DraftPlayer) FullName() string {
	return d.FirstName + " " + d.LastName
}

// ToPlayer собирает запись для создания в команде teamID.
func (d DraftPlayer) ToPlayer(teamID int) *Player {
	p := &Player{
		TeamID:     teamID,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		BirthDate:  d.BirthDate,
		DNI:        d.DNI,
		Phone:      d.Phone,
		CohortYear: d.CohortYear,
		Occupation: d.Occupation,
	}
	if d.Position != "" {
		pos := d.Position
		p.Position = &pos
	}
	if d.JerseyNumber != "" {
		num := d.JerseyNumber
		p.JerseyNumber = &num
	}
	return p
}

// ImportIssue — строка отчёта о пропущенном или ошибочном игроке.
type ImportIssue struct {
	Name   string `json:"name"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

func (i ImportIssue) String() string {
	return fmt.Sprintf("%s (fila %d): %s", i.Name, i.Row, i.Reason)
}

// ImportReport — итог одной загрузки: создано / пропущено / ошибки.
type ImportReport struct {
	BatchID    string        `json:"batch_id"`
	TeamID     int           `json:"team_id"`
	Created    []*Player     `json:"created"`
	Skipped    []ImportIssue `json:"skipped"`
	Errors     []ImportIssue `json:"errors"`
	ArchiveURL string        `json:"archive_url,omitempty"`
}

const reportPreviewLimit = 5

func (r *ImportReport) Empty() bool {
	return len(r.Created) == 0 && len(r.Skipped) == 0 && len(r.Errors) == 0
}

// Summary возвращает строки для оператора: счётчики и первые пять
// пропусков/ошибок каждого вида.
func (r *ImportReport) Summary() []string {
	var lines []string
	if len(r.Created) > 0 {
		lines = append(lines, fmt.Sprintf("Se crearon %d jugadores exitosamente.", len(r.Created)))
	}
	if len(r.Skipped) > 0 {
		lines = append(lines, fmt.Sprintf("Se omitieron %d jugadores que ya existían.", len(r.Skipped)))
		for i, s := range r.Skipped {
			if i == reportPreviewLimit {
				break
			}
			lines = append(lines, "Omitido: "+s.String())
		}
	}
	if len(r.Errors) > 0 {
		lines = append(lines, fmt.Sprintf("Se encontraron %d errores:", len(r.Errors)))
		for i, e := range r.Errors {
			if i == reportPreviewLimit {
				break
			}
			lines = append(lines, e.String())
		}
	}
	return lines
}
