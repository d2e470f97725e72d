package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/cup-roster/models"
)

var (
	ErrPlayerJerseyConflict = errors.New("jersey number already used in team")
	ErrPlayerDNIConflict    = errors.New("dni already registered in team")
	ErrPlayerTeamInvalid    = errors.New("player team invalid")
	ErrPlayerFieldInvalid   = errors.New("player field invalid")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	ListByTeam(ctx context.Context, teamID int) ([]models.Player, error)
	ListJerseyNumbers(ctx context.Context, teamID int) ([]string, error)
	ListDNIs(ctx context.Context, teamID int) ([]string, error)
	ExistsByDNI(ctx context.Context, teamID int, dni string) (bool, error)
	ExistsByJerseyNumber(ctx context.Context, teamID int, number string) (bool, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const playerColumns = `id, team_id, first_name, last_name, birth_date, position, jersey_number,
		dni, phone, cohort_year, occupation, created_at`

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	query := `
		INSERT INTO players
			(team_id, first_name, last_name, birth_date, position, jersey_number,
			 dni, phone, cohort_year, occupation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		player.TeamID,
		player.FirstName,
		player.LastName,
		player.BirthDate,
		player.Position,
		player.JerseyNumber,
		player.DNI,
		player.Phone,
		player.CohortYear,
		player.Occupation,
	).Scan(&player.ID, &player.CreatedAt)
	if err != nil {
		return mapPlayerError(err)
	}
	return nil
}

// ListByTeam сортирует по номеру как по числу; номера вида "10A" идут в конце.
func (r *postgresPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Player, error) {
	query := `
		SELECT ` + playerColumns + `
		FROM players
		WHERE team_id = $1
		ORDER BY
			CASE WHEN jersey_number ~ '^[0-9]+$' THEN jersey_number::int END NULLS LAST,
			jersey_number, last_name, first_name`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", teamID, err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) ListJerseyNumbers(ctx context.Context, teamID int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT jersey_number FROM players WHERE team_id = $1 AND jersey_number IS NOT NULL`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jersey numbers for team %d: %w", teamID, err)
	}
	numbers, err := scanStrings(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan jersey numbers: %w", err)
	}
	return numbers, nil
}

func (r *postgresPlayerRepository) ListDNIs(ctx context.Context, teamID int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT dni FROM players WHERE team_id = $1 AND dni <> ''`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dnis for team %d: %w", teamID, err)
	}
	dnis, err := scanStrings(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan dnis: %w", err)
	}
	return dnis, nil
}

func (r *postgresPlayerRepository) ExistsByDNI(ctx context.Context, teamID int, dni string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM players WHERE team_id = $1 AND dni = $2)`, teamID, dni).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check dni %s in team %d: %w", dni, teamID, err)
	}
	return exists, nil
}

func (r *postgresPlayerRepository) ExistsByJerseyNumber(ctx context.Context, teamID int, number string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM players WHERE team_id = $1 AND jersey_number = $2)`, teamID, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check jersey %s in team %d: %w", number, teamID, err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlayer(row rowScanner) (*models.Player, error) {
	var p models.Player
	var position sql.NullString
	var jersey sql.NullString
	var cohort sql.NullInt64
	err := row.Scan(
		&p.ID,
		&p.TeamID,
		&p.FirstName,
		&p.LastName,
		&p.BirthDate,
		&position,
		&jersey,
		&p.DNI,
		&p.Phone,
		&cohort,
		&p.Occupation,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if position.Valid {
		pos := models.Position(position.String)
		p.Position = &pos
	}
	if jersey.Valid {
		p.JerseyNumber = &jersey.String
	}
	if cohort.Valid {
		c := int(cohort.Int64)
		p.CohortYear = &c
	}
	return &p, nil
}

func mapPlayerError(err error) error {
	code, constraint, ok := constraintError(err)
	if !ok {
		return err
	}
	switch code {
	case pqUniqueViolation:
		switch constraint {
		case "players_team_id_jersey_number_key":
			return ErrPlayerJerseyConflict
		case "players_team_id_dni_key":
			return ErrPlayerDNIConflict
		}
	case pqForeignKeyViolation:
		if constraint == "players_team_id_fkey" {
			return ErrPlayerTeamInvalid
		}
	case pqCheckViolation:
		return fmt.Errorf("%w: %s", ErrPlayerFieldInvalid, constraint)
	}
	return err
}
