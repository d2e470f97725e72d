package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/cup-roster/models"
)

var (
	ErrTeamNotFound        = errors.New("team not found")
	ErrTeamNameConflict    = errors.New("team name already used in category")
	ErrTeamCategoryInvalid = errors.New("team category invalid")
	ErrTeamFieldInvalid    = errors.New("team field invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByCategory(ctx context.Context, categoryID int) ([]models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (category_id, name, abbreviation, logo_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.CategoryID,
		team.Name,
		team.Abbreviation,
		team.LogoURL,
	).Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		return mapTeamError(err)
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT
			t.id, t.category_id, t.name, t.abbreviation, t.logo_url, t.created_at,
			c.id, c.tournament_id, c.category_name, c.description
		FROM teams t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1`

	var team models.Team
	var category models.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.CategoryID,
		&team.Name,
		&team.Abbreviation,
		&team.LogoURL,
		&team.CreatedAt,
		&category.ID,
		&category.TournamentID,
		&category.Name,
		&category.Description,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	team.Category = &category
	return &team, nil
}

func (r *postgresTeamRepository) ListByCategory(ctx context.Context, categoryID int) ([]models.Team, error) {
	query := `
		SELECT id, category_id, name, abbreviation, logo_url, created_at
		FROM teams
		WHERE category_id = $1
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for category %d: %w", categoryID, err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.Name, &t.Abbreviation, &t.LogoURL, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}
	return teams, nil
}

func mapTeamError(err error) error {
	code, constraint, ok := constraintError(err)
	if !ok {
		return err
	}
	switch code {
	case pqUniqueViolation:
		if constraint == "teams_category_id_name_key" {
			return ErrTeamNameConflict
		}
	case pqForeignKeyViolation:
		if constraint == "teams_category_id_fkey" {
			return ErrTeamCategoryInvalid
		}
	case pqCheckViolation:
		return fmt.Errorf("%w: %s", ErrTeamFieldInvalid, constraint)
	}
	return err
}
