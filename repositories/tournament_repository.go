package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/cup-roster/models"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrCategoryNotFound   = errors.New("category not found")
)

type TournamentRepository interface {
	List(ctx context.Context) ([]models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	ListCategories(ctx context.Context, tournamentID int) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id int) (*models.Category, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := `SELECT id, name, year, start_date, end_date FROM tournaments ORDER BY start_date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if err := rows.Scan(&t.ID, &t.Name, &t.Year, &t.StartDate, &t.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT id, name, year, start_date, end_date FROM tournaments WHERE id = $1`

	var t models.Tournament
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Year, &t.StartDate, &t.EndDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return &t, nil
}

func (r *postgresTournamentRepository) ListCategories(ctx context.Context, tournamentID int) ([]models.Category, error) {
	query := `
		SELECT id, tournament_id, category_name, description
		FROM categories
		WHERE tournament_id = $1
		ORDER BY category_name`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.TournamentID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

func (r *postgresTournamentRepository) GetCategoryByID(ctx context.Context, id int) (*models.Category, error) {
	query := `
		SELECT c.id, c.tournament_id, c.category_name, c.description,
		       t.id, t.name, t.year, t.start_date, t.end_date
		FROM categories c
		JOIN tournaments t ON t.id = c.tournament_id
		WHERE c.id = $1`

	var c models.Category
	var t models.Tournament
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.TournamentID, &c.Name, &c.Description,
		&t.ID, &t.Name, &t.Year, &t.StartDate, &t.EndDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	c.Tournament = &t
	return &c, nil
}
