package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/cup-roster/models"
	"github.com/Dosada05/cup-roster/repositories"
)

type TournamentService interface {
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	ListCategories(ctx context.Context, tournamentID int) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id int) (*models.Category, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository) TournamentService {
	return &tournamentService{tournamentRepo: tournamentRepo}
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) ListCategories(ctx context.Context, tournamentID int) ([]models.Category, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}
	categories, err := s.tournamentRepo.ListCategories(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *tournamentService) GetCategoryByID(ctx context.Context, id int) (*models.Category, error) {
	category, err := s.tournamentRepo.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return category, nil
}
