package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Dosada05/cup-roster/models"
	"github.com/Dosada05/cup-roster/repositories"
)

const maxAbbreviationLen = 5

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeamsByCategory(ctx context.Context, categoryID int) ([]models.Team, error)
	ListPlayers(ctx context.Context, teamID int) ([]models.Player, error)
}

type CreateTeamInput struct {
	CategoryID   int
	Name         string
	Abbreviation string
	LogoURL      *string
}

type teamService struct {
	teamRepo       repositories.TeamRepository
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	logger         *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		logger:         logger,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	abbreviation := strings.ToUpper(strings.TrimSpace(input.Abbreviation))
	if utf8.RuneCountInString(abbreviation) > maxAbbreviationLen {
		return nil, ErrTeamAbbreviationLong
	}

	team := &models.Team{
		CategoryID:   input.CategoryID,
		Name:         name,
		Abbreviation: abbreviation,
		LogoURL:      input.LogoURL,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamCategoryInvalid):
			return nil, ErrCategoryNotFound
		case errors.Is(err, repositories.ErrTeamFieldInvalid):
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.logger.Info("team created",
		slog.Int("team_id", team.ID),
		slog.Int("category_id", team.CategoryID),
		slog.String("name", team.Name))
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	return team, nil
}

func (s *teamService) ListTeamsByCategory(ctx context.Context, categoryID int) ([]models.Team, error) {
	if _, err := s.tournamentRepo.GetCategoryByID(ctx, categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category %d: %w", categoryID, err)
	}
	teams, err := s.teamRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *teamService) ListPlayers(ctx context.Context, teamID int) ([]models.Player, error) {
	if _, err := s.GetTeamByID(ctx, teamID); err != nil {
		return nil, err
	}
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", teamID, err)
	}
	return players, nil
}
