package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/cup-roster/importer"
	"github.com/Dosada05/cup-roster/models"
	"github.com/Dosada05/cup-roster/realtime"
	"github.com/Dosada05/cup-roster/repositories"
	"github.com/Dosada05/cup-roster/storage"
)

var allowedImportExtensions = map[string]bool{".xlsx": true, ".xls": true}

// RosterNotifier получает итог загрузки для открытых страниц команды.
type RosterNotifier interface {
	BroadcastToRoom(roomID string, message interface{})
}

type PlayerImportService interface {
	ImportPlayers(ctx context.Context, input ImportPlayersInput) (*models.ImportReport, error)
}

type ImportPlayersInput struct {
	TeamID   int
	FileName string
	Data     []byte
	Options  importer.Options
}

type RosterImportedPayload struct {
	TeamID  int      `json:"team_id"`
	BatchID string   `json:"batch_id"`
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  int      `json:"errors"`
	Summary []string `json:"summary"`
}

type playerImportService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	notifier   RosterNotifier
	logger     *slog.Logger
}

// NewPlayerImportService: uploader и notifier могут быть nil, тогда архив
// и оповещения отключены.
func NewPlayerImportService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	notifier RosterNotifier,
	logger *slog.Logger,
) PlayerImportService {
	return &playerImportService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
		notifier:   notifier,
		logger:     logger,
	}
}

// ValidateImportFile проверяет имя и содержимое файла до чтения книги.
func ValidateImportFile(fileName string, data []byte) error {
	if len(data) == 0 {
		return ErrImportFileRequired
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedImportExtensions[ext] {
		return fmt.Errorf("%w: got %q", ErrImportUnsupportedFile, ext)
	}
	return nil
}

func validateImportOptions(opts importer.Options) error {
	if err := opts.Validate(); err != nil {
		switch {
		case errors.Is(err, importer.ErrInvalidRows):
			return fmt.Errorf("%w: %w", ErrImportInvalidRows, err)
		case errors.Is(err, importer.ErrInvalidPosition):
			return fmt.Errorf("%w: %w", ErrImportInvalidPosition, err)
		}
		return fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	return nil
}

// LoadImportWorkbook открывает книгу и переводит ошибки importer в ошибки сервиса.
func LoadImportWorkbook(data []byte) (*importer.Grid, error) {
	grid, err := importer.LoadWorkbook(data)
	if err != nil {
		if errors.Is(err, importer.ErrEmptySheet) {
			return nil, fmt.Errorf("%w: %w", ErrImportEmptySheet, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrImportWorkbookUnreadable, err)
	}
	return grid, nil
}

// ImportPlayers загружает состав команды из таблицы. Ошибки по отдельным
// игрокам попадают в отчёт и не прерывают загрузку; уже созданные игроки
// не откатываются.
func (s *playerImportService) ImportPlayers(ctx context.Context, input ImportPlayersInput) (*models.ImportReport, error) {
	if err := ValidateImportFile(input.FileName, input.Data); err != nil {
		return nil, err
	}
	if err := validateImportOptions(input.Options); err != nil {
		return nil, err
	}

	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", input.TeamID, err)
	}

	grid, err := LoadImportWorkbook(input.Data)
	if err != nil {
		return nil, err
	}

	report := &models.ImportReport{
		BatchID: uuid.NewString(),
		TeamID:  input.TeamID,
		Created: []*models.Player{},
		Skipped: []models.ImportIssue{},
		Errors:  []models.ImportIssue{},
	}
	logger := s.logger.With(slog.Int("team_id", input.TeamID), slog.String("batch_id", report.BatchID))

	report.ArchiveURL = s.archive(ctx, logger, input, report.BatchID)

	extraction := importer.Extract(grid, input.Options)
	if len(extraction.UnusableRows) > 0 {
		logger.Debug("rows without names dropped", slog.Any("rows", extraction.UnusableRows))
	}
	if len(extraction.Drafts) == 0 {
		logger.Info("no players found in spreadsheet", slog.Int("empty_rows", extraction.EmptyRows))
		return report, nil
	}

	allocator, err := s.newAllocator(ctx, input.TeamID)
	if err != nil {
		s.discardArchive(ctx, logger, input.TeamID, report)
		return nil, err
	}
	drafts := extraction.Drafts
	allocator.Allocate(drafts)

	// Без отмены посреди партии: обрыв запроса не превращает оставшиеся
	// строки в ошибки, каждая доводится до результата.
	persistCtx := context.WithoutCancel(ctx)
	for _, draft := range drafts {
		s.persistDraft(persistCtx, logger, input.TeamID, draft, report)
	}

	logger.Info("player import finished",
		slog.Int("created", len(report.Created)),
		slog.Int("skipped", len(report.Skipped)),
		slog.Int("errors", len(report.Errors)),
		slog.Int("empty_rows", extraction.EmptyRows),
		slog.Int("unusable_rows", len(extraction.UnusableRows)))

	s.notify(report)
	return report, nil
}

// newAllocator читает занятые номера и DNI команды параллельно.
func (s *playerImportService) newAllocator(ctx context.Context, teamID int) (*importer.Allocator, error) {
	var jerseys, dnis []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jerseys, err = s.playerRepo.ListJerseyNumbers(gctx, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		dnis, err = s.playerRepo.ListDNIs(gctx, teamID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load existing roster for team %d: %w", teamID, err)
	}
	return importer.NewAllocator(jerseys, dnis), nil
}

func (s *playerImportService) persistDraft(ctx context.Context, logger *slog.Logger, teamID int, draft models.DraftPlayer, report *models.ImportReport) {
	issue := func(reason string) models.ImportIssue {
		return models.ImportIssue{Name: draft.FullName(), Row: draft.SourceRow, Reason: reason}
	}

	dniTaken, err := s.playerRepo.ExistsByDNI(ctx, teamID, draft.DNI)
	if err != nil {
		report.Errors = append(report.Errors, issue(fmt.Sprintf("Error creando jugador: %v", err)))
		return
	}
	if dniTaken {
		report.Skipped = append(report.Skipped, issue("DNI ya existe"))
		return
	}

	jerseyTaken, err := s.playerRepo.ExistsByJerseyNumber(ctx, teamID, draft.JerseyNumber)
	if err != nil {
		report.Errors = append(report.Errors, issue(fmt.Sprintf("Error creando jugador: %v", err)))
		return
	}
	if jerseyTaken {
		report.Errors = append(report.Errors,
			issue(fmt.Sprintf("Número de camiseta %s ya está en uso", draft.JerseyNumber)))
		return
	}

	player := draft.ToPlayer(teamID)
	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		logger.Warn("failed to create imported player",
			slog.Int("row", draft.SourceRow),
			slog.Any("error", err))
		report.Errors = append(report.Errors, issue(fmt.Sprintf("Error creando jugador: %v", err)))
		return
	}
	report.Created = append(report.Created, player)
}

// archive сохраняет исходный файл. Сбой хранилища загрузку не останавливает.
func (s *playerImportService) archive(ctx context.Context, logger *slog.Logger, input ImportPlayersInput, batchID string) string {
	if s.uploader == nil {
		return ""
	}
	key := storage.ImportArchiveKey(input.TeamID, batchID)
	res, err := s.uploader.Upload(ctx, key, storage.XLSXContentType, bytes.NewReader(input.Data))
	if err != nil {
		logger.Warn("failed to archive spreadsheet", slog.String("key", key), slog.Any("error", err))
		return ""
	}
	return res.Location
}

// discardArchive удаляет файл партии, которая так и не была записана.
func (s *playerImportService) discardArchive(ctx context.Context, logger *slog.Logger, teamID int, report *models.ImportReport) {
	if s.uploader == nil || report.ArchiveURL == "" {
		return
	}
	key := storage.ImportArchiveKey(teamID, report.BatchID)
	if err := s.uploader.Delete(context.WithoutCancel(ctx), key); err != nil {
		logger.Warn("failed to remove archived spreadsheet", slog.String("key", key), slog.Any("error", err))
	}
}

func (s *playerImportService) notify(report *models.ImportReport) {
	if s.notifier == nil {
		return
	}
	room := realtime.TeamRoom(report.TeamID)
	s.notifier.BroadcastToRoom(room, realtime.Message{
		Type: realtime.MessageRosterImported,
		Payload: RosterImportedPayload{
			TeamID:  report.TeamID,
			BatchID: report.BatchID,
			Created: len(report.Created),
			Skipped: len(report.Skipped),
			Errors:  len(report.Errors),
			Summary: report.Summary(),
		},
		RoomID: room,
	})
}
