package services

import "errors"

// Общие ошибки сервисов, по ним handlers выбирают HTTP-статус.
var (
	ErrValidationFailed = errors.New("validation failed")

	ErrTournamentNotFound = errors.New("tournament not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrTeamNotFound       = errors.New("team not found")

	ErrTeamNameRequired     = errors.New("team name is required")
	ErrTeamAbbreviationLong = errors.New("team abbreviation must be at most 5 characters")
	ErrTeamNameConflict     = errors.New("team name is already in use in this category")

	// Ошибки загрузки состава. Все они фатальные: в базу ничего не пишется.
	ErrImportFileRequired       = errors.New("spreadsheet file is required")
	ErrImportUnsupportedFile    = errors.New("only .xlsx and .xls files are accepted")
	ErrImportInvalidRows        = errors.New("header row and first data row must be positive")
	ErrImportInvalidPosition    = errors.New("default position must be one of GK, DEF, MID, FWD")
	ErrImportWorkbookUnreadable = errors.New("spreadsheet cannot be read")
	ErrImportEmptySheet         = errors.New("spreadsheet has no rows")
)
