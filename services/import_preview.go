package services

import (
	"github.com/Dosada05/cup-roster/importer"
	"github.com/Dosada05/cup-roster/models"
)

// ImportPreview — то, что загрузка создала бы в пустой команде.
type ImportPreview struct {
	Headers      importer.HeaderMap   `json:"headers"`
	Players      []models.DraftPlayer `json:"players"`
	EmptyRows    int                  `json:"empty_rows"`
	UnusableRows []int                `json:"unusable_rows"`
}

// PreviewImport прогоняет разбор и распределение номеров без базы данных.
func PreviewImport(fileName string, data []byte, opts importer.Options) (*ImportPreview, error) {
	if err := ValidateImportFile(fileName, data); err != nil {
		return nil, err
	}
	if err := validateImportOptions(opts); err != nil {
		return nil, err
	}
	grid, err := LoadImportWorkbook(data)
	if err != nil {
		return nil, err
	}

	extraction := importer.Extract(grid, opts)
	importer.NewAllocator(nil, nil).Allocate(extraction.Drafts)

	preview := &ImportPreview{
		Headers:      extraction.Headers,
		Players:      extraction.Drafts,
		EmptyRows:    extraction.EmptyRows,
		UnusableRows: extraction.UnusableRows,
	}
	if preview.Players == nil {
		preview.Players = []models.DraftPlayer{}
	}
	if preview.UnusableRows == nil {
		preview.UnusableRows = []int{}
	}
	return preview, nil
}
