// Package importer разбирает таблицы Excel со списками игроков: находит
// заголовки, отбрасывает пустые строки, нормализует поля и раздаёт
// недостающие номера и DNI.
package importer

import (
	"errors"
	"fmt"

	"github.com/Dosada05/cup-roster/models"
)

const (
	DefaultHeaderRow = 24
	DefaultStartRow  = 25
)

var (
	ErrInvalidRows     = errors.New("header row and start row must be positive")
	ErrInvalidPosition = errors.New("invalid default position")
)

type Options struct {
	HeaderRow       int
	StartRow        int
	DefaultPosition models.Position
	Keywords        KeywordTable
}

func DefaultOptions() Options {
	return Options{
		HeaderRow:       DefaultHeaderRow,
		StartRow:        DefaultStartRow,
		DefaultPosition: models.PositionMidfielder,
	}
}

func (o Options) Validate() error {
	if o.HeaderRow < 1 || o.StartRow < 1 {
		return fmt.Errorf("%w: header_row=%d start_row=%d", ErrInvalidRows, o.HeaderRow, o.StartRow)
	}
	if !o.DefaultPosition.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPosition, o.DefaultPosition)
	}
	return nil
}

// Extraction — результат прохода по листу до распределения номеров.
type Extraction struct {
	Headers      HeaderMap
	Drafts       []models.DraftPlayer
	EmptyRows    int
	UnusableRows []int
}

// Extract проходит по строкам начиная с opts.StartRow и возвращает черновики
// в порядке строк.
func Extract(sheet Sheet, opts Options) Extraction {
	headers := LocateHeaders(sheet, opts.HeaderRow, opts.Keywords)
	res := Extraction{Headers: headers}

	for row := opts.StartRow; row <= sheet.MaxRow(); row++ {
		if IsEmptyRow(sheet, row, headers) {
			res.EmptyRows++
			continue
		}
		draft, ok := ExtractPlayer(sheet, row, headers, opts.DefaultPosition)
		if !ok {
			res.UnusableRows = append(res.UnusableRows, row)
			continue
		}
		res.Drafts = append(res.Drafts, draft)
	}
	return res
}
