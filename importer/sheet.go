package importer

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

var (
	ErrWorkbookUnreadable = errors.New("workbook cannot be opened")
	ErrEmptySheet         = errors.New("sheet has no readable rows")
)

type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
	CellDate
)

// Cell — значение ячейки после чтения книги. Тип наружу из пакета не выходит:
// ExtractPlayer сразу превращает его в поля DraftPlayer.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Time   time.Time
}

func TextCell(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

func NumberCell(v float64) Cell {
	return Cell{Kind: CellNumber, Number: v}
}

func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Time: t}
}

// String отдаёт текстовое представление ячейки, как его увидел бы оператор.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellDate:
		return c.Time.Format(time.DateOnly)
	default:
		return ""
	}
}

// Blank — пустая ячейка или ячейка из одних пробелов.
func (c Cell) Blank() bool {
	return strings.TrimSpace(c.String()) == ""
}

// Sheet — открытый лист. Строки и колонки нумеруются с 1.
type Sheet interface {
	MaxRow() int
	MaxColumn() int
	Cell(row, col int) Cell
}

// Grid — лист, целиком загруженный в память.
type Grid struct {
	rows   [][]Cell
	maxCol int
}

func NewGrid(rows [][]Cell) *Grid {
	g := &Grid{rows: rows}
	for _, r := range rows {
		if len(r) > g.maxCol {
			g.maxCol = len(r)
		}
	}
	return g
}

func (g *Grid) MaxRow() int    { return len(g.rows) }
func (g *Grid) MaxColumn() int { return g.maxCol }

func (g *Grid) Cell(row, col int) Cell {
	if row < 1 || row > len(g.rows) {
		return Cell{}
	}
	r := g.rows[row-1]
	if col < 1 || col > len(r) {
		return Cell{}
	}
	return r[col-1]
}

// LoadWorkbook читает активный лист книги xlsx целиком.
func LoadWorkbook(data []byte) (*Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWorkbookUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrEmptySheet)
		}
		sheet = sheets[0]
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %w", ErrWorkbookUnreadable, sheet, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: sheet %q", ErrEmptySheet, sheet)
	}

	r := cellReader{file: f, sheet: sheet, dateStyles: make(map[int]bool)}
	rows := make([][]Cell, len(raw))
	for i, rawRow := range raw {
		cells := make([]Cell, len(rawRow))
		for j, value := range rawRow {
			if value == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrWorkbookUnreadable, err)
			}
			cells[j] = r.classify(axis, value)
		}
		rows[i] = cells
	}
	return NewGrid(rows), nil
}

type cellReader struct {
	file       *excelize.File
	sheet      string
	dateStyles map[int]bool
}

// classify определяет вариант ячейки по её типу и числовому формату.
// Числа с форматом даты считаются датами, как их показывает Excel.
func (r *cellReader) classify(axis, raw string) Cell {
	cellType, err := r.file.GetCellType(r.sheet, axis)
	if err != nil {
		return TextCell(raw)
	}
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeBool, excelize.CellTypeError:
		return TextCell(raw)
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return DateCell(t)
		}
		if t, err := time.Parse(time.DateOnly, raw); err == nil {
			return DateCell(t)
		}
		return TextCell(raw)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return TextCell(raw)
	}
	if r.isDateStyled(axis) {
		if t, err := excelize.ExcelDateToTime(v, false); err == nil {
			return DateCell(t)
		}
	}
	return NumberCell(v)
}

func (r *cellReader) isDateStyled(axis string) bool {
	styleID, err := r.file.GetCellStyle(r.sheet, axis)
	if err != nil || styleID == 0 {
		return false
	}
	if isDate, ok := r.dateStyles[styleID]; ok {
		return isDate
	}
	isDate := false
	if style, err := r.file.GetStyle(styleID); err == nil && style != nil {
		isDate = isDateNumFmt(style.NumFmt, style.CustomNumFmt)
	}
	r.dateStyles[styleID] = isDate
	return isDate
}

// Встроенные форматы Excel с датой: 14-22, 27-36, 45-47, 50-58.
func isDateNumFmt(id int, custom *string) bool {
	if custom != nil && *custom != "" {
		return strings.ContainsAny(strings.ToLower(formatTokens(*custom)), "dmy")
	}
	switch {
	case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47, id >= 50 && id <= 58:
		return true
	}
	return false
}

// formatTokens убирает из пользовательского формата то, что не является
// кодами: [Red], [$-409], "текст в кавычках" и символ после \, _ или *.
func formatTokens(format string) string {
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range format {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '\\', r == '_', r == '*':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
