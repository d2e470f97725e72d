package importer

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"APELLIDO", "NOMBRE", "DNI", "FECHA NAC", "NUMERO"}))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Gómez"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "Juan"))
	require.NoError(t, f.SetCellValue(sheet, "C2", 30111222))
	require.NoError(t, f.SetCellValue(sheet, "D2", time.Date(1995, time.March, 15, 0, 0, 0, 0, time.UTC)))
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "D2", "D2", dateStyle))
	require.NoError(t, f.SetCellValue(sheet, "E2", "07"))
	require.NoError(t, f.SetCellValue(sheet, "A4", "Pérez"))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	grid, err := LoadWorkbook(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, 4, grid.MaxRow())
	assert.Equal(t, 5, grid.MaxColumn())

	assert.Equal(t, TextCell("Gómez"), grid.Cell(2, 1))
	assert.Equal(t, NumberCell(30111222), grid.Cell(2, 3))
	assert.Equal(t, CellDate, grid.Cell(2, 4).Kind)
	assert.Equal(t, "1995-03-15", grid.Cell(2, 4).String())
	assert.Equal(t, TextCell("07"), grid.Cell(2, 5))
	assert.Equal(t, CellEmpty, grid.Cell(3, 1).Kind)
	assert.Equal(t, CellEmpty, grid.Cell(99, 99).Kind)
}

func TestLoadWorkbook_Fatal(t *testing.T) {
	t.Run("not a workbook", func(t *testing.T) {
		_, err := LoadWorkbook([]byte("APELLIDO,NOMBRE\nGómez,Juan\n"))
		require.ErrorIs(t, err, ErrWorkbookUnreadable)
	})

	t.Run("empty sheet", func(t *testing.T) {
		f := excelize.NewFile()
		var buf bytes.Buffer
		require.NoError(t, f.Write(&buf))
		require.NoError(t, f.Close())

		_, err := LoadWorkbook(buf.Bytes())
		require.ErrorIs(t, err, ErrEmptySheet)
	})
}

func TestLoadWorkbook_CustomFormats(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	formats := []string{`0;[Red]-0`, `0 "dias"`, `\d0`, `0_d`, `dd/mm/yyyy`, `[$-409]d-mmm-yy`}
	for i, format := range formats {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, 7))
		custom := format
		style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &custom})
		require.NoError(t, err)
		require.NoError(t, f.SetCellStyle(sheet, cell, cell, style))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	grid, err := LoadWorkbook(buf.Bytes())
	require.NoError(t, err)

	for row, format := range formats[:4] {
		assert.Equal(t, NumberCell(7), grid.Cell(row+1, 1), format)
	}
	for row := 5; row <= 6; row++ {
		assert.Equal(t, CellDate, grid.Cell(row, 1).Kind, formats[row-1])
	}
}

func TestIsDateNumFmt(t *testing.T) {
	custom := func(s string) *string { return &s }

	assert.True(t, isDateNumFmt(14, nil))
	assert.True(t, isDateNumFmt(22, nil))
	assert.False(t, isDateNumFmt(1, nil))
	assert.False(t, isDateNumFmt(0, custom("")))
	assert.False(t, isDateNumFmt(0, custom("0;[Red]-0")))
	assert.False(t, isDateNumFmt(0, custom(`#,##0 "dni"`)))
	assert.True(t, isDateNumFmt(0, custom("yyyy-mm-dd")))
	assert.True(t, isDateNumFmt(0, custom(`[$-C0A]d "de" mmmm`)))
}
