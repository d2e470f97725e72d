package importer

func texts(values ...string) []Cell {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = TextCell(v)
	}
	return cells
}

// sheetAt кладёт заголовок в строку headerRow, данные — сразу под ним.
func sheetAt(headerRow int, header []Cell, data ...[]Cell) *Grid {
	rows := make([][]Cell, headerRow-1, headerRow+len(data))
	rows = append(rows, header)
	rows = append(rows, data...)
	return NewGrid(rows)
}
