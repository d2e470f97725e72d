package importer

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/cup-roster/models"
)

// DefaultBirthDate подставляется, когда дату рождения не удалось прочитать.
// Строку при этом не отбрасываем: таблицы от клубов часто заполнены кое-как.
var DefaultBirthDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

var birthDateLayouts = []string{
	"2006-1-2",
	"2/1/2006",
	"2-1-2006",
	"2006/1/2",
}

const (
	minDNIDigits = 7
	maxDNIDigits = 8
)

var importantFields = []Field{FieldSurname, FieldGivenName, FieldDNI}

// IsEmptyRow сообщает, что в строке нет ни фамилии, ни имени, ни DNI.
func IsEmptyRow(sheet Sheet, row int, headers HeaderMap) bool {
	for _, f := range importantFields {
		col, ok := headers.Column(f)
		if !ok {
			continue
		}
		if !sheet.Cell(row, col).Blank() {
			return false
		}
	}
	return true
}

// ExtractPlayer собирает DraftPlayer из строки row. ok == false, если нет
// фамилии или имени: такая строка считается мусором и в отчёт не попадает.
func ExtractPlayer(sheet Sheet, row int, headers HeaderMap, position models.Position) (models.DraftPlayer, bool) {
	cell := func(f Field) (Cell, bool) {
		col, ok := headers.Column(f)
		if !ok {
			return Cell{}, false
		}
		c := sheet.Cell(row, col)
		// Числовой ноль в таблицах клубов означает «не заполнено».
		if c.Kind == CellNumber && c.Number == 0 {
			return Cell{}, false
		}
		return c, !c.Blank()
	}

	draft := models.DraftPlayer{
		BirthDate: DefaultBirthDate,
		Position:  position,
		SourceRow: row,
	}

	surname, ok := cell(FieldSurname)
	if !ok {
		return models.DraftPlayer{}, false
	}
	draft.LastName = strings.TrimSpace(surname.String())

	givenName, ok := cell(FieldGivenName)
	if !ok {
		return models.DraftPlayer{}, false
	}
	draft.FirstName = strings.TrimSpace(givenName.String())

	if c, ok := cell(FieldDNI); ok {
		draft.DNI, _ = NormalizeDNI(c.String())
	}
	if c, ok := cell(FieldBirthDate); ok {
		draft.BirthDate = parseBirthDateCell(c)
	}
	if c, ok := cell(FieldJerseyNumber); ok {
		if n, ok := parseInteger(c); ok {
			draft.JerseyNumber = strconv.Itoa(n)
		}
	}
	if c, ok := cell(FieldPhone); ok {
		draft.Phone = strings.TrimSpace(c.String())
	}
	if c, ok := cell(FieldCohortYear); ok {
		if n, ok := parseInteger(c); ok {
			draft.CohortYear = &n
		}
	}
	if c, ok := cell(FieldOccupation); ok {
		draft.Occupation = strings.TrimSpace(c.String())
	}

	return draft, true
}

// NormalizeDNI оставляет только цифры. Меньше семи цифр — DNI нет,
// больше восьми — обрезаем до первых восьми.
func NormalizeDNI(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < minDNIDigits {
		return "", false
	}
	if len(digits) > maxDNIDigits {
		digits = digits[:maxDNIDigits]
	}
	return digits, true
}

// ParseBirthDate пробует форматы по очереди; при неудаче — DefaultBirthDate.
func ParseBirthDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return DefaultBirthDate
}

func parseBirthDateCell(c Cell) time.Time {
	switch c.Kind {
	case CellDate:
		y, m, d := c.Time.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case CellText:
		return ParseBirthDate(c.Text)
	default:
		return DefaultBirthDate
	}
}

func parseInteger(c Cell) (int, bool) {
	switch c.Kind {
	case CellNumber:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return 0, false
		}
		return int(c.Number), true
	case CellText:
		n, err := strconv.Atoi(strings.TrimSpace(c.Text))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
