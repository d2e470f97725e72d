package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field — смысловое поле игрока, которое ищется в строке заголовков.
type Field string

const (
	FieldSurname      Field = "surname"
	FieldGivenName    Field = "given_name"
	FieldDNI          Field = "national_id"
	FieldBirthDate    Field = "birth_date"
	FieldJerseyNumber Field = "jersey_number"
	FieldPhone        Field = "phone"
	FieldCohortYear   Field = "cohort_year"
	FieldOccupation   Field = "occupation"
)

var knownFields = map[Field]bool{
	FieldSurname: true, FieldGivenName: true, FieldDNI: true, FieldBirthDate: true,
	FieldJerseyNumber: true, FieldPhone: true, FieldCohortYear: true, FieldOccupation: true,
}

// HeaderMap: поле -> номер колонки (с 1). Ненайденного поля в карте нет.
type HeaderMap map[Field]int

func (m HeaderMap) Column(f Field) (int, bool) {
	col, ok := m[f]
	return col, ok
}

// KeywordGroup описывает, как узнать колонку поля по тексту заголовка.
// FirstOnly оставляет только первую подходящую колонку в строке.
type KeywordGroup struct {
	Field         Field    `yaml:"field"`
	Keywords      []string `yaml:"keywords"`
	NumericHeader bool     `yaml:"numeric_header,omitempty"`
	FirstOnly     bool     `yaml:"first_only,omitempty"`
}

func (g KeywordGroup) matches(header string) bool {
	if g.NumericHeader && isDigits(header) {
		return true
	}
	for _, kw := range g.Keywords {
		if strings.Contains(header, kw) {
			return true
		}
	}
	return false
}

// KeywordTable — упорядоченный список групп; для колонки побеждает первая совпавшая.
type KeywordTable []KeywordGroup

func DefaultKeywordTable() KeywordTable {
	return KeywordTable{
		{Field: FieldSurname, Keywords: []string{"APELLIDO", "SURNAME", "LAST"}},
		{Field: FieldGivenName, Keywords: []string{"NOMBRE", "NAME", "FIRST"}},
		{Field: FieldDNI, Keywords: []string{"DNI", "DOCUMENTO", "ID", "CEDULA"}},
		{Field: FieldBirthDate, Keywords: []string{"FECHA", "NAC", "BIRTH", "BORN", "NACIMIENTO"}},
		{Field: FieldJerseyNumber, Keywords: []string{"NUM", "NUMERO", "NUMBER", "#"}, NumericHeader: true, FirstOnly: true},
		{Field: FieldPhone, Keywords: []string{"CELULAR", "TELEFONO", "PHONE", "TEL"}},
		{Field: FieldCohortYear, Keywords: []string{"PROMO", "PROMOCION", "CLASS", "YEAR"}},
		{Field: FieldOccupation, Keywords: []string{"OFICIO", "PROFESION", "OCCUPATION", "JOB"}},
	}
}

type keywordFile struct {
	Groups []KeywordGroup `yaml:"groups"`
}

// LoadKeywordTable читает таблицу ключевых слов из YAML. Таблица из файла
// полностью заменяет встроенную, порядок групп сохраняется.
func LoadKeywordTable(r io.Reader) (KeywordTable, error) {
	var kf keywordFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&kf); err != nil {
		return nil, fmt.Errorf("failed to decode keyword table: %w", err)
	}
	if len(kf.Groups) == 0 {
		return nil, errors.New("keyword table has no groups")
	}

	table := make(KeywordTable, 0, len(kf.Groups))
	for i, g := range kf.Groups {
		if !knownFields[g.Field] {
			return nil, fmt.Errorf("keyword group %d: unknown field %q", i, g.Field)
		}
		if len(g.Keywords) == 0 && !g.NumericHeader {
			return nil, fmt.Errorf("keyword group %d (%s): no keywords", i, g.Field)
		}
		for j, kw := range g.Keywords {
			g.Keywords[j] = strings.ToUpper(strings.TrimSpace(kw))
		}
		table = append(table, g)
	}
	return table, nil
}

// LocateHeaders строит HeaderMap по строке заголовков headerRow.
// Для обычных полей при повторе берётся последняя колонка, для FirstOnly — первая.
func LocateHeaders(sheet Sheet, headerRow int, table KeywordTable) HeaderMap {
	if table == nil {
		table = DefaultKeywordTable()
	}
	mapping := make(HeaderMap)
	for col := 1; col <= sheet.MaxColumn(); col++ {
		cell := sheet.Cell(headerRow, col)
		if cell.Blank() {
			continue
		}
		header := strings.ToUpper(strings.TrimSpace(cell.String()))

		for _, group := range table {
			if !group.matches(header) {
				continue
			}
			if _, taken := mapping[group.Field]; !(taken && group.FirstOnly) {
				mapping[group.Field] = col
			}
			break
		}
	}
	return mapping
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
