package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/cup-roster/models"
)

func TestAllocator_JerseyNumbersSkipExisting(t *testing.T) {
	drafts := []models.DraftPlayer{{SourceRow: 25}, {SourceRow: 26}}

	a := NewAllocator([]string{"1", "2", "4"}, nil)
	a.AssignJerseyNumbers(drafts)

	assert.Equal(t, "3", drafts[0].JerseyNumber)
	assert.Equal(t, "5", drafts[1].JerseyNumber)
}

func TestAllocator_KeepsProvidedValues(t *testing.T) {
	drafts := []models.DraftPlayer{
		{SourceRow: 25, JerseyNumber: "9", DNI: "30111222"},
		{SourceRow: 26},
	}

	a := NewAllocator(nil, nil)
	a.Allocate(drafts)

	assert.Equal(t, "9", drafts[0].JerseyNumber)
	assert.Equal(t, "30111222", drafts[0].DNI)
	assert.Equal(t, "1", drafts[1].JerseyNumber)
	assert.Equal(t, "40000000", drafts[1].DNI)
}

func TestAllocator_IgnoresSheetValues(t *testing.T) {
	drafts := []models.DraftPlayer{
		{SourceRow: 26, JerseyNumber: "1", DNI: "40000000"},
		{SourceRow: 25},
	}

	NewAllocator(nil, nil).Allocate(drafts)

	// после сортировки строка 25 первая и получает те же значения, что стоят в строке 26
	require.Equal(t, 25, drafts[0].SourceRow)
	assert.Equal(t, "1", drafts[0].JerseyNumber)
	assert.Equal(t, "40000000", drafts[0].DNI)
	assert.Equal(t, "1", drafts[1].JerseyNumber)
	assert.Equal(t, "40000000", drafts[1].DNI)
}

func TestAllocator_DNIsSkipExisting(t *testing.T) {
	drafts := make([]models.DraftPlayer, 3)
	for i := range drafts {
		drafts[i].SourceRow = 25 + i
	}

	a := NewAllocator(nil, []string{"40000000", "40000002", ""})
	a.AssignDNIs(drafts)

	assert.Equal(t, []string{"40000001", "40000003", "40000004"},
		[]string{drafts[0].DNI, drafts[1].DNI, drafts[2].DNI})
}

func TestAllocator_UniqueWithinBatch(t *testing.T) {
	drafts := make([]models.DraftPlayer, 50)
	for i := range drafts {
		drafts[i].SourceRow = 100 - i
	}

	NewAllocator([]string{"3", "7", "11"}, []string{"40000005"}).Allocate(drafts)

	jerseys := make(map[string]bool)
	dnis := make(map[string]bool)
	for _, d := range drafts {
		assert.False(t, jerseys[d.JerseyNumber], "jersey %s assigned twice", d.JerseyNumber)
		assert.False(t, dnis[d.DNI], "dni %s assigned twice", d.DNI)
		jerseys[d.JerseyNumber] = true
		dnis[d.DNI] = true
	}
	for _, taken := range []string{"3", "7", "11"} {
		assert.False(t, jerseys[taken])
	}
	assert.False(t, dnis["40000005"])
}

func TestAllocator_Deterministic(t *testing.T) {
	build := func() []models.DraftPlayer {
		return []models.DraftPlayer{{SourceRow: 30}, {SourceRow: 25, JerseyNumber: "2"}, {SourceRow: 27}}
	}
	first, second := build(), build()
	NewAllocator([]string{"1"}, nil).Allocate(first)
	NewAllocator([]string{"1"}, nil).Allocate(second)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"2", "2", "3"},
		[]string{first[0].JerseyNumber, first[1].JerseyNumber, first[2].JerseyNumber})
}
