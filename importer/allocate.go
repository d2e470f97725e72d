package importer

import (
	"sort"
	"strconv"

	"github.com/Dosada05/cup-roster/models"
)

const (
	firstJerseyNumber = 1
	// Временные DNI выдаются с 40.000.000, чтобы не пересекаться с реальными.
	placeholderDNIBase = 40_000_000
)

// Allocator хранит номера и DNI, уже сохранённые у команды, и выданные им
// самим. Живёт одну загрузку.
// Не потокобезопасен и не переиспользуется между загрузками.
type Allocator struct {
	jerseys    map[string]struct{}
	dnis       map[string]struct{}
	nextJersey int
	nextDNI    int
}

// NewAllocator засевает состояние значениями, уже сохранёнными для команды.
func NewAllocator(existingJerseys, existingDNIs []string) *Allocator {
	a := &Allocator{
		jerseys:    make(map[string]struct{}, len(existingJerseys)),
		dnis:       make(map[string]struct{}, len(existingDNIs)),
		nextJersey: firstJerseyNumber,
		nextDNI:    placeholderDNIBase,
	}
	for _, n := range existingJerseys {
		if n != "" {
			a.jerseys[n] = struct{}{}
		}
	}
	for _, d := range existingDNIs {
		if d != "" {
			a.dnis[d] = struct{}{}
		}
	}
	return a
}

func (a *Allocator) NextJerseyNumber() string {
	for {
		candidate := strconv.Itoa(a.nextJersey)
		a.nextJersey++
		if _, taken := a.jerseys[candidate]; !taken {
			a.jerseys[candidate] = struct{}{}
			return candidate
		}
	}
}

func (a *Allocator) NextDNI() string {
	for {
		candidate := strconv.Itoa(a.nextDNI)
		a.nextDNI++
		if _, taken := a.dnis[candidate]; !taken {
			a.dnis[candidate] = struct{}{}
			return candidate
		}
	}
}

// AssignJerseyNumbers выдаёт номера черновикам без номера. Порядок обхода —
// порядок слайса; вызывающий сортирует его через SortBySourceRow.
func (a *Allocator) AssignJerseyNumbers(drafts []models.DraftPlayer) {
	for i := range drafts {
		if drafts[i].JerseyNumber == "" {
			drafts[i].JerseyNumber = a.NextJerseyNumber()
		}
	}
}

func (a *Allocator) AssignDNIs(drafts []models.DraftPlayer) {
	for i := range drafts {
		if drafts[i].DNI == "" {
			drafts[i].DNI = a.NextDNI()
		}
	}
}

// Allocate — полный шаг распределения для партии: сортировка по строке,
// затем номера и DNI. Значения, проставленные в самой таблице, не резервируются:
// совпадение с выданным номером всплывает при записи как ошибка строки.
func (a *Allocator) Allocate(drafts []models.DraftPlayer) {
	SortBySourceRow(drafts)
	a.AssignJerseyNumbers(drafts)
	a.AssignDNIs(drafts)
}

func SortBySourceRow(drafts []models.DraftPlayer) {
	sort.SliceStable(drafts, func(i, j int) bool {
		return drafts[i].SourceRow < drafts[j].SourceRow
	})
}
