package scheduler

import (
	"math/rand"
	"testing"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

func available(m domain.AvailabilityMap, personID int64, dateKey, turn string) {
	if _, exists := m[personID]; !exists {
		m[personID] = make(map[string]bool)
	}
	m[personID][AvailabilityKey(dateKey, turn)] = true
}

func TestGeneratorPrefersUnusedOverDoubleShift(t *testing.T) {
	// A e B estão disponíveis para a noite, mas B já serviu de manhã: o nível
	// preferido vence o nível de turno dobrado e A deve ser escolhida
	a := &domain.Person{ID: 1, Name: "Ana"}
	b := &domain.Person{ID: 2, Name: "Bruno"}

	availability := make(domain.AvailabilityMap)
	available(availability, b.ID, "2025-12-21", "Manhã")
	available(availability, a.ID, "2025-12-21", "Noite")
	available(availability, b.ID, "2025-12-21", "Noite")

	in := &GeneratorInput{
		MinistryID: 1,
		Members:    []*domain.Person{a, b},
		ServiceDays: []*domain.ServiceDay{
			{ID: 10, DateKey: "2025-12-21", Label: "Domingo", Turns: []string{"Manhã", "Noite"}},
		},
		Availability: availability,
	}

	result := seededGenerator(1).Generate(in)

	require.Len(t, result.Schedules, 2)
	assert.Equal(t, b.ID, result.Schedules[0].Assignments[0].PersonID)
	assert.Equal(t, a.ID, result.Schedules[1].Assignments[0].PersonID)
	assert.Empty(t, result.Flags)
}

func TestGeneratorForcedAssignment(t *testing.T) {
	// ninguém declarou disponibilidade: ainda assim sai exatamente uma atribuição,
	// vinda do pool completo, e a execução fica marcada com forced_assignment
	a := &domain.Person{ID: 1, Name: "Ana"}
	b := &domain.Person{ID: 2, Name: "Bruno"}

	in := &GeneratorInput{
		MinistryID: 1,
		Members:    []*domain.Person{a, b},
		ServiceDays: []*domain.ServiceDay{
			{ID: 10, DateKey: "2025-12-21", Label: "Domingo", Turns: []string{"Manhã"}},
		},
		Availability: make(domain.AvailabilityMap),
	}

	result := seededGenerator(7).Generate(in)

	require.Len(t, result.Schedules, 1)
	require.Len(t, result.Schedules[0].Assignments, 1)
	assert.Contains(t, result.Flags, domain.FlagForcedAssignment)
}

func TestGeneratorDoubleShiftFlag(t *testing.T) {
	// só existe uma pessoa disponível para os dois turnos do dia: o segundo turno
	// degrada para o nível de turno dobrado e marca a escala e a execução
	a := &domain.Person{ID: 1, Name: "Ana"}

	availability := make(domain.AvailabilityMap)
	available(availability, a.ID, "2025-12-21", "Manhã")
	available(availability, a.ID, "2025-12-21", "Noite")

	in := &GeneratorInput{
		MinistryID: 1,
		Members:    []*domain.Person{a},
		ServiceDays: []*domain.ServiceDay{
			{ID: 10, DateKey: "2025-12-21", Label: "Domingo", Turns: []string{"Manhã", "Noite"}},
		},
		Availability: availability,
	}

	result := seededGenerator(3).Generate(in)

	require.Len(t, result.Schedules, 2)
	assert.Empty(t, result.Schedules[0].Flags)
	assert.Contains(t, result.Schedules[1].Flags, domain.FlagDoubleShift)
	assert.Contains(t, result.Flags, domain.FlagDoubleShift)
}

func TestGeneratorLoadBalancing(t *testing.T) {
	// com mais turnos do que membros e todo mundo sempre disponível, a diferença
	// entre a maior e a menor carga no fim da execução não passa de 1
	members := []*domain.Person{
		{ID: 1, Name: "Ana"},
		{ID: 2, Name: "Bruno"},
		{ID: 3, Name: "Carla"},
	}

	days := []*domain.ServiceDay{
		{ID: 10, DateKey: "2025-12-07", Label: "Domingo", Turns: []string{"Manhã", "Noite"}},
		{ID: 11, DateKey: "2025-12-14", Label: "Domingo", Turns: []string{"Manhã", "Noite"}},
		{ID: 12, DateKey: "2025-12-21", Label: "Domingo", Turns: []string{"Manhã", "Noite"}},
		{ID: 13, DateKey: "2025-12-28", Label: "Domingo", Turns: []string{"Manhã", "Noite"}},
	}

	availability := make(domain.AvailabilityMap)
	for _, member := range members {
		for _, day := range days {
			for _, turn := range day.Turns {
				available(availability, member.ID, day.DateKey, turn)
			}
		}
	}

	in := &GeneratorInput{
		MinistryID:   1,
		Members:      members,
		ServiceDays:  days,
		Availability: availability,
	}

	result := seededGenerator(11).Generate(in)

	require.Len(t, result.Schedules, 8)

	minLoad, maxLoad := result.LoadMap[1].Total, result.LoadMap[1].Total
	for _, load := range result.LoadMap {
		minLoad = min(minLoad, load.Total)
		maxLoad = max(maxLoad, load.Total)
	}
	assert.LessOrEqual(t, maxLoad-minLoad, 1, "cargas: %+v", result.LoadMap)
}

func TestGeneratorDeterministicWithFixedSeed(t *testing.T) {
	members := []*domain.Person{
		{ID: 1, Name: "Ana"},
		{ID: 2, Name: "Bruno"},
		{ID: 3, Name: "Carla"},
	}
	days := []*domain.ServiceDay{
		{ID: 10, DateKey: "2025-12-07", Label: "Domingo", Turns: []string{"Manhã", "Noite"}},
		{ID: 11, DateKey: "2025-12-14", Label: "Domingo", Turns: []string{"Manhã", "Noite"}},
	}
	availability := make(domain.AvailabilityMap)
	for _, member := range members {
		for _, day := range days {
			for _, turn := range day.Turns {
				available(availability, member.ID, day.DateKey, turn)
			}
		}
	}

	in := &GeneratorInput{MinistryID: 1, Members: members, ServiceDays: days, Availability: availability}

	first := seededGenerator(42).Generate(in)
	second := seededGenerator(42).Generate(in)

	require.Len(t, second.Schedules, len(first.Schedules))
	for i := range first.Schedules {
		assert.Equal(t, first.Schedules[i].Assignments, second.Schedules[i].Assignments)
	}
}

func TestGeneratorSkipsWithoutMembers(t *testing.T) {
	in := &GeneratorInput{
		MinistryID: 1,
		ServiceDays: []*domain.ServiceDay{
			{ID: 10, DateKey: "2025-12-21", Label: "Domingo", Turns: []string{"Manhã"}},
		},
		Availability: make(domain.AvailabilityMap),
	}

	result := seededGenerator(1).Generate(in)

	assert.Empty(t, result.Schedules)
	assert.Empty(t, result.Flags)
}

func TestGeneratorSchedulesAreDraftsWithSingleAssignee(t *testing.T) {
	members := []*domain.Person{{ID: 1, Name: "Ana"}, {ID: 2, Name: "Bruno"}}

	availability := make(domain.AvailabilityMap)
	available(availability, 1, "2025-12-21", "Manhã")
	available(availability, 2, "2025-12-21", "Manhã")

	in := &GeneratorInput{
		MinistryID: 4,
		Members:    members,
		ServiceDays: []*domain.ServiceDay{
			{ID: 10, DateKey: "2025-12-21", Label: "Domingo", Turns: []string{"Manhã"}},
		},
		Availability: availability,
	}

	result := seededGenerator(5).Generate(in)

	require.Len(t, result.Schedules, 1)
	schedule := result.Schedules[0]
	assert.Equal(t, domain.ScheduleStatusDraft, schedule.Status)
	assert.Equal(t, int64(4), schedule.MinistryID)
	assert.Equal(t, int64(10), schedule.ServiceDayID)
	assert.Equal(t, "Manhã", schedule.ServiceLabel)
	require.Len(t, schedule.Assignments, 1)
	assert.Equal(t, domain.AttendancePending, schedule.Assignments[0].Attendance)
}
