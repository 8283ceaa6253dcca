package scheduler

import (
	"testing"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregatorDropsGlobalDoubleBooking(t *testing.T) {
	// Bruno pertence a dois ministérios; o filtro global deve descartar a segunda
	// atribuição do dia sem reatribuir
	bruno := &domain.Person{ID: 2, Name: "Bruno"}

	som := &MinistryRoster{ID: 1, Name: "SOM", Roles: []string{"Mesa"}, People: []*domain.Person{bruno}}
	projecao := &MinistryRoster{ID: 2, Name: "PROJEÇÃO", Roles: []string{"Projeção"}, People: []*domain.Person{bruno}}

	assignments := GenerateForMinistries([]string{"2025-12-21"}, []*MinistryRoster{som, projecao})

	require.Len(t, assignments, 1)
	assert.Equal(t, "SOM", assignments[0].MinistryName)
}

func TestAggregatorSupervisionException(t *testing.T) {
	// Ana lidera o SOM e já foi usada nele; a atribuição extra na SUPERVISÃO é
	// permitida porque todo uso anterior do dia é em ministério que ela lidera
	ana := &domain.Person{ID: 1, Name: "Ana", LeaderOfMinistryIDs: []int64{1}}

	som := &MinistryRoster{ID: 1, Name: "SOM", Roles: []string{"Mesa"}, People: []*domain.Person{ana}}
	supervisao := &MinistryRoster{ID: 3, Name: "SUPERVISÃO", Roles: []string{"Supervisor"}, People: []*domain.Person{ana}}

	assignments := GenerateForMinistries([]string{"2025-12-21"}, []*MinistryRoster{som, supervisao})

	require.Len(t, assignments, 2)
	assert.Equal(t, "SOM", assignments[0].MinistryName)
	assert.Equal(t, "SUPERVISÃO", assignments[1].MinistryName)
	assert.Equal(t, int64(1), assignments[1].PersonID)
}

func TestAggregatorSupervisionDeniedForNonLeader(t *testing.T) {
	bruno := &domain.Person{ID: 2, Name: "Bruno"}

	som := &MinistryRoster{ID: 1, Name: "SOM", Roles: []string{"Mesa"}, People: []*domain.Person{bruno}}
	supervisao := &MinistryRoster{ID: 3, Name: "SUPERVISÃO", Roles: []string{"Supervisor"}, People: []*domain.Person{bruno}}

	assignments := GenerateForMinistries([]string{"2025-12-21"}, []*MinistryRoster{som, supervisao})

	require.Len(t, assignments, 1)
	assert.Equal(t, "SOM", assignments[0].MinistryName)
}

func TestAggregatorNoDoubleBookingProperty(t *testing.T) {
	// propriedade: em nenhuma data uma pessoa aparece em dois ministérios, salvo a
	// exceção da supervisão
	people := []*domain.Person{
		{ID: 1, Name: "Ana", LeaderOfMinistryIDs: []int64{1}},
		{ID: 2, Name: "Bruno"},
		{ID: 3, Name: "Carla"},
		{ID: 4, Name: "Davi"},
	}

	ministries := []*MinistryRoster{
		{ID: 1, Name: "SOM", Roles: RolesForMinistry("SOM"), People: people},
		{ID: 2, Name: "RECEPÇÃO", Roles: RolesForMinistry("RECEPÇÃO"), People: people},
		{ID: 3, Name: "SUPERVISÃO", Roles: RolesForMinistry("SUPERVISÃO"), People: people},
	}

	dates := []string{"2025-12-07", "2025-12-14", "2025-12-21", "2025-12-28"}
	assignments := GenerateForMinistries(dates, ministries)

	peopleByID := map[int64]*domain.Person{}
	for _, p := range people {
		peopleByID[p.ID] = p
	}

	usedBy := map[string]map[int64][]string{} // date -> personID -> ministryNames
	for _, a := range assignments {
		if usedBy[a.Date] == nil {
			usedBy[a.Date] = map[int64][]string{}
		}
		usedBy[a.Date][a.PersonID] = append(usedBy[a.Date][a.PersonID], a.MinistryName)
	}

	for date, byPerson := range usedBy {
		for personID, names := range byPerson {
			if len(names) <= 1 {
				continue
			}
			// a única duplicação tolerada é a exceção da supervisão para líderes
			assert.True(t, peopleByID[personID].IsLeader(),
				"pessoa %d duplicada em %s sem ser líder: %v", personID, date, names)
			assert.Equal(t, SupervisionMinistry, names[len(names)-1],
				"a atribuição extra da pessoa %d em %s deveria ser da supervisão", personID, date)
		}
	}
}
