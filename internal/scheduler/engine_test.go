package scheduler

import (
	"testing"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineAssignsDistinctPeoplePerDay(t *testing.T) {
	// SOM com Mesa e PA: duas funções preenchidas por duas pessoas distintas no
	// mesmo dia, já que SOM não é o ministério de supervisão.
	p1 := &domain.Person{ID: 1, Name: "Ana", LeaderOfMinistryIDs: []int64{1}}
	p2 := &domain.Person{ID: 2, Name: "Bruno"}
	p3 := &domain.Person{ID: 3, Name: "Carla"}

	som := &MinistryRoster{
		ID:     1,
		Name:   "SOM",
		Roles:  RolesForMinistry("SOM"),
		People: []*domain.Person{p1, p2, p3},
	}

	assignments := NewEngine(som, []string{"2025-12-21"}).Run()

	require.Len(t, assignments, 2)
	assert.Equal(t, "Mesa", assignments[0].Role)
	assert.Equal(t, "PA", assignments[1].Role)
	assert.NotEqual(t, assignments[0].PersonID, assignments[1].PersonID)
	for _, a := range assignments {
		assert.Equal(t, "2025-12-21", a.Date)
		assert.Equal(t, int64(1), a.MinistryID)
		assert.Equal(t, "SOM", a.MinistryName)
	}
}

func TestEngineLeavesRoleUnfilledWhenPoolExhausts(t *testing.T) {
	// uma única pessoa não pode cobrir Mesa e PA no mesmo dia; a segunda função
	// fica vazia em silêncio
	p1 := &domain.Person{ID: 1, Name: "Ana"}

	som := &MinistryRoster{
		ID:     1,
		Name:   "SOM",
		Roles:  []string{"Mesa", "PA"},
		People: []*domain.Person{p1},
	}

	assignments := NewEngine(som, []string{"2025-12-21"}).Run()

	require.Len(t, assignments, 1)
	assert.Equal(t, "Mesa", assignments[0].Role)
	assert.Equal(t, int64(1), assignments[0].PersonID)
}

func TestEngineRotatesCursorAcrossDates(t *testing.T) {
	p1 := &domain.Person{ID: 1, Name: "Ana"}
	p2 := &domain.Person{ID: 2, Name: "Bruno"}

	ministry := &MinistryRoster{
		ID:     5,
		Name:   "PROJEÇÃO",
		Roles:  []string{"Projeção"},
		People: []*domain.Person{p1, p2},
	}

	assignments := NewEngine(ministry, []string{"2025-12-07", "2025-12-14"}).Run()

	require.Len(t, assignments, 2)
	// o cursor persiste entre as datas: cada domingo fica com uma pessoa diferente
	assert.NotEqual(t, assignments[0].PersonID, assignments[1].PersonID)
}

func TestEngineWithoutPeople(t *testing.T) {
	ministry := &MinistryRoster{ID: 1, Name: "SOM", Roles: []string{"Mesa"}}

	assignments := NewEngine(ministry, []string{"2025-12-21"}).Run()

	assert.Empty(t, assignments)
}

func TestEngineSupervisionAllowsLeaderSecondAssignment(t *testing.T) {
	// dentro de uma única execução da supervisão, um líder pode acumular funções
	// no mesmo dia desde que todo uso anterior seja em ministério que ele lidera
	leader := &domain.Person{ID: 1, Name: "Ana", LeaderOfMinistryIDs: []int64{3}}

	supervisao := &MinistryRoster{
		ID:     3,
		Name:   "SUPERVISÃO",
		Roles:  []string{"Supervisor", "Apoio"},
		People: []*domain.Person{leader},
	}

	assignments := NewEngine(supervisao, []string{"2025-12-21"}).Run()

	require.Len(t, assignments, 2)
	assert.Equal(t, int64(1), assignments[0].PersonID)
	assert.Equal(t, int64(1), assignments[1].PersonID)
}
