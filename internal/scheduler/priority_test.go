package scheduler

import (
	"testing"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByDayPriority(t *testing.T) {
	leader := &domain.Person{ID: 1, Name: "Ana", LeaderOfMinistryIDs: []int64{10}}
	usedNonLeader := &domain.Person{ID: 2, Name: "Bruno"}
	freeNonLeader := &domain.Person{ID: 3, Name: "Carla"}
	usedLeader := &domain.Person{ID: 4, Name: "Davi", LeaderOfMinistryIDs: []int64{11}}

	usage := NewDayUsage()
	usage.Record("2025-12-21", usedNonLeader.ID, 10)
	usage.Record("2025-12-21", usedLeader.ID, 10)

	in := []*domain.Person{leader, usedNonLeader, freeNonLeader, usedLeader}
	out := SortByDayPriority(in, "2025-12-21", usage)

	// não usados antes de usados; dentro de cada grupo, não-líderes antes de líderes
	require.Len(t, out, 4)
	assert.Equal(t, []int64{3, 1, 2, 4}, []int64{out[0].ID, out[1].ID, out[2].ID, out[3].ID})

	// a entrada não pode ser modificada
	assert.Equal(t, []int64{1, 2, 3, 4}, []int64{in[0].ID, in[1].ID, in[2].ID, in[3].ID})
}

func TestSortByDayPriorityIsStable(t *testing.T) {
	p1 := &domain.Person{ID: 1, Name: "Ana"}
	p2 := &domain.Person{ID: 2, Name: "Bruno"}
	p3 := &domain.Person{ID: 3, Name: "Carla"}

	out := SortByDayPriority([]*domain.Person{p1, p2, p3}, "2025-12-21", NewDayUsage())

	assert.Equal(t, []int64{1, 2, 3}, []int64{out[0].ID, out[1].ID, out[2].ID})
}
