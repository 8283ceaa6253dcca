package scheduler

import (
	"testing"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCanAssign(t *testing.T) {
	const (
		somID        int64 = 1
		louvorID     int64 = 2
		supervisaoID int64 = 3
	)

	leaderOfSOM := &domain.Person{ID: 10, Name: "Ana", LeaderOfMinistryIDs: []int64{somID}}
	nonLeader := &domain.Person{ID: 11, Name: "Bruno"}

	tests := []struct {
		name     string
		setup    func(u *DayUsage)
		person   *domain.Person
		ministry string
		want     bool
	}{
		{
			name:     "sem uso no dia, sempre pode",
			setup:    func(u *DayUsage) {},
			person:   nonLeader,
			ministry: "SOM",
			want:     true,
		},
		{
			name: "já usado no dia, ministério comum",
			setup: func(u *DayUsage) {
				u.Record("2025-12-21", nonLeader.ID, somID)
			},
			person:   nonLeader,
			ministry: "LOUVOR",
			want:     false,
		},
		{
			name: "não-líder não ganha a exceção nem na supervisão",
			setup: func(u *DayUsage) {
				u.Record("2025-12-21", nonLeader.ID, somID)
			},
			person:   nonLeader,
			ministry: "SUPERVISÃO",
			want:     false,
		},
		{
			name: "líder usado apenas no ministério que lidera pode ir à supervisão",
			setup: func(u *DayUsage) {
				u.Record("2025-12-21", leaderOfSOM.ID, somID)
			},
			person:   leaderOfSOM,
			ministry: "SUPERVISÃO",
			want:     true,
		},
		{
			name: "líder usado em ministério que não lidera não ganha a exceção",
			setup: func(u *DayUsage) {
				u.Record("2025-12-21", leaderOfSOM.ID, somID)
				u.Record("2025-12-21", leaderOfSOM.ID, louvorID)
			},
			person:   leaderOfSOM,
			ministry: "SUPERVISÃO",
			want:     false,
		},
		{
			name: "líder usado no dia não pode repetir em ministério comum",
			setup: func(u *DayUsage) {
				u.Record("2025-12-21", leaderOfSOM.ID, somID)
			},
			person:   leaderOfSOM,
			ministry: "LOUVOR",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage := NewDayUsage()
			tt.setup(usage)
			assert.Equal(t, tt.want, usage.CanAssign("2025-12-21", tt.person, tt.ministry))
		})
	}
}

func TestDayUsageIsScopedByDate(t *testing.T) {
	person := &domain.Person{ID: 10, Name: "Ana"}

	usage := NewDayUsage()
	usage.Record("2025-12-21", person.ID, 1)

	assert.False(t, usage.CanAssign("2025-12-21", person, "LOUVOR"))
	assert.True(t, usage.CanAssign("2025-12-28", person, "LOUVOR"), "o uso de um dia não afeta outro dia")
}
