package scheduler

import (
	"testing"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeTurnLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"remove acentos", "Manhã", "manha"},
		{"minúsculas", "NOITE", "noite"},
		{"cedilha", "Celebração", "celebracao"},
		{"espacos nas pontas", "  Tarde ", "tarde"},
		{"rótulo custom", "Vigília de Oração", "vigilia de oracao"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTurnLabel(tt.label))
		})
	}
}

func TestAvailabilityKey(t *testing.T) {
	assert.Equal(t, "2025-12-21|manha", AvailabilityKey("2025-12-21", "Manhã"))
}

func TestBuildAvailabilityMap(t *testing.T) {
	entries := []*domain.AvailabilityEntry{
		{PersonID: 1, DateKey: "2025-12-21", TurnLabel: "Manhã"},
		{PersonID: 1, DateKey: "2025-12-21", TurnLabel: "Noite"},
		{PersonID: 2, DateKey: "2025-12-28", TurnLabel: "manha"},
	}

	m := BuildAvailabilityMap(entries)

	assert.True(t, m[1]["2025-12-21|manha"])
	assert.True(t, m[1]["2025-12-21|noite"])
	assert.True(t, m[2]["2025-12-28|manha"])
	// ausência significa apenas "não declarado"
	assert.False(t, m[2]["2025-12-21|manha"])
	assert.Nil(t, m[3])
}
