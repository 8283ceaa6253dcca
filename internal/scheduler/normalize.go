package scheduler

import (
	"strings"
	"unicode"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeTurnLabel reduz um rótulo de turno à forma canônica usada nas chaves de
// disponibilidade: sem acentos e em minúsculas ("Manhã" -> "manha"). Sem isso a
// disponibilidade declarada não casaria com os turnos dos dias de culto.
func NormalizeTurnLabel(label string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, label)
	if err != nil {
		s = label
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// AvailabilityKey monta a chave "dataKey|turnoNormalizado" de uma declaração.
func AvailabilityKey(dateKey string, turnLabel string) string {
	return dateKey + "|" + NormalizeTurnLabel(turnLabel)
}

// BuildAvailabilityMap indexa as declarações por pessoa e chave normalizada. A
// ausência de uma chave significa apenas "não declarado", nunca "indisponível".
func BuildAvailabilityMap(entries []*domain.AvailabilityEntry) domain.AvailabilityMap {
	m := make(domain.AvailabilityMap)
	for _, entry := range entries {
		if _, exists := m[entry.PersonID]; !exists {
			m[entry.PersonID] = make(map[string]bool)
		}
		m[entry.PersonID][AvailabilityKey(entry.DateKey, entry.TurnLabel)] = true
	}
	return m
}
