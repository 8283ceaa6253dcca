package scheduler

import (
	"slices"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
)

// SortByDayPriority ordena os candidatos de um ministério para uma data: quem ainda
// não serviu no dia vem antes de quem já serviu e, dentro de cada grupo, não-líderes
// vêm antes de líderes. Assim o rodízio consome primeiro o pessoal escasso e deixa
// os líderes (que têm a válvula de escape da supervisão) para o fim.
//
// A ordenação é estável e não modifica a entrada.
func SortByDayPriority(candidates []*domain.Person, dateKey string, usage *DayUsage) []*domain.Person {
	out := make([]*domain.Person, len(candidates))
	copy(out, candidates)

	slices.SortStableFunc(out, func(a, b *domain.Person) int {
		if c := cmpBool(usage.Used(dateKey, a.ID), usage.Used(dateKey, b.ID)); c != 0 {
			return c
		}
		return cmpBool(a.IsLeader(), b.IsLeader())
	})

	return out
}

// cmpBool ordena false antes de true.
func cmpBool(a, b bool) int {
	switch {
	case !a && b:
		return -1
	case a && !b:
		return 1
	default:
		return 0
	}
}
