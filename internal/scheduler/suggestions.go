package scheduler

import (
	"slices"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
)

const (
	scoreFreeOnDay  = 10
	reasonFreeOnDay = "Livre no dia"
)

// Suggestion é um candidato a substituto, com pontuação e os motivos atribuídos.
type Suggestion struct {
	PersonID int64    `json:"personID"`
	Name     string   `json:"name"`
	Score    int      `json:"score"`
	Reasons  []string `json:"reasons"`
}

// SuggestionInput reúne os dados já carregados para o cálculo de sugestões sobre
// uma escala publicada cujo ocupante precisa ser substituído.
type SuggestionInput struct {
	Target       *domain.Schedule   // a escala alvo; seus ocupantes são sempre excluídos
	DaySchedules []*domain.Schedule // todas as escalas do dia, de todos os ministérios
	Members      []*domain.Person   // membros ativos do ministério da escala alvo
	Exclude      []int64            // exclusões explícitas do chamador
}

// ScheduleSuggestions calcula os candidatos ordenados por pontuação decrescente.
// Fica de fora quem já está ocupado no dia em qualquer ministério, quem ocupa a
// escala alvo e quem consta na lista de exclusões. Hoje a pontuação tem um único
// motivo ("Livre no dia"); o formato comporta critérios mais ricos.
func ScheduleSuggestions(in *SuggestionInput) []*Suggestion {
	busy := make(map[int64]bool)
	for _, schedule := range in.DaySchedules {
		for _, assignment := range schedule.Assignments {
			busy[assignment.PersonID] = true
		}
	}
	for _, assignment := range in.Target.Assignments {
		busy[assignment.PersonID] = true
	}
	for _, personID := range in.Exclude {
		busy[personID] = true
	}

	suggestions := []*Suggestion{}
	for _, member := range in.Members {
		if busy[member.ID] {
			continue
		}
		suggestions = append(suggestions, &Suggestion{
			PersonID: member.ID,
			Name:     member.Name,
			Score:    scoreFreeOnDay,
			Reasons:  []string{reasonFreeOnDay},
		})
	}

	slices.SortStableFunc(suggestions, func(a, b *Suggestion) int {
		return b.Score - a.Score
	})

	return suggestions
}

// BestScheduleSuggestion devolve a sugestão mais bem pontuada, ou nil quando não
// existe substituto; o chamador deve apresentar "sem substituto disponível" sem
// tratar isso como erro.
func BestScheduleSuggestion(in *SuggestionInput) *Suggestion {
	suggestions := ScheduleSuggestions(in)
	if len(suggestions) == 0 {
		return nil
	}
	return suggestions[0]
}

// SuggestBestReplacement é a heurística mais simples usada no fluxo do líder:
// membros do ministério livres no dia, em ordem crescente de atribuições no mês
// (menor carga primeiro). É uma política distinta da pontuação por motivos acima
// e os dois pontos de chamada dependem dessa diferença.
func SuggestBestReplacement(members []*domain.Person, daySchedules []*domain.Schedule, monthSchedules []*domain.Schedule, exclude []int64) *domain.Person {
	busy := make(map[int64]bool)
	for _, schedule := range daySchedules {
		for _, assignment := range schedule.Assignments {
			busy[assignment.PersonID] = true
		}
	}
	for _, personID := range exclude {
		busy[personID] = true
	}

	monthlyCount := make(map[int64]int)
	for _, schedule := range monthSchedules {
		for _, assignment := range schedule.Assignments {
			monthlyCount[assignment.PersonID]++
		}
	}

	candidates := []*domain.Person{}
	for _, member := range members {
		if busy[member.ID] {
			continue
		}
		candidates = append(candidates, member)
	}
	if len(candidates) == 0 {
		return nil
	}

	slices.SortStableFunc(candidates, func(a, b *domain.Person) int {
		return monthlyCount[a.ID] - monthlyCount[b.ID]
	})

	return candidates[0]
}

// BestReplacementPersonID devolve apenas o ID do substituto de menor carga.
func BestReplacementPersonID(members []*domain.Person, daySchedules []*domain.Schedule, monthSchedules []*domain.Schedule, exclude []int64) (int64, bool) {
	person := SuggestBestReplacement(members, daySchedules, monthSchedules, exclude)
	if person == nil {
		return 0, false
	}
	return person.ID, true
}
