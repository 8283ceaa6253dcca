package scheduler

import (
	"math/rand"
	"slices"
	"time"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
)

// pesos da pontuação de elegibilidade (quanto menor a pontuação, mais elegível)
const (
	penaltyUsedToday      = 10 // já colocado em outro turno do mesmo dia
	penaltyLastServiceDay = 3  // a última atribuição foi neste mesmo dia
	penaltyFallbackTier   = 50 // candidato vindo de um nível degradado
)

type candidateTier int

const (
	tierPreferred candidateTier = iota // disponível e ainda não usado no dia
	tierAvailable                      // disponível, mas já usado no dia
	tierForced                         // ninguém disponível; pool completo de membros
)

// LoadInfo acumula a carga de uma pessoa durante uma única execução do gerador.
// É sempre recomputado do zero a cada execução, nunca persistido.
type LoadInfo struct {
	Total          int    `json:"total"`
	LastServiceDay string `json:"lastServiceDay,omitempty"`
}

type GeneratorInput struct {
	MinistryID   int64
	Members      []*domain.Person
	ServiceDays  []*domain.ServiceDay
	Availability domain.AvailabilityMap
}

type GenerationResult struct {
	Schedules []*domain.GeneratedSchedule
	Flags     []domain.ScheduleFlag // flags globais da execução, deduplicadas
	LoadMap   map[int64]*LoadInfo
}

// Generator é o algoritmo de produção: para cada (dia, turno) escolhe exatamente
// uma pessoa, balanceando a carga mensal e degradando por níveis quando o pool
// preferido está vazio.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator cria o gerador mensal. Em produção rng pode ser nil (semente pelo
// relógio); os testes injetam uma fonte com semente fixa para obter escolhas
// determinísticas no desempate.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Generate produz uma escala de rascunho por (dia, turno). O desempate entre os
// candidatos de menor pontuação é uniforme ao acaso: executar duas vezes costuma
// produzir escalas diferentes, porém igualmente justas.
func (g *Generator) Generate(in *GeneratorInput) *GenerationResult {
	result := &GenerationResult{
		Schedules: []*domain.GeneratedSchedule{},
		Flags:     []domain.ScheduleFlag{},
		LoadMap:   make(map[int64]*LoadInfo),
	}

	// sem membros não há o que gerar; isso não é um erro
	if len(in.Members) == 0 {
		return result
	}

	for _, member := range in.Members {
		result.LoadMap[member.ID] = &LoadInfo{}
	}

	for _, day := range in.ServiceDays {
		usedToday := make(map[int64]bool)

		for _, turn := range day.Turns {
			key := AvailabilityKey(day.DateKey, turn)

			available := []*domain.Person{}
			for _, member := range in.Members {
				if in.Availability[member.ID][key] {
					available = append(available, member)
				}
			}

			preferred := []*domain.Person{}
			for _, member := range available {
				if !usedToday[member.ID] {
					preferred = append(preferred, member)
				}
			}

			// escada de degradação: preferidos > disponíveis já usados > todos
			var candidates []*domain.Person
			var tier candidateTier
			switch {
			case len(preferred) > 0:
				candidates, tier = preferred, tierPreferred
			case len(available) > 0:
				candidates, tier = available, tierAvailable
				addRunFlag(result, domain.FlagDoubleShift)
			default:
				candidates, tier = in.Members, tierForced
				addRunFlag(result, domain.FlagForcedAssignment)
			}

			chosen := g.pick(candidates, day.DateKey, usedToday, result.LoadMap, tier)

			schedule := &domain.GeneratedSchedule{
				MinistryID:   in.MinistryID,
				ServiceDayID: day.ID,
				ServiceDate:  day.DateKey,
				ServiceLabel: turn,
				Status:       domain.ScheduleStatusDraft,
				Assignments: []domain.ScheduleAssignment{
					{
						PersonID:   chosen.ID,
						MinistryID: in.MinistryID,
						Attendance: domain.AttendancePending,
					},
				},
			}
			if usedToday[chosen.ID] {
				schedule.Flags = append(schedule.Flags, domain.FlagDoubleShift)
			}
			result.Schedules = append(result.Schedules, schedule)

			load := result.LoadMap[chosen.ID]
			load.Total++
			load.LastServiceDay = day.DateKey
			usedToday[chosen.ID] = true
		}
	}

	return result
}

// pick pontua os candidatos e sorteia uniformemente entre os empatados na menor
// pontuação.
func (g *Generator) pick(candidates []*domain.Person, dateKey string, usedToday map[int64]bool, loadMap map[int64]*LoadInfo, tier candidateTier) *domain.Person {
	bestScore := 0
	ties := []*domain.Person{}

	for _, candidate := range candidates {
		score := 0
		if load, exists := loadMap[candidate.ID]; exists {
			score += load.Total
			if load.LastServiceDay == dateKey {
				score += penaltyLastServiceDay
			}
		}
		if usedToday[candidate.ID] {
			score += penaltyUsedToday
		}
		if tier != tierPreferred {
			score += penaltyFallbackTier
		}

		switch {
		case len(ties) == 0 || score < bestScore:
			bestScore = score
			ties = []*domain.Person{candidate}
		case score == bestScore:
			ties = append(ties, candidate)
		}
	}

	return ties[g.rng.Intn(len(ties))]
}

func addRunFlag(result *GenerationResult, flag domain.ScheduleFlag) {
	if !slices.Contains(result.Flags, flag) {
		result.Flags = append(result.Flags, flag)
	}
}
