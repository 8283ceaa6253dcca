package scheduler

import "github.com/ibvida-dev/escala-manager/backend/internal/domain"

// MinistryRoster descreve um ministério para o motor de atribuição: suas funções
// (na ordem de prioridade de preenchimento) e seus membros com os vínculos de
// liderança já resolvidos.
type MinistryRoster struct {
	ID     int64
	Name   string
	Roles  []string
	People []*domain.Person
}

// Engine preenche as funções de um único ministério ao longo de um conjunto de
// datas, em rodízio determinístico com cursor persistente durante toda a execução.
// O desempate aqui nunca é aleatório, ao contrário do gerador mensal.
type Engine struct {
	ministry *MinistryRoster
	dates    []string
	usage    *DayUsage
	cursor   int
}

func NewEngine(ministry *MinistryRoster, dates []string) *Engine {
	return &Engine{
		ministry: ministry,
		dates:    dates,
		usage:    NewDayUsage(),
	}
}

// Run gera as atribuições de função. Para cada data, cada função (na ordem de
// declaração) tenta o próximo candidato da rotação que passe em CanAssign; se a
// rotação inteira falhar, a função fica vazia naquela data, em silêncio.
func (e *Engine) Run() []domain.RoleAssignment {
	assignments := []domain.RoleAssignment{}

	for _, date := range e.dates {
		// pessoal escasso na frente, líderes atrás
		ordered := SortByDayPriority(e.ministry.People, date, e.usage)

		for _, role := range e.ministry.Roles {
			person := e.nextCandidate(date, ordered)
			if person == nil {
				continue
			}

			assignments = append(assignments, domain.RoleAssignment{
				Date:         date,
				MinistryID:   e.ministry.ID,
				MinistryName: e.ministry.Name,
				Role:         role,
				PersonID:     person.ID,
				PersonName:   person.Name,
			})
			e.usage.Record(date, person.ID, e.ministry.ID)
		}
	}

	return assignments
}

// nextCandidate tenta até len(ordered) pessoas a partir do cursor compartilhado
// da execução, pulando quem não pode ser atribuído na data.
func (e *Engine) nextCandidate(date string, ordered []*domain.Person) *domain.Person {
	if len(ordered) == 0 {
		return nil
	}

	for attempts := 0; attempts < len(ordered); attempts++ {
		person := ordered[e.cursor%len(ordered)]
		e.cursor++

		if e.usage.CanAssign(date, person, e.ministry.Name) {
			return person
		}
	}

	return nil
}
