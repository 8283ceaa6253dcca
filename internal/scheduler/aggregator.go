package scheduler

import "github.com/ibvida-dev/escala-manager/backend/internal/domain"

// GenerateForMinistries executa o motor de cada ministério de forma independente
// (cada um com seu próprio cursor e sua própria tabela de uso) e depois revalida o
// fluxo de atribuições contra uma tabela global recém-criada que cobre todos os
// ministérios, aplicando exatamente a mesma regra de CanAssign.
//
// Atribuições válidas localmente mas inválidas globalmente são descartadas em
// silêncio, sem reatribuição: os motores locais não enxergam o estado uns dos
// outros e o filtro global é a segunda passada que resolve isso.
func GenerateForMinistries(dates []string, ministries []*MinistryRoster) []domain.RoleAssignment {
	local := []domain.RoleAssignment{}
	peopleByID := make(map[int64]*domain.Person)

	for _, ministry := range ministries {
		for _, person := range ministry.People {
			peopleByID[person.ID] = person
		}
		local = append(local, NewEngine(ministry, dates).Run()...)
	}

	global := NewDayUsage()
	accepted := make([]domain.RoleAssignment, 0, len(local))

	for _, assignment := range local {
		person := peopleByID[assignment.PersonID]
		if person == nil {
			continue
		}

		if !global.CanAssign(assignment.Date, person, assignment.MinistryName) {
			continue
		}

		global.Record(assignment.Date, person.ID, assignment.MinistryID)
		accepted = append(accepted, assignment)
	}

	return accepted
}
