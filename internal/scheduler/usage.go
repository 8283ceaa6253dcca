package scheduler

import "github.com/ibvida-dev/escala-manager/backend/internal/domain"

// DayUsage registra, por data, os ministérios em que cada pessoa já foi colocada.
// Cada execução (motor local ou filtro global do agregador) aloca a sua própria
// tabela; o estado nunca é compartilhado entre execuções.
type DayUsage struct {
	byDate map[string]map[int64][]int64 // dateKey -> personID -> ministryIDs
}

func NewDayUsage() *DayUsage {
	return &DayUsage{
		byDate: make(map[string]map[int64][]int64),
	}
}

// MinistriesUsed devolve os ministérios em que a pessoa já foi usada na data.
func (u *DayUsage) MinistriesUsed(dateKey string, personID int64) []int64 {
	return u.byDate[dateKey][personID]
}

// Used indica se a pessoa já recebeu alguma atribuição na data.
func (u *DayUsage) Used(dateKey string, personID int64) bool {
	return len(u.byDate[dateKey][personID]) > 0
}

func (u *DayUsage) Record(dateKey string, personID int64, ministryID int64) {
	if _, exists := u.byDate[dateKey]; !exists {
		u.byDate[dateKey] = make(map[int64][]int64)
	}
	u.byDate[dateKey][personID] = append(u.byDate[dateKey][personID], ministryID)
}

// CanAssign aplica a regra de não-duplicação diária com a exceção de supervisão:
// uma segunda atribuição no mesmo dia só é permitida quando o ministério de destino
// é a SUPERVISÃO, a pessoa lidera pelo menos um ministério e todos os ministérios
// já usados por ela no dia são ministérios que ela lidera.
//
// Esta é a única implementação da regra; o motor por ministério e o filtro global
// do agregador passam pelo mesmo caminho.
func (u *DayUsage) CanAssign(dateKey string, person *domain.Person, ministryName string) bool {
	used := u.MinistriesUsed(dateKey, person.ID)
	if len(used) == 0 {
		return true
	}

	if !IsSupervisionMinistry(ministryName) || !person.IsLeader() {
		return false
	}

	for _, ministryID := range used {
		if !person.Leads(ministryID) {
			return false
		}
	}

	return true
}
