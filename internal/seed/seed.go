package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
	"github.com/ibvida-dev/escala-manager/backend/internal/repository"
	"github.com/ibvida-dev/escala-manager/backend/internal/utils"
)

// Ministries é o catálogo real da igreja; os nomes precisam casar com o catálogo
// de funções do motor para que as funções sejam derivadas.
var Ministries = []string{
	"SOM",
	"PROJEÇÃO",
	"TRANSMISSÃO",
	"RECEPÇÃO",
	"DIACONIA",
	"SUPERVISÃO",
}

// SeedMinistries cria o catálogo de ministérios e distribui as pessoas já
// cadastradas entre eles, com um líder por ministério.
func SeedMinistries(r *repository.Repository, people []*domain.Person) {
	if len(people) == 0 {
		slog.Error("não há pessoas cadastradas para distribuir")
		return
	}

	for _, name := range Ministries {
		ministry := &domain.Ministry{Name: name}
		if err := r.CreateMinistry(ministry); err != nil {
			slog.Error("não foi possível criar o ministério", "name", name, "error", err)
			continue
		}

		// entre 3 pessoas e o elenco inteiro; o primeiro sorteado vira líder
		memberCount := rand.Intn(len(people)) + 1
		if memberCount < 3 && len(people) >= 3 {
			memberCount = 3
		}

		shuffled := append([]*domain.Person{}, people...)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		for i := 0; i < memberCount && i < len(shuffled); i++ {
			isLeader := i == 0
			if err := r.AddMinistryMember(ministry.ID, shuffled[i].ID, isLeader); err != nil {
				slog.Error("não foi possível vincular o membro", "ministry", name, "person", shuffled[i].Name, "error", err)
			}
		}

		slog.Info("ministério criado", "name", name, "members", memberCount)
	}
}

// SeedServiceDays cria os dias de culto de um mês: domingos com Manhã e Noite,
// quartas com Noite (culto de oração).
func SeedServiceDays(r *repository.Repository, month string) []*domain.ServiceDay {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		slog.Error("mês inválido", "month", month)
		return nil
	}

	days := []*domain.ServiceDay{}
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		var day *domain.ServiceDay
		switch d.Weekday() {
		case time.Sunday:
			day = &domain.ServiceDay{
				DateKey: d.Format("2006-01-02"),
				Label:   "Culto de Domingo",
				Turns:   []string{"Manhã", "Noite"},
			}
		case time.Wednesday:
			day = &domain.ServiceDay{
				DateKey: d.Format("2006-01-02"),
				Label:   "Culto de Oração",
				Turns:   []string{"Noite"},
			}
		default:
			continue
		}

		if err := r.CreateServiceDay(day); err != nil {
			slog.Error("não foi possível criar o dia de culto", "date", day.DateKey, "error", err)
			continue
		}
		days = append(days, day)
	}

	slog.Info("dias de culto criados", "month", month, "count", len(days))
	return days
}

// SeedAvailability sorteia declarações de disponibilidade das pessoas para os
// dias de culto do mês. Nem todo mundo declara; é assim no uso real também.
func SeedAvailability(r *repository.Repository, people []*domain.Person, days []*domain.ServiceDay) {
	count := 0
	for _, person := range people {
		for _, day := range days {
			turns := utils.GenerateRandomDeclaredTurns(day.Turns)
			if len(turns) == 0 {
				continue
			}

			if err := r.InsertAvailability(person.ID, day.ID, turns); err != nil {
				slog.Error("não foi possível declarar disponibilidade", "person", person.Name, "date", day.DateKey, "error", err)
				continue
			}
			count++
		}
	}

	slog.Info("declarações de disponibilidade criadas", "count", count)
}
