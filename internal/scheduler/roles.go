package scheduler

import "strings"

// SupervisionMinistry é o ministério cujas atribuições escapam da regra de uma
// atribuição por pessoa por dia, apenas para líderes.
const SupervisionMinistry = "SUPERVISÃO"

// DefaultRole é a função única atribuída a ministérios fora do catálogo.
const DefaultRole = "Default"

// roleCatalog mapeia o nome do ministério para seu conjunto fixo de funções.
// A ordem das funções importa: ela define a prioridade de preenchimento quando
// as pessoas acabam (ver Engine).
var roleCatalog = map[string][]string{
	"SOM":         {"Mesa", "PA"},
	"PROJEÇÃO":    {"Projeção"},
	"TRANSMISSÃO": {"Câmera", "Corte"},
	"RECEPÇÃO":    {"Porta", "Apoio"},
	"DIACONIA":    {"Ceia", "Ofertas"},
	"SUPERVISÃO":  {"Supervisor"},
}

// RolesForMinistry devolve as funções do ministério. A comparação ignora
// maiúsculas e minúsculas; ministérios desconhecidos recebem a função padrão.
func RolesForMinistry(name string) []string {
	for catalogName, roles := range roleCatalog {
		if strings.EqualFold(catalogName, name) {
			out := make([]string, len(roles))
			copy(out, roles)
			return out
		}
	}
	return []string{DefaultRole}
}

func IsSupervisionMinistry(name string) bool {
	return strings.EqualFold(name, SupervisionMinistry)
}
