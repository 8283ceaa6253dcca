package utils

import (
	"math/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ibvida-dev/escala-manager/backend/internal/domain"
)

var commonFirstNames = []string{
	"Ana", "Beatriz", "Bruno", "Camila", "Carlos", "Daniel", "Débora", "Eduardo",
	"Fernanda", "Gabriel", "Helena", "Isabela", "João", "Juliana", "Larissa", "Lucas",
	"Marcos", "Mariana", "Mateus", "Patrícia", "Paulo", "Rafael", "Renata", "Thiago",
}

var commonSurnames = []string{
	"Silva", "Santos", "Oliveira", "Souza", "Pereira", "Costa", "Rodrigues", "Almeida",
	"Nascimento", "Lima", "Araújo", "Fernandes", "Carvalho", "Gomes", "Martins", "Rocha",
	"Ribeiro", "Alves", "Monteiro", "Barbosa",
}

func GenerateRandomBrazilianName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	surname := commonSurnames[rand.Intn(len(commonSurnames))]

	// uma parte dos nomes carrega um segundo sobrenome
	if rand.Intn(2) == 0 {
		second := commonSurnames[rand.Intn(len(commonSurnames))]
		return first + " " + surname + " " + second
	}
	return first + " " + surname
}

// removeDiacritics reduz o nome a ASCII para compor emails (Patrícia -> Patricia).
func removeDiacritics(s string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(chain, s)
	if err != nil {
		return s
	}
	return out
}

var digits = "0123456789"

func GenerateEmailFromName(name string, emailDomainName string) string {
	parts := strings.Fields(strings.ToLower(removeDiacritics(name)))
	username := strings.Join(parts, ".")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username + "@" + emailDomainName
}

func GenerateRandomPerson(emailDomainName string) *domain.Person {
	name := GenerateRandomBrazilianName()

	return &domain.Person{
		Name:     name,
		Email:    GenerateEmailFromName(name, emailDomainName),
		IsActive: true,
	}
}

// GenerateRandomSubset devolve um subconjunto não vazio usando Fisher-Yates,
// sem tocar no slice original.
func GenerateRandomSubset(arr []string) []string {
	arrCopy := append([]string{}, arr...)

	for i := len(arrCopy) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		arrCopy[i], arrCopy[j] = arrCopy[j], arrCopy[i]
	}

	n := rand.Intn(len(arrCopy)) + 1
	return arrCopy[:n]
}

// GenerateRandomDeclaredTurns sorteia os turnos declarados para um dia: às vezes
// nenhum (a pessoa não declarou nada), às vezes um subconjunto.
func GenerateRandomDeclaredTurns(turns []string) []string {
	if len(turns) == 0 || rand.Intn(3) == 0 {
		return nil
	}
	return GenerateRandomSubset(turns)
}
