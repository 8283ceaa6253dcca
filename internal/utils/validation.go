package utils

import (
	"errors"
	"time"

	"github.com/ibvida-dev/escala-manager/backend/internal/scheduler"
)

// ValidateMonth exige o formato YYYY-MM usado nas consultas por mês.
func ValidateMonth(month string) error {
	if _, err := time.Parse("2006-01", month); err != nil {
		return errors.New("mês inválido, use o formato YYYY-MM")
	}
	return nil
}

// ContainsTurn compara rótulos de turno do jeito que o motor compara: sem
// distinguir acentos nem caixa.
func ContainsTurn(turns []string, turn string) bool {
	normalized := scheduler.NormalizeTurnLabel(turn)
	for _, t := range turns {
		if scheduler.NormalizeTurnLabel(t) == normalized {
			return true
		}
	}
	return false
}
