package entry

import (
	"strings"

	"github.com/google/uuid"

	"github.com/bruno-santana/minhas-financas-api/internal/apperr"
)

var (
	ErrInvalidDescription = apperr.Validation("Informe uma descrição válida!")
	ErrInvalidMonth       = apperr.Validation("Informe um Mês válido!")
	ErrInvalidYear        = apperr.Validation("Informe um Ano válido!")
	ErrInvalidUser        = apperr.Validation("Informe um Usuário válido!")
	ErrInvalidValue       = apperr.Validation("Informe um Valor válido!")
	ErrMissingType        = apperr.Validation("Informe um Tipo de lançamento!")
)

// minYear is the smallest year with four digits. Larger years are accepted.
const minYear = 1000

// Validate checks the fields an entry needs before it can be stored. Checks run
// in a fixed order and the first failure is returned.
func Validate(e *Entry) error {
	if e == nil {
		return ErrNilEntry
	}

	if strings.TrimSpace(e.Description) == "" {
		return ErrInvalidDescription
	}

	if e.Month < 1 || e.Month > 12 {
		return ErrInvalidMonth
	}

	if e.Year < minYear {
		return ErrInvalidYear
	}

	if e.User == nil || e.User.ID == uuid.Nil {
		return ErrInvalidUser
	}

	if !e.Value.IsPositive() {
		return ErrInvalidValue
	}

	if e.Type == "" {
		return ErrMissingType
	}

	return nil
}
