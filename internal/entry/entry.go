package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bruno-santana/minhas-financas-api/internal/user"
)

// Type represents the type of entry (income or expense).
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// Status represents the lifecycle state of an entry.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCanceled  Status = "CANCELED"
)

// Entry is a single dated income or expense owned by a user.
type Entry struct {
	ID               uuid.UUID
	Description      string
	Month            int
	Year             int
	Value            decimal.Decimal
	User             *user.User
	Type             Type
	Status           Status
	RegistrationDate time.Time
}

var ErrNotFound = errors.New("entry not found")

// ParseError reports a string that names no known Type or Status.
type ParseError struct {
	Kind  string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Value)
}

var typeNames = map[string]Type{
	"INCOME":  TypeIncome,
	"EXPENSE": TypeExpense,
	"RECEITA": TypeIncome,
	"DESPESA": TypeExpense,
}

var statusNames = map[string]Status{
	"PENDING":   StatusPending,
	"CONFIRMED": StatusConfirmed,
	"CANCELED":  StatusCanceled,
	"PENDENTE":  StatusPending,
	"EFETIVADO": StatusConfirmed,
	"CANCELADO": StatusCanceled,
}

// ParseType accepts the English and Portuguese names, in any case.
func ParseType(s string) (Type, error) {
	t, ok := typeNames[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return "", &ParseError{Kind: "entry type", Value: s}
	}

	return t, nil
}

// ParseStatus accepts the English and Portuguese names, in any case.
func ParseStatus(s string) (Status, error) {
	st, ok := statusNames[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return "", &ParseError{Kind: "entry status", Value: s}
	}

	return st, nil
}
