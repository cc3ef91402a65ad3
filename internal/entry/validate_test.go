package entry_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bruno-santana/minhas-financas-api/internal/apperr"
	"github.com/bruno-santana/minhas-financas-api/internal/entry"
	"github.com/bruno-santana/minhas-financas-api/internal/user"
)

func validEntry() *entry.Entry {
	return &entry.Entry{
		Description: "Lançamento Teste",
		Month:       1,
		Year:        2020,
		Value:       decimal.NewFromInt(10),
		User:        &user.User{ID: uuid.New()},
		Type:        entry.TypeIncome,
		Status:      entry.StatusPending,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *entry.Entry)
		wantErr error
	}{
		{name: "Valid", mutate: func(*entry.Entry) {}},
		{name: "EmptyDescription", mutate: func(e *entry.Entry) { e.Description = "" }, wantErr: entry.ErrInvalidDescription},
		{name: "BlankDescription", mutate: func(e *entry.Entry) { e.Description = "   \t" }, wantErr: entry.ErrInvalidDescription},
		{name: "MissingMonth", mutate: func(e *entry.Entry) { e.Month = 0 }, wantErr: entry.ErrInvalidMonth},
		{name: "MonthTooLarge", mutate: func(e *entry.Entry) { e.Month = 13 }, wantErr: entry.ErrInvalidMonth},
		{name: "NegativeMonth", mutate: func(e *entry.Entry) { e.Month = -1 }, wantErr: entry.ErrInvalidMonth},
		{name: "December", mutate: func(e *entry.Entry) { e.Month = 12 }},
		{name: "MissingYear", mutate: func(e *entry.Entry) { e.Year = 0 }, wantErr: entry.ErrInvalidYear},
		{name: "ThreeDigitYear", mutate: func(e *entry.Entry) { e.Year = 202 }, wantErr: entry.ErrInvalidYear},
		{name: "FirstFourDigitYear", mutate: func(e *entry.Entry) { e.Year = 1000 }},
		{name: "FiveDigitYear", mutate: func(e *entry.Entry) { e.Year = 20201 }},
		{name: "MissingUser", mutate: func(e *entry.Entry) { e.User = nil }, wantErr: entry.ErrInvalidUser},
		{name: "UnsavedUser", mutate: func(e *entry.Entry) { e.User = &user.User{} }, wantErr: entry.ErrInvalidUser},
		{name: "ZeroValue", mutate: func(e *entry.Entry) { e.Value = decimal.Zero }, wantErr: entry.ErrInvalidValue},
		{name: "NegativeValue", mutate: func(e *entry.Entry) { e.Value = decimal.NewFromInt(-1) }, wantErr: entry.ErrInvalidValue},
		{name: "Cents", mutate: func(e *entry.Entry) { e.Value = decimal.RequireFromString("0.01") }},
		{name: "MissingType", mutate: func(e *entry.Entry) { e.Type = "" }, wantErr: entry.ErrMissingType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(e)

			err := entry.Validate(e)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, apperr.IsBusiness(err))
		})
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	e := validEntry()
	e.Description = ""
	e.Month = 0
	e.Type = ""

	assert.EqualError(t, entry.Validate(e), "Informe uma descrição válida!")

	e.Description = "x"
	assert.EqualError(t, entry.Validate(e), "Informe um Mês válido!")

	e.Month = 3
	assert.EqualError(t, entry.Validate(e), "Informe um Tipo de lançamento!")
}

func TestValidate_Nil(t *testing.T) {
	err := entry.Validate(nil)
	require.ErrorIs(t, err, entry.ErrNilEntry)
	assert.ErrorIs(t, err, apperr.ErrInvalidUsage)
	assert.False(t, apperr.IsBusiness(err))
}

func TestValidate_Messages(t *testing.T) {
	empty := &entry.Entry{}
	assert.EqualError(t, entry.Validate(empty), "Informe uma descrição válida!")

	empty.Description = "d"
	empty.Month = 1
	assert.EqualError(t, entry.Validate(empty), "Informe um Ano válido!")

	empty.Year = 2024
	assert.EqualError(t, entry.Validate(empty), "Informe um Usuário válido!")

	empty.User = &user.User{ID: uuid.New()}
	assert.EqualError(t, entry.Validate(empty), "Informe um Valor válido!")
}
