package export_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bruno-santana/minhas-financas-api/internal/entry"
	"github.com/bruno-santana/minhas-financas-api/internal/entry/store"
	"github.com/bruno-santana/minhas-financas-api/internal/export"
	"github.com/bruno-santana/minhas-financas-api/internal/user"
)

func TestSum(t *testing.T) {
	entries := []*entry.Entry{
		{Value: decimal.NewFromInt(100), Type: entry.TypeIncome, Status: entry.StatusConfirmed},
		{Value: decimal.NewFromInt(30), Type: entry.TypeExpense, Status: entry.StatusPending},
		{Value: decimal.NewFromInt(50), Type: entry.TypeExpense, Status: entry.StatusCanceled},
	}

	totals := export.Sum(entries)

	assert.True(t, decimal.NewFromInt(100).Equal(totals.Income))
	assert.True(t, decimal.NewFromInt(30).Equal(totals.Expense))
	assert.True(t, decimal.NewFromInt(70).Equal(totals.Balance()))
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()
	entries := entry.NewService(store.NewMemory())
	owner := &user.User{ID: uuid.New()}
	other := &user.User{ID: uuid.New()}

	for _, e := range []*entry.Entry{
		{Description: "Salário", Month: 1, Year: 2026, Value: decimal.RequireFromString("5000"), Type: entry.TypeIncome, User: owner},
		{Description: "Aluguel", Month: 1, Year: 2026, Value: decimal.RequireFromString("1250.50"), Type: entry.TypeExpense, User: owner},
		{Description: "Outro", Month: 1, Year: 2026, Value: decimal.RequireFromString("1"), Type: entry.TypeExpense, User: other},
	} {
		_, err := entries.Create(ctx, e)
		require.NoError(t, err)
	}

	var buf bytes.Buffer

	n, err := export.NewService(entries).Export(ctx, entry.Filter{UserID: &owner.ID}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	// header, two entries, blank separator, three totals
	require.Len(t, rows, 7)

	assert.Equal(t, "Descrição", rows[0][0])
	assert.Equal(t, "Salário", rows[1][0])
	assert.Equal(t, "INCOME", rows[1][4])
	assert.Equal(t, "PENDING", rows[1][5])
	assert.Equal(t, "Aluguel", rows[2][0])
	assert.Equal(t, "Total de Receitas", rows[4][0])
	assert.Equal(t, "Saldo", rows[6][0])

	balance, err := f.GetCellValue(export.SheetName, "D7", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "3749.5", balance)
}
