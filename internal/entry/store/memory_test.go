package store_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bruno-santana/minhas-financas-api/internal/entry"
	"github.com/bruno-santana/minhas-financas-api/internal/entry/store"
	"github.com/bruno-santana/minhas-financas-api/internal/user"
)

func newEntry(owner *user.User, desc string, month int) *entry.Entry {
	return &entry.Entry{
		Description: desc,
		Month:       month,
		Year:        2024,
		Value:       decimal.NewFromInt(10),
		User:        owner,
		Type:        entry.TypeExpense,
	}
}

func TestMemory_ThroughService(t *testing.T) {
	ctx := context.Background()
	svc := entry.NewService(store.NewMemory())
	owner := &user.User{ID: uuid.New()}

	rent, err := svc.Create(ctx, newEntry(owner, "Aluguel", 1))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rent.ID)

	_, err = svc.Create(ctx, newEntry(owner, "Mercado", 1))
	require.NoError(t, err)

	_, err = svc.Create(ctx, newEntry(owner, "Aluguel", 2))
	require.NoError(t, err)

	all, err := svc.Search(ctx, entry.FilterFrom(&entry.Entry{}))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	rents, err := svc.Search(ctx, entry.FilterFrom(&entry.Entry{Description: "Aluguel"}))
	require.NoError(t, err)
	require.Len(t, rents, 2)

	for _, e := range rents {
		assert.Equal(t, "Aluguel", e.Description)
	}

	_, err = svc.UpdateStatus(ctx, rent, entry.StatusConfirmed)
	require.NoError(t, err)

	got, err := svc.Get(ctx, rent.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.StatusConfirmed, got.Status)

	require.NoError(t, svc.Delete(ctx, rent))

	_, err = svc.Get(ctx, rent.ID)
	assert.ErrorIs(t, err, entry.ErrNotFound)

	all, err = svc.Search(ctx, entry.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemory_SaveUnknown(t *testing.T) {
	m := store.NewMemory()

	err := m.SaveEntry(context.Background(), &entry.Entry{ID: uuid.New()})
	assert.ErrorIs(t, err, entry.ErrNotFound)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	owner := &user.User{ID: uuid.New()}

	e := newEntry(owner, "Aluguel", 1)
	require.NoError(t, m.CreateEntry(ctx, e))

	e.Description = "changed"

	got, err := m.GetEntry(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aluguel", got.Description)
}

func TestMemory_KeepsWideValues(t *testing.T) {
	ctx := context.Background()
	svc := entry.NewService(store.NewMemory())

	e := newEntry(&user.User{ID: uuid.New()}, strings.Repeat("d", 300), 6)
	e.Year = 3_000_000_000
	e.Value = decimal.RequireFromString("0.001")

	created, err := svc.Create(ctx, e)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Description, 300)
	assert.Equal(t, 3_000_000_000, got.Year)
	assert.True(t, decimal.RequireFromString("0.001").Equal(got.Value), got.Value.String())

	_, err = svc.UpdateStatus(ctx, got, entry.StatusConfirmed)
	require.NoError(t, err)

	balance, err := svc.Balance(ctx, created.User.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("-0.001").Equal(balance), balance.String())
}
