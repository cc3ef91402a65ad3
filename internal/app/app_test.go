package app_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bruno-santana/minhas-financas-api/internal/app"
	"github.com/bruno-santana/minhas-financas-api/internal/config"
	"github.com/bruno-santana/minhas-financas-api/internal/entry"
	"github.com/bruno-santana/minhas-financas-api/internal/user"
)

func TestNew_Memory(t *testing.T) {
	t.Setenv("STORAGE", config.StorageMemory)

	cfg, err := config.Load()
	require.NoError(t, err)

	ctx := context.Background()

	svc, err := app.New(ctx, cfg)
	require.NoError(t, err)
	defer svc.Close()

	owner, err := svc.Users.Register(ctx, &user.User{Name: "Bruno", Email: "bruno@email.com", Password: "123"})
	require.NoError(t, err)

	authenticated, err := svc.Users.Authenticate(ctx, "bruno@email.com", "123")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, authenticated.ID)

	created, err := svc.Entries.Create(ctx, &entry.Entry{
		Description: "Aluguel", Month: 1, Year: 2026, Value: decimal.NewFromInt(900), Type: entry.TypeExpense, User: owner,
	})
	require.NoError(t, err)
	assert.Equal(t, entry.StatusPending, created.Status)
}
