package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bruno-santana/minhas-financas-api/internal/user"
	"github.com/bruno-santana/minhas-financas-api/internal/user/store"
)

func TestMemory_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	u := &user.User{Name: "usuario", Email: "usuario@email.com", Password: "senha"}
	require.NoError(t, m.CreateUser(ctx, u))
	assert.NotEqual(t, uuid.Nil, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byID, err := m.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "usuario@email.com", byID.Email)

	byEmail, err := m.GetUserByEmail(ctx, "usuario@email.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	exists, err := m.ExistsByEmail(ctx, "usuario@email.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMemory_NotFound(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	_, err := m.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = m.GetUserByEmail(ctx, "ninguem@email.com")
	assert.ErrorIs(t, err, user.ErrNotFound)

	exists, err := m.ExistsByEmail(ctx, "ninguem@email.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
