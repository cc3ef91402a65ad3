package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bruno-santana/minhas-financas-api/internal/user"
)

// Memory keeps users in process. It backs STORAGE=memory runs and tests.
type Memory struct {
	mu    sync.RWMutex
	users map[uuid.UUID]user.User
}

func NewMemory() *Memory {
	return &Memory{users: make(map[uuid.UUID]user.User)}
}

func (m *Memory) CreateUser(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	m.users[u.ID] = *u

	return nil
}

func (m *Memory) GetUser(_ context.Context, id uuid.UUID) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}

	return &u, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}

	return nil, user.ErrNotFound
}

func (m *Memory) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(ctx, email)
	return err == nil, nil
}
