package user

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bruno-santana/minhas-financas-api/internal/apperr"
)

// User owns financial entries. Password is stored and compared as given.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
}

var ErrNotFound = errors.New("user not found")

var (
	ErrUserNotFound    = apperr.Authentication("Usuário não localizado para o email informado!")
	ErrInvalidPassword = apperr.Authentication("Senha inválida!")
	ErrEmailTaken      = apperr.Validation("Já existe um usuário cadastrado com este email!")
)
