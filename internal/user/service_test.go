package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bruno-santana/minhas-financas-api/internal/apperr"
	"github.com/bruno-santana/minhas-financas-api/internal/user"
)

func TestService_Authenticate(t *testing.T) {
	const (
		email    = "email@email.com"
		password = "senha"
	)

	stored := &user.User{ID: uuid.New(), Email: email, Password: password}

	type testCase struct {
		name      string
		password  string
		setupMock func(m *user.MockRepository)
		want      *user.User
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			password: password,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), email).Return(stored, nil)
			},
			want: stored,
		},
		{
			name:     "UnknownEmail",
			password: password,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), email).Return(nil, user.ErrNotFound)
			},
			wantErr: user.ErrUserNotFound,
		},
		{
			name:     "WrongPassword",
			password: "outraSenha",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().GetUserByEmail(gomock.Any(), email).Return(stored, nil)
			},
			wantErr: user.ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := user.NewService(repo)
			got, err := svc.Authenticate(context.Background(), email, tt.password)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Authenticate_Messages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo)

	repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, user.ErrNotFound)

	_, err := svc.Authenticate(context.Background(), "email@email.com", "senha")
	assert.EqualError(t, err, "Usuário não localizado para o email informado!")
	assert.True(t, apperr.IsBusiness(err))

	repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).
		Return(&user.User{Email: "email@email.com", Password: "senha"}, nil)

	_, err = svc.Authenticate(context.Background(), "email@email.com", "outraSenha")
	assert.EqualError(t, err, "Senha inválida!")
}

func TestService_Authenticate_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	repo.EXPECT().GetUserByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

	_, err := user.NewService(repo).Authenticate(context.Background(), "email@email.com", "senha")
	require.Error(t, err)
	assert.False(t, apperr.IsBusiness(err))
}

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo)

	id := uuid.New()
	in := &user.User{Name: "nome", Email: "email@email.com", Password: "senha"}

	repo.EXPECT().ExistsByEmail(gomock.Any(), "email@email.com").Return(false, nil)
	repo.EXPECT().
		CreateUser(gomock.Any(), in).
		DoAndReturn(func(_ context.Context, u *user.User) error {
			u.ID = id
			return nil
		})

	got, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "nome", got.Name)
	assert.Equal(t, "email@email.com", got.Email)
	assert.Equal(t, "senha", got.Password)
}

func TestService_Register_EmailTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo)

	repo.EXPECT().ExistsByEmail(gomock.Any(), "email@email.com").Return(true, nil)
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Times(0)

	got, err := svc.Register(context.Background(), &user.User{Email: "email@email.com"})
	require.ErrorIs(t, err, user.ErrEmailTaken)
	assert.Nil(t, got)
}

// A concurrent registration can pass the existence check and lose the insert.
func TestService_Register_EmailTakenOnInsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := user.NewMockRepository(ctrl)
	svc := user.NewService(repo)

	repo.EXPECT().ExistsByEmail(gomock.Any(), "email@email.com").Return(false, nil)
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(user.ErrEmailTaken)

	got, err := svc.Register(context.Background(), &user.User{Email: "email@email.com"})
	require.ErrorIs(t, err, user.ErrEmailTaken)
	assert.True(t, apperr.IsBusiness(err))
	assert.Nil(t, got)
}

func TestService_ValidateEmailUnique(t *testing.T) {
	tests := []struct {
		name    string
		exists  bool
		repoErr error
		wantErr bool
		wantMsg string
	}{
		{name: "Free", exists: false},
		{name: "Taken", exists: true, wantErr: true, wantMsg: "Já existe um usuário cadastrado com este email!"},
		{name: "RepoError", repoErr: errors.New("db error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			repo.EXPECT().ExistsByEmail(gomock.Any(), "email@email.com").Return(tt.exists, tt.repoErr)

			err := user.NewService(repo).ValidateEmailUnique(context.Background(), "email@email.com")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, apperr.Message(err))
			}
		})
	}
}
