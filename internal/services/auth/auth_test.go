package auth_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/users-crud/internal/lib/password"
	"github.com/magabrotheeeer/users-crud/internal/models"
	"github.com/magabrotheeeer/users-crud/internal/services/auth"
	"github.com/magabrotheeeer/users-crud/internal/services/users"
	"github.com/magabrotheeeer/users-crud/internal/session"
)

// UserProviderMock мок справочника пользователей.
type UserProviderMock struct {
	mock.Mock
}

func (m *UserProviderMock) Get(ctx context.Context, login string) (models.User, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserProviderMock) IssueToken(ctx context.Context, verified models.User) (string, error) {
	args := m.Called(ctx, verified)
	return args.String(0), args.Error(1)
}

// hookVerifier выполняет hook перед проверкой пароля.
type hookVerifier struct {
	auth.PasswordVerifier
	hook func()
}

func (v hookVerifier) Verify(hash, password string) bool {
	v.hook()
	return v.PasswordVerifier.Verify(hash, password)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_Authenticate(t *testing.T) {
	hasher := password.New(bcrypt.MinCost)
	hash, err := hasher.Hash("secret")
	require.NoError(t, err)

	revokedAt := time.Now()
	revokedBy := "admin"
	active := models.User{Login: "Alice", PasswordHash: hash}
	revoked := models.User{Login: "bob", PasswordHash: hash, RevokedOn: &revokedAt, RevokedBy: &revokedBy}

	tests := []struct {
		name      string
		login     string
		password  string
		setupMock func(m *UserProviderMock)
		wantErr   error
	}{
		{
			name:     "успешный вход",
			login:    "alice",
			password: "secret",
			setupMock: func(m *UserProviderMock) {
				m.On("Get", mock.Anything, "alice").Return(active, nil).Once()
				m.On("IssueToken", mock.Anything, active).Return("tok-1", nil).Once()
			},
		},
		{
			name:     "запись изменилась во время проверки пароля",
			login:    "alice",
			password: "secret",
			setupMock: func(m *UserProviderMock) {
				m.On("Get", mock.Anything, "alice").Return(active, nil).Once()
				m.On("IssueToken", mock.Anything, active).
					Return("", fmt.Errorf("users.IssueToken: %w", users.ErrStaleRecord)).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "неверный пароль",
			login:    "alice",
			password: "wrong",
			setupMock: func(m *UserProviderMock) {
				m.On("Get", mock.Anything, "alice").Return(active, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "отозванная учётная запись",
			login:    "bob",
			password: "secret",
			setupMock: func(m *UserProviderMock) {
				m.On("Get", mock.Anything, "bob").Return(revoked, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "неизвестный логин",
			login:    "ghost",
			password: "secret",
			setupMock: func(m *UserProviderMock) {
				m.On("Get", mock.Anything, "ghost").
					Return(models.User{}, fmt.Errorf("users.Get: %w", users.ErrUserNotFound)).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(UserProviderMock)
			tt.setupMock(provider)
			tokens := session.NewStore()
			svc := auth.NewService(provider, tokens, hasher, newNoopLogger(), nil)

			token, err := svc.Authenticate(context.Background(), tt.login, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Equal(t, 0, tokens.Count())
			} else {
				require.NoError(t, err)
				assert.Equal(t, "tok-1", token)
			}
			provider.AssertExpectations(t)
		})
	}
}

func TestService_Authenticate_ProviderError(t *testing.T) {
	provider := new(UserProviderMock)
	provider.On("Get", mock.Anything, "alice").Return(models.User{}, errors.New("boom")).Once()
	svc := auth.NewService(provider, session.NewStore(), password.New(bcrypt.MinCost), newNoopLogger(), nil)

	_, err := svc.Authenticate(context.Background(), "alice", "secret")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestService_ResolveToken(t *testing.T) {
	provider := new(UserProviderMock)
	tokens := session.NewStore()
	svc := auth.NewService(provider, tokens, password.New(bcrypt.MinCost), newNoopLogger(), nil)

	alice := models.User{Login: "alice", Name: "Alice"}
	token, err := tokens.Issue("alice")
	require.NoError(t, err)
	stale, err := tokens.Issue("deleted")
	require.NoError(t, err)

	provider.On("Get", mock.Anything, "alice").Return(alice, nil)
	provider.On("Get", mock.Anything, "deleted").Return(models.User{}, users.ErrUserNotFound)

	tests := []struct {
		name   string
		token  string
		wantOK bool
	}{
		{name: "голый токен", token: token, wantOK: true},
		{name: "с префиксом Bearer", token: "Bearer " + token, wantOK: true},
		{name: "пустой токен", token: ""},
		{name: "только префикс", token: "Bearer "},
		{name: "неизвестный токен", token: "Bearer nope"},
		{name: "логин больше не существует", token: stale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, ok := svc.ResolveToken(context.Background(), tt.token)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "Alice", user.Name)
			}
		})
	}
}

func TestService_Logout_Idempotent(t *testing.T) {
	provider := new(UserProviderMock)
	tokens := session.NewStore()
	svc := auth.NewService(provider, tokens, password.New(bcrypt.MinCost), newNoopLogger(), nil)

	alice := models.User{Login: "alice"}
	t1, _ := tokens.Issue("alice")
	t2, _ := tokens.Issue("alice")
	other, _ := tokens.Issue("bob")

	assert.NotPanics(t, func() {
		svc.Logout(context.Background(), alice)
		svc.Logout(context.Background(), alice)
	})

	_, ok := tokens.Lookup(t1)
	assert.False(t, ok)
	_, ok = tokens.Lookup(t2)
	assert.False(t, ok)
	_, ok = tokens.Lookup(other)
	assert.True(t, ok)
}

func TestService_Authenticate_RecordChangesDuringVerify(t *testing.T) {
	tests := []struct {
		name   string
		change func(t *testing.T, dir *users.Service)
	}{
		{
			name: "запись отозвана",
			change: func(t *testing.T, dir *users.Service) {
				require.True(t, dir.Revoke(context.Background(), "alice", "admin"))
			},
		},
		{
			name: "запись удалена и создана заново",
			change: func(t *testing.T, dir *users.Service) {
				require.True(t, dir.Delete(context.Background(), "alice"))
				_, err := dir.Create(context.Background(), "admin", models.NewUser{
					Login:    "alice",
					Password: "other",
					Name:     "New Alice",
					Gender:   models.GenderUnknown,
					Admin:    true,
				})
				require.NoError(t, err)
			},
		},
		{
			name: "пароль сменён",
			change: func(t *testing.T, dir *users.Service) {
				pwd := "changed"
				_, err := dir.Update(context.Background(), "admin", "alice", models.UserPatch{Password: &pwd})
				require.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := password.New(bcrypt.MinCost)
			tokens := session.NewStore()
			dir := users.NewService(hasher, tokens, newNoopLogger())
			_, err := dir.Bootstrap(context.Background(), models.NewUser{
				Login: "admin", Password: "12345", Name: "Admin", Gender: models.GenderUnknown,
			})
			require.NoError(t, err)
			_, err = dir.Create(context.Background(), "admin", models.NewUser{
				Login: "alice", Password: "secret", Name: "Alice", Gender: models.GenderFemale,
			})
			require.NoError(t, err)

			verifier := hookVerifier{PasswordVerifier: hasher, hook: func() { tt.change(t, dir) }}
			svc := auth.NewService(dir, tokens, verifier, newNoopLogger(), nil)

			token, err := svc.Authenticate(context.Background(), "alice", "secret")

			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
			assert.Empty(t, token)
			assert.Equal(t, 0, tokens.Count())
		})
	}
}
