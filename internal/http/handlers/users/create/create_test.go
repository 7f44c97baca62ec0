package create

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/users-crud/internal/http/middlewarectx"
	"github.com/magabrotheeeer/users-crud/internal/lib/password"
	"github.com/magabrotheeeer/users-crud/internal/models"
	"github.com/magabrotheeeer/users-crud/internal/services/users"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, creator string, in models.NewUser) (models.User, error) {
	args := m.Called(ctx, creator, in)
	user, _ := args.Get(0).(models.User)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRequest(t *testing.T, body any, withUser bool) *http.Request {
	t.Helper()
	var raw []byte
	if s, ok := body.(string); ok {
		raw = []byte(s)
	} else {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/create", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if withUser {
		req = req.WithContext(middlewarectx.WithUser(req.Context(), models.User{Login: "admin", Admin: true}))
	}
	return req
}

func TestCreateHandler(t *testing.T) {
	birthday := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	created := models.User{
		ID:        "id-1",
		Login:     "alice",
		Name:      "Alice",
		Gender:    models.GenderFemale,
		Birthday:  &birthday,
		CreatedOn: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedBy: "admin",
	}

	tests := []struct {
		name      string
		body      any
		withUser  bool
		setupMock func(m *ServiceMock)
		wantCode  int
		wantError string
	}{
		{
			name:     "успешное создание",
			body:     Request{Login: "alice", Password: "pwd", Name: "Alice", Gender: "female", Birthday: "1990-05-17"},
			withUser: true,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, "admin", models.NewUser{
					Login: "alice", Password: "pwd", Name: "Alice",
					Gender: models.GenderFemale, Birthday: &birthday,
				}).Return(created, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:     "пол по умолчанию unknown",
			body:     Request{Login: "bob", Password: "pwd", Name: "Bob"},
			withUser: true,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, "admin", models.NewUser{
					Login: "bob", Password: "pwd", Name: "Bob", Gender: models.GenderUnknown,
				}).Return(models.User{Login: "bob"}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:     "логин занят",
			body:     Request{Login: "ALICE", Password: "pwd", Name: "Alice"},
			withUser: true,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, "admin", mock.Anything).
					Return(models.User{}, fmt.Errorf("users.Create: %w", users.ErrLoginExists))
			},
			wantCode:  http.StatusConflict,
			wantError: "user with such login already exists",
		},
		{
			name:     "слишком длинный пароль в байтах",
			body:     Request{Login: "carol", Password: strings.Repeat("я", 40), Name: "Carol"},
			withUser: true,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, "admin", mock.Anything).
					Return(models.User{}, fmt.Errorf("users.Create: %w", password.ErrTooLong))
			},
			wantCode:  http.StatusUnprocessableEntity,
			wantError: password.ErrTooLong.Error(),
		},
		{
			name:      "ошибка валидации",
			body:      Request{Login: "dave", Name: "Dave", Gender: "robot"},
			withUser:  true,
			setupMock: func(_ *ServiceMock) {},
			wantCode:  http.StatusUnprocessableEntity,
			wantError: "field Password is a required field, field Gender must be one of [female male unknown]",
		},
		{
			name:      "некорректная дата рождения",
			body:      Request{Login: "erin", Password: "pwd", Name: "Erin", Birthday: "17.05.1990"},
			withUser:  true,
			setupMock: func(_ *ServiceMock) {},
			wantCode:  http.StatusUnprocessableEntity,
			wantError: "field Birthday can contain only date in format YYYY-MM-DD",
		},
		{
			name:      "некорректный JSON",
			body:      "{",
			withUser:  true,
			setupMock: func(_ *ServiceMock) {},
			wantCode:  http.StatusBadRequest,
			wantError: "invalid request body",
		},
		{
			name:      "нет пользователя в контексте",
			body:      Request{Login: "alice", Password: "pwd", Name: "Alice"},
			setupMock: func(_ *ServiceMock) {},
			wantCode:  http.StatusUnauthorized,
			wantError: "unauthorized",
		},
		{
			name:     "ошибка сервиса",
			body:     Request{Login: "frank", Password: "pwd", Name: "Frank"},
			withUser: true,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, "admin", mock.Anything).Return(models.User{}, context.Canceled)
			},
			wantCode:  http.StatusInternalServerError,
			wantError: "could not create user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(w, newRequest(t, tt.body, tt.withUser))

			assert.Equal(t, tt.wantCode, w.Code)

			var resp struct {
				Status string         `json:"status"`
				Error  string         `json:"error"`
				Data   models.Profile `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp.Error)
			if tt.wantError == "" {
				assert.Equal(t, "OK", resp.Status)
				assert.NotEmpty(t, resp.Data.Login)
			}
			svc.AssertExpectations(t)
		})
	}
}
