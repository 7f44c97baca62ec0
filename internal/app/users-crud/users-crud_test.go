package userscrud

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/users-crud/internal/config"
)

type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
}

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newTestServer(t *testing.T) *client {
	t.Helper()
	cfg := &config.Config{
		Env:        "local",
		HTTPServer: config.HTTPServer{Address: "localhost:0", Timeout: 5 * time.Second, IdleTimeout: time.Minute},
		Bootstrap:  config.Bootstrap{Login: "admin", Password: "12345", Name: "Admin"},
		Password:   config.Password{BcryptCost: bcrypt.MinCost},
		Session: config.Session{
			CookieName:  "users_session",
			IdleTimeout: 10 * time.Minute,
			SecretKey:   "test-secret",
		},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	return &client{t: t, base: srv.URL, http: srv.Client()}
}

func (c *client) do(method, path, token string, body any) (int, envelope) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(raw, &env))
	}
	return resp.StatusCode, env
}

func (c *client) login(login, pwd string) (int, string) {
	c.t.Helper()
	code, env := c.do(http.MethodPost, "/api/v1/users/auth", "", map[string]string{"login": login, "password": pwd})
	if code != http.StatusOK {
		return code, ""
	}
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(c.t, json.Unmarshal(env.Data, &data))
	return code, data.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestScenario_AdminCreatesAliceWhoUpdatesHerself(t *testing.T) {
	c := newTestServer(t)

	code, adminToken := c.login("admin", "12345")
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, adminToken)

	code, env := c.do(http.MethodGet, "/api/v1/users/get/active", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"admin"}, decode[struct{ Users []string }](t, env.Data).Users)

	code, _ = c.do(http.MethodPost, "/api/v1/users/create", adminToken, map[string]any{
		"login": "alice", "password": "alice-pwd", "name": "Alice", "gender": "female", "birthday": "1990-05-17",
	})
	require.Equal(t, http.StatusCreated, code)

	code, aliceToken := c.login("alice", "alice-pwd")
	require.Equal(t, http.StatusOK, code)

	code, env = c.do(http.MethodPatch, "/api/v1/users/update", aliceToken, map[string]any{"name": "Alicia"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "modified", decode[struct{ Result string }](t, env.Data).Result)

	code, env = c.do(http.MethodGet, "/api/v1/users/get/current", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	profile := decode[struct {
		Login      string  `json:"login"`
		Name       string  `json:"name"`
		ModifiedBy *string `json:"modified_by"`
	}](t, env.Data)
	assert.Equal(t, "Alicia", profile.Name)
	require.NotNil(t, profile.ModifiedBy)
	assert.Equal(t, "alice", *profile.ModifiedBy)

	code, env = c.do(http.MethodPatch, "/api/v1/users/update", aliceToken, map[string]any{"name": "Alicia"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "no_change", decode[struct{ Result string }](t, env.Data).Result)
}

func TestScenario_AccessControl(t *testing.T) {
	c := newTestServer(t)
	_, adminToken := c.login("admin", "12345")

	code, _ := c.do(http.MethodPost, "/api/v1/users/create", adminToken, map[string]any{
		"login": "alice", "password": "alice-pwd", "name": "Alice",
	})
	require.Equal(t, http.StatusCreated, code)
	_, aliceToken := c.login("alice", "alice-pwd")

	code, _ = c.do(http.MethodGet, "/api/v1/users/get/active", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodGet, "/api/v1/users/get/active", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodGet, "/api/v1/users/get/active", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = c.do(http.MethodPost, "/api/v1/users/create", adminToken, map[string]any{
		"login": "ALICE", "password": "x", "name": "Impostor",
	})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = c.do(http.MethodGet, "/api/v1/users/get/ghost", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = c.login("alice", "wrong")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestScenario_RevokeRestoreAndHardDelete(t *testing.T) {
	c := newTestServer(t)
	_, adminToken := c.login("admin", "12345")

	code, _ := c.do(http.MethodPost, "/api/v1/users/create", adminToken, map[string]any{
		"login": "alice", "password": "alice-pwd", "name": "Alice",
	})
	require.Equal(t, http.StatusCreated, code)
	_, aliceToken := c.login("alice", "alice-pwd")

	code, _ = c.do(http.MethodDelete, "/api/v1/users/delete/alice", adminToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = c.login("alice", "alice-pwd")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = c.do(http.MethodGet, "/api/v1/users/get/current", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodPost, "/api/v1/users/create", adminToken, map[string]any{
		"login": "alice", "password": "other", "name": "Second Alice",
	})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = c.do(http.MethodPost, "/api/v1/users/restore/alice", adminToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = c.login("alice", "alice-pwd")
	assert.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodDelete, "/api/v1/users/delete/alice?hard=true", adminToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodGet, "/api/v1/users/get/alice", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = c.do(http.MethodPost, "/api/v1/users/create", adminToken, map[string]any{
		"login": "alice", "password": "other", "name": "Second Alice",
	})
	assert.Equal(t, http.StatusCreated, code)
}

func TestScenario_RenameInvalidatesTokens(t *testing.T) {
	c := newTestServer(t)
	_, adminToken := c.login("admin", "12345")

	code, _ := c.do(http.MethodPost, "/api/v1/users/create", adminToken, map[string]any{
		"login": "alice", "password": "alice-pwd", "name": "Alice",
	})
	require.Equal(t, http.StatusCreated, code)
	_, aliceToken := c.login("alice", "alice-pwd")

	code, env := c.do(http.MethodPatch, "/api/v1/users/update/alice", adminToken, map[string]any{"login": "alicia"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "modified", decode[struct{ Result string }](t, env.Data).Result)

	code, _ = c.do(http.MethodGet, "/api/v1/users/get/current", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.login("alicia", "alice-pwd")
	assert.Equal(t, http.StatusOK, code)
}

func TestScenario_LogoutRevokesToken(t *testing.T) {
	c := newTestServer(t)
	_, adminToken := c.login("admin", "12345")

	code, _ := c.do(http.MethodPost, "/api/v1/users/logout", adminToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodPost, "/api/v1/users/logout", adminToken, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestScenario_CookieSession(t *testing.T) {
	c := newTestServer(t)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	c.http.Jar = jar

	code, _ := c.login("admin", "12345")
	require.Equal(t, http.StatusOK, code)

	code, env := c.do(http.MethodGet, "/api/v1/users/get/current", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "admin", decode[struct{ Login string }](t, env.Data).Login)

	code, _ = c.do(http.MethodPost, "/api/v1/users/logout", "", nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodGet, "/api/v1/users/get/current", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestMetricsAndHealth(t *testing.T) {
	c := newTestServer(t)
	_, _ = c.login("admin", "12345")
	_, _ = c.login("admin", "wrong")

	code, env := c.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", env.Status)

	resp, err := c.http.Get(c.base + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `users_auth_attempts_total{result="success"} 1`)
	assert.Contains(t, string(body), `users_auth_attempts_total{result="failure"} 1`)
	assert.Contains(t, string(body), "users_active_sessions 1")
}

func TestDocs_PathsAreMounted(t *testing.T) {
	c := newTestServer(t)

	resp, err := c.http.Get(c.base + "/docs/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	require.Equal(t, "/", doc.BasePath)
	require.Contains(t, doc.Paths, "/health")
	require.Contains(t, doc.Paths, "/api/v1/users/auth")

	for path, methods := range doc.Paths {
		url := strings.ReplaceAll(path, "{login}", "admin")
		for method := range methods {
			code, _ := c.do(strings.ToUpper(method), url, "", nil)
			assert.NotEqual(t, http.StatusNotFound, code, "%s %s", method, path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, code, "%s %s", method, path)
		}
	}
}
