package middlewarectx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/users-crud/internal/http/middlewarectx"
	"github.com/magabrotheeeer/users-crud/internal/models"
)

func TestRequireAdminAndActive(t *testing.T) {
	now := time.Now()
	system := models.SystemLogin

	admin := models.User{Login: "admin", Admin: true}
	revokedAdmin := models.User{Login: "old", Admin: true, RevokedOn: &now, RevokedBy: &system}
	user := models.User{Login: "alice"}
	revokedUser := models.User{Login: "bob", RevokedOn: &now, RevokedBy: &system}

	tests := []struct {
		name       string
		user       *models.User
		wantAdmin  int
		wantActive int
	}{
		{name: "admin", user: &admin, wantAdmin: http.StatusOK, wantActive: http.StatusOK},
		{name: "revoked admin", user: &revokedAdmin, wantAdmin: http.StatusForbidden, wantActive: http.StatusForbidden},
		{name: "regular user", user: &user, wantAdmin: http.StatusForbidden, wantActive: http.StatusOK},
		{name: "revoked user", user: &revokedUser, wantAdmin: http.StatusForbidden, wantActive: http.StatusForbidden},
		{name: "no user in context", wantAdmin: http.StatusUnauthorized, wantActive: http.StatusUnauthorized},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newReq := func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				if tt.user != nil {
					req = req.WithContext(middlewarectx.WithUser(req.Context(), *tt.user))
				}
				return req
			}

			w := httptest.NewRecorder()
			middlewarectx.RequireAdmin(newNoopLogger())(next).ServeHTTP(w, newReq())
			assert.Equal(t, tt.wantAdmin, w.Code)

			w = httptest.NewRecorder()
			middlewarectx.RequireActive(newNoopLogger())(next).ServeHTTP(w, newReq())
			assert.Equal(t, tt.wantActive, w.Code)
		})
	}
}
