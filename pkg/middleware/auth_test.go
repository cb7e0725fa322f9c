package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cineacme/internal/data/entity"
	"cineacme/internal/data/memstore"
	"cineacme/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secret = "middleware-secret"

func whoAmI(w http.ResponseWriter, r *http.Request) {
	id, _ := utils.GetUserIDFromContext(r.Context())
	role, _ := utils.GetRoleFromContext(r.Context())
	utils.ResponseSuccess(w, "ok", map[string]string{"id": id.String(), "role": role})
}

func TestJWTAuth(t *testing.T) {
	userID := uuid.New()
	valid, _, err := utils.GenerateToken(secret, userID, "user", time.Hour)
	require.NoError(t, err)
	expired, _, err := utils.GenerateToken(secret, userID, "user", -time.Minute)
	require.NoError(t, err)
	foreign, _, err := utils.GenerateToken("other-secret", userID, "user", time.Hour)
	require.NoError(t, err)

	h := JWTAuth(secret, zap.NewNop())(http.HandlerFunc(whoAmI))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"no scheme", valid, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, rec.Body.String(), userID.String())
			}
		})
	}
}

func TestAdmin(t *testing.T) {
	repo := memstore.NewRepository(zap.NewNop())
	ctx := context.Background()

	admin := &entity.User{Base: entity.Base{ID: uuid.New()}, Email: "a@x.io", Role: entity.RoleAdmin}
	plain := &entity.User{Base: entity.Base{ID: uuid.New()}, Email: "u@x.io", Role: entity.RoleUser}
	require.NoError(t, repo.User.Create(ctx, admin))
	require.NoError(t, repo.User.Create(ctx, plain))

	h := Admin(repo.User, zap.NewNop())(http.HandlerFunc(whoAmI))

	serve := func(userID *uuid.UUID, role string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/cinemas", nil)
		if userID != nil {
			req = req.WithContext(utils.SetUserContext(req.Context(), *userID, role))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve(&admin.ID, "admin"))
	// the stored role wins over the token's claim
	assert.Equal(t, http.StatusForbidden, serve(&plain.ID, "admin"))
	unknown := uuid.New()
	assert.Equal(t, http.StatusForbidden, serve(&unknown, "admin"))
	assert.Equal(t, http.StatusUnauthorized, serve(nil, ""))
}
