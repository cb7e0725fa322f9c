package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cineacme/internal/data/memstore"
	"cineacme/pkg/metrics"
	"cineacme/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	config := &utils.Config{
		App:     utils.AppConfig{Name: "cineacme-test", StoreDriver: utils.StoreDriverMemory, Timezone: "UTC"},
		JWT:     utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Metrics: utils.MetricsConfig{Enabled: true, Namespace: "test"},
		Admin:   utils.AdminConfig{Email: "admin@cineacme.test", Password: "admin-pass"},
	}
	logger := zap.NewNop()
	m := metrics.New(config.Metrics.Namespace, prometheus.NewRegistry())

	app := Wiring(memstore.NewRepository(logger), config, nil, m, logger)
	require.NoError(t, app.Service.Auth.EnsureAdmin(context.Background()))

	return &testServer{t: t, handler: app.Router}
}

func (s *testServer) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	rec, env := s.do(http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &auth))
	return auth.Token
}

func (s *testServer) createID(path, token string, body any) string {
	s.t.Helper()
	rec, env := s.do(http.MethodPost, path, token, body)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &created))
	return created.ID
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec, _ = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_http_requests_total")
}

func TestRouter_AccessControl(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(http.MethodGet, "/api/cinemas", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/register", "", map[string]string{
		"full_name": "Regular Viewer",
		"id_number": "ID-12345",
		"phone":     "5550001",
		"email":     "viewer@cineacme.test",
		"password":  "viewer-pass",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	userToken := s.login("viewer@cineacme.test", "viewer-pass")

	rec, _ = s.do(http.MethodGet, "/api/cinemas", userToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/profile", userToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/admin/cinemas", userToken, map[string]string{
		"code": "C1", "name": "Downtown", "address": "1 Main St", "city": "Lisbon",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/login", "", map[string]string{
		"email": "viewer@cineacme.test", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_SchedulingFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin@cineacme.test", "admin-pass")

	cinemaID := s.createID("/api/admin/cinemas", admin, map[string]string{
		"code": "C1", "name": "Downtown", "address": "1 Main St", "city": "Lisbon",
	})
	roomID := s.createID("/api/admin/rooms", admin, map[string]any{
		"cinema_id": cinemaID, "code": "R1", "num_seats": 120,
	})
	movieID := s.createID("/api/admin/movies", admin, map[string]any{
		"code":           "M1",
		"title":          "The Long Night",
		"synopsis":       "A city waits for a sunrise that never comes.",
		"cast":           []string{"A. Actor"},
		"classification": "PG-13",
		"language":       "en",
		"director":       "D. Director",
		"duration":       120,
		"genre":          "Drama",
		"release_date":   "2098-12-01",
	})

	screening := func(start string) map[string]string {
		return map[string]string{
			"cinema_id":  cinemaID,
			"room_id":    roomID,
			"movie_id":   movieID,
			"date":       "2099-01-01",
			"start_time": start,
		}
	}

	rec, env := s.do(http.MethodPost, "/api/admin/screenings", admin, screening("14:00"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var first struct {
		ID      string `json:"id"`
		EndTime string `json:"end_time"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.Equal(t, "16:00", first.EndTime)

	rec, env = s.do(http.MethodPost, "/api/admin/screenings", admin, screening("15:00"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	var existing struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Errors, &existing))
	assert.Equal(t, first.ID, existing.ID)

	rec, _ = s.do(http.MethodPost, "/api/admin/screenings", admin, screening("16:00"))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/screenings/"+first.ID, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(http.MethodGet, "/api/screenings/report/date-cinema?cinema_id="+cinemaID+"&date=2099-01-01", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	assert.Len(t, listed, 2)

	rec, _ = s.do(http.MethodGet, "/api/screenings/report/date-range/export?start_date=2099-01-01&end_date=2099-01-31", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.Bytes())

	// rooms with screenings cannot be removed
	rec, _ = s.do(http.MethodDelete, "/api/admin/rooms/"+roomID, admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = s.do(http.MethodDelete, "/api/admin/screenings/"+first.ID, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/screenings/"+first.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
