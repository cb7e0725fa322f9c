package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"cineacme/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func cacheConfig() utils.CacheConfig {
	return utils.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "test:cache", MaxBodyBytes: 1024}
}

func countingHandler(calls *int32, status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestResponseCache_HitAfterMiss(t *testing.T) {
	mr, rdb := newTestRedis(t)
	var calls int32
	h := ResponseCache(cacheConfig(), rdb, zap.NewNop())(countingHandler(&calls, http.StatusOK, `{"status":true}`))

	first := get(h, "/api/screenings?b=2&a=1")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := get(h, "/api/screenings?a=1&b=2")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, `{"status":true}`, second.Body.String())
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, mr.TTL(keys[0]) > 0)
}

func TestResponseCache_SkipsErrorsAndLargeBodies(t *testing.T) {
	_, rdb := newTestRedis(t)

	var notFound int32
	h := ResponseCache(cacheConfig(), rdb, zap.NewNop())(countingHandler(&notFound, http.StatusNotFound, `{}`))
	get(h, "/api/movies/x")
	get(h, "/api/movies/x")
	assert.Equal(t, int32(2), atomic.LoadInt32(&notFound))

	cfg := cacheConfig()
	cfg.MaxBodyBytes = 4
	var large int32
	h = ResponseCache(cfg, rdb, zap.NewNop())(countingHandler(&large, http.StatusOK, `{"too":"big"}`))
	get(h, "/api/movies")
	rec := get(h, "/api/movies")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, `{"too":"big"}`, rec.Body.String())
	assert.Equal(t, int32(2), atomic.LoadInt32(&large))
}

func TestResponseCache_RedisDown(t *testing.T) {
	mr, rdb := newTestRedis(t)
	mr.Close()

	var calls int32
	h := ResponseCache(cacheConfig(), rdb, zap.NewNop())(countingHandler(&calls, http.StatusOK, `ok`))

	rec := get(h, "/api/cinemas")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestInvalidateCache(t *testing.T) {
	mr, rdb := newTestRedis(t)
	cfg := cacheConfig()
	require.NoError(t, mr.Set("other:key", "keep"))

	var calls int32
	cached := ResponseCache(cfg, rdb, zap.NewNop())(countingHandler(&calls, http.StatusOK, `[]`))
	get(cached, "/api/screenings")
	get(cached, "/api/cinemas")
	require.Len(t, mr.Keys(), 3)

	failing := InvalidateCache(rdb, cfg.Prefix, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	rec := httptest.NewRecorder()
	failing.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/screenings", nil))
	assert.Len(t, mr.Keys(), 3)

	writer := InvalidateCache(rdb, cfg.Prefix, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	rec = httptest.NewRecorder()
	writer.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/screenings", nil))

	assert.Equal(t, []string{"other:key"}, mr.Keys())
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte("body"))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, gotHdr)
	assert.Equal(t, "body", string(body))

	_, _, _, ok = decodePayload([]byte{0, 1})
	assert.False(t, ok)
}
