package cache

import (
	"context"
	"testing"

	"cineacme/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRedisClient(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client := NewRedisClient(ctx, utils.RedisConfig{Addr: mr.Addr()}, log)
		require.NotNil(t, client)
		defer client.Close()

		require.NoError(t, client.Set(ctx, "k", "v", 0).Err())
		mr.CheckGet(t, "k", "v")
	})

	t.Run("not configured", func(t *testing.T) {
		assert.Nil(t, NewRedisClient(ctx, utils.RedisConfig{}, log))
	})

	t.Run("unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		assert.Nil(t, NewRedisClient(ctx, utils.RedisConfig{Addr: addr}, log))
	})
}
