package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := NewRedisClient(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	defer client.Close()

	c := NewRedisCache(client, "medinventory:")

	_, ok, err := c.Get(ctx, "dashboard")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "dashboard", []byte(`{"total_products":3}`), 30*time.Second))
	assert.True(t, mr.Exists("medinventory:dashboard"))

	got, ok, err := c.Get(ctx, "dashboard")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"total_products":3}`, string(got))

	mr.FastForward(31 * time.Second)
	_, ok, err = c.Get(ctx, "dashboard")
	require.NoError(t, err)
	assert.False(t, ok, "expira con el TTL")
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
