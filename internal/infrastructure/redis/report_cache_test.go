package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/boutique-api/internal/application/dto"
	infraredis "github.com/jhoicas/boutique-api/internal/infrastructure/redis"
)

// fakeRedis implementa solo GET y SET; el resto de goredis.Cmdable queda sin implementar.
type fakeRedis struct {
	goredis.Cmdable
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *goredis.StatusCmd {
	if f.err != nil {
		return goredis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttl[key] = ttl
	return goredis.NewStatusResult("OK", nil)
}

func TestReportCache_SetYGet(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	cache := infraredis.NewReportCache(fake, "boutique")

	in := dto.LowStockDTO{ProductID: "p1", ProductName: "Blusa", Units: 2}
	require.NoError(t, cache.Set(ctx, "reportes:stock", in, time.Minute))
	assert.Contains(t, fake.data, "boutique:reportes:stock")
	assert.Equal(t, time.Minute, fake.ttl["boutique:reportes:stock"])

	var out dto.LowStockDTO
	hit, err := cache.Get(ctx, "reportes:stock", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, in, out)
}

func TestReportCache_MissNoEsError(t *testing.T) {
	cache := infraredis.NewReportCache(newFakeRedis(), "")
	var out dto.LowStockDTO
	hit, err := cache.Get(context.Background(), "no-existe", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestReportCache_ErrorDeConexion(t *testing.T) {
	fake := newFakeRedis()
	fake.err = errors.New("connection refused")
	cache := infraredis.NewReportCache(fake, "")

	var out dto.LowStockDTO
	hit, err := cache.Get(context.Background(), "k", &out)
	assert.Error(t, err)
	assert.False(t, hit)
	assert.Error(t, cache.Set(context.Background(), "k", out, time.Minute))
}
