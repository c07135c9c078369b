package redis

import (
	"context"
	"testing"
	"time"

	"neohearts-service/internal/pkg/constvars"
	"neohearts-service/internal/pkg/fhir_dto"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisRepository(t *testing.T) {
	mr, client := setupTestRedis(t)
	repo := NewRedisRepository(client)
	ctx := context.Background()

	t.Run("Missing key is empty", func(t *testing.T) {
		value, err := repo.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("Set encodes JSON", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "k", map[string]int{"a": 1}, time.Minute))
		value, err := repo.Get(ctx, "k")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, value)
		assert.Equal(t, time.Minute, mr.TTL("k"))
	})

	t.Run("Set keeps raw bytes", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "raw", []byte(`{"x":true}`), 0))
		value, err := repo.Get(ctx, "raw")
		require.NoError(t, err)
		assert.Equal(t, `{"x":true}`, value)
	})

	t.Run("TrySetNX only once", func(t *testing.T) {
		first, err := repo.TrySetNX(ctx, "lock", "a", time.Minute)
		require.NoError(t, err)
		second, err := repo.TrySetNX(ctx, "lock", "b", time.Minute)
		require.NoError(t, err)
		assert.True(t, first)
		assert.False(t, second)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "k"))
		assert.False(t, mr.Exists("k"))
	})
}

func TestBundleCache(t *testing.T) {
	mr, client := setupTestRedis(t)
	cache := NewBundleCache(NewRedisRepository(client), 5*time.Minute, zap.NewNop())
	ctx := context.Background()

	bundle := &fhir_dto.Bundle{
		ResourceType: constvars.ResourceBundle,
		Type:         constvars.FhirBundleTypeSearchset,
		Entry: []fhir_dto.BundleEntry{{
			Resource: fhir_dto.NewPatientResource(&fhir_dto.Patient{ResourceType: constvars.ResourcePatient, ID: "p1", Gender: "male"}),
		}},
	}

	t.Run("Miss", func(t *testing.T) {
		_, ok, err := cache.GetBundle(ctx, "p1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Hit after set", func(t *testing.T) {
		require.NoError(t, cache.SetBundle(ctx, "p1", bundle))
		assert.True(t, mr.Exists("newborn:bundle:p1"))
		assert.Equal(t, 5*time.Minute, mr.TTL("newborn:bundle:p1"))

		cached, ok, err := cache.GetBundle(ctx, "p1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "p1", cached.PatientEntry().Resource.Patient.ID)
	})

	t.Run("Unreadable entry is dropped", func(t *testing.T) {
		require.NoError(t, mr.Set("newborn:bundle:bad", `{"resourceType":"Patient"}`))
		_, ok, err := cache.GetBundle(ctx, "bad")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, mr.Exists("newborn:bundle:bad"))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.DeleteBundle(ctx, "p1"))
		_, ok, err := cache.GetBundle(ctx, "p1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Redis down", func(t *testing.T) {
		down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
		defer down.Close()
		_, _, err := NewBundleCache(NewRedisRepository(down), time.Minute, zap.NewNop()).GetBundle(ctx, "p1")
		assert.Error(t, err)
	})
}

func TestNoopBundleCache(t *testing.T) {
	cache := NewNoopBundleCache()
	ctx := context.Background()
	require.NoError(t, cache.SetBundle(ctx, "p1", &fhir_dto.Bundle{}))
	_, ok, err := cache.GetBundle(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
}
