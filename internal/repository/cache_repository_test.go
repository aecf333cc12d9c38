package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/lab-portal-api/pkg/errors"
)

func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCacheRepositoryNamespacesKeys(t *testing.T) {
	repo := NewCacheRepository(nil, "")
	assert.Equal(t, "lab-portal:labs:list:all", repo.key("labs:list:all"))
	assert.Equal(t, "staging:timetables:*", NewCacheRepository(nil, "staging").key("timetables:*"))
}

func TestCacheRepositoryConnectionErrorIsNotAMiss(t *testing.T) {
	repo := NewCacheRepository(unreachableRedis(t), "")
	ctx := context.Background()

	var dest []string
	err := repo.Get(ctx, "labs:list:all", &dest)
	require.Error(t, err)
	assert.False(t, errors.Is(err, appErrors.ErrCacheMiss))

	assert.Error(t, repo.Set(ctx, "labs:list:all", []string{"a"}, time.Minute))
	assert.Error(t, repo.DeleteByPattern(ctx, "labs:*"))
}

func TestCacheRepositoryRejectsUnencodableValues(t *testing.T) {
	repo := NewCacheRepository(unreachableRedis(t), "")
	err := repo.Set(context.Background(), "labs:list:all", make(chan int), time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode cached")
}
