package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/academic-hub-api/internal/cache"
	"github.com/yukikurage/academic-hub-api/internal/logger"
	"github.com/yukikurage/academic-hub-api/internal/repository"
	"github.com/yukikurage/academic-hub-api/internal/testutil"
)

func TestStatsService_CachesUntilInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "stats@example.com", false)
	testutil.CreatePaper(t, db, user.ID, "Cached Paper")

	svc := NewStatsService(
		repository.NewResourceRepository(db),
		repository.NewUserRepository(db),
		cache.New(rdb, logger.Nop()),
		time.Minute,
		logger.Nop(),
	)

	first, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.TotalPapers)
	assert.Equal(t, int64(1), first.TotalUsers)
	assert.True(t, mr.Exists("stats:platform"))

	// A second paper is not visible until the cache entry is dropped.
	testutil.CreatePaper(t, db, user.ID, "Second Paper")
	cached, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached.TotalPapers)

	svc.Invalidate(ctx)
	assert.False(t, mr.Exists("stats:platform"))

	fresh, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fresh.TotalPapers)

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("stats:platform"))
}

func TestStatsService_WithoutCache(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateUser(t, db, "a@example.com", false)

	svc := NewStatsService(repository.NewResourceRepository(db), repository.NewUserRepository(db), nil, time.Minute, logger.Nop())
	stats, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Zero(t, stats.TotalPapers)

	svc.Invalidate(context.Background())
}
