package followcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndex(t *testing.T) (*Index, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute), mr
}

type countingLoader struct {
	ids   []string
	calls int
	err   error
}

func (l *countingLoader) load(ctx context.Context, userID string) ([]string, error) {
	l.calls++
	return l.ids, l.err
}

func TestFollowingReadsThrough(t *testing.T) {
	ctx := context.Background()
	ix, mr := newIndex(t)
	loader := &countingLoader{ids: []string{"b", "c"}}

	ids, err := ix.Following(ctx, "a", loader.load)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids)

	ids, err = ix.Following(ctx, "a", loader.load)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids)
	assert.Equal(t, 1, loader.calls)

	assert.True(t, mr.Exists("following:index:a"))
	assert.Equal(t, time.Minute, mr.TTL("following:index:a"))
}

func TestFollowingCachesEmptySet(t *testing.T) {
	ctx := context.Background()
	ix, _ := newIndex(t)
	loader := &countingLoader{ids: []string{}}

	for i := 0; i < 2; i++ {
		ids, err := ix.Following(ctx, "a", loader.load)
		require.NoError(t, err)
		assert.Empty(t, ids)
	}
	assert.Equal(t, 1, loader.calls)
}

func TestInvalidateForcesReload(t *testing.T) {
	ctx := context.Background()
	ix, _ := newIndex(t)
	loader := &countingLoader{ids: []string{"b"}}

	_, err := ix.Following(ctx, "a", loader.load)
	require.NoError(t, err)

	ix.Invalidate(ctx, "a")
	loader.ids = []string{"b", "d"}

	ids, err := ix.Following(ctx, "a", loader.load)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "d"}, ids)
	assert.Equal(t, 2, loader.calls)
}

func TestFollowingFallsBackWhenRedisDown(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	ix := New(client, 0)
	mr.Close()
	loader := &countingLoader{ids: []string{"b"}}

	ids, err := ix.Following(ctx, "a", loader.load)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)
}

func TestNilIndexLoadsDirectly(t *testing.T) {
	var ix *Index
	loader := &countingLoader{err: errors.New("store down")}

	_, err := ix.Following(context.Background(), "a", loader.load)
	assert.EqualError(t, err, "store down")
	ix.Invalidate(context.Background(), "a")
}
