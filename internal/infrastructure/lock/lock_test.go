package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"artisan_escrow/internal/usecase/interfaces"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T, wait time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, time.Minute, wait, nil), mr
}

func TestRedisLocker_ExclusivePerProject(t *testing.T) {
	l, mr := newRedisLocker(t, 50*time.Millisecond)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, mr.Exists(keyPrefix+"p-1"))

	_, err = l.Lock(ctx, "p-1")
	assert.ErrorIs(t, err, ErrLockTimeout)

	other, err := l.Lock(ctx, "p-2")
	require.NoError(t, err)
	other()

	unlock()
	assert.False(t, mr.Exists(keyPrefix+"p-1"))

	again, err := l.Lock(ctx, "p-1")
	require.NoError(t, err)
	again()
}

func TestRedisLocker_ReleaseKeepsForeignToken(t *testing.T) {
	l, mr := newRedisLocker(t, 0)
	unlock, err := l.Lock(context.Background(), "p-1")
	require.NoError(t, err)

	// Simulate expiry and re-acquisition by another replica.
	require.NoError(t, mr.Set(keyPrefix+"p-1", "someone-else"))
	unlock()

	v, err := mr.Get(keyPrefix + "p-1")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", v)
}

func TestRedisLocker_ExpiresAfterTTL(t *testing.T) {
	l, mr := newRedisLocker(t, 0)
	_, err := l.Lock(context.Background(), "p-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	unlock, err := l.Lock(context.Background(), "p-1")
	require.NoError(t, err)
	unlock()
}

func TestLocalLocker_SerializesSameProject(t *testing.T) {
	l := NewLocalLocker(0)
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "p-1")
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Empty(t, l.slots)
}

func TestLocalLocker_TimeoutAndContext(t *testing.T) {
	l := NewLocalLocker(20 * time.Millisecond)
	unlock, err := l.Lock(context.Background(), "p-1")
	require.NoError(t, err)

	_, err = l.Lock(context.Background(), "p-1")
	assert.ErrorIs(t, err, ErrLockTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Lock(ctx, "p-1")
	assert.ErrorIs(t, err, context.Canceled)

	other, err := l.Lock(context.Background(), "p-2")
	require.NoError(t, err)
	other()

	unlock()
	unlock()
	assert.Empty(t, l.slots)
}

func TestLockers_ZeroWaitBlocksUntilContextDone(t *testing.T) {
	redisLocker, _ := newRedisLocker(t, 0)
	lockers := map[string]interfaces.IProjectLocker{
		"redis": redisLocker,
		"local": NewLocalLocker(0),
	}

	for name, l := range lockers {
		t.Run(name, func(t *testing.T) {
			unlock, err := l.Lock(context.Background(), "p-1")
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
			defer cancel()
			_, err = l.Lock(ctx, "p-1")
			assert.ErrorIs(t, err, context.DeadlineExceeded)

			go func() {
				time.Sleep(30 * time.Millisecond)
				unlock()
			}()
			ctx2, cancel2 := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel2()
			again, err := l.Lock(ctx2, "p-1")
			require.NoError(t, err)
			again()
		})
	}
}
