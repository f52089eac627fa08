package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
	"github.com/Codelizard/HeroesOfCordan/pkg/state"
	"github.com/Codelizard/HeroesOfCordan/pkg/storage"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := NewRedisStorage("redis://"+mr.Addr(), ttl, logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, mr
}

var testKey = storage.SessionKey{Platform: "telegram", UserID: "1001"}

func TestRedisStorage_SaveAndLoadSession(t *testing.T) {
	store, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()

	s := state.NewSession(state.Action)
	s.Floor = 2
	s.Kills = 7
	s.Resources = map[content.ResourceType]int{content.Time: 120, content.Health: 4}
	s.SeeInstructions(state.Event)

	require.NoError(t, store.SaveSession(ctx, testKey, s))

	assert.True(t, mr.Exists("session:telegram:1001"))
	assert.Equal(t, time.Hour, mr.TTL("session:telegram:1001"))

	loaded, err := store.LoadSession(ctx, testKey)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, state.Action, loaded.State)
	assert.Equal(t, 2, loaded.Floor)
	assert.Equal(t, 7, loaded.Kills)
	assert.Equal(t, 120, loaded.ResourceCount(content.Time))
	assert.True(t, loaded.SeenInstructions[state.Event])
}

func TestRedisStorage_LoadMissingSession(t *testing.T) {
	store, _ := setupTestRedis(t, 0)

	s, err := store.LoadSession(context.Background(), testKey)
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestRedisStorage_SessionsExpire(t *testing.T) {
	store, mr := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, testKey, state.NewSession(state.Title)))
	mr.FastForward(2 * time.Minute)

	s, err := store.LoadSession(ctx, testKey)
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestRedisStorage_CorruptSession(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	require.NoError(t, mr.Set("session:telegram:1001", "{not json"))

	_, err := store.LoadSession(context.Background(), testKey)
	assert.Error(t, err)
}

func TestRedisStorage_DeleteSession(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, testKey, state.NewSession(state.Title)))
	require.NoError(t, store.DeleteSession(ctx, testKey))
	assert.False(t, mr.Exists("session:telegram:1001"))

	// deleting again is not an error
	assert.NoError(t, store.DeleteSession(ctx, testKey))
}

func TestRedisStorage_Ping(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	assert.NoError(t, store.Ping(ctx))
	assert.NoError(t, store.WaitForConnection(ctx, 3, time.Millisecond))

	mr.Close()
	assert.Error(t, store.Ping(ctx))
	assert.Error(t, store.WaitForConnection(ctx, 2, time.Millisecond))
}

func TestNewRedisStorage_BadURL(t *testing.T) {
	_, err := NewRedisStorage("not a url", 0, slog.Default())
	assert.Error(t, err)
}

func TestRedisLocker_Exclusion(t *testing.T) {
	store, _ := setupTestRedis(t, 0)
	locker := NewRedisLocker(store.Client(), time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, testKey)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, testKey)
	assert.ErrorIs(t, err, storage.ErrLockTimeout)

	other, err := locker.Lock(ctx, storage.SessionKey{Platform: "telegram", UserID: "2002"})
	require.NoError(t, err, "other keys do not contend")
	other()

	unlock()
	unlock()

	again, err := locker.Lock(ctx, testKey)
	require.NoError(t, err)
	again()
}

func TestRedisLocker_WaitsForRelease(t *testing.T) {
	store, _ := setupTestRedis(t, 0)
	locker := NewRedisLocker(store.Client(), time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var (
		mu      sync.Mutex
		holders int
		maxSeen int
		wg      sync.WaitGroup
	)
	for n := 0; n < 5; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(ctx, testKey)
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			holders++
			maxSeen = max(maxSeen, holders)
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			holders--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestRedisLocker_ExpiredLockIsNotStolenBack(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	locker := NewRedisLocker(store.Client(), time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	stale, err := locker.Lock(ctx, testKey)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	fresh, err := locker.Lock(ctx, testKey)
	require.NoError(t, err)

	stale()
	assert.True(t, mr.Exists("lock:telegram:1001"), "a stale holder must not release the new holder's lock")

	fresh()
	assert.False(t, mr.Exists("lock:telegram:1001"))
}

func TestRedisLocker_CancelledContext(t *testing.T) {
	store, _ := setupTestRedis(t, 0)
	locker := NewRedisLocker(store.Client(), time.Minute, slog.Default())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := locker.Lock(ctx, testKey)
	assert.True(t, errors.Is(err, storage.ErrLockTimeout))
	assert.ErrorIs(t, err, context.Canceled)
}
