package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
	"github.com/Codelizard/HeroesOfCordan/pkg/content/contenttest"
	"github.com/Codelizard/HeroesOfCordan/pkg/state"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()
	key := SessionKey{Platform: "discord", UserID: "42"}

	loaded, err := store.LoadSession(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	catalog := contenttest.Catalog()
	s := state.NewSession(state.Event)
	for _, h := range catalog.Heroes()[:4] {
		s.Party.Add(h)
	}
	s.CalculateResources()
	require.NoError(t, s.NextFloor(catalog, contenttest.Rand(1)))
	s.SpendResource(content.Time, 3)

	require.NoError(t, store.SaveSession(ctx, key, s))
	s.SpendResource(content.Time, 100)

	loaded, err = store.LoadSession(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, 247, loaded.ResourceCount(content.Time), "stored copy is isolated from later changes")
	assert.Equal(t, s.Party.ListHeroes(), loaded.Party.ListHeroes())
	assert.Equal(t, 3, loaded.Party.Heroes[0].LevelResources(1)[content.Physical])
	assert.Equal(t, content.KindMonster, loaded.MonsterDeck[0].Kind)
	assert.Equal(t, 1, loaded.MonsterDeck[0].Tier)

	other := SessionKey{Platform: "slack", UserID: "42"}
	loaded, err = store.LoadSession(ctx, other)
	require.NoError(t, err)
	assert.Nil(t, loaded, "platform is part of the key")

	require.NoError(t, store.DeleteSession(ctx, key))
	assert.Zero(t, store.Len())

	assert.Error(t, store.SaveSession(ctx, key, nil))
}

func TestMemoryStoragePing(t *testing.T) {
	store := NewMemoryStorage()
	assert.NoError(t, store.Ping(context.Background()))

	store.SetPingError(errors.New("down"))
	assert.EqualError(t, store.Ping(context.Background()), "down")
}

func TestMemoryLockerSerializesKey(t *testing.T) {
	locker := NewMemoryLocker()
	key := SessionKey{Platform: "discord", UserID: "1"}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for n := 0; n < 20; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), key)
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			mu.Lock()
			active++
			maxSeen = max(maxSeen, active)
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Zero(t, locker.held())
}

func TestMemoryLockerKeysAreIndependent(t *testing.T) {
	locker := NewMemoryLocker()
	ctx := context.Background()

	unlockA, err := locker.Lock(ctx, SessionKey{Platform: "p", UserID: "a"})
	require.NoError(t, err)
	defer unlockA()

	timeout, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	unlockB, err := locker.Lock(timeout, SessionKey{Platform: "p", UserID: "b"})
	require.NoError(t, err)
	unlockB()
}

func TestMemoryLockerTimeout(t *testing.T) {
	locker := NewMemoryLocker()
	key := SessionKey{Platform: "p", UserID: "a"}

	unlock, err := locker.Lock(context.Background(), key)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, key)
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()
	assert.Zero(t, locker.held())
}
