package chat

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()

	sess := store.Create()
	require.NotNil(t, sess)
	assert.NotEqual(t, uuid.Nil, sess.ID)
	assert.Equal(t, StateIdle, sess.State())
	assert.Empty(t, sess.Transcript())
	assert.Equal(t, 1, store.Len())

	found, err := store.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, found)

	found, err = store.Find(sess.ID.String())
	require.NoError(t, err)
	assert.Same(t, sess, found)

	removed, err := store.Delete(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, removed)
	assert.Equal(t, 0, store.Len())

	_, err = store.Get(sess.ID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	_, err = store.Delete(sess.ID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestStoreFindInvalidID(t *testing.T) {
	store := NewStore()

	_, err := store.Find("not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestStoreDeleteBusySession(t *testing.T) {
	store := NewStore()
	sess := store.Create()
	sess.busy = true

	_, err := store.Delete(sess.ID)
	assert.True(t, errors.Is(err, ErrBusy))
	assert.Equal(t, 1, store.Len())
}

func TestStoreSweep(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore()
	store.now = func() time.Time { return now }

	stale := store.Create()
	staleBusy := store.Create()
	staleBusy.busy = true

	now = now.Add(3 * time.Hour)
	fresh := store.Create()

	removed := store.Sweep(2 * time.Hour)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, store.Len())

	_, err := store.Get(stale.ID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	_, err = store.Get(staleBusy.ID)
	assert.NoError(t, err)

	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestSweeper(t *testing.T) {
	store := NewStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	store.Create()

	sweeper, err := NewSweeper(store, "@every 1h", time.Minute)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	sweeper.Run()
	assert.Equal(t, 0, store.Len())

	sweeper.Start()
	sweeper.Stop()
}

func TestNewSweeperInvalidSpec(t *testing.T) {
	_, err := NewSweeper(NewStore(), "every now and then", time.Minute)
	assert.Error(t, err)
}

func TestNewSweeperDefaults(t *testing.T) {
	sweeper, err := NewSweeper(NewStore(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionTTL, sweeper.ttl)
}
