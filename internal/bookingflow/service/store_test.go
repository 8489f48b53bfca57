package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_PutGetDelete(t *testing.T) {
	store := NewSessionStore(1 * time.Minute)
	defer store.Stop()

	sess := testSession(testAvailability())
	store.Put(sess)

	got, ok := store.Get("sess-1")
	require.True(t, ok)
	assert.Same(t, sess, got)

	store.Delete("sess-1")
	_, ok = store.Get("sess-1")
	assert.False(t, ok)
}

func TestSessionStore_MissingSession(t *testing.T) {
	store := NewSessionStore(1 * time.Minute)
	defer store.Stop()

	_, ok := store.Get("nope")
	assert.False(t, ok)
}

func TestSessionStore_ExpiredSessionReadsAsMissing(t *testing.T) {
	store := NewSessionStore(10 * time.Millisecond)
	defer store.Stop()

	sess := testSession(testAvailability())
	store.Put(sess)

	time.Sleep(25 * time.Millisecond)

	_, ok := store.Get("sess-1")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_ActivityExtendsTTL(t *testing.T) {
	store := NewSessionStore(50 * time.Millisecond)
	defer store.Stop()

	sess := testSession(testAvailability())
	store.Put(sess)

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, sess.SelectDate("2025-03-03"))
	time.Sleep(30 * time.Millisecond)

	_, ok := store.Get("sess-1")
	assert.True(t, ok)
}

func TestSessionStore_StopIsIdempotent(t *testing.T) {
	store := NewSessionStore(1 * time.Minute)
	store.Stop()
	store.Stop()
}
