package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ForUserHydratesOnce(t *testing.T) {
	syncer := &mockSyncer{lines: []Line{{ID: "a", ProductID: "p1", Size: SizeM, Quantity: 1}}}
	m := NewManager(syncer, nil)

	st, err := m.ForUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, st.Lines(), 1)
	assert.Equal(t, 1, syncer.hydrateCalls)

	again, err := m.ForUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Same(t, st, again)
	assert.Equal(t, 1, syncer.hydrateCalls)
}

func TestManager_ForUserRestoresFromCache(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	cached := []Line{{ID: "a", ProductID: "p1", Size: SizeM, Quantity: 2}}
	require.NoError(t, cache.Set(context.Background(), "user-1", cached))

	syncer := &mockSyncer{}
	m := NewManager(syncer, cache)

	st, err := m.ForUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, st.Lines(), 1)
	assert.Zero(t, syncer.hydrateCalls, "a cached cart skips the backend")
}

func TestManager_ForUserHydrateFailure(t *testing.T) {
	syncer := &mockSyncer{hydrateErr: errors.New("backend down")}
	m := NewManager(syncer, nil)

	_, err := m.ForUser(context.Background(), "user-1")
	var syncErr *SyncError
	assert.ErrorAs(t, err, &syncErr)
}

func TestManager_Invalidate(t *testing.T) {
	syncer := &mockSyncer{}
	m := NewManager(syncer, nil)

	st, err := m.ForUser(context.Background(), "user-1")
	require.NoError(t, err)

	m.Invalidate("user-1")

	again, err := m.ForUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotSame(t, st, again)
	assert.Equal(t, 2, syncer.hydrateCalls)
}
