package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSyncer struct {
	m          sync.Mutex
	lines      []Line
	nextID     int
	createErr  error
	updateErr  error
	deleteErr  error
	hydrateErr error

	createCalls  int
	updateCalls  int
	deleteCalls  int
	hydrateCalls int
}

func (m *mockSyncer) Hydrate(context.Context, string) ([]Line, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.hydrateCalls++
	if m.hydrateErr != nil {
		return nil, m.hydrateErr
	}
	return m.lines, nil
}

func (m *mockSyncer) Create(_ context.Context, line Line) (string, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.createCalls++
	if m.createErr != nil {
		return "", m.createErr
	}
	m.nextID++
	return "line-" + string(rune('0'+m.nextID)), nil
}

func (m *mockSyncer) Update(context.Context, Line) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.updateCalls++
	return m.updateErr
}

func (m *mockSyncer) Delete(context.Context, string, string, Size) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.deleteCalls++
	return m.deleteErr
}

func newTestStore(syncer *mockSyncer) *Store {
	return NewStore("user-1", syncer, nil)
}

var gamisSnap = Snapshot{Name: "Gamis Khadijah", Price: 100000, Slug: "gamis-khadijah", Stock: 10}

func TestAddOrMerge_NoSize(t *testing.T) {
	syncer := &mockSyncer{}
	st := newTestStore(syncer)

	err := st.AddOrMerge(context.Background(), "p1", gamisSnap, "", 1)

	assert.ErrorIs(t, err, ErrNoSize)
	assert.Zero(t, syncer.createCalls, "no network call may happen without a size")
	assert.Zero(t, syncer.updateCalls)
	assert.Empty(t, st.Lines())
}

func TestAddOrMerge_NewLine(t *testing.T) {
	syncer := &mockSyncer{}
	st := newTestStore(syncer)

	err := st.AddOrMerge(context.Background(), "p1", gamisSnap, SizeM, 2)

	require.NoError(t, err)
	lines := st.Lines()
	require.Len(t, lines, 1)
	assert.NotEmpty(t, lines[0].ID, "backend-assigned id must be kept")
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, SizeM, lines[0].Size)
	assert.Equal(t, 1, syncer.createCalls)
}

func TestAddOrMerge_MergesSameProductAndSize(t *testing.T) {
	syncer := &mockSyncer{}
	st := newTestStore(syncer)

	require.NoError(t, st.AddOrMerge(context.Background(), "p1", gamisSnap, SizeM, 1))
	require.NoError(t, st.AddOrMerge(context.Background(), "p1", gamisSnap, SizeM, 2))

	lines := st.Lines()
	require.Len(t, lines, 1, "same (product, size) must merge, not duplicate")
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, int64(100000), lines[0].Snapshot.Price)
	assert.Equal(t, 1, syncer.createCalls)
	assert.Equal(t, 1, syncer.updateCalls)
}

func TestAddOrMerge_DifferentSizeGetsOwnLine(t *testing.T) {
	syncer := &mockSyncer{}
	st := newTestStore(syncer)

	require.NoError(t, st.AddOrMerge(context.Background(), "p1", gamisSnap, SizeM, 1))
	require.NoError(t, st.AddOrMerge(context.Background(), "p1", gamisSnap, SizeL, 1))

	assert.Len(t, st.Lines(), 2)
}

func TestAddOrMerge_QuantitySumOverSequence(t *testing.T) {
	syncer := &mockSyncer{}
	st := newTestStore(syncer)

	quantities := []int{1, 4, 2, 3}
	total := 0
	for _, q := range quantities {
		require.NoError(t, st.AddOrMerge(context.Background(), "p1", gamisSnap, SizeS, q))
		total += q
	}

	lines := st.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, total, lines[0].Quantity)
}

func TestAddOrMerge_BackendFailureLeavesStateUntouched(t *testing.T) {
	syncer := &mockSyncer{}
	st := newTestStore(syncer)
	require.NoError(t, st.AddOrMerge(context.Background(), "p1", gamisSnap, SizeM, 1))

	syncer.updateErr = errors.New("backend down")
	err := st.AddOrMerge(context.Background(), "p1", gamisSnap, SizeM, 5)

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "update", syncErr.Op)

	lines := st.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity, "failed mutation must not be applied optimistically")
}

func TestRemove(t *testing.T) {
	syncer := &mockSyncer{}
	st := newTestStore(syncer)
	require.NoError(t, st.AddOrMerge(context.Background(), "p1", gamisSnap, SizeM, 1))

	require.NoError(t, st.Remove(context.Background(), "p1", SizeM))
	assert.Empty(t, st.Lines())
	assert.Equal(t, 1, syncer.deleteCalls)
}

func TestRemove_BackendFailure(t *testing.T) {
	syncer := &mockSyncer{}
	st := newTestStore(syncer)
	require.NoError(t, st.AddOrMerge(context.Background(), "p1", gamisSnap, SizeM, 1))

	syncer.deleteErr = errors.New("backend down")
	err := st.Remove(context.Background(), "p1", SizeM)

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Len(t, st.Lines(), 1)
}

func TestRemove_NotInCart(t *testing.T) {
	syncer := &mockSyncer{}
	st := newTestStore(syncer)

	err := st.Remove(context.Background(), "ghost", SizeM)

	assert.ErrorIs(t, err, ErrNotInCart)
	assert.Zero(t, syncer.deleteCalls)
}

func TestSelection(t *testing.T) {
	syncer := &mockSyncer{}
	st := newTestStore(syncer)
	require.NoError(t, st.AddOrMerge(context.Background(), "p1", gamisSnap, SizeM, 1))
	require.NoError(t, st.AddOrMerge(context.Background(), "p2", Snapshot{Name: "Gamis Maryam", Price: 150000}, SizeL, 2))

	require.NoError(t, st.ToggleSelect("p2", SizeL))
	selected := st.Selected()
	require.Len(t, selected, 1)
	assert.Equal(t, "p2", selected[0].ProductID)
	assert.Equal(t, int64(300000), st.SelectedTotal())

	// toggling again deselects
	require.NoError(t, st.ToggleSelect("p2", SizeL))
	assert.Empty(t, st.Selected())

	st.SelectAll()
	assert.Len(t, st.Selected(), 2)

	// select-all on a full selection clears it
	st.SelectAll()
	assert.Empty(t, st.Selected())

	assert.ErrorIs(t, st.ToggleSelect("ghost", SizeM), ErrNotInCart)
}

func TestDropSelected(t *testing.T) {
	syncer := &mockSyncer{}
	st := newTestStore(syncer)
	require.NoError(t, st.AddOrMerge(context.Background(), "p1", gamisSnap, SizeM, 1))
	require.NoError(t, st.AddOrMerge(context.Background(), "p2", gamisSnap, SizeL, 1))
	require.NoError(t, st.ToggleSelect("p1", SizeM))

	st.DropSelected()

	lines := st.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "p2", lines[0].ProductID)
	assert.Empty(t, st.Selected())
}

func TestHydrate_ReplacesLinesAndResetsSelection(t *testing.T) {
	syncer := &mockSyncer{lines: []Line{
		{ID: "a", ProductID: "p1", Size: SizeM, Quantity: 1},
		{ID: "b", ProductID: "p2", Size: SizeS, Quantity: 2},
	}}
	st := newTestStore(syncer)

	require.NoError(t, st.Hydrate(context.Background()))
	assert.Len(t, st.Lines(), 2)
	assert.Empty(t, st.Selected())
}
