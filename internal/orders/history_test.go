package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPurchaseAPI struct {
	rows      []Row
	counts    map[Status]int
	fetchErr  error
	updateErr error

	updateCalls int
	lastID      string
	lastStatus  Status
}

func (m *mockPurchaseAPI) Purchases(_ context.Context, _ string, status Status) ([]Row, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if status == StatusAll {
		return m.rows, nil
	}
	var out []Row
	for _, r := range m.rows {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockPurchaseAPI) PurchaseCounts(context.Context, string) (map[Status]int, error) {
	return m.counts, nil
}

func (m *mockPurchaseAPI) UpdatePurchaseStatus(_ context.Context, id string, status Status) error {
	m.updateCalls++
	m.lastID = id
	m.lastStatus = status
	return m.updateErr
}

func TestGroupRows(t *testing.T) {
	rows := []Row{
		{PurchaseID: "inv-1", Status: StatusUnpaid, TotalPrice: 317000, Name: "Gamis Khadijah", Quantity: 2},
		{PurchaseID: "inv-1", Status: StatusUnpaid, TotalPrice: 317000, Name: "Gamis Maryam", Quantity: 1},
		{PurchaseID: "inv-2", Status: StatusPacking, TotalPrice: 107000, Name: "Gamis Aurvi", Quantity: 1},
	}

	purchases := GroupRows(rows)

	require.Len(t, purchases, 2, "rows sharing a purchase id fold into one card")
	assert.Equal(t, "inv-1", purchases[0].PurchaseID)
	require.Len(t, purchases[0].Items, 2)
	assert.Equal(t, "Gamis Khadijah", purchases[0].Items[0].Name)
	assert.Equal(t, "Gamis Maryam", purchases[0].Items[1].Name)
	assert.Equal(t, int64(317000), purchases[0].TotalPrice, "total is per purchase, not per item")

	assert.Equal(t, "inv-2", purchases[1].PurchaseID)
	assert.Len(t, purchases[1].Items, 1)
}

func TestGroupRows_Empty(t *testing.T) {
	assert.Empty(t, GroupRows(nil))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusUnpaid, StatusCancelled, true},
		{StatusUnpaid, StatusPacking, true},
		{StatusPacking, StatusShipped, true},
		{StatusShipped, StatusCompleted, true},

		{StatusUnpaid, StatusShipped, false},
		{StatusPacking, StatusCancelled, false},
		{StatusShipped, StatusPacking, false},
		{StatusCompleted, StatusUnpaid, false},
		{StatusCancelled, StatusPacking, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("Belum Bayar")
	require.NoError(t, err)
	assert.Equal(t, StatusUnpaid, s)

	s, err = ParseStatus("Semua")
	require.NoError(t, err)
	assert.Equal(t, StatusAll, s)

	_, err = ParseStatus("Hilang")
	assert.Error(t, err)
}

func TestFetch_FiltersByStatus(t *testing.T) {
	api := &mockPurchaseAPI{rows: []Row{
		{PurchaseID: "inv-1", Status: StatusUnpaid},
		{PurchaseID: "inv-2", Status: StatusShipped},
	}}
	h := NewHistory(api, "u@example.com")

	got, err := h.Fetch(context.Background(), StatusShipped)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "inv-2", got[0].PurchaseID)

	all, err := h.Fetch(context.Background(), StatusAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = h.Fetch(context.Background(), Status("Hilang"))
	assert.Error(t, err)
}

func TestCounts_ComputesSemuaTotal(t *testing.T) {
	api := &mockPurchaseAPI{counts: map[Status]int{
		StatusUnpaid:  2,
		StatusPacking: 1,
	}}
	h := NewHistory(api, "u@example.com")

	counts, err := h.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, counts[StatusAll])
}

func TestCancel(t *testing.T) {
	api := &mockPurchaseAPI{}
	h := NewHistory(api, "u@example.com")

	require.NoError(t, h.Cancel(context.Background(), "inv-1", StatusUnpaid))
	assert.Equal(t, "inv-1", api.lastID)
	assert.Equal(t, StatusCancelled, api.lastStatus)
}

func TestCancel_OnlyFromUnpaid(t *testing.T) {
	api := &mockPurchaseAPI{}
	h := NewHistory(api, "u@example.com")

	err := h.Cancel(context.Background(), "inv-1", StatusPacking)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Zero(t, api.updateCalls, "invalid transitions never reach the backend")
}

func TestConfirmShippedAndArrived(t *testing.T) {
	api := &mockPurchaseAPI{}
	h := NewHistory(api, "admin@example.com")

	require.NoError(t, h.ConfirmShipped(context.Background(), "inv-1", StatusPacking))
	assert.Equal(t, StatusShipped, api.lastStatus)

	require.NoError(t, h.ConfirmArrived(context.Background(), "inv-1", StatusShipped))
	assert.Equal(t, StatusCompleted, api.lastStatus)
}

func TestTransition_BackendFailureSurfaces(t *testing.T) {
	api := &mockPurchaseAPI{updateErr: errors.New("backend down")}
	h := NewHistory(api, "u@example.com")

	err := h.Cancel(context.Background(), "inv-1", StatusUnpaid)
	assert.Error(t, err)
}
