package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oktaviandwip/musalabel-storefront/internal/cart"
)

type mockGateway struct {
	invoice *Invoice
	err     error
	calls   int
	lastReq InvoiceRequest
}

func (m *mockGateway) CreateInvoice(_ context.Context, req InvoiceRequest) (*Invoice, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.invoice, nil
}

type mockRecorder struct {
	err     error
	calls   int
	lastSub PurchaseSubmission
}

func (m *mockRecorder) SubmitPurchase(_ context.Context, sub PurchaseSubmission) error {
	m.calls++
	m.lastSub = sub
	return m.err
}

type mockStock struct {
	stock int
	price int64
	err   error
}

func (m *mockStock) CurrentStock(context.Context, string) (int, int64, error) {
	return m.stock, m.price, m.err
}

type mockCartSyncer struct{}

func (mockCartSyncer) Hydrate(context.Context, string) ([]cart.Line, error) { return nil, nil }
func (mockCartSyncer) Create(context.Context, cart.Line) (string, error)   { return "id", nil }
func (mockCartSyncer) Update(context.Context, cart.Line) error             { return nil }
func (mockCartSyncer) Delete(context.Context, string, string, cart.Size) error {
	return nil
}

func testFixture(t *testing.T) (*Manager, *cart.Store, *mockGateway, *mockRecorder, *mockStock) {
	t.Helper()

	gw := &mockGateway{invoice: &Invoice{URL: "https://pay.example/inv-1", ExternalID: "inv-1"}}
	rec := &mockRecorder{}
	stock := &mockStock{stock: 10, price: 150000}
	m := NewManager(gw, rec, stock, "https://shop.example/done", "https://shop.example/failed")

	st := cart.NewStore("user-1", mockCartSyncer{}, nil)
	snap := cart.Snapshot{Name: "Gamis Khadijah", Price: 150000, Stock: 10}
	require.NoError(t, st.AddOrMerge(context.Background(), "p1", snap, cart.SizeM, 2))
	require.NoError(t, st.ToggleSelect("p1", cart.SizeM))

	return m, st, gw, rec, stock
}

func TestBegin_EmptySelection(t *testing.T) {
	m, st, _, _, _ := testFixture(t)
	st.ClearSelection()

	_, err := m.Begin("user-1", "u@example.com", st)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestSubmit_HappyPath(t *testing.T) {
	m, st, gw, rec, _ := testFixture(t)

	s, err := m.Begin("user-1", "u@example.com", st)
	require.NoError(t, err)
	require.NoError(t, s.SetContact("Jl. Melati 5, Bandung", "0812000111"))
	require.NoError(t, s.SetTier(TierNextDay))

	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, StatusCompleted, s.Status())
	assert.Equal(t, 1, gw.calls)
	assert.Equal(t, int64(310000), gw.lastReq.Amount)
	assert.Equal(t, "Invoice for Gamis Khadijah purchase", gw.lastReq.Description)
	assert.Equal(t, "u@example.com", gw.lastReq.PayerEmail)

	require.Equal(t, 1, rec.calls)
	assert.Equal(t, "Belum Bayar", rec.lastSub.Status)
	assert.Equal(t, "inv-1", rec.lastSub.PurchaseID)
	assert.Equal(t, "https://pay.example/inv-1", rec.lastSub.InvoiceURL)
	assert.Equal(t, int64(310000), rec.lastSub.TotalPrice)
	assert.False(t, rec.lastSub.Create, "persisted cart lines must update, not create")

	assert.Empty(t, st.Lines(), "paid selection must leave the cart")
}

func TestSubmit_MissingContact(t *testing.T) {
	m, st, gw, _, _ := testFixture(t)

	s, err := m.Begin("user-1", "u@example.com", st)
	require.NoError(t, err)

	err = s.Submit(context.Background())

	assert.ErrorIs(t, err, ErrMissingContact)
	assert.Equal(t, StatusDrafting, s.Status())
	assert.Zero(t, gw.calls, "no invoice without a deliverable address")
}

func TestSubmit_InvoiceFailureRevertsToDrafting(t *testing.T) {
	m, st, gw, rec, _ := testFixture(t)
	gw.err = errors.New("gateway timeout")

	s, err := m.Begin("user-1", "u@example.com", st)
	require.NoError(t, err)
	require.NoError(t, s.SetContact("Jl. Melati 5", "0812000111"))

	err = s.Submit(context.Background())

	assert.ErrorIs(t, err, ErrPaymentInit)
	assert.Equal(t, StatusDrafting, s.Status(), "failed invoice must keep the draft editable")
	assert.Zero(t, rec.calls)
	assert.Len(t, st.Lines(), 1, "cart untouched on failure")
}

func TestSubmit_StockShrunk(t *testing.T) {
	m, st, gw, _, stock := testFixture(t)
	stock.stock = 1 // selection wants 2

	s, err := m.Begin("user-1", "u@example.com", st)
	require.NoError(t, err)
	require.NoError(t, s.SetContact("Jl. Melati 5", "0812000111"))

	err = s.Submit(context.Background())

	assert.ErrorIs(t, err, ErrStockChanged)
	assert.Equal(t, StatusDrafting, s.Status())
	assert.Zero(t, gw.calls)
}

func TestSubmit_PriceDriftRefreshesSnapshot(t *testing.T) {
	m, st, gw, _, stock := testFixture(t)
	stock.price = 175000

	s, err := m.Begin("user-1", "u@example.com", st)
	require.NoError(t, err)
	require.NoError(t, s.SetContact("Jl. Melati 5", "0812000111"))

	require.NoError(t, s.Submit(context.Background()))

	// 175000*2 + 7000 regular delivery
	assert.Equal(t, int64(357000), gw.lastReq.Amount)
}

func TestSubmit_PersistFailureRetriesWithoutSecondInvoice(t *testing.T) {
	m, st, gw, rec, _ := testFixture(t)
	rec.err = errors.New("backend down")

	s, err := m.Begin("user-1", "u@example.com", st)
	require.NoError(t, err)
	require.NoError(t, s.SetContact("Jl. Melati 5", "0812000111"))

	err = s.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StatusOrderPersisted, s.Status())
	assert.Equal(t, 1, gw.calls)
	assert.Len(t, st.Lines(), 1, "lines stay until the purchase record lands")

	// Begin again returns the same session, Submit skips the invoice phase.
	again, err := m.Begin("user-1", "u@example.com", st)
	require.NoError(t, err)
	assert.Same(t, s, again)

	rec.err = nil
	require.NoError(t, again.Submit(context.Background()))
	assert.Equal(t, 1, gw.calls, "retry must reuse the existing invoice")
	assert.Equal(t, 2, rec.calls)
	assert.Equal(t, StatusCompleted, again.Status())
	assert.Empty(t, st.Lines())
}

func TestSubmit_CompletedSessionRefusesResubmit(t *testing.T) {
	m, st, _, _, _ := testFixture(t)

	s, err := m.Begin("user-1", "u@example.com", st)
	require.NoError(t, err)
	require.NoError(t, s.SetContact("Jl. Melati 5", "0812000111"))
	require.NoError(t, s.Submit(context.Background()))

	assert.ErrorIs(t, s.Submit(context.Background()), ErrCompleted)
}

func TestSetTierAndContact_LockedAfterInvoice(t *testing.T) {
	m, st, _, rec, _ := testFixture(t)
	rec.err = errors.New("backend down")

	s, err := m.Begin("user-1", "u@example.com", st)
	require.NoError(t, err)
	require.NoError(t, s.SetContact("Jl. Melati 5", "0812000111"))
	require.Error(t, s.Submit(context.Background()))
	require.Equal(t, StatusOrderPersisted, s.Status())

	assert.ErrorIs(t, s.SetTier(TierInstant), ErrIllegalTransition)
	assert.ErrorIs(t, s.SetContact("elsewhere", "0813"), ErrIllegalTransition)
}

func TestBuyNow_CreatesPurchaseRecord(t *testing.T) {
	gw := &mockGateway{invoice: &Invoice{URL: "https://pay.example/inv-2", ExternalID: "inv-2"}}
	rec := &mockRecorder{}
	m := NewManager(gw, rec, &mockStock{stock: 5, price: 120000}, "", "")

	line := cart.Line{
		ProductID: "p9",
		UserID:    "user-1",
		Quantity:  1,
		Size:      cart.SizeL,
		Snapshot:  cart.Snapshot{Name: "Gamis Aurvi", Price: 120000},
	}
	s := m.BeginBuyNow("user-1", "u@example.com", line)
	require.NoError(t, s.SetContact("Jl. Melati 5", "0812000111"))

	require.NoError(t, s.Submit(context.Background()))

	assert.True(t, rec.lastSub.Create, "buy-now line has no persisted cart row")
	assert.Equal(t, "p9", rec.lastSub.ProductID)
	assert.Equal(t, int64(127000), rec.lastSub.TotalPrice)
}

func TestAbandon(t *testing.T) {
	m, st, _, _, _ := testFixture(t)

	_, err := m.Begin("user-1", "u@example.com", st)
	require.NoError(t, err)

	m.Abandon("user-1")
	_, ok := m.Current("user-1")
	assert.False(t, ok)
}
