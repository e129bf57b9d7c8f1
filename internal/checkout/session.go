package checkout

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/oktaviandwip/musalabel-storefront/internal/cart"
)

// Invoice is the payment-gateway-issued payable link for a total amount.
type Invoice struct {
	URL        string
	ExternalID string
}

type InvoiceRequest struct {
	Amount             int64
	PayerEmail         string
	Description        string
	SuccessRedirectURL string
	FailureRedirectURL string
}

// Gateway creates payment invoices. Implemented by the backend REST client.
type Gateway interface {
	CreateInvoice(ctx context.Context, req InvoiceRequest) (*Invoice, error)
}

// PurchaseSubmission is the purchase-record write sent once an invoice
// exists. Create is set when no selected line was persisted before.
type PurchaseSubmission struct {
	Create          bool
	LineIDs         []string
	UserID          string
	ProductID       string
	Quantity        int
	Size            cart.Size
	Status          string
	PurchaseID      string
	InvoiceURL      string
	DeliveryOption  Tier
	DeliveryAddress string
	TotalPrice      int64
}

// Recorder persists purchase records on the backend.
type Recorder interface {
	SubmitPurchase(ctx context.Context, sub PurchaseSubmission) error
}

// StockChecker reads current stock and price for a product, used to
// revalidate denormalized snapshots at submission time.
type StockChecker interface {
	CurrentStock(ctx context.Context, productID string) (stock int, price int64, err error)
}

// unpaidStatus is the purchase status a fresh order carries until the
// gateway confirms payment.
const unpaidStatus = "Belum Bayar"

// Session drives one checkout from draft to a recorded, payable purchase.
type Session struct {
	mu      sync.Mutex
	status  Status
	draft   Draft
	userID  string
	invoice *Invoice

	gateway  Gateway
	recorder Recorder
	stock    StockChecker
	cart     *cart.Store // nil for buy-now sessions

	successURL string
	failureURL string
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetTier changes the delivery option while still drafting.
func (s *Session) SetTier(t Tier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusDrafting {
		return ErrIllegalTransition
	}
	if !t.Valid() {
		t = DefaultTier
	}
	s.draft.Tier = t
	return nil
}

// SetContact updates the delivery address and phone while drafting.
func (s *Session) SetContact(address, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusDrafting {
		return ErrIllegalTransition
	}
	s.draft.Address = address
	s.draft.Phone = phone
	return nil
}

// Invoice returns the gateway invoice, if one has been created.
func (s *Session) Invoice() *Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invoice
}

// Submit runs the two-phase handoff: create a gateway invoice, then
// persist the purchase record. A failed invoice drops the session back
// to drafting; a failed persist leaves it addressable so Submit can be
// retried without creating a second invoice.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.status {
	case StatusCompleted:
		return ErrCompleted
	case StatusDrafting:
		if err := s.requestInvoice(ctx); err != nil {
			return err
		}
	case StatusOrderPersisted:
		// retry path, invoice already exists
	default:
		return ErrIllegalTransition
	}

	return s.persistPurchase(ctx)
}

func (s *Session) requestInvoice(ctx context.Context) error {
	if len(s.draft.Items) == 0 {
		return ErrEmptySelection
	}
	if s.draft.Phone == "" || s.draft.Address == "" {
		return ErrMissingContact
	}

	if err := s.revalidateStock(ctx); err != nil {
		return err
	}

	if !CanTransitionTo(s.status, StatusInvoiceRequested) {
		return ErrIllegalTransition
	}
	s.status = StatusInvoiceRequested

	inv, err := s.gateway.CreateInvoice(ctx, InvoiceRequest{
		Amount:             s.draft.Total(),
		PayerEmail:         s.draft.PayerEmail,
		Description:        s.draft.Description(),
		SuccessRedirectURL: s.successURL,
		FailureRedirectURL: s.failureURL,
	})
	if err != nil {
		s.status = StatusDrafting
		return fmt.Errorf("%w: %v", ErrPaymentInit, err)
	}
	if inv == nil || inv.URL == "" {
		s.status = StatusDrafting
		return fmt.Errorf("%w: no invoice URL returned", ErrPaymentInit)
	}

	s.invoice = inv
	s.status = StatusOrderPersisted
	return nil
}

// revalidateStock refreshes snapshot prices and refuses quantities the
// catalog can no longer cover.
func (s *Session) revalidateStock(ctx context.Context) error {
	for i, item := range s.draft.Items {
		stock, price, err := s.stock.CurrentStock(ctx, item.ProductID)
		if err != nil {
			return fmt.Errorf("check stock for %s: %w", item.ProductID, err)
		}
		if item.Quantity > stock {
			return fmt.Errorf("%w: %s %s", ErrStockChanged, item.Snapshot.Name, item.Size)
		}
		if price != item.Snapshot.Price {
			log.Printf("price drift for product %s: snapshot %d, current %d", item.ProductID, item.Snapshot.Price, price)
			s.draft.Items[i].Snapshot.Price = price
		}
	}
	return nil
}

func (s *Session) persistPurchase(ctx context.Context) error {
	sub := PurchaseSubmission{
		UserID:          s.userID,
		Status:          unpaidStatus,
		PurchaseID:      s.invoice.ExternalID,
		InvoiceURL:      s.invoice.URL,
		DeliveryOption:  s.draft.Tier,
		DeliveryAddress: s.draft.Address,
		TotalPrice:      s.draft.Total(),
	}

	sub.Create = true
	for _, item := range s.draft.Items {
		sub.LineIDs = append(sub.LineIDs, item.ID)
		if item.ID != "" {
			sub.Create = false
		}
	}
	first := s.draft.Items[0]
	sub.ProductID = first.ProductID
	sub.Quantity = first.Quantity
	sub.Size = first.Size

	if err := s.recorder.SubmitPurchase(ctx, sub); err != nil {
		// No rollback of the gateway invoice here; the draft stays
		// addressable and Submit may be retried.
		return fmt.Errorf("persist purchase: %w", err)
	}

	if s.cart != nil {
		s.cart.DropSelected()
	}
	s.draft.Items = nil
	s.status = StatusCompleted
	return nil
}
