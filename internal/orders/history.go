package orders

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrIllegalTransition = errors.New("illegal order status transition")
	ErrPurchaseNotFound  = errors.New("purchase not found")
)

// PurchaseAPI is the slice of the backend the history view needs.
type PurchaseAPI interface {
	Purchases(ctx context.Context, email string, status Status) ([]Row, error)
	PurchaseCounts(ctx context.Context, email string) (map[Status]int, error)
	UpdatePurchaseStatus(ctx context.Context, purchaseID string, status Status) error
}

// History projects a buyer's purchase records and issues status
// transitions. Every transition is confirm-then-render: the caller
// re-fetches after a successful command, nothing is applied optimistically.
type History struct {
	api   PurchaseAPI
	email string
}

func NewHistory(api PurchaseAPI, email string) *History {
	return &History{api: api, email: email}
}

// Fetch returns the grouped purchases for one status filter. StatusAll
// returns everything.
func (h *History) Fetch(ctx context.Context, status Status) ([]Purchase, error) {
	if status != StatusAll && !status.Valid() {
		return nil, fmt.Errorf("fetch purchases: unknown status %q", status)
	}
	rows, err := h.api.Purchases(ctx, h.email, status)
	if err != nil {
		return nil, fmt.Errorf("fetch purchases: %w", err)
	}
	return GroupRows(rows), nil
}

// Counts returns the per-status badge numbers, including the Semua total.
func (h *History) Counts(ctx context.Context) (map[Status]int, error) {
	counts, err := h.api.PurchaseCounts(ctx, h.email)
	if err != nil {
		return nil, fmt.Errorf("fetch purchase counts: %w", err)
	}
	if _, ok := counts[StatusAll]; !ok {
		total := 0
		for _, n := range counts {
			total += n
		}
		counts[StatusAll] = total
	}
	return counts, nil
}

// Cancel moves an unpaid purchase to cancelled. Buyer-initiated.
func (h *History) Cancel(ctx context.Context, purchaseID string, current Status) error {
	return h.transition(ctx, purchaseID, current, StatusCancelled)
}

// ConfirmShipped moves a packed purchase to shipped. Admin-initiated.
func (h *History) ConfirmShipped(ctx context.Context, purchaseID string, current Status) error {
	return h.transition(ctx, purchaseID, current, StatusShipped)
}

// ConfirmArrived moves a shipped purchase to completed. Admin-initiated.
func (h *History) ConfirmArrived(ctx context.Context, purchaseID string, current Status) error {
	return h.transition(ctx, purchaseID, current, StatusCompleted)
}

func (h *History) transition(ctx context.Context, purchaseID string, from, to Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	if err := h.api.UpdatePurchaseStatus(ctx, purchaseID, to); err != nil {
		return fmt.Errorf("update purchase status: %w", err)
	}
	return nil
}
