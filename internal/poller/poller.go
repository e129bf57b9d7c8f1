// Package poller consumes payment confirmation events so cached cart and
// order projections catch up with status changes the gateway drives.
package poller

import (
	"context"
	"encoding/json"
	"log"

	"github.com/oktaviandwip/musalabel-storefront/internal/cart"
	"github.com/segmentio/kafka-go"
)

type Poller struct {
	carts  *cart.Manager
	reader *kafka.Reader
}

func NewPoller(carts *cart.Manager, brokers ...string) *Poller {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    "payment-events",
		GroupID:  "storefront-consumer",
		MaxBytes: 10e6, // 10MB
	})
	return &Poller{carts: carts, reader: reader}
}

func (p *Poller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		p.readAndInvalidate(ctx)
	}
}

func (p *Poller) Close() {
	if err := p.reader.Close(); err != nil {
		log.Printf("error closing reader: %v", err)
	}
}

func (p *Poller) readAndInvalidate(ctx context.Context) {
	m, err := p.reader.ReadMessage(ctx)
	if err != nil {
		log.Printf("error reading message: %v", err)
		return
	}
	p.handle(m.Value)
}

// handle drops the user's cached cart so the next read re-hydrates and
// reflects the purchase leaving unpaid status. The status transition
// itself is backend-owned.
func (p *Poller) handle(value []byte) {
	var payload struct {
		UserID     string `json:"user_id"`
		PurchaseID string `json:"purchase_id"`
	}
	if err := json.Unmarshal(value, &payload); err != nil {
		log.Printf("error parsing message: %v", err)
		return
	}
	if payload.UserID == "" {
		log.Println("missing or invalid user_id")
		return
	}

	p.carts.Invalidate(payload.UserID)
}
