package checkout

// Status tracks a checkout session through the two-phase payment handoff.
type Status string

const (
	StatusDrafting         Status = "DRAFTING"
	StatusInvoiceRequested Status = "INVOICE_REQUESTED"
	StatusOrderPersisted   Status = "ORDER_PERSISTED"
	StatusCompleted        Status = "COMPLETED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// CanTransitionTo reports whether moving from one status to another is
// allowed. InvoiceRequested may fall back to Drafting when the gateway
// refuses the invoice.
func CanTransitionTo(from, to Status) bool {
	switch from {
	case StatusDrafting:
		return to == StatusInvoiceRequested
	case StatusInvoiceRequested:
		return to == StatusOrderPersisted || to == StatusDrafting
	case StatusOrderPersisted:
		return to == StatusCompleted
	}
	return false
}
