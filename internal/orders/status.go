package orders

import "fmt"

// Status is the lifecycle state of a purchase record. The values are the
// backend's literal status strings.
type Status string

const (
	StatusUnpaid    Status = "Belum Bayar"
	StatusPacking   Status = "Sedang Dikemas"
	StatusShipped   Status = "Dikirim"
	StatusCompleted Status = "Selesai"
	StatusCancelled Status = "Dibatalkan"

	// StatusAll is a display filter only, never a stored status.
	StatusAll Status = "Semua"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	switch s {
	case StatusUnpaid, StatusPacking, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Statuses lists the filter tabs in display order, "Semua" first.
func Statuses() []Status {
	return []Status{StatusAll, StatusUnpaid, StatusPacking, StatusShipped, StatusCompleted, StatusCancelled}
}

// CanTransition reports whether a purchase may move from one status to
// another. Transitions are forward-only, no skipping.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusUnpaid:
		return to == StatusCancelled || to == StatusPacking
	case StatusPacking:
		return to == StatusShipped
	case StatusShipped:
		return to == StatusCompleted
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if st == StatusAll || st.Valid() {
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}
