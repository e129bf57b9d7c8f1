package checkout

import "errors"

var (
	ErrEmptySelection    = errors.New("no items selected for checkout")
	ErrMissingContact    = errors.New("phone number and address must not be empty")
	ErrPaymentInit       = errors.New("payment invoice could not be created")
	ErrStockChanged      = errors.New("selected quantity exceeds current stock")
	ErrIllegalTransition = errors.New("illegal transition of checkout status")
	ErrCompleted         = errors.New("checkout session already completed")
)
