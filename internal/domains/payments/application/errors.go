package application

import "errors"

var (
	// ErrOrderNotPayable reports an order that is missing or not awaiting payment.
	ErrOrderNotPayable = errors.New("order not found or not in pending status")
	// ErrInvalidCallback reports a gateway callback that failed verification.
	ErrInvalidCallback = errors.New("invalid payment callback")
)
