package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status enumerates the order lifecycle.
type Status string

const (
	StatusEditing   Status = "editing"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var (
	ErrEmptyLines        = errors.New("order must contain at least one line")
	ErrDuplicateProduct  = errors.New("order lines must reference distinct products")
	ErrInvalidQuantity   = errors.New("line quantity must be greater than zero")
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrNotEditable       = errors.New("only editing orders can be updated")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrPaymentNotPending = errors.New("payment can only complete a pending order")
	ErrAlreadyPaid       = errors.New("order already has a payment attached")
)

// ParseStatus validates an externally supplied status string.
func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	switch status {
	case StatusEditing, StatusPending, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Line is one product entry of an order. UnitPrice is captured from the
// catalog when the line is built and never re-joined afterwards.
type Line struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Subtotal is quantity times the captured unit price.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PaymentMethod identifies the gateway a payment came through.
type PaymentMethod string

const (
	PaymentMethodVNPay PaymentMethod = "vnpay"
	PaymentMethodCash  PaymentMethod = "cash"
)

// Payment is the completed-payment record linked to an order.
type Payment struct {
	ID      uuid.UUID
	OrderID uuid.UUID
	Amount  decimal.Decimal
	PaidAt  time.Time
	Method  PaymentMethod
}

// Order is the cart-to-purchase aggregate. Lines are owned exclusively by the
// order and are only ever replaced as a whole while the order is editing.
type Order struct {
	ID        uuid.UUID
	UserID    string
	OrderDate time.Time
	Status    Status
	Payment   *Payment
	Lines     []Line
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewOrder constructs a fresh order in the editing state. Lines must already
// carry captured prices; their shape is validated here.
func NewOrder(userID string, lines []Line, now time.Time) (*Order, error) {
	if err := ValidateLines(lines); err != nil {
		return nil, err
	}
	return &Order{
		ID:        uuid.New(),
		UserID:    userID,
		OrderDate: now,
		Status:    StatusEditing,
		Lines:     lines,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidateLines enforces the line-set invariants: non-empty, positive
// quantities, and product ids unique within the order.
func ValidateLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrEmptyLines
	}
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: product %s", ErrInvalidQuantity, line.ProductID)
		}
		if _, dup := seen[line.ProductID]; dup {
			return fmt.Errorf("%w: product %s", ErrDuplicateProduct, line.ProductID)
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}

// ReplaceLines swaps the whole line set. Closed orders reject the edit.
func (o *Order) ReplaceLines(lines []Line, now time.Time) error {
	if o.Status != StatusEditing {
		return fmt.Errorf("%w: order is %s", ErrNotEditable, o.Status)
	}
	if err := ValidateLines(lines); err != nil {
		return err
	}
	o.Lines = lines
	o.UpdatedAt = now
	return nil
}

// Transition applies the lifecycle state machine:
//
//	editing -> pending | cancelled
//	pending -> completed | cancelled
//
// completed and cancelled are terminal.
func (o *Order) Transition(target Status, now time.Time) error {
	if _, err := ParseStatus(string(target)); err != nil {
		return err
	}
	if !transitionAllowed(o.Status, target) {
		return fmt.Errorf("%w: order is %s, requested %s", ErrInvalidTransition, o.Status, target)
	}
	o.Status = target
	o.UpdatedAt = now
	return nil
}

func transitionAllowed(current, target Status) bool {
	switch current {
	case StatusEditing:
		return target == StatusPending || target == StatusCancelled
	case StatusPending:
		return target == StatusCompleted || target == StatusCancelled
	default:
		return false
	}
}

// AttachPayment records a completed payment and moves the order to completed.
// Completion is gated on the pending state so the payment callback cannot
// bypass the lifecycle.
func (o *Order) AttachPayment(payment Payment, now time.Time) error {
	if o.Payment != nil {
		return ErrAlreadyPaid
	}
	if o.Status != StatusPending {
		return fmt.Errorf("%w: order is %s", ErrPaymentNotPending, o.Status)
	}
	payment.OrderID = o.ID
	o.Payment = &payment
	o.Status = StatusCompleted
	o.UpdatedAt = now
	return nil
}

// TotalAmount is the sum of line subtotals.
func (o *Order) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// TotalItems is the sum of line quantities.
func (o *Order) TotalItems() int {
	items := 0
	for _, line := range o.Lines {
		items += line.Quantity
	}
	return items
}
