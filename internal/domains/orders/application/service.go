package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brewlabs/coffee-store-api/internal/domains/orders/domain"
	"github.com/brewlabs/coffee-store-api/internal/domains/orders/ports"
	"github.com/brewlabs/coffee-store-api/internal/shared/pagination"
)

// Service orchestrates the order lifecycle use cases.
type Service struct {
	repo    ports.Repository
	catalog ports.Catalog
	now     func() time.Time
}

func NewService(repo ports.Repository, catalog ports.Catalog) *Service {
	return &Service{repo: repo, catalog: catalog, now: time.Now}
}

// CreateOrder opens a new editing order with prices captured from the catalog.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (uuid.UUID, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return uuid.Nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	lines, err := s.buildLines(ctx, input.Items)
	if err != nil {
		return uuid.Nil, err
	}
	order, err := domain.NewOrder(input.UserID, lines, s.now().UTC())
	if err != nil {
		return uuid.Nil, mapError(err)
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return uuid.Nil, err
	}
	return order.ID, nil
}

// UpdateOrder replaces the whole line set of an editing order with freshly
// captured prices. Existence and editing state are verified before any item
// validation or catalog lookup.
func (s *Service) UpdateOrder(ctx context.Context, orderID uuid.UUID, items []ports.LineInput) error {
	err := s.repo.Mutate(ctx, orderID, func(order *domain.Order) error {
		if order.Status != domain.StatusEditing {
			return fmt.Errorf("%w: order is %s", domain.ErrNotEditable, order.Status)
		}
		lines, err := s.buildLines(ctx, items)
		if err != nil {
			return err
		}
		return order.ReplaceLines(lines, s.now().UTC())
	})
	return mapError(err)
}

// SetOrderStatus runs the lifecycle state machine against the stored order.
func (s *Service) SetOrderStatus(ctx context.Context, orderID uuid.UUID, target domain.Status) error {
	err := s.repo.Mutate(ctx, orderID, func(order *domain.Order) error {
		return order.Transition(target, s.now().UTC())
	})
	return mapError(err)
}

// CompletePayment records the gateway payment and completes the order. The
// payment row, the status change, and the link commit in one transaction.
func (s *Service) CompletePayment(ctx context.Context, input ports.CompletePaymentInput) error {
	err := s.repo.Mutate(ctx, input.OrderID, func(order *domain.Order) error {
		payment := domain.Payment{
			ID:     uuid.New(),
			Amount: input.Amount,
			PaidAt: input.PaidAt,
			Method: input.Method,
		}
		return order.AttachPayment(payment, s.now().UTC())
	})
	return mapError(err)
}

// ListOrders returns one summary page, newest order date first.
func (s *Service) ListOrders(ctx context.Context, input ports.ListOrdersInput) (pagination.Page[ports.OrderSummary], error) {
	page := input.Page.Normalize()
	orders, total, err := s.repo.List(ctx, input.Filter, page)
	if err != nil {
		return pagination.Page[ports.OrderSummary]{}, err
	}
	summaries := make([]ports.OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, toSummary(order))
	}
	return pagination.NewPage(summaries, total, page), nil
}

// GetOrderByID loads the full aggregate: lines with product-name snapshots
// plus payment details.
func (s *Service) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

// buildLines validates the requested items and captures current catalog
// prices. Missing or inactive products fail naming every offending id.
func (s *Service) buildLines(ctx context.Context, items []ports.LineInput) ([]domain.Line, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrValidation, domain.ErrEmptyLines)
	}
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: %w: product %s", ErrValidation, domain.ErrInvalidQuantity, item.ProductID)
		}
		if _, dup := seen[item.ProductID]; dup {
			return nil, fmt.Errorf("%w: %w: product %s", ErrValidation, domain.ErrDuplicateProduct, item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	resolved, err := s.catalog.ResolveActiveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, id := range ids {
		if _, ok := resolved[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: products not found or inactive: %s", ErrValidation, strings.Join(missing, ", "))
	}

	lines := make([]domain.Line, 0, len(items))
	for _, item := range items {
		info := resolved[item.ProductID]
		lines = append(lines, domain.Line{
			ID:          uuid.New(),
			ProductID:   item.ProductID,
			ProductName: info.Name,
			Quantity:    item.Quantity,
			UnitPrice:   info.Price,
		})
	}
	return lines, nil
}

func toSummary(order *domain.Order) ports.OrderSummary {
	summary := ports.OrderSummary{
		ID:          order.ID,
		UserID:      order.UserID,
		OrderDate:   order.OrderDate,
		Status:      order.Status,
		TotalAmount: order.TotalAmount(),
		TotalItems:  order.TotalItems(),
	}
	if order.Payment != nil {
		id := order.Payment.ID
		summary.PaymentID = &id
	}
	return summary
}

var _ ports.Service = (*Service)(nil)
