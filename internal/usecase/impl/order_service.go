// Package impl contains the concrete implementations of the usecase interfaces.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"depot/config"
	deliverycontext "depot/internal/delivery/context"
	"depot/internal/domain/constants"
	"depot/internal/domain/entity"
	domainerrors "depot/internal/domain/errors"
	"depot/internal/domain/repository"
	"depot/internal/domain/service"
	"depot/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	allocator   service.OrderNumberAllocator
	publisher   service.EventPublisher
	config      *config.Config
	logger      *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	Allocator   service.OrderNumberAllocator
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		orderRepo:   params.OrderRepo,
		productRepo: params.ProductRepo,
		allocator:   params.Allocator,
		publisher:   params.Publisher,
		config:      params.Config,
		logger:      params.Logger,
	}
}

// CreateOrder validates the input, allocates a unique order number and
// persists the order with status Pending.
func (s *orderService) CreateOrder(ctx context.Context, input *usecase.CreateOrderInput) (*entity.Order, error) {
	if err := s.validateBit(input.Bit); err != nil {
		return nil, err
	}
	if input.TotalAmount < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("total amount must not be negative")
	}

	date, timeOfDay, err := resolveOrderClock(input.Date, input.Time)
	if err != nil {
		return nil, err
	}

	items, err := s.resolveOrderItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		ID:          uuid.New(),
		CounterName: input.CounterName,
		Bit:         input.Bit,
		Status:      entity.OrderStatusPending,
		Date:        date,
		Time:        timeOfDay,
		TotalItems:  len(items),
		TotalAmount: input.TotalAmount,
		Items:       items,
	}

	if err := s.persistWithFreshNumber(ctx, order); err != nil {
		return nil, err
	}

	s.publishOrderEvent(ctx, constants.OrderEventCreated, order)

	return order, nil
}

// persistWithFreshNumber runs the bounded allocate-and-persist loop. A
// duplicate-number conflict means another writer claimed the candidate between
// allocation and persistence; the loop asks the allocator for a fresh one. The
// order is never persisted without a number, and exhausting the bound surfaces
// as ErrOrderNumberExhausted.
func (s *orderService) persistWithFreshNumber(ctx context.Context, order *entity.Order) error {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	attempts := s.allocator.MaxAttempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		number, err := s.allocator.Next(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to produce order number candidate")
		}

		order.OrderNumber = number

		err = s.orderRepo.CreateOrder(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateOrderNumber) {
			return err
		}

		logger.Warn("Order number collision, retrying with a fresh candidate",
			slog.String("order_number", number),
			slog.Int("attempt", attempt),
		)
	}

	return domainerrors.ErrOrderNumberExhausted
}

// GetOrder retrieves one order with its line items.
func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// ListOrders retrieves orders matching the filter, newest first.
func (s *orderService) ListOrders(ctx context.Context, input *usecase.OrderListInput) ([]*entity.Order, error) {
	filter := repository.OrderListFilter{
		Bit:    input.Bit,
		Search: input.Search,
	}
	if input.Status != "" {
		status := entity.OrderStatus(input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrInvalidOrderStatus
		}
		filter.Status = status
	}

	orders, err := s.orderRepo.ListOrders(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// UpdateOrder replaces an order's mutable fields and line items. The line
// items of a full edit carry their snapshot fields as given: an order must
// stay editable after a referenced product was renamed or deleted, so the
// products are deliberately not re-resolved here.
func (s *orderService) UpdateOrder(ctx context.Context, id uuid.UUID, input *usecase.UpdateOrderInput) (*entity.Order, error) {
	if err := s.validateBit(input.Bit); err != nil {
		return nil, err
	}

	status := entity.OrderStatus(input.Status)
	if !status.IsValid() {
		return nil, domainerrors.ErrInvalidOrderStatus
	}
	if input.TotalAmount < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("total amount must not be negative")
	}

	date, timeOfDay, err := resolveOrderClock(input.Date, input.Time)
	if err != nil {
		return nil, err
	}

	items := make([]entity.OrderItem, 0, len(input.Items))
	for _, edit := range input.Items {
		unit := entity.Unit(edit.Unit)
		if !unit.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown unit %q", edit.Unit))
		}
		if edit.Quantity < 1 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("quantity must be at least 1")
		}

		items = append(items, entity.OrderItem{
			ProductID:   edit.ProductID,
			ProductName: edit.ProductName,
			BrandName:   edit.BrandName,
			Unit:        unit,
			Quantity:    edit.Quantity,
		})
	}

	order := &entity.Order{
		ID:          id,
		CounterName: input.CounterName,
		Bit:         input.Bit,
		Status:      status,
		Date:        date,
		Time:        timeOfDay,
		TotalItems:  len(items),
		TotalAmount: input.TotalAmount,
		Items:       items,
	}

	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to update order")
	}

	return s.GetOrder(ctx, id)
}

// UpdateOrderStatus transitions an order between Pending and Completed. There
// is no transition matrix: a Completed order may be reopened.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, statusInput string) (*entity.Order, error) {
	status := entity.OrderStatus(statusInput)
	if !status.IsValid() {
		return nil, domainerrors.ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to update order status")
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishOrderEvent(ctx, constants.OrderEventStatusChanged, order)

	return order, nil
}

// DeleteOrder removes one order.
func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound
		}

		return errors.Wrap(err, "failed to delete order")
	}

	return nil
}

// PendingDemand aggregates outstanding quantities across all pending orders.
// The grouping runs inside the store; this method only partitions the bounded
// group set into unit buckets and computes the totals.
func (s *orderService) PendingDemand(ctx context.Context, input *usecase.DemandInput) (*entity.DemandSummary, error) {
	if input.Bit != "" {
		if err := s.validateBit(input.Bit); err != nil {
			return nil, err
		}
	}

	groups, err := s.orderRepo.AggregatePendingDemand(ctx, repository.DemandFilter{
		Bit:   input.Bit,
		Brand: input.Brand,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate pending demand")
	}

	return buildDemandSummary(groups), nil
}

// buildDemandSummary partitions grouped demand rows into the three unit
// buckets and computes bucket sums and grand totals. Rows arrive sorted by
// total quantity descending with product ID as tie-break; bucketing preserves
// that order. An order counts once toward TotalOrders no matter how many
// groups it contributes to.
func buildDemandSummary(groups []*entity.DemandGroup) *entity.DemandSummary {
	summary := &entity.DemandSummary{
		Pc:    []entity.DemandGroup{},
		Outer: []entity.DemandGroup{},
		Case:  []entity.DemandGroup{},
	}

	distinctOrders := make(map[string]struct{})
	for _, group := range groups {
		summary.Totals.TotalGroups++
		for _, number := range group.OrderNumbers {
			distinctOrders[number] = struct{}{}
		}

		switch group.Unit {
		case entity.UnitPc:
			summary.Pc = append(summary.Pc, *group)
			summary.Totals.PcQuantity += group.TotalQuantity
		case entity.UnitOuter:
			summary.Outer = append(summary.Outer, *group)
			summary.Totals.OuterQuantity += group.TotalQuantity
		case entity.UnitCase:
			summary.Case = append(summary.Case, *group)
			summary.Totals.CaseQuantity += group.TotalQuantity
		default:
			// Unrecognized units land in no bucket but still count toward the
			// grand totals.
		}
	}

	summary.Totals.TotalOrders = int64(len(distinctOrders))

	return summary
}

// DashboardStats summarizes the whole order book.
func (s *orderService) DashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	totalOrders, err := s.orderRepo.CountOrders(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count orders")
	}

	totalItems, err := s.orderRepo.CountDistinctOrderedProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count distinct ordered products")
	}

	pendingOrders, err := s.orderRepo.CountOrdersByStatus(ctx, entity.OrderStatusPending)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count pending orders")
	}

	return &entity.DashboardStats{
		TotalOrders:   totalOrders,
		TotalItems:    totalItems,
		PendingOrders: pendingOrders,
		TotalBits:     len(s.config.Ordering.Bits),
	}, nil
}

// CleanupCompletedOrders deletes, from the given candidates, the orders that
// are Completed and dated on or before the retention cutoff. Candidates not
// meeting both conditions are silently skipped, as are unknown IDs and
// candidates whose date does not parse.
func (s *orderService) CleanupCompletedOrders(ctx context.Context, ids []uuid.UUID) (*usecase.CleanupOutput, error) {
	if len(ids) == 0 {
		return &usecase.CleanupOutput{}, nil
	}

	candidates, err := s.orderRepo.FindOrdersByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cleanup candidates")
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)
	cutoff := retentionCutoff(time.Now(), s.config.Ordering.RetentionDays)

	eligible := make([]uuid.UUID, 0, len(candidates))
	for _, order := range candidates {
		if order.Status != entity.OrderStatusCompleted {
			continue
		}

		orderDate, err := entity.ParseOrderDate(order.Date)
		if err != nil {
			logger.Warn("Skipping cleanup candidate with unparseable date",
				slog.String("order_number", order.OrderNumber),
				slog.String("date", order.Date),
			)

			continue
		}
		if orderDate.After(cutoff) {
			continue
		}

		eligible = append(eligible, order.ID)
	}

	if len(eligible) == 0 {
		return &usecase.CleanupOutput{}, nil
	}

	deleted, err := s.orderRepo.DeleteOrdersByIDs(ctx, eligible)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete expired orders")
	}

	logger.Info("Retention sweep removed completed orders",
		slog.Int("candidates", len(ids)),
		slog.Int64("deleted", deleted),
	)

	return &usecase.CleanupOutput{DeletedCount: deleted}, nil
}

// retentionCutoff returns the newest order date, at day granularity in UTC,
// that is old enough to delete: an order dated exactly retentionDays before
// today qualifies, one day younger does not.
func retentionCutoff(now time.Time, retentionDays int) time.Time {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return today.AddDate(0, 0, -retentionDays)
}

// validateBit checks the territory tag against the configured list.
func (s *orderService) validateBit(bit string) error {
	if !slices.Contains(s.config.Ordering.Bits, bit) {
		return domainerrors.ErrInvalidBit
	}

	return nil
}

// resolveOrderItems turns requested lines into order items, snapshotting the
// product and brand names from the referenced products. The snapshot belongs
// to the order from here on and is never refreshed.
func (s *orderService) resolveOrderItems(ctx context.Context, inputs []usecase.OrderItemInput) ([]entity.OrderItem, error) {
	items := make([]entity.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		unit := entity.Unit(in.Unit)
		if !unit.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unknown unit %q", in.Unit))
		}
		if in.Quantity < 1 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("quantity must be at least 1")
		}

		product, err := s.productRepo.FindProductByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrProductNotFound
			}

			return nil, errors.Wrap(err, "failed to resolve ordered product")
		}

		items = append(items, entity.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			BrandName:   product.BrandName,
			Unit:        unit,
			Quantity:    in.Quantity,
		})
	}

	return items, nil
}

// resolveOrderClock fills the order date and time, defaulting empty values to
// the creation instant.
func resolveOrderClock(date, timeOfDay string) (string, string, error) {
	now := time.Now()

	if date == "" {
		date = now.Format(entity.OrderDateLayout)
	} else if _, err := entity.ParseOrderDate(date); err != nil {
		return "", "", domainerrors.ErrValidationFailed.WithDetails("date must be in DD/MM/YYYY form")
	}

	if timeOfDay == "" {
		timeOfDay = now.Format(entity.OrderTimeLayout)
	}

	return date, timeOfDay, nil
}

// publishOrderEvent announces an order change to downstream consumers.
// Publishing is best-effort: failures are logged and never fail the request.
func (s *orderService) publishOrderEvent(ctx context.Context, eventType string, order *entity.Order) {
	event := &service.OrderEvent{
		RequestID:   deliverycontext.GetRequestIDFromContext(ctx),
		Type:        eventType,
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		CounterName: order.CounterName,
		Bit:         order.Bit,
		Status:      order.Status.String(),
	}

	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, s.logger).Warn("Failed to publish order event",
			slog.String("event_type", eventType),
			slog.String("order_number", order.OrderNumber),
			slog.Any("error", err),
		)
	}
}
