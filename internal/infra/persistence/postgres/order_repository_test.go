package postgres

import (
	"context"
	"testing"

	"depot/internal/domain/entity"
	"depot/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedOrder persists an order with sensible defaults, overridable per test.
func seedOrder(t *testing.T, repo repository.OrderRepository, mutate func(*entity.Order)) *entity.Order {
	t.Helper()

	order := &entity.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-" + uuid.NewString()[:8],
		CounterName: "Main Street Counter",
		Bit:         "A-1",
		Status:      entity.OrderStatusPending,
		Date:        "15/03/2026",
		Time:        "10:30",
		TotalItems:  1,
		TotalAmount: 120.50,
		Items: []entity.OrderItem{
			{ProductID: uuid.New(), ProductName: "Widget", BrandName: "Acme", Unit: entity.UnitPc, Quantity: 4},
		},
	}
	if mutate != nil {
		mutate(order)
	}
	order.TotalItems = len(order.Items)

	require.NoError(t, repo.CreateOrder(context.Background(), order))

	return order
}

func TestOrderRepository_CreateAndFindOrder(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	ctx := context.Background()

	productA := uuid.New()
	productB := uuid.New()
	order := seedOrder(t, repo, func(o *entity.Order) {
		o.Items = []entity.OrderItem{
			{ProductID: productA, ProductName: "Widget", BrandName: "Acme", Unit: entity.UnitPc, Quantity: 4},
			{ProductID: productB, ProductName: "Gadget", BrandName: "Globex", Unit: entity.UnitCase, Quantity: 1},
		}
	})

	found, err := repo.FindOrderByID(ctx, order.ID)

	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, found.OrderNumber)
	assert.Equal(t, entity.OrderStatusPending, found.Status)
	assert.Equal(t, "15/03/2026", found.Date)
	assert.Equal(t, 2, found.TotalItems)
	require.Len(t, found.Items, 2)
	// Line items come back in insertion order.
	assert.Equal(t, productA, found.Items[0].ProductID)
	assert.Equal(t, productB, found.Items[1].ProductID)
	assert.Equal(t, entity.UnitCase, found.Items[1].Unit)
}

func TestOrderRepository_CreateOrder_DuplicateNumber(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	ctx := context.Background()

	first := seedOrder(t, repo, func(o *entity.Order) { o.OrderNumber = "ORD-001" })

	clash := &entity.Order{
		ID:          uuid.New(),
		OrderNumber: first.OrderNumber,
		CounterName: "Harbour Counter",
		Bit:         "A-1",
		Status:      entity.OrderStatusPending,
		Date:        "16/03/2026",
	}

	err := repo.CreateOrder(ctx, clash)

	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrDuplicateOrderNumber))
}

func TestOrderRepository_FindOrderByID_NotFound(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))

	_, err := repo.FindOrderByID(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrOrderNotFound))
}

func TestOrderRepository_ListOrders_Filters(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	ctx := context.Background()

	seedOrder(t, repo, func(o *entity.Order) {
		o.OrderNumber = "ORD-001"
		o.Bit = "A-1"
		o.CounterName = "Main Street Counter"
	})
	seedOrder(t, repo, func(o *entity.Order) {
		o.OrderNumber = "ORD-002"
		o.Bit = "B-2"
		o.CounterName = "Harbour Counter"
		o.Status = entity.OrderStatusCompleted
	})
	seedOrder(t, repo, func(o *entity.Order) {
		o.OrderNumber = "ORD-003"
		o.Bit = "B-2"
		o.CounterName = "Station Kiosk"
	})

	byBit, err := repo.ListOrders(ctx, repository.OrderListFilter{Bit: "B-2"})
	require.NoError(t, err)
	assert.Len(t, byBit, 2)

	byStatus, err := repo.ListOrders(ctx, repository.OrderListFilter{Status: entity.OrderStatusCompleted})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "ORD-002", byStatus[0].OrderNumber)

	// Search is case-insensitive and matches counter name, number and bit.
	bySearch, err := repo.ListOrders(ctx, repository.OrderListFilter{Search: "harbour"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "ORD-002", bySearch[0].OrderNumber)

	byNumber, err := repo.ListOrders(ctx, repository.OrderListFilter{Search: "ord-003"})
	require.NoError(t, err)
	require.Len(t, byNumber, 1)
	assert.Equal(t, "Station Kiosk", byNumber[0].CounterName)

	all, err := repo.ListOrders(ctx, repository.OrderListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrderRepository_UpdateOrder_ReplacesItems(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := seedOrder(t, repo, nil)
	originalNumber := order.OrderNumber

	order.CounterName = "Renamed Counter"
	order.Status = entity.OrderStatusCompleted
	order.OrderNumber = "ORD-HIJACKED"
	order.Items = []entity.OrderItem{
		{ProductID: uuid.New(), ProductName: "Sprocket", BrandName: "Initech", Unit: entity.UnitOuter, Quantity: 7},
		{ProductID: uuid.New(), ProductName: "Cog", BrandName: "Initech", Unit: entity.UnitPc, Quantity: 2},
	}
	order.TotalItems = len(order.Items)

	require.NoError(t, repo.UpdateOrder(ctx, order))

	found, err := repo.FindOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Counter", found.CounterName)
	assert.Equal(t, entity.OrderStatusCompleted, found.Status)
	require.Len(t, found.Items, 2)
	assert.Equal(t, "Sprocket", found.Items[0].ProductName)
	// The order number is immutable; the update must not rewrite it.
	assert.Equal(t, originalNumber, found.OrderNumber)

	// The old line items are gone, not orphaned.
	var itemCount int64
	require.NoError(t, db.Table("order_items").Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.EqualValues(t, 2, itemCount)
}

func TestOrderRepository_UpdateOrderStatus_NotFound(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))

	err := repo.UpdateOrderStatus(context.Background(), uuid.New(), entity.OrderStatusCompleted)

	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrOrderNotFound))
}

func TestOrderRepository_DeleteOrdersByIDs(t *testing.T) {
	db := openTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	stale1 := seedOrder(t, repo, func(o *entity.Order) { o.OrderNumber = "ORD-001" })
	stale2 := seedOrder(t, repo, func(o *entity.Order) { o.OrderNumber = "ORD-002" })
	kept := seedOrder(t, repo, func(o *entity.Order) { o.OrderNumber = "ORD-003" })

	deleted, err := repo.DeleteOrdersByIDs(ctx, []uuid.UUID{stale1.ID, stale2.ID, uuid.New()})

	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	_, err = repo.FindOrderByID(ctx, stale1.ID)
	assert.True(t, errors.Is(err, repository.ErrOrderNotFound))

	survivor, err := repo.FindOrderByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.Len(t, survivor.Items, 1)

	// The deleted orders' line items went with them.
	var itemCount int64
	require.NoError(t, db.Table("order_items").
		Where("order_id IN ?", []uuid.UUID{stale1.ID, stale2.ID}).
		Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestOrderRepository_DeleteOrdersByIDs_EmptyInput(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))

	deleted, err := repo.DeleteOrdersByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestOrderRepository_MaxOrderNumberSequence(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	ctx := context.Background()

	maxSeq, err := repo.MaxOrderNumberSequence(ctx, "ORD-")
	require.NoError(t, err)
	assert.Zero(t, maxSeq)

	seedOrder(t, repo, func(o *entity.Order) { o.OrderNumber = "ORD-007" })
	seedOrder(t, repo, func(o *entity.Order) { o.OrderNumber = "ORD-012" })
	// A foreign prefix must not leak into the maximum.
	seedOrder(t, repo, func(o *entity.Order) { o.OrderNumber = "EXT-100" })

	maxSeq, err = repo.MaxOrderNumberSequence(ctx, "ORD-")
	require.NoError(t, err)
	assert.EqualValues(t, 12, maxSeq)
}

func TestOrderRepository_AggregatePendingDemand(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	ctx := context.Background()

	widget := uuid.New()
	gadget := uuid.New()

	// Two pending orders share the widget in pieces; one adds widget cases and
	// the gadget. A completed order carrying more widgets must stay invisible.
	seedOrder(t, repo, func(o *entity.Order) {
		o.OrderNumber = "ORD-002"
		o.Items = []entity.OrderItem{
			{ProductID: widget, ProductName: "Widget", BrandName: "Acme", Unit: entity.UnitPc, Quantity: 4},
		}
	})
	seedOrder(t, repo, func(o *entity.Order) {
		o.OrderNumber = "ORD-001"
		o.Items = []entity.OrderItem{
			{ProductID: widget, ProductName: "Widget", BrandName: "Acme", Unit: entity.UnitPc, Quantity: 3},
			{ProductID: widget, ProductName: "Widget", BrandName: "Acme", Unit: entity.UnitCase, Quantity: 2},
			{ProductID: gadget, ProductName: "Gadget", BrandName: "Globex", Unit: entity.UnitPc, Quantity: 1},
		}
	})
	seedOrder(t, repo, func(o *entity.Order) {
		o.OrderNumber = "ORD-003"
		o.Status = entity.OrderStatusCompleted
		o.Items = []entity.OrderItem{
			{ProductID: widget, ProductName: "Widget", BrandName: "Acme", Unit: entity.UnitPc, Quantity: 50},
		}
	})

	groups, err := repo.AggregatePendingDemand(ctx, repository.DemandFilter{})

	require.NoError(t, err)
	require.Len(t, groups, 3)

	// Largest demand first; (product, unit) pairs never merge across units.
	assert.Equal(t, widget, groups[0].ProductID)
	assert.Equal(t, entity.UnitPc, groups[0].Unit)
	assert.EqualValues(t, 7, groups[0].TotalQuantity)
	assert.EqualValues(t, 2, groups[0].OrderCount)
	assert.Equal(t, []string{"ORD-001", "ORD-002"}, groups[0].OrderNumbers)

	remaining := map[entity.Unit]int64{
		groups[1].Unit: groups[1].TotalQuantity,
		groups[2].Unit: groups[2].TotalQuantity,
	}
	assert.EqualValues(t, 2, remaining[entity.UnitCase])
	assert.EqualValues(t, 1, remaining[entity.UnitPc])
}

func TestOrderRepository_AggregatePendingDemand_Filters(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	ctx := context.Background()

	widget := uuid.New()
	gadget := uuid.New()

	seedOrder(t, repo, func(o *entity.Order) {
		o.OrderNumber = "ORD-001"
		o.Bit = "A-1"
		o.Items = []entity.OrderItem{
			{ProductID: widget, ProductName: "Widget", BrandName: "Acme", Unit: entity.UnitPc, Quantity: 4},
		}
	})
	seedOrder(t, repo, func(o *entity.Order) {
		o.OrderNumber = "ORD-002"
		o.Bit = "B-2"
		o.Items = []entity.OrderItem{
			{ProductID: widget, ProductName: "Widget", BrandName: "Acme", Unit: entity.UnitPc, Quantity: 2},
			{ProductID: gadget, ProductName: "Gadget", BrandName: "Globex", Unit: entity.UnitPc, Quantity: 9},
		}
	})

	byBit, err := repo.AggregatePendingDemand(ctx, repository.DemandFilter{Bit: "A-1"})
	require.NoError(t, err)
	require.Len(t, byBit, 1)
	assert.EqualValues(t, 4, byBit[0].TotalQuantity)
	assert.Equal(t, []string{"ORD-001"}, byBit[0].OrderNumbers)

	byBrand, err := repo.AggregatePendingDemand(ctx, repository.DemandFilter{Brand: "Acme"})
	require.NoError(t, err)
	require.Len(t, byBrand, 1)
	assert.Equal(t, widget, byBrand[0].ProductID)
	assert.EqualValues(t, 6, byBrand[0].TotalQuantity)
}

func TestOrderRepository_AggregatePendingDemand_IgnoresEmptyOrders(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	ctx := context.Background()

	seedOrder(t, repo, func(o *entity.Order) {
		o.OrderNumber = "ORD-001"
		o.Items = nil
	})

	groups, err := repo.AggregatePendingDemand(ctx, repository.DemandFilter{})

	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestOrderRepository_DashboardCounts(t *testing.T) {
	repo := NewOrderRepository(openTestDB(t))
	ctx := context.Background()

	widget := uuid.New()
	gadget := uuid.New()

	seedOrder(t, repo, func(o *entity.Order) {
		o.OrderNumber = "ORD-001"
		o.Items = []entity.OrderItem{
			{ProductID: widget, ProductName: "Widget", BrandName: "Acme", Unit: entity.UnitPc, Quantity: 4},
			{ProductID: gadget, ProductName: "Gadget", BrandName: "Globex", Unit: entity.UnitPc, Quantity: 1},
		}
	})
	seedOrder(t, repo, func(o *entity.Order) {
		o.OrderNumber = "ORD-002"
		o.Status = entity.OrderStatusCompleted
		o.Items = []entity.OrderItem{
			// The same product seen again does not add a distinct pair.
			{ProductID: widget, ProductName: "Widget", BrandName: "Acme", Unit: entity.UnitCase, Quantity: 1},
		}
	})

	total, err := repo.CountOrders(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	pending, err := repo.CountOrdersByStatus(ctx, entity.OrderStatusPending)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)

	completed, err := repo.CountOrdersByStatus(ctx, entity.OrderStatusCompleted)
	require.NoError(t, err)
	assert.EqualValues(t, 1, completed)

	distinct, err := repo.CountDistinctOrderedProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, distinct)
}
