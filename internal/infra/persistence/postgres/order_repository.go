// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"sort"
	"strings"

	"depot/internal/domain/entity"
	domainerrors "depot/internal/domain/errors"
	"depot/internal/domain/repository"
	"depot/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// CreateOrder persists a new order together with its line items.
func (repo *orderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(orderM).Error
	})
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateOrderNumber
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Update the entity with generated values
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindOrderByID retrieves an order with its line items by its unique ID.
func (repo *orderRepository) FindOrderByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items", orderItemsByLine).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// FindOrdersByIDs retrieves the orders matching the given IDs, items included.
func (repo *orderRepository) FindOrdersByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Order, error) {
	if len(ids) == 0 {
		return []*entity.Order{}, nil
	}

	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items", orderItemsByLine).
		Where("id IN ?", ids).
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by IDs")
	}

	return toOrderDomains(orderModels), nil
}

// ListOrders retrieves orders matching the filter, newest first, items included.
func (repo *orderRepository) ListOrders(ctx context.Context, filter repository.OrderListFilter) ([]*entity.Order, error) {
	query := repo.db.WithContext(ctx).
		Preload("Items", orderItemsByLine).
		Order("created_at DESC")

	if filter.Bit != "" {
		query = query.Where("bit = ?", filter.Bit)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(counter_name) LIKE ? OR LOWER(order_number) LIKE ? OR LOWER(bit) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var orderModels []*model.OrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDomains(orderModels), nil
}

// UpdateOrder replaces an order's mutable fields and its line items.
// The order number is immutable and never rewritten.
func (repo *orderRepository) UpdateOrder(ctx context.Context, order *entity.Order) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.OrderModel{}).
			Where("id = ?", order.ID).
			Select("counter_name", "bit", "status", "date", "time", "total_items", "total_amount").
			Updates(map[string]any{
				"counter_name": order.CounterName,
				"bit":          order.Bit,
				"status":       order.Status.String(),
				"date":         order.Date,
				"time":         order.Time,
				"total_items":  order.TotalItems,
				"total_amount": order.TotalAmount,
			})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to update order")
		}
		if result.RowsAffected == 0 {
			return repository.ErrOrderNotFound
		}

		// Replace the line items wholesale; they are exclusively owned by the order.
		if err := tx.Where("order_id = ?", order.ID).
			Delete(&model.OrderItemModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to clear order items")
		}

		if len(order.Items) == 0 {
			return nil
		}

		itemModels := fromOrderItemDomains(order.ID, order.Items)
		if err := tx.Create(&itemModels).Error; err != nil {
			return errors.Wrap(err, "failed to recreate order items")
		}

		return nil
	})
}

// UpdateOrderStatus updates only the lifecycle status of an order.
func (repo *orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", status.String())

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// DeleteOrder removes an order and its line items by ID.
func (repo *orderRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).
			Delete(&model.OrderItemModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete order items")
		}

		result := tx.Where("id = ?", id).Delete(&model.OrderModel{})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete order")
		}
		if result.RowsAffected == 0 {
			return repository.ErrOrderNotFound
		}

		return nil
	})
}

// DeleteOrdersByIDs removes the given orders and their line items in one statement.
func (repo *orderRepository) DeleteOrdersByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id IN ?", ids).
			Delete(&model.OrderItemModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete order items")
		}

		result := tx.Where("id IN ?", ids).Delete(&model.OrderModel{})
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete orders")
		}
		deleted = result.RowsAffected

		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

// MaxOrderNumberSequence returns the largest numeric suffix among existing order
// numbers carrying the given prefix, or 0 when none exist.
func (repo *orderRepository) MaxOrderNumberSequence(ctx context.Context, prefix string) (int64, error) {
	var maxSequence int64

	query := `
		SELECT COALESCE(MAX(CAST(SUBSTR(order_number, ?) AS INTEGER)), 0)
		FROM orders
		WHERE order_number LIKE ?
	`

	if err := repo.db.WithContext(ctx).
		Raw(query, len(prefix)+1, prefix+"%").
		Scan(&maxSequence).Error; err != nil {
		return 0, errors.Wrap(err, "failed to read max order number sequence")
	}

	return maxSequence, nil
}

// demandRow is the scan target for the pending-demand aggregation query.
type demandRow struct {
	ProductID     uuid.UUID
	ProductName   string
	BrandName     string
	Unit          string
	TotalQuantity int64
	OrderCount    int64
	OrderNumbers  string
}

// AggregatePendingDemand groups the line items of all pending orders by
// (product, unit) with the grouping, summing and distinct-counting pushed down
// to the store. The result set is bounded by distinct (product, unit) pairs.
func (repo *orderRepository) AggregatePendingDemand(ctx context.Context, filter repository.DemandFilter) ([]*entity.DemandGroup, error) {
	conditions := []string{"o.status = ?"}
	args := []any{entity.OrderStatusPending.String()}

	if filter.Bit != "" {
		conditions = append(conditions, "o.bit = ?")
		args = append(args, filter.Bit)
	}
	if filter.Brand != "" {
		conditions = append(conditions, "oi.brand_name = ?")
		args = append(args, filter.Brand)
	}

	query := `
		SELECT oi.product_id,
		       MAX(oi.product_name) AS product_name,
		       MAX(oi.brand_name) AS brand_name,
		       oi.unit,
		       SUM(oi.quantity) AS total_quantity,
		       COUNT(DISTINCT o.id) AS order_count,
		       ` + repo.distinctOrderNumbersExpr() + ` AS order_numbers
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		GROUP BY oi.product_id, oi.unit
		ORDER BY total_quantity DESC, oi.product_id ASC
	`

	var rows []demandRow
	if err := repo.db.WithContext(ctx).
		Raw(query, args...).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate pending demand")
	}

	groups := make([]*entity.DemandGroup, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, toDemandGroupDomain(row))
	}

	return groups, nil
}

// distinctOrderNumbersExpr returns the dialect-specific aggregate collecting the
// distinct contributing order numbers of a group into one comma-joined column.
// Order numbers never contain commas.
func (repo *orderRepository) distinctOrderNumbersExpr() string {
	if repo.db.Dialector.Name() == "sqlite" {
		return "GROUP_CONCAT(DISTINCT o.order_number)"
	}

	return "STRING_AGG(DISTINCT o.order_number, ',')"
}

// CountOrders returns the number of orders of any status.
func (repo *orderRepository) CountOrders(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count orders")
	}

	return count, nil
}

// CountOrdersByStatus returns the number of orders with the given status.
func (repo *orderRepository) CountOrdersByStatus(ctx context.Context, status entity.OrderStatus) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("status = ?", status.String()).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count orders by status")
	}

	return count, nil
}

// CountDistinctOrderedProducts returns the number of distinct (product, brand)
// pairs appearing across all order lines.
func (repo *orderRepository) CountDistinctOrderedProducts(ctx context.Context) (int64, error) {
	var count int64

	query := `
		SELECT COUNT(*)
		FROM (SELECT DISTINCT product_id, brand_name FROM order_items) AS pairs
	`

	if err := repo.db.WithContext(ctx).
		Raw(query).
		Scan(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count distinct ordered products")
	}

	return count, nil
}

// orderItemsByLine keeps preloaded line items in their insertion order.
func orderItemsByLine(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(data.Items))
	for i := range data.Items {
		itemM := &data.Items[i]
		items = append(items, entity.OrderItem{
			ProductID:   itemM.ProductID,
			ProductName: itemM.ProductName,
			BrandName:   itemM.BrandName,
			Unit:        entity.Unit(itemM.Unit),
			Quantity:    itemM.Quantity,
		})
	}

	return &entity.Order{
		ID:          data.ID,
		OrderNumber: data.OrderNumber,
		CounterName: data.CounterName,
		Bit:         data.Bit,
		Status:      entity.OrderStatus(data.Status),
		Date:        data.Date,
		Time:        data.Time,
		TotalItems:  data.TotalItems,
		TotalAmount: data.TotalAmount,
		Items:       items,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// toOrderDomains converts a slice of GORM OrderModels to domain Order entities.
func toOrderDomains(data []*model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(data))
	for _, orderM := range data {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	return &model.OrderModel{
		ID:          data.ID,
		OrderNumber: data.OrderNumber,
		CounterName: data.CounterName,
		Bit:         data.Bit,
		Status:      data.Status.String(),
		Date:        data.Date,
		Time:        data.Time,
		TotalItems:  data.TotalItems,
		TotalAmount: data.TotalAmount,
		Items:       fromOrderItemDomains(data.ID, data.Items),
	}
}

// fromOrderItemDomains converts domain OrderItems to GORM OrderItemModels bound to an order.
func fromOrderItemDomains(orderID uuid.UUID, items []entity.OrderItem) []model.OrderItemModel {
	itemModels := make([]model.OrderItemModel, 0, len(items))
	for _, item := range items {
		itemModels = append(itemModels, model.OrderItemModel{
			OrderID:     orderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			BrandName:   item.BrandName,
			Unit:        item.Unit.String(),
			Quantity:    item.Quantity,
		})
	}

	return itemModels
}

// toDemandGroupDomain converts an aggregation row to a domain DemandGroup.
// Order numbers are sorted so equal groups always render identically.
func toDemandGroupDomain(row demandRow) *entity.DemandGroup {
	var orderNumbers []string
	if row.OrderNumbers != "" {
		orderNumbers = strings.Split(row.OrderNumbers, ",")
		sort.Strings(orderNumbers)
	}

	return &entity.DemandGroup{
		ProductID:     row.ProductID,
		ProductName:   row.ProductName,
		BrandName:     row.BrandName,
		Unit:          entity.Unit(row.Unit),
		TotalQuantity: row.TotalQuantity,
		OrderCount:    row.OrderCount,
		OrderNumbers:  orderNumbers,
	}
}
